package dataset

import (
	"fmt"
	"strconv"

	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// Kind is the semantic output type a declared column type maps to.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindFloat
)

// kindFor maps a declared API type onto its semantic output type.
// TIME values are seconds with a fractional part, hence floating point.
func kindFor(declared reporting.DeclaredType) (Kind, bool) {
	switch declared {
	case reporting.TypeString:
		return KindText, true
	case reporting.TypeInteger:
		return KindInteger, true
	case reporting.TypePercent, reporting.TypeTime, reporting.TypeCurrency, reporting.TypeFloat:
		return KindFloat, true
	default:
		return KindText, false
	}
}

// ConversionError reports a cell that does not parse under its column's
// declared type.
type ConversionError struct {
	Column   string
	Declared reporting.DeclaredType
	Value    string
	Err      error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("column %s (%s): cannot convert %q: %v",
		e.Column, e.Declared, e.Value, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Coerce converts every cell in place from its string form to the semantic
// type of its column. It fails fast on the first unparsable cell; no value
// is silently nulled.
func Coerce(d *Dataset) error {
	kinds := make([]Kind, len(d.Fields))
	for j, f := range d.Fields {
		kind, ok := kindFor(f.Declared)
		if !ok {
			return &ConversionError{
				Column:   f.Name,
				Declared: f.Declared,
				Err:      fmt.Errorf("unknown declared type"),
			}
		}
		kinds[j] = kind
	}

	for i, row := range d.Rows {
		if len(row) != len(d.Fields) {
			return fmt.Errorf("row %d has %d cells, schema has %d columns", i, len(row), len(d.Fields))
		}
		for j, cell := range row {
			raw, ok := cell.(string)
			if !ok {
				// Already coerced.
				continue
			}
			switch kinds[j] {
			case KindText:
				// Cells arrive as strings; nothing to do.
			case KindInteger:
				v, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return &ConversionError{
						Column:   d.Fields[j].Name,
						Declared: d.Fields[j].Declared,
						Value:    raw,
						Err:      err,
					}
				}
				row[j] = v
			case KindFloat:
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return &ConversionError{
						Column:   d.Fields[j].Name,
						Declared: d.Fields[j].Declared,
						Value:    raw,
						Err:      err,
					}
				}
				row[j] = v
			}
		}
	}
	return nil
}
