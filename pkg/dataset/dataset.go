// Package dataset holds the stitched tabular result of a date-range run:
// an ordered row set with a typed column schema, plus the coercion, CSV
// export, and summary helpers operating on it.
package dataset

import (
	"fmt"

	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// Field describes one output column: its name (namespace already stripped)
// and the type the API declared for it.
type Field struct {
	Name     string
	Declared reporting.DeclaredType
}

// Dataset is the immutable final table. Before coercion every cell is a
// string; after Coerce each cell holds the column's semantic type
// (string, int64 or float64).
type Dataset struct {
	Fields []Field
	Rows   [][]any
}

// Empty reports whether the dataset has no rows.
func (d *Dataset) Empty() bool {
	return len(d.Rows) == 0
}

// Builder accumulates rows day by day and commits them to a Dataset only
// once the whole range has succeeded, so a mid-range failure never exposes
// a partial table. The single writer is the range driver.
type Builder struct {
	fields     []Field
	haveFields bool
	rows       [][]string
}

// NewBuilder creates an empty dataset builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetSchema records the column schema from the first non-empty day and
// verifies later days against it. Schema drift across days fails fast
// rather than guessing a reconciliation.
func (b *Builder) SetSchema(headers []reporting.ColumnHeader) error {
	if !b.haveFields {
		b.fields = make([]Field, len(headers))
		for i, h := range headers {
			b.fields[i] = Field{Name: h.Name, Declared: h.Type}
		}
		b.haveFields = true
		return nil
	}

	if len(headers) != len(b.fields) {
		return fmt.Errorf("schema drift: day has %d columns, range schema has %d",
			len(headers), len(b.fields))
	}
	for i, h := range headers {
		if b.fields[i].Name != h.Name || b.fields[i].Declared != h.Type {
			return fmt.Errorf("schema drift: column %d is %s (%s), range schema has %s (%s)",
				i, h.Name, h.Type, b.fields[i].Name, b.fields[i].Declared)
		}
	}
	return nil
}

// Append adds one day's rows in order.
func (b *Builder) Append(rows [][]string) error {
	for _, row := range rows {
		if b.haveFields && len(row) != len(b.fields) {
			return fmt.Errorf("row has %d cells, schema has %d columns", len(row), len(b.fields))
		}
	}
	b.rows = append(b.rows, rows...)
	return nil
}

// Len returns the number of accumulated rows.
func (b *Builder) Len() int {
	return len(b.rows)
}

// Commit freezes the accumulated rows into a Dataset. Cells start as
// strings; Coerce applies the declared types.
func (b *Builder) Commit() *Dataset {
	rows := make([][]any, len(b.rows))
	for i, raw := range b.rows {
		row := make([]any, len(raw))
		for j, cell := range raw {
			row[j] = cell
		}
		rows[i] = row
	}
	return &Dataset{
		Fields: append([]Field(nil), b.fields...),
		Rows:   rows,
	}
}
