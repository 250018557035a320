package dataset

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// sampleRows is the number of leading and trailing rows shown in a summary.
const sampleRows = 5

// WriteSummary prints a data preview and per-column descriptive statistics,
// mirroring a head/tail sample plus describe(). The dataset is read-only to
// this sink.
func WriteSummary(w io.Writer, d *Dataset) error {
	fmt.Fprintln(w, "Data sample:")
	if err := writeSample(w, d); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSummary stats:")
	if err := writeStats(w, d); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nColumn types:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range d.Fields {
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Declared)
	}
	return tw.Flush()
}

func writeSample(w io.Writer, d *Dataset) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for i, f := range d.Fields {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, f.Name)
	}
	fmt.Fprintln(tw)

	head := len(d.Rows)
	if head > sampleRows {
		head = sampleRows
	}
	for _, row := range d.Rows[:head] {
		writeRow(tw, row)
	}

	if len(d.Rows) > 2*sampleRows {
		fmt.Fprintln(tw, "...")
	}
	if len(d.Rows) > sampleRows {
		tail := len(d.Rows) - sampleRows
		if tail < head {
			tail = head
		}
		for _, row := range d.Rows[tail:] {
			writeRow(tw, row)
		}
	}

	return tw.Flush()
}

func writeRow(w io.Writer, row []any) {
	for j, cell := range row {
		if j > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cellString(cell))
	}
	fmt.Fprintln(w)
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ColumnStats holds descriptive statistics for one numeric column.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// Describe computes count/mean/std/min/max for every numeric column of a
// coerced dataset. Text columns are skipped.
func Describe(d *Dataset) []ColumnStats {
	var stats []ColumnStats

	for j, f := range d.Fields {
		kind, ok := kindFor(f.Declared)
		if !ok || kind == KindText {
			continue
		}

		var values []float64
		for _, row := range d.Rows {
			switch v := row[j].(type) {
			case int64:
				values = append(values, float64(v))
			case float64:
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		s := ColumnStats{
			Name:  f.Name,
			Count: len(values),
			Min:   values[0],
			Max:   values[0],
		}
		var sum float64
		for _, v := range values {
			sum += v
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		s.Mean = sum / float64(len(values))

		if len(values) > 1 {
			var sq float64
			for _, v := range values {
				diff := v - s.Mean
				sq += diff * diff
			}
			// Sample standard deviation.
			s.Std = math.Sqrt(sq / float64(len(values)-1))
		}

		stats = append(stats, s)
	}

	return stats
}

func writeStats(w io.Writer, d *Dataset) error {
	stats := Describe(d)
	if len(stats) == 0 {
		fmt.Fprintln(w, "(no numeric columns)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\tmax")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\n",
			s.Name, s.Count, s.Mean, s.Std, s.Min, s.Max)
	}
	return tw.Flush()
}
