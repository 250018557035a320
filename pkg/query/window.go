package query

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for report dates.
const DateLayout = "2006-01-02"

// DateWindow is an inclusive [Start, End] pair of calendar dates. The
// overall requested range has Start <= End; a single day's sub-query has
// Start == End.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// ParseDateWindow parses "YYYY-MM-DD" bounds and validates their order.
func ParseDateWindow(start, end string) (DateWindow, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: start date %q: %v", ErrInvalidArgument, start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateWindow{}, fmt.Errorf("%w: end date %q: %v", ErrInvalidArgument, end, err)
	}
	if e.Before(s) {
		return DateWindow{}, fmt.Errorf("%w: end date %s precedes start date %s", ErrInvalidArgument, end, start)
	}
	return DateWindow{Start: s, End: e}, nil
}

// SingleDay returns the one-day window for day.
func SingleDay(day time.Time) DateWindow {
	return DateWindow{Start: day, End: day}
}

// Days expands the window into its inclusive sequence of calendar days in
// ascending order. AddDate walks the real calendar, so leap days and
// month/year boundaries fall out correctly.
func (w DateWindow) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// StartString returns the start date in wire format.
func (w DateWindow) StartString() string { return w.Start.Format(DateLayout) }

// EndString returns the end date in wire format.
func (w DateWindow) EndString() string { return w.End.Format(DateLayout) }

func (w DateWindow) String() string {
	return w.StartString() + ".." + w.EndString()
}
