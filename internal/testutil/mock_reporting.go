// Package testutil provides testing utilities for the report exporter.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/konrad-woj/google-analytics/pkg/query"
	"github.com/konrad-woj/google-analytics/pkg/reporting"
)

// DayData configures the full result set the mock serves for one date.
type DayData struct {
	Rows        [][]string
	Headers     []reporting.ColumnHeader
	Sampled     bool
	SampleSize  int64
	SampleSpace int64
}

// MockReporting is a configurable in-memory reporting service. It slices the
// configured per-day row sets by start index and page size the way the real
// API does, and records every request for assertions.
type MockReporting struct {
	mu   sync.Mutex
	days map[string]DayData

	// Err, when set, is returned by every Query call.
	Err error

	// FailAt, when positive, fails the Nth request (1-based) with FailErr.
	FailAt  int
	FailErr error

	// Tracking
	RequestCount int
	Requests     []reporting.Request
}

// NewMockReporting creates an empty mock reporting service.
func NewMockReporting() *MockReporting {
	return &MockReporting{
		days: make(map[string]DayData),
	}
}

// SetDay configures the result set served for a date ("YYYY-MM-DD").
func (m *MockReporting) SetDay(date string, data DayData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[date] = data
}

// Reset clears all tracking state.
func (m *MockReporting) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Requests = nil
}

// Query implements reporting.Service.
func (m *MockReporting) Query(_ context.Context, req reporting.Request) (*reporting.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.FailAt > 0 && m.RequestCount == m.FailAt {
		err := m.FailErr
		if err == nil {
			err = fmt.Errorf("mock reporting failure at request %d", m.FailAt)
		}
		return nil, err
	}

	date := req.Window.StartString()
	day, ok := m.days[date]
	if !ok {
		day = DayData{}
	}

	total := int64(len(day.Rows))
	start := req.StartIndex
	if start < 1 {
		start = 1
	}

	// The API reports itemsPerPage as the requested page size even when the
	// final page carries fewer rows.
	end := start - 1 + req.MaxResults
	if end > total {
		end = total
	}
	var rows [][]string
	if start-1 < total {
		rows = day.Rows[start-1 : end]
	}

	page := &reporting.Page{
		Rows:                rows,
		ItemsPerPage:        req.MaxResults,
		TotalResults:        total,
		ContainsSampledData: day.Sampled,
		SampleSize:          day.SampleSize,
		SampleSpace:         day.SampleSpace,
		Headers:             day.Headers,
	}
	return page, nil
}

// Ensure MockReporting satisfies the service interface.
var _ reporting.Service = (*MockReporting)(nil)

// SessionsByDate builds a two-column row set (date dimension plus a sessions
// metric) of n rows for test fixtures.
func SessionsByDate(date string, n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{date, fmt.Sprintf("%d", i+1)}
	}
	return rows
}

// StandardHeaders returns the schema matching SessionsByDate fixtures.
func StandardHeaders() []reporting.ColumnHeader {
	return []reporting.ColumnHeader{
		{Name: "date", Type: reporting.TypeString},
		{Name: "sessions", Type: reporting.TypeInteger},
	}
}

// Window is shorthand for a parsed single- or multi-day window in tests.
func Window(t interface{ Fatalf(string, ...any) }, start, end string) query.DateWindow {
	w, err := query.ParseDateWindow(start, end)
	if err != nil {
		t.Fatalf("ParseDateWindow(%s, %s): %v", start, end, err)
	}
	return w
}
