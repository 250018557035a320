package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/konrad-woj/google-analytics/internal/testutil"
	"github.com/konrad-woj/google-analytics/pkg/query"
)

func TestFetchPage_PageSizeValidation(t *testing.T) {
	tests := []struct {
		name          string
		pageSize      int64
		wantRequested int64
		wantErr       bool
	}{
		{"default when unset", 0, 1000, false},
		{"small page size passes through", 50, 50, false},
		{"upper bound passes through", 10000, 10000, false},
		{"oversized is clamped", 25000, 10000, false},
		{"negative is invalid", -1, 0, true},
	}

	q := query.Query{IDs: "ga:1", Metrics: []string{"ga:sessions"}}
	day := testutil.Window(t, "2020-06-15", "2020-06-15")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockReporting()
			mock.SetDay("2020-06-15", testutil.DayData{
				Rows:    testutil.SessionsByDate("2020-06-15", 10),
				Headers: testutil.StandardHeaders(),
			})
			fetcher := NewFetcher(mock)

			_, err := fetcher.FetchPage(context.Background(), q, day, 1, tt.pageSize)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, query.ErrInvalidArgument) {
					t.Errorf("error = %v, want ErrInvalidArgument", err)
				}
				if mock.RequestCount != 0 {
					t.Errorf("invalid page size reached the service (%d requests)", mock.RequestCount)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mock.RequestCount != 1 {
				t.Fatalf("RequestCount = %d, want 1", mock.RequestCount)
			}
			if got := mock.Requests[0].MaxResults; got != tt.wantRequested {
				t.Errorf("requested page size = %d, want %d", got, tt.wantRequested)
			}
		})
	}
}

func TestFetchPage_SingleDayWindow(t *testing.T) {
	mock := testutil.NewMockReporting()
	mock.SetDay("2020-06-15", testutil.DayData{
		Rows:    testutil.SessionsByDate("2020-06-15", 5),
		Headers: testutil.StandardHeaders(),
	})
	fetcher := NewFetcher(mock)

	q := query.Query{IDs: "ga:1", Metrics: []string{"ga:sessions"}}
	day := testutil.Window(t, "2020-06-15", "2020-06-15")

	page, err := fetcher.FetchPage(context.Background(), q, day, 1, 0)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	req := mock.Requests[0]
	if req.Window.StartString() != req.Window.EndString() {
		t.Errorf("daily fetch window = %s, want single day", req.Window)
	}
	if len(page.Rows) != 5 || page.TotalResults != 5 {
		t.Errorf("page rows = %d total = %d, want 5/5", len(page.Rows), page.TotalResults)
	}
}

func TestFetchPage_TransportErrorPropagates(t *testing.T) {
	mock := testutil.NewMockReporting()
	sentinel := errors.New("quota exceeded")
	mock.Err = sentinel
	fetcher := NewFetcher(mock)

	q := query.Query{IDs: "ga:1", Metrics: []string{"ga:sessions"}}
	day := testutil.Window(t, "2020-06-15", "2020-06-15")

	_, err := fetcher.FetchPage(context.Background(), q, day, 1, 100)
	if !errors.Is(err, sentinel) {
		t.Errorf("error = %v, want the service error unchanged", err)
	}
}
