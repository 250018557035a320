package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/konrad-woj/google-analytics/internal/testutil"
	"github.com/konrad-woj/google-analytics/pkg/query"
)

func testQuery(maxResults int64) query.Query {
	return query.Query{
		IDs:        "ga:12345678",
		Dimensions: []string{"ga:date"},
		Metrics:    []string{"ga:sessions"},
		MaxResults: maxResults,
	}
}

func TestAssembleDay_SinglePage(t *testing.T) {
	mock := testutil.NewMockReporting()
	mock.SetDay("2020-06-15", testutil.DayData{
		Rows:    testutil.SessionsByDate("2020-06-15", 400),
		Headers: testutil.StandardHeaders(),
	})
	a := NewAssembler(mock)

	result, err := a.AssembleDay(context.Background(), testQuery(1000), testutil.Window(t, "2020-06-15", "2020-06-15"))
	if err != nil {
		t.Fatalf("AssembleDay: %v", err)
	}

	if len(result.Rows) != 400 {
		t.Errorf("rows = %d, want 400", len(result.Rows))
	}
	if mock.RequestCount != 1 {
		t.Errorf("fetch calls = %d, want 1", mock.RequestCount)
	}
	if len(result.Headers) != 2 {
		t.Errorf("headers = %v", result.Headers)
	}
	if result.Sampled {
		t.Error("unexpected sampling flag")
	}
}

func TestAssembleDay_MultiPageOrder(t *testing.T) {
	mock := testutil.NewMockReporting()
	mock.SetDay("2020-06-15", testutil.DayData{
		Rows:    testutil.SessionsByDate("2020-06-15", 250),
		Headers: testutil.StandardHeaders(),
	})
	a := NewAssembler(mock)

	result, err := a.AssembleDay(context.Background(), testQuery(100), testutil.Window(t, "2020-06-15", "2020-06-15"))
	if err != nil {
		t.Fatalf("AssembleDay: %v", err)
	}

	// Row count equals totalResults exactly.
	if len(result.Rows) != 250 {
		t.Fatalf("rows = %d, want 250", len(result.Rows))
	}
	// 3 pages: starts 1, 101, 201.
	if mock.RequestCount != 3 {
		t.Errorf("fetch calls = %d, want 3", mock.RequestCount)
	}
	wantStarts := []int64{1, 101, 201}
	for i, req := range mock.Requests {
		if req.StartIndex != wantStarts[i] {
			t.Errorf("request[%d] start = %d, want %d", i, req.StartIndex, wantStarts[i])
		}
	}
	// Rows arrive in the same order as returned across pages.
	for i, row := range result.Rows {
		want := testutil.SessionsByDate("2020-06-15", 250)[i]
		if row[1] != want[1] {
			t.Fatalf("row[%d] = %v, want %v (order broken)", i, row, want)
		}
	}
}

func TestAssembleDay_EmptyDay(t *testing.T) {
	mock := testutil.NewMockReporting()
	mock.SetDay("2020-06-15", testutil.DayData{
		Headers: testutil.StandardHeaders(),
	})
	a := NewAssembler(mock)

	result, err := a.AssembleDay(context.Background(), testQuery(0), testutil.Window(t, "2020-06-15", "2020-06-15"))
	if err != nil {
		t.Fatalf("AssembleDay: %v", err)
	}

	if len(result.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(result.Rows))
	}
	// Schema still comes from the empty first page.
	if len(result.Headers) != 2 {
		t.Errorf("headers = %v", result.Headers)
	}
	if mock.RequestCount != 1 {
		t.Errorf("fetch calls = %d, want 1", mock.RequestCount)
	}
}

func TestAssembleDay_SamplingDetection(t *testing.T) {
	mock := testutil.NewMockReporting()
	mock.SetDay("2020-06-15", testutil.DayData{
		Rows:        testutil.SessionsByDate("2020-06-15", 10),
		Headers:     testutil.StandardHeaders(),
		Sampled:     true,
		SampleSize:  500,
		SampleSpace: 2000,
	})
	a := NewAssembler(mock)

	result, err := a.AssembleDay(context.Background(), testQuery(0), testutil.Window(t, "2020-06-15", "2020-06-15"))
	if err != nil {
		t.Fatalf("AssembleDay: %v", err)
	}

	if !result.Sampled {
		t.Fatal("sampling not detected")
	}
	if result.SamplingRatio != 25.0 {
		t.Errorf("sampling ratio = %v, want 25.0", result.SamplingRatio)
	}
}

func TestAssembleDay_MidDayFailureAborts(t *testing.T) {
	mock := testutil.NewMockReporting()
	mock.SetDay("2020-06-15", testutil.DayData{
		Rows:    testutil.SessionsByDate("2020-06-15", 250),
		Headers: testutil.StandardHeaders(),
	})
	sentinel := errors.New("backend unavailable")
	mock.FailAt = 2
	mock.FailErr = sentinel
	a := NewAssembler(mock)

	_, err := a.AssembleDay(context.Background(), testQuery(100), testutil.Window(t, "2020-06-15", "2020-06-15"))
	if !errors.Is(err, sentinel) {
		t.Fatalf("error = %v, want the transport error unchanged", err)
	}
}
