// Package reporting defines the reporting-service collaborator: the
// interface the batching core consumes, the page and column-header types
// it returns, and the Google Analytics Core Reporting API v3 implementation
// with rate limiting, retry, and error classification.
package reporting

import (
	"context"

	"github.com/konrad-woj/google-analytics/pkg/query"
)

// DeclaredType is a column data type as declared by the reporting API.
type DeclaredType string

// Declared column types of the Core Reporting API.
const (
	TypeString   DeclaredType = "STRING"
	TypeInteger  DeclaredType = "INTEGER"
	TypePercent  DeclaredType = "PERCENT"
	TypeTime     DeclaredType = "TIME"
	TypeCurrency DeclaredType = "CURRENCY"
	TypeFloat    DeclaredType = "FLOAT"
)

// ColumnHeader names and types one result column. Name has the "ga:"
// namespace prefix already stripped.
type ColumnHeader struct {
	Name string       `json:"name"`
	Type DeclaredType `json:"type"`
}

// Page is one bounded server response: a row subset plus the pagination
// metadata needed to plan the remaining pages. Every cell arrives as a
// string; typing happens later from the column headers.
type Page struct {
	Rows                [][]string
	ItemsPerPage        int64
	TotalResults        int64
	ContainsSampledData bool
	SampleSize          int64
	SampleSpace         int64
	Headers             []ColumnHeader
}

// SamplingRatio returns the sampled fraction as a percentage, or 0 when the
// page is not sampled.
func (p *Page) SamplingRatio() float64 {
	if !p.ContainsSampledData || p.SampleSpace == 0 {
		return 0
	}
	return float64(p.SampleSize) / float64(p.SampleSpace) * 100
}

// Request is one bounded query: the immutable query descriptor plus the
// per-call window and pagination cursor. Window is a single day at the
// granularity this core operates on.
type Request struct {
	Query      query.Query
	Window     query.DateWindow
	StartIndex int64
	MaxResults int64
}

// Service is the reporting collaborator. Implementations own transport
// concerns: authentication, rate limiting, retry. Errors are returned as-is
// to the caller; the batching core never retries.
type Service interface {
	Query(ctx context.Context, req Request) (*Page, error)
}
