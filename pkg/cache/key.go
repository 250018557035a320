package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/konrad-woj/google-analytics/pkg/query"
)

// Key identifies one day's batch of one query.
type Key struct {
	// IDs is the view (profile) identifier set.
	IDs string

	// Date is the day in wire format ("2006-01-02").
	Date string

	// QueryHash fingerprints everything else that shapes the result set.
	QueryHash uint64
}

// NewKey builds the cache key for one day of a query. Two queries that
// differ in dimensions, metrics, filters, segment or sort never collide.
// Page size is deliberately excluded: it changes how a day is fetched, not
// what the day's rows are.
func NewKey(q query.Query, day query.DateWindow) Key {
	h := xxhash.New()
	for _, part := range []string{
		q.DimensionsExpr(),
		q.MetricsExpr(),
		q.Filters,
		q.Segment,
		q.SortExpr(),
	} {
		// The separator keeps ("a,b","c") distinct from ("a","b,c").
		h.WriteString(part)
		h.WriteString("\x00")
	}

	return Key{
		IDs:       q.IDs,
		Date:      day.StartString(),
		QueryHash: h.Sum64(),
	}
}

// String generates a deterministic Redis key.
// Format: ga:batch:<ids>:<date>:<hash>
func (k Key) String() string {
	ids := strings.ReplaceAll(k.IDs, ":", "_")
	return fmt.Sprintf("ga:batch:%s:%s:%016x", ids, k.Date, k.QueryHash)
}
