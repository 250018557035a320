// Package pagination implements the two-phase page retrieval protocol of the
// Core Reporting API: the first page of a day's query reveals itemsPerPage
// and totalResults, and only then can the remaining page starts be planned.
//
// The API uses 1-based row indexing; a page is addressed by the start index
// of its first row. Pages of one day are fetched strictly in ascending start
// order because row order across pages must be preserved as returned.
//
// Example usage:
//
//	fetcher := pagination.NewFetcher(svc)
//	first, err := fetcher.FetchPage(ctx, q, day, 1, q.MaxResults)
//	starts := pagination.PageStarts(first.ItemsPerPage, first.TotalResults)
//	if len(starts) > 1 {
//		for _, s := range starts[1:] {
//			page, err := fetcher.FetchPage(ctx, q, day, s, q.MaxResults)
//			...
//		}
//	}
package pagination
