package pagination

// PageStarts computes the 1-based start index of every page needed to
// retrieve totalResults rows at itemsPerPage rows per call. It is computed
// once from the first page's metadata and never recomputed per page.
//
// When a single page covers the whole day (itemsPerPage == totalResults) or
// the day is empty, there is nothing to plan and the result is empty. The
// first element, when present, is always 1: the page the caller has already
// fetched to learn the metadata.
func PageStarts(itemsPerPage, totalResults int64) []int64 {
	if itemsPerPage <= 0 || itemsPerPage == totalResults {
		return nil
	}

	var starts []int64
	for s := int64(1); s < totalResults; s += itemsPerPage {
		starts = append(starts, s)
	}
	return starts
}
