package domain

// Paginate slices one page out of the sorted list. Offsets past the end give
// an empty page. hasMore reports whether results remain after the page.
func Paginate(sorted []Result, offset, limit int) (page []Result, hasMore bool) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset >= len(sorted) {
		return []Result{}, false
	}

	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], offset+limit < len(sorted)
}
