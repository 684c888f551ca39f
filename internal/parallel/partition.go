package parallel

// RowRange is the half-open row interval [Start, End) handled by one worker.
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range holds no rows.
func (r RowRange) Empty() bool {
	return r.End <= r.Start
}

// PartitionRows splits [0, totalRows) into contiguous, non-overlapping ranges
// for at most requestedWorkers workers.
//
// requestedWorkers is clamped to [1, totalRows] and every range spans
// ceil(totalRows/workers) rows except the last, which is truncated at
// totalRows. No returned range is empty; totalRows <= 0 yields no ranges.
func PartitionRows(totalRows, requestedWorkers int) []RowRange {
	if totalRows <= 0 {
		return nil
	}

	workers := min(max(requestedWorkers, 1), totalRows)
	chunkSize := (totalRows + workers - 1) / workers

	ranges := make([]RowRange, 0, workers)
	for start := 0; start < totalRows; start += chunkSize {
		ranges = append(ranges, RowRange{Start: start, End: min(start+chunkSize, totalRows)})
	}
	return ranges
}
