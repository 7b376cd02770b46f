package match

// span is a contiguous half-open range of left-side rows.
type span struct {
	start int
	end   int
}

// partitionSpans divides n left rows into contiguous, non-overlapping spans
// that cover the input exactly, at most one per worker. The span size has a
// floor of minChunk, so small inputs collapse into fewer spans and an input
// of minChunk rows or less becomes a single span.
func partitionSpans(n, workers, minChunk int) []span {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers
	if chunkSize < minChunk {
		chunkSize = minChunk
	}

	spans := make([]span, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}
