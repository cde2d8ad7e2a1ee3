package pipeline

// Transcript chunking for map-reduce summarization. Spans overlap so that
// context is not severed at arbitrary cut points.

const (
	// DefaultChunkSize is the target chunk length in runes.
	DefaultChunkSize = 32000
	// DefaultChunkOverlap is how many runes adjacent chunks share.
	DefaultChunkOverlap = 3200
)

// ChunkText splits text into overlapping spans of at most size runes, each
// sharing overlap runes with its predecessor, preserving original order.
// Empty input yields no chunks. Invalid parameters fall back to the defaults.
func ChunkText(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
