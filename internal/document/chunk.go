package document

import "strings"

// Default window geometry. Windows around 2500 tokens keep enough context
// for the model to resolve multi-line entries; the overlap re-presents
// entries that straddle a window boundary so the deduplicator can collapse
// the copies.
const (
	DefaultChunkTokens   = 2500
	DefaultOverlapTokens = 250

	// Token counts are estimated at four characters per token.
	charsPerToken = 4
)

// Chunk is one bounded, overlapping slice of document text submitted for
// extraction.
type Chunk struct {
	Index int
	Text  string
}

// ChunkOptions controls window geometry. Zero values fall back to the
// package defaults.
type ChunkOptions struct {
	ChunkTokens   int
	OverlapTokens int
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.ChunkTokens <= 0 {
		o.ChunkTokens = DefaultChunkTokens
	}
	if o.OverlapTokens <= 0 {
		o.OverlapTokens = DefaultOverlapTokens
	}
	if o.OverlapTokens >= o.ChunkTokens {
		o.OverlapTokens = o.ChunkTokens / 10
	}
	return o
}

// Split cuts text into overlapping token-bounded windows. The split is
// deterministic for identical input and options. Window edges prefer line
// boundaries so statement rows are not cut mid-entry; a window is only cut
// mid-line when no line break falls in its second half.
func Split(text string, opts ChunkOptions) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	opts = opts.withDefaults()

	window := opts.ChunkTokens * charsPerToken
	overlap := opts.OverlapTokens * charsPerToken

	runes := []rune(text)
	if len(runes) <= window {
		return []Chunk{{Index: 0, Text: text}}
	}

	var chunks []Chunk
	start := 0
	for start < len(runes) {
		end := start + window
		if end >= len(runes) {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: string(runes[start:])})
			break
		}

		// Pull the cut back to the last newline in the second half of
		// the window, when one exists.
		cut := end
		for i := end - 1; i > start+window/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}

		chunks = append(chunks, Chunk{Index: len(chunks), Text: string(runes[start:cut])})

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// EstimateTokens approximates the token count of text for window sizing.
func EstimateTokens(text string) int {
	return (len(text) + charsPerToken - 1) / charsPerToken
}
