package chunker

import (
	"fmt"
	"strings"

	"intellidocs/internal/domain"
)

// Defaults tuned for passage retrieval over policy documents.
const (
	DefaultChunkSize    = 300
	DefaultOverlap      = 50
	DefaultMinChunkSize = 50
)

// WordChunker splits normalized text into overlapping fixed-size word
// windows with positional metadata.
type WordChunker struct {
	chunkSize    int
	overlap      int
	minChunkSize int
}

// NewWordChunker creates a chunker. Zero or negative parameters fall back
// to the defaults. Overlap must stay below the chunk size, otherwise the
// window would never advance.
func NewWordChunker(chunkSize, overlap, minChunkSize int) (*WordChunker, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	if minChunkSize <= 0 {
		minChunkSize = DefaultMinChunkSize
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}
	return &WordChunker{chunkSize: chunkSize, overlap: overlap, minChunkSize: minChunkSize}, nil
}

// Chunk splits text into word windows attributed to source. Runs of
// whitespace are collapsed before counting, so word offsets refer to the
// normalized text. Windows shorter than the minimum are discarded and do
// not consume a chunk ID; droppedTail reports how many trailing words were
// lost that way so callers can surface the loss.
func (c *WordChunker) Chunk(text, source string) (chunks []domain.Chunk, droppedTail int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, 0
	}

	// Short document: one chunk spanning the whole text, or nothing at all
	// when it is too short to be useful context.
	if len(words) <= c.chunkSize {
		if len(words) < c.minChunkSize {
			return nil, len(words)
		}
		return []domain.Chunk{{
			Text:      strings.Join(words, " "),
			Source:    source,
			ChunkID:   0,
			StartWord: 0,
			EndWord:   len(words),
			WordCount: len(words),
		}}, 0
	}

	stride := c.chunkSize - c.overlap
	chunkID := 0
	covered := 0
	for start := 0; start < len(words); start += stride {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		if end-start >= c.minChunkSize {
			chunks = append(chunks, domain.Chunk{
				Text:      strings.Join(words[start:end], " "),
				Source:    source,
				ChunkID:   chunkID,
				StartWord: start,
				EndWord:   end,
				WordCount: end - start,
			})
			chunkID++
			covered = end
		}
		if end >= len(words) {
			break
		}
	}
	if covered < len(words) {
		droppedTail = len(words) - covered
	}
	return chunks, droppedTail
}

// ChunkSize returns the configured window size in words.
func (c *WordChunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured window overlap in words.
func (c *WordChunker) Overlap() int { return c.overlap }

// MinChunkSize returns the minimum words a window needs to be kept.
func (c *WordChunker) MinChunkSize() int { return c.minChunkSize }
