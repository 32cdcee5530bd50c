package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestNewWordChunker_RejectsOverlapNotBelowSize(t *testing.T) {
	_, err := NewWordChunker(100, 100, 10)
	require.Error(t, err)

	_, err = NewWordChunker(100, 150, 10)
	require.Error(t, err)
}

func TestNewWordChunker_Defaults(t *testing.T) {
	c, err := NewWordChunker(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	assert.Equal(t, DefaultOverlap, c.Overlap())
	assert.Equal(t, DefaultMinChunkSize, c.MinChunkSize())
}

func TestChunk_EmptyAndWhitespace(t *testing.T) {
	c, err := NewWordChunker(10, 3, 5)
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		chunks, dropped := c.Chunk(text, "doc.txt")
		assert.Empty(t, chunks)
		assert.Zero(t, dropped)
	}
}

func TestChunk_ShortDocumentBelowMinimum(t *testing.T) {
	c, err := NewWordChunker(10, 3, 5)
	require.NoError(t, err)

	chunks, dropped := c.Chunk(words(4), "doc.txt")
	assert.Empty(t, chunks)
	assert.Equal(t, 4, dropped)
}

func TestChunk_ShortDocumentSingleChunk(t *testing.T) {
	c, err := NewWordChunker(10, 3, 5)
	require.NoError(t, err)

	chunks, dropped := c.Chunk(words(8), "doc.txt")
	require.Len(t, chunks, 1)
	assert.Zero(t, dropped)

	ch := chunks[0]
	assert.Equal(t, 0, ch.ChunkID)
	assert.Equal(t, "doc.txt", ch.Source)
	assert.Equal(t, 0, ch.StartWord)
	assert.Equal(t, 8, ch.EndWord)
	assert.Equal(t, 8, ch.WordCount)
	assert.Equal(t, words(8), ch.Text)
}

func TestChunk_NormalizesWhitespace(t *testing.T) {
	c, err := NewWordChunker(10, 3, 2)
	require.NoError(t, err)

	chunks, _ := c.Chunk("  alpha \t beta\n\ngamma  ", "doc.txt")
	require.Len(t, chunks, 1)
	assert.Equal(t, "alpha beta gamma", chunks[0].Text)
	assert.Equal(t, 3, chunks[0].WordCount)
}

func TestChunk_SlidingWindows(t *testing.T) {
	// size 10, overlap 3: windows start at 0, 7, 14, 21, ...
	c, err := NewWordChunker(10, 3, 5)
	require.NoError(t, err)

	chunks, dropped := c.Chunk(words(26), "doc.txt")
	require.Len(t, chunks, 4)
	assert.Zero(t, dropped)

	wantStarts := []int{0, 7, 14, 21}
	wantEnds := []int{10, 17, 24, 26}
	for i, ch := range chunks {
		assert.Equal(t, i, ch.ChunkID)
		assert.Equal(t, wantStarts[i], ch.StartWord)
		assert.Equal(t, wantEnds[i], ch.EndWord)
		assert.Equal(t, ch.EndWord-ch.StartWord, ch.WordCount)
		assert.GreaterOrEqual(t, ch.WordCount, 5)
	}
}

func TestChunk_DropsShortTrailingWindow(t *testing.T) {
	// 25 words: final window [21,25) has 4 words, below min 5.
	c, err := NewWordChunker(10, 3, 5)
	require.NoError(t, err)

	chunks, dropped := c.Chunk(words(25), "doc.txt")
	require.Len(t, chunks, 3)

	last := chunks[len(chunks)-1]
	assert.Equal(t, 24, last.EndWord)
	// One trailing word is not covered by any kept chunk.
	assert.Equal(t, 1, dropped)
	// Dropped windows do not consume an ID.
	assert.Equal(t, 2, last.ChunkID)
}

func TestChunk_MonotoneStartsAndCoverage(t *testing.T) {
	c, err := NewWordChunker(20, 5, 5)
	require.NoError(t, err)

	total := 137
	chunks, dropped := c.Chunk(words(total), "doc.txt")
	require.NotEmpty(t, chunks)

	prevStart := -1
	for i, ch := range chunks {
		assert.Greater(t, ch.StartWord, prevStart)
		prevStart = ch.StartWord
		if i > 0 {
			// stride = size - overlap
			assert.Equal(t, chunks[i-1].StartWord+15, ch.StartWord)
		}
	}
	covered := chunks[len(chunks)-1].EndWord
	assert.Equal(t, total, covered+dropped)
}
