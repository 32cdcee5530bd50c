package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmptyInput(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Build([][]float64{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuild_DimensionMismatch(t *testing.T) {
	_, err := Build([][]float64{{1, 0}, {1, 0, 0}})
	require.Error(t, err)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	v := []float64{3, 4}
	_, err := Build([][]float64{v})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, v)
}

func TestSearch_NotBuilt(t *testing.T) {
	var f *Flat
	_, err := f.Search([]float64{1, 0}, 3)
	assert.ErrorIs(t, err, ErrNotBuilt)
}

func TestSearch_SelfSimilarity(t *testing.T) {
	vectors := [][]float64{
		{1, 0, 0},
		{0, 2, 0},
		{0, 0, 0.5},
		{1, 1, 0},
	}
	f, err := Build(vectors)
	require.NoError(t, err)
	require.Equal(t, 4, f.Len())

	for i, v := range vectors {
		hits, err := f.Search(v, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, i, hits[0].Position)
		assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	}
}

func TestSearch_KLargerThanIndex(t *testing.T) {
	f, err := Build([][]float64{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	hits, err := f.Search([]float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_TiesBreakByPosition(t *testing.T) {
	// Identical vectors tie exactly; lower positions must come first.
	f, err := Build([][]float64{{0, 1}, {1, 0}, {1, 0}})
	require.NoError(t, err)

	hits, err := f.Search([]float64{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 2, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	f, err := Build([][]float64{{1, 0}})
	require.NoError(t, err)

	_, err = f.Search([]float64{1, 0, 0}, 1)
	require.Error(t, err)
}

func TestSearch_ZeroQueryScoresZero(t *testing.T) {
	f, err := Build([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits, err := f.Search([]float64{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.Zero(t, h.Score)
	}
}

func TestSearch_NonPositiveK(t *testing.T) {
	f, err := Build([][]float64{{1, 0}})
	require.NoError(t, err)

	hits, err := f.Search([]float64{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
