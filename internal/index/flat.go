// Package index provides a flat inner-product index over unit-normalized
// vectors, so inner product equals cosine similarity.
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyInput is returned when there are no vectors to index.
	ErrEmptyInput = errors.New("no vectors to index")

	// ErrNotBuilt is returned when searching an index that was never built.
	ErrNotBuilt = errors.New("index not built")
)

// Hit is one nearest-neighbor result: a position in insertion order and
// the inner-product score against the query.
type Hit struct {
	Position int
	Score    float64
}

// Flat is a brute-force similarity index. Position i corresponds to the
// i-th vector passed to Build; callers rely on that alignment to map hits
// back to their chunks. A Flat is immutable once built.
type Flat struct {
	dim     int
	vectors [][]float64
}

// Build creates an index over the given embeddings. Every vector is copied
// and L2-normalized on the way in; the inputs are left untouched.
func Build(embeddings [][]float64) (*Flat, error) {
	if len(embeddings) == 0 {
		return nil, ErrEmptyInput
	}
	dim := len(embeddings[0])
	if dim == 0 {
		return nil, ErrEmptyInput
	}
	vectors := make([][]float64, len(embeddings))
	for i, v := range embeddings {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
		vectors[i] = normalize(v)
	}
	return &Flat{dim: dim, vectors: vectors}, nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	if f == nil {
		return 0
	}
	return len(f.vectors)
}

// Dim returns the vector dimensionality.
func (f *Flat) Dim() int {
	if f == nil {
		return 0
	}
	return f.dim
}

// Search returns the min(k, Len()) nearest neighbors of query, ordered by
// descending score with ties broken by ascending position. The query is
// normalized before scoring.
func (f *Flat) Search(query []float64, k int) ([]Hit, error) {
	if f == nil || len(f.vectors) == 0 {
		return nil, ErrNotBuilt
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("query has dimension %d, want %d", len(query), f.dim)
	}
	if k <= 0 {
		return nil, nil
	}
	q := normalize(query)
	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Position: i, Score: dot(v, q)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score == hits[j].Score {
			return hits[i].Position < hits[j].Position
		}
		return hits[i].Score > hits[j].Score
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// normalize returns a unit-norm copy of v. Zero vectors come back as a
// plain copy so they score zero against everything instead of producing NaN.
func normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	var norm float64
	for _, x := range out {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return out
	}
	for i := range out {
		out[i] /= norm
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
