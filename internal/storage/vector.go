package storage

import (
	"math"
	"sort"

	"github.com/DjordjeVuckovic/support-rag/internal/domain"
)

// CosineDistance returns 1 - cosine similarity. Zero vectors are at distance 1.
func CosineDistance(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// NearestChunks ranks chunks by cosine distance to query and keeps the k nearest.
// Ties keep insertion order.
func NearestChunks(chunks []domain.DocumentChunk, query []float32, k int) []domain.RetrievedChunk {
	if k <= 0 || len(chunks) == 0 {
		return []domain.RetrievedChunk{}
	}

	type scored struct {
		chunk    domain.DocumentChunk
		distance float64
	}
	all := make([]scored, len(chunks))
	for i, c := range chunks {
		all[i] = scored{chunk: c, distance: CosineDistance(c.Embedding, query)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].distance < all[j].distance })

	n := min(k, len(all))
	out := make([]domain.RetrievedChunk, n)
	for i := 0; i < n; i++ {
		d := all[i].distance
		out[i] = domain.NewRetrievedChunk(all[i].chunk.Source, all[i].chunk.Text, &d)
	}
	return out
}
