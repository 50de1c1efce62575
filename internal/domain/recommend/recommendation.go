package recommend

import "github.com/hirebase/assessrec/internal/domain/catalog"

// Recommendation is a catalog item paired with its similarity score.
// Produced per request, never persisted.
type Recommendation struct {
	item       catalog.Item
	similarity float64
}

// NewRecommendation creates a recommendation. The caller is responsible
// for rounding the score before construction.
func NewRecommendation(item catalog.Item, similarity float64) Recommendation {
	return Recommendation{item: item, similarity: similarity}
}

// Item returns the recommended catalog item.
func (r Recommendation) Item() catalog.Item { return r.item }

// Similarity returns the cosine similarity in [0, 1], rounded to 4 decimals.
func (r Recommendation) Similarity() float64 { return r.similarity }
