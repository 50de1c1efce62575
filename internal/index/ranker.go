package index

import "sort"

// Scored pairs a catalog row index with its similarity score.
type Scored struct {
	Index int
	Score float64
}

// Rank scores the query vector against every catalog vector and
// returns descending order. The sort is stable, so equal scores keep
// original catalog order. Output length equals the matrix length.
func Rank(query Vector, matrix []Vector) []Scored {
	ranked := make([]Scored, len(matrix))
	for i, row := range matrix {
		ranked[i] = Scored{Index: i, Score: Cosine(query, row)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
