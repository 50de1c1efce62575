package index

import "math"

// Vector is a sparse term-weight vector in the fitted vocabulary space.
// Keys are vocabulary indices, values are TF-IDF weights. All weights
// are non-negative, so cosine similarity over Vectors stays in [0, 1].
type Vector map[int]float64

// Dot returns the dot product of two sparse vectors.
func (v Vector) Dot(other Vector) float64 {
	a, b := v, other
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for i, w := range a {
		sum += w * b[i]
	}
	return sum
}

// Norm returns the Euclidean magnitude of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two vectors, 0 when either
// has zero magnitude.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
