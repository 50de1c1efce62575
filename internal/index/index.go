// Package index implements the TF-IDF lexical vector space over the
// assessment catalog and cosine ranking within it. The model is fitted
// once at startup and is immutable afterwards; queries are projected
// into the fitted space, never refit.
package index

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// MaxFeatures caps the fitted vocabulary, keeping only the terms with
// the highest total frequency across the corpus.
const MaxFeatures = 5000

// tokenRe matches word tokens of two or more characters.
var tokenRe = regexp.MustCompile(`\w\w+`)

// Index is a fitted TF-IDF model: a term vocabulary with inverse
// document frequencies, plus one weighted vector per catalog item.
// Row i of the matrix always corresponds to catalog item i.
type Index struct {
	vocab  map[string]int
	idf    []float64
	matrix []Vector
	fitted bool
}

// Fit builds the vocabulary and weighting model from the per-item
// composite texts. Deterministic given identical input order and
// content. An empty corpus yields an unfitted index, which is the
// valid "no recommendations possible" state, not an error.
func Fit(texts []string) *Index {
	if len(texts) == 0 {
		return &Index{}
	}

	docs := make([][]string, len(texts))
	termCount := make(map[string]int)
	docFreq := make(map[string]int)
	for i, text := range texts {
		terms := analyze(text)
		docs[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			termCount[t]++
			seen[t] = struct{}{}
		}
		for t := range seen {
			docFreq[t]++
		}
	}

	idx := &Index{
		vocab:  buildVocabulary(termCount, MaxFeatures),
		fitted: true,
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1.
	n := float64(len(texts))
	idx.idf = make([]float64, len(idx.vocab))
	for term, i := range idx.vocab {
		idx.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	idx.matrix = make([]Vector, len(docs))
	for i, terms := range docs {
		idx.matrix[i] = idx.weigh(terms)
	}
	return idx
}

// Fitted reports whether the index holds a usable model.
func (x *Index) Fitted() bool { return x.fitted }

// Len returns the number of catalog vectors.
func (x *Index) Len() int { return len(x.matrix) }

// VocabularySize returns the fitted vocabulary size.
func (x *Index) VocabularySize() int { return len(x.vocab) }

// Vectors returns the catalog matrix. Callers must not mutate it.
func (x *Index) Vectors() []Vector { return x.matrix }

// Vectorize projects arbitrary text into the fitted space using the
// same analysis and vocabulary. Out-of-vocabulary terms are ignored.
// Calling Vectorize on an unfitted index is a programming error.
func (x *Index) Vectorize(text string) Vector {
	if !x.fitted {
		panic("index: Vectorize called before Fit")
	}
	return x.weigh(analyze(text))
}

// weigh turns analyzed terms into an L2-normalized TF-IDF vector.
func (x *Index) weigh(terms []string) Vector {
	vec := make(Vector)
	for _, t := range terms {
		if i, ok := x.vocab[t]; ok {
			vec[i] += x.idf[i]
		}
	}
	norm := vec.Norm()
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// analyze lowercases, tokenizes, removes stop words, and emits
// unigram and bigram terms.
func analyze(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, t := range tokens {
		if _, stop := englishStopWords[t]; !stop {
			kept = append(kept, t)
		}
	}

	terms := make([]string, 0, 2*len(kept))
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

// buildVocabulary selects up to maxFeatures terms by descending corpus
// frequency (ties alphabetical) and assigns indices in alphabetical
// order over the selected terms, keeping the model deterministic.
func buildVocabulary(termCount map[string]int, maxFeatures int) map[string]int {
	terms := make([]string, 0, len(termCount))
	for t := range termCount {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termCount[terms[i]] != termCount[terms[j]] {
			return termCount[terms[i]] > termCount[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}
	return vocab
}
