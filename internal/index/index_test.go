package index

import (
	"math"
	"reflect"
	"testing"
)

var corpus = []string{
	"Core Java Entry Level Knowledge Skills java programming assessment for entry level developers",
	"Sales Representative Solution Competencies sales assessment covering negotiation and closing",
	"Verify Numerical Reasoning Aptitude adaptive numerical reasoning test",
}

func TestFit_EmptyCorpus(t *testing.T) {
	idx := Fit(nil)
	if idx.Fitted() {
		t.Error("empty corpus must yield an unfitted index")
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestFit_MatrixShape(t *testing.T) {
	idx := Fit(corpus)
	if !idx.Fitted() {
		t.Fatal("expected fitted index")
	}
	if idx.Len() != len(corpus) {
		t.Errorf("Len() = %d, want %d", idx.Len(), len(corpus))
	}
	if idx.VocabularySize() == 0 {
		t.Error("expected non-empty vocabulary")
	}
}

func TestFit_Deterministic(t *testing.T) {
	a := Fit(corpus)
	b := Fit(corpus)
	if !reflect.DeepEqual(a.Vectors(), b.Vectors()) {
		t.Error("identical input must produce identical vectors")
	}
}

func TestVectorize_PanicsBeforeFit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic from Vectorize before Fit")
		}
	}()
	idx := Fit(nil)
	idx.Vectorize("anything")
}

func TestVectorize_OutOfVocabularyIgnored(t *testing.T) {
	idx := Fit(corpus)
	vec := idx.Vectorize("zzzunknown qqqterm")
	if len(vec) != 0 {
		t.Errorf("expected empty vector for OOV-only text, got %d terms", len(vec))
	}
}

func TestVectorize_RowsAreNormalized(t *testing.T) {
	idx := Fit(corpus)
	for i, row := range idx.Vectors() {
		if norm := row.Norm(); math.Abs(norm-1) > 1e-9 {
			t.Errorf("row %d norm = %f, want 1", i, norm)
		}
	}
}

func TestRoundTrip_SelfSimilarityIsRankOne(t *testing.T) {
	idx := Fit(corpus)
	for i, text := range corpus {
		vec := idx.Vectorize(text)
		ranked := Rank(vec, idx.Vectors())
		if ranked[0].Index != i {
			t.Errorf("doc %d: self not at rank 1, got index %d", i, ranked[0].Index)
		}
		if math.Abs(ranked[0].Score-1) > 1e-9 {
			t.Errorf("doc %d: self-similarity = %f, want 1", i, ranked[0].Score)
		}
	}
}

func TestAnalyze_StopWordsAndShortTokens(t *testing.T) {
	terms := analyze("The cat and a dog in x it")
	for _, term := range terms {
		switch term {
		case "the", "and", "in", "it", "x", "a":
			t.Errorf("term %q should have been filtered", term)
		}
	}
	if !containsTerm(terms, "cat") || !containsTerm(terms, "dog") {
		t.Errorf("expected cat and dog in %v", terms)
	}
	if !containsTerm(terms, "cat dog") {
		t.Errorf("expected bigram joining tokens across removed stop words, got %v", terms)
	}
}

func TestAnalyze_Lowercases(t *testing.T) {
	terms := analyze("Java DEVELOPER")
	if !containsTerm(terms, "java") || !containsTerm(terms, "developer") || !containsTerm(terms, "java developer") {
		t.Errorf("unexpected terms %v", terms)
	}
}

func TestBuildVocabulary_AssignsAlphabeticalIndices(t *testing.T) {
	counts := map[string]int{"beta": 5, "alpha": 5, "gamma": 9, "delta": 1}
	vocab := buildVocabulary(counts, MaxFeatures)
	want := map[string]int{"alpha": 0, "beta": 1, "delta": 2, "gamma": 3}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocab = %v, want %v", vocab, want)
	}
}

func TestBuildVocabulary_CapsByFrequency(t *testing.T) {
	counts := map[string]int{"common": 10, "mid": 5, "rare": 1}
	vocab := buildVocabulary(counts, 2)
	if len(vocab) != 2 {
		t.Fatalf("len = %d, want 2", len(vocab))
	}
	if _, ok := vocab["rare"]; ok {
		t.Error("lowest-frequency term should be dropped by the cap")
	}
	// Selected terms still indexed alphabetically.
	want := map[string]int{"common": 0, "mid": 1}
	if !reflect.DeepEqual(vocab, want) {
		t.Errorf("vocab = %v, want %v", vocab, want)
	}
}

func containsTerm(terms []string, want string) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
