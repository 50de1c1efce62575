// Package evaluate scores the recommendation engine against a labeled
// relevance set using standard IR metrics (Recall@K, AP@K).
package evaluate

import (
	"context"
	"fmt"
	"strings"

	domrec "github.com/hirebase/assessrec/internal/domain/recommend"
)

// TestCase pairs a query with the assessment names judged relevant for it.
type TestCase struct {
	Query         string
	RelevantNames []string
}

// QueryMetrics holds per-query evaluation results.
type QueryMetrics struct {
	RecallAtK   float64
	APAtK       float64
	HasTestData bool
}

// SystemMetrics holds aggregate evaluation results.
type SystemMetrics struct {
	MeanRecallAtK float64
	MAPAtK        float64
	K             int
	NumTestCases  int
}

// Service evaluates a recommender against labeled test cases.
type Service struct {
	engine Recommender
	cases  []TestCase
}

// New creates an evaluation service.
func New(engine Recommender, cases []TestCase) *Service {
	return &Service{engine: engine, cases: cases}
}

// HasCases reports whether any labeled data is loaded.
func (s *Service) HasCases() bool { return len(s.cases) > 0 }

// EvaluateQuery matches the query to a labeled test case (approximate,
// case-insensitive substring containment in either direction) and
// scores the given recommendations against it. No matching case yields
// zero metrics with HasTestData=false, not an error.
func (s *Service) EvaluateQuery(query string, recs []domrec.Recommendation, k int) QueryMetrics {
	tc, ok := s.matchCase(query)
	if !ok {
		return QueryMetrics{}
	}
	return QueryMetrics{
		RecallAtK:   RecallAtK(recs, tc.RelevantNames, k),
		APAtK:       APAtK(recs, tc.RelevantNames, k),
		HasTestData: true,
	}
}

// EvaluateSystem runs the engine on every labeled case and averages
// the metrics.
func (s *Service) EvaluateSystem(ctx context.Context, k int) (SystemMetrics, error) {
	var recallSum, apSum float64
	for _, tc := range s.cases {
		req, err := domrec.NewRequest(tc.Query, "", domrec.DefaultMaxResults)
		if err != nil {
			return SystemMetrics{}, fmt.Errorf("build request for labeled case: %w", err)
		}
		recs, err := s.engine.Recommend(ctx, &req)
		if err != nil {
			return SystemMetrics{}, fmt.Errorf("recommend for labeled case: %w", err)
		}
		recallSum += RecallAtK(recs, tc.RelevantNames, k)
		apSum += APAtK(recs, tc.RelevantNames, k)
	}

	m := SystemMetrics{K: k, NumTestCases: len(s.cases)}
	if len(s.cases) > 0 {
		m.MeanRecallAtK = recallSum / float64(len(s.cases))
		m.MAPAtK = apSum / float64(len(s.cases))
	}
	return m, nil
}

func (s *Service) matchCase(query string) (TestCase, bool) {
	q := strings.ToLower(query)
	for _, tc := range s.cases {
		c := strings.ToLower(tc.Query)
		if strings.Contains(c, q) || strings.Contains(q, c) {
			return tc, true
		}
	}
	return TestCase{}, false
}

// RecallAtK is the fraction of relevant names found in the top-k
// recommendations. An empty relevant set scores a perfect 1.0.
func RecallAtK(recs []domrec.Recommendation, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 1.0
	}
	found := 0
	for i := range recs {
		if i >= k {
			break
		}
		if isRelevant(recs[i].Item().Name(), relevant) {
			found++
		}
	}
	return float64(found) / float64(len(relevant))
}

// APAtK is average precision over the top-k recommendations, with the
// divisor min(len(relevant), k). An empty relevant set scores 1.0;
// zero relevant hits scores 0.
func APAtK(recs []domrec.Recommendation, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 1.0
	}
	var precisionSum float64
	found := 0
	for i := range recs {
		if i >= k {
			break
		}
		if isRelevant(recs[i].Item().Name(), relevant) {
			found++
			precisionSum += float64(found) / float64(i+1)
		}
	}
	if found == 0 {
		return 0
	}
	divisor := len(relevant)
	if k < divisor {
		divisor = k
	}
	return precisionSum / float64(divisor)
}

func isRelevant(name string, relevant []string) bool {
	for _, r := range relevant {
		if name == r {
			return true
		}
	}
	return false
}
