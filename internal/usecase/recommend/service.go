// Package recommend orchestrates the recommendation pipeline: input
// assembly, preprocessing, ranking, constraint filtering, and the
// non-empty fallback.
package recommend

import (
	"context"
	"math"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/domain/catalog"
	"github.com/hirebase/assessrec/internal/domain/constraint"
	domrec "github.com/hirebase/assessrec/internal/domain/recommend"
	"github.com/hirebase/assessrec/internal/index"
)

// Service handles recommendation requests. Stateless across calls; the
// catalog and vectorizer are built once at startup and read-only here,
// so concurrent requests need no locking.
type Service struct {
	catalog    catalog.Catalog
	vectorizer Vectorizer
	fetcher    Fetcher
	logger     *zap.Logger

	fallbacks     prometheus.Counter
	fetchFailures prometheus.Counter
}

// New creates a recommendation service. fetcher may be nil, in which
// case URL input is ignored.
func New(cat catalog.Catalog, vectorizer Vectorizer, fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:    cat,
		vectorizer: vectorizer,
		fetcher:    fetcher,
		logger:     logger,
	}
}

// WithMetrics attaches optional counters for fallback responses and
// swallowed fetch failures.
func (s *Service) WithMetrics(fallbacks, fetchFailures prometheus.Counter) *Service {
	s.fallbacks = fallbacks
	s.fetchFailures = fetchFailures
	return s
}

// Recommend returns up to req.MaxResults() catalog items ranked by
// cosine similarity to the query, honoring an extracted duration
// constraint. With a non-empty catalog the result is never empty: when
// the constraint filters out every candidate, the single best-scoring
// item is returned regardless of its duration.
func (s *Service) Recommend(ctx context.Context, req *domrec.Request) ([]domrec.Recommendation, error) {
	text := s.assembleInput(ctx, req)
	text = preprocess(text)

	// Empty catalog or unfitted space is a valid "nothing to recommend"
	// state, not an error.
	if len(s.catalog) == 0 || !s.vectorizer.Fitted() {
		return []domrec.Recommendation{}, nil
	}

	queryVec := s.vectorizer.Vectorize(text)
	ranked := index.Rank(queryVec, s.vectorizer.Vectors())

	limit := constraint.Extract(text)

	recs := s.collect(ranked, limit, req.MaxResults())

	if len(recs) == 0 {
		// Fallback: the global best, ignoring the duration constraint.
		// Callers always get feedback when any catalog data exists.
		best := ranked[0]
		recs = append(recs, domrec.NewRecommendation(s.catalog[best.Index], roundScore(best.Score)))
		if s.fallbacks != nil {
			s.fallbacks.Inc()
		}
		s.logger.Debug("Duration filter emptied results, returning fallback",
			zap.Int("limit_minutes", limit.Minutes()),
			zap.String("item", s.catalog[best.Index].Name()),
		)
	}

	return recs, nil
}

// assembleInput appends fetched URL content to the query. Any fetch
// failure is swallowed and ranking proceeds on the query alone.
func (s *Service) assembleInput(ctx context.Context, req *domrec.Request) string {
	text := req.Query()
	if req.URL() == "" || s.fetcher == nil {
		return text
	}

	content, err := s.fetcher.FetchText(ctx, req.URL())
	if err != nil {
		if s.fetchFailures != nil {
			s.fetchFailures.Inc()
		}
		s.logger.Warn("Failed to fetch URL content, ranking on query text alone",
			zap.String("url", req.URL()),
			zap.Error(err),
		)
		return text
	}
	if content == "" {
		return text
	}
	return text + " " + content
}

// collect walks the ranked order, applying the duration filter and
// truncating at maxResults.
func (s *Service) collect(
	ranked []index.Scored, limit constraint.MaxDuration, maxResults int,
) []domrec.Recommendation {
	recs := make([]domrec.Recommendation, 0, maxResults)
	for _, sc := range ranked {
		item := s.catalog[sc.Index]
		if !limit.Allows(item.DurationMinutes()) {
			continue
		}
		recs = append(recs, domrec.NewRecommendation(item, roundScore(sc.Score)))
		if len(recs) >= maxResults {
			break
		}
	}
	return recs
}

// preprocess lowercases and collapses whitespace.
func preprocess(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// roundScore rounds a similarity to 4 decimal places.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}
