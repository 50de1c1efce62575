// Package assessrec is the embeddable recommendation engine: it loads
// an assessment catalog, fits the lexical vector space once, and
// serves constraint-aware ranked recommendations in-process.
package assessrec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/db"
	dbRedis "github.com/hirebase/assessrec/internal/db/redis"
	domcat "github.com/hirebase/assessrec/internal/domain/catalog"
	domrec "github.com/hirebase/assessrec/internal/domain/recommend"
	"github.com/hirebase/assessrec/internal/index"
	catalogrepo "github.com/hirebase/assessrec/internal/repository/catalog"
	"github.com/hirebase/assessrec/internal/repository/fetchcache"
	"github.com/hirebase/assessrec/internal/transport/fetch"
	evaluateuc "github.com/hirebase/assessrec/internal/usecase/evaluate"
	recommenduc "github.com/hirebase/assessrec/internal/usecase/recommend"
)

const defaultCacheReadinessTimeout = 10 * time.Second

// Item is a catalog record supplied by the embedding application.
type Item struct {
	Name            string
	URL             string
	RemoteTesting   string
	AdaptiveSupport string
	Duration        string
	TestType        string
	Description     string
}

// Recommendation is one ranked result.
type Recommendation struct {
	Item       Item
	Similarity float64
}

// TestCase labels a query with its relevant assessment names.
type TestCase struct {
	Query         string
	RelevantNames []string
}

// SystemMetrics aggregates evaluation results over all test cases.
type SystemMetrics struct {
	MeanRecallAtK float64
	MAPAtK        float64
	K             int
	NumTestCases  int
}

// Client is the assessrec SDK entry point.
type Client struct {
	catalog   domcat.Catalog
	engine    *recommenduc.Service
	evaluator *evaluateuc.Service
	store     db.Store
}

// New creates a Client: loads the catalog, fits the vector space, and
// wires the engine. The catalog must be supplied via WithCatalogFile
// or WithItems.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		fetchTimeout: fetch.DefaultTimeout,
		cacheTTL:     time.Hour,
		logger:       zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	idx := index.Fit(cat.CompositeTexts())

	var store db.Store
	var fetcher recommenduc.Fetcher
	if !cfg.fetchDisabled {
		fetcher = fetch.New(fetch.Config{
			Timeout: cfg.fetchTimeout,
			Logger:  cfg.logger,
		})
		if len(cfg.cacheAddrs) > 0 {
			store, err = dbRedis.NewStore(dbRedis.Config{
				Addrs:    cfg.cacheAddrs,
				Password: cfg.cachePassword,
			})
			if err != nil {
				return nil, fmt.Errorf("assessrec: create cache store: %w", err)
			}
			if err := store.WaitForReady(context.Background(), defaultCacheReadinessTimeout); err != nil {
				store.Close()
				return nil, fmt.Errorf("assessrec: cache store not ready: %w", err)
			}
			fetcher = fetchcache.New(fetcher, store, cfg.cacheTTL, nil, cfg.logger)
		}
	}

	engine := recommenduc.New(cat, idx, fetcher, cfg.logger)

	cases := make([]evaluateuc.TestCase, len(cfg.testCases))
	for i, tc := range cfg.testCases {
		cases[i] = evaluateuc.TestCase{Query: tc.Query, RelevantNames: tc.RelevantNames}
	}

	return &Client{
		catalog:   cat,
		engine:    engine,
		evaluator: evaluateuc.New(engine, cases),
		store:     store,
	}, nil
}

func loadCatalog(cfg *clientConfig) (domcat.Catalog, error) {
	if cfg.catalogPath == "" && len(cfg.items) == 0 {
		return nil, errors.New("assessrec: catalog required (use WithCatalogFile or WithItems)")
	}
	if cfg.catalogPath != "" {
		cat, err := catalogrepo.Load(cfg.catalogPath, cfg.logger)
		if err != nil {
			return nil, fmt.Errorf("assessrec: load catalog: %w", err)
		}
		return cat, nil
	}

	cat := make(domcat.Catalog, 0, len(cfg.items))
	for i, it := range cfg.items {
		item, err := domcat.New(
			it.Name, it.URL, it.RemoteTesting, it.AdaptiveSupport,
			it.Duration, it.TestType, it.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("assessrec: item %d: %w", i, err)
		}
		cat = append(cat, item)
	}
	return cat, nil
}

// Recommend returns up to maxResults catalog items ranked by similarity
// to the query, honoring a duration constraint extracted from the text.
// maxResults is clamped to [1, 10]; 0 means the default of 10. url may
// be empty.
func (c *Client) Recommend(ctx context.Context, query, url string, maxResults int) ([]Recommendation, error) {
	req, err := domrec.NewRequest(query, url, maxResults)
	if err != nil {
		return nil, fmt.Errorf("assessrec: %w", err)
	}
	recs, err := c.engine.Recommend(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("assessrec: recommend: %w", err)
	}

	out := make([]Recommendation, len(recs))
	for i := range recs {
		item := recs[i].Item()
		out[i] = Recommendation{
			Item: Item{
				Name:            item.Name(),
				URL:             item.URL(),
				RemoteTesting:   item.RemoteTesting(),
				AdaptiveSupport: item.AdaptiveSupport(),
				Duration:        item.Duration(),
				TestType:        item.TestType(),
				Description:     item.Description(),
			},
			Similarity: recs[i].Similarity(),
		}
	}
	return out, nil
}

// CatalogSize returns the number of loaded catalog items.
func (c *Client) CatalogSize() int { return len(c.catalog) }

// Evaluate runs the labeled test cases through the engine and returns
// mean Recall@K and MAP@K.
func (c *Client) Evaluate(ctx context.Context, k int) (SystemMetrics, error) {
	if k <= 0 {
		k = 3
	}
	m, err := c.evaluator.EvaluateSystem(ctx, k)
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("assessrec: evaluate: %w", err)
	}
	return SystemMetrics{
		MeanRecallAtK: m.MeanRecallAtK,
		MAPAtK:        m.MAPAtK,
		K:             m.K,
		NumTestCases:  m.NumTestCases,
	}, nil
}

// Close releases the cache store connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
