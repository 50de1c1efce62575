// Package chi implements the HTTP API on the chi router.
package chi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/domain"
	domrec "github.com/hirebase/assessrec/internal/domain/recommend"
	"github.com/hirebase/assessrec/internal/metrics"
	"github.com/hirebase/assessrec/internal/usecase/evaluate"
	healthuc "github.com/hirebase/assessrec/internal/usecase/health"
	recommenduc "github.com/hirebase/assessrec/internal/usecase/recommend"
	"github.com/hirebase/assessrec/internal/version"
)

// Server exposes the recommendation engine over HTTP.
type Server struct {
	engine    *recommenduc.Service
	evaluator *evaluate.Service
	health    *healthuc.Service
	defaultK  int
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	engine *recommenduc.Service,
	evaluator *evaluate.Service,
	health *healthuc.Service,
	defaultK int,
	logger *zap.Logger,
) *Server {
	if defaultK <= 0 {
		defaultK = 3
	}
	return &Server{
		engine:    engine,
		evaluator: evaluator,
		health:    health,
		defaultK:  defaultK,
		logger:    logger,
	}
}

// Routes mounts all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Post("/recommend", s.handleRecommendPost)
	r.Get("/recommend", s.handleRecommendGet)
	r.Get("/evaluate", s.handleEvaluate)
	r.Handle("/metrics", promhttp.Handler())
}

// recommendRequest is the POST /recommend body.
type recommendRequest struct {
	Query      string `json:"query"`
	URL        string `json:"url,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// assessmentResponse is one recommendation row.
type assessmentResponse struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	RemoteTesting   string  `json:"remote_testing"`
	AdaptiveSupport string  `json:"adaptive_support"`
	Duration        string  `json:"duration"`
	TestType        string  `json:"test_type"`
	Similarity      float64 `json:"similarity"`
	Description     string  `json:"description,omitempty"`
}

// recommendResponse is the /recommend reply.
type recommendResponse struct {
	Recommendations []assessmentResponse `json:"recommendations"`
	Count           int                  `json:"count"`
}

func (s *Server) handleRecommendPost(w http.ResponseWriter, r *http.Request) {
	var body recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	s.recommend(w, r, body)
}

func (s *Server) handleRecommendGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	maxResults := 0
	if raw := q.Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", "max_results must be an integer")
			return
		}
		maxResults = n
	}
	s.recommend(w, r, recommendRequest{
		Query:      q.Get("query"),
		URL:        q.Get("url"),
		MaxResults: maxResults,
	})
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request, body recommendRequest) {
	req, err := domrec.NewRequest(body.Query, body.URL, body.MaxResults)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	metrics.RecommendRequestsTotal.Inc()

	recs, err := s.engine.Recommend(r.Context(), &req)
	if err != nil {
		s.logger.Error("Recommendation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Error generating recommendations")
		return
	}

	metrics.RecommendResultsReturned.Observe(float64(len(recs)))

	rows := make([]assessmentResponse, len(recs))
	for i := range recs {
		item := recs[i].Item()
		rows[i] = assessmentResponse{
			Name:            item.Name(),
			URL:             item.URL(),
			RemoteTesting:   item.RemoteTesting(),
			AdaptiveSupport: item.AdaptiveSupport(),
			Duration:        item.Duration(),
			TestType:        item.TestType(),
			Similarity:      recs[i].Similarity(),
			Description:     item.Description(),
		}
	}

	writeJSON(w, http.StatusOK, recommendResponse{Recommendations: rows, Count: len(rows)})
}

// healthResponse is the /health reply.
type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, result := range report.Checks {
		checks[name] = string(result)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// evaluateQueryResponse is the per-query /evaluate reply.
type evaluateQueryResponse struct {
	RecallAtK   float64 `json:"recall_at_k"`
	APAtK       float64 `json:"ap_at_k"`
	HasTestData bool    `json:"has_test_data"`
	K           int     `json:"k"`
}

// evaluateSystemResponse is the system-wide /evaluate reply.
type evaluateSystemResponse struct {
	MeanRecallAtK float64 `json:"mean_recall_at_k"`
	MAPAtK        float64 `json:"map_at_k"`
	K             int     `json:"k"`
	NumTestCases  int     `json:"num_test_cases"`
}

// handleEvaluate runs the evaluation harness. With a "query" parameter
// it scores that single query; otherwise it evaluates the whole
// labeled set.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if !s.evaluator.HasCases() {
		writeError(w, http.StatusNotFound, "no_labeled_data", domain.ErrNoLabeledData.Error())
		return
	}

	k := s.defaultK
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "validation_failed", "k must be a positive integer")
			return
		}
		k = n
	}

	if query := r.URL.Query().Get("query"); query != "" {
		req, err := domrec.NewRequest(query, "", domrec.DefaultMaxResults)
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		recs, err := s.engine.Recommend(r.Context(), &req)
		if err != nil {
			s.logger.Error("Recommendation failed during evaluation", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "Error generating recommendations")
			return
		}
		m := s.evaluator.EvaluateQuery(query, recs, k)
		writeJSON(w, http.StatusOK, evaluateQueryResponse{
			RecallAtK:   m.RecallAtK,
			APAtK:       m.APAtK,
			HasTestData: m.HasTestData,
			K:           k,
		})
		return
	}

	m, err := s.evaluator.EvaluateSystem(r.Context(), k)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", err.Error())
			return
		}
		s.logger.Error("System evaluation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "Error evaluating system")
		return
	}

	writeJSON(w, http.StatusOK, evaluateSystemResponse{
		MeanRecallAtK: m.MeanRecallAtK,
		MAPAtK:        m.MAPAtK,
		K:             k,
		NumTestCases:  m.NumTestCases,
	})
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
