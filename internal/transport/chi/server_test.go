package chi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/domain/catalog"
	"github.com/hirebase/assessrec/internal/index"
	"github.com/hirebase/assessrec/internal/usecase/evaluate"
	healthuc "github.com/hirebase/assessrec/internal/usecase/health"
	recommenduc "github.com/hirebase/assessrec/internal/usecase/recommend"
)

// --- Fixtures ---

func item(t *testing.T, name, duration, testType, description string) catalog.Item {
	t.Helper()
	it, err := catalog.New(name, "https://example.com/"+strings.ToLower(name), "Yes", "No", duration, testType, description)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return it
}

func testCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	return catalog.Catalog{
		item(t, "Core Java (Entry Level)", "35 minutes", "Knowledge & Skills",
			"Java programming assessment for entry level developers"),
		item(t, "Core Java (Advanced Level)", "90 minutes", "Knowledge & Skills",
			"Java programming assessment for experienced developers"),
		item(t, "Sales Representative Solution", "55 minutes", "Competencies",
			"Sales skills cold calling customer negotiation"),
	}
}

type okChecker struct{}

func (okChecker) Ready() error { return nil }

func newTestServer(t *testing.T, cases []evaluate.TestCase) http.Handler {
	t.Helper()
	cat := testCatalog(t)
	idx := index.Fit(cat.CompositeTexts())
	engine := recommenduc.New(cat, idx, nil, zap.NewNop())
	evaluator := evaluate.New(engine, cases)
	health := healthuc.New(okChecker{}, nil)
	srv := NewServer(engine, evaluator, health, 3, zap.NewNop())

	r := gochi.NewRouter()
	srv.Routes(r)
	return r
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, resp.Body.String())
	}
}

// --- Tests ---

func TestRecommendPost(t *testing.T) {
	h := newTestServer(t, nil)

	body := `{"query": "hiring entry level java developers who can be assessed in 40 minutes", "max_results": 5}`
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var out recommendResponse
	decode(t, resp, &out)
	if out.Count == 0 || len(out.Recommendations) != out.Count {
		t.Fatalf("unexpected response: %+v", out)
	}
	top := out.Recommendations[0]
	if top.Name != "Core Java (Entry Level)" {
		t.Errorf("top = %q, want Core Java (Entry Level)", top.Name)
	}
	if top.Similarity < 0 || top.Similarity > 1 {
		t.Errorf("similarity = %f, out of range", top.Similarity)
	}
	// The 90-minute assessment must be filtered by the 40-minute limit.
	for _, rec := range out.Recommendations {
		if rec.Name == "Core Java (Advanced Level)" {
			t.Errorf("duration filter failed, got %q", rec.Name)
		}
	}
}

func TestRecommendGet(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/recommend?query=sales+cold+calling&max_results=1", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var out recommendResponse
	decode(t, resp, &out)
	if out.Count != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	if got := out.Recommendations[0].Name; got != "Sales Representative Solution" {
		t.Errorf("top = %q", got)
	}
}

func TestRecommend_MissingQuery(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(`{"query": "  "}`))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	var out errorResponse
	decode(t, resp, &out)
	if out.Code != "validation_failed" {
		t.Errorf("code = %q", out.Code)
	}
}

func TestRecommend_InvalidBody(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(`{not json`))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
	var out errorResponse
	decode(t, resp, &out)
	if out.Code != "bad_request" {
		t.Errorf("code = %q", out.Code)
	}
}

func TestRecommendGet_BadMaxResults(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/recommend?query=java&max_results=lots", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var out healthResponse
	decode(t, resp, &out)
	if out.Status != "ok" {
		t.Errorf("status = %q, want ok", out.Status)
	}
	if out.Checks["catalog"] != "ok" {
		t.Errorf("catalog check = %q", out.Checks["catalog"])
	}
}

func TestEvaluate_NoLabeledData(t *testing.T) {
	h := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/evaluate", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
	var out errorResponse
	decode(t, resp, &out)
	if out.Code != "no_labeled_data" {
		t.Errorf("code = %q", out.Code)
	}
}

func TestEvaluate_System(t *testing.T) {
	cases := []evaluate.TestCase{{
		Query:         "hiring entry level java developers",
		RelevantNames: []string{"Core Java (Entry Level)", "Core Java (Advanced Level)"},
	}}
	h := newTestServer(t, cases)

	req := httptest.NewRequest(http.MethodGet, "/evaluate?k=3", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out evaluateSystemResponse
	decode(t, resp, &out)
	if out.NumTestCases != 1 || out.K != 3 {
		t.Errorf("unexpected metadata: %+v", out)
	}
	if out.MeanRecallAtK <= 0 {
		t.Errorf("MeanRecallAtK = %f, want > 0", out.MeanRecallAtK)
	}
}

func TestEvaluate_SingleQuery(t *testing.T) {
	cases := []evaluate.TestCase{{
		Query:         "hiring entry level java developers",
		RelevantNames: []string{"Core Java (Entry Level)"},
	}}
	h := newTestServer(t, cases)

	req := httptest.NewRequest(http.MethodGet, "/evaluate?query=entry+level+java", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var out evaluateQueryResponse
	decode(t, resp, &out)
	if !out.HasTestData {
		t.Error("expected labeled match")
	}
	if out.RecallAtK <= 0 {
		t.Errorf("RecallAtK = %f, want > 0", out.RecallAtK)
	}
}

func TestEvaluate_BadK(t *testing.T) {
	h := newTestServer(t, []evaluate.TestCase{{Query: "q", RelevantNames: []string{"X"}}})

	req := httptest.NewRequest(http.MethodGet, "/evaluate?k=zero", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

// --- Auth middleware ---

func TestBearerAuth(t *testing.T) {
	h := newTestServer(t, nil)
	r := gochi.NewRouter()
	r.Use(BearerAuthMiddleware([]string{"secret-key"}))
	r.Mount("/", h)

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	if resp := get("/recommend?query=java", ""); resp.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.Code)
	}
	if resp := get("/recommend?query=java", "Basic secret-key"); resp.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: status = %d, want 401", resp.Code)
	}
	if resp := get("/recommend?query=java", "Bearer wrong"); resp.Code != http.StatusUnauthorized {
		t.Errorf("bad key: status = %d, want 401", resp.Code)
	}
	if resp := get("/recommend?query=java", "Bearer secret-key"); resp.Code != http.StatusOK {
		t.Errorf("valid key: status = %d, want 200", resp.Code)
	}
	if resp := get("/health", ""); resp.Code != http.StatusOK {
		t.Errorf("health exempt: status = %d, want 200", resp.Code)
	}
}

func TestBearerAuth_DisabledWithNoKeys(t *testing.T) {
	h := newTestServer(t, nil)
	r := gochi.NewRouter()
	r.Use(BearerAuthMiddleware(nil))
	r.Mount("/", h)

	req := httptest.NewRequest(http.MethodGet, "/recommend?query=java", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.Code)
	}
}
