package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-faq-engine/config"
	"github.com/gcbaptista/go-faq-engine/internal/engine"
	"github.com/gcbaptista/go-faq-engine/model"
)

var testFAQs = []model.FAQ{
	{Question: "What are the class timings?", Answer: "9 AM to 4:30 PM"},
	{Question: "What is the admission fee?", Answer: "₹50,000 per year"},
}

func setupTestRouter(t *testing.T) (*gin.Engine, *engine.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	eng := engine.NewEngine(t.TempDir())
	router := gin.New()
	SetupRoutes(router, eng, nil) // no answer cache in tests
	return router, eng
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

func createCollegeIndex(t *testing.T, router *gin.Engine) {
	t.Helper()
	w := performRequest(t, router, http.MethodPost, "/indexes", CreateIndexRequest{
		Settings: config.MatcherSettings{Name: "college"},
		FAQs:     testFAQs,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to create test index: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateIndexHandler(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name: "valid index creation",
			body: CreateIndexRequest{
				Settings: config.MatcherSettings{Name: "college"},
				FAQs:     testFAQs,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate index",
			body: CreateIndexRequest{
				Settings: config.MatcherSettings{Name: "college"},
				FAQs:     testFAQs,
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "missing name",
			body: CreateIndexRequest{
				FAQs: testFAQs,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty corpus",
			body: CreateIndexRequest{
				Settings: config.MatcherSettings{Name: "empty"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "entry with empty answer",
			body: CreateIndexRequest{
				Settings: config.MatcherSettings{Name: "broken"},
				FAQs:     []model.FAQ{{Question: "Why?", Answer: ""}},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "threshold out of range",
			body: CreateIndexRequest{
				Settings: config.MatcherSettings{Name: "strict", ConfidenceThreshold: 1.7},
				FAQs:     testFAQs,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, router, http.MethodPost, "/indexes", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestMatchHandler_ConfidentMatch(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	w := performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "class timings"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["matched"] != true {
		t.Error("expected matched=true")
	}
	if body["matched_question"] != "What are the class timings?" {
		t.Errorf("unexpected matched question: %v", body["matched_question"])
	}
	if body["answer"] != "9 AM to 4:30 PM" {
		t.Errorf("unexpected answer: %v", body["answer"])
	}
	if confidence, ok := body["confidence"].(float64); !ok || confidence <= 0.5 {
		t.Errorf("expected confidence > 0.5, got %v", body["confidence"])
	}
	if body["query_id"] == "" {
		t.Error("expected a query_id in the envelope")
	}
}

func TestMatchHandler_NoMatch(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	w := performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "xyzzy plugh qux"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a no-match outcome, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["matched"] != false {
		t.Error("expected matched=false")
	}
	if body["confidence"] != 0.0 {
		t.Errorf("expected confidence 0, got %v", body["confidence"])
	}
	if body["answer"] != noMatchAnswer {
		t.Errorf("expected the fallback answer, got %v", body["answer"])
	}
}

func TestMatchHandler_EmptyQuery(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	w := performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty query, got %d", w.Code)
	}
}

func TestMatchHandler_ThresholdOverride(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	strict := 0.99
	w := performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "timings", Threshold: &strict})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with a strict threshold, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if confidence, ok := body["confidence"].(float64); !ok || confidence <= 0 {
		t.Errorf("no-match envelope must carry the best score found, got %v", body["confidence"])
	}
}

func TestMatchHandler_InvalidThreshold(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	invalid := 1.5
	w := performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "timings", Threshold: &invalid})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range threshold, got %d", w.Code)
	}
}

func TestMatchHandler_IndexNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(t, router, http.MethodPost, "/indexes/missing/_match", MatchRequest{Query: "anything"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["code"] != string(ErrorCodeIndexNotFound) {
		t.Errorf("expected %s error code, got %v", ErrorCodeIndexNotFound, body["code"])
	}
}

func TestListFAQsHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	w := performRequest(t, router, http.MethodGet, "/indexes/college/faqs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["count"] != 2.0 {
		t.Errorf("expected count 2, got %v", body["count"])
	}
}

func TestGetStatsHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "class timings"})
	performRequest(t, router, http.MethodPost, "/indexes/college/_match", MatchRequest{Query: "xyzzy"})

	w := performRequest(t, router, http.MethodGet, "/indexes/college/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["total_queries"] != 2.0 {
		t.Errorf("expected 2 total queries, got %v", body["total_queries"])
	}
	if body["matched_queries"] != 1.0 {
		t.Errorf("expected 1 matched query, got %v", body["matched_queries"])
	}
	if body["total_faqs"] != 2.0 {
		t.Errorf("expected 2 FAQs, got %v", body["total_faqs"])
	}
}

func TestListIndexesHandler(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(t, router, http.MethodGet, "/indexes", nil)
	body := decodeBody(t, w)
	if body["count"] != 0.0 {
		t.Errorf("expected 0 indexes, got %v", body["count"])
	}

	createCollegeIndex(t, router)

	w = performRequest(t, router, http.MethodGet, "/indexes", nil)
	body = decodeBody(t, w)
	if body["count"] != 1.0 {
		t.Errorf("expected 1 index, got %v", body["count"])
	}
}

func TestGetIndexHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	w := performRequest(t, router, http.MethodGet, "/indexes/college", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["faq_count"] != 2.0 {
		t.Errorf("expected faq_count 2, got %v", body["faq_count"])
	}

	w = performRequest(t, router, http.MethodGet, "/indexes/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing index, got %d", w.Code)
	}
}

func TestDeleteIndexHandler(t *testing.T) {
	router, _ := setupTestRouter(t)
	createCollegeIndex(t, router)

	w := performRequest(t, router, http.MethodDelete, "/indexes/college", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(t, router, http.MethodDelete, "/indexes/college", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting a missing index, got %d", w.Code)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", body["status"])
	}
}
