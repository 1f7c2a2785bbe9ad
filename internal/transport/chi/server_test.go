package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/repository/memstore"
	healthuc "github.com/kailas-cloud/strindex/internal/usecase/health"
	nlqueryuc "github.com/kailas-cloud/strindex/internal/usecase/nlquery"
	queryuc "github.com/kailas-cloud/strindex/internal/usecase/query"
	recorduc "github.com/kailas-cloud/strindex/internal/usecase/record"
)

// stubTranslator lets tests control the natural-language layer.
type stubTranslator struct {
	raw map[string]any
	err error
}

func (s *stubTranslator) Translate(_ context.Context, _ string) (map[string]any, error) {
	return s.raw, s.err
}

func newTestRouter(t *testing.T, translator nlqueryuc.Translator) *chi.Mux {
	t.Helper()

	store := memstore.New()
	recordSvc := recorduc.New(store)
	querySvc := queryuc.New(store)
	if translator == nil {
		translator = nlqueryuc.NewRuleTranslator()
	}
	nlSvc := nlqueryuc.New(translator, querySvc)
	healthSvc := healthuc.New(nil, nil)

	server := NewServer(recordSvc, querySvc, nlSvc, healthSvc, zap.NewNop())

	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rr.Body.String())
	}
	return out
}

func TestInsertString_Created(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": "racecar"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, http.StatusCreated, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["value"] != "racecar" {
		t.Errorf("value: got %v", body["value"])
	}
	props, ok := body["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties missing: %v", body)
	}
	if props["is_palindrome"] != true {
		t.Errorf("is_palindrome: got %v, want true", props["is_palindrome"])
	}
	if props["word_count"] != float64(1) {
		t.Errorf("word_count: got %v, want 1", props["word_count"])
	}
	if body["id"] != props["sha256_hash"] {
		t.Errorf("id %v should equal sha256_hash %v", body["id"], props["sha256_hash"])
	}
}

func TestInsertString_Duplicate_409WithExistingID(t *testing.T) {
	r := newTestRouter(t, nil)

	first := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": "hello"})
	if first.Code != http.StatusCreated {
		t.Fatalf("first insert: got %d", first.Code)
	}
	firstBody := decodeBody(t, first)

	second := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": "hello"})
	if second.Code != http.StatusConflict {
		t.Fatalf("duplicate: got %d, want %d", second.Code, http.StatusConflict)
	}
	secondBody := decodeBody(t, second)
	if secondBody["code"] != codeAlreadyExists {
		t.Errorf("code: got %v, want %s", secondBody["code"], codeAlreadyExists)
	}
	if secondBody["existing_id"] != firstBody["id"] {
		t.Errorf("existing_id: got %v, want %v", secondBody["existing_id"], firstBody["id"])
	}
}

func TestInsertString_NonStringValue_400(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, payload := range []map[string]any{
		{"value": 42},
		{"value": true},
		{"value": nil},
		{},
	} {
		rr := doJSON(t, r, "POST", "/api/v1/strings", payload)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("payload %v: got %d, want %d", payload, rr.Code, http.StatusBadRequest)
		}
		body := decodeBody(t, rr)
		if body["code"] != codeInvalidInput {
			t.Errorf("payload %v: code %v, want %s", payload, body["code"], codeInvalidInput)
		}
	}
}

func TestInsertString_MalformedJSON_400(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest("POST", "/api/v1/strings", bytes.NewBufferString("{nope"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if body := decodeBody(t, rr); body["code"] != codeBadRequest {
		t.Errorf("code: got %v, want %s", body["code"], codeBadRequest)
	}
}

func TestGetString_NotFound(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := doJSON(t, r, "GET", "/api/v1/strings/deadbeef", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if body := decodeBody(t, rr); body["code"] != codeNotFound {
		t.Errorf("code: got %v, want %s", body["code"], codeNotFound)
	}
}

func TestGetString_RoundTrip(t *testing.T) {
	r := newTestRouter(t, nil)

	created := decodeBody(t, doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": "hello"}))
	id, _ := created["id"].(string)

	rr := doJSON(t, r, "GET", "/api/v1/strings/"+id, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if body := decodeBody(t, rr); body["value"] != "hello" {
		t.Errorf("value: got %v, want hello", body["value"])
	}
}

func TestListStrings_QueryFilters(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, v := range []string{"racecar", "hello world", "deed"} {
		if rr := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": v}); rr.Code != http.StatusCreated {
			t.Fatalf("seed %q: got %d", v, rr.Code)
		}
	}

	rr := doJSON(t, r, "GET", "/api/v1/strings?is_palindrome=true&word_count=1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["count"] != float64(2) {
		t.Errorf("count: got %v, want 2", body["count"])
	}
	filters, _ := body["filters"].(map[string]any)
	if filters["is_palindrome"] != true || filters["word_count"] != float64(1) {
		t.Errorf("filters: got %v", filters)
	}
}

func TestListStrings_InvalidFilter_400WithDetails(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := doJSON(t, r, "GET", "/api/v1/strings?min_length=-1&is_palindrome=maybe", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}

	body := decodeBody(t, rr)
	if body["code"] != codeInvalidFilter {
		t.Errorf("code: got %v, want %s", body["code"], codeInvalidFilter)
	}
	details, _ := body["details"].([]any)
	if len(details) != 2 {
		t.Errorf("details: got %v, want 2 entries", details)
	}
}

func TestListStrings_UnknownParamsIgnored(t *testing.T) {
	r := newTestRouter(t, nil)

	if rr := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": "hello"}); rr.Code != http.StatusCreated {
		t.Fatalf("seed: got %d", rr.Code)
	}

	rr := doJSON(t, r, "GET", "/api/v1/strings?sort_by=created_at&page=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	if body := decodeBody(t, rr); body["count"] != float64(1) {
		t.Errorf("count: got %v, want 1", body["count"])
	}
}

func TestDeleteString_ByValue(t *testing.T) {
	r := newTestRouter(t, nil)

	if rr := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": "hello"}); rr.Code != http.StatusCreated {
		t.Fatalf("seed: got %d", rr.Code)
	}

	rr := doJSON(t, r, "DELETE", "/api/v1/strings", map[string]any{"value": "hello"})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want %d", rr.Code, http.StatusNoContent)
	}

	again := doJSON(t, r, "DELETE", "/api/v1/strings", map[string]any{"value": "hello"})
	if again.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", again.Code, http.StatusNotFound)
	}
}

func TestNaturalLanguageSearch_Rules(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, v := range []string{"racecar", "hello world", "deed"} {
		if rr := doJSON(t, r, "POST", "/api/v1/strings", map[string]any{"value": v}); rr.Code != http.StatusCreated {
			t.Fatalf("seed %q: got %d", v, rr.Code)
		}
	}

	rr := doJSON(t, r, "POST", "/api/v1/search/natural-language",
		map[string]any{"query": "single word palindromic strings"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["count"] != float64(2) {
		t.Errorf("count: got %v, want 2", body["count"])
	}
	interp, _ := body["interpretation"].(map[string]any)
	if interp["query"] != "single word palindromic strings" {
		t.Errorf("interpretation.query: got %v", interp["query"])
	}
	parsed, _ := interp["parsed_filters"].(map[string]any)
	if parsed["is_palindrome"] != true {
		t.Errorf("parsed_filters: got %v", parsed)
	}
}

func TestNaturalLanguageSearch_EmptyQuery_400(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := doJSON(t, r, "POST", "/api/v1/search/natural-language", map[string]any{"query": "   "})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if body := decodeBody(t, rr); body["code"] != codeInvalidInput {
		t.Errorf("code: got %v, want %s", body["code"], codeInvalidInput)
	}
}

func TestNaturalLanguageSearch_Conflicting_422(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{raw: map[string]any{}})

	rr := doJSON(t, r, "POST", "/api/v1/search/natural-language",
		map[string]any{"query": "one word and two words"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if body := decodeBody(t, rr); body["code"] != codeConflictingFilters {
		t.Errorf("code: got %v, want %s", body["code"], codeConflictingFilters)
	}
}

func TestNaturalLanguageSearch_UpstreamErrors_502(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"unparseable", domain.ErrUpstreamUnparseable, codeUpstreamUnparseable},
		{"empty", domain.ErrUpstreamEmpty, codeUpstreamEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, &stubTranslator{err: tt.err})

			rr := doJSON(t, r, "POST", "/api/v1/search/natural-language",
				map[string]any{"query": "whatever"})
			if rr.Code != http.StatusBadGateway {
				t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadGateway)
			}
			if body := decodeBody(t, rr); body["code"] != tt.wantCode {
				t.Errorf("code: got %v, want %s", body["code"], tt.wantCode)
			}
		})
	}
}

func TestHealth_OK(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := doJSON(t, r, "GET", "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}

	body := decodeBody(t, rr)
	if body["status"] != "ok" {
		t.Errorf("status: got %v, want ok", body["status"])
	}
	checks, _ := body["checks"].(map[string]any)
	if checks["store"] != "ok" {
		t.Errorf("checks: got %v", checks)
	}
}
