package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	server "salon_reviews/internal/adapters/http_server"
)

func newProxy(t *testing.T, upstreamBase string) http.Handler {
	t.Helper()
	srv := server.New()
	srv.MountHandlers(&server.Handlers{UpstreamBase: upstreamBase})
	return srv.Mux()
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestBranches_MissingFieldRejectedWithoutUpstreamCall(t *testing.T) {
	var hits int32
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer up.Close()

	h := newProxy(t, up.URL)
	rr := post(t, h, "/api/branches", map[string]any{
		"businessId": "biz-1",
		"username":   "global/amy@salon.com",
		// password missing
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("upstream called %d times", n)
	}
}

func TestBranches_RelaysUpstreamBodyVerbatim(t *testing.T) {
	var gotPath, gotUser, gotPass string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		_, _ = w.Write([]byte(`{"_embedded":{"branches":[{"branchId":"b1","name":"Downtown"}]}}`))
	}))
	defer up.Close()

	h := newProxy(t, up.URL)
	rr := post(t, h, "/api/branches", map[string]any{
		"businessId": "biz-1",
		"username":   "global/amy@salon.com",
		"password":   "pw",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if gotPath != "/business/biz-1/branch" {
		t.Fatalf("upstream path: %s", gotPath)
	}
	if gotUser != "global/amy@salon.com" || gotPass != "pw" {
		t.Fatalf("basic auth: %s %s", gotUser, gotPass)
	}
	if rr.Body.String() != `{"_embedded":{"branches":[{"branchId":"b1","name":"Downtown"}]}}` {
		t.Fatalf("body not verbatim: %s", rr.Body.String())
	}
}

func TestBranches_UpstreamFailureMapsToBadGateway(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer up.Close()

	h := newProxy(t, up.URL)
	rr := post(t, h, "/api/branches", map[string]any{
		"businessId": "biz-1", "username": "u", "password": "p",
	})
	// upstream status is not propagated
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: %d", rr.Code)
	}
}

func TestReviews_ExtractsReviewsArray(t *testing.T) {
	var gotQuery string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{
			"page":    map[string]any{"number": 0},
			"reviews": []any{map[string]any{"reviewId": "r1", "text": "Great!"}},
		})
	}))
	defer up.Close()

	h := newProxy(t, up.URL)
	rr := post(t, h, "/api/reviews", map[string]any{
		"businessId": "biz-1", "branchId": "b1", "username": "u", "password": "p",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if gotQuery != "branchId=b1" {
		t.Fatalf("query: %s", gotQuery)
	}
	var out []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0]["reviewId"] != "r1" {
		t.Fatalf("reviews: %+v", out)
	}
}

func TestReviews_MissingArrayDefaultsToEmpty(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":{}}`))
	}))
	defer up.Close()

	h := newProxy(t, up.URL)
	rr := post(t, h, "/api/reviews", map[string]any{
		"businessId": "biz-1", "branchId": "b1", "username": "u", "password": "p",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var out []any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty array, got %+v", out)
	}
}

func TestReviews_MissingBranchIDRejected(t *testing.T) {
	var hits int32
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer up.Close()

	h := newProxy(t, up.URL)
	rr := post(t, h, "/api/reviews", map[string]any{
		"businessId": "biz-1", "username": "u", "password": "p",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("upstream called despite missing branchId")
	}
}
