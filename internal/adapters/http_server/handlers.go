package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"salon_reviews/internal/adapters/observability"
)

// Handlers forwards credentialed requests to the upstream platform API.
// Pure pass-through: no retry, no caching, no session state; one outbound
// call per inbound request. The upstream status is never propagated — any
// upstream failure maps to 502 with a generic body.
type Handlers struct {
	UpstreamBase string
	Client       *http.Client
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type branchesRequest struct {
	BusinessID string `json:"businessId"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

type reviewsRequest struct {
	BusinessID string `json:"businessId"`
	BranchID   string `json:"branchId"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/api/branches", h.postBranches)
	s.mux.Post("/api/reviews", h.postReviews)
}

func (h *Handlers) hc() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// forward issues the single outbound Basic-Authenticated GET.
func (h *Handlers) forward(r *http.Request, rawURL, username, password string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")
	start := time.Now()
	resp, err := h.hc().Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	observability.ObserveUpstream("phorest", r.URL.Path, status, time.Since(start))
	return resp, err
}

func (h *Handlers) postBranches(w http.ResponseWriter, r *http.Request) {
	var in branchesRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if in.BusinessID == "" || in.Username == "" || in.Password == "" {
		writeProblem(w, http.StatusBadRequest, "Missing field", "businessId, username and password are required")
		return
	}

	u := fmt.Sprintf("%s/business/%s/branch", h.UpstreamBase, url.PathEscape(in.BusinessID))
	resp, err := h.forward(r, u, in.Username, in.Password)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "failed to fetch branches")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "failed to fetch branches")
		return
	}

	// relay the upstream JSON body verbatim
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Error().Err(err).Msg("relay branches body failed")
	}
}

func (h *Handlers) postReviews(w http.ResponseWriter, r *http.Request) {
	var in reviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if in.BusinessID == "" || in.BranchID == "" || in.Username == "" || in.Password == "" {
		writeProblem(w, http.StatusBadRequest, "Missing field", "businessId, branchId, username and password are required")
		return
	}

	q := url.Values{}
	q.Set("branchId", in.BranchID)
	u := fmt.Sprintf("%s/business/%s/review?%s", h.UpstreamBase, url.PathEscape(in.BusinessID), q.Encode())
	resp, err := h.forward(r, u, in.Username, in.Password)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "failed to fetch reviews")
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "failed to fetch reviews")
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream error", "failed to fetch reviews")
		return
	}
	reviews, ok := payload["reviews"].([]any)
	if !ok {
		reviews = []any{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reviews); err != nil {
		log.Error().Err(err).Msg("write reviews response failed")
	}
}
