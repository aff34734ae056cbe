// Package upstream performs the credentialed GET calls against a salon
// platform API. One outbound call per invocation: failures surface to the
// caller and every retry is a user action, never automatic.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"salon_reviews/internal/adapters/observability"
)

var (
	ErrUnauthorized = errors.New("upstream: unauthorized")
	ErrNotFound     = errors.New("upstream: not found")
)

// StatusError carries a non-2xx upstream status plus any message field the
// payload supplied, so the panel can prefer upstream wording.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.Status)
}

// Message extracts an upstream-supplied message from err, "" when none.
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

type Client struct {
	hc       *http.Client
	rl       *rate.Limiter
	platform string
}

func New(platform string, timeout time.Duration, rps int) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc:       &http.Client{Timeout: timeout},
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		platform: platform,
	}
}

// GetJSON issues a Basic-Authenticated GET and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url, username, password string, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "salon-reviews/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.ObserveUpstream(c.platform, endpointLabel(url), 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveUpstream(c.platform, endpointLabel(url), resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return json.NewDecoder(resp.Body).Decode(out)

	case http.StatusNoContent:
		io.Copy(io.Discard, resp.Body)
		return nil

	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized

	case http.StatusNotFound:
		return ErrNotFound

	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Status: resp.StatusCode, Message: payloadMessage(b)}
	}
}

// payloadMessage pulls a human-readable message out of a JSON error body.
func payloadMessage(b []byte) string {
	var body map[string]any
	if err := json.Unmarshal(b, &body); err != nil {
		return ""
	}
	for _, k := range []string{"message", "error_description", "detail", "error"} {
		if s, ok := body[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// endpointLabel keeps metric cardinality bounded: path only, ids stripped to
// their parent segment.
func endpointLabel(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		url = url[i+3:]
	}
	if i := strings.IndexByte(url, '/'); i >= 0 {
		url = url[i:]
	} else {
		url = "/"
	}
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	parts := strings.Split(url, "/")
	if len(parts) > 0 {
		return "/" + parts[len(parts)-1]
	}
	return url
}
