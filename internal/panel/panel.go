// Package panel is the design-editor panel logic without the rendering host:
// credential state, branch and review fetching, normalization via the
// platform registry, and text insertion through an injected host capability.
package panel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"salon_reviews/internal/adapters/upstream"
	"salon_reviews/internal/domain"
	"salon_reviews/internal/platform"
)

// CredentialsKey is the single fixed storage key for remembered credentials.
const CredentialsKey = "salon_reviews:credentials"

const (
	msgInvalidCredentials = "Invalid credentials. Please check your business ID, email and password."
	msgSessionExpired     = "Your session has expired. Please re-enter your credentials."
	msgBranchesFailed     = "Failed to fetch locations. Please try again."
	msgReviewsFailed      = "Failed to fetch reviews. Please try again."
)

var (
	// ErrBusy means a fetch is already in flight; user actions are serialized.
	ErrBusy = errors.New("panel: request already in flight")
	// ErrStale means the response arrived after the selection changed and was
	// discarded.
	ErrStale    = errors.New("panel: stale response discarded")
	ErrNoBranch = errors.New("panel: no branch selected")
)

// Fetcher is what the panel needs from the HTTP layer. *upstream.Client
// satisfies it.
type Fetcher interface {
	GetJSON(ctx context.Context, url, username, password string, out any) error
}

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

type Options struct {
	Fetch    Fetcher
	Store    domain.CredentialStore
	Host     domain.Host
	BaseURLs map[domain.PlatformID]string
	PageSize int
	DocsURL  string
	Logger   zerolog.Logger
}

type Panel struct {
	fetch    Fetcher
	store    domain.CredentialStore
	host     domain.Host
	baseURLs map[domain.PlatformID]string
	pageSize int
	docsURL  string
	log      zerolog.Logger

	mu         sync.Mutex
	creds      domain.Credentials
	branches   []domain.Branch
	selected   string
	reviews    []domain.Review
	hasFetched bool
	loading    bool
	errMsg     string
	gen        uint64
}

func New(o Options) *Panel {
	if o.PageSize <= 0 {
		o.PageSize = 20
	}
	return &Panel{
		fetch:    o.Fetch,
		store:    o.Store,
		host:     o.Host,
		baseURLs: o.BaseURLs,
		pageSize: o.PageSize,
		docsURL:  o.DocsURL,
		log:      o.Logger,
	}
}

// Restore loads remembered credentials, if any. Called once at startup.
func (p *Panel) Restore(ctx context.Context) error {
	var c domain.Credentials
	ok, err := p.store.Get(ctx, CredentialsKey, &c)
	if err != nil || !ok {
		return err
	}
	p.mu.Lock()
	p.creds = c
	p.mu.Unlock()
	return nil
}

func (p *Panel) SetCredentials(c domain.Credentials) {
	p.mu.Lock()
	p.creds = c
	p.mu.Unlock()
}

func (p *Panel) Credentials() domain.Credentials {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creds
}

func (p *Panel) Branches() []domain.Branch {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Branch, len(p.branches))
	copy(out, p.branches)
	return out
}

func (p *Panel) SelectedBranch() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *Panel) Reviews() []domain.Review {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Review, len(p.reviews))
	copy(out, p.reviews)
	return out
}

// HasFetched distinguishes "never fetched" from "fetched but empty".
func (p *Panel) HasFetched() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasFetched
}

func (p *Panel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Panel) ErrorMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

// FetchBranches validates locally, then fetches and replaces the branch list
// wholesale. Credentials are persisted or deleted per the RememberMe flag.
func (p *Panel) FetchBranches(ctx context.Context) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return ErrBusy
	}
	p.errMsg = ""
	creds := p.creds
	plat, ok := platform.Lookup(creds.Platform)
	if !ok {
		p.errMsg = fmt.Sprintf("Unknown platform %q.", creds.Platform)
		p.mu.Unlock()
		return fmt.Errorf("panel: unknown platform %q", creds.Platform)
	}
	if err := ValidateCredentials(plat, creds); err != nil {
		p.errMsg = err.Message
		p.mu.Unlock()
		return err
	}
	p.loading = true
	p.mu.Unlock()
	defer p.setLoading(false)

	url := plat.BranchesURL(p.baseURLs[creds.Platform], creds.BusinessID)
	var payload map[string]any
	if err := p.fetch.GetJSON(ctx, url, plat.Username(creds.Email), creds.Password, &payload); err != nil {
		p.setError(failureMessage(err, msgInvalidCredentials, msgBranchesFailed))
		return err
	}

	branches := plat.MapBranches(payload)

	p.mu.Lock()
	p.branches = branches
	p.selected = ""
	p.reviews = nil
	p.hasFetched = false
	p.gen++
	p.errMsg = ""
	p.mu.Unlock()

	p.persistCredentials(ctx, creds)
	return nil
}

// SelectBranch switches the active branch. The prior review list and the
// has-fetched flag are discarded immediately; an in-flight review fetch for
// the old branch becomes stale.
func (p *Panel) SelectBranch(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == id {
		return
	}
	p.selected = id
	p.reviews = nil
	p.hasFetched = false
	p.gen++
}

// FetchReviews retrieves the first page of reviews for the selected branch.
// A response whose generation is no longer current is discarded.
func (p *Panel) FetchReviews(ctx context.Context) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return ErrBusy
	}
	if p.selected == "" {
		p.errMsg = "Select a location first."
		p.mu.Unlock()
		return ErrNoBranch
	}
	p.errMsg = ""
	p.loading = true
	p.gen++
	g := p.gen
	creds := p.creds
	branch := p.selected
	p.mu.Unlock()
	defer p.setLoading(false)

	plat, ok := platform.Lookup(creds.Platform)
	if !ok {
		p.setError(fmt.Sprintf("Unknown platform %q.", creds.Platform))
		return fmt.Errorf("panel: unknown platform %q", creds.Platform)
	}

	url := plat.ReviewsURL(p.baseURLs[creds.Platform], creds.BusinessID, branch, 0, p.pageSize)
	var payload map[string]any
	err := p.fetch.GetJSON(ctx, url, plat.Username(creds.Email), creds.Password, &payload)

	p.mu.Lock()
	defer p.mu.Unlock()
	if g != p.gen {
		// Selection changed while the request was in flight.
		return ErrStale
	}
	if err != nil {
		p.errMsg = failureMessage(err, msgSessionExpired, msgReviewsFailed)
		return err
	}
	p.reviews = plat.MapReviews(payload)
	p.hasFetched = true
	p.errMsg = ""
	return nil
}

// Visible is the pure view transform over the stored review list: exact star
// filter (0 = no filter) and timestamp ordering. Stored state is never
// mutated; the result is recomputed on every call.
func (p *Panel) Visible(filterRating int, order SortOrder) []domain.Review {
	reviews := p.Reviews()
	out := reviews[:0:0]
	for _, r := range reviews {
		if filterRating > 0 && r.Rating != filterRating {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortOldest {
			return out[i].ReviewDate.Before(out[j].ReviewDate)
		}
		return out[i].ReviewDate.After(out[j].ReviewDate)
	})
	return out
}

// Insert formats the review and hands it to the host. Fire-and-forget beyond
// surfacing host-level cancellation.
func (p *Panel) Insert(ctx context.Context, reviewID string) error {
	var found *domain.Review
	p.mu.Lock()
	for i := range p.reviews {
		if p.reviews[i].ReviewID == reviewID {
			r := p.reviews[i]
			found = &r
			break
		}
	}
	p.mu.Unlock()
	if found == nil {
		return fmt.Errorf("panel: review %q not in current list", reviewID)
	}
	return p.host.InsertText(ctx, InsertText(*found), domain.TextStyle{FontSize: 18})
}

// OpenDocs opens the documentation link through the host.
func (p *Panel) OpenDocs(ctx context.Context) error {
	return p.host.OpenURL(ctx, p.docsURL)
}

func (p *Panel) setLoading(v bool) {
	p.mu.Lock()
	p.loading = v
	p.mu.Unlock()
}

func (p *Panel) setError(msg string) {
	p.mu.Lock()
	p.errMsg = msg
	p.mu.Unlock()
}

func (p *Panel) persistCredentials(ctx context.Context, creds domain.Credentials) {
	if creds.RememberMe {
		if err := p.store.Set(ctx, CredentialsKey, creds); err != nil {
			p.log.Warn().Err(err).Msg("persist credentials failed")
		}
		return
	}
	if err := p.store.Del(ctx, CredentialsKey); err != nil {
		p.log.Warn().Err(err).Msg("delete stored credentials failed")
	}
}

func failureMessage(err error, authMsg, genericMsg string) string {
	if errors.Is(err, upstream.ErrUnauthorized) {
		return authMsg
	}
	if m := upstream.Message(err); m != "" {
		return m
	}
	return genericMsg
}
