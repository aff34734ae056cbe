package platform_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"salon_reviews/internal/domain"
	"salon_reviews/internal/platform"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func lookup(t *testing.T, id domain.PlatformID) platform.Platform {
	t.Helper()
	p, ok := platform.Lookup(id)
	if !ok {
		t.Fatalf("platform %q not registered", id)
	}
	return p
}

func TestRegistry_AllPlatformsPresent(t *testing.T) {
	for _, id := range platform.All() {
		if _, ok := platform.Lookup(id); !ok {
			t.Fatalf("missing registry entry for %q", id)
		}
	}
	if _, ok := platform.Lookup("square"); ok {
		t.Fatalf("unexpected registry entry")
	}
}

func TestPhorest_Username(t *testing.T) {
	p := lookup(t, domain.PlatformPhorest)
	if got := p.Username("amy@salon.com"); got != "global/amy@salon.com" {
		t.Fatalf("username: %s", got)
	}
	m := lookup(t, domain.PlatformMindbody)
	if got := m.Username("amy@salon.com"); got != "amy@salon.com" {
		t.Fatalf("mindbody username: %s", got)
	}
}

func TestPhorest_MapBranches_EmbeddedAndSelfLink(t *testing.T) {
	p := lookup(t, domain.PlatformPhorest)
	payload := decode(t, `{
		"_embedded": {"branches": [
			{"branchId": "b1", "name": "Downtown"},
			{"name": "Uptown", "_links": {"self": {"href": "https://api.example.com/branch/b2"}}},
			{"name": "No ID"}
		]}
	}`)
	got := p.MapBranches(payload)
	if len(got) != 3 {
		t.Fatalf("branches: %+v", got)
	}
	if got[0].ID != "b1" || got[0].Name != "Downtown" {
		t.Fatalf("explicit id branch: %+v", got[0])
	}
	if got[1].ID != "b2" {
		t.Fatalf("self-link id not extracted: %+v", got[1])
	}
	if got[2].ID != "" {
		t.Fatalf("expected empty id fallback: %+v", got[2])
	}
}

func TestPhorest_MapReviews_Passthrough(t *testing.T) {
	p := lookup(t, domain.PlatformPhorest)
	payload := decode(t, `{"reviews": [{
		"reviewId": "r1",
		"clientFirstName": "Amy",
		"clientLastName": "Lee",
		"rating": 5,
		"reviewDate": "2024-01-01T00:00:00Z",
		"text": "Great!",
		"staffFirstName": "Jo",
		"staffLastName": "Kim"
	}]}`)
	got := p.MapReviews(payload)
	if len(got) != 1 {
		t.Fatalf("reviews: %+v", got)
	}
	r := got[0]
	want := domain.Review{
		ReviewID: "r1", ClientFirstName: "Amy", ClientLastName: "Lee",
		Rating: 5, ReviewDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Text: "Great!", StaffFirstName: "Jo", StaffLastName: "Kim",
	}
	if r != want {
		t.Fatalf("got %+v want %+v", r, want)
	}
}

func TestMindbody_MapReviews_Remap(t *testing.T) {
	p := lookup(t, domain.PlatformMindbody)
	payload := decode(t, `{"reviews": [{
		"id": "m1",
		"customer": {"firstName": "Bea", "lastName": "Ruiz"},
		"comment": "Lovely cut",
		"createdAt": "2023-06-10T12:30:00Z",
		"stylist": {"firstName": "Dana", "lastName": "Wu"}
	}]}`)
	got := p.MapReviews(payload)
	if len(got) != 1 {
		t.Fatalf("reviews: %+v", got)
	}
	r := got[0]
	if r.ClientFirstName != "Bea" || r.ClientLastName != "Ruiz" {
		t.Fatalf("client name: %+v", r)
	}
	if r.Text != "Lovely cut" {
		t.Fatalf("text: %q", r.Text)
	}
	if !r.ReviewDate.Equal(time.Date(2023, 6, 10, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("date: %v", r.ReviewDate)
	}
	if r.StaffFirstName != "Dana" || r.StaffLastName != "Wu" {
		t.Fatalf("staff name: %+v", r)
	}
	// rating absent -> defaults to 5
	if r.Rating != 5 {
		t.Fatalf("rating default: %d", r.Rating)
	}
}

func TestMindbody_MapReviews_MissingDateDefaultsToNow(t *testing.T) {
	p := lookup(t, domain.PlatformMindbody)
	payload := decode(t, `{"reviews": [{"id": "m2", "comment": "ok"}]}`)
	got := p.MapReviews(payload)
	if len(got) != 1 {
		t.Fatalf("reviews: %+v", got)
	}
	if time.Since(got[0].ReviewDate) > time.Minute {
		t.Fatalf("expected near-now default, got %v", got[0].ReviewDate)
	}
}

func TestBoulevard_MapBranchesAndReviews(t *testing.T) {
	p := lookup(t, domain.PlatformBoulevard)
	branches := p.MapBranches(decode(t, `{"data": [{"id": "l1", "name": "Main St"}]}`))
	if len(branches) != 1 || branches[0].ID != "l1" || branches[0].Name != "Main St" {
		t.Fatalf("branches: %+v", branches)
	}
	reviews := p.MapReviews(decode(t, `{"data": [{
		"id": "bv1",
		"client": {"firstName": "Cy", "lastName": "Moss"},
		"text": "Five stars",
		"rating": 4,
		"date": "2024-02-02T00:00:00Z"
	}]}`))
	if len(reviews) != 1 {
		t.Fatalf("reviews: %+v", reviews)
	}
	if reviews[0].ClientFirstName != "Cy" || reviews[0].Rating != 4 {
		t.Fatalf("review: %+v", reviews[0])
	}
}

func TestValidateBusinessID(t *testing.T) {
	ph := lookup(t, domain.PlatformPhorest)
	if err := ph.ValidateBusinessID("5f8b6c2e-4f3d-4b9a-8c1e-2d7f9a0b1c2d"); err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}
	for _, bad := range []string{"", "not-a-uuid", "5f8b6c2e4f3d4b9a8c1e2d7f9a0b1c2d", "5f8b6c2e-4f3d-4b9a-8c1e 2d7f9a0b1c2d"} {
		if err := ph.ValidateBusinessID(bad); err == nil {
			t.Fatalf("phorest accepted %q", bad)
		}
	}

	mb := lookup(t, domain.PlatformMindbody)
	if err := mb.ValidateBusinessID("site-123"); err != nil {
		t.Fatalf("opaque id rejected: %v", err)
	}
	for _, bad := range []string{"", "site 123", "site\t123"} {
		if err := mb.ValidateBusinessID(bad); err == nil {
			t.Fatalf("mindbody accepted %q", bad)
		}
	}
}

func TestReviewsURL_IncludesPaging(t *testing.T) {
	p := lookup(t, domain.PlatformPhorest)
	u := p.ReviewsURL("https://api.example.com", "biz", "b1", 0, 20)
	for _, part := range []string{"/business/biz/review", "branchId=b1", "page=0", "size=20"} {
		if !strings.Contains(u, part) {
			t.Fatalf("url %q missing %q", u, part)
		}
	}
}
