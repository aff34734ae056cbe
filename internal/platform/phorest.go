package platform

import (
	"fmt"
	"net/url"
	"strconv"

	"salon_reviews/internal/domain"
)

// phorest speaks the Phorest third-party API: HAL-style embedded collections
// and a "global/<email>" Basic-Auth username.
type phorest struct{}

func (phorest) Name() domain.PlatformID { return domain.PlatformPhorest }

func (phorest) Username(email string) string { return "global/" + email }

func (phorest) ValidateBusinessID(id string) error { return validateUUIDBusinessID(id) }

func (phorest) BranchesURL(base, businessID string) string {
	return fmt.Sprintf("%s/business/%s/branch", base, url.PathEscape(businessID))
}

func (phorest) ReviewsURL(base, businessID, branchID string, page, size int) string {
	q := url.Values{}
	q.Set("branchId", branchID)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return fmt.Sprintf("%s/business/%s/review?%s", base, url.PathEscape(businessID), q.Encode())
}

func (phorest) MapBranches(payload map[string]any) []domain.Branch {
	recs := recordsAt(payload, "_embedded.branches", "branches")
	out := make([]domain.Branch, 0, len(recs))
	for _, rec := range recs {
		id := firstStr(rec, "branchId", "id")
		if id == "" {
			// HAL payloads sometimes carry the id only in the self link.
			id = tailSegment(lookupStr(rec, "_links.self.href"))
		}
		out = append(out, domain.Branch{ID: id, Name: lookupStr(rec, "name")})
	}
	return out
}

// Phorest review records already use the canonical field names.
var phorestReviewAliases = map[string][]string{
	"id":           {"reviewId", "id"},
	"client_first": {"clientFirstName"},
	"client_last":  {"clientLastName"},
	"text":         {"text"},
	"rating":       {"rating"},
	"date":         {"reviewDate"},
	"staff_first":  {"staffFirstName"},
	"staff_last":   {"staffLastName"},
}

func (phorest) MapReviews(payload map[string]any) []domain.Review {
	recs := recordsAt(payload, "reviews", "_embedded.reviews")
	return mapReviewRecords(recs, phorestReviewAliases)
}
