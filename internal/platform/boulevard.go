package platform

import (
	"fmt"
	"net/url"
	"strconv"

	"salon_reviews/internal/domain"
)

type boulevard struct{}

func (boulevard) Name() domain.PlatformID { return domain.PlatformBoulevard }

func (boulevard) Username(email string) string { return email }

func (boulevard) ValidateBusinessID(id string) error { return validateOpaqueBusinessID(id) }

func (boulevard) BranchesURL(base, businessID string) string {
	return fmt.Sprintf("%s/businesses/%s/locations", base, url.PathEscape(businessID))
}

func (boulevard) ReviewsURL(base, businessID, branchID string, page, size int) string {
	q := url.Values{}
	q.Set("locationId", branchID)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))
	return fmt.Sprintf("%s/businesses/%s/reviews?%s", base, url.PathEscape(businessID), q.Encode())
}

func (boulevard) MapBranches(payload map[string]any) []domain.Branch {
	recs := recordsAt(payload, "data", "locations")
	out := make([]domain.Branch, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Branch{
			ID:   firstStr(rec, "id", "locationId"),
			Name: firstStr(rec, "name"),
		})
	}
	return out
}

var boulevardReviewAliases = map[string][]string{
	"id":           {"id", "reviewId"},
	"client_first": {"client.firstName", "customer.firstName"},
	"client_last":  {"client.lastName", "customer.lastName"},
	"text":         {"text", "comment"},
	"rating":       {"rating", "score"},
	"date":         {"date", "createdAt"},
	"staff_first":  {"staff.firstName", "provider.firstName"},
	"staff_last":   {"staff.lastName", "provider.lastName"},
}

func (boulevard) MapReviews(payload map[string]any) []domain.Review {
	recs := recordsAt(payload, "data", "reviews")
	return mapReviewRecords(recs, boulevardReviewAliases)
}
