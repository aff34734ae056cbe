package platform

import (
	"fmt"
	"net/url"
	"strconv"

	"salon_reviews/internal/domain"
)

type mindbody struct{}

func (mindbody) Name() domain.PlatformID { return domain.PlatformMindbody }

func (mindbody) Username(email string) string { return email }

func (mindbody) ValidateBusinessID(id string) error { return validateOpaqueBusinessID(id) }

func (mindbody) BranchesURL(base, businessID string) string {
	return fmt.Sprintf("%s/sites/%s/locations", base, url.PathEscape(businessID))
}

func (mindbody) ReviewsURL(base, businessID, branchID string, page, size int) string {
	q := url.Values{}
	q.Set("locationId", branchID)
	q.Set("offset", strconv.Itoa(page*size))
	q.Set("limit", strconv.Itoa(size))
	return fmt.Sprintf("%s/sites/%s/reviews?%s", base, url.PathEscape(businessID), q.Encode())
}

func (mindbody) MapBranches(payload map[string]any) []domain.Branch {
	recs := recordsAt(payload, "locations", "data")
	out := make([]domain.Branch, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.Branch{
			ID:   firstStr(rec, "id", "locationId"),
			Name: firstStr(rec, "name", "title"),
		})
	}
	return out
}

var mindbodyReviewAliases = map[string][]string{
	"id":           {"id", "reviewId"},
	"client_first": {"customer.firstName", "client.firstName"},
	"client_last":  {"customer.lastName", "client.lastName"},
	"text":         {"comment", "text"},
	"rating":       {"rating", "stars"},
	"date":         {"createdAt", "date"},
	"staff_first":  {"stylist.firstName", "staff.firstName"},
	"staff_last":   {"stylist.lastName", "staff.lastName"},
}

func (mindbody) MapReviews(payload map[string]any) []domain.Review {
	recs := recordsAt(payload, "reviews", "data")
	return mapReviewRecords(recs, mindbodyReviewAliases)
}
