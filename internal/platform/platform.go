// Package platform maps each salon-management platform to the request shapes
// and payload mappings it needs. Adding a platform means adding one registry
// entry, not editing branches across the fetch paths.
package platform

import (
	"salon_reviews/internal/domain"
)

type Platform interface {
	Name() domain.PlatformID

	// Username returns the Basic-Auth username for an account email.
	Username(email string) string

	// ValidateBusinessID rejects malformed business ids before any network call.
	ValidateBusinessID(id string) error

	BranchesURL(base, businessID string) string
	ReviewsURL(base, businessID, branchID string, page, size int) string

	// MapBranches extracts the branch list from a raw upstream payload.
	MapBranches(payload map[string]any) []domain.Branch

	// MapReviews normalizes the raw review envelope into the common shape.
	MapReviews(payload map[string]any) []domain.Review
}

var registry = map[domain.PlatformID]Platform{
	domain.PlatformPhorest:   phorest{},
	domain.PlatformMindbody:  mindbody{},
	domain.PlatformBoulevard: boulevard{},
}

func Lookup(id domain.PlatformID) (Platform, bool) {
	p, ok := registry[id]
	return p, ok
}

func All() []domain.PlatformID {
	return []domain.PlatformID{
		domain.PlatformPhorest,
		domain.PlatformMindbody,
		domain.PlatformBoulevard,
	}
}
