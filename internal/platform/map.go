package platform

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"salon_reviews/internal/domain"
)

// defaultRating is used when an upstream record carries no rating at all.
const defaultRating = 5

// mapReviewRecords normalizes raw records via a per-platform alias registry.
// Missing ratings default to 5 stars, missing timestamps to now.
func mapReviewRecords(in []map[string]any, aliases map[string][]string) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		rv := domain.Review{
			ReviewID:        firstStr(r, aliases["id"]...),
			ClientFirstName: firstStr(r, aliases["client_first"]...),
			ClientLastName:  firstStr(r, aliases["client_last"]...),
			Text:            firstStr(r, aliases["text"]...),
			StaffFirstName:  firstStr(r, aliases["staff_first"]...),
			StaffLastName:   firstStr(r, aliases["staff_last"]...),
		}
		if n, ok := firstInt(r, aliases["rating"]...); ok {
			rv.Rating = clampRating(n)
		} else {
			rv.Rating = defaultRating
		}
		if t, ok := firstTime(r, aliases["date"]...); ok {
			rv.ReviewDate = t
		} else {
			rv.ReviewDate = time.Now().UTC()
		}
		out = append(out, rv)
	}
	return out
}

func clampRating(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// Phorest business ids are canonical UUID text (8-4-4-4-12, case-insensitive).
func validateUUIDBusinessID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("business ID is required")
	}
	if len(id) != 36 {
		return errors.New("business ID must be a valid UUID")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("business ID must be a valid UUID")
	}
	return nil
}

// Other platforms only require a non-empty id without whitespace.
func validateOpaqueBusinessID(id string) error {
	if id == "" {
		return errors.New("business ID is required")
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return errors.New("business ID must not contain spaces")
	}
	return nil
}
