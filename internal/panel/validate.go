package panel

import (
	"fmt"
	"regexp"

	"salon_reviews/internal/domain"
	"salon_reviews/internal/platform"
)

// Permissive local@domain.tld shape; real validation is the upstream's job.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError names exactly which field failed, with a user-facing
// message. No network call is made once one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("panel: invalid %s: %s", e.Field, e.Message)
}

func ValidateCredentials(plat platform.Platform, c domain.Credentials) *ValidationError {
	if err := plat.ValidateBusinessID(c.BusinessID); err != nil {
		return &ValidationError{Field: "businessId", Message: capitalize(err.Error()) + "."}
	}
	if c.Email == "" {
		return &ValidationError{Field: "email", Message: "Email is required."}
	}
	if !emailRe.MatchString(c.Email) {
		return &ValidationError{Field: "email", Message: "Enter a valid email address."}
	}
	if c.Password == "" {
		return &ValidationError{Field: "password", Message: "Password is required."}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
