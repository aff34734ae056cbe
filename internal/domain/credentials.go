package domain

// Credentials is everything the user enters before a fetch is attempted.
// Transient in memory; persisted as a JSON blob under a fixed key only when
// RememberMe is set.
type Credentials struct {
	BusinessID string     `json:"businessId"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	Platform   PlatformID `json:"platform"`
	RememberMe bool       `json:"rememberMe"`
}
