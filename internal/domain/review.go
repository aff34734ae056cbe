package domain

import "time"

type PlatformID string

const (
	PlatformPhorest   PlatformID = "phorest"
	PlatformMindbody  PlatformID = "mindbody"
	PlatformBoulevard PlatformID = "boulevard"
)

// Branch is a physical business location. The list is replaced wholesale on
// every successful fetch; it never outlives the panel session.
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Review is the normalized shape shared by all platforms. Upstream payloads
// are heterogeneous; the platform mappers produce this.
type Review struct {
	ReviewID        string    `json:"reviewId"`
	ClientFirstName string    `json:"clientFirstName"`
	ClientLastName  string    `json:"clientLastName"`
	Rating          int       `json:"rating"` // 1..5
	ReviewDate      time.Time `json:"reviewDate"`
	Text            string    `json:"text"`
	StaffFirstName  string    `json:"staffFirstName"`
	StaffLastName   string    `json:"staffLastName"`
}
