package panel

import (
	"strings"

	"salon_reviews/internal/domain"
)

const (
	anonymousName = "Anonymous"
	noMessageText = "No message provided"
	starGlyph     = "⭐"
)

// DisplayName is the card title: "Amy L." when both name parts are present.
func DisplayName(r domain.Review) string {
	first := strings.TrimSpace(r.ClientFirstName)
	last := strings.TrimSpace(r.ClientLastName)
	if first == "" || last == "" {
		return anonymousName
	}
	return first + " " + string([]rune(last)[:1]) + "."
}

// FullName is the attribution line in the inserted text.
func FullName(r domain.Review) string {
	full := strings.TrimSpace(strings.TrimSpace(r.ClientFirstName) + " " + strings.TrimSpace(r.ClientLastName))
	if full == "" {
		return anonymousName
	}
	return full
}

// Stars renders the rating as a glyph string of that exact length.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	return strings.Repeat(starGlyph, rating)
}

// InsertText composes the string handed to the host's insert capability.
func InsertText(r domain.Review) string {
	body := strings.TrimSpace(r.Text)
	if body == "" {
		body = noMessageText
	}
	return strings.Join([]string{
		"CLIENT REVIEW",
		`"` + body + `"`,
		Stars(r.Rating),
		FullName(r),
	}, "\n\n")
}
