package domain

import "context"

// CredentialStore is the "remember me" persistence capability. The panel
// reads it once at startup and writes or deletes after each authenticated
// fetch depending on the RememberMe flag.
type CredentialStore interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Del(ctx context.Context, key string) error
}

// TextStyle carries the styling options handed to the host alongside the
// inserted text. The host interprets them; the panel never reads them back.
type TextStyle struct {
	FontSize int
	Color    string
	Width    int
}

// Host is the design-editor capability surface the panel consumes. Both
// calls are side-effecting; no return value beyond the error is used.
type Host interface {
	InsertText(ctx context.Context, text string, style TextStyle) error
	OpenURL(ctx context.Context, url string) error
}
