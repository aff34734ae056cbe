package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"salon_reviews/internal/adapters/credstore"
	"salon_reviews/internal/adapters/observability"
	"salon_reviews/internal/adapters/upstream"
	"salon_reviews/internal/domain"
	"salon_reviews/internal/panel"
	"salon_reviews/internal/shared"
)

// stdoutHost stands in for the design editor: inserted text and opened URLs
// go to stdout.
type stdoutHost struct{}

func (stdoutHost) InsertText(ctx context.Context, text string, _ domain.TextStyle) error {
	_, err := fmt.Fprintln(os.Stdout, text)
	return err
}

func (stdoutHost) OpenURL(ctx context.Context, url string) error {
	_, err := fmt.Fprintln(os.Stdout, url)
	return err
}

// buildPanel wires a panel from config and flags. Flags win over remembered
// credentials; remembered ones fill anything left blank.
func buildPanel(ctx context.Context) (*panel.Panel, shared.Config, error) {
	cfg := shared.Load()
	logger := observability.NewLogger(cfg.AppEnv).Level(zerolog.WarnLevel)

	p := panel.New(panel.Options{
		Fetch:    upstream.New(platformFlag, cfg.UpstreamTimeout, cfg.UpstreamRPS),
		Store:    credstore.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB),
		Host:     stdoutHost{},
		BaseURLs: cfg.BaseURLs(),
		PageSize: cfg.PageSize,
		DocsURL:  cfg.DocsURL,
		Logger:   logger,
	})

	if err := p.Restore(ctx); err != nil {
		logger.Warn().Err(err).Msg("restore remembered credentials failed")
	}

	creds := p.Credentials()
	if businessIDFlag != "" {
		creds.BusinessID = businessIDFlag
	}
	if emailFlag != "" {
		creds.Email = emailFlag
	}
	if passwordFlag != "" {
		creds.Password = passwordFlag
	}
	creds.Platform = domain.PlatformID(platformFlag)
	creds.RememberMe = rememberFlag
	p.SetCredentials(creds)

	return p, cfg, nil
}

// fetchBranches runs the branch fetch and translates the panel's single
// error slot into a CLI error.
func fetchBranches(ctx context.Context, p *panel.Panel) error {
	if err := p.FetchBranches(ctx); err != nil {
		if msg := p.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}
	return nil
}
