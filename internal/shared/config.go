package shared

import (
	"os"
	"strconv"
	"time"

	"salon_reviews/internal/domain"
)

type Config struct {
	AppEnv      string
	ProxyAddr   string
	MetricsAddr string

	PhorestBase   string
	MindbodyBase  string
	BoulevardBase string

	UpstreamTimeout time.Duration
	UpstreamRPS     int
	PageSize        int
	DocsURL         string

	RedisAddr string
	RedisDB   int
	RedisPass string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:          env("APP_ENV", "prod"),
		ProxyAddr:       env("PROXY_ADDR", ":4000"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		PhorestBase:     env("PHOREST_BASE_URL", "https://platform-us.phorest.com/third-party-api-server/api"),
		MindbodyBase:    env("MINDBODY_BASE_URL", "https://api.mindbodyonline.com/public/v6"),
		BoulevardBase:   env("BOULEVARD_BASE_URL", "https://dashboard.boulevard.io/api/2020-01"),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 20)) * time.Second,
		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),
		PageSize:        atoi("REVIEW_PAGE_SIZE", 20),
		DocsURL:         env("DOCS_URL", "https://developer.phorest.com/docs"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisPass:       env("REDIS_PASSWORD", ""),
	}
}

// BaseURLs keys the per-platform API roots for the panel.
func (c Config) BaseURLs() map[domain.PlatformID]string {
	return map[domain.PlatformID]string{
		domain.PlatformPhorest:   c.PhorestBase,
		domain.PlatformMindbody:  c.MindbodyBase,
		domain.PlatformBoulevard: c.BoulevardBase,
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
