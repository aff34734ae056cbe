package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	server "salon_reviews/internal/adapters/http_server"
	"salon_reviews/internal/adapters/observability"
	"salon_reviews/internal/shared"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		UpstreamBase: cfg.PhorestBase,
		Client:       &http.Client{Timeout: cfg.UpstreamTimeout},
	})

	log.Info().Str("addr", cfg.ProxyAddr).Str("upstream", cfg.PhorestBase).Msg("proxy listening")
	httpSrv := &http.Server{
		Addr:              cfg.ProxyAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("proxy server failed")
	}
}
