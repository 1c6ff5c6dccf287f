// @title         Factify API
// @version       1.0
// @description   Fact-checking pipeline: claim extraction, web evidence, model verdict

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/habibaehabb05/Factify/internal/app"
	"github.com/habibaehabb05/Factify/internal/core/version"
	"github.com/habibaehabb05/Factify/internal/platform/config"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	phttp "github.com/habibaehabb05/Factify/internal/platform/net/http"

	"github.com/habibaehabb05/Factify/internal/services/api"
)

func main() {
	// .env first so LOG_* and SERVICE_* are visible to everything below
	envFile := config.LoadDotenv()

	logger.Init(logger.FromEnv())
	l := logger.Get()
	bi := version.Info()
	l.Info().Str("version", bi.Version).Str("commit", bi.Commit).Str("dotenv", envFile).Msg("starting factify-api")

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// backend clients are built once and shared read-only by every request
	backends := app.FromConfig(root)
	for _, b := range backends.Report() {
		if !b.Ready {
			l.Warn().Str("backend", b.Name).Str("detail", b.Detail).Msg("backend not configured")
		}
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	mods := api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			App:            backends,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)
	// warm-up runs beside the listener so GET / answers while embeddings load
	go api.Warm(ctx, mods, apiCfg.MayDuration("WARM_TIMEOUT", api.DefaultWarmTimeout))

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
