package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trustlab/trust-report-service/internal/analytics"
	"github.com/trustlab/trust-report-service/internal/avatar"
	"github.com/trustlab/trust-report-service/internal/document"
	"github.com/trustlab/trust-report-service/internal/render"
	"github.com/trustlab/trust-report-service/internal/report"
	"github.com/trustlab/trust-report-service/internal/router"
	"github.com/trustlab/trust-report-service/pkg/assets"
	"github.com/trustlab/trust-report-service/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting trust-report-service")

	// required upstream config; absence is a fatal misconfiguration
	analyticsCfg, err := analytics.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("analytics config: %v", err)
	}
	assetsCfg, err := assets.ConfigFromEnv()
	if err != nil {
		sugar.Fatalf("assets config: %v", err)
	}

	// preload fonts and images once; shared read-only by all requests
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 60*time.Second)
	bundle, err := assets.Load(loadCtx, assetsCfg)
	cancelLoad()
	if err != nil {
		sugar.Fatalf("load assets: %v", err)
	}
	sugar.Infow("assets loaded", "fonts", len(bundle.Fonts))

	// wire the pipeline
	analyticsClient := analytics.NewClient(analyticsCfg)
	resolver := avatar.NewResolver(avatar.ConfigFromEnv(analyticsCfg.Host), sugar)
	composer := document.NewComposer(bundle.Logo, bundle.Stamp)
	engine := render.NewEngine(bundle.Fonts)
	svc := report.NewService(analyticsClient, resolver, composer, engine, sugar)
	handler := report.NewHandler(svc, sugar)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// mount http server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router.RegisterRoutes(sugar, handler),
	}

	// run server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	sugar.Infow("service is running", "addr", srv.Addr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for in-flight renders
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
