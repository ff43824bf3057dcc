package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/config"
	"github.com/valeevte/pricetracker/internal/logging"
	"github.com/valeevte/pricetracker/internal/metrics"
	"github.com/valeevte/pricetracker/internal/middleware"
	"github.com/valeevte/pricetracker/internal/products"
	"github.com/valeevte/pricetracker/internal/scheduler"
	"github.com/valeevte/pricetracker/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	// graceful shutdown coordination
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	tracker := products.NewTracker(products.NewRepository(products.NewEnv()), m, log)
	provider := upstream.NewClient(upstream.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.UpstreamTimeout,
	}, log)

	// scheduler runs until ctx is cancelled
	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx, tracker, scheduler.Config{Interval: cfg.RecheckInterval}, log)
	}()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: middleware.CORS(cfg.AllowedOrigins, newRouter(tracker, provider, m, log)),
	}

	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server ListenAndServe", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server Shutdown", zap.Error(err))
	}

	wg.Wait()
	log.Info("graceful shutdown complete")
}
