package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/metrics"
	"github.com/valeevte/pricetracker/internal/products"
)

type Config struct {
	// Interval between passes; zero or negative disables the scheduler.
	Interval time.Duration
}

// Run rechecks every tracked product once per interval and blocks until ctx
// is cancelled. It returns immediately when the scheduler is disabled.
func Run(ctx context.Context, tracker *products.Tracker, cfg Config, log *zap.Logger) {
	log = log.Named("scheduler")
	if cfg.Interval <= 0 {
		log.Info("disabled")
		return
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	log.Info("started", zap.Duration("interval", cfg.Interval))

	updatePrices(ctx, tracker, log)

	for {
		select {
		case <-ctx.Done():
			log.Info("stopping due to context cancelled")
			return
		case <-ticker.C:
			updatePrices(ctx, tracker, log)
		}
	}
}

// updatePrices runs one pass and returns how many products were rechecked.
func updatePrices(ctx context.Context, tracker *products.Tracker, log *zap.Logger) int {
	ids, err := tracker.GetAllProductIDs(ctx)
	if err != nil {
		log.Warn("failed to list product ids", zap.Error(err))
		return 0
	}

	n := 0
	for _, id := range ids {
		select {
		case <-ctx.Done():
			return n
		default:
		}

		if _, err := tracker.Recheck(ctx, id, metrics.SourceScheduler); err != nil {
			if !errors.Is(err, products.ErrNotFound) {
				log.Warn("failed to recheck product", zap.Int64("id", id), zap.Error(err))
			}
			continue
		}
		n++
	}
	log.Debug("pass complete", zap.Int("rechecked", n), zap.Int("tracked", len(ids)))
	return n
}
