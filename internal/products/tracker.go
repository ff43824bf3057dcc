package products

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/metrics"
)

// Tracker is the Repository plus the bookkeeping every write path shares:
// logging and metrics. The HTML form, the JSON API and the scheduler all
// change state through it.
type Tracker struct {
	*Repository
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewTracker(repo *Repository, m *metrics.Metrics, log *zap.Logger) *Tracker {
	return &Tracker{Repository: repo, metrics: m, log: log.Named("tracker")}
}

func (t *Tracker) Add(ctx context.Context, url string) (Product, error) {
	p, err := t.InsertProduct(ctx, url)
	if err != nil {
		t.rejected(url, err)
		return Product{}, err
	}
	t.added(p)
	return p, nil
}

// Upsert rechecks the product already tracked under url or adds a new one.
// existed is true when an existing product was rechecked.
func (t *Tracker) Upsert(ctx context.Context, url string) (p Product, existed bool, err error) {
	p, existed, err = t.UpsertProduct(ctx, url)
	switch {
	case err != nil:
		t.rejected(url, err)
		return Product{}, false, err
	case existed:
		t.rechecked(p, metrics.SourceManual)
	default:
		t.added(p)
	}
	return p, existed, nil
}

// Recheck applies one price check; source is a metrics.Source* label.
func (t *Tracker) Recheck(ctx context.Context, id int64, source string) (Product, error) {
	p, err := t.CheckPrice(ctx, id)
	if err != nil {
		return Product{}, err
	}
	t.rechecked(p, source)
	return p, nil
}

func (t *Tracker) added(p Product) {
	t.metrics.ProductAdded(t.Count())
	t.log.Info("product added",
		zap.Int64("id", p.ID),
		zap.String("title", p.Title),
		zap.Int("price", p.CurrentPrice),
	)
}

func (t *Tracker) rechecked(p Product, source string) {
	t.metrics.PriceChecked(source)
	t.log.Info("price rechecked",
		zap.Int64("id", p.ID),
		zap.Int("price", p.CurrentPrice),
		zap.String("source", source),
	)
}

func (t *Tracker) rejected(url string, err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return
	}
	reason := "invalid"
	if verr.Message == MsgEmptyURL {
		reason = "empty"
	}
	t.metrics.URLRejected(reason)
	t.log.Debug("url rejected", zap.String("url", url), zap.String("reason", reason))
}

func (t *Tracker) UpstreamFailed() {
	t.metrics.UpstreamFailed()
}
