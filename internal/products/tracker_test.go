package products

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/valeevte/pricetracker/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestTrackerRecordsOutcomes(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := metrics.New()
	tr := NewTracker(newTestRepository(4), m, zap.New(core))
	ctx := context.Background()

	p, err := tr.Add(ctx, mouseURL)
	require.NoError(t, err)
	_, err = tr.Add(ctx, "")
	require.Error(t, err)
	_, err = tr.Add(ctx, "https://example.com/not-flipkart")
	require.Error(t, err)
	_, err = tr.Recheck(ctx, p.ID, metrics.SourceManual)
	require.NoError(t, err)
	_, err = tr.Recheck(ctx, p.ID+1, metrics.SourceManual)
	require.ErrorIs(t, err, ErrNotFound)

	text := scrape(t, m)
	assert.Contains(t, text, "pricetracker_products_added_total 1")
	assert.Contains(t, text, "pricetracker_tracked_products 1")
	assert.Contains(t, text, `pricetracker_rejected_urls_total{reason="empty"} 1`)
	assert.Contains(t, text, `pricetracker_rejected_urls_total{reason="invalid"} 1`)
	assert.Contains(t, text, `pricetracker_price_checks_total{source="manual"} 1`)

	assert.Equal(t, 1, logs.FilterMessage("product added").Len())
	assert.Equal(t, 2, logs.FilterMessage("url rejected").Len())
	assert.Equal(t, 1, logs.FilterMessage("price rechecked").Len())
}

func TestTrackerUpsertCountsRecheckNotAdd(t *testing.T) {
	m := metrics.New()
	tr := NewTracker(newTestRepository(5), m, zap.NewNop())
	ctx := context.Background()

	_, existed, err := tr.Upsert(ctx, mouseURL)
	require.NoError(t, err)
	assert.False(t, existed)
	_, existed, err = tr.Upsert(ctx, mouseURL)
	require.NoError(t, err)
	assert.True(t, existed)

	text := scrape(t, m)
	assert.Contains(t, text, "pricetracker_products_added_total 1")
	assert.Contains(t, text, `pricetracker_price_checks_total{source="manual"} 1`)
}
