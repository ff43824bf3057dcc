package web

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/metrics"
	"github.com/valeevte/pricetracker/internal/products"
)

const mouseURL = "https://www.flipkart.com/cool-wireless-mouse/p/itm123"

func newTestServer(t *testing.T) (*gin.Engine, *products.Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := products.Env{
		Rand: rand.New(rand.NewSource(1)),
		Now:  time.Now,
	}
	tracker := products.NewTracker(products.NewRepository(env), metrics.New(), zap.NewNop())
	r := gin.New()
	NewHandler(tracker, zap.NewNop()).Install(r)
	return r, tracker
}

func postForm(r http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getPage(t *testing.T, r http.Handler, target string) *goquery.Document {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestAddProductForm(t *testing.T) {
	r, tracker := newTestServer(t)

	rec := postForm(r, "/products", url.Values{"url": {mouseURL}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, tracker.Count())

	doc := getPage(t, r, "/")
	assert.Equal(t, "Cool Wireless Mouse", doc.Find("article.product h2.title").Text())
	assert.Equal(t, "Check Price", doc.Find("article.product button.check").Text())
	val, _ := doc.Find(`input[name=url]`).Attr("value")
	assert.Empty(t, val)
	assert.Zero(t, doc.Find("#form-error").Length())
}

func TestAddProductFormErrors(t *testing.T) {
	r, tracker := newTestServer(t)

	for in, msg := range map[string]string{
		"":                                 "Please enter a URL.",
		"https://example.com/not-flipkart": "Please enter a valid Flipkart product URL.",
	} {
		rec := postForm(r, "/products", url.Values{"url": {in}})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, msg, doc.Find("#form-error").Text())
		val, _ := doc.Find(`input[name=url]`).Attr("value")
		assert.Equal(t, in, val)
	}
	assert.Zero(t, tracker.Count())
}

func TestCheckPriceForm(t *testing.T) {
	r, tracker := newTestServer(t)
	p, err := tracker.Add(context.Background(), mouseURL)
	require.NoError(t, err)

	target := fmt.Sprintf("/products/%d/check?search=mouse", p.ID)
	for range 8 {
		rec := postForm(r, target, nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?search=mouse", rec.Header().Get("Location"))
	}

	doc := getPage(t, r, "/?search=mouse")
	item := doc.Find("article.product")
	require.Equal(t, 1, item.Length())
	assert.Equal(t, "Recheck Price", item.Find("button.check").Text())
	assert.Equal(t, products.HistoryWindow, item.Find("svg.chart circle").Length())
}

func TestCheckPriceFormUnknownIDIsIgnored(t *testing.T) {
	r, tracker := newTestServer(t)
	p, err := tracker.Add(context.Background(), mouseURL)
	require.NoError(t, err)

	for _, target := range []string{"/products/1/check", "/products/nope/check"} {
		rec := postForm(r, target, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
	}

	got, err := tracker.GetProductByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestIndexFilters(t *testing.T) {
	r, tracker := newTestServer(t)
	ctx := context.Background()
	for _, u := range []string{
		"https://www.flipkart.com/cool-wireless-mouse/p/1",
		"https://www.flipkart.com/steel-water-bottle/p/2",
		"https://www.flipkart.com/gaming-mouse-pad/p/3",
	} {
		_, err := tracker.Add(ctx, u)
		require.NoError(t, err)
	}

	doc := getPage(t, r, "/")
	titles := doc.Find("article.product h2.title").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Gaming Mouse Pad", "Steel Water Bottle", "Cool Wireless Mouse"}, titles)

	doc = getPage(t, r, "/?search=MOUSE")
	assert.Equal(t, 2, doc.Find("article.product").Length())
	assert.Contains(t, doc.Find("#filter-panel .muted").Text(), "Showing 2 of 3")
	val, _ := doc.Find(`input[name=search]`).Attr("value")
	assert.Equal(t, "MOUSE", val)

	doc = getPage(t, r, "/?min_price=1000000")
	assert.Zero(t, doc.Find("article.product").Length())
}

func TestAddProductFormTracksRepeatedURLSeparately(t *testing.T) {
	r, tracker := newTestServer(t)

	for range 2 {
		rec := postForm(r, "/products", url.Values{"url": {mouseURL}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
	}
	assert.Equal(t, 2, tracker.Count())
	assert.Equal(t, 2, getPage(t, r, "/").Find("article.product").Length())
}
