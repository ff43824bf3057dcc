package products

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/metrics"
	"github.com/valeevte/pricetracker/internal/upstream"
)

// Provider is the external product-data source. It is not part of the
// tracker flow; the API only proxies it.
type Provider interface {
	Fetch(ctx context.Context) (any, error)
}

type Handler struct {
	tracker  *Tracker
	provider Provider
	log      *zap.Logger
}

func NewHandler(tracker *Tracker, provider Provider, log *zap.Logger) *Handler {
	return &Handler{tracker: tracker, provider: provider, log: log}
}

// RegisterRoutes mounts the JSON API on api (normally the /api group).
func (h *Handler) RegisterRoutes(api gin.IRoutes) {
	api.GET("/products", h.ListProducts)
	api.POST("/products", h.CreateProduct)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/history", h.GetPriceHistory)
	api.POST("/products/:id/check", h.CheckPrice)
	api.GET("/provider", h.FetchProvider)
}

type createProductInput struct {
	URL string `json:"url"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var input createProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	p, existed, err := h.tracker.Upsert(c.Request.Context(), input.URL)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}
		h.log.Error("CreateProduct: tracker.Upsert error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert"})
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{
			"message":    "Product already existed. Price updated.",
			"product_id": p.ID,
			"product":    p,
		})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListProducts(c *gin.Context) {
	var criteria Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	criteria.MatchDescription = true
	list, err := h.tracker.GetProducts(c.Request.Context(), criteria)
	if err != nil {
		h.log.Error("ListProducts: tracker.GetProducts error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.tracker.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetPriceHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	hist, err := h.tracker.GetPriceHistory(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, "GetPriceHistory", err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

func (h *Handler) CheckPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.tracker.Recheck(c.Request.Context(), id, metrics.SourceManual)
	if err != nil {
		h.writeLookupError(c, "CheckPrice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Price updated successfully",
		"new_price": p.CurrentPrice,
		"product":   p,
	})
}

func (h *Handler) FetchProvider(c *gin.Context) {
	data, err := h.provider.Fetch(c.Request.Context())
	switch {
	case errors.Is(err, upstream.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backend url is not configured"})
	case err != nil:
		h.tracker.UpstreamFailed()
		h.log.Warn("FetchProvider: provider.Fetch error", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch data"})
	default:
		c.JSON(http.StatusOK, data)
	}
}

func (h *Handler) writeLookupError(c *gin.Context, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	h.log.Error(op+": repository error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch product"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
