package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valeevte/pricetracker/internal/metrics"
	"github.com/valeevte/pricetracker/internal/products"
)

// Handler serves the server-rendered tracker page and its form posts.
type Handler struct {
	tracker *products.Tracker
	log     *zap.Logger
}

func NewHandler(tracker *products.Tracker, log *zap.Logger) *Handler {
	return &Handler{tracker: tracker, log: log}
}

// Install sets the engine's HTML renderer to the embedded templates and
// registers the page routes.
func (h *Handler) Install(e *gin.Engine) {
	e.SetHTMLTemplate(trackerTemplate)
	h.RegisterRoutes(e)
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/products", h.AddProduct)
	r.POST("/products/:id/check", h.CheckPrice)
}

func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, TrackerContext{Criteria: criteria(c)})
}

func (h *Handler) AddProduct(c *gin.Context) {
	url := c.PostForm("url")
	filter := criteria(c)

	_, err := h.tracker.Add(c.Request.Context(), url)
	var verr *products.ValidationError
	switch {
	case errors.As(err, &verr):
		h.render(c, http.StatusUnprocessableEntity, TrackerContext{
			URL:      url,
			Error:    verr.Message,
			Criteria: filter,
		})
		return
	case err != nil:
		h.log.Error("AddProduct: tracker.Add error", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to add product")
		return
	}
	h.redirectHome(c, filter)
}

// CheckPrice rechecks a product. Unknown ids are ignored and the page is
// simply shown again.
func (h *Handler) CheckPrice(c *gin.Context) {
	filter := criteria(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		_, err = h.tracker.Recheck(c.Request.Context(), id, metrics.SourceManual)
		if err != nil && !errors.Is(err, products.ErrNotFound) {
			h.log.Error("CheckPrice: tracker.Recheck error", zap.Error(err))
			c.String(http.StatusInternalServerError, "failed to check price")
			return
		}
	}
	h.redirectHome(c, filter)
}

func (h *Handler) render(c *gin.Context, status int, tc TrackerContext) {
	ctx := c.Request.Context()
	list, err := h.tracker.GetProducts(ctx, tc.Criteria)
	if err != nil {
		h.log.Error("render: tracker.GetProducts error", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load products")
		return
	}
	tc.Products = list
	tc.Total = h.tracker.Count()

	c.HTML(status, trackerPage, tc.withDefaults())
}

func (h *Handler) redirectHome(c *gin.Context, filter products.Criteria) {
	target := "/"
	if q := FilterQuery(filter).Encode(); q != "" {
		target += "?" + q
	}
	c.Redirect(http.StatusSeeOther, target)
}

func criteria(c *gin.Context) products.Criteria {
	return products.Criteria{
		Search:   c.Query("search"),
		MinPrice: c.Query("min_price"),
		MaxPrice: c.Query("max_price"),
	}
}
