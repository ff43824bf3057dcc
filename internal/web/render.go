package web

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/valeevte/pricetracker/internal/products"
)

//go:embed templates
var templatesFs embed.FS

const trackerPage = "tracker.html.tpl"

var trackerTemplate = template.Must(
	template.New(trackerPage).Funcs(template.FuncMap{
		"rupees":    FormatRupees,
		"thousands": FormatThousands,
		"chart":     NewChart,
	}).ParseFS(templatesFs, "templates/tracker.html.tpl", "templates/common/*"),
)

type TrackerContext struct {
	Title    string
	URL      string
	Error    string
	Criteria products.Criteria
	Products []products.Product
	Total    int
}

// ProductItem is one entry of the product list.
type ProductItem struct {
	products.Product
	CheckAction template.URL
}

func (c TrackerContext) Item(p products.Product) ProductItem {
	return ProductItem{Product: p, CheckAction: c.CheckAction(p.ID)}
}

// AddAction is the input form target, carrying the active filter along.
func (c TrackerContext) AddAction() template.URL {
	return c.action("/products")
}

func (c TrackerContext) CheckAction(id int64) template.URL {
	return c.action("/products/" + strconv.FormatInt(id, 10) + "/check")
}

func (c TrackerContext) action(path string) template.URL {
	if q := FilterQuery(c.Criteria).Encode(); q != "" {
		path += "?" + q
	}
	return template.URL(path)
}

// FilterQuery turns the non-empty filter fields into query parameters.
func FilterQuery(c products.Criteria) url.Values {
	v := url.Values{}
	if c.Search != "" {
		v.Set("search", c.Search)
	}
	if c.MinPrice != "" {
		v.Set("min_price", c.MinPrice)
	}
	if c.MaxPrice != "" {
		v.Set("max_price", c.MaxPrice)
	}
	return v
}

func RenderTracker(w io.Writer, c TrackerContext) error {
	return trackerTemplate.ExecuteTemplate(w, trackerPage, c.withDefaults())
}

func (c TrackerContext) withDefaults() TrackerContext {
	if c.Title == "" {
		c.Title = "Flipkart Price Tracker"
	}
	return c
}

// FormatRupees renders a price as ₹ with comma thousands separators.
func FormatRupees(price int) string {
	return "₹" + FormatThousands(price)
}

func FormatThousands(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.Itoa(n)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return sign + string(out)
}
