package web

import (
	"strconv"
	"strings"

	"github.com/valeevte/pricetracker/internal/products"
)

const (
	chartWidth   = 600
	chartHeight  = 180
	chartPadLeft = 56
	chartPadX    = 16
	chartPadTop  = 12
	chartPadBot  = 28
)

type ChartPoint struct {
	X, Y  float64
	Date  string
	Price int
}

// Chart is the geometry of one price-history line chart in SVG user units.
type Chart struct {
	Width, Height int
	Left, Right   float64
	Top, Bottom   float64
	Points        []ChartPoint
	MinPrice      int
	MaxPrice      int
}

// Polyline is the value of the SVG points attribute.
func (c Chart) Polyline() string {
	parts := make([]string, 0, len(c.Points))
	for _, p := range c.Points {
		parts = append(parts, formatCoord(p.X)+","+formatCoord(p.Y))
	}
	return strings.Join(parts, " ")
}

// NewChart lays out history left to right, oldest first, scaling prices
// between the lowest and highest sample. A flat series sits mid-height.
func NewChart(history []products.PriceHistory) Chart {
	c := Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartPadLeft,
		Right:  chartWidth - chartPadX,
		Top:    chartPadTop,
		Bottom: chartHeight - chartPadBot,
	}
	if len(history) == 0 {
		return c
	}

	c.MinPrice, c.MaxPrice = history[0].Price, history[0].Price
	for _, h := range history[1:] {
		c.MinPrice = min(c.MinPrice, h.Price)
		c.MaxPrice = max(c.MaxPrice, h.Price)
	}

	span := float64(c.MaxPrice - c.MinPrice)
	step := 0.0
	if len(history) > 1 {
		step = (c.Right - c.Left) / float64(len(history)-1)
	}
	for i, h := range history {
		x := c.Left + step*float64(i)
		if len(history) == 1 {
			x = (c.Left + c.Right) / 2
		}
		y := (c.Top + c.Bottom) / 2
		if span > 0 {
			y = c.Bottom - (float64(h.Price-c.MinPrice)/span)*(c.Bottom-c.Top)
		}
		c.Points = append(c.Points, ChartPoint{X: x, Y: y, Date: h.Date, Price: h.Price})
	}
	return c
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
