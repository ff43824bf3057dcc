// Package upstream talks to the product-data provider configured through
// BACKEND_URL. The provider's contract is not defined beyond "returns JSON on
// success", so responses are decoded into generic values.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const endpointPath = "/api/your-endpoint"

var (
	ErrFetchFailed   = errors.New("failed to fetch data")
	ErrNotConfigured = errors.New("backend url is not configured")
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http    *resty.Client
	baseURL string
	log     *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log.Named("upstream"),
	}
	c.http.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		c.log.Debug("request finished",
			zap.String("method", res.Request.Method),
			zap.String("url", res.Request.URL),
			zap.Int("status", res.StatusCode()),
			zap.Duration("duration", res.Time()),
		)
		return nil
	})
	return c
}

// Fetch issues GET {BaseURL}/api/your-endpoint. Any transport error or non-2xx
// status is reported as ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context) (any, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(c.baseURL + endpointPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, res.StatusCode())
	}

	var out any
	if err := json.Unmarshal(res.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
