package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(status int, body string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/your-endpoint", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
	return httptest.NewServer(mux)
}

func TestFetchDecodesJSON(t *testing.T) {
	ts := newTestServer(http.StatusOK, `{"status":"ok","items":[1,2]}`)
	defer ts.Close()

	c := NewClient(Config{BaseURL: ts.URL + "/"}, nil)
	got, err := c.Fetch(context.Background())
	require.NoError(t, err)

	m, ok := got.(map[string]any)
	require.True(t, ok, "expected an object, got %T", got)
	assert.Equal(t, "ok", m["status"])
	assert.Equal(t, []any{float64(1), float64(2)}, m["items"])
}

func TestFetchNonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		ts := newTestServer(status, `{"error":"nope"}`)
		c := NewClient(Config{BaseURL: ts.URL}, nil)

		_, err := c.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrFetchFailed, "status %d", status)
		ts.Close()
	}
}

func TestFetchUnreachable(t *testing.T) {
	ts := newTestServer(http.StatusOK, `{}`)
	url := ts.URL
	ts.Close()

	_, err := NewClient(Config{BaseURL: url}, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchNotConfigured(t *testing.T) {
	_, err := NewClient(Config{}, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
