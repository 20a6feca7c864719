package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	reset := time.Now().Add(time.Hour)
	var remaining atomic.Value
	remaining.Store("50")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", remaining.Load().(string))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
	}))
	defer srv.Close()

	var logged []string
	limiter := NewRateLimiter(func(msg string, args ...interface{}) {
		logged = append(logged, msg)
	})
	client := &http.Client{Transport: limiter.Middleware(http.DefaultTransport)}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, time.Duration(0), limiter.wait())
	assert.Len(t, logged, 1, "expected a low rate limit warning")

	remaining.Store("0")
	resp, err = client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Greater(t, limiter.wait(), time.Duration(0))

	// exhausted: the next request waits until reset, or until cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	_, err = client.Do(req)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	limiter.now = func() time.Time { return reset.Add(time.Second) }
	assert.Equal(t, time.Duration(0), limiter.wait())
}
