package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter is an http middleware that tracks GitHub's rate limit headers
// and holds requests once the limit is exhausted, until it resets or the
// request's context is done.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	lowWarn   int
	logf      func(msg string, args ...interface{})
	now       func() time.Time
}

func NewRateLimiter(logf func(msg string, args ...interface{})) *RateLimiter {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &RateLimiter{
		remaining: -1,
		lowWarn:   100,
		logf:      logf,
		now:       time.Now,
	}
}

// wait returns how long a request must wait before being sent.
func (r *RateLimiter) wait() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.remaining != 0 {
		return 0
	}
	if d := r.reset.Sub(r.now()); d > 0 {
		return d
	}
	return 0
}

func (r *RateLimiter) update(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := headers.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}
	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	if r.remaining >= 0 && r.remaining < r.lowWarn {
		r.logf("github: low rate limit: %d remaining, resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateLimiter) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if d := r.wait(); d > 0 {
			r.logf("github: rate limit exceeded, waiting %v", d)
			timer := time.NewTimer(d)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			case <-timer.C:
			}
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		r.update(resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
