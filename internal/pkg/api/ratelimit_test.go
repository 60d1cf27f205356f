package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"prreport/internal/errcodes"
)

const rateLimitBody = `{"message": "API rate limit exceeded for user"}`

// rateLimitedServer answers with rate-limit responses until the
// configured number of calls, then succeeds.
func rateLimitedServer(limited int, header http.Header) (*httptest.Server, *int) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls <= limited {
				for k, vs := range header {
					for _, v := range vs {
						w.Header().Set(k, v)
					}
				}
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(rateLimitBody))
				return
			}
			w.Write([]byte(`[]`))
		}))

	return srv, &calls
}

func guardedClient(t *testing.T, url string, sleeps *[]time.Duration, policy RetryPolicy) *Client {
	t.Helper()

	policy.Sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	if policy.Now == nil {
		policy.Now = time.Now
	}

	c, err := New(&Options{
		BaseURL:     url,
		Credentials: Credentials{Token: "t"},
		Retry:       &policy,
	})
	assert.NoError(t, err)

	return c
}

func TestRateLimitRetry(t *testing.T) {
	t.Run("absorbs a 429 and honors Retry-After", func(t *testing.T) {
		srv, calls := rateLimitedServer(1, http.Header{"Retry-After": {"2"}})
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{})

		r, err := c.Get(&RequestOptions{Path: "x"})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, r.StatusCode())
		assert.Equal(t, 2, *calls)
		assert.Len(t, sleeps, 1)
		assert.GreaterOrEqual(t, sleeps[0], 2*time.Second)
	})

	t.Run("uses the reset epoch when Retry-After is absent", func(t *testing.T) {
		now := time.Now()
		reset := now.Add(30 * time.Second)
		srv, _ := rateLimitedServer(1, http.Header{
			"X-Ratelimit-Reset": {fmt.Sprint(reset.Unix())},
		})
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{
			Now: func() time.Time { return time.Unix(now.Unix(), 0) },
		})

		_, err := c.Get(&RequestOptions{Path: "x"})
		assert.NoError(t, err)
		assert.Len(t, sleeps, 1)
		assert.Equal(t, 30*time.Second, sleeps[0])
	})

	t.Run("falls back to the default wait", func(t *testing.T) {
		srv, _ := rateLimitedServer(1, nil)
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{})

		_, err := c.Get(&RequestOptions{Path: "x"})
		assert.NoError(t, err)
		assert.Len(t, sleeps, 1)
		assert.Equal(t, DefaultRateLimitWait, sleeps[0])
	})

	t.Run("bounded policy gives up with ErrRateLimited", func(t *testing.T) {
		srv, calls := rateLimitedServer(100, nil)
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{MaxAttempts: 3})

		_, err := c.Get(&RequestOptions{Path: "x"})
		assert.ErrorIs(t, err, errcodes.ErrRateLimited)
		assert.Equal(t, 3, *calls)
		assert.Len(t, sleeps, 2)
	})
}

func TestRateLimitDetection(t *testing.T) {
	t.Run("403 without a rate limit message passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"message": "Resource not accessible"}`))
			}))
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{})

		r, err := c.Get(&RequestOptions{Path: "x"})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, r.StatusCode())
		assert.Empty(t, sleeps)
	})

	t.Run("403 with an empty body passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{})

		r, err := c.Get(&RequestOptions{Path: "x"})
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, r.StatusCode())
		assert.Empty(t, sleeps)
	})

	t.Run("message match is case-insensitive", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"message": "api RATE limit exceeded"}`))
			}))
		defer srv.Close()

		var sleeps []time.Duration
		c := guardedClient(t, srv.URL, &sleeps, RetryPolicy{MaxAttempts: 2})

		_, err := c.Get(&RequestOptions{Path: "x"})
		assert.ErrorIs(t, err, errcodes.ErrRateLimited)
		assert.Len(t, sleeps, 1)
	})
}
