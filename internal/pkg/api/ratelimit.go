package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"prreport/internal/errcodes"
)

// DefaultRateLimitWait is used when a rate-limited response carries
// neither a Retry-After nor an X-RateLimit-Reset header.
const DefaultRateLimitWait = 60 * time.Second

// RetryPolicy absorbs rate-limited responses so that one logical
// request appears successful to callers. GitHub signals rate limiting
// with 403 (not the correct 429) plus a message body, so status codes
// alone are not enough to detect it.
type RetryPolicy struct {
	// MaxAttempts caps the number of rate-limited responses absorbed
	// before giving up with errcodes.ErrRateLimited. Zero or negative
	// retries forever, matching the API's documented guidance to wait
	// out the reset.
	MaxAttempts int
	// Sleep blocks for the computed wait. Replaceable in tests.
	Sleep func(time.Duration)
	// Now is the epoch source for X-RateLimit-Reset arithmetic.
	Now func() time.Time
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Sleep: time.Sleep,
		Now:   time.Now,
	}
}

// Do invokes send until it returns a response that is not rate
// limited. Transport errors are returned as-is; rate limiting itself
// is never surfaced as an error unless MaxAttempts is exhausted.
func (p RetryPolicy) Do(send func() (*resty.Response, error)) (*resty.Response, error) {
	attempts := 0
	for {
		r, err := send()
		if err != nil {
			return nil, err
		}

		if !isRateLimited(r) {
			return r, nil
		}

		attempts++
		if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
			return r, errcodes.ErrRateLimited
		}

		p.Sleep(p.wait(r.Header()))
	}
}

func isRateLimited(r *resty.Response) bool {
	if r.StatusCode() != http.StatusForbidden &&
		r.StatusCode() != http.StatusTooManyRequests {
		return false
	}

	if len(r.Body()) == 0 {
		return false
	}

	msg := gjson.GetBytes(r.Body(), "message").String()
	return strings.HasPrefix(strings.ToLower(msg), "api rate limit")
}

// wait computes the backoff duration: Retry-After wins, then the
// X-RateLimit-Reset epoch, then the default constant.
func (p RetryPolicy) wait(h http.Header) time.Duration {
	wait := DefaultRateLimitWait

	if ra := h.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			wait = time.Duration(secs) * time.Second
		}
	} else if reset := h.Get("X-RateLimit-Reset"); reset != "" {
		if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
			wait = time.Unix(epoch, 0).Sub(p.Now())
		}
	}

	log.Warn().
		Dur("wait", wait).
		Msg("rate limit exceeded, sleeping before retry")

	return wait
}
