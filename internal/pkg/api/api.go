package api

import (
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"prreport/internal/errcodes"
)

const (
	// DefaultBaseURL is the root URL of the GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	acceptHeader     = "application/vnd.github+json"
	defaultUserAgent = "prreport"
	versionHeader    = "X-GitHub-Api-Version"
)

// Credentials holds the authentication material attached to every
// request. Immutable after the client is constructed.
type Credentials struct {
	// Token is the bearer token, required.
	Token string
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Version is the default API version header value, optional.
	Version string
}

type Options struct {
	BaseURL     string
	Credentials Credentials
	Retry       *RetryPolicy
	Debug       bool
}

// Client sends authenticated requests against the GitHub REST API.
// Only the read verb is supported; everything else fails with
// errcodes.ErrUnsupportedOperation before touching the network.
type Client struct {
	baseURL string
	creds   Credentials
	rest    *resty.Client
	retry   RetryPolicy
	debug   bool
}

func New(o *Options) (*Client, error) {
	if o.Credentials.Token == "" {
		return nil, errcodes.ErrMissingApiToken
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	retry := DefaultRetryPolicy()
	if o.Retry != nil {
		retry = *o.Retry
	}

	creds := o.Credentials
	if creds.UserAgent == "" {
		creds.UserAgent = defaultUserAgent
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		rest:    resty.New(),
		retry:   retry,
		debug:   o.Debug,
	}, nil
}

// RequestOptions describes a single API call.
type RequestOptions struct {
	// Path is the path of the call, relative to the base URL.
	Path string
	// Params are the query parameters to send.
	Params map[string]string
	// Version overrides the client's API version header for this
	// call only.
	Version string
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// request builds a fresh resty request with the full header set. Each
// call gets its own headers so a per-call version override never leaks
// into subsequent requests.
func (c *Client) request(o *RequestOptions) *resty.Request {
	r := c.rest.R().
		SetHeader("Accept", acceptHeader).
		SetHeader("User-Agent", c.creds.UserAgent).
		SetAuthToken(c.creds.Token)

	version := c.creds.Version
	if o.Version != "" {
		version = o.Version
	}
	if version != "" {
		r.SetHeader(versionHeader, version)
	}

	if o.Params != nil {
		r.SetQueryParams(o.Params)
	}

	return r
}

func (c *Client) send(method string, o *RequestOptions) (*resty.Response, error) {
	url := c.url(o.Path)
	if c.debug {
		log.Debug().Str("method", method).Str("url", url).Msg("sending request")
	}

	return c.request(o).Execute(method, url)
}

// Get sends an authenticated GET request, transparently retrying
// rate-limited responses according to the client's retry policy.
func (c *Client) Get(o *RequestOptions) (*resty.Response, error) {
	return c.retry.Do(func() (*resty.Response, error) {
		return c.send(resty.MethodGet, o)
	})
}

func (c *Client) Put(o *RequestOptions) (*resty.Response, error) {
	return nil, errcodes.ErrUnsupportedOperation
}

func (c *Client) Post(o *RequestOptions) (*resty.Response, error) {
	return nil, errcodes.ErrUnsupportedOperation
}

func (c *Client) Patch(o *RequestOptions) (*resty.Response, error) {
	return nil, errcodes.ErrUnsupportedOperation
}

func (c *Client) Delete(o *RequestOptions) (*resty.Response, error) {
	return nil, errcodes.ErrUnsupportedOperation
}

func (c *Client) Head(o *RequestOptions) (*resty.Response, error) {
	return nil, errcodes.ErrUnsupportedOperation
}

func (c *Client) Options(o *RequestOptions) (*resty.Response, error) {
	return nil, errcodes.ErrUnsupportedOperation
}

// Success reports whether the response carries the expected status
// code. A nil or malformed response counts as failure. When the client
// runs with diagnostics enabled the failing body is logged; the check
// itself never fails.
func (c *Client) Success(r *resty.Response, expected int) bool {
	if r == nil || r.RawResponse == nil {
		return false
	}

	if r.StatusCode() != expected {
		if c.debug && len(r.Body()) > 0 {
			log.Warn().
				Str("status", r.Status()).
				Str("body", string(r.Body())).
				Msg("unexpected response status")
		}
		return false
	}

	return true
}
