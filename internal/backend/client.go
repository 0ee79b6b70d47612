// Package backend is the single chokepoint for requests to the recipe
// backend. It resolves relative paths against the configured origin, attaches
// the visitor's anti-forgery token and captured backend cookies, and hands
// the raw response back to the caller. It never retries and never interprets
// a non-2xx status on its own; the typed calls layered on top of Do decide
// what each status means.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CSRFHeader is the anti-forgery header the backend requires on every
// state-mutating request.
const CSRFHeader = "X-XSRF-TOKEN"

// Credentials supplies the per-visitor state attached to outgoing requests:
// the current anti-forgery token and the cookies previously set by the
// backend (its session cookie in particular). StoreCookies is called with any
// Set-Cookie values the backend returns so the session keeps tracking them.
type Credentials interface {
	CSRFToken() string
	BackendCookies() []*http.Cookie
	StoreCookies([]*http.Cookie)
}

// Client issues HTTP requests to the recipe backend on behalf of a visitor
// session. It is safe for concurrent use; per-visitor state lives entirely in
// the Credentials passed to each call.
type Client struct {
	origin string
	http   *http.Client
}

// New builds a Client for the given backend origin, e.g.
// "http://localhost:8080". The timeout bounds each request end to end in
// addition to whatever deadline the caller's context carries.
func New(origin string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("backend origin: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend origin %q: scheme must be http or https", origin)
	}
	return &Client{
		origin: strings.TrimRight(u.String(), "/"),
		http:   &http.Client{Timeout: timeout},
	}, nil
}

// Origin returns the configured backend origin.
func (c *Client) Origin() string { return c.origin }

// Do issues one request. A target that is not an absolute URL is resolved
// against the configured origin. For any method other than GET or HEAD the
// current CSRF token is attached when one is known; when none is known the
// request proceeds without it and the backend is trusted to reject it.
// Callers own the returned response body.
func (c *Client) Do(ctx context.Context, creds Credentials, method, target string, body io.Reader, header http.Header) (*http.Response, error) {
	u := target
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		u = c.origin + target
	}

	method = strings.ToUpper(method)
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	if creds != nil {
		if method != http.MethodGet && method != http.MethodHead {
			if tok := creds.CSRFToken(); tok != "" {
				req.Header.Set(CSRFHeader, tok)
			}
		}
		for _, ck := range creds.BackendCookies() {
			req.AddCookie(ck)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if creds != nil {
		if set := resp.Cookies(); len(set) > 0 {
			creds.StoreCookies(set)
		}
	}
	return resp, nil
}

// drain discards the remainder of a body so the connection can be reused.
// Closing stays with the caller.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 1<<16))
}
