// Package http provides the shared outbound HTTP client and platform handlers.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent identifies this service to upstream APIs.
const DefaultUserAgent = "job_backend/1.0"

// NewHTTPClient returns a client for calling external APIs.
// timeout bounds the whole request including reading the body; http.DefaultClient
// has no timeout and must not be used for upstream calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return NewHTTPClientWithUserAgent(timeout, DefaultUserAgent)
}

// NewHTTPClientWithUserAgent is NewHTTPClient with a custom User-Agent header.
func NewHTTPClientWithUserAgent(timeout time.Duration, userAgent string) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{base: t, userAgent: userAgent},
	}
}

// userAgentTransport sets User-Agent on requests that do not carry one.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
