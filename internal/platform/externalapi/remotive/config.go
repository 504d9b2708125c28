// Package remotive provides a client for the Remotive remote-jobs API.
package remotive

import "time"

const (
	// DefaultBaseURL is the public Remotive API root.
	DefaultBaseURL = "https://remotive.com/api"
	// DefaultTimeout bounds a single feed request.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the Remotive client.
type Config struct {
	BaseURL      string        // e.g. "https://remotive.com/api"
	Timeout      time.Duration // HTTP request timeout
	RateLimit    int           // requests per RateInterval, 0 disables
	RateInterval time.Duration
}

func (c Config) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

// RequestTimeout returns Timeout, or DefaultTimeout when unset.
func (c Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
