package di

import (
	"time"

	"job_backend/internal/app/config"
	"job_backend/internal/platform/externalapi/remotive"
	infrahttp "job_backend/internal/platform/http"
	"job_backend/internal/shared/ratelimiter"
)

// NewJobFeed creates the Remotive client with its own HTTP client and throttle.
func NewJobFeed(cfg *config.Config) *remotive.RemotiveFeed {
	rc := remotive.Config{
		BaseURL:      cfg.JobsFeedBaseURL,
		Timeout:      cfg.JobsFeedTimeout,
		RateLimit:    cfg.JobsFeedRateLimit,
		RateInterval: time.Minute,
	}
	httpClient := infrahttp.NewHTTPClient(rc.RequestTimeout())
	limiter := ratelimiter.NewRateLimiter(rc.RateLimit, rc.RateInterval)
	return remotive.NewRemotiveFeed(rc, httpClient, limiter)
}
