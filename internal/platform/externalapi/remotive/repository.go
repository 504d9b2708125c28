package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"job_backend/internal/feature/jobs/domain/entity"
	"job_backend/internal/feature/jobs/usecase"
	"job_backend/internal/platform/externalapi/remotive/dto"
	"job_backend/internal/shared/ratelimiter"
)

// RemotiveFeed is the usecase.JobFeed implementation backed by the Remotive API.
type RemotiveFeed struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

var _ usecase.JobFeed = (*RemotiveFeed)(nil)

// NewRemotiveFeed creates a RemotiveFeed. limiter may be nil.
func NewRemotiveFeed(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *RemotiveFeed {
	return &RemotiveFeed{cfg: cfg, client: client, limiter: limiter}
}

// ListJobs fetches the remote-jobs listing and returns at most limit jobs in feed order.
func (r *RemotiveFeed) ListJobs(ctx context.Context, limit int) ([]entity.Job, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("remotive rate limit: %w", err)
		}
	}

	q := url.Values{}
	if limit > 0 {
		// the API accepts limit; slicing below still caps the result
		q.Set("limit", strconv.Itoa(limit))
	}
	u := fmt.Sprintf("%s/remote-jobs", r.cfg.baseURL())
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("remotive http %d", res.StatusCode)
	}

	var body dto.RemoteJobsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode remotive response: %w", err)
	}

	n := len(body.Jobs)
	if limit > 0 && n > limit {
		n = limit
	}
	jobs := make([]entity.Job, 0, n)
	for _, j := range body.Jobs[:n] {
		jobs = append(jobs, entity.Job{
			Title:    j.Title,
			Company:  j.CompanyName,
			Location: j.CandidateRequiredLocation,
		})
	}
	return jobs, nil
}
