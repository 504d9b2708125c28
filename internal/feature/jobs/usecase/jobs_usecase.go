// Package usecase implements the business logic for the jobs feature.
package usecase

import (
	"context"

	"job_backend/internal/feature/jobs/domain/entity"
	"job_backend/internal/shared/apperr"
)

// DefaultLimit is how many jobs GET /jobs returns.
const DefaultLimit = 12

// ErrFeedUnavailable is returned when the upstream feed fails or times out.
var ErrFeedUnavailable = apperr.New(apperr.KindUnavailable, "Job feed unavailable")

// JobFeed abstracts the external job listing.
type JobFeed interface {
	ListJobs(ctx context.Context, limit int) ([]entity.Job, error)
}

// jobsUsecase proxies the external feed.
type jobsUsecase struct {
	feed  JobFeed
	limit int
}

// NewJobsUsecase creates a jobsUsecase. limit <= 0 selects DefaultLimit.
func NewJobsUsecase(feed JobFeed, limit int) *jobsUsecase {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &jobsUsecase{feed: feed, limit: limit}
}

// ListJobs returns the first jobs of the feed.
func (u *jobsUsecase) ListJobs(ctx context.Context) ([]entity.Job, error) {
	jobs, err := u.feed.ListJobs(ctx, u.limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, ErrFeedUnavailable.Message, err)
	}
	if len(jobs) > u.limit {
		jobs = jobs[:u.limit]
	}
	return jobs, nil
}
