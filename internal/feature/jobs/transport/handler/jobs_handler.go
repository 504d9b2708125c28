// Package handler provides the HTTP handlers for the jobs feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"job_backend/internal/api"
	"job_backend/internal/feature/jobs/domain/entity"
	"job_backend/internal/shared/apperr"
)

// JobsUsecase is what the handler needs from the jobs usecase.
type JobsUsecase interface {
	ListJobs(ctx context.Context) ([]entity.Job, error)
}

// JobsHandler handles GET /jobs.
type JobsHandler struct {
	uc JobsUsecase
}

// NewJobsHandler creates a JobsHandler.
func NewJobsHandler(uc JobsUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// ListJobs returns the feed as {"jobs":[{title, company, location}]}.
func (h *JobsHandler) ListJobs(c *gin.Context) {
	jobs, err := h.uc.ListJobs(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	out := make([]api.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, api.Job{Title: j.Title, Company: j.Company, Location: j.Location})
	}
	c.JSON(http.StatusOK, api.JobsResponse{Jobs: out})
}
