// Package dto defines data transfer objects for the Remotive API responses.
package dto

// RemoteJobsResponse is the body of GET /remote-jobs. Only the fields the
// service reads are mapped.
type RemoteJobsResponse struct {
	JobCount int `json:"job-count"`
	Jobs     []struct {
		ID                        int64  `json:"id"`
		URL                       string `json:"url"`
		Title                     string `json:"title"`
		CompanyName               string `json:"company_name"`
		Category                  string `json:"category"`
		JobType                   string `json:"job_type"`
		PublicationDate           string `json:"publication_date"`
		CandidateRequiredLocation string `json:"candidate_required_location"`
	} `json:"jobs"`
}
