package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hireboard/job-portal/internal/core/ports"
)

// ListJobs returns every posting, newest first.
//
// @Summary      List job postings
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   domain.JobPosting
// @Router       /jobs [get]
func (h *BackendHandler) ListJobs(c echo.Context) error {
	return h.dispatch(c, ports.OpListJobs, "")
}

// GetJob returns one posting.
//
// @Summary      Get a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.JobPosting
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *BackendHandler) GetJob(c echo.Context) error {
	return h.dispatch(c, ports.OpGetJob, "")
}

// CreateJob publishes a posting. A blank postedBy is filled with the caller.
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.JobInput  true  "Job details"
// @Success      201   {object}  domain.JobPosting
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /jobs [post]
func (h *BackendHandler) CreateJob(c echo.Context) error {
	return h.dispatch(c, ports.OpCreateJob, "postedBy")
}

// UpdateJob is acknowledged without changing the posting.
//
// @Summary      Update a job posting (acknowledged only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /jobs/{id} [put]
func (h *BackendHandler) UpdateJob(c echo.Context) error {
	return h.dispatch(c, ports.OpUpdateJob, "")
}

// DeleteJob removes a posting.
//
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [delete]
func (h *BackendHandler) DeleteJob(c echo.Context) error {
	return h.dispatch(c, ports.OpDeleteJob, "")
}
