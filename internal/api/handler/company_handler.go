package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hireboard/job-portal/internal/core/ports"
)

// GetCompany returns one company.
//
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  map[string]string
// @Router       /companies/{id} [get]
func (h *BackendHandler) GetCompany(c echo.Context) error {
	return h.dispatch(c, ports.OpGetCompany, "")
}

// ListCompanyJobs returns the postings linked to a company.
//
// @Summary      List a company's job postings
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {array}   domain.JobPosting
// @Failure      404  {object}  map[string]string
// @Router       /companies/{id}/jobs [get]
func (h *BackendHandler) ListCompanyJobs(c echo.Context) error {
	return h.dispatch(c, ports.OpListCompanyJobs, "")
}
