package domain

import "slices"

// Company is an employer that job postings can be linked to.
type Company struct {
	CompanyID   string   `json:"companyId"`
	Name        string   `json:"name"`
	Logo        string   `json:"logo,omitempty"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Admins      []string `json:"admins"`
	Active      bool     `json:"active"`
}

// ManagedBy reports whether username is one of the company's admins.
func (c Company) ManagedBy(username string) bool {
	return slices.Contains(c.Admins, username)
}
