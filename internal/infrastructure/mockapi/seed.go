package mockapi

import (
	"time"

	"github.com/hireboard/job-portal/internal/core/domain"
)

const seedPassword = "password"

type seedUser struct {
	user     domain.User
	password string
}

func seedUsers() []seedUser {
	return []seedUser{
		{user: domain.User{ID: 1, Username: "admin", Role: domain.RoleAdmin}, password: seedPassword},
		{user: domain.User{ID: 2, Username: "recruiter1", Role: domain.RoleRecruiter, CreatedBy: "admin"}, password: seedPassword},
		{user: domain.User{ID: 3, Username: "recruiter2", Role: domain.RoleRecruiter, CreatedBy: "admin"}, password: seedPassword},
	}
}

func seedCompanies() []domain.Company {
	return []domain.Company{
		{
			CompanyID:   "c1",
			Name:        "Acme Corp",
			Logo:        "/logos/acme.png",
			Description: "Builders of everything.",
			Website:     "https://acme.example.com",
			Admins:      []string{"admin"},
			Active:      true,
		},
		{
			CompanyID:   "c2",
			Name:        "Globex",
			Logo:        "/logos/globex.png",
			Description: "Global exports and beyond.",
			Website:     "https://globex.example.com",
			Admins:      []string{"recruiter1"},
			Active:      true,
		},
	}
}

func seedJobs(companies []domain.Company) []domain.JobPosting {
	inputs := []struct {
		id   string
		in   domain.JobInput
		date time.Time
	}{
		{
			id: "job1",
			in: domain.JobInput{
				Title:       "Senior Go Developer",
				Description: "Seeking an experienced Go developer to build reliable backend services.",
				Location:    "Remote",
				Experience:  "5+ Years",
				Type:        "Full-time",
				Salary:      "$120,000 - $150,000",
				PostedBy:    "admin",
			},
			date: time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			id: "job2",
			in: domain.JobInput{
				Title:       "Frontend Engineer",
				Description: "Join our dynamic team as a Frontend Engineer.",
				Location:    "New York, NY",
				Experience:  "3-5 Years",
				Type:        "Full-time",
				Salary:      "$100,000 - $130,000",
				PostedBy:    "recruiter1",
			},
			date: time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			id: "job3",
			in: domain.JobInput{
				Title:       "UI/UX Designer",
				Description: "We are looking for a creative UI/UX Designer.",
				Location:    "San Francisco, CA",
				Experience:  "2+ Years",
				Type:        "Contract",
				Salary:      "$70 - $90 / hour",
				PostedBy:    "admin",
			},
			date: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	jobs := make([]domain.JobPosting, 0, len(inputs))
	for _, s := range inputs {
		job, err := domain.NewJobPosting(s.id, s.in, s.date)
		if err != nil {
			panic(err)
		}
		if c, ok := companyManagedBy(companies, s.in.PostedBy); ok {
			job.LinkCompany(c)
		}
		jobs = append(jobs, *job)
	}
	return jobs
}
