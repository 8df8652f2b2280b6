package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Tier is the pricing class of a job listing.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

const (
	freeListingDays    = 30
	premiumListingDays = 60
)

// ParseTier converts s into a Tier. An empty string yields TierFree.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case "", TierFree:
		return TierFree, nil
	case TierPremium:
		return TierPremium, nil
	default:
		return "", fmt.Errorf("%w: unknown tier %q", ErrValidation, s)
	}
}

// ListingDuration is how long a listing of this tier stays visible.
func (t Tier) ListingDuration() time.Duration {
	switch t {
	case TierPremium:
		return premiumListingDays * 24 * time.Hour
	default:
		return freeListingDays * 24 * time.Hour
	}
}

// JobInput is the caller-supplied part of a job posting. Derived fields
// (tier defaults, expiry, featured flag, payment id) are never accepted here.
type JobInput struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Experience   string `json:"experience"`
	Type         string `json:"type"`
	Salary       string `json:"salary"`
	Requirements string `json:"requirements,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	Tier         Tier   `json:"tier,omitempty" validate:"omitempty,oneof=free premium"`
	PostedBy     string `json:"postedBy,omitempty"`
	CompanyID    string `json:"companyId,omitempty"`
}

// JobPosting is a published listing.
type JobPosting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Experience     string    `json:"experience"`
	Type           string    `json:"type"`
	Salary         string    `json:"salary"`
	Requirements   string    `json:"requirements,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	PostedBy       string    `json:"postedBy"`
	DatePosted     time.Time `json:"datePosted"`
	Tier           Tier      `json:"tier"`
	IsFeatured     bool      `json:"isFeatured"`
	ListingEndDate time.Time `json:"listingEndDate"`
	PaymentID      *string   `json:"paymentId"`
	CompanyID      *string   `json:"companyId,omitempty"`
	CompanyName    *string   `json:"companyName,omitempty"`
}

// NewJobPosting builds a posting from input, deriving tier, featured flag,
// listing end date and payment id from the tier as of now.
func NewJobPosting(id string, in JobInput, now time.Time) (*JobPosting, error) {
	tier, err := ParseTier(string(in.Tier))
	if err != nil {
		return nil, err
	}

	job := &JobPosting{
		ID:             id,
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		Experience:     in.Experience,
		Type:           in.Type,
		Salary:         in.Salary,
		Requirements:   in.Requirements,
		ContactEmail:   in.ContactEmail,
		PostedBy:       in.PostedBy,
		DatePosted:     now,
		Tier:           tier,
		IsFeatured:     tier == TierPremium,
		ListingEndDate: now.Add(tier.ListingDuration()),
	}
	if tier == TierPremium {
		paymentID := "pay_" + uuid.NewString()
		job.PaymentID = &paymentID
	}
	return job, nil
}

// LinkCompany attaches the posting to c.
func (j *JobPosting) LinkCompany(c Company) {
	id, name := c.CompanyID, c.Name
	j.CompanyID = &id
	j.CompanyName = &name
}

// Expired reports whether the listing end date has passed at now.
func (j JobPosting) Expired(now time.Time) bool {
	return !now.Before(j.ListingEndDate)
}

// SortByDatePostedDesc orders jobs newest first. Ties keep their relative order.
func SortByDatePostedDesc(jobs []JobPosting) {
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].DatePosted.After(jobs[b].DatePosted)
	})
}
