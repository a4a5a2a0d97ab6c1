package model

import (
	"fmt"
	"time"
)

type Project struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Client    string     `json:"client,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Summary   RFPSummary `json:"summary"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (p *Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("project id is required")
	}
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	for _, e := range p.Summary.Estimates {
		if e.Role == "" {
			return fmt.Errorf("estimate role is required")
		}
		if e.Hours < 0 {
			return fmt.Errorf("estimate for %s has negative hours", e.Role)
		}
	}
	return nil
}

// RoleEstimate is the effort estimate for one delivery role.
type RoleEstimate struct {
	Role  string  `json:"role"`
	Hours float64 `json:"hours"`
}

// RFPSummary is the analysis extracted from an RFP during the Initial
// Analysis stage and refined during Estimation Review.
type RFPSummary struct {
	Purpose         string         `json:"purpose,omitempty"`
	Scope           string         `json:"scope,omitempty"`
	PaymentTerms    string         `json:"paymentTerms,omitempty"`
	KeyRequirements []string       `json:"keyRequirements,omitempty"`
	Estimates       []RoleEstimate `json:"estimates,omitempty"`
}

// TotalHours sums every role estimate.
func (s RFPSummary) TotalHours() float64 {
	var total float64
	for _, e := range s.Estimates {
		total += e.Hours
	}
	return total
}
