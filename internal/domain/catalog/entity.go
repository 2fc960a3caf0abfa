// Package catalog holds the vendor-catalog domain model: vendors and their
// certifications, service offerings and facility locations as stored in the
// relationship graph.
package catalog

import (
	"strings"
	"time"

	"github.com/turtacn/VendorIQ/pkg/errors"
)

// Vendor is a provider organization. RiskScore is an externally supplied
// assessment on a 0.0 (safest) to 1.0 (riskiest) scale. The slice fields are
// the collected related nodes (HOLDS, OFFERS, LOCATED_IN relationships).
type Vendor struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Industry          string    `json:"industry"`
	Region            string    `json:"region"`
	RiskScore         float64   `json:"risk_score"`
	Certifications    []string  `json:"certifications"`
	Services          []string  `json:"services"`
	FacilityLocations []string  `json:"facility_locations"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Certification is a compliance attestation node, e.g. "SOC 2 Type II".
type Certification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Service is an offered capability node, e.g. "colocation".
type Service struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Facility is a physical site node. Location is a free-form place name
// ("Ashburn, VA"); Region is the coarse region the site belongs to.
type Facility struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	Region   string `json:"region"`
}

// Validate checks the invariants an ingested vendor must satisfy.
func (v *Vendor) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.Validation("id", "vendor id is required")
	}
	if strings.TrimSpace(v.Name) == "" {
		return errors.Validation("name", "vendor name is required")
	}
	if v.RiskScore < 0 || v.RiskScore > 1 {
		return errors.Validation("risk_score", "risk score must be within [0.0, 1.0]")
	}
	return nil
}

// Normalize trims whitespace and drops empty entries from the slice fields.
// It mutates the receiver and returns it for chaining.
func (v *Vendor) Normalize() *Vendor {
	v.ID = strings.TrimSpace(v.ID)
	v.Name = strings.TrimSpace(v.Name)
	v.Industry = strings.TrimSpace(v.Industry)
	v.Region = strings.TrimSpace(v.Region)
	v.Certifications = cleanList(v.Certifications)
	v.Services = cleanList(v.Services)
	v.FacilityLocations = cleanList(v.FacilityLocations)
	return v
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
