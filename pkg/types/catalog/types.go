// Package catalog defines the wire types of the catalog/ingestion API.
package catalog

// Vendor is the API representation of one catalog vendor.
type Vendor struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Industry          string   `json:"industry,omitempty"`
	Region            string   `json:"region,omitempty"`
	RiskScore         float64  `json:"risk_score"`
	Certifications    []string `json:"certifications,omitempty"`
	Services          []string `json:"services,omitempty"`
	FacilityLocations []string `json:"facility_locations,omitempty"`
}

// BatchRequest carries a batch vendor ingest.
type BatchRequest struct {
	Vendors []Vendor `json:"vendors"`
}

// BatchResponse reports how many vendors a batch ingest wrote.
type BatchResponse struct {
	Ingested int `json:"ingested"`
}

// ListResponse is a page of vendors.
type ListResponse struct {
	Vendors []Vendor `json:"vendors"`
	Total   int64    `json:"total"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
}
