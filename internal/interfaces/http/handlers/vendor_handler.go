package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/VendorIQ/internal/application/ingest"
	"github.com/turtacn/VendorIQ/internal/domain/catalog"
	"github.com/turtacn/VendorIQ/pkg/errors"
	catalogtypes "github.com/turtacn/VendorIQ/pkg/types/catalog"
)

// VendorHandler serves catalog CRUD and ingestion.
type VendorHandler struct {
	service *ingest.Service
}

func NewVendorHandler(service *ingest.Service) *VendorHandler {
	return &VendorHandler{service: service}
}

// Upsert handles POST /api/v1/vendors and PUT /api/v1/vendors/{id}.
func (h *VendorHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req catalogtypes.Vendor
	if !decodeBody(w, r, &req) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}

	vendor := toDomainVendor(req)
	if err := h.service.UpsertVendor(r.Context(), vendor); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWireVendor(vendor))
}

// Batch handles POST /api/v1/ingestion/vendors.
func (h *VendorHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req catalogtypes.BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Vendors) == 0 {
		writeAppError(w, errors.Validation("vendors", "batch must not be empty"))
		return
	}

	vendors := make([]*catalog.Vendor, 0, len(req.Vendors))
	for _, v := range req.Vendors {
		vendors = append(vendors, toDomainVendor(v))
	}
	count, err := h.service.UpsertBatch(r.Context(), vendors)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalogtypes.BatchResponse{Ingested: count})
}

// Get handles GET /api/v1/vendors/{id}.
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.service.GetVendor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWireVendor(vendor))
}

// List handles GET /api/v1/vendors.
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePage(r)
	vendors, total, err := h.service.ListVendors(r.Context(), offset, limit)
	if err != nil {
		writeAppError(w, err)
		return
	}

	out := make([]catalogtypes.Vendor, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toWireVendor(v))
	}
	writeJSON(w, http.StatusOK, catalogtypes.ListResponse{
		Vendors: out,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
	})
}

// Delete handles DELETE /api/v1/vendors/{id}.
func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVendor(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDomainVendor(v catalogtypes.Vendor) *catalog.Vendor {
	return &catalog.Vendor{
		ID:                v.ID,
		Name:              v.Name,
		Industry:          v.Industry,
		Region:            v.Region,
		RiskScore:         v.RiskScore,
		Certifications:    v.Certifications,
		Services:          v.Services,
		FacilityLocations: v.FacilityLocations,
	}
}

func toWireVendor(v *catalog.Vendor) catalogtypes.Vendor {
	return catalogtypes.Vendor{
		ID:                v.ID,
		Name:              v.Name,
		Industry:          v.Industry,
		Region:            v.Region,
		RiskScore:         v.RiskScore,
		Certifications:    v.Certifications,
		Services:          v.Services,
		FacilityLocations: v.FacilityLocations,
	}
}
