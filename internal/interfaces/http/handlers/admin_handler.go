package handlers

import (
	"net/http"

	"github.com/turtacn/VendorIQ/internal/application/ingest"
)

// AdminHandler serves operational endpoints.
type AdminHandler struct {
	service *ingest.Service
}

func NewAdminHandler(service *ingest.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// EnsureSchema handles POST /api/v1/admin/schema. It is idempotent and safe
// to call on every deploy.
func (h *AdminHandler) EnsureSchema(w http.ResponseWriter, r *http.Request) {
	if err := h.service.EnsureSchema(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "schema ensured"})
}
