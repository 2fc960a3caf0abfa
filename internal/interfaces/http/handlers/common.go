// Package handlers implements the HTTP endpoints of the matching and catalog
// APIs.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/turtacn/VendorIQ/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeAppError maps application errors to HTTP statuses via their codes. A
// retrieval failure deliberately surfaces as 503 "search unavailable", never
// as an empty result set.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "internal error")
	}
	writeJSON(w, errors.HTTPStatusForCode(appErr.Code), ErrorResponse{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAppError(w, errors.New(errors.ErrCodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

// parsePage extracts offset/limit query parameters with sane bounds.
func parsePage(r *http.Request) (int, int) {
	offset := 0
	limit := 50

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	return offset, limit
}
