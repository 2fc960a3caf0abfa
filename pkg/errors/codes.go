package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeDatabaseError      ErrorCode = "COMMON_009"
	ErrCodeExternalService    ErrorCode = "COMMON_010"
)

// Matching module error codes.
const (
	// ErrCodeRetrievalFailed marks a failed candidate search against the graph
	// store. It is deliberately distinct from ErrCodeNotFound: zero candidates
	// is a successful (empty) result, a retrieval failure is not.
	ErrCodeRetrievalFailed ErrorCode = "MATCH_001"
	ErrCodeCriteriaInvalid ErrorCode = "MATCH_002"
)

// Extraction module error codes. These never surface to API callers (the
// extractor falls back to the deterministic strategy); they exist so that the
// fallback path can be logged and counted with a stable classification.
const (
	ErrCodeExtractorUnavailable ErrorCode = "EXTRACT_001"
	ErrCodeExtractorBadResponse ErrorCode = "EXTRACT_002"
)

// Catalog module error codes.
const (
	ErrCodeVendorNotFound ErrorCode = "CATALOG_001"
	ErrCodeIngestFailed   ErrorCode = "CATALOG_002"
	ErrCodeSchemaFailed   ErrorCode = "CATALOG_003"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeRetrievalFailed: http.StatusServiceUnavailable,
	ErrCodeCriteriaInvalid: http.StatusUnprocessableEntity,

	ErrCodeExtractorUnavailable: http.StatusServiceUnavailable,
	ErrCodeExtractorBadResponse: http.StatusBadGateway,

	ErrCodeVendorNotFound: http.StatusNotFound,
	ErrCodeIngestFailed:   http.StatusInternalServerError,
	ErrCodeSchemaFailed:   http.StatusInternalServerError,
}

// errorCodeMessage maps ErrorCodes to default messages.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeExternalService:    "external service error",

	ErrCodeRetrievalFailed: "vendor search unavailable",
	ErrCodeCriteriaInvalid: "invalid match criteria",

	ErrCodeExtractorUnavailable: "extraction backend unavailable",
	ErrCodeExtractorBadResponse: "extraction backend returned an invalid response",

	ErrCodeVendorNotFound: "vendor not found",
	ErrCodeIngestFailed:   "catalog ingestion failed",
	ErrCodeSchemaFailed:   "schema bootstrap failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError reports whether the ErrorCode maps to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the ErrorCode maps to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode, e.g. "MATCH".
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
