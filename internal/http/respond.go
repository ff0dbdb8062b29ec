package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/cms"
	"github.com/sony/gobreaker/v2"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCMSError converts upstream failures to HTTP status codes. The CMS's
// own 4xx answers keep their meaning; everything else is the storefront's
// upstream misbehaving.
func handleCMSError(w http.ResponseWriter, err error) {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "catalog backend is unavailable")
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		respondError(w, http.StatusGatewayTimeout, "timeout", "catalog backend timed out")
		return
	}

	var apiErr *cms.APIError
	if !errors.As(err, &apiErr) {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	var httpStatus int
	var code string

	switch apiErr.Status {
	case http.StatusBadRequest:
		httpStatus = http.StatusBadRequest
		code = "invalid_request"
	case http.StatusUnauthorized:
		httpStatus = http.StatusUnauthorized
		code = "unauthenticated"
	case http.StatusForbidden:
		httpStatus = http.StatusForbidden
		code = "permission_denied"
	case http.StatusNotFound:
		httpStatus = http.StatusNotFound
		code = "not_found"
	case http.StatusTooManyRequests:
		httpStatus = http.StatusTooManyRequests
		code = "rate_limit_exceeded"
	default:
		httpStatus = http.StatusBadGateway
		code = "upstream_error"
	}

	respondError(w, httpStatus, code, apiErr.Message)
}
