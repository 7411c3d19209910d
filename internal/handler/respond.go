// Package handler exposes the application over a JSON HTTP API. Handlers
// decode and validate requests, call services, and translate domain errors
// into status codes; no business rules live here.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/middleware"
)

var validate = validator.New()

// respondJSON writes a JSON response with the given status code. A nil
// payload writes only the status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError translates a domain error into a JSON error response and logs
// it through the request-scoped logger.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := statusFromCode(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	respondJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// statusFromCode maps domain error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNPROCESSABLE:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON request body into dst and runs struct validation.
// Both failure modes are parameter problems, so both map to 422.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Unprocessable("", "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return domain.Unprocessable("", "missing or invalid request parameters")
	}
	return nil
}

// principal extracts the authenticated caller. Role middleware runs before
// every handler that calls this, so a missing principal is a wiring bug.
func principal(r *http.Request) (domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(r.Context())
	if !ok {
		return domain.Principal{}, domain.Unauthorized("", "Authentication required")
	}
	return p, nil
}
