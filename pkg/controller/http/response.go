package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cybermatters/themis/pkg/usecase"
	"github.com/cybermatters/themis/pkg/utils/errutil"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondData wraps a payload in the standard success envelope
func respondData(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// respondError maps use case sentinels to status codes, defaulting to 500
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered),
		errors.Is(err, usecase.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrTenantNotFound),
		errors.Is(err, usecase.ErrRiskNotFound),
		errors.Is(err, usecase.ErrFrameworkNotFound):
		status = http.StatusNotFound
	}

	errutil.HandleHTTP(ctx, w, err, status)
}

// decodeBody parses a JSON request body into dst
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
