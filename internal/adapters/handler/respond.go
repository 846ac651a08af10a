package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// writeError maps domain errors onto HTTP statuses. Validation failures
// are 400s with their message intact; everything unknown collapses to a
// generic 500 so internals never leak to the portal.
func writeError(w http.ResponseWriter, err error) {
	var validation domain.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, domain.ErrNoHospitalSelected),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrExceedsCoverage),
		errors.Is(err, domain.ErrNoInsurance):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: err.Error()})

	case errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrClaimNotFound),
		errors.Is(err, domain.ErrHospitalNotFound),
		errors.Is(err, domain.ErrDependantNotFound),
		errors.Is(err, domain.ErrPackageNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})

	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrPolicyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Message: err.Error()})

	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}
