package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	confirmerrors "belli/contexts/hazard-reporting/confirmation-service/domain/errors"
	confirmhttp "belli/contexts/hazard-reporting/confirmation-service/transport/http"
)

func writeConfirmationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, confirmhttp.ErrorResponse{Code: code, Message: message})
}

func writeConfirmationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, confirmerrors.ErrInvalidConfirmationInput):
		writeConfirmationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, confirmerrors.ErrUserNotFound):
		writeConfirmationError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeConfirmationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSubmitConfirmation(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writeConfirmationError) {
		return
	}

	var req confirmhttp.SubmitConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeConfirmationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.confirmations.Handler.SubmitConfirmationHandler(r.Context(), req)
	if err != nil {
		writeConfirmationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListConfirmations(w http.ResponseWriter, r *http.Request) {
	resp, err := s.confirmations.Handler.ListConfirmationsHandler(r.Context(), r.URL.Query().Get("pin_id"))
	if err != nil {
		writeConfirmationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
