package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pinerrors "belli/contexts/hazard-reporting/pin-service/domain/errors"
	pinports "belli/contexts/hazard-reporting/pin-service/ports"
	pinhttp "belli/contexts/hazard-reporting/pin-service/transport/http"
)

func writePinError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pinhttp.ErrorResponse{Code: code, Message: message})
}

func writePinDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pinerrors.ErrInvalidPinInput), errors.Is(err, pinerrors.ErrInvalidVoteInput):
		writePinError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, pinerrors.ErrPinNotFound), errors.Is(err, pinerrors.ErrUserNotFound):
		writePinError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, pinerrors.ErrDuplicateVote):
		writePinError(w, http.StatusConflict, "duplicate_vote", err.Error())
	default:
		writePinError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListPins(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pins.Handler.ListPinsHandler(r.Context())
	if err != nil {
		writePinDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPin(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pins.Handler.GetPinHandler(r.Context(), r.PathValue("pin_id"))
	if err != nil {
		writePinDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreatePin runs the classifier first, then hands its result to the pin
// engine so AI-derived severity/category/agency win over payload values.
func (s *Server) handleCreatePin(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePinError) {
		return
	}

	var req pinhttp.CreatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePinError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	analysis, err := s.classifier.Service.Analyze(r.Context(), req.Description, req.PhotoURL)
	if err != nil {
		writePinError(w, http.StatusInternalServerError, "internal_error", "hazard analysis failed")
		return
	}
	ai := &pinports.AIResult{
		Category:          analysis.Category,
		Severity:          analysis.Severity,
		RecommendedAgency: analysis.RecommendedAgency,
		Confidence:        analysis.Confidence,
	}

	resp, err := s.pins.Handler.CreatePinHandler(r.Context(), req, ai)
	if err != nil {
		writePinDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRecordVerification(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePinError) {
		return
	}

	var req pinhttp.VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePinError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pins.Handler.RecordVerificationHandler(r.Context(), req)
	if err != nil {
		writePinDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolvePin(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePinError) {
		return
	}

	var req pinhttp.ResolvePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePinError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.pins.Handler.MarkResolvedHandler(r.Context(), r.PathValue("pin_id"), req)
	if err != nil {
		writePinDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	resp, err := s.pins.Handler.DatasetHandler(r.Context())
	if err != nil {
		writePinDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
