package httpserver

import (
	"encoding/json"
	"net/http"

	classifierhttp "belli/contexts/hazard-reporting/classifier-service/transport/http"
)

func writeClassifierError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, classifierhttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req classifierhttp.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClassifierError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if req.Description == "" {
		writeClassifierError(w, http.StatusBadRequest, "invalid_request", "description is required")
		return
	}

	resp, err := s.classifier.Handler.AnalyzeHandler(r.Context(), req)
	if err != nil {
		writeClassifierError(w, http.StatusInternalServerError, "internal_error", "hazard analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
