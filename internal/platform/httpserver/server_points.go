package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pointserrors "belli/contexts/community-experience/points-engine/domain/errors"
	pointshttp "belli/contexts/community-experience/points-engine/transport/http"
)

func writePointsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, pointshttp.ErrorResponse{Code: code, Message: message})
}

func writePointsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pointserrors.ErrInvalidUserInput):
		writePointsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, pointserrors.ErrUserNotFound):
		writePointsError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writePointsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handlePointRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.points.Handler.PointRulesHandler(r.Context()))
}

func (s *Server) handleAwardPoints(w http.ResponseWriter, r *http.Request) {
	if !requireAuthorization(w, r, writePointsError) {
		return
	}

	var req pointshttp.AwardPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePointsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.points.Handler.AwardPointsHandler(r.Context(), req)
	if err != nil {
		writePointsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.points.Handler.LeaderboardHandler(r.Context())
	if err != nil {
		writePointsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req pointshttp.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePointsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.points.Handler.RegisterUserHandler(r.Context(), req)
	if err != nil {
		writePointsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.points.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writePointsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	resp, err := s.points.Handler.GetUserStatsHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writePointsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
