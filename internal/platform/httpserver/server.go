package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	pointsengine "belli/contexts/community-experience/points-engine"
	classifierservice "belli/contexts/hazard-reporting/classifier-service"
	confirmationservice "belli/contexts/hazard-reporting/confirmation-service"
	pinservice "belli/contexts/hazard-reporting/pin-service"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "belli/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	pins          pinservice.Module
	classifier    classifierservice.Module
	confirmations confirmationservice.Module
	points        pointsengine.Module
}

func New(
	pins pinservice.Module,
	classifier classifierservice.Module,
	confirmations confirmationservice.Module,
	points pointsengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		pins:          pins,
		classifier:    classifier,
		confirmations: confirmations,
		points:        points,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/v1/pins", s.handleListPins)
	s.mux.HandleFunc("POST /api/v1/pins", s.handleCreatePin)
	s.mux.HandleFunc("GET /api/v1/pins/{pin_id}", s.handleGetPin)
	s.mux.HandleFunc("POST /api/v1/pins/{pin_id}/resolve", s.handleResolvePin)
	s.mux.HandleFunc("POST /api/v1/verifications", s.handleRecordVerification)

	s.mux.HandleFunc("POST /api/v1/ai/analyze", s.handleAnalyze)

	s.mux.HandleFunc("POST /api/v1/confirmations", s.handleSubmitConfirmation)
	s.mux.HandleFunc("GET /api/v1/confirmations", s.handleListConfirmations)

	s.mux.HandleFunc("GET /api/v1/points/rules", s.handlePointRules)
	s.mux.HandleFunc("POST /api/v1/points/award", s.handleAwardPoints)
	s.mux.HandleFunc("GET /api/v1/leaderboard", s.handleLeaderboard)

	s.mux.HandleFunc("POST /api/v1/users", s.handleRegisterUser)
	s.mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	s.mux.HandleFunc("GET /api/v1/users/{user_id}/stats", s.handleUserStats)

	s.mux.HandleFunc("GET /api/v1/dataset", s.handleDataset)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// requireAuthorization checks bearer-token presence on mutating routes. Token
// validation itself belongs to the identity provider in front of this core.
func requireAuthorization(w http.ResponseWriter, r *http.Request, write func(http.ResponseWriter, int, string, string)) bool {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		write(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return false
	}
	return true
}
