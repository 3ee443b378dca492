// Package classifierservice implements the heuristic hazard classifier inside
// the hazard-reporting context. It maps free-text descriptions and optional
// photo references to category, severity, routed agency, confidence, and
// fraud flags using ordered keyword tables.
package classifierservice

import (
	"log/slog"

	httpadapter "belli/contexts/hazard-reporting/classifier-service/adapters/http"
	"belli/contexts/hazard-reporting/classifier-service/application"
	"belli/contexts/hazard-reporting/classifier-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Images ports.ImageIndex
	Hasher ports.Hasher
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Images: deps.Images,
		Hasher: deps.Hasher,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}
