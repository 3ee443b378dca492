// Package confirmationservice records agency report confirmations against
// pins inside the hazard-reporting context.
package confirmationservice

import (
	"log/slog"

	httpadapter "belli/contexts/hazard-reporting/confirmation-service/adapters/http"
	"belli/contexts/hazard-reporting/confirmation-service/application"
	"belli/contexts/hazard-reporting/confirmation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Confirmations ports.ConfirmationRepository
	Awards        ports.PointsAwarder
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Confirmations: deps.Confirmations,
		Awards:        deps.Awards,
		Clock:         deps.Clock,
		IDGen:         deps.IDGen,
		Logger:        deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}
