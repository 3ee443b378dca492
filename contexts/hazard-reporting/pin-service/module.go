// Package pinservice implements the pin lifecycle and verification engine
// inside the hazard-reporting context.
//
// The module owns pin creation, community verification tallies with
// one-vote-per-user enforcement, status transitions, and the public dataset
// projection. Business rules live in application/domain layers; storage,
// hashing, ids, and the points bridge sit behind ports.
package pinservice

import (
	"log/slog"

	httpadapter "belli/contexts/hazard-reporting/pin-service/adapters/http"
	"belli/contexts/hazard-reporting/pin-service/application"
	"belli/contexts/hazard-reporting/pin-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Pins   ports.PinRepository
	Votes  ports.VoteLedger
	Awards ports.PointsAwarder
	Hasher ports.Hasher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Pins:   deps.Pins,
		Votes:  deps.Votes,
		Awards: deps.Awards,
		Hasher: deps.Hasher,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}
