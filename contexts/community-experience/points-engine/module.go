// Package pointsengine implements the points/reputation engine inside the
// community-experience context.
//
// The module owns point awards, xp/level derivation, trust-score bounds,
// badge recomputation, the user registry, and the leaderboard projection.
// Other engines reach it only through their own award ports, bridged in the
// composition root.
package pointsengine

import (
	"log/slog"

	httpadapter "belli/contexts/community-experience/points-engine/adapters/http"
	"belli/contexts/community-experience/points-engine/application"
	"belli/contexts/community-experience/points-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
}

type Dependencies struct {
	Users  ports.UserRepository
	Cache  ports.LeaderboardCache
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:  deps.Users,
		Cache:  deps.Cache,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}
