package ports

import (
	"context"
	"time"

	"belli/contexts/community-experience/points-engine/domain/entities"
)

type RegisterUserInput struct {
	Name   string
	Email  string
	Avatar string
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]entities.User, error)
	GetUser(ctx context.Context, userID string) (entities.User, error)
	// UpdateUser applies the whole read-modify-write cycle under one
	// serialization unit per user id, so concurrent awards never overwrite
	// each other. The closure sees the current state and mutates in place.
	UpdateUser(ctx context.Context, userID string, apply func(*entities.User) error) (entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (entities.User, error)
}

// LeaderboardCache is an optional read cache in front of the leaderboard
// projection. A nil cache disables caching entirely.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]entities.LeaderboardEntry, bool, error)
	Put(ctx context.Context, entries []entities.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
