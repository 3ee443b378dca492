package ports

import (
	"context"
	"time"

	"belli/contexts/hazard-reporting/pin-service/domain/entities"
)

type CreatePinInput struct {
	UserID            string
	Description       string
	Severity          entities.Severity
	Category          entities.HazardCategory
	RecommendedAgency string
	Location          entities.Location
	PhotoURL          string
}

// AIResult carries classifier output into pin creation. Optional: when nil,
// payload values and safe defaults apply.
type AIResult struct {
	Category          entities.HazardCategory
	Severity          entities.Severity
	RecommendedAgency string
	Confidence        float64
}

type VerificationInput struct {
	UserID  string
	PinID   string
	Vote    entities.VoteType
	Comment string
}

// DatasetRecord is the public-safe projection of a pin. No PII, no internal
// ids beyond the pin id.
type DatasetRecord struct {
	PinID             string
	Description       string
	Severity          entities.Severity
	Category          entities.HazardCategory
	RecommendedAgency string
	Location          entities.Location
	Status            entities.PinStatus
	VerificationScore int
	CreatedAt         time.Time
}

type PinRepository interface {
	ListPins(ctx context.Context) ([]entities.Pin, error)
	GetPin(ctx context.Context, pinID string) (entities.Pin, error)
	SavePin(ctx context.Context, pin entities.Pin) error
	// UpdatePin applies the whole read-modify-write cycle under one
	// serialization unit per pin id, so concurrent tallies never overwrite
	// each other. The closure sees the current state and mutates in place.
	UpdatePin(ctx context.Context, pinID string, apply func(*entities.Pin) error) (entities.Pin, error)
}

type VoteLedger interface {
	AppendVote(ctx context.Context, vote entities.VerificationVote) error
	HasVote(ctx context.Context, pinID string, userID string) (bool, error)
	ListVotesForPin(ctx context.Context, pinID string) ([]entities.VerificationVote, error)
}

// PointsAwarder bridges into the points engine. UserExists runs before any
// pin mutation so a failed award precondition never leaves a partial write.
type PointsAwarder interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	AwardPoints(ctx context.Context, userID string, action string) error
}

type Hasher interface {
	HashString(value string) string
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
