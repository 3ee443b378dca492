package ports

import (
	"context"
	"time"

	"belli/contexts/hazard-reporting/confirmation-service/domain/entities"
)

type ConfirmationInput struct {
	UserID     string
	PinID      string
	FileURL    string
	ReportText string
	ReportType entities.ReportType
}

type ConfirmationRepository interface {
	AppendConfirmation(ctx context.Context, confirmation entities.ReportConfirmation) error
	ListConfirmations(ctx context.Context, pinID string) ([]entities.ReportConfirmation, error)
}

type PointsAwarder interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	AwardPoints(ctx context.Context, userID string, action string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
