package ports

import (
	"context"

	"belli/contexts/hazard-reporting/pin-service/domain/entities"
)

type FraudFlags struct {
	DuplicateImage bool
	IsLikelyFake   bool
	MissingHazard  bool
}

type AnalysisResult struct {
	Category          entities.HazardCategory
	Severity          entities.Severity
	RecommendedAgency string
	Confidence        float64
	Summary           string
	FraudFlags        FraudFlags
}

// ImageIndex is the read-only duplicate-image lookup against existing pins.
type ImageIndex interface {
	HasImageHash(ctx context.Context, hash string) (bool, error)
}

type Hasher interface {
	HashString(value string) string
}
