package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"belli/contexts/hazard-reporting/classifier-service/ports"
	"belli/contexts/hazard-reporting/pin-service/domain/entities"
)

// Ordered: earlier entries win when multiple keywords appear.
var categoryMappings = []struct {
	keyword  string
	category entities.HazardCategory
	agency   string
}{
	{"pothole", entities.CategoryPothole, "DOT Street Maintenance"},
	{"flood", entities.CategoryFlooding, "DEP Sewer"},
	{"drain", entities.CategoryFlooding, "DEP Sewer"},
	{"streetlight", entities.CategoryStreetlight, "DOT Lighting"},
	{"trash", entities.CategorySanitation, "DSNY"},
	{"graffiti", entities.CategorySanitation, "DSNY"},
	{"scaffolding", entities.CategoryInfrastructure, "DOB"},
}

var severityHeuristics = []struct {
	keyword  string
	severity entities.Severity
}{
	{"massive", entities.SeverityCritical},
	{"giant", entities.SeverityHigh},
	{"urgent", entities.SeverityHigh},
	{"minor", entities.SeverityLow},
}

const (
	fallbackAgency        = "311 Triage"
	matchedConfidence     = 0.82
	unmatchedConfidence   = 0.65
	duplicateImagePenalty = 0.2
	minDescriptionLength  = 12
)

// Service is the deterministic hazard classifier. Analyze is side-effect-free
// except for the read-only duplicate-image lookup.
type Service struct {
	Images ports.ImageIndex
	Hasher ports.Hasher
	Logger *slog.Logger
}

func (s Service) Analyze(ctx context.Context, description string, photoURL string) (ports.AnalysisResult, error) {
	normalized := strings.ToLower(description)

	category := entities.CategoryOther
	agency := fallbackAgency
	matched := false
	for _, mapping := range categoryMappings {
		if strings.Contains(normalized, mapping.keyword) {
			category = mapping.category
			agency = mapping.agency
			matched = true
			break
		}
	}

	severity := entities.SeverityMedium
	if strings.Contains(normalized, "flood") {
		severity = entities.SeverityHigh
	}
	for _, heuristic := range severityHeuristics {
		if strings.Contains(normalized, heuristic.keyword) {
			severity = heuristic.severity
			break
		}
	}

	confidence := unmatchedConfidence
	if matched {
		confidence = matchedConfidence
	}

	duplicate := false
	if strings.TrimSpace(photoURL) != "" {
		hash := s.Hasher.HashString(strings.TrimSpace(photoURL))
		found, err := s.Images.HasImageHash(ctx, hash)
		if err != nil {
			return ports.AnalysisResult{}, err
		}
		duplicate = found
	}
	if duplicate {
		// Penalty may push confidence below zero; the value is deliberately
		// left unclamped.
		confidence -= duplicateImagePenalty
	}

	result := ports.AnalysisResult{
		Category:          category,
		Severity:          severity,
		RecommendedAgency: agency,
		Confidence:        confidence,
		Summary:           fmt.Sprintf("Detected %s with %s severity. Routing to %s.", category, severity, agency),
		FraudFlags: ports.FraudFlags{
			DuplicateImage: duplicate,
			IsLikelyFake:   strings.Contains(normalized, "ai generated"),
			MissingHazard:  len(normalized) < minDescriptionLength,
		},
	}

	if s.Logger != nil {
		s.Logger.Info("hazard analyzed",
			"event", "hazard_analyzed",
			"module", "hazard-reporting/classifier-service",
			"layer", "application",
			"category", string(result.Category),
			"severity", string(result.Severity),
			"confidence", result.Confidence,
			"duplicate_image", duplicate,
		)
	}
	return result, nil
}
