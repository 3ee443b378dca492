package application

import (
	"context"
	"math"
	"testing"

	"belli/contexts/hazard-reporting/pin-service/domain/entities"
	"belli/internal/store/memory"
)

func newClassifier(fixtures memory.Fixtures) Service {
	store := memory.NewStore(fixtures)
	return Service{Images: store, Hasher: store}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyzeKeywordRouting(t *testing.T) {
	service := newClassifier(memory.Fixtures{})

	cases := []struct {
		description string
		category    entities.HazardCategory
		severity    entities.Severity
		agency      string
	}{
		{"Giant pothole spilling into the bike lane", entities.CategoryPothole, entities.SeverityHigh, "DOT Street Maintenance"},
		{"Water flooding the whole intersection", entities.CategoryFlooding, entities.SeverityHigh, "DEP Sewer"},
		{"Storm drain fully blocked again", entities.CategoryFlooding, entities.SeverityMedium, "DEP Sewer"},
		{"Streetlight out on the corner, urgent", entities.CategoryStreetlight, entities.SeverityHigh, "DOT Lighting"},
		{"Trash piling up for a week", entities.CategorySanitation, entities.SeverityMedium, "DSNY"},
		{"Fresh graffiti on the school wall, minor", entities.CategorySanitation, entities.SeverityLow, "DSNY"},
		{"Scaffolding leaning over the sidewalk, massive hazard", entities.CategoryInfrastructure, entities.SeverityCritical, "DOB"},
	}
	for _, tc := range cases {
		result, err := service.Analyze(context.Background(), tc.description, "")
		if err != nil {
			t.Fatalf("analyze %q failed: %v", tc.description, err)
		}
		if result.Category != tc.category {
			t.Fatalf("%q: expected category %s, got %s", tc.description, tc.category, result.Category)
		}
		if result.Severity != tc.severity {
			t.Fatalf("%q: expected severity %s, got %s", tc.description, tc.severity, result.Severity)
		}
		if result.RecommendedAgency != tc.agency {
			t.Fatalf("%q: expected agency %s, got %s", tc.description, tc.agency, result.RecommendedAgency)
		}
		if !almostEqual(result.Confidence, 0.82) {
			t.Fatalf("%q: expected confidence 0.82, got %f", tc.description, result.Confidence)
		}
	}
}

func TestAnalyzeUnmatchedFallback(t *testing.T) {
	service := newClassifier(memory.Fixtures{})

	result, err := service.Analyze(context.Background(), "Something strange happening on the block", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.Category != entities.CategoryOther {
		t.Fatalf("expected category other, got %s", result.Category)
	}
	if result.Severity != entities.SeverityMedium {
		t.Fatalf("expected severity medium, got %s", result.Severity)
	}
	if result.RecommendedAgency != "311 Triage" {
		t.Fatalf("expected 311 Triage, got %s", result.RecommendedAgency)
	}
	if !almostEqual(result.Confidence, 0.65) {
		t.Fatalf("expected confidence 0.65, got %f", result.Confidence)
	}
	if result.Summary != "Detected other with medium severity. Routing to 311 Triage." {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
}

func TestAnalyzeFraudFlags(t *testing.T) {
	service := newClassifier(memory.Fixtures{})

	short, err := service.Analyze(context.Background(), "tiny", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !short.FraudFlags.MissingHazard {
		t.Fatalf("expected missing_hazard flag for short description")
	}

	fake, err := service.Analyze(context.Background(), "This photo is AI generated content", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !fake.FraudFlags.IsLikelyFake {
		t.Fatalf("expected is_likely_fake flag")
	}
	if fake.FraudFlags.MissingHazard {
		t.Fatalf("did not expect missing_hazard flag")
	}
}

func TestAnalyzeDuplicateImagePenalty(t *testing.T) {
	fixtures := memory.DefaultFixtures()
	service := newClassifier(fixtures)

	seen := fixtures.Pins[0].PhotoURL
	result, err := service.Analyze(context.Background(), "Giant pothole spilling into the bike lane", seen)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !result.FraudFlags.DuplicateImage {
		t.Fatalf("expected duplicate_image flag for a seeded photo")
	}
	if !almostEqual(result.Confidence, 0.62) {
		t.Fatalf("expected penalized confidence 0.62, got %f", result.Confidence)
	}

	fresh, err := service.Analyze(context.Background(), "Giant pothole spilling into the bike lane", "https://example.com/new-photo.jpg")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if fresh.FraudFlags.DuplicateImage {
		t.Fatalf("did not expect duplicate_image flag for a fresh photo")
	}
	if !almostEqual(fresh.Confidence, 0.82) {
		t.Fatalf("expected confidence 0.82, got %f", fresh.Confidence)
	}
}
