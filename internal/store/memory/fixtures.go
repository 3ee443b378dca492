package memory

import (
	"fmt"
	"time"

	pointsentities "belli/contexts/community-experience/points-engine/domain/entities"
	pinentities "belli/contexts/hazard-reporting/pin-service/domain/entities"
	"belli/internal/shared/contenthash"
)

var fixtureBase = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// DefaultFixtures is the deterministic demo seed: three users and three pins.
// An empty Fixtures value works equally well for fresh deployments and tests.
func DefaultFixtures() Fixtures {
	hasher := contenthash.SHA256{}

	users := []pointsentities.User{
		{
			UserID:           "guardian-1",
			Name:             "Avery Ranger",
			Email:            "avery@belli.city",
			Avatar:           "https://placehold.co/80x80/1d4ed8/fff?text=AR",
			Points:           240,
			XP:               240,
			TrustScore:       82,
			Level:            "Guardian",
			Badges:           []string{"Rapid Responder", "Data Steward"},
			CreatedPins:      4,
			VerifiedPins:     11,
			SubmittedReports: 3,
			ResolvedPins:     2,
			CreatedAt:        fixtureBase.AddDate(0, -3, 0),
		},
		{
			UserID:           "scout-9",
			Name:             "Imani Scout",
			Email:            "imani@belli.city",
			Avatar:           "https://placehold.co/80x80/059669/fff?text=IS",
			Points:           160,
			XP:               160,
			TrustScore:       74,
			Level:            "Inspector",
			Badges:           []string{"Top Verifier"},
			CreatedPins:      2,
			VerifiedPins:     18,
			SubmittedReports: 1,
			ResolvedPins:     1,
			CreatedAt:        fixtureBase.AddDate(0, -2, 0),
		},
		{
			UserID:           "scout-12",
			Name:             "Leo Scout",
			Email:            "leo@belli.city",
			Avatar:           "https://placehold.co/80x80/f97316/fff?text=LS",
			Points:           120,
			XP:               120,
			TrustScore:       69,
			Level:            "Ranger",
			Badges:           []string{"Neighborhood Watch"},
			CreatedPins:      3,
			VerifiedPins:     9,
			SubmittedReports: 0,
			ResolvedPins:     0,
			CreatedAt:        fixtureBase.AddDate(0, -1, 0),
		},
	}

	seeds := []struct {
		Description string
		Severity    pinentities.Severity
		Category    pinentities.HazardCategory
		Agency      string
		Location    pinentities.Location
		PhotoURL    string
	}{
		{
			Description: "Giant pothole spilling into bike lane on Grand St.",
			Severity:    pinentities.SeverityHigh,
			Category:    pinentities.CategoryPothole,
			Agency:      "DOT Street Maintenance",
			Location:    pinentities.Location{Lat: 40.718, Lng: -73.993, Address: "Grand St & Chrystie"},
			PhotoURL:    "https://placehold.co/400x240/bbdefb/1d4ed8?text=Pothole",
		},
		{
			Description: "Storm drain clogged, entire curb flooding when it rains.",
			Severity:    pinentities.SeverityMedium,
			Category:    pinentities.CategoryFlooding,
			Agency:      "DEP Sewer",
			Location:    pinentities.Location{Lat: 40.705, Lng: -73.94, Address: "Jackson Ave"},
			PhotoURL:    "https://placehold.co/400x240/c7d2fe/3730a3?text=Flood",
		},
		{
			Description: "Broken streetlight outside PS 245, pitch dark at night.",
			Severity:    pinentities.SeverityHigh,
			Category:    pinentities.CategoryStreetlight,
			Agency:      "DOT Lighting",
			Location:    pinentities.Location{Lat: 40.67, Lng: -73.95, Address: "PS 245"},
			PhotoURL:    "https://placehold.co/400x240/fde68a/78350f?text=Light",
		},
	}

	pins := make([]pinentities.Pin, 0, len(seeds))
	for index, seed := range seeds {
		pins = append(pins, pinentities.Pin{
			PinID:             fmt.Sprintf("pin-%d", index+1),
			UserID:            "guardian-1",
			Description:       seed.Description,
			Severity:          seed.Severity,
			Category:          seed.Category,
			RecommendedAgency: seed.Agency,
			Location:          seed.Location,
			PhotoURL:          seed.PhotoURL,
			Status:            pinentities.StatusOpen,
			AIConfidence:      0.78,
			CreatedAt:         fixtureBase.AddDate(0, 0, -index),
			VerificationStats: pinentities.VerificationStats{
				Upvotes:   3 + index,
				Downvotes: index,
				Score:     3,
			},
			HashedImage: hasher.HashString(seed.PhotoURL),
			Attachments: []string{},
		})
	}

	return Fixtures{Users: users, Pins: pins}
}
