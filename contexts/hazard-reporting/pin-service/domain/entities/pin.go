package entities

import "time"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type PinStatus string

const (
	StatusOpen      PinStatus = "open"
	StatusEscalated PinStatus = "escalated"
	StatusResolved  PinStatus = "resolved"
)

type HazardCategory string

const (
	CategoryPothole        HazardCategory = "pothole"
	CategoryFlooding       HazardCategory = "flooding"
	CategoryStreetlight    HazardCategory = "streetlight"
	CategorySanitation     HazardCategory = "sanitation"
	CategoryInfrastructure HazardCategory = "infrastructure"
	CategoryOther          HazardCategory = "other"
)

type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

type VerificationStats struct {
	Upvotes   int
	Downvotes int
	Score     int
}

type Pin struct {
	PinID             string
	UserID            string
	Description       string
	Severity          Severity
	Category          HazardCategory
	RecommendedAgency string
	Location          Location
	PhotoURL          string
	Status            PinStatus
	AIConfidence      float64
	CreatedAt         time.Time
	LastVerifiedAt    *time.Time
	VerificationStats VerificationStats
	HashedImage       string
	Attachments       []string
}

type VoteType string

const (
	VoteValid   VoteType = "valid"
	VoteInvalid VoteType = "invalid"
)

type VerificationVote struct {
	VoteID    string
	PinID     string
	UserID    string
	Vote      VoteType
	Comment   string
	CreatedAt time.Time
}

// SignedValue maps a vote to its tally contribution.
func (v VerificationVote) SignedValue() int {
	if v.Vote == VoteInvalid {
		return -1
	}
	return 1
}
