package entities

import "time"

const (
	ActionCreatePin          = "create_pin"
	ActionVerifyPin          = "verify_pin"
	ActionSubmitReport       = "submit_report"
	ActionUploadConfirmation = "upload_confirmation"
	ActionMarkResolved       = "mark_resolved"
)

// User carries identity plus the full reputation state. Points and XP are
// always incremented together; level and badges are derived, never stored
// ahead of their inputs.
type User struct {
	UserID     string
	Name       string
	Email      string
	Avatar     string
	Points     int
	XP         int
	TrustScore float64
	Level      string
	Badges     []string

	CreatedPins      int
	VerifiedPins     int
	SubmittedReports int
	ResolvedPins     int

	CreatedAt time.Time
}

type PointsAward struct {
	Action      string
	Amount      int
	TotalPoints int
	Level       string
}

type LeaderboardEntry struct {
	UserID string
	Name   string
	Points int
	Level  string
	Badges []string
}
