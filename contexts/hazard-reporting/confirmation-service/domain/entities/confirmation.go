package entities

import "time"

type ReportType string

const (
	ReportTypeOfficial     ReportType = "official-report"
	ReportTypeConfirmation ReportType = "confirmation"
)

// ReportConfirmation is an immutable record of a follow-up document tying a
// pin to an agency response or a community confirmation.
type ReportConfirmation struct {
	ConfirmationID string
	PinID          string
	UserID         string
	FileURL        string
	ExtractedText  string
	IsValid        bool
	ReportType     ReportType
	CreatedAt      time.Time
}
