package application

import (
	"context"
	"log/slog"
	"strings"

	"belli/contexts/hazard-reporting/confirmation-service/domain/entities"
	domainerrors "belli/contexts/hazard-reporting/confirmation-service/domain/errors"
	"belli/contexts/hazard-reporting/confirmation-service/ports"
)

const (
	actionSubmitReport       = "submit_report"
	actionUploadConfirmation = "upload_confirmation"
)

var agencyMarkers = []string{"311", "case#", "agency"}

// Service records report confirmations. Each submission triggers exactly one
// points award: submit_report for official reports, upload_confirmation
// otherwise.
type Service struct {
	Confirmations ports.ConfirmationRepository
	Awards        ports.PointsAwarder
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

// containsAgencyMarker is the validity heuristic over extracted report text.
func containsAgencyMarker(text string) bool {
	normalized := strings.ToLower(text)
	if normalized == "" {
		return false
	}
	for _, marker := range agencyMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func (s Service) SubmitConfirmation(ctx context.Context, input ports.ConfirmationInput) (entities.ReportConfirmation, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.PinID = strings.TrimSpace(input.PinID)
	if input.UserID == "" || input.PinID == "" ||
		(input.ReportType != entities.ReportTypeOfficial && input.ReportType != entities.ReportTypeConfirmation) {
		return entities.ReportConfirmation{}, domainerrors.ErrInvalidConfirmationInput
	}

	exists, err := s.Awards.UserExists(ctx, input.UserID)
	if err != nil {
		return entities.ReportConfirmation{}, err
	}
	if !exists {
		return entities.ReportConfirmation{}, domainerrors.ErrUserNotFound
	}

	confirmationID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.ReportConfirmation{}, err
	}
	confirmation := entities.ReportConfirmation{
		ConfirmationID: confirmationID,
		PinID:          input.PinID,
		UserID:         input.UserID,
		FileURL:        strings.TrimSpace(input.FileURL),
		ExtractedText:  input.ReportText,
		IsValid:        containsAgencyMarker(input.ReportText),
		ReportType:     input.ReportType,
		CreatedAt:      s.Clock.Now().UTC(),
	}

	if err := s.Confirmations.AppendConfirmation(ctx, confirmation); err != nil {
		return entities.ReportConfirmation{}, err
	}

	action := actionUploadConfirmation
	if input.ReportType == entities.ReportTypeOfficial {
		action = actionSubmitReport
	}
	if err := s.Awards.AwardPoints(ctx, input.UserID, action); err != nil {
		return entities.ReportConfirmation{}, err
	}

	if s.Logger != nil {
		s.Logger.Info("confirmation submitted",
			"event", "confirmation_submitted",
			"module", "hazard-reporting/confirmation-service",
			"layer", "application",
			"confirmation_id", confirmation.ConfirmationID,
			"pin_id", confirmation.PinID,
			"user_id", confirmation.UserID,
			"report_type", string(confirmation.ReportType),
			"is_valid", confirmation.IsValid,
		)
	}
	return confirmation, nil
}

// ListConfirmations returns all confirmations, or only those for pinID when
// it is non-empty.
func (s Service) ListConfirmations(ctx context.Context, pinID string) ([]entities.ReportConfirmation, error) {
	return s.Confirmations.ListConfirmations(ctx, strings.TrimSpace(pinID))
}
