package application

import (
	"context"
	"log/slog"
	"strings"

	"belli/contexts/hazard-reporting/pin-service/domain/entities"
	domainerrors "belli/contexts/hazard-reporting/pin-service/domain/errors"
	"belli/contexts/hazard-reporting/pin-service/ports"
)

const (
	actionCreatePin    = "create_pin"
	actionVerifyPin    = "verify_pin"
	actionMarkResolved = "mark_resolved"
)

// Service orchestrates the pin lifecycle: creation, community verification
// votes, and status transitions. Every qualifying action triggers exactly one
// points award through the Awards port.
type Service struct {
	Pins   ports.PinRepository
	Votes  ports.VoteLedger
	Awards ports.PointsAwarder
	Hasher ports.Hasher
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (s Service) CreatePin(ctx context.Context, input ports.CreatePinInput, ai *ports.AIResult) (entities.Pin, error) {
	logger := resolveLogger(s.Logger)
	input.UserID = strings.TrimSpace(input.UserID)
	input.Description = strings.TrimSpace(input.Description)
	if input.UserID == "" || input.Description == "" {
		return entities.Pin{}, domainerrors.ErrInvalidPinInput
	}
	if strings.TrimSpace(input.Location.Address) == "" ||
		input.Location.Lat < -90 || input.Location.Lat > 90 ||
		input.Location.Lng < -180 || input.Location.Lng > 180 {
		return entities.Pin{}, domainerrors.ErrInvalidPinInput
	}

	exists, err := s.Awards.UserExists(ctx, input.UserID)
	if err != nil {
		return entities.Pin{}, err
	}
	if !exists {
		return entities.Pin{}, domainerrors.ErrUserNotFound
	}

	severity := input.Severity
	category := input.Category
	agency := strings.TrimSpace(input.RecommendedAgency)
	confidence := 0.6
	if ai != nil {
		severity = ai.Severity
		category = ai.Category
		agency = ai.RecommendedAgency
		confidence = ai.Confidence
	}
	if category == "" {
		category = entities.CategoryOther
	}
	if agency == "" {
		agency = "311"
	}

	pinID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Pin{}, err
	}

	pin := entities.Pin{
		PinID:             pinID,
		UserID:            input.UserID,
		Description:       input.Description,
		Severity:          severity,
		Category:          category,
		RecommendedAgency: agency,
		Location:          input.Location,
		PhotoURL:          strings.TrimSpace(input.PhotoURL),
		Status:            entities.StatusOpen,
		AIConfidence:      confidence,
		CreatedAt:         s.Clock.Now().UTC(),
		VerificationStats: entities.VerificationStats{},
		Attachments:       []string{},
	}
	if pin.PhotoURL != "" {
		pin.HashedImage = s.Hasher.HashString(pin.PhotoURL)
	}

	if err := s.Pins.SavePin(ctx, pin); err != nil {
		return entities.Pin{}, err
	}
	if err := s.Awards.AwardPoints(ctx, pin.UserID, actionCreatePin); err != nil {
		return entities.Pin{}, err
	}

	logger.Info("pin created",
		"event", "pin_created",
		"module", "hazard-reporting/pin-service",
		"layer", "application",
		"pin_id", pin.PinID,
		"user_id", pin.UserID,
		"category", string(pin.Category),
		"severity", string(pin.Severity),
	)
	return pin, nil
}

// RecordVerification tallies one vote per (pin, user). A second vote from the
// same user is rejected before any tally or award mutation.
func (s Service) RecordVerification(ctx context.Context, input ports.VerificationInput) (entities.Pin, error) {
	logger := resolveLogger(s.Logger)
	input.UserID = strings.TrimSpace(input.UserID)
	input.PinID = strings.TrimSpace(input.PinID)
	if input.UserID == "" || input.PinID == "" ||
		(input.Vote != entities.VoteValid && input.Vote != entities.VoteInvalid) {
		return entities.Pin{}, domainerrors.ErrInvalidVoteInput
	}

	if _, err := s.Pins.GetPin(ctx, input.PinID); err != nil {
		return entities.Pin{}, err
	}
	exists, err := s.Awards.UserExists(ctx, input.UserID)
	if err != nil {
		return entities.Pin{}, err
	}
	if !exists {
		return entities.Pin{}, domainerrors.ErrUserNotFound
	}
	voted, err := s.Votes.HasVote(ctx, input.PinID, input.UserID)
	if err != nil {
		return entities.Pin{}, err
	}
	if voted {
		logger.Warn("duplicate verification rejected",
			"event", "pin_verification_duplicate",
			"module", "hazard-reporting/pin-service",
			"layer", "application",
			"pin_id", input.PinID,
			"user_id", input.UserID,
		)
		return entities.Pin{}, domainerrors.ErrDuplicateVote
	}

	voteID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Pin{}, err
	}
	now := s.Clock.Now().UTC()
	vote := entities.VerificationVote{
		VoteID:    voteID,
		PinID:     input.PinID,
		UserID:    input.UserID,
		Vote:      input.Vote,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: now,
	}

	// The ledger append is the authoritative uniqueness gate; only a vote
	// that landed may move the tally.
	if err := s.Votes.AppendVote(ctx, vote); err != nil {
		return entities.Pin{}, err
	}
	pin, err := s.Pins.UpdatePin(ctx, input.PinID, func(pin *entities.Pin) error {
		if vote.SignedValue() > 0 {
			pin.VerificationStats.Upvotes++
		} else {
			pin.VerificationStats.Downvotes++
		}
		pin.VerificationStats.Score = pin.VerificationStats.Upvotes - pin.VerificationStats.Downvotes
		pin.LastVerifiedAt = &now
		return nil
	})
	if err != nil {
		return entities.Pin{}, err
	}
	if err := s.Awards.AwardPoints(ctx, input.UserID, actionVerifyPin); err != nil {
		return entities.Pin{}, err
	}

	logger.Info("pin verification recorded",
		"event", "pin_verification_recorded",
		"module", "hazard-reporting/pin-service",
		"layer", "application",
		"pin_id", pin.PinID,
		"user_id", input.UserID,
		"vote", string(input.Vote),
		"score", pin.VerificationStats.Score,
	)
	return pin, nil
}

// MarkStatus is the status transition seam. Only open -> resolved is driven
// by behavior today; escalated stays reachable for future policy.
func (s Service) MarkStatus(ctx context.Context, pinID string, status entities.PinStatus) (entities.Pin, error) {
	return s.Pins.UpdatePin(ctx, strings.TrimSpace(pinID), func(pin *entities.Pin) error {
		pin.Status = status
		return nil
	})
}

func (s Service) MarkResolved(ctx context.Context, pinID string, userID string) (entities.Pin, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.Pin{}, domainerrors.ErrInvalidPinInput
	}
	exists, err := s.Awards.UserExists(ctx, userID)
	if err != nil {
		return entities.Pin{}, err
	}
	if !exists {
		return entities.Pin{}, domainerrors.ErrUserNotFound
	}

	pin, err := s.MarkStatus(ctx, pinID, entities.StatusResolved)
	if err != nil {
		return entities.Pin{}, err
	}
	if err := s.Awards.AwardPoints(ctx, userID, actionMarkResolved); err != nil {
		return entities.Pin{}, err
	}

	resolveLogger(s.Logger).Info("pin resolved",
		"event", "pin_resolved",
		"module", "hazard-reporting/pin-service",
		"layer", "application",
		"pin_id", pin.PinID,
		"user_id", userID,
	)
	return pin, nil
}

func (s Service) ListPins(ctx context.Context) ([]entities.Pin, error) {
	return s.Pins.ListPins(ctx)
}

func (s Service) GetPin(ctx context.Context, pinID string) (entities.Pin, error) {
	return s.Pins.GetPin(ctx, strings.TrimSpace(pinID))
}

func (s Service) ListVotes(ctx context.Context, pinID string) ([]entities.VerificationVote, error) {
	return s.Votes.ListVotesForPin(ctx, strings.TrimSpace(pinID))
}

// Dataset maps every pin to its public-safe record.
func (s Service) Dataset(ctx context.Context) ([]ports.DatasetRecord, error) {
	pins, err := s.Pins.ListPins(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]ports.DatasetRecord, 0, len(pins))
	for _, pin := range pins {
		records = append(records, ports.DatasetRecord{
			PinID:             pin.PinID,
			Description:       pin.Description,
			Severity:          pin.Severity,
			Category:          pin.Category,
			RecommendedAgency: pin.RecommendedAgency,
			Location:          pin.Location,
			Status:            pin.Status,
			VerificationScore: pin.VerificationStats.Score,
			CreatedAt:         pin.CreatedAt,
		})
	}
	return records, nil
}
