package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"belli/contexts/hazard-reporting/pin-service/domain/entities"
	domainerrors "belli/contexts/hazard-reporting/pin-service/domain/errors"
	"belli/contexts/hazard-reporting/pin-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) ListPins(ctx context.Context) ([]entities.Pin, error) {
	var rows []pinModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("pin_repo_list_pins_failed", err)
	}
	pins := make([]entities.Pin, 0, len(rows))
	for _, row := range rows {
		pins = append(pins, row.toEntity())
	}
	return pins, nil
}

func (r *Repository) GetPin(ctx context.Context, pinID string) (entities.Pin, error) {
	var row pinModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pinID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Pin{}, domainerrors.ErrPinNotFound
		}
		return entities.Pin{}, r.logError("pin_repo_get_pin_failed", err, "pin_id", strings.TrimSpace(pinID))
	}
	return row.toEntity(), nil
}

func (r *Repository) SavePin(ctx context.Context, pin entities.Pin) error {
	row := pinModelFromEntity(pin)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"description":        row.Description,
			"severity":           row.Severity,
			"category":           row.Category,
			"recommended_agency": row.RecommendedAgency,
			"status":             row.Status,
			"photo_url":          row.PhotoURL,
			"hashed_image":       row.HashedImage,
			"upvotes":            row.Upvotes,
			"downvotes":          row.Downvotes,
			"score":              row.Score,
			"last_verified_at":   row.LastVerifiedAt,
			"attachments":        row.Attachments,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("pin_repo_save_pin_failed", create.Error, "pin_id", row.ID)
	}
	return nil
}

// UpdatePin serializes the read-modify-write cycle per pin row with a
// SELECT ... FOR UPDATE lock, so concurrent tallies never lose updates.
func (r *Repository) UpdatePin(ctx context.Context, pinID string, apply func(*entities.Pin) error) (entities.Pin, error) {
	var updated entities.Pin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row pinModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", strings.TrimSpace(pinID)).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrPinNotFound
			}
			return err
		}
		pin := row.toEntity()
		if err := apply(&pin); err != nil {
			return err
		}
		next := pinModelFromEntity(pin)
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = pin
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPinNotFound) {
			return entities.Pin{}, err
		}
		return entities.Pin{}, r.logError("pin_repo_update_pin_failed", err, "pin_id", strings.TrimSpace(pinID))
	}
	return updated, nil
}

func (r *Repository) AppendVote(ctx context.Context, vote entities.VerificationVote) error {
	row := voteModelFromEntity(vote)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateVote
		}
		return r.logError("pin_repo_append_vote_failed", err,
			"pin_id", row.PinID,
			"user_id", row.UserID,
		)
	}
	return nil
}

func (r *Repository) HasVote(ctx context.Context, pinID string, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&voteModel{}).
		Where("pin_id = ?", strings.TrimSpace(pinID)).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("pin_repo_has_vote_failed", err,
			"pin_id", strings.TrimSpace(pinID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return count > 0, nil
}

func (r *Repository) ListVotesForPin(ctx context.Context, pinID string) ([]entities.VerificationVote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("pin_id = ?", strings.TrimSpace(pinID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("pin_repo_list_votes_failed", err, "pin_id", strings.TrimSpace(pinID))
	}
	votes := make([]entities.VerificationVote, 0, len(rows))
	for _, row := range rows {
		votes = append(votes, row.toEntity())
	}
	return votes, nil
}

// HasImageHash serves the classifier's duplicate-image lookup.
func (r *Repository) HasImageHash(ctx context.Context, hash string) (bool, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&pinModel{}).
		Where("hashed_image = ?", hash).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("pin_repo_has_image_hash_failed", err)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "hazard-reporting/pin-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("pin repository operation failed", fields...)
	return err
}

type pinModel struct {
	ID                string     `gorm:"column:id;primaryKey"`
	UserID            string     `gorm:"column:user_id"`
	Description       string     `gorm:"column:description"`
	Severity          string     `gorm:"column:severity"`
	Category          string     `gorm:"column:category"`
	RecommendedAgency string     `gorm:"column:recommended_agency"`
	Lat               float64    `gorm:"column:lat"`
	Lng               float64    `gorm:"column:lng"`
	Address           string     `gorm:"column:address"`
	PhotoURL          string     `gorm:"column:photo_url"`
	Status            string     `gorm:"column:status"`
	AIConfidence      float64    `gorm:"column:ai_confidence"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	LastVerifiedAt    *time.Time `gorm:"column:last_verified_at"`
	Upvotes           int        `gorm:"column:upvotes"`
	Downvotes         int        `gorm:"column:downvotes"`
	Score             int        `gorm:"column:score"`
	HashedImage       string     `gorm:"column:hashed_image;index"`
	Attachments       string     `gorm:"column:attachments"`
}

func (pinModel) TableName() string {
	return "pins"
}

func pinModelFromEntity(pin entities.Pin) pinModel {
	attachments := "[]"
	if len(pin.Attachments) > 0 {
		if raw, err := json.Marshal(pin.Attachments); err == nil {
			attachments = string(raw)
		}
	}
	return pinModel{
		ID:                strings.TrimSpace(pin.PinID),
		UserID:            strings.TrimSpace(pin.UserID),
		Description:       pin.Description,
		Severity:          string(pin.Severity),
		Category:          string(pin.Category),
		RecommendedAgency: pin.RecommendedAgency,
		Lat:               pin.Location.Lat,
		Lng:               pin.Location.Lng,
		Address:           pin.Location.Address,
		PhotoURL:          pin.PhotoURL,
		Status:            string(pin.Status),
		AIConfidence:      pin.AIConfidence,
		CreatedAt:         pin.CreatedAt.UTC(),
		LastVerifiedAt:    normalizeOptionalTime(pin.LastVerifiedAt),
		Upvotes:           pin.VerificationStats.Upvotes,
		Downvotes:         pin.VerificationStats.Downvotes,
		Score:             pin.VerificationStats.Score,
		HashedImage:       pin.HashedImage,
		Attachments:       attachments,
	}
}

func (m pinModel) toEntity() entities.Pin {
	attachments := []string{}
	if strings.TrimSpace(m.Attachments) != "" {
		_ = json.Unmarshal([]byte(m.Attachments), &attachments)
	}
	return entities.Pin{
		PinID:             m.ID,
		UserID:            m.UserID,
		Description:       m.Description,
		Severity:          entities.Severity(m.Severity),
		Category:          entities.HazardCategory(m.Category),
		RecommendedAgency: m.RecommendedAgency,
		Location: entities.Location{
			Lat:     m.Lat,
			Lng:     m.Lng,
			Address: m.Address,
		},
		PhotoURL:       m.PhotoURL,
		Status:         entities.PinStatus(m.Status),
		AIConfidence:   m.AIConfidence,
		CreatedAt:      m.CreatedAt.UTC(),
		LastVerifiedAt: normalizeOptionalTime(m.LastVerifiedAt),
		VerificationStats: entities.VerificationStats{
			Upvotes:   m.Upvotes,
			Downvotes: m.Downvotes,
			Score:     m.Score,
		},
		HashedImage: m.HashedImage,
		Attachments: attachments,
	}
}

type voteModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	PinID     string    `gorm:"column:pin_id;uniqueIndex:idx_votes_pin_user"`
	UserID    string    `gorm:"column:user_id;uniqueIndex:idx_votes_pin_user"`
	VoteType  string    `gorm:"column:vote_type"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "verification_votes"
}

func voteModelFromEntity(vote entities.VerificationVote) voteModel {
	return voteModel{
		ID:        strings.TrimSpace(vote.VoteID),
		PinID:     strings.TrimSpace(vote.PinID),
		UserID:    strings.TrimSpace(vote.UserID),
		VoteType:  string(vote.Vote),
		Comment:   vote.Comment,
		CreatedAt: vote.CreatedAt.UTC(),
	}
}

func (m voteModel) toEntity() entities.VerificationVote {
	return entities.VerificationVote{
		VoteID:    m.ID,
		PinID:     m.PinID,
		UserID:    m.UserID,
		Vote:      entities.VoteType(m.VoteType),
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PinRepository = (*Repository)(nil)
var _ ports.VoteLedger = (*Repository)(nil)
