package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"belli/contexts/community-experience/points-engine/domain/entities"
	domainerrors "belli/contexts/community-experience/points-engine/domain/errors"
	"belli/contexts/community-experience/points-engine/ports"

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

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("points_repo_list_users_failed", err)
	}
	users := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toEntity())
	}
	return users, nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, r.logError("points_repo_get_user_failed", err, "user_id", strings.TrimSpace(userID))
	}
	return row.toEntity(), nil
}

// UpdateUser serializes the read-modify-write cycle per user row with a
// SELECT ... FOR UPDATE lock, so concurrent awards never lose updates.
func (r *Repository) UpdateUser(ctx context.Context, userID string, apply func(*entities.User) error) (entities.User, error) {
	var updated entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row userModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", strings.TrimSpace(userID)).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrUserNotFound
			}
			return err
		}
		user := row.toEntity()
		if err := apply(&user); err != nil {
			return err
		}
		next := userModelFromEntity(user)
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return entities.User{}, err
		}
		return entities.User{}, r.logError("points_repo_update_user_failed", err, "user_id", strings.TrimSpace(userID))
	}
	return updated, nil
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) (entities.User, error) {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.User{}, domainerrors.ErrInvalidUserInput
		}
		return entities.User{}, r.logError("points_repo_create_user_failed", err, "user_id", row.ID)
	}
	return row.toEntity(), nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "community-experience/points-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("points repository operation failed", fields...)
	return err
}

type userModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Name             string    `gorm:"column:name"`
	Email            string    `gorm:"column:email;uniqueIndex"`
	Avatar           string    `gorm:"column:avatar"`
	Points           int       `gorm:"column:points"`
	XP               int       `gorm:"column:xp"`
	TrustScore       float64   `gorm:"column:trust_score"`
	Level            string    `gorm:"column:level"`
	Badges           string    `gorm:"column:badges"`
	CreatedPins      int       `gorm:"column:created_pins"`
	VerifiedPins     int       `gorm:"column:verified_pins"`
	SubmittedReports int       `gorm:"column:submitted_reports"`
	ResolvedPins     int       `gorm:"column:resolved_pins"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	badges := "[]"
	if len(user.Badges) > 0 {
		if raw, err := json.Marshal(user.Badges); err == nil {
			badges = string(raw)
		}
	}
	return userModel{
		ID:               strings.TrimSpace(user.UserID),
		Name:             user.Name,
		Email:            strings.TrimSpace(user.Email),
		Avatar:           user.Avatar,
		Points:           user.Points,
		XP:               user.XP,
		TrustScore:       user.TrustScore,
		Level:            user.Level,
		Badges:           badges,
		CreatedPins:      user.CreatedPins,
		VerifiedPins:     user.VerifiedPins,
		SubmittedReports: user.SubmittedReports,
		ResolvedPins:     user.ResolvedPins,
		CreatedAt:        user.CreatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	badges := []string{}
	if strings.TrimSpace(m.Badges) != "" {
		_ = json.Unmarshal([]byte(m.Badges), &badges)
	}
	return entities.User{
		UserID:           m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Avatar:           m.Avatar,
		Points:           m.Points,
		XP:               m.XP,
		TrustScore:       m.TrustScore,
		Level:            m.Level,
		Badges:           badges,
		CreatedPins:      m.CreatedPins,
		VerifiedPins:     m.VerifiedPins,
		SubmittedReports: m.SubmittedReports,
		ResolvedPins:     m.ResolvedPins,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.UserRepository = (*Repository)(nil)
