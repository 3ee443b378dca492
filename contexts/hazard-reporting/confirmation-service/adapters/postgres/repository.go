package postgresadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"belli/contexts/hazard-reporting/confirmation-service/domain/entities"
	"belli/contexts/hazard-reporting/confirmation-service/ports"

	"gorm.io/gorm"
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

func (r *Repository) AppendConfirmation(ctx context.Context, confirmation entities.ReportConfirmation) error {
	row := confirmationModelFromEntity(confirmation)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("confirmation_repo_append_failed", err,
			"confirmation_id", row.ID,
			"pin_id", row.PinID,
		)
	}
	return nil
}

func (r *Repository) ListConfirmations(ctx context.Context, pinID string) ([]entities.ReportConfirmation, error) {
	query := r.db.WithContext(ctx).Model(&confirmationModel{}).Order("created_at ASC")
	if trimmed := strings.TrimSpace(pinID); trimmed != "" {
		query = query.Where("pin_id = ?", trimmed)
	}
	var rows []confirmationModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, r.logError("confirmation_repo_list_failed", err, "pin_id", strings.TrimSpace(pinID))
	}
	confirmations := make([]entities.ReportConfirmation, 0, len(rows))
	for _, row := range rows {
		confirmations = append(confirmations, row.toEntity())
	}
	return confirmations, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "hazard-reporting/confirmation-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("confirmation repository operation failed", fields...)
	return err
}

type confirmationModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	PinID         string    `gorm:"column:pin_id;index"`
	UserID        string    `gorm:"column:user_id"`
	FileURL       string    `gorm:"column:file_url"`
	ExtractedText string    `gorm:"column:extracted_text"`
	IsValid       bool      `gorm:"column:is_valid"`
	ReportType    string    `gorm:"column:report_type"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (confirmationModel) TableName() string {
	return "report_confirmations"
}

func confirmationModelFromEntity(confirmation entities.ReportConfirmation) confirmationModel {
	return confirmationModel{
		ID:            strings.TrimSpace(confirmation.ConfirmationID),
		PinID:         strings.TrimSpace(confirmation.PinID),
		UserID:        strings.TrimSpace(confirmation.UserID),
		FileURL:       confirmation.FileURL,
		ExtractedText: confirmation.ExtractedText,
		IsValid:       confirmation.IsValid,
		ReportType:    string(confirmation.ReportType),
		CreatedAt:     confirmation.CreatedAt.UTC(),
	}
}

func (m confirmationModel) toEntity() entities.ReportConfirmation {
	return entities.ReportConfirmation{
		ConfirmationID: m.ID,
		PinID:          m.PinID,
		UserID:         m.UserID,
		FileURL:        m.FileURL,
		ExtractedText:  m.ExtractedText,
		IsValid:        m.IsValid,
		ReportType:     entities.ReportType(m.ReportType),
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

var _ ports.ConfirmationRepository = (*Repository)(nil)
