package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/leadflow/server/internal/models"
	appErr "github.com/leadflow/server/pkg/errors"
)

// LeadRepository persists leads. Every read or mutation of an existing lead
// is scoped to its owning user in a single statement, so a lead that does
// not exist and a lead owned by someone else are indistinguishable to the
// caller.
type LeadRepository interface {
	Create(ctx context.Context, lead *models.Lead) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Lead, error)
	FindOwned(ctx context.Context, leadID, userID uuid.UUID, dest *models.Lead) error
	UpdateOwned(ctx context.Context, leadID, userID uuid.UUID, updates map[string]any) error
	DeleteOwned(ctx context.Context, leadID, userID uuid.UUID) error
	ListDueReminders(ctx context.Context, before time.Time) ([]models.Lead, error)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, lead *models.Lead) error {
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create lead failed")
	}
	return nil
}

func (r *leadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Lead, error) {
	var out []models.Lead
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list leads by user failed")
	}
	return out, nil
}

func (r *leadRepository) FindOwned(ctx context.Context, leadID, userID uuid.UUID, dest *models.Lead) error {
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", leadID, userID).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "Lead not found or you do not have permission to edit it.")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "find owned lead failed")
	}
	return nil
}

func (r *leadRepository) UpdateOwned(ctx context.Context, leadID, userID uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ? AND user_id = ?", leadID, userID).Updates(updates)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update owned lead failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "Lead not found or you do not have permission to edit it.")
	}
	return nil
}

func (r *leadRepository) DeleteOwned(ctx context.Context, leadID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", leadID, userID).Delete(&models.Lead{})
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete owned lead failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "Lead not found or you do not have permission to delete it.")
	}
	return nil
}

func (r *leadRepository) ListDueReminders(ctx context.Context, before time.Time) ([]models.Lead, error) {
	var out []models.Lead
	err := r.db.WithContext(ctx).
		Where("reminder->>'date' IS NOT NULL AND (reminder->>'date')::timestamptz <= ?", before).
		Order("reminder->>'date' ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list due reminders failed")
	}
	return out, nil
}
