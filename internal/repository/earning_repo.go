package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puretask/internal/domain"
)

type EarningRepository struct {
	db *gorm.DB
}

func NewEarningRepository(db *gorm.DB) *EarningRepository {
	return &EarningRepository{db: db}
}

func (r *EarningRepository) Create(ctx context.Context, e *domain.CleanerEarning) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = e.CreatedAt.UTC()
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *EarningRepository) GetByID(ctx context.Context, id string) (*domain.CleanerEarning, error) {
	var e domain.CleanerEarning
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &e, nil
}

// ListEarnings returns a cleaner's earnings, oldest first. An empty status
// lists every status.
func (r *EarningRepository) ListEarnings(ctx context.Context, cleanerID string, status domain.EarningStatus) ([]domain.CleanerEarning, error) {
	q := r.db.WithContext(ctx).Where("cleaner_id = ?", cleanerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.CleanerEarning
	err := q.Order("created_at asc").Find(&out).Error
	return out, err
}

// ListCleanersWithPending returns the ids of cleaners holding pending
// earnings created before the cutoff.
func (r *EarningRepository) ListCleanersWithPending(ctx context.Context, before time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.CleanerEarning{}).
		Where("status = ? AND created_at < ?", domain.EarningPending, before.UTC()).
		Distinct().
		Order("cleaner_id").
		Pluck("cleaner_id", &ids).Error
	return ids, err
}

// UpdateEarningStatus moves an earning to `to` only while it is in one of
// `from`. It reports whether the row changed.
func (r *EarningRepository) UpdateEarningStatus(ctx context.Context, id string, to domain.EarningStatus, from ...domain.EarningStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.CleanerEarning{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
