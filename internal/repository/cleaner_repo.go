package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"puretask/internal/domain"
)

type CleanerRepository struct {
	db *gorm.DB
}

func NewCleanerRepository(db *gorm.DB) *CleanerRepository {
	return &CleanerRepository{db: db}
}

func (r *CleanerRepository) GetByID(ctx context.Context, id string) (*domain.CleanerProfile, error) {
	var p domain.CleanerProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *CleanerRepository) FindRateCard(ctx context.Context, cleanerID string) (*domain.RateCard, error) {
	p, err := r.GetByID(ctx, cleanerID)
	if err != nil {
		return nil, err
	}
	return p.RateCard(), nil
}

// Upsert creates the profile or overwrites it by primary key.
func (r *CleanerRepository) Upsert(ctx context.Context, p *domain.CleanerProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}

func (r *CleanerRepository) IncrementJobs(ctx context.Context, cleanerID string) error {
	res := r.db.WithContext(ctx).Model(&domain.CleanerProfile{}).
		Where("id = ?", cleanerID).
		UpdateColumn("total_jobs", gorm.Expr("total_jobs + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
