package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"puretask/internal/domain"
)

type PricingRuleRepository struct {
	db *gorm.DB
}

func NewPricingRuleRepository(db *gorm.DB) *PricingRuleRepository {
	return &PricingRuleRepository{db: db}
}

func (r *PricingRuleRepository) ListActive(ctx context.Context) ([]domain.PricingRule, error) {
	var rules []domain.PricingRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority desc").
		Order("created_at asc").
		Find(&rules).Error
	return rules, err
}

func (r *PricingRuleRepository) List(ctx context.Context) ([]domain.PricingRule, error) {
	var rules []domain.PricingRule
	err := r.db.WithContext(ctx).Order("priority desc").Order("created_at asc").Find(&rules).Error
	return rules, err
}

func (r *PricingRuleRepository) GetByID(ctx context.Context, id string) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &rule, nil
}

func (r *PricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *PricingRuleRepository) Update(ctx context.Context, rule *domain.PricingRule) error {
	res := r.db.WithContext(ctx).Model(&domain.PricingRule{}).
		Where("id = ?", rule.ID).
		Select("rule_type", "multiplier", "conditions", "priority", "is_active", "display_name").
		Updates(rule)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PricingRuleRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.PricingRule{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
