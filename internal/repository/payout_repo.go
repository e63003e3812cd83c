package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"puretask/internal/domain"
)

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

type ClaimFilter struct {
	CleanerID string
	// CreatedBefore limits the claim to earnings older than the cutoff.
	CreatedBefore *time.Time
}

// PayoutBuilder turns the claimed earnings into the payout to persist.
// Returning an error aborts the claim and leaves every earning untouched.
type PayoutBuilder func(claimed []domain.CleanerEarning) (*domain.Payout, error)

type PayoutFilter struct {
	CleanerID string
	Status    domain.PayoutStatus
	From      *time.Time
	To        *time.Time
}

// ClaimPendingEarnings reads the cleaner's pending earnings, creates the
// payout built from them and marks them batched in one transaction. The
// batch update is conditional on status = pending; if any row was taken by
// a concurrent claim the whole transaction is rolled back with ErrConflict.
func (r *PayoutRepository) ClaimPendingEarnings(ctx context.Context, f ClaimFilter, build PayoutBuilder) (*domain.Payout, []domain.CleanerEarning, error) {
	var payout *domain.Payout
	var claimed []domain.CleanerEarning

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cleaner_id = ? AND status = ?", f.CleanerID, domain.EarningPending)
		if f.CreatedBefore != nil {
			q = q.Where("created_at < ?", f.CreatedBefore.UTC())
		}
		if err := q.Order("created_at asc").Find(&claimed).Error; err != nil {
			return err
		}

		p, err := build(claimed)
		if err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.BatchStart, p.BatchEnd = p.BatchStart.UTC(), p.BatchEnd.UTC()
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		ids := make([]string, len(claimed))
		for i := range claimed {
			ids[i] = claimed[i].ID
		}
		res := tx.Model(&domain.CleanerEarning{}).
			Where("id IN ? AND status = ?", ids, domain.EarningPending).
			Updates(map[string]interface{}{
				"status":    domain.EarningBatched,
				"payout_id": p.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return ErrConflict
		}

		for i := range claimed {
			claimed[i].Status = domain.EarningBatched
			claimed[i].PayoutID = &p.ID
		}
		payout = p
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return payout, claimed, nil
}

func (r *PayoutRepository) GetByID(ctx context.Context, id string) (*domain.Payout, error) {
	var p domain.Payout
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *PayoutRepository) List(ctx context.Context, f PayoutFilter) ([]domain.Payout, error) {
	q := r.db.WithContext(ctx)
	if f.CleanerID != "" {
		q = q.Where("cleaner_id = ?", f.CleanerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.UTC())
	}
	var out []domain.Payout
	err := q.Order("created_at desc").Find(&out).Error
	return out, err
}

// Complete marks a pending payout completed and its batched earnings paid.
func (r *PayoutRepository) Complete(ctx context.Context, id string, at time.Time) (*domain.Payout, error) {
	return r.settle(ctx, id, map[string]interface{}{
		"status":       domain.PayoutCompleted,
		"completed_at": at,
	}, map[string]interface{}{
		"status": domain.EarningPaid,
	})
}

// Fail marks a pending payout failed and releases its batched earnings back
// to pending so a later payout can claim them.
func (r *PayoutRepository) Fail(ctx context.Context, id, reason string) (*domain.Payout, error) {
	return r.settle(ctx, id, map[string]interface{}{
		"status":         domain.PayoutFailed,
		"failure_reason": reason,
	}, map[string]interface{}{
		"status":    domain.EarningPending,
		"payout_id": nil,
	})
}

func (r *PayoutRepository) settle(ctx context.Context, id string, payoutUpdates, earningUpdates map[string]interface{}) (*domain.Payout, error) {
	var out domain.Payout
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Payout{}).
			Where("id = ? AND status = ?", id, domain.PayoutPending).
			Updates(payoutUpdates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&domain.Payout{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrNotFound
			}
			return ErrConflict
		}

		if err := tx.Model(&domain.CleanerEarning{}).
			Where("payout_id = ? AND status = ?", id, domain.EarningBatched).
			Updates(earningUpdates).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
