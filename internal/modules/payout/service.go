package payout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"puretask/internal/config"
	"puretask/internal/domain"
	"puretask/internal/pkg/lock"
	"puretask/internal/repository"
)

type Service struct {
	earnings EarningRepository
	payouts  PayoutRepository
	locker   lock.Locker
	policy   config.PayoutPolicy
	loc      *time.Location
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewService(earnings EarningRepository, payouts PayoutRepository, locker lock.Locker, policy config.PayoutPolicy, loc *time.Location, loggerf func(format string, args ...interface{})) *Service {
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	if loc == nil {
		loc = time.UTC
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		earnings: earnings,
		payouts:  payouts,
		locker:   locker,
		policy:   policy,
		loc:      loc,
		now:      time.Now,
		loggerf:  loggerf,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Policy() config.PayoutPolicy { return s.policy }

func lockKey(cleanerID string) string { return "payout:" + cleanerID }

func sumDue(earnings []domain.CleanerEarning) decimal.Decimal {
	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(e.USDDue)
	}
	return total
}

// PendingTotal sums the cleaner's pending earnings.
func (s *Service) PendingTotal(ctx context.Context, cleanerID string) (decimal.Decimal, error) {
	pending, err := s.earnings.ListEarnings(ctx, cleanerID, domain.EarningPending)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list pending earnings: %w", err)
	}
	return sumDue(pending), nil
}

func (s *Service) EarningsSummary(ctx context.Context, cleanerID string, status domain.EarningStatus) (*EarningsSummary, error) {
	pendingTotal, err := s.PendingTotal(ctx, cleanerID)
	if err != nil {
		return nil, err
	}
	list, err := s.earnings.ListEarnings(ctx, cleanerID, status)
	if err != nil {
		return nil, fmt.Errorf("list earnings: %w", err)
	}

	views := make([]EarningView, 0, len(list))
	for _, e := range list {
		views = append(views, EarningView{CleanerEarning: e, Display: EarningStatusDisplay(e.Status)})
	}
	return &EarningsSummary{
		CleanerID:    cleanerID,
		PendingTotal: pendingTotal,
		MinInstant:   s.policy.MinInstantUSD,
		CanCashOut:   pendingTotal.GreaterThanOrEqual(s.policy.MinInstantUSD) && pendingTotal.IsPositive(),
		Earnings:     views,
	}, nil
}

// RequestInstantPayout claims every pending earning of the cleaner into one
// instant payout with the policy fee withheld.
func (s *Service) RequestInstantPayout(ctx context.Context, cleanerID string) (*domain.Payout, error) {
	build := func(claimed []domain.CleanerEarning) (*domain.Payout, error) {
		if len(claimed) == 0 {
			return nil, ErrNoEarnings
		}
		gross := sumDue(claimed)
		if gross.LessThan(s.policy.MinInstantUSD) {
			return nil, &BelowMinimumError{Type: domain.PayoutInstant, Threshold: s.policy.MinInstantUSD, Amount: gross}
		}
		fee := gross.Mul(s.policy.InstantFeePct).Round(2)
		return newPayout(cleanerID, domain.PayoutInstant, claimed, gross, fee), nil
	}

	p, err := s.claim(ctx, repository.ClaimFilter{CleanerID: cleanerID}, build)
	if err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=instant_payout_created payout_id=%s cleaner_id=%s gross=%s fee=%s net=%s earnings=%d",
		p.ID, cleanerID, p.GrossUSD.StringFixed(2), p.FeeUSD.StringFixed(2), p.AmountUSD.StringFixed(2), len(p.BookingIDs))
	return p, nil
}

// WeeklyCutoff is the start of the current business day minus the hold;
// only earnings created before it join a weekly batch.
func (s *Service) WeeklyCutoff(now time.Time) time.Time {
	local := now.In(s.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	return start.Add(-s.policy.WeeklyHold)
}

// RunWeeklyPayouts batches every cleaner's eligible pending earnings into a
// fee-free weekly payout. Cleaners below the weekly minimum are skipped and
// keep their earnings pending.
func (s *Service) RunWeeklyPayouts(ctx context.Context) (*WeeklySummary, error) {
	now := s.now()
	cutoff := s.WeeklyCutoff(now)

	cleaners, err := s.earnings.ListCleanersWithPending(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list cleaners with pending earnings: %w", err)
	}

	summary := &WeeklySummary{RunAt: now, Cutoff: cutoff, Cleaners: len(cleaners), Created: []string{}, TotalUSD: decimal.Zero}
	for _, cleanerID := range cleaners {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		build := func(claimed []domain.CleanerEarning) (*domain.Payout, error) {
			if len(claimed) == 0 {
				return nil, ErrNoEarnings
			}
			gross := sumDue(claimed)
			if gross.LessThan(s.policy.MinWeeklyUSD) {
				return nil, &BelowMinimumError{Type: domain.PayoutWeekly, Threshold: s.policy.MinWeeklyUSD, Amount: gross}
			}
			return newPayout(cleanerID, domain.PayoutWeekly, claimed, gross, decimal.Zero), nil
		}

		p, err := s.claim(ctx, repository.ClaimFilter{CleanerID: cleanerID, CreatedBefore: &cutoff}, build)
		if _, below := AsBelowMinimum(err); below || errors.Is(err, ErrNoEarnings) {
			summary.Skipped++
			continue
		}
		if err != nil {
			summary.Failed++
			s.loggerf("level=error msg=weekly_payout_failed cleaner_id=%s err=%q", cleanerID, err.Error())
			continue
		}
		summary.Created = append(summary.Created, p.ID)
		summary.TotalUSD = summary.TotalUSD.Add(p.AmountUSD)
	}

	s.loggerf("level=info msg=weekly_payouts_run cutoff=%s cleaners=%d created=%d skipped=%d failed=%d total=%s",
		cutoff.Format(time.RFC3339), summary.Cleaners, len(summary.Created), summary.Skipped, summary.Failed, summary.TotalUSD.StringFixed(2))
	return summary, nil
}

// claim runs the repository claim under the cleaner's lock.
func (s *Service) claim(ctx context.Context, f repository.ClaimFilter, build repository.PayoutBuilder) (*domain.Payout, error) {
	unlock, err := s.locker.Lock(ctx, lockKey(f.CleanerID))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, ErrPayoutInProgress
		}
		return nil, fmt.Errorf("acquire payout lock: %w", err)
	}
	defer unlock()

	p, _, err := s.payouts.ClaimPendingEarnings(ctx, f, build)
	if errors.Is(err, repository.ErrConflict) {
		s.loggerf("level=warn msg=payout_claim_conflict cleaner_id=%s", f.CleanerID)
		return nil, ErrPayoutInProgress
	}
	return p, err
}

func newPayout(cleanerID string, kind domain.PayoutType, claimed []domain.CleanerEarning, gross, fee decimal.Decimal) *domain.Payout {
	bookingIDs := make([]string, 0, len(claimed))
	start, end := claimed[0].CreatedAt, claimed[0].CreatedAt
	for _, e := range claimed {
		bookingIDs = append(bookingIDs, e.BookingID)
		if e.CreatedAt.Before(start) {
			start = e.CreatedAt
		}
		if e.CreatedAt.After(end) {
			end = e.CreatedAt
		}
	}
	return &domain.Payout{
		CleanerID:  cleanerID,
		BookingIDs: bookingIDs,
		GrossUSD:   gross,
		FeeUSD:     fee,
		AmountUSD:  gross.Sub(fee),
		PayoutType: kind,
		Status:     domain.PayoutPending,
		BatchStart: start,
		BatchEnd:   end,
	}
}

func (s *Service) CompletePayout(ctx context.Context, id string) (*domain.Payout, error) {
	p, err := s.payouts.Complete(ctx, id, s.now().UTC())
	if err != nil {
		return nil, mapPayoutErr(err)
	}
	s.loggerf("level=info msg=payout_completed payout_id=%s cleaner_id=%s amount=%s", p.ID, p.CleanerID, p.AmountUSD.StringFixed(2))
	return p, nil
}

// FailPayout marks the payout failed and returns its earnings to pending.
func (s *Service) FailPayout(ctx context.Context, id, reason string) (*domain.Payout, error) {
	p, err := s.payouts.Fail(ctx, id, strings.TrimSpace(reason))
	if err != nil {
		return nil, mapPayoutErr(err)
	}
	s.loggerf("level=warn msg=payout_failed payout_id=%s cleaner_id=%s reason=%q", p.ID, p.CleanerID, p.FailureReason)
	return p, nil
}

func mapPayoutErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrPayoutNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrInvalidStatusTransition
	default:
		return err
	}
}

func (s *Service) GetPayout(ctx context.Context, id string) (*domain.Payout, error) {
	p, err := s.payouts.GetByID(ctx, id)
	if err != nil {
		return nil, mapPayoutErr(err)
	}
	return p, nil
}

func (s *Service) ListPayouts(ctx context.Context, f repository.PayoutFilter) ([]PayoutView, error) {
	list, err := s.payouts.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	views := make([]PayoutView, 0, len(list))
	for _, p := range list {
		views = append(views, PayoutView{Payout: p, Display: PayoutStatusDisplay(p.Status)})
	}
	return views, nil
}

// RecordEarning books the cleaner's share of an approved job. One earning
// exists per booking.
func (s *Service) RecordEarning(ctx context.Context, cleanerID, bookingID string, amount decimal.Decimal) (*domain.CleanerEarning, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	e := &domain.CleanerEarning{
		CleanerID: cleanerID,
		BookingID: bookingID,
		USDDue:    amount.Round(2),
		Status:    domain.EarningPending,
	}
	if err := s.earnings.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEarning
		}
		return nil, fmt.Errorf("create earning: %w", err)
	}
	s.loggerf("level=info msg=earning_recorded earning_id=%s cleaner_id=%s booking_id=%s usd_due=%s", e.ID, cleanerID, bookingID, e.USDDue.StringFixed(2))
	return e, nil
}

// ReverseEarning claws back a pending or batched earning. A batched
// earning first fails its open payout, which returns the payout's other
// earnings to pending, so batched sums keep matching payout gross.
func (s *Service) ReverseEarning(ctx context.Context, id, reason string) (*domain.CleanerEarning, error) {
	e, err := s.earnings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEarningNotFound
	}
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionEarning(e.Status, domain.EarningReversed) {
		return nil, ErrInvalidStatusTransition
	}

	unlock, err := s.locker.Lock(ctx, lockKey(e.CleanerID))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, ErrPayoutInProgress
		}
		return nil, fmt.Errorf("acquire payout lock: %w", err)
	}
	defer unlock()

	// re-read under the lock
	if e, err = s.earnings.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if !domain.CanTransitionEarning(e.Status, domain.EarningReversed) {
		return nil, ErrInvalidStatusTransition
	}

	if e.Status == domain.EarningBatched && e.PayoutID != nil {
		failReason := fmt.Sprintf("earning %s reversed", e.ID)
		if _, err := s.payouts.Fail(ctx, *e.PayoutID, failReason); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// payout already settled; earning is paid or pending again
				return nil, ErrEarningInPayout
			}
			return nil, mapPayoutErr(err)
		}
		s.loggerf("level=warn msg=payout_failed_by_reversal payout_id=%s earning_id=%s", *e.PayoutID, e.ID)
	}

	ok, err := s.earnings.UpdateEarningStatus(ctx, id, domain.EarningReversed, domain.EarningPending)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}
	e.Status = domain.EarningReversed
	e.PayoutID = nil
	s.loggerf("level=warn msg=earning_reversed earning_id=%s cleaner_id=%s reason=%q", e.ID, e.CleanerID, reason)
	return e, nil
}
