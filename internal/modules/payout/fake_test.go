package payout

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"puretask/internal/domain"
	"puretask/internal/repository"
)

// memStore is an in-memory ledger. Its claim reads and writes in two
// separate critical sections, so only the service lock keeps claims apart.
type memStore struct {
	mu       sync.Mutex
	earnings map[string]*domain.CleanerEarning
	payouts  map[string]*domain.Payout
	seq      int
	// readDelay widens the window between reading and batching.
	readDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		earnings: map[string]*domain.CleanerEarning{},
		payouts:  map[string]*domain.Payout{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) byStatus(s domain.EarningStatus) []domain.CleanerEarning {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.CleanerEarning
	for _, e := range m.earnings {
		if e.Status == s {
			out = append(out, *e)
		}
	}
	return out
}

type fakeEarnings struct{ *memStore }

func (f fakeEarnings) Create(_ context.Context, e *domain.CleanerEarning) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.earnings {
		if existing.BookingID == e.BookingID {
			return repository.ErrDuplicate
		}
	}
	if e.ID == "" {
		e.ID = f.nextID("earning")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cp := *e
	f.earnings[e.ID] = &cp
	return nil
}

func (f fakeEarnings) GetByID(_ context.Context, id string) (*domain.CleanerEarning, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.earnings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f fakeEarnings) ListEarnings(_ context.Context, cleanerID string, status domain.EarningStatus) ([]domain.CleanerEarning, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CleanerEarning
	for _, e := range f.earnings {
		if e.CleanerID == cleanerID && (status == "" || e.Status == status) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f fakeEarnings) ListCleanersWithPending(_ context.Context, before time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, e := range f.earnings {
		if e.Status == domain.EarningPending && e.CreatedAt.Before(before) && !seen[e.CleanerID] {
			seen[e.CleanerID] = true
			out = append(out, e.CleanerID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f fakeEarnings) UpdateEarningStatus(_ context.Context, id string, to domain.EarningStatus, from ...domain.EarningStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.earnings[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if e.Status == s {
			e.Status = to
			return true, nil
		}
	}
	return false, nil
}

type fakePayouts struct{ *memStore }

func (f fakePayouts) ClaimPendingEarnings(_ context.Context, cf repository.ClaimFilter, build repository.PayoutBuilder) (*domain.Payout, []domain.CleanerEarning, error) {
	f.mu.Lock()
	var claimed []domain.CleanerEarning
	for _, e := range f.earnings {
		if e.CleanerID != cf.CleanerID || e.Status != domain.EarningPending {
			continue
		}
		if cf.CreatedBefore != nil && !e.CreatedAt.Before(*cf.CreatedBefore) {
			continue
		}
		claimed = append(claimed, *e)
	}
	f.mu.Unlock()
	sort.Slice(claimed, func(i, j int) bool { return claimed[i].CreatedAt.Before(claimed[j].CreatedAt) })

	if f.readDelay > 0 {
		time.Sleep(f.readDelay)
	}

	p, err := build(claimed)
	if err != nil {
		return nil, nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range claimed {
		if f.earnings[c.ID].Status != domain.EarningPending {
			return nil, nil, repository.ErrConflict
		}
	}
	p.ID = f.nextID("payout")
	p.CreatedAt = time.Now()
	cp := *p
	f.payouts[p.ID] = &cp
	for i := range claimed {
		e := f.earnings[claimed[i].ID]
		e.Status = domain.EarningBatched
		e.PayoutID = &cp.ID
		claimed[i] = *e
	}
	return p, claimed, nil
}

func (f fakePayouts) GetByID(_ context.Context, id string) (*domain.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakePayouts) List(_ context.Context, pf repository.PayoutFilter) ([]domain.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Payout
	for _, p := range f.payouts {
		if pf.CleanerID != "" && p.CleanerID != pf.CleanerID {
			continue
		}
		if pf.Status != "" && p.Status != pf.Status {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakePayouts) Complete(_ context.Context, id string, at time.Time) (*domain.Payout, error) {
	return f.settle(id, func(p *domain.Payout) {
		p.Status = domain.PayoutCompleted
		p.CompletedAt = &at
	}, func(e *domain.CleanerEarning) {
		e.Status = domain.EarningPaid
	})
}

func (f fakePayouts) Fail(_ context.Context, id, reason string) (*domain.Payout, error) {
	return f.settle(id, func(p *domain.Payout) {
		p.Status = domain.PayoutFailed
		p.FailureReason = reason
	}, func(e *domain.CleanerEarning) {
		e.Status = domain.EarningPending
		e.PayoutID = nil
	})
}

func (f fakePayouts) settle(id string, payout func(*domain.Payout), earning func(*domain.CleanerEarning)) (*domain.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Status != domain.PayoutPending {
		return nil, repository.ErrConflict
	}
	payout(p)
	for _, e := range f.earnings {
		if e.PayoutID != nil && *e.PayoutID == id && e.Status == domain.EarningBatched {
			earning(e)
		}
	}
	cp := *p
	return &cp, nil
}
