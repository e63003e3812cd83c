package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
	"puretask/internal/modules/payout"
	"puretask/internal/repository"
)

type Service struct {
	bookings BookingRepository
	quoter   Quoter
	earnings EarningRecorder
	cleaners CleanerStats
	loggerf  func(format string, args ...interface{})
}

func NewService(bookings BookingRepository, quoter Quoter, earnings EarningRecorder, cleaners CleanerStats, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings: bookings,
		quoter:   quoter,
		earnings: earnings,
		cleaners: cleaners,
		loggerf:  loggerf,
	}
}

// CreateBooking quotes the request and stores a pending booking carrying
// the quote snapshot. A failed quote creates nothing.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingWithQuote, error) {
	if strings.TrimSpace(req.ClientEmail) == "" {
		return nil, ErrValidation
	}
	q, err := s.quoter.Quote(ctx, req.QuoteRequest)
	if err != nil {
		return nil, err
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = domain.ServiceStandard
	}
	b := &domain.Booking{
		CleanerID:          req.CleanerID,
		ClientEmail:        strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		Date:               req.Date,
		StartTime:          req.StartTime,
		Hours:              req.Hours,
		DistanceMiles:      req.DistanceMiles,
		ServiceType:        serviceType,
		Tasks:              req.Tasks,
		Status:             domain.BookingPending,
		Notes:              req.Notes,
		SnapshotBasePrice:  q.BasePrice,
		SnapshotMultiplier: q.CombinedMultiplier,
		SnapshotExtraFees:  q.ExtraFees,
		SnapshotSubtotal:   q.Subtotal,
		SnapshotTotal:      q.Total,
		SnapshotRules:      q.AppliedLabels(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.loggerf("level=info msg=booking_created booking_id=%s cleaner_id=%s total=%s rules=%q",
		b.ID, b.CleanerID, b.SnapshotTotal.StringFixed(2), strings.Join(b.SnapshotRules, ","))
	return &BookingWithQuote{Booking: b, Quote: q}, nil
}

// GetBooking returns the booking when the viewer may see it: admins always,
// cleaners their own jobs, clients their own bookings.
func (s *Service) GetBooking(ctx context.Context, id string, viewerID, viewerEmail string, role domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	switch role {
	case domain.RoleAdmin:
	case domain.RoleCleaner:
		if b.CleanerID != viewerID {
			return nil, ErrForbidden
		}
	default:
		if !strings.EqualFold(b.ClientEmail, viewerEmail) {
			return nil, ErrForbidden
		}
	}
	return b, nil
}

// ApproveBooking completes the job and records the cleaner's earning. A
// completed booking without an earning can be approved again to record it.
func (s *Service) ApproveBooking(ctx context.Context, id string, usdDue decimal.Decimal) (*ApproveResult, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case domain.BookingPending, domain.BookingConfirmed:
		ok, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, domain.BookingCompleted)
		if err != nil {
			return nil, fmt.Errorf("complete booking: %w", err)
		}
		if !ok {
			return nil, ErrInvalidStatus
		}
		b.Status = domain.BookingCompleted
		if err := s.cleaners.IncrementJobs(ctx, b.CleanerID); err != nil {
			s.loggerf("level=warn msg=cleaner_job_count_failed cleaner_id=%s err=%q", b.CleanerID, err.Error())
		}
	case domain.BookingCompleted:
	default:
		return nil, ErrInvalidStatus
	}

	amount := usdDue
	if !amount.IsPositive() {
		amount = b.SnapshotTotal
	}
	e, err := s.earnings.RecordEarning(ctx, b.CleanerID, b.ID, amount)
	if errors.Is(err, payout.ErrDuplicateEarning) {
		return nil, ErrAlreadyApproved
	}
	if err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=booking_approved booking_id=%s earning_id=%s usd_due=%s", b.ID, e.ID, e.USDDue.StringFixed(2))
	return &ApproveResult{Booking: b, Earning: e}, nil
}
