package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
	"puretask/internal/repository"
)

var newCleanerFactor = decimal.RequireFromString("0.85")

type Service struct {
	rates   RateCardRepository
	rules   RuleRepository
	history BookingHistory
	loc     *time.Location
	now     func() time.Time
	loggerf func(format string, args ...interface{})
}

func NewService(rates RateCardRepository, rules RuleRepository, history BookingHistory, loc *time.Location, loggerf func(format string, args ...interface{})) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		rates:   rates,
		rules:   rules,
		history: history,
		loc:     loc,
		now:     time.Now,
		loggerf: loggerf,
	}
}

// SetClock replaces the wall clock used by time-relative rules.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Location is the business timezone quotes are evaluated in.
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if strings.TrimSpace(req.CleanerID) == "" || req.Hours <= 0 || req.DistanceMiles < 0 {
		return nil, ErrValidation
	}
	day, err := time.ParseInLocation(dateLayout, req.Date, s.loc)
	if err != nil {
		return nil, ErrValidation
	}
	clock, err := time.Parse(clockLayout, req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}
	startsAt := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, s.loc)

	card, err := s.rates.FindRateCard(ctx, req.CleanerID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && card == nil) {
		return nil, ErrCleanerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load rate card: %w", err)
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = domain.ServiceStandard
	}
	rate := card.RateFor(serviceType)
	base := decimal.NewFromFloat(req.Hours).Mul(decimal.NewFromInt(rate))
	isNew := card.IsNewCleaner()
	if isNew {
		base = base.Mul(newCleanerFactor)
	}

	now := s.now().In(s.loc)
	rules, usedDefaults := s.activeRules(ctx)
	in := RuleInput{
		Date:          req.Date,
		Weekday:       day.Weekday().String(),
		StartHour:     clock.Hour(),
		HoursUntil:    startsAt.Sub(now).Hours(),
		DistanceMiles: req.DistanceMiles,
		FirstBooking:  s.firstBookingCheck(ctx, req.ClientEmail),
	}

	combined := decimal.NewFromInt(1)
	applied := make([]AppliedMultiplier, 0, len(rules))
	for _, rule := range rules {
		if !RuleApplies(rule, in) {
			continue
		}
		combined = combined.Mul(rule.Multiplier)
		applied = append(applied, AppliedMultiplier{
			RuleID:     rule.ID,
			RuleType:   rule.RuleType,
			Label:      rule.DisplayName,
			Multiplier: rule.Multiplier,
			Percent:    percentDelta(rule.Multiplier),
		})
	}

	extras, lines := extraFees(req.Tasks, req.TaskQuantities, card.AdditionalServices)
	subtotal := base.Mul(combined).Round(2)
	total := subtotal.Add(extras).Round(2)
	base = base.Round(2)

	q := &Quote{
		CleanerID:          req.CleanerID,
		HourlyRate:         rate,
		Hours:              req.Hours,
		NewCleanerDiscount: isNew,
		BasePrice:          base,
		AppliedMultipliers: applied,
		CombinedMultiplier: combined,
		ExtraFees:          extras,
		Subtotal:           subtotal,
		Total:              total,
		UsedDefaultRules:   usedDefaults,
		QuotedAt:           now,
	}
	q.Breakdown = QuoteBreakdown{
		BasePrice:          base,
		Multipliers:        applied,
		CombinedMultiplier: combined,
		ExtraFees:          extras,
		ExtraLines:         lines,
		Subtotal:           subtotal,
		Total:              total,
	}
	return q, nil
}

// activeRules returns the configured active rules by descending priority,
// or the defaults when none are configured or they cannot be read.
func (s *Service) activeRules(ctx context.Context) ([]domain.PricingRule, bool) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		s.loggerf("level=warn msg=pricing_rules_read_failed err=%q fallback=defaults", err.Error())
		return sortRules(DefaultRules()), true
	}

	active := make([]domain.PricingRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return sortRules(DefaultRules()), true
	}
	return sortRules(active), false
}

func sortRules(rules []domain.PricingRule) []domain.PricingRule {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules
}

// firstBookingCheck looks the client up at most once per quote. Lookup
// failures count as "not first booking".
func (s *Service) firstBookingCheck(ctx context.Context, email string) func() bool {
	var (
		done   bool
		result bool
	)
	return func() bool {
		if done {
			return result
		}
		done = true
		email = strings.TrimSpace(email)
		if email == "" || s.history == nil {
			return false
		}
		n, err := s.history.CountClientBookings(ctx, email)
		if err != nil {
			s.loggerf("level=warn msg=first_booking_check_failed client=%q err=%q", email, err.Error())
			return false
		}
		result = n == 0
		return result
	}
}

// percentDelta rounds half toward +inf, so 0.995 shows 0 and 1.005 shows 1.
func percentDelta(m decimal.Decimal) int64 {
	pct := m.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return pct.Add(decimal.NewFromFloat(0.5)).Floor().IntPart()
}
