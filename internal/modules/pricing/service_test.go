package pricing

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"puretask/internal/domain"
	"puretask/internal/repository"
)

type MockRateCards struct {
	mock.Mock
}

func (m *MockRateCards) FindRateCard(ctx context.Context, cleanerID string) (*domain.RateCard, error) {
	args := m.Called(ctx, cleanerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateCard), args.Error(1)
}

type MockRules struct {
	mock.Mock
}

func (m *MockRules) ListActive(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}

func (m *MockRules) List(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}

func (m *MockRules) GetByID(ctx context.Context, id string) (*domain.PricingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingRule), args.Error(1)
}

func (m *MockRules) Create(ctx context.Context, rule *domain.PricingRule) error {
	args := m.Called(ctx, rule)
	if rule != nil && rule.ID == "" {
		rule.ID = "rule-1"
	}
	return args.Error(0)
}

func (m *MockRules) Update(ctx context.Context, rule *domain.PricingRule) error {
	return m.Called(ctx, rule).Error(0)
}

func (m *MockRules) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) CountClientBookings(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

// Monday 2026-06-01 09:00 UTC.
var fixedNow = time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)

func veteranCard() *domain.RateCard {
	return &domain.RateCard{CleanerID: "cl-1", HourlyRate: 20, TotalJobs: 12, IsActive: true}
}

func baseRequest() QuoteRequest {
	return QuoteRequest{
		CleanerID:     "cl-1",
		ClientEmail:   "returning@example.com",
		Date:          "2026-06-10", // Wednesday
		StartTime:     "10:00",
		Hours:         3,
		DistanceMiles: 5,
	}
}

func newTestService(card *domain.RateCard, rules []domain.PricingRule, rulesErr error, prior int64, historyErr error) (*Service, *MockRateCards, *MockRules, *MockHistory) {
	rates := new(MockRateCards)
	ruleRepo := new(MockRules)
	history := new(MockHistory)

	if card != nil {
		rates.On("FindRateCard", mock.Anything, card.CleanerID).Return(card, nil)
	}
	ruleRepo.On("ListActive", mock.Anything).Return(rules, rulesErr)
	history.On("CountClientBookings", mock.Anything, mock.Anything).Return(prior, historyErr)

	svc := NewService(rates, ruleRepo, history, time.UTC, nil)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, rates, ruleRepo, history
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func TestQuote_NoApplicableRules(t *testing.T) {
	svc, _, _, _ := newTestService(veteranCard(), nil, nil, 3, nil)

	q, err := svc.Quote(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.True(t, q.UsedDefaultRules)
	assert.Empty(t, q.AppliedMultipliers)
	assertMoney(t, "60.00", q.BasePrice)
	assert.True(t, q.CombinedMultiplier.Equal(decimal.NewFromInt(1)))
	assertMoney(t, "60.00", q.Subtotal)
	assertMoney(t, "60.00", q.Total)
	assert.False(t, q.NewCleanerDiscount)
}

func TestQuote_WeekendWithOven(t *testing.T) {
	svc, _, _, _ := newTestService(veteranCard(), nil, nil, 3, nil)

	req := baseRequest()
	req.Date = "2026-06-13" // Saturday
	req.Tasks = []string{"oven"}

	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, q.AppliedMultipliers, 1)
	assert.Equal(t, "Weekend", q.AppliedMultipliers[0].Label)
	assert.Equal(t, int64(15), q.AppliedMultipliers[0].Percent)
	assertMoney(t, "69.00", q.Subtotal)
	assertMoney(t, "30.00", q.ExtraFees)
	assertMoney(t, "99.00", q.Total)
	require.Len(t, q.Breakdown.ExtraLines, 1)
	assert.Equal(t, sourceStandard, q.Breakdown.ExtraLines[0].Source)
}

func TestQuote_NewCleanerDiscount(t *testing.T) {
	card := veteranCard()
	card.TotalJobs = 2
	svc, _, _, _ := newTestService(card, nil, nil, 3, nil)

	q, err := svc.Quote(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.True(t, q.NewCleanerDiscount)
	assertMoney(t, "51.00", q.BasePrice)
	assertMoney(t, "51.00", q.Total)
}

func TestQuote_InactiveNewCleanerIsNotDiscounted(t *testing.T) {
	card := veteranCard()
	card.TotalJobs = 0
	card.IsActive = false
	svc, _, _, _ := newTestService(card, nil, nil, 3, nil)

	q, err := svc.Quote(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.False(t, q.NewCleanerDiscount)
	assertMoney(t, "60.00", q.Total)
}

func TestQuote_NewCleanerDiscountComposesWithRules(t *testing.T) {
	card := veteranCard()
	card.TotalJobs = 1
	svc, _, _, _ := newTestService(card, nil, nil, 3, nil)

	req := baseRequest()
	req.Date = "2026-06-13"
	req.Tasks = []string{"laundry"}

	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	// 60 * 0.85 * 1.15 + 20
	assertMoney(t, "58.65", q.Subtotal)
	assertMoney(t, "78.65", q.Total)
}

func TestQuote_MissingCleaner(t *testing.T) {
	svc, rates, _, _ := newTestService(nil, nil, nil, 0, nil)
	rates.On("FindRateCard", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	req := baseRequest()
	req.CleanerID = "ghost"
	_, err := svc.Quote(context.Background(), req)
	assert.ErrorIs(t, err, ErrCleanerNotFound)
}

func TestQuote_RateCardReadFailureIsFatal(t *testing.T) {
	svc, rates, _, _ := newTestService(nil, nil, nil, 0, nil)
	rates.On("FindRateCard", mock.Anything, "cl-1").Return(nil, errors.New("db down"))

	_, err := svc.Quote(context.Background(), baseRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCleanerNotFound)
}

func TestQuote_InvalidInput(t *testing.T) {
	svc, _, _, _ := newTestService(veteranCard(), nil, nil, 3, nil)

	cases := map[string]func(r *QuoteRequest){
		"bad date":      func(r *QuoteRequest) { r.Date = "10/06/2026" },
		"bad time":      func(r *QuoteRequest) { r.StartTime = "25:00" },
		"zero hours":    func(r *QuoteRequest) { r.Hours = 0 },
		"neg distance":  func(r *QuoteRequest) { r.DistanceMiles = -1 },
		"empty cleaner": func(r *QuoteRequest) { r.CleanerID = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := baseRequest()
			mutate(&req)
			_, err := svc.Quote(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestQuote_RuleReadFailureFallsBackToDefaults(t *testing.T) {
	svc, _, _, _ := newTestService(veteranCard(), nil, errors.New("timeout"), 3, nil)

	req := baseRequest()
	req.Date = "2026-06-14" // Sunday
	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, q.UsedDefaultRules)
	assert.Equal(t, []string{"Weekend"}, q.AppliedLabels())
	assertMoney(t, "69.00", q.Total)
}

func TestQuote_FirstBookingDiscount(t *testing.T) {
	svc, _, _, history := newTestService(veteranCard(), nil, nil, 0, nil)

	q, err := svc.Quote(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, q.AppliedMultipliers, 1)
	assert.Equal(t, domain.RuleFirstBookingDiscount, q.AppliedMultipliers[0].RuleType)
	assert.Equal(t, int64(-10), q.AppliedMultipliers[0].Percent)
	assertMoney(t, "54.00", q.Total)
	history.AssertNumberOfCalls(t, "CountClientBookings", 1)
}

func TestQuote_FirstBookingLookupFailureDoesNotDiscount(t *testing.T) {
	var logged []string
	svc, _, _, _ := newTestService(veteranCard(), nil, nil, 0, errors.New("history unavailable"))
	svc.loggerf = func(format string, args ...interface{}) { logged = append(logged, format) }

	q, err := svc.Quote(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, q.AppliedMultipliers)
	assertMoney(t, "60.00", q.Total)
	assert.NotEmpty(t, logged)
}

func TestQuote_AnonymousClientSkipsHistory(t *testing.T) {
	svc, _, _, history := newTestService(veteranCard(), nil, nil, 0, nil)

	req := baseRequest()
	req.ClientEmail = ""
	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, q.AppliedMultipliers)
	history.AssertNotCalled(t, "CountClientBookings", mock.Anything, mock.Anything)
}

func TestQuote_AppliedInDescendingPriority(t *testing.T) {
	rules := []domain.PricingRule{
		{ID: "evening", RuleType: domain.RuleTimeOfDay, Multiplier: decimal.RequireFromString("1.10"),
			Conditions: domain.RuleConditions{StartHour: intPtr(18), EndHour: intPtr(22)}, Priority: 10, IsActive: true, DisplayName: "Evening"},
		{ID: "far", RuleType: domain.RuleDistance, Multiplier: decimal.RequireFromString("1.05"),
			Conditions: domain.RuleConditions{MinMiles: 5}, Priority: 30, IsActive: true, DisplayName: "Far"},
		{ID: "weekend", RuleType: domain.RuleDayOfWeek, Multiplier: decimal.RequireFromString("1.15"),
			Conditions: domain.RuleConditions{Days: []string{"saturday"}}, Priority: 20, IsActive: true, DisplayName: "Weekend"},
	}
	svc, _, _, _ := newTestService(veteranCard(), rules, nil, 3, nil)

	req := baseRequest()
	req.Date = "2026-06-13"
	req.StartTime = "18:00"
	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, q.UsedDefaultRules)
	assert.Equal(t, []string{"Far", "Weekend", "Evening"}, q.AppliedLabels())
	assert.True(t, q.CombinedMultiplier.Equal(decimal.RequireFromString("1.32825")))
	assertMoney(t, "79.70", q.Total)
}

func TestQuote_UnknownAndInactiveRulesAreSkipped(t *testing.T) {
	rules := []domain.PricingRule{
		{ID: "surge", RuleType: "surge", Multiplier: decimal.NewFromInt(3), Priority: 99, IsActive: true, DisplayName: "Surge"},
		{ID: "off", RuleType: domain.RuleDistance, Multiplier: decimal.NewFromInt(2), Priority: 50, IsActive: false, DisplayName: "Off"},
	}
	svc, _, _, _ := newTestService(veteranCard(), rules, nil, 3, nil)

	q, err := svc.Quote(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.False(t, q.UsedDefaultRules)
	assert.Empty(t, q.AppliedMultipliers)
	assertMoney(t, "60.00", q.Total)
}

func TestQuote_IsIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService(veteranCard(), nil, nil, 0, nil)

	req := baseRequest()
	req.Date = "2026-06-01"
	req.StartTime = "19:30"
	req.DistanceMiles = 15
	req.Tasks = []string{"windows", "inside_fridge"}
	req.TaskQuantities = map[string]int{"windows": 4}

	first, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// last-minute, evening, distance, first booking
	assert.Len(t, first.AppliedMultipliers, 4)
	assertMoney(t, "54.00", first.ExtraFees)
}

func TestQuote_LastMinuteBoundary(t *testing.T) {
	notice := func(h float64) []domain.PricingRule {
		return []domain.PricingRule{{ID: "lm", RuleType: domain.RuleLastMinute, Multiplier: decimal.RequireFromString("1.20"),
			Conditions: domain.RuleConditions{HoursNotice: h}, Priority: 1, IsActive: true, DisplayName: "Last minute"}}
	}
	req := baseRequest()
	req.Date = "2026-06-02"
	req.StartTime = "09:00" // exactly 24h after fixedNow

	svc, _, _, _ := newTestService(veteranCard(), notice(24), nil, 3, nil)
	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, q.AppliedMultipliers)

	svc, _, _, _ = newTestService(veteranCard(), notice(24.01), nil, 3, nil)
	q, err = svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, q.AppliedMultipliers, 1)
}

func TestQuote_BusinessTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	rates := new(MockRateCards)
	rates.On("FindRateCard", mock.Anything, "cl-1").Return(veteranCard(), nil)
	rules := new(MockRules)
	rules.On("ListActive", mock.Anything).Return([]domain.PricingRule{{
		ID: "lm", RuleType: domain.RuleLastMinute, Multiplier: decimal.RequireFromString("1.20"),
		Conditions: domain.RuleConditions{HoursNotice: 2}, Priority: 1, IsActive: true, DisplayName: "Last minute",
	}}, nil)

	svc := NewService(rates, rules, nil, loc, nil)
	// 16:00 UTC is 09:00 in Los Angeles during daylight time.
	svc.SetClock(func() time.Time { return time.Date(2026, time.June, 1, 16, 0, 0, 0, time.UTC) })

	req := baseRequest()
	req.Date = "2026-06-01"
	req.StartTime = "12:00"
	q, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	// three hours ahead locally, in the past if read as UTC
	assert.Empty(t, q.AppliedMultipliers)

	req.StartTime = "10:30"
	q, err = svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, q.AppliedMultipliers, 1)
}

func TestRuleApplies(t *testing.T) {
	hours := func(start, end int) domain.RuleConditions {
		return domain.RuleConditions{StartHour: intPtr(start), EndHour: intPtr(end)}
	}
	yes := func() bool { return true }

	cases := []struct {
		name string
		rule domain.PricingRule
		in   RuleInput
		want bool
	}{
		{"weekday match", domain.PricingRule{RuleType: domain.RuleDayOfWeek, Conditions: domain.RuleConditions{Days: []string{"Sunday"}}}, RuleInput{Weekday: "Sunday"}, true},
		{"weekday case insensitive", domain.PricingRule{RuleType: domain.RuleDayOfWeek, Conditions: domain.RuleConditions{Days: []string{"SUNDAY"}}}, RuleInput{Weekday: "Sunday"}, true},
		{"weekday miss", domain.PricingRule{RuleType: domain.RuleDayOfWeek, Conditions: domain.RuleConditions{Days: []string{"Sunday"}}}, RuleInput{Weekday: "Monday"}, false},
		{"start hour included", domain.PricingRule{RuleType: domain.RuleTimeOfDay, Conditions: hours(18, 22)}, RuleInput{StartHour: 18}, true},
		{"end hour excluded", domain.PricingRule{RuleType: domain.RuleTimeOfDay, Conditions: hours(18, 22)}, RuleInput{StartHour: 22}, false},
		{"missing hours", domain.PricingRule{RuleType: domain.RuleTimeOfDay}, RuleInput{StartHour: 18}, false},
		{"notice strict", domain.PricingRule{RuleType: domain.RuleLastMinute, Conditions: domain.RuleConditions{HoursNotice: 24}}, RuleInput{HoursUntil: 24}, false},
		{"notice just inside", domain.PricingRule{RuleType: domain.RuleLastMinute, Conditions: domain.RuleConditions{HoursNotice: 24}}, RuleInput{HoursUntil: 23.99}, true},
		{"booking in the past", domain.PricingRule{RuleType: domain.RuleLastMinute, Conditions: domain.RuleConditions{HoursNotice: 24}}, RuleInput{HoursUntil: -5}, true},
		{"distance inclusive", domain.PricingRule{RuleType: domain.RuleDistance, Conditions: domain.RuleConditions{MinMiles: 15}}, RuleInput{DistanceMiles: 15}, true},
		{"distance below", domain.PricingRule{RuleType: domain.RuleDistance, Conditions: domain.RuleConditions{MinMiles: 15}}, RuleInput{DistanceMiles: 14.9}, false},
		{"holiday exact", domain.PricingRule{RuleType: domain.RuleHoliday, Conditions: domain.RuleConditions{Dates: []string{"2026-12-25"}}}, RuleInput{Date: "2026-12-25"}, true},
		{"holiday no normalization", domain.PricingRule{RuleType: domain.RuleHoliday, Conditions: domain.RuleConditions{Dates: []string{"2026-12-25"}}}, RuleInput{Date: "2026-12-25T00:00"}, false},
		{"first booking", domain.PricingRule{RuleType: domain.RuleFirstBookingDiscount}, RuleInput{FirstBooking: yes}, true},
		{"first booking without lookup", domain.PricingRule{RuleType: domain.RuleFirstBookingDiscount}, RuleInput{}, false},
		{"unknown type", domain.PricingRule{RuleType: "moon_phase"}, RuleInput{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RuleApplies(tc.rule, tc.in))
		})
	}
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 6)

	seen := map[domain.RuleType]bool{}
	for _, r := range rules {
		assert.True(t, r.IsActive)
		assert.True(t, r.RuleType.Known())
		seen[r.RuleType] = true
	}
	assert.Len(t, seen, 6)
	assert.Contains(t, rules[0].Conditions.Dates, "2026-11-26")
	assert.Contains(t, rules[0].Conditions.Dates, "2026-12-25")
}

func TestExtraFees(t *testing.T) {
	custom := map[string]domain.ServicePrice{
		"Inside Oven": {Price: decimal.NewFromInt(25)},
		"baseboards":  {Price: decimal.RequireFromString("4.50"), PerUnit: true},
	}

	total, lines := extraFees(
		[]string{"oven", "inside-oven", "windows", "baseboards", "garage", "interior_walls"},
		map[string]int{"windows": 3, "baseboards": 4},
		custom,
	)

	// 25 custom oven once + 18 windows + 18 baseboards + 40 walls
	assertMoney(t, "101.00", total)
	require.Len(t, lines, 4)
	assert.Equal(t, sourceCustom, lines[0].Source)
	assert.Equal(t, 3, lines[1].Quantity)
	assert.Equal(t, "baseboards", lines[2].Task)
}

func TestExtraFees_QuantityIgnoredForFlatTasks(t *testing.T) {
	total, lines := extraFees([]string{"laundry", "windows"}, map[string]int{"laundry": 5}, nil)
	assertMoney(t, "26.00", total)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCreateRule(t *testing.T) {
	svc, _, rules, _ := newTestService(veteranCard(), nil, nil, 0, nil)
	rules.On("Create", mock.Anything, mock.AnythingOfType("*domain.PricingRule")).Return(nil)

	inactive := false
	rule, err := svc.CreateRule(context.Background(), RuleRequest{
		RuleType:    domain.RuleTimeOfDay,
		Multiplier:  decimal.RequireFromString("1.10"),
		Conditions:  domain.RuleConditions{StartHour: intPtr(6), EndHour: intPtr(8)},
		Priority:    5,
		IsActive:    &inactive,
		DisplayName: " Early bird ",
	})
	require.NoError(t, err)
	assert.Equal(t, "rule-1", rule.ID)
	assert.Equal(t, "Early bird", rule.DisplayName)
	assert.False(t, rule.IsActive)
}

func TestCreateRule_Validation(t *testing.T) {
	svc, _, rules, _ := newTestService(veteranCard(), nil, nil, 0, nil)

	cases := []struct {
		name  string
		req   RuleRequest
		field string
	}{
		{"unknown type", RuleRequest{RuleType: "surge", Multiplier: decimal.NewFromInt(2), DisplayName: "x"}, "rule_type"},
		{"zero multiplier", RuleRequest{RuleType: domain.RuleFirstBookingDiscount, DisplayName: "x"}, "multiplier"},
		{"inverted hours", RuleRequest{RuleType: domain.RuleTimeOfDay, Multiplier: decimal.NewFromInt(1),
			Conditions: domain.RuleConditions{StartHour: intPtr(20), EndHour: intPtr(18)}, DisplayName: "x"}, "conditions.EndHour"},
		{"no days", RuleRequest{RuleType: domain.RuleDayOfWeek, Multiplier: decimal.NewFromInt(1), DisplayName: "x"}, "conditions.Days"},
		{"no hours notice", RuleRequest{RuleType: domain.RuleLastMinute, Multiplier: decimal.NewFromInt(1), DisplayName: "x"}, "conditions.HoursNotice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRule(context.Background(), tc.req)
			rve := IsRuleValidationError(err)
			require.NotNil(t, rve)
			assert.Contains(t, rve.Fields, tc.field)
		})
	}
	rules.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateRule_NotFound(t *testing.T) {
	svc, _, rules, _ := newTestService(veteranCard(), nil, nil, 0, nil)
	rules.On("GetByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateRule(context.Background(), "missing", RuleRequest{
		RuleType: domain.RuleDistance, Multiplier: decimal.NewFromInt(1), DisplayName: "Far",
	})
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestUpdateRule_Deactivate(t *testing.T) {
	svc, _, rules, _ := newTestService(veteranCard(), nil, nil, 0, nil)
	existing := &domain.PricingRule{ID: "r1", RuleType: domain.RuleDistance, Multiplier: decimal.NewFromInt(1), IsActive: true}
	rules.On("GetByID", mock.Anything, "r1").Return(existing, nil)
	rules.On("Update", mock.Anything, existing).Return(nil)

	off := false
	rule, err := svc.UpdateRule(context.Background(), "r1", RuleRequest{
		RuleType: domain.RuleDistance, Multiplier: decimal.RequireFromString("1.25"),
		Conditions: domain.RuleConditions{MinMiles: 20}, IsActive: &off, DisplayName: "Very far",
	})
	require.NoError(t, err)
	assert.False(t, rule.IsActive)
	assert.Equal(t, 20.0, rule.Conditions.MinMiles)
}

func TestDeleteRule_NotFound(t *testing.T) {
	svc, _, rules, _ := newTestService(veteranCard(), nil, nil, 0, nil)
	rules.On("Delete", mock.Anything, "r9").Return(repository.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteRule(context.Background(), "r9"), ErrRuleNotFound)
}

func TestPercentDelta_RoundsHalfUp(t *testing.T) {
	cases := map[string]int64{
		"1.15":   15,
		"0.90":   -10,
		"1.005":  1,
		"0.995":  0,
		"0.985":  -1,
		"1.3282": 33,
		"1":      0,
	}
	for m, want := range cases {
		assert.Equal(t, want, percentDelta(decimal.RequireFromString(m)), m)
	}
}
