package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
)

const (
	defaultHolidayFirstYear = 2025
	defaultHolidayLastYear  = 2030
)

func intPtr(v int) *int { return &v }

// DefaultRules is the built-in rule set used when no active rule is configured.
func DefaultRules() []domain.PricingRule {
	return []domain.PricingRule{
		{
			ID:          "default-holiday",
			RuleType:    domain.RuleHoliday,
			Multiplier:  decimal.RequireFromString("1.30"),
			Conditions:  domain.RuleConditions{Dates: defaultHolidayDates(defaultHolidayFirstYear, defaultHolidayLastYear)},
			Priority:    100,
			IsActive:    true,
			DisplayName: "Holiday",
		},
		{
			ID:          "default-last-minute",
			RuleType:    domain.RuleLastMinute,
			Multiplier:  decimal.RequireFromString("1.20"),
			Conditions:  domain.RuleConditions{HoursNotice: 24},
			Priority:    90,
			IsActive:    true,
			DisplayName: "Last-minute booking",
		},
		{
			ID:          "default-weekend",
			RuleType:    domain.RuleDayOfWeek,
			Multiplier:  decimal.RequireFromString("1.15"),
			Conditions:  domain.RuleConditions{Days: []string{"Saturday", "Sunday"}},
			Priority:    80,
			IsActive:    true,
			DisplayName: "Weekend",
		},
		{
			ID:          "default-evening",
			RuleType:    domain.RuleTimeOfDay,
			Multiplier:  decimal.RequireFromString("1.10"),
			Conditions:  domain.RuleConditions{StartHour: intPtr(18), EndHour: intPtr(22)},
			Priority:    70,
			IsActive:    true,
			DisplayName: "Evening",
		},
		{
			ID:          "default-distance",
			RuleType:    domain.RuleDistance,
			Multiplier:  decimal.RequireFromString("1.15"),
			Conditions:  domain.RuleConditions{MinMiles: 15},
			Priority:    60,
			IsActive:    true,
			DisplayName: "Long distance",
		},
		{
			ID:          "default-first-booking",
			RuleType:    domain.RuleFirstBookingDiscount,
			Multiplier:  decimal.RequireFromString("0.90"),
			Priority:    50,
			IsActive:    true,
			DisplayName: "First booking discount",
		},
	}
}

// defaultHolidayDates lists New Year's Day, Independence Day, Thanksgiving
// and Christmas for each year in [from, to].
func defaultHolidayDates(from, to int) []string {
	var out []string
	for y := from; y <= to; y++ {
		out = append(out,
			fmt.Sprintf("%04d-01-01", y),
			fmt.Sprintf("%04d-07-04", y),
			thanksgiving(y).Format(dateLayout),
			fmt.Sprintf("%04d-12-25", y),
		)
	}
	return out
}

// thanksgiving is the fourth Thursday of November.
func thanksgiving(year int) time.Time {
	d := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+21)
}
