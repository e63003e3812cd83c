package pricing

import (
	"strings"

	"puretask/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// RuleInput is the booking context a rule is evaluated against.
type RuleInput struct {
	Date          string
	Weekday       string
	StartHour     int
	HoursUntil    float64
	DistanceMiles float64
	// FirstBooking is consulted only by first_booking_discount rules.
	FirstBooking func() bool
}

// RuleApplies reports whether a single rule matches the input.
// Unknown rule types never apply.
func RuleApplies(rule domain.PricingRule, in RuleInput) bool {
	c := rule.Conditions
	switch rule.RuleType {
	case domain.RuleDayOfWeek:
		for _, d := range c.Days {
			if strings.EqualFold(strings.TrimSpace(d), in.Weekday) {
				return true
			}
		}
		return false
	case domain.RuleTimeOfDay:
		if c.StartHour == nil || c.EndHour == nil {
			return false
		}
		return in.StartHour >= *c.StartHour && in.StartHour < *c.EndHour
	case domain.RuleLastMinute:
		return in.HoursUntil < c.HoursNotice
	case domain.RuleDistance:
		return in.DistanceMiles >= c.MinMiles
	case domain.RuleHoliday:
		for _, d := range c.Dates {
			if d == in.Date {
				return true
			}
		}
		return false
	case domain.RuleFirstBookingDiscount:
		return in.FirstBooking != nil && in.FirstBooking()
	default:
		return false
	}
}
