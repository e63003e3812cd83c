package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RuleType string

const (
	RuleDayOfWeek            RuleType = "day_of_week"
	RuleTimeOfDay            RuleType = "time_of_day"
	RuleLastMinute           RuleType = "last_minute"
	RuleDistance             RuleType = "distance"
	RuleHoliday              RuleType = "holiday"
	RuleFirstBookingDiscount RuleType = "first_booking_discount"
)

var KnownRuleTypes = []RuleType{
	RuleDayOfWeek,
	RuleTimeOfDay,
	RuleLastMinute,
	RuleDistance,
	RuleHoliday,
	RuleFirstBookingDiscount,
}

func (t RuleType) Known() bool {
	for _, k := range KnownRuleTypes {
		if k == t {
			return true
		}
	}
	return false
}

// RuleConditions holds the type-specific payload of a pricing rule.
// Only the fields relevant to the rule type are read.
type RuleConditions struct {
	Days        []string `json:"days,omitempty"`
	StartHour   *int     `json:"start_hour,omitempty"`
	EndHour     *int     `json:"end_hour,omitempty"`
	HoursNotice float64  `json:"hours_notice,omitempty"`
	MinMiles    float64  `json:"min_miles,omitempty"`
	Dates       []string `json:"dates,omitempty"`
}

type PricingRule struct {
	ID          string          `json:"id" gorm:"type:varchar(64);primaryKey"`
	RuleType    RuleType        `json:"rule_type" gorm:"type:varchar(32);not null;index"`
	Multiplier  decimal.Decimal `json:"multiplier" gorm:"type:numeric(6,4);not null"`
	Conditions  RuleConditions  `json:"conditions" gorm:"type:text;serializer:json"`
	Priority    int             `json:"priority" gorm:"not null;default:0;index"`
	IsActive    bool            `json:"is_active" gorm:"not null;index"`
	DisplayName string          `json:"display_name" gorm:"type:varchar(128)"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (PricingRule) TableName() string { return "pricing_rules" }
