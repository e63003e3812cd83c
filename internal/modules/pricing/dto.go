package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
)

type QuoteRequest struct {
	CleanerID      string             `json:"cleaner_id" binding:"required"`
	ClientEmail    string             `json:"client_email" binding:"omitempty,email"`
	Date           string             `json:"date" binding:"required"`
	StartTime      string             `json:"start_time" binding:"required"`
	Hours          float64            `json:"hours" binding:"required,gt=0"`
	DistanceMiles  float64            `json:"distance_miles" binding:"gte=0"`
	ServiceType    domain.ServiceType `json:"service_type"`
	Tasks          []string           `json:"tasks"`
	TaskQuantities map[string]int     `json:"task_quantities"`
}

type AppliedMultiplier struct {
	RuleID     string          `json:"rule_id"`
	RuleType   domain.RuleType `json:"rule_type"`
	Label      string          `json:"label"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Percent    int64           `json:"percent"`
}

type ExtraFeeLine struct {
	Task      string          `json:"task"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	// Source is "custom" for the cleaner's own price table, else "standard".
	Source string `json:"source"`
}

type QuoteBreakdown struct {
	BasePrice          decimal.Decimal     `json:"base_price"`
	Multipliers        []AppliedMultiplier `json:"multipliers"`
	CombinedMultiplier decimal.Decimal     `json:"combined_multiplier"`
	ExtraFees          decimal.Decimal     `json:"extra_fees"`
	ExtraLines         []ExtraFeeLine      `json:"extra_lines"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Total              decimal.Decimal     `json:"total"`
}

type Quote struct {
	CleanerID          string              `json:"cleaner_id"`
	HourlyRate         int64               `json:"hourly_rate"`
	Hours              float64             `json:"hours"`
	NewCleanerDiscount bool                `json:"new_cleaner_discount"`
	BasePrice          decimal.Decimal     `json:"base_price"`
	AppliedMultipliers []AppliedMultiplier `json:"applied_multipliers"`
	CombinedMultiplier decimal.Decimal     `json:"combined_multiplier"`
	ExtraFees          decimal.Decimal     `json:"extra_fees"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Total              decimal.Decimal     `json:"total"`
	Breakdown          QuoteBreakdown      `json:"breakdown"`
	UsedDefaultRules   bool                `json:"used_default_rules"`
	QuotedAt           time.Time           `json:"quoted_at"`
}

// AppliedLabels returns the display labels in application order.
func (q *Quote) AppliedLabels() []string {
	out := make([]string, 0, len(q.AppliedMultipliers))
	for _, m := range q.AppliedMultipliers {
		out = append(out, m.Label)
	}
	return out
}

type RuleRequest struct {
	RuleType    domain.RuleType       `json:"rule_type" binding:"required"`
	Multiplier  decimal.Decimal       `json:"multiplier"`
	Conditions  domain.RuleConditions `json:"conditions"`
	Priority    int                   `json:"priority"`
	IsActive    *bool                 `json:"is_active"`
	DisplayName string                `json:"display_name" binding:"required,max=128"`
}
