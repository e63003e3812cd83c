package pricing

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
	"puretask/internal/pkg/validator"
	"puretask/internal/repository"
)

type dayConditions struct {
	Days []string `validate:"required,min=1,dive,weekday"`
}

type hourConditions struct {
	StartHour *int `validate:"required,min=0,max=23"`
	EndHour   *int `validate:"required,min=1,max=24"`
}

type noticeConditions struct {
	HoursNotice float64 `validate:"gt=0"`
}

type distanceConditions struct {
	MinMiles float64 `validate:"gte=0"`
}

type holidayConditions struct {
	Dates []string `validate:"required,min=1,dive,isodate"`
}

func validateRule(req RuleRequest) error {
	fields := map[string]string{}
	if !req.RuleType.Known() {
		fields["rule_type"] = "unknown"
	}
	if !req.Multiplier.GreaterThan(decimal.Zero) {
		fields["multiplier"] = "gt"
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		fields["display_name"] = "required"
	}

	c := req.Conditions
	var target interface{}
	switch req.RuleType {
	case domain.RuleDayOfWeek:
		target = dayConditions{Days: c.Days}
	case domain.RuleTimeOfDay:
		target = hourConditions{StartHour: c.StartHour, EndHour: c.EndHour}
	case domain.RuleLastMinute:
		target = noticeConditions{HoursNotice: c.HoursNotice}
	case domain.RuleDistance:
		target = distanceConditions{MinMiles: c.MinMiles}
	case domain.RuleHoliday:
		target = holidayConditions{Dates: c.Dates}
	}
	if target != nil {
		for k, v := range validator.Validate(target) {
			fields["conditions."+k] = v
		}
	}
	if req.RuleType == domain.RuleTimeOfDay && c.StartHour != nil && c.EndHour != nil && *c.StartHour >= *c.EndHour {
		fields["conditions.EndHour"] = "gtfield"
	}

	if len(fields) > 0 {
		return &RuleValidationError{Fields: fields}
	}
	return nil
}

func (s *Service) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	return s.rules.List(ctx)
}

func (s *Service) CreateRule(ctx context.Context, req RuleRequest) (*domain.PricingRule, error) {
	if err := validateRule(req); err != nil {
		return nil, err
	}
	rule := &domain.PricingRule{
		RuleType:    req.RuleType,
		Multiplier:  req.Multiplier,
		Conditions:  req.Conditions,
		Priority:    req.Priority,
		IsActive:    req.IsActive == nil || *req.IsActive,
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=pricing_rule_created rule_id=%s rule_type=%s multiplier=%s", rule.ID, rule.RuleType, rule.Multiplier.String())
	return rule, nil
}

func (s *Service) UpdateRule(ctx context.Context, id string, req RuleRequest) (*domain.PricingRule, error) {
	if err := validateRule(req); err != nil {
		return nil, err
	}
	rule, err := s.rules.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}

	rule.RuleType = req.RuleType
	rule.Multiplier = req.Multiplier
	rule.Conditions = req.Conditions
	rule.Priority = req.Priority
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := s.rules.Update(ctx, rule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	s.loggerf("level=info msg=pricing_rule_updated rule_id=%s is_active=%t", rule.ID, rule.IsActive)
	return rule, nil
}

func (s *Service) DeleteRule(ctx context.Context, id string) error {
	err := s.rules.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRuleNotFound
	}
	if err == nil {
		s.loggerf("level=info msg=pricing_rule_deleted rule_id=%s", id)
	}
	return err
}
