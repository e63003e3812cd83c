package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrCleanerNotFound = errors.New("cleaner profile not found")
	ErrRuleNotFound    = errors.New("pricing rule not found")
)

// RuleValidationError lists the invalid fields of a pricing rule.
type RuleValidationError struct {
	Fields map[string]string
}

func (e *RuleValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid pricing rule: " + strings.Join(parts, ", ")
}

func IsRuleValidationError(err error) *RuleValidationError {
	var rve *RuleValidationError
	if errors.As(err, &rve) {
		return rve
	}
	return nil
}
