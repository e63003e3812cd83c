package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"puretask/internal/domain"
)

const (
	sourceCustom   = "custom"
	sourceStandard = "standard"
)

type standardFee struct {
	group   string
	aliases []string
	amount  int64
	perUnit bool
}

var standardFees = []standardFee{
	{group: "oven", aliases: []string{"oven", "inside_oven"}, amount: 30},
	{group: "refrigerator", aliases: []string{"refrigerator", "inside_fridge"}, amount: 30},
	{group: "windows", aliases: []string{"windows"}, amount: 6, perUnit: true},
	{group: "deep_clean", aliases: []string{"deep_clean"}, amount: 80},
	{group: "laundry", aliases: []string{"laundry"}, amount: 20},
	{group: "interior_walls", aliases: []string{"interior_walls"}, amount: 40},
}

func normalizeTask(task string) string {
	t := strings.ToLower(strings.TrimSpace(task))
	t = strings.ReplaceAll(t, "-", "_")
	return strings.ReplaceAll(t, " ", "_")
}

func lookupStandard(task string) (standardFee, bool) {
	for _, f := range standardFees {
		for _, a := range f.aliases {
			if a == task {
				return f, true
			}
		}
	}
	return standardFee{}, false
}

// customPrice finds the cleaner's own price for a task, trying the task
// itself and then any alias of its standard group.
func customPrice(custom map[string]domain.ServicePrice, task string) (domain.ServicePrice, bool) {
	if len(custom) == 0 {
		return domain.ServicePrice{}, false
	}
	normalized := make(map[string]domain.ServicePrice, len(custom))
	for k, v := range custom {
		normalized[normalizeTask(k)] = v
	}
	if p, ok := normalized[task]; ok {
		return p, true
	}
	if f, ok := lookupStandard(task); ok {
		for _, a := range f.aliases {
			if p, ok := normalized[a]; ok {
				return p, true
			}
		}
	}
	return domain.ServicePrice{}, false
}

// extraFees sums flat task fees. Each task, or alias group, is charged once.
func extraFees(tasks []string, quantities map[string]int, custom map[string]domain.ServicePrice) (decimal.Decimal, []ExtraFeeLine) {
	total := decimal.Zero
	lines := make([]ExtraFeeLine, 0, len(tasks))
	charged := make(map[string]bool, len(tasks))
	qtyByTask := make(map[string]int, len(quantities))
	for k, v := range quantities {
		qtyByTask[normalizeTask(k)] = v
	}

	for _, raw := range tasks {
		task := normalizeTask(raw)
		if task == "" {
			continue
		}
		key := task
		std, isStd := lookupStandard(task)
		if isStd {
			key = std.group
		}
		if charged[key] {
			continue
		}

		qty := qtyByTask[task]
		if qty <= 0 {
			qty = 1
		}

		var line ExtraFeeLine
		if p, ok := customPrice(custom, task); ok {
			line = feeLine(task, p.Price, p.PerUnit, qty, sourceCustom)
		} else if isStd {
			line = feeLine(task, decimal.NewFromInt(std.amount), std.perUnit, qty, sourceStandard)
		} else {
			continue
		}
		charged[key] = true
		total = total.Add(line.Amount)
		lines = append(lines, line)
	}
	return total, lines
}

func feeLine(task string, unit decimal.Decimal, perUnit bool, qty int, source string) ExtraFeeLine {
	if !perUnit {
		qty = 1
	}
	return ExtraFeeLine{
		Task:      task,
		Quantity:  qty,
		UnitPrice: unit,
		Amount:    unit.Mul(decimal.NewFromInt(int64(qty))),
		Source:    source,
	}
}
