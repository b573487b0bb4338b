package syncer

import (
	"math"

	"github.com/l3hner/hauspilot/model"
)

// Derived aggregates computed from the mirrored collections. None of these
// are persisted.

// TotalExpenses sums all budget entries regardless of type.
func TotalExpenses(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// RemainingBudget may go negative when the project runs over budget.
func RemainingBudget(budget float64, expenses []model.Expense) float64 {
	return budget - TotalExpenses(expenses)
}

// BudgetUsedPercent is clamped to [0, 100] even when expenses exceed the
// budget.
func BudgetUsedPercent(budget float64, expenses []model.Expense) int {
	total := TotalExpenses(expenses)
	if budget <= 0 {
		if total > 0 {
			return 100
		}
		return 0
	}
	pct := int(math.Round(total / budget * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// PhaseProgress is the rounded percentage of done tasks within one phase.
func PhaseProgress(tasks []model.Task, phaseID string) int {
	var total, done int
	for _, t := range tasks {
		if t.PhaseID != phaseID {
			continue
		}
		total++
		if t.Done {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// OverallProgress maps the active catalog phase to project completion:
// phase n of 10 counts as n/10.
func OverallProgress(activePhaseID string) int {
	for _, phase := range model.DefaultPhases {
		if phase.PhaseID == activePhaseID {
			return int(math.Round(float64(phase.Order) / float64(len(model.DefaultPhases)) * 100))
		}
	}
	return 0
}
