package syncer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/l3hner/hauspilot/model"
)

func expensesOf(amounts ...float64) []model.Expense {
	out := make([]model.Expense, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, model.Expense{Type: model.ExpenseTypeInvoice, Amount: a})
	}
	return out
}

func TestBudgetAggregates(t *testing.T) {
	expenses := expensesOf(50000, 75000)

	require.Equal(t, 125000.0, TotalExpenses(expenses))
	require.Equal(t, 275000.0, RemainingBudget(400000, expenses))
	require.Equal(t, 31, BudgetUsedPercent(400000, expenses))
}

func TestBudgetUsedPercentClamped(t *testing.T) {
	over := expensesOf(1500)
	require.Equal(t, 100, BudgetUsedPercent(1000, over))
	require.Equal(t, -500.0, RemainingBudget(1000, over))

	require.Equal(t, 0, BudgetUsedPercent(1000, nil))
	require.Equal(t, 100, BudgetUsedPercent(0, over))
	require.Equal(t, 0, BudgetUsedPercent(0, nil))
}

func TestPhaseProgress(t *testing.T) {
	tasks := []model.Task{
		{PhaseID: "rohbau", Done: true},
		{PhaseID: "rohbau"},
		{PhaseID: "rohbau"},
		{PhaseID: "dach", Done: true},
	}

	require.Equal(t, 33, PhaseProgress(tasks, "rohbau"))
	require.Equal(t, 100, PhaseProgress(tasks, "dach"))
	require.Equal(t, 0, PhaseProgress(tasks, "innenausbau"))
	require.Equal(t, 0, PhaseProgress(nil, "rohbau"))
}

func TestOverallProgress(t *testing.T) {
	require.Equal(t, 10, OverallProgress("erstberatung"))
	require.Equal(t, 60, OverallProgress("rohbau"))
	require.Equal(t, 100, OverallProgress("endabnahme"))
	require.Equal(t, 0, OverallProgress("unbekannt"))
}
