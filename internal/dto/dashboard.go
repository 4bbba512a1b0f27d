package dto

import "github.com/shopspring/decimal"

// Dashboard Response DTOs

// DashboardSummary holds the headline figures for the current month
type DashboardSummary struct {
	TotalBudget  decimal.Decimal `json:"totalBudget"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	Remaining    decimal.Decimal `json:"remaining"`
	ExpenseCount int             `json:"expenseCount"`
}

// DashboardResponse is the aggregate payload for the dashboard page.
// categoryTotals is keyed by category name; weeklyTotals always has four
// entries covering days 1-7, 8-14, 15-21, and 22-end of month.
type DashboardResponse struct {
	Summary        DashboardSummary           `json:"summary"`
	Budgets        []BudgetResponse           `json:"budgets"`
	Expenses       []ExpenseResponse          `json:"expenses"`
	RecentExpenses []ExpenseResponse          `json:"recentExpenses"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
	WeeklyTotals   []decimal.Decimal          `json:"weeklyTotals"`
}

// EmptyDashboardResponse returns a zeroed payload with non-nil collections,
// the shape clients render when there is nothing to show.
func EmptyDashboardResponse(weeklyBuckets int) *DashboardResponse {
	weekly := make([]decimal.Decimal, weeklyBuckets)
	for i := range weekly {
		weekly[i] = decimal.Zero
	}

	return &DashboardResponse{
		Summary: DashboardSummary{
			TotalBudget: decimal.Zero,
			TotalSpent:  decimal.Zero,
			Remaining:   decimal.Zero,
		},
		Budgets:        []BudgetResponse{},
		Expenses:       []ExpenseResponse{},
		RecentExpenses: []ExpenseResponse{},
		CategoryTotals: map[string]decimal.Decimal{},
		WeeklyTotals:   weekly,
	}
}
