package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense Request DTOs

// CreateExpenseRequest contains data for recording an expense
type CreateExpenseRequest struct {
	CategoryID  string  `json:"categoryId" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,money_amount"`
	ExpenseDate string  `json:"expenseDate" validate:"required,date_only"`
	Note        string  `json:"note" validate:"max=500"`
}

// UpdateExpenseRequest contains partial expense updates
type UpdateExpenseRequest struct {
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
	Amount      *float64 `json:"amount" validate:"omitempty,money_amount"`
	ExpenseDate *string  `json:"expenseDate" validate:"omitempty,date_only"`
	Note        *string  `json:"note" validate:"omitempty,max=500"`
}

// ListExpensesQuery contains optional filters for listing expenses
type ListExpensesQuery struct {
	CategoryID string `query:"categoryId" validate:"omitempty,uuid"`
	StartDate  string `query:"startDate" validate:"omitempty,date_only"`
	EndDate    string `query:"endDate" validate:"omitempty,date_only"`
}

// Expense Response DTOs

// ExpenseResponse represents a recorded expense
type ExpenseResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"categoryId"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
