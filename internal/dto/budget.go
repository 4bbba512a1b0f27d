package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget Request DTOs

// CreateBudgetRequest contains data for creating a budget. The window is
// derived server-side from period and startDate; clients never supply an
// end date.
type CreateBudgetRequest struct {
	CategoryID string  `json:"categoryId" validate:"required,uuid"`
	Limit      float64 `json:"limit" validate:"required,money_amount"`
	Period     string  `json:"period" validate:"required,budget_period"`
	StartDate  string  `json:"startDate" validate:"required,date_only"`
}

// UpdateBudgetRequest contains partial budget updates. Nil fields are left
// unchanged; changing period or startDate recomputes the window.
type UpdateBudgetRequest struct {
	CategoryID *string  `json:"categoryId" validate:"omitempty,uuid"`
	Limit      *float64 `json:"limit" validate:"omitempty,money_amount"`
	Period     *string  `json:"period" validate:"omitempty,budget_period"`
	StartDate  *string  `json:"startDate" validate:"omitempty,date_only"`
}

// Budget Response DTOs

// BudgetResponse represents a budget with its derived spend figures
type BudgetResponse struct {
	ID              string          `json:"id"`
	CategoryID      string          `json:"categoryId"`
	Category        string          `json:"category"`
	Limit           decimal.Decimal `json:"limit"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	ProgressPercent float64         `json:"progressPercent"`
	Period          string          `json:"period"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
