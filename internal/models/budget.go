package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidLimit    = errors.New("budget limit must be positive")
	ErrNegativeSpent   = errors.New("budget spent cannot be negative")
	ErrMissingOwner    = errors.New("budget user ID is required")
	ErrMissingCategory = errors.New("budget category ID is required")
	ErrInvalidWindow   = errors.New("budget end date must follow start date")
)

// Budget is a recurring spending limit for one category over a fixed window.
// EndDate is always derived from Period and StartDate via ComputeWindow; the
// window is half-open, [StartDate, EndDate). Spent is a denormalized hint
// refreshed on read from the expense table and is never authoritative.
type Budget struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Limit      decimal.Decimal `gorm:"type:decimal(15,2);not null;column:limit_amount" json:"limit"`
	Spent      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"spent"`
	Period     string          `gorm:"type:varchar(10);not null" json:"period"`
	StartDate  time.Time       `gorm:"type:date;not null;index" json:"startDate"`
	EndDate    time.Time       `gorm:"type:date;not null;index" json:"endDate"`
	CreatedAt  time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updatedAt"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = now
	}

	return b.Validate()
}

// BeforeUpdate hook for Budget
func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty struct; field validation happened in
	// the service before the write was issued.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return b.Validate()
}

// Validate checks the structural invariants of a budget row
func (b *Budget) Validate() error {
	if b.UserID == uuid.Nil {
		return ErrMissingOwner
	}
	if b.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}
	if b.Limit.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidLimit
	}
	if b.Spent.IsNegative() {
		return ErrNegativeSpent
	}
	if !IsValidPeriod(b.Period) {
		return ErrInvalidPeriod
	}
	if !b.EndDate.After(b.StartDate) {
		return ErrInvalidWindow
	}
	return nil
}

// IsActiveAt reports whether now falls inside the budget's half-open window.
// Active is a query-time predicate, not a stored state.
func (b *Budget) IsActiveAt(now time.Time) bool {
	return !now.Before(b.StartDate) && now.Before(b.EndDate)
}

// Remaining returns limit minus the given spent figure. A negative result is
// a valid over-budget state, not an error.
func (b *Budget) Remaining(spent decimal.Decimal) decimal.Decimal {
	return b.Limit.Sub(spent)
}

// ProgressPercent expresses spent as a percentage of the limit, clamped to
// [0, 100]. Returns 0 when the limit is not positive so display code never
// divides by zero.
func (b *Budget) ProgressPercent(spent decimal.Decimal) float64 {
	if b.Limit.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	pct, _ := spent.Div(b.Limit).Mul(decimal.NewFromInt(100)).Float64()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}
