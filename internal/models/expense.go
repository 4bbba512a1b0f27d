package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount      = errors.New("expense amount must be positive")
	ErrMissingExpenseDate = errors.New("expense date is required")
)

const maxNoteLength = 500

// Expense is a single spending record. Expenses reference a category, never a
// budget; they are matched to budget windows at query time by date range.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	ExpenseDate time.Time       `gorm:"type:date;not null;index" json:"expenseDate"`
	Note        string          `gorm:"type:varchar(500)" json:"note,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}

// BeforeCreate hook for Expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	return e.Validate()
}

// BeforeUpdate hook for Expense
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}
	return e.Validate()
}

// Validate checks the structural invariants of an expense row
func (e *Expense) Validate() error {
	if e.UserID == uuid.Nil {
		return errors.New("expense user ID is required")
	}
	if e.CategoryID == uuid.Nil {
		return errors.New("expense category ID is required")
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if e.ExpenseDate.IsZero() {
		return ErrMissingExpenseDate
	}
	if len(e.Note) > maxNoteLength {
		return errors.New("expense note too long")
	}
	return nil
}

// InWindow reports whether the expense date falls inside [start, end)
func (e *Expense) InWindow(start, end time.Time) bool {
	d := NormalizeDate(e.ExpenseDate)
	return !d.Before(start) && d.Before(end)
}

// TableName returns the table name for Expense
func (e *Expense) TableName() string {
	return "expenses"
}

// ExpenseFilters narrows expense listings. Zero values mean "no filter".
type ExpenseFilters struct {
	CategoryID uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
