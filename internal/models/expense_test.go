package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Expense {
	return Expense{
		UserID:      uuid.New(),
		CategoryID:  uuid.New(),
		Amount:      decimal.NewFromFloat(45.67),
		ExpenseDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Note:        "groceries",
	}
}

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid expense",
			mutate: func(e *Expense) {},
		},
		{
			name:   "empty note is allowed",
			mutate: func(e *Expense) { e.Note = "" },
		},
		{
			name:    "missing user ID",
			mutate:  func(e *Expense) { e.UserID = uuid.Nil },
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name:    "missing category ID",
			mutate:  func(e *Expense) { e.CategoryID = uuid.Nil },
			wantErr: true,
			errMsg:  "category ID is required",
		},
		{
			name:    "zero amount",
			mutate:  func(e *Expense) { e.Amount = decimal.Zero },
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name:    "negative amount",
			mutate:  func(e *Expense) { e.Amount = decimal.NewFromFloat(-5.00) },
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name:    "missing expense date",
			mutate:  func(e *Expense) { e.ExpenseDate = time.Time{} },
			wantErr: true,
			errMsg:  "expense date is required",
		},
		{
			name:    "note too long",
			mutate:  func(e *Expense) { e.Note = strings.Repeat("x", 501) },
			wantErr: true,
			errMsg:  "note too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := validExpense()
			tt.mutate(&expense)

			err := expense.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExpense_BeforeCreate(t *testing.T) {
	expense := validExpense()
	require.Equal(t, uuid.Nil, expense.ID)

	err := expense.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, expense.ID)
	assert.False(t, expense.CreatedAt.IsZero())
	assert.False(t, expense.UpdatedAt.IsZero())
}

func TestExpense_InWindow(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "before window", date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: false},
		{name: "on start boundary", date: start, want: true},
		{name: "inside window", date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), want: true},
		{name: "last day of window", date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), want: true},
		{name: "on end boundary is excluded", date: end, want: false},
		{name: "timestamp inside last day counts", date: time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := validExpense()
			expense.ExpenseDate = tt.date
			assert.Equal(t, tt.want, expense.InWindow(start, end))
		})
	}
}

func TestExpense_TableName(t *testing.T) {
	expense := Expense{}
	assert.Equal(t, "expenses", expense.TableName())
}
