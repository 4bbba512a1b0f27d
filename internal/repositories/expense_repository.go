package repositories

import (
	"errors"
	"fmt"
	"time"

	"smartbudget/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &ExpenseRepository{
		db: db,
	}
}

// Create creates a new expense in the database
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// GetByID retrieves an expense by ID, scoped to the owning user
func (r *ExpenseRepository) GetByID(userID, id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense

	if err := r.db.Preload("Category").Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}

	return &expense, nil
}

// GetByUserID retrieves a user's expenses with optional category and date
// filters, most recent first.
func (r *ExpenseRepository) GetByUserID(userID uuid.UUID, filters models.ExpenseFilters) ([]models.Expense, error) {
	var expenses []models.Expense

	query := r.db.Preload("Category").Where("user_id = ?", userID)

	if filters.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.StartDate != nil {
		query = query.Where("expense_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("expense_date < ?", *filters.EndDate)
	}

	if err := query.Order("expense_date DESC, created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses for user: %w", err)
	}

	return expenses, nil
}

// Update saves a modified expense
func (r *ExpenseRepository) Update(expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	if err := r.db.Save(expense).Error; err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete removes an expense owned by the user
func (r *ExpenseRepository) Delete(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// SumByCategoryAndWindow totals a user's expense amounts for one category
// inside the half-open window [start, end). A window with no expenses sums
// to zero, not an error.
func (r *ExpenseRepository) SumByCategoryAndWindow(userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := r.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("expense_date >= ? AND expense_date < ?", start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for window: %w", err)
	}

	return result.Total, nil
}

// GetByDateRange retrieves a user's expenses with dates in [start, end),
// most recent first.
func (r *ExpenseRepository) GetByDateRange(userID uuid.UUID, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense

	if err := r.db.Preload("Category").
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?", userID, start, end).
		Order("expense_date DESC, created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get expenses by date range: %w", err)
	}

	return expenses, nil
}

// CountByCategoryID counts the user's expenses referencing a category
func (r *ExpenseRepository) CountByCategoryID(userID, categoryID uuid.UUID) (int64, error) {
	var count int64

	if err := r.db.Model(&models.Expense{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count expenses by category: %w", err)
	}

	return count, nil
}
