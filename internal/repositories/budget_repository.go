package repositories

import (
	"errors"
	"fmt"
	"time"

	"smartbudget/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBudgetNotFound = errors.New("budget not found")

// BudgetRepository handles database operations for budgets
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &BudgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database
func (r *BudgetRepository) Create(budget *models.Budget) error {
	if budget == nil {
		return errors.New("budget cannot be nil")
	}

	if err := r.db.Create(budget).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// GetByID retrieves a budget by ID, scoped to the owning user. Budgets owned
// by other users come back as not found.
func (r *BudgetRepository) GetByID(userID, id uuid.UUID) (*models.Budget, error) {
	var budget models.Budget

	if err := r.db.Preload("Category").Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget by ID: %w", err)
	}

	return &budget, nil
}

// GetByUserID retrieves all budgets belonging to a user, newest window first
func (r *BudgetRepository) GetByUserID(userID uuid.UUID) ([]models.Budget, error) {
	var budgets []models.Budget

	if err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("start_date DESC, created_at DESC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for user: %w", err)
	}

	return budgets, nil
}

// GetActiveByUserID retrieves budgets whose [start_date, end_date) window
// contains the given instant.
func (r *BudgetRepository) GetActiveByUserID(userID uuid.UUID, now time.Time) ([]models.Budget, error) {
	var budgets []models.Budget

	if err := r.db.Preload("Category").
		Where("user_id = ? AND start_date <= ? AND end_date > ?", userID, now, now).
		Order("start_date DESC, created_at DESC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get active budgets for user: %w", err)
	}

	return budgets, nil
}

// UpdateFields applies a partial update to a budget owned by the user
func (r *BudgetRepository) UpdateFields(userID, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.db.Model(&models.Budget{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update budget: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}

	return nil
}

// Delete removes a budget owned by the user
func (r *BudgetRepository) Delete(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrBudgetNotFound
	}

	return nil
}

// CountOverlapping counts the user's budgets for a category whose windows
// intersect [start, end). excludeID skips the budget being updated; pass
// uuid.Nil on create.
func (r *BudgetRepository) CountOverlapping(userID, categoryID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error) {
	var count int64

	query := r.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("start_date < ? AND end_date > ?", end, start)

	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overlapping budgets: %w", err)
	}

	return count, nil
}

// CountByCategoryID counts the user's budgets referencing a category
func (r *BudgetRepository) CountByCategoryID(userID, categoryID uuid.UUID) (int64, error) {
	var count int64

	if err := r.db.Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count budgets by category: %w", err)
	}

	return count, nil
}
