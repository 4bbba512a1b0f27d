package repositories

import (
	"time"

	"smartbudget/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(userID, id uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
	GetByNormalizedName(userID uuid.UUID, name string) (*models.Category, error)
	Delete(userID, id uuid.UUID) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations.
// All lookups are scoped by the owning user; a budget belonging to another user
// is indistinguishable from a missing one.
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(userID, id uuid.UUID) (*models.Budget, error)
	GetByUserID(userID uuid.UUID) ([]models.Budget, error)
	GetActiveByUserID(userID uuid.UUID, now time.Time) ([]models.Budget, error)
	UpdateFields(userID, id uuid.UUID, fields map[string]interface{}) error
	Delete(userID, id uuid.UUID) error
	CountOverlapping(userID, categoryID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error)
	CountByCategoryID(userID, categoryID uuid.UUID) (int64, error)
}

// ExpenseRepositoryInterface defines the contract for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(userID, id uuid.UUID) (*models.Expense, error)
	GetByUserID(userID uuid.UUID, filters models.ExpenseFilters) ([]models.Expense, error)
	Update(expense *models.Expense) error
	Delete(userID, id uuid.UUID) error
	SumByCategoryAndWindow(userID, categoryID uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	GetByDateRange(userID uuid.UUID, start, end time.Time) ([]models.Expense, error)
	CountByCategoryID(userID, categoryID uuid.UUID) (int64, error)
}
