package services

import (
	"time"

	"smartbudget/internal/dto"
	"smartbudget/internal/models"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.UserProfileResponse, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetProfile(userID uuid.UUID) (*dto.UserProfileResponse, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// CategoryServiceInterface defines spending category operations. All
// operations are scoped to the requesting user.
type CategoryServiceInterface interface {
	CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(userID uuid.UUID) ([]dto.CategoryResponse, error)
	DeleteCategory(userID, categoryID uuid.UUID) error
}

// BudgetServiceInterface defines the budget lifecycle operations. Responses
// carry spend figures derived from the expense table at call time.
type BudgetServiceInterface interface {
	CreateBudget(userID uuid.UUID, req *dto.CreateBudgetRequest) (*dto.BudgetResponse, error)
	GetBudget(userID, budgetID uuid.UUID) (*dto.BudgetResponse, error)
	ListBudgets(userID uuid.UUID, activeOnly bool) ([]dto.BudgetResponse, error)
	UpdateBudget(userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*dto.BudgetResponse, error)
	DeleteBudget(userID, budgetID uuid.UUID) error
}

// ExpenseServiceInterface defines expense recording and retrieval operations
type ExpenseServiceInterface interface {
	CreateExpense(userID uuid.UUID, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	GetExpense(userID, expenseID uuid.UUID) (*dto.ExpenseResponse, error)
	ListExpenses(userID uuid.UUID, query *dto.ListExpensesQuery) ([]dto.ExpenseResponse, error)
	UpdateExpense(userID, expenseID uuid.UUID, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error)
	DeleteExpense(userID, expenseID uuid.UUID) error
}

// DashboardServiceInterface composes the monthly dashboard payload
type DashboardServiceInterface interface {
	GetDashboard(userID uuid.UUID, now time.Time) (*dto.DashboardResponse, error)
}

// SampleDataGeneratorInterface generates realistic sample data for
// development environments
type SampleDataGeneratorInterface interface {
	GenerateCategories(userID uuid.UUID) []*models.Category
	GenerateBudgets(userID uuid.UUID, categories []*models.Category, anchor time.Time) []*models.Budget
	GenerateExpenses(userID uuid.UUID, categories []*models.Category, startDate, endDate time.Time, count int) []*models.Expense
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
