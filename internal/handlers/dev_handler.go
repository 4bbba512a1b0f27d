package handlers

import (
	"net/http"
	"time"

	"smartbudget/internal/models"
	"smartbudget/internal/repositories"
	"smartbudget/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	categoryRepo repositories.CategoryRepositoryInterface
	budgetRepo   repositories.BudgetRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	generator    services.SampleDataGeneratorInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	categoryRepo repositories.CategoryRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
) *DevHandler {
	return &DevHandler{
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		generator:    services.NewSampleDataGenerator(),
	}
}

// GenerateSampleData seeds the authenticated user with sample categories,
// a monthly budget per category, and a spread of random expenses
//
// Method: POST /api/v1/dev/sample-data
// Authentication: Required (JWT)
// Environment: Development only
//
// Query parameters:
//   - count: Number of expenses to generate (default: 50, max: 500)
//   - days: Number of days of history to generate (default: 30, max: 365)
//
// Success Response: 200 OK
//   - categories_created: Number of new categories created
//   - budgets_created: Number of budgets created
//   - expenses_created: Number of expenses created
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 500: System error
func (h *DevHandler) GenerateSampleData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count := getIntParam(c, "count", 50)
	if count < 1 {
		count = 1
	}
	if count > 500 {
		count = 500
	}

	days := getIntParam(c, "days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	categoriesCreated := 0
	for _, category := range h.generator.GenerateCategories(userID) {
		if _, err := h.categoryRepo.GetByNormalizedName(userID, category.Name); err == nil {
			// The user already has this category
			continue
		}
		if err := h.categoryRepo.Create(category); err != nil {
			continue
		}
		categoriesCreated++
	}

	categories, err := h.categoryRepo.GetByUserID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load categories")
	}

	categoryPtrs := make([]*models.Category, 0, len(categories))
	for i := range categories {
		categoryPtrs = append(categoryPtrs, &categories[i])
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -days)

	budgetsCreated := 0
	for _, budget := range h.generator.GenerateBudgets(userID, categoryPtrs, endDate) {
		overlaps, err := h.budgetRepo.CountOverlapping(userID, budget.CategoryID, budget.StartDate, budget.EndDate, uuid.Nil)
		if err != nil || overlaps > 0 {
			// The category already has a budget this month
			continue
		}
		if err := h.budgetRepo.Create(budget); err != nil {
			continue
		}
		budgetsCreated++
	}

	created := 0
	for _, expense := range h.generator.GenerateExpenses(userID, categoryPtrs, startDate, endDate, count) {
		if err := h.expenseRepo.Create(expense); err != nil {
			continue
		}
		created++
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":            "sample data generated successfully",
		"categories_created": categoriesCreated,
		"budgets_created":    budgetsCreated,
		"expenses_created":   created,
		"date_range": map[string]string{
			"start": startDate.Format(time.RFC3339),
			"end":   endDate.Format(time.RFC3339),
		},
	})
}
