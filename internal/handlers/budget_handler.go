package handlers

import (
	"errors"
	"net/http"

	"smartbudget/internal/dto"
	apierrors "smartbudget/internal/errors"
	"smartbudget/internal/models"
	"smartbudget/internal/services"

	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// CreateBudget creates a budget for one of the user's categories. The
// budget window is computed server-side from the period and start date.
//
// Method: POST /api/v1/budgets
// Authentication: Required (JWT)
//
// Success Response: 201 Created with the budget and its derived spend figures
//
// Error Responses:
//   - 400: Invalid body, period, limit, or start date
//   - 401: Missing or invalid token
//   - 404: Category not found or not owned - CATEGORY_001
//   - 409: Overlapping budget for the category - BUDGET_004
//   - 500: System error
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.CreateBudget(userID, &req)
	if err != nil {
		return h.mapBudgetError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    budget,
		Message: "Budget created successfully",
	})
}

// ListBudgets returns the user's budgets, newest first. Passing
// ?active=true restricts the list to budgets whose window covers today.
//
// Method: GET /api/v1/budgets
// Authentication: Required (JWT)
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	activeOnly := getBoolParam(c, "active")

	budgets, err := h.budgetService.ListBudgets(userID, activeOnly)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: budgets,
	})
}

// GetBudget returns a single budget with fresh spend figures
//
// Method: GET /api/v1/budgets/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 404: Budget not found or not owned - BUDGET_001
//   - 500: System error
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	budgetID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.BudgetNotFound)
	}

	budget, err := h.budgetService.GetBudget(userID, budgetID)
	if err != nil {
		return h.mapBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: budget,
	})
}

// UpdateBudget applies a partial update to a budget. Changing the period
// or start date recomputes the window.
//
// Method: PUT /api/v1/budgets/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 400: Invalid body, period, limit, or start date
//   - 401: Missing or invalid token
//   - 404: Budget or target category not found
//   - 409: New window overlaps another budget - BUDGET_004
//   - 500: System error
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	budgetID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.BudgetNotFound)
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, &req)
	if err != nil {
		return h.mapBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    budget,
		Message: "Budget updated successfully",
	})
}

// DeleteBudget removes a budget. Expenses in the budget's category are
// not affected.
//
// Method: DELETE /api/v1/budgets/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 404: Budget not found or not owned - BUDGET_001
//   - 500: System error
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	budgetID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.BudgetNotFound)
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		return h.mapBudgetError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Budget deleted successfully",
	})
}

// mapBudgetError translates budget service sentinels into API error codes
func (h *BudgetHandler) mapBudgetError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrBudgetNotFound):
		return SendError(c, apierrors.BudgetNotFound)
	case errors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, apierrors.CategoryNotFound)
	case errors.Is(err, services.ErrBudgetConflict):
		return SendError(c, apierrors.BudgetPeriodConflict)
	case errors.Is(err, models.ErrInvalidPeriod):
		return SendError(c, apierrors.BudgetInvalidPeriod)
	case errors.Is(err, models.ErrInvalidLimit):
		return SendError(c, apierrors.BudgetInvalidLimit)
	case errors.Is(err, models.ErrInvalidDate):
		return SendError(c, apierrors.BudgetInvalidDate)
	default:
		return SendSystemError(c, err)
	}
}
