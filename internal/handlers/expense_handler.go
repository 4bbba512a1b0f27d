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

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// CreateExpense records an expense against one of the user's categories
//
// Method: POST /api/v1/expenses
// Authentication: Required (JWT)
//
// Success Response: 201 Created with the recorded expense
//
// Error Responses:
//   - 400: Invalid body, amount, or date
//   - 401: Missing or invalid token
//   - 404: Category not found or not owned - CATEGORY_001
//   - 500: System error
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.CreateExpense(userID, &req)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    expense,
		Message: "Expense recorded successfully",
	})
}

// ListExpenses returns the user's expenses newest first, optionally
// filtered by category and date range
//
// Method: GET /api/v1/expenses?categoryId=&startDate=&endDate=
// Authentication: Required (JWT)
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var query dto.ListExpensesQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(query); err != nil {
		return err
	}

	expenses, err := h.expenseService.ListExpenses(userID, &query)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: expenses,
	})
}

// GetExpense returns a single expense
//
// Method: GET /api/v1/expenses/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 404: Expense not found or not owned - EXPENSE_001
//   - 500: System error
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	expenseID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ExpenseNotFound)
	}

	expense, err := h.expenseService.GetExpense(userID, expenseID)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: expense,
	})
}

// UpdateExpense applies a partial update to an expense
//
// Method: PUT /api/v1/expenses/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 400: Invalid body, amount, or date
//   - 401: Missing or invalid token
//   - 404: Expense or target category not found
//   - 500: System error
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	expenseID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ExpenseNotFound)
	}

	var req dto.UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, &req)
	if err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    expense,
		Message: "Expense updated successfully",
	})
}

// DeleteExpense removes an expense
//
// Method: DELETE /api/v1/expenses/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 404: Expense not found or not owned - EXPENSE_001
//   - 500: System error
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	expenseID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.ExpenseNotFound)
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		return h.mapExpenseError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Expense deleted successfully",
	})
}

// mapExpenseError translates expense service sentinels into API error codes
func (h *ExpenseHandler) mapExpenseError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrExpenseNotFound):
		return SendError(c, apierrors.ExpenseNotFound)
	case errors.Is(err, services.ErrCategoryNotFound):
		return SendError(c, apierrors.CategoryNotFound)
	case errors.Is(err, models.ErrInvalidAmount):
		return SendError(c, apierrors.ExpenseInvalidAmount)
	case errors.Is(err, models.ErrInvalidDate):
		return SendError(c, apierrors.ValidationInvalidDate)
	default:
		return SendSystemError(c, err)
	}
}
