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

// CategoryHandler handles spending category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory creates a new spending category for the authenticated user
//
// Method: POST /api/v1/categories
// Authentication: Required (JWT)
//
// Success Response: 201 Created with the new category
//
// Error Responses:
//   - 400: Invalid request body or blank name
//   - 401: Missing or invalid token
//   - 422: Name already used by this user - CATEGORY_002
//   - 500: System error
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	category, err := h.categoryService.CreateCategory(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNameTaken):
			return SendError(c, apierrors.CategoryAlreadyExists)
		case errors.Is(err, models.ErrCategoryNameRequired):
			return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Category name must not be blank"))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    category,
		Message: "Category created successfully",
	})
}

// ListCategories returns all categories owned by the authenticated user
//
// Method: GET /api/v1/categories
// Authentication: Required (JWT)
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: categories,
	})
}

// DeleteCategory removes a category that has no budgets or expenses
//
// Method: DELETE /api/v1/categories/:id
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 404: Category not found or not owned - CATEGORY_001
//   - 422: Category referenced by budgets or expenses - CATEGORY_003
//   - 500: System error
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	categoryID, err := getUUIDParam(c, "id")
	if err != nil {
		return SendError(c, apierrors.CategoryNotFound)
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return SendError(c, apierrors.CategoryNotFound)
		case errors.Is(err, services.ErrCategoryInUse):
			return SendError(c, apierrors.CategoryInUse)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Category deleted successfully",
	})
}
