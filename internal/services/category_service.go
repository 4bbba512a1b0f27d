package services

import (
	"errors"
	"fmt"
	"log/slog"

	"smartbudget/internal/dto"
	"smartbudget/internal/models"
	"smartbudget/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category with this name already exists")
	ErrCategoryInUse     = errors.New("category is referenced by budgets or expenses")
)

// CategoryService handles spending category business logic. Category names
// are unique per user ignoring case and surrounding whitespace, and a
// category referenced by any budget or expense cannot be deleted.
type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	budgetRepo   repositories.BudgetRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo: categoryRepo,
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		logger:       logger,
	}
}

// CreateCategory creates a new category for the user
func (s *CategoryService) CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	normalized := models.NormalizeCategoryName(req.Name)
	if normalized == "" {
		return nil, models.ErrCategoryNameRequired
	}

	existing, err := s.categoryRepo.GetByNormalizedName(userID, normalized)
	if err != nil && !errors.Is(err, repositories.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryNameTaken
	}

	category := &models.Category{
		UserID: userID,
		Name:   req.Name,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		// The unique index on (user_id, LOWER(name)) closes the race between
		// the lookup above and this insert.
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created",
		"user_id", userID,
		"category_id", category.ID,
		"name", category.Name)

	return buildCategoryResponse(category), nil
}

// ListCategories returns all categories owned by the user, sorted by name
func (s *CategoryService) ListCategories(userID uuid.UUID) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *buildCategoryResponse(&categories[i]))
	}

	return responses, nil
}

// DeleteCategory removes a category that has no budgets or expenses
// referencing it
func (s *CategoryService) DeleteCategory(userID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(userID, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	budgetCount, err := s.budgetRepo.CountByCategoryID(userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count budgets for category: %w", err)
	}

	expenseCount, err := s.expenseRepo.CountByCategoryID(userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to count expenses for category: %w", err)
	}

	if budgetCount > 0 || expenseCount > 0 {
		s.logger.Warn("rejected delete of referenced category",
			"user_id", userID,
			"category_id", categoryID,
			"budget_count", budgetCount,
			"expense_count", expenseCount)
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(userID, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted",
		"user_id", userID,
		"category_id", categoryID)

	return nil
}

func buildCategoryResponse(category *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}
