package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smartbudget/internal/dto"
	"smartbudget/internal/models"
	"smartbudget/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseService handles expense recording and retrieval. Expenses reference
// a category, never a budget; budget figures pick them up by date range.
type ExpenseService struct {
	expenseRepo  repositories.ExpenseRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateExpense records a new expense against one of the user's categories
func (s *ExpenseService) CreateExpense(userID uuid.UUID, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	category, err := s.categoryRepo.GetByID(userID, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	amount := decimal.NewFromFloat(req.Amount)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidAmount
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return nil, models.ErrInvalidDate
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		ExpenseDate: models.NormalizeDate(expenseDate),
		Note:        req.Note,
	}

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	expense.Category = *category

	s.metrics.IncrementCounter("expense.recorded", nil)
	s.metrics.RecordGauge("expense_amount", req.Amount, nil)
	s.logger.Info("expense recorded",
		"user_id", userID,
		"expense_id", expense.ID,
		"category_id", categoryID,
		"amount", amount.String())

	return buildExpenseResponse(expense), nil
}

// GetExpense returns a single expense owned by the user
func (s *ExpenseService) GetExpense(userID, expenseID uuid.UUID) (*dto.ExpenseResponse, error) {
	expense, err := s.fetchExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	return buildExpenseResponse(expense), nil
}

// ListExpenses returns the user's expenses, newest first, optionally filtered
// by category and date range
func (s *ExpenseService) ListExpenses(userID uuid.UUID, query *dto.ListExpensesQuery) ([]dto.ExpenseResponse, error) {
	filters, err := buildExpenseFilters(query)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.GetByUserID(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, *buildExpenseResponse(&expenses[i]))
	}

	return responses, nil
}

// UpdateExpense applies a partial update to an expense
func (s *ExpenseService) UpdateExpense(userID, expenseID uuid.UUID, req *dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := s.fetchExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		newCategoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if newCategoryID != expense.CategoryID {
			if _, err := s.categoryRepo.GetByID(userID, newCategoryID); err != nil {
				if errors.Is(err, repositories.ErrCategoryNotFound) {
					return nil, ErrCategoryNotFound
				}
				return nil, fmt.Errorf("failed to get category: %w", err)
			}
			expense.CategoryID = newCategoryID
		}
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		if amount.LessThanOrEqual(decimal.Zero) {
			return nil, models.ErrInvalidAmount
		}
		expense.Amount = amount
	}

	if req.ExpenseDate != nil {
		expenseDate, err := time.Parse("2006-01-02", *req.ExpenseDate)
		if err != nil {
			return nil, models.ErrInvalidDate
		}
		expense.ExpenseDate = models.NormalizeDate(expenseDate)
	}

	if req.Note != nil {
		expense.Note = *req.Note
	}

	if err := s.expenseRepo.Update(expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	// Re-read so the response carries the right category after a move
	updated, err := s.fetchExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("expense updated",
		"user_id", userID,
		"expense_id", expenseID)

	return buildExpenseResponse(updated), nil
}

// DeleteExpense removes an expense owned by the user
func (s *ExpenseService) DeleteExpense(userID, expenseID uuid.UUID) error {
	if err := s.expenseRepo.Delete(userID, expenseID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.logger.Info("expense deleted",
		"user_id", userID,
		"expense_id", expenseID)

	return nil
}

func (s *ExpenseService) fetchExpense(userID, expenseID uuid.UUID) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(userID, expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

func buildExpenseFilters(query *dto.ListExpensesQuery) (models.ExpenseFilters, error) {
	var filters models.ExpenseFilters
	if query == nil {
		return filters, nil
	}

	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			return filters, ErrCategoryNotFound
		}
		filters.CategoryID = categoryID
	}

	if query.StartDate != "" {
		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return filters, models.ErrInvalidDate
		}
		normalized := models.NormalizeDate(start)
		filters.StartDate = &normalized
	}

	if query.EndDate != "" {
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return filters, models.ErrInvalidDate
		}
		normalized := models.NormalizeDate(end)
		filters.EndDate = &normalized
	}

	return filters, nil
}

func buildExpenseResponse(expense *models.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          expense.ID.String(),
		CategoryID:  expense.CategoryID.String(),
		Category:    expense.Category.Name,
		Amount:      expense.Amount,
		ExpenseDate: expense.ExpenseDate,
		Note:        expense.Note,
		CreatedAt:   expense.CreatedAt,
	}
}
