package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smartbudget/internal/config"
	"smartbudget/internal/dto"
	"smartbudget/internal/models"
	"smartbudget/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrBudgetConflict = errors.New("a budget for this category already covers part of this window")
)

// BudgetService handles the budget lifecycle. The budget window is always
// derived server-side from the period kind and anchor date, and every spend
// figure in a response is recomputed from the expense table at call time.
type BudgetService struct {
	budgetRepo   repositories.BudgetRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	expenseRepo  repositories.ExpenseRepositoryInterface
	cfg          config.BudgetConfig
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	cfg config.BudgetConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
		cfg:          cfg,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateBudget creates a budget for one of the user's categories
func (s *BudgetService) CreateBudget(userID uuid.UUID, req *dto.CreateBudgetRequest) (*dto.BudgetResponse, error) {
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

	period, err := models.ParsePeriod(req.Period)
	if err != nil {
		return nil, err
	}

	anchor, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, models.ErrInvalidDate
	}

	start, end, err := models.ComputeWindow(period, anchor)
	if err != nil {
		return nil, err
	}

	limit := decimal.NewFromFloat(req.Limit)
	if limit.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidLimit
	}

	if err := s.checkOverlap(userID, categoryID, start, end, uuid.Nil); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Limit:      limit,
		Spent:      decimal.Zero,
		Period:     period,
		StartDate:  start,
		EndDate:    end,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	budget.Category = *category

	// Expenses recorded before the budget existed still count against it
	spent, err := s.spentFor(budget)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementCounter("budget.created", map[string]string{"period": period})
	s.logger.Info("budget created",
		"user_id", userID,
		"budget_id", budget.ID,
		"category_id", categoryID,
		"period", period,
		"limit", limit.String())

	return buildBudgetResponse(budget, spent, time.Now()), nil
}

// GetBudget returns a single budget with derived spend figures
func (s *BudgetService) GetBudget(userID, budgetID uuid.UUID) (*dto.BudgetResponse, error) {
	budget, err := s.fetchBudget(userID, budgetID)
	if err != nil {
		return nil, err
	}

	spent, err := s.spentFor(budget)
	if err != nil {
		return nil, err
	}

	return buildBudgetResponse(budget, spent, time.Now()), nil
}

// ListBudgets returns the user's budgets with derived spend figures. With
// activeOnly set, only budgets whose window contains the current instant are
// returned.
func (s *BudgetService) ListBudgets(userID uuid.UUID, activeOnly bool) ([]dto.BudgetResponse, error) {
	var budgets []models.Budget
	var err error

	now := time.Now()
	if activeOnly {
		budgets, err = s.budgetRepo.GetActiveByUserID(userID, now)
	} else {
		budgets, err = s.budgetRepo.GetByUserID(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	responses := make([]dto.BudgetResponse, 0, len(budgets))
	for i := range budgets {
		budget := &budgets[i]
		spent, err := s.spentFor(budget)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *buildBudgetResponse(budget, spent, now))
	}

	return responses, nil
}

// UpdateBudget applies a partial update. Changing the period or anchor date
// recomputes the window from scratch; the end date can never be set directly.
func (s *BudgetService) UpdateBudget(userID, budgetID uuid.UUID, req *dto.UpdateBudgetRequest) (*dto.BudgetResponse, error) {
	budget, err := s.fetchBudget(userID, budgetID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	categoryID := budget.CategoryID
	if req.CategoryID != nil {
		newCategoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if newCategoryID != budget.CategoryID {
			if _, err := s.categoryRepo.GetByID(userID, newCategoryID); err != nil {
				if errors.Is(err, repositories.ErrCategoryNotFound) {
					return nil, ErrCategoryNotFound
				}
				return nil, fmt.Errorf("failed to get category: %w", err)
			}
			categoryID = newCategoryID
			fields["category_id"] = newCategoryID
		}
	}

	if req.Limit != nil {
		limit := decimal.NewFromFloat(*req.Limit)
		if limit.LessThanOrEqual(decimal.Zero) {
			return nil, models.ErrInvalidLimit
		}
		fields["limit_amount"] = limit
	}

	period := budget.Period
	anchor := budget.StartDate
	windowChanged := false

	if req.Period != nil {
		period, err = models.ParsePeriod(*req.Period)
		if err != nil {
			return nil, err
		}
		windowChanged = period != budget.Period
	}

	if req.StartDate != nil {
		anchor, err = time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, models.ErrInvalidDate
		}
		windowChanged = windowChanged || !models.NormalizeDate(anchor).Equal(budget.StartDate)
	}

	start, end := budget.StartDate, budget.EndDate
	if windowChanged {
		start, end, err = models.ComputeWindow(period, anchor)
		if err != nil {
			return nil, err
		}
		fields["period"] = period
		fields["start_date"] = start
		fields["end_date"] = end
	}

	if len(fields) == 0 {
		spent, err := s.spentFor(budget)
		if err != nil {
			return nil, err
		}
		return buildBudgetResponse(budget, spent, time.Now()), nil
	}

	if _, moved := fields["category_id"]; moved || windowChanged {
		if err := s.checkOverlap(userID, categoryID, start, end, budgetID); err != nil {
			return nil, err
		}
	}

	fields["updated_at"] = time.Now()

	if err := s.budgetRepo.UpdateFields(userID, budgetID, fields); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	updated, err := s.fetchBudget(userID, budgetID)
	if err != nil {
		return nil, err
	}

	spent, err := s.spentFor(updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget updated",
		"user_id", userID,
		"budget_id", budgetID,
		"changed_fields", len(fields)-1)

	return buildBudgetResponse(updated, spent, time.Now()), nil
}

// DeleteBudget removes a budget. Expenses are never touched; they belong to
// the category, not the budget.
func (s *BudgetService) DeleteBudget(userID, budgetID uuid.UUID) error {
	if err := s.budgetRepo.Delete(userID, budgetID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	s.metrics.IncrementCounter("budget.deleted", nil)
	s.logger.Info("budget deleted",
		"user_id", userID,
		"budget_id", budgetID)

	return nil
}

func (s *BudgetService) fetchBudget(userID, budgetID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByID(userID, budgetID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

func (s *BudgetService) spentFor(budget *models.Budget) (decimal.Decimal, error) {
	spent, err := s.expenseRepo.SumByCategoryAndWindow(budget.UserID, budget.CategoryID, budget.StartDate, budget.EndDate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for budget: %w", err)
	}
	return spent, nil
}

func (s *BudgetService) checkOverlap(userID, categoryID uuid.UUID, start, end time.Time, excludeID uuid.UUID) error {
	if !s.cfg.SinglePerPeriod {
		return nil
	}

	count, err := s.budgetRepo.CountOverlapping(userID, categoryID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping budgets: %w", err)
	}
	if count > 0 {
		return ErrBudgetConflict
	}
	return nil
}

func buildBudgetResponse(budget *models.Budget, spent decimal.Decimal, now time.Time) *dto.BudgetResponse {
	return &dto.BudgetResponse{
		ID:              budget.ID.String(),
		CategoryID:      budget.CategoryID.String(),
		Category:        budget.Category.Name,
		Limit:           budget.Limit,
		Spent:           spent,
		Remaining:       budget.Remaining(spent),
		ProgressPercent: budget.ProgressPercent(spent),
		Period:          budget.Period,
		StartDate:       budget.StartDate,
		EndDate:         budget.EndDate,
		IsActive:        budget.IsActiveAt(now),
		CreatedAt:       budget.CreatedAt,
		UpdatedAt:       budget.UpdatedAt,
	}
}
