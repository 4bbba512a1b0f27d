package services

import (
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

// DashboardService composes the monthly overview: headline totals, active
// budgets with derived figures, per-category totals, weekly spending buckets,
// and the most recent expenses. Everything is scoped to the calendar month
// containing the reference instant, in UTC.
type DashboardService struct {
	budgetRepo  repositories.BudgetRepositoryInterface
	expenseRepo repositories.ExpenseRepositoryInterface
	cfg         config.BudgetConfig
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	budgetRepo repositories.BudgetRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	cfg config.BudgetConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		cfg:         cfg,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetDashboard builds the dashboard payload for the month containing now
func (s *DashboardService) GetDashboard(userID uuid.UUID, now time.Time) (*dto.DashboardResponse, error) {
	started := time.Now()

	monthStart, monthEnd := monthWindow(now)

	expenses, err := s.expenseRepo.GetByDateRange(userID, monthStart, monthEnd)
	if err != nil {
		s.metrics.IncrementCounter("dashboard.request", map[string]string{"status": "failed"})
		return nil, fmt.Errorf("failed to load month expenses: %w", err)
	}

	budgets, err := s.budgetRepo.GetActiveByUserID(userID, now)
	if err != nil {
		s.metrics.IncrementCounter("dashboard.request", map[string]string{"status": "failed"})
		return nil, fmt.Errorf("failed to load active budgets: %w", err)
	}

	view := dto.EmptyDashboardResponse(models.WeeklyBucketCount)

	totalBudget := decimal.Zero
	for i := range budgets {
		budget := &budgets[i]
		spent, err := s.expenseRepo.SumByCategoryAndWindow(userID, budget.CategoryID, budget.StartDate, budget.EndDate)
		if err != nil {
			s.metrics.IncrementCounter("dashboard.request", map[string]string{"status": "failed"})
			return nil, fmt.Errorf("failed to sum expenses for budget: %w", err)
		}
		totalBudget = totalBudget.Add(budget.Limit)
		view.Budgets = append(view.Budgets, *buildBudgetResponse(budget, spent, now))
	}

	totalSpent := decimal.Zero
	for i := range expenses {
		expense := &expenses[i]
		totalSpent = totalSpent.Add(expense.Amount)

		name := expense.Category.Name
		view.CategoryTotals[name] = view.CategoryTotals[name].Add(expense.Amount)

		bucket := models.WeeklyBucketIndex(expense.ExpenseDate.Day())
		view.WeeklyTotals[bucket] = view.WeeklyTotals[bucket].Add(expense.Amount)

		view.Expenses = append(view.Expenses, *buildExpenseResponse(expense))
	}

	// The repository orders newest first, so the head of the list is the
	// recent slice.
	recentLimit := s.cfg.RecentExpensesLimit
	if recentLimit < 0 {
		recentLimit = 0
	}
	if recentLimit > len(view.Expenses) {
		recentLimit = len(view.Expenses)
	}
	view.RecentExpenses = append(view.RecentExpenses, view.Expenses[:recentLimit]...)

	view.Summary = dto.DashboardSummary{
		TotalBudget:  totalBudget,
		TotalSpent:   totalSpent,
		Remaining:    totalBudget.Sub(totalSpent),
		ExpenseCount: len(expenses),
	}

	s.metrics.IncrementCounter("dashboard.request", map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime("dashboard.compose", time.Since(started))
	s.logger.Info("dashboard composed",
		"user_id", userID,
		"active_budgets", len(budgets),
		"month_expenses", len(expenses),
		"total_spent", totalSpent.String())

	return view, nil
}

// monthWindow returns the half-open [first of month, first of next month)
// window containing t, at midnight UTC.
func monthWindow(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
