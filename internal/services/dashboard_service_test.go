package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"smartbudget/internal/config"
	"smartbudget/internal/models"
	"smartbudget/internal/repositories/repository_mocks"
	"smartbudget/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	budgetRepo  *repository_mocks.MockBudgetRepositoryInterface
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	metrics     *service_mocks.MockMetricsRecorderInterface
	service     DashboardServiceInterface
	userID      uuid.UUID
	now         time.Time
	monthStart  time.Time
	monthEnd    time.Time
}

func (s *DashboardServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.budgetRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)

	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordGauge(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewDashboardService(s.budgetRepo, s.expenseRepo,
		config.BudgetConfig{RecentExpensesLimit: 2}, s.metrics, logger)

	s.userID = uuid.New()
	s.now = time.Date(2025, 3, 18, 14, 30, 0, 0, time.UTC)
	s.monthStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s.monthEnd = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func (s *DashboardServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) expense(categoryID uuid.UUID, categoryName, amount string, day int) models.Expense {
	return models.Expense{
		ID:          uuid.New(),
		UserID:      s.userID,
		CategoryID:  categoryID,
		Amount:      decimal.RequireFromString(amount),
		ExpenseDate: time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		Category:    models.Category{ID: categoryID, UserID: s.userID, Name: categoryName},
	}
}

func (s *DashboardServiceSuite) TestGetDashboard_ComposesMonthView() {
	groceriesID := uuid.New()
	transportID := uuid.New()

	budget := models.Budget{
		ID:         uuid.New(),
		UserID:     s.userID,
		CategoryID: groceriesID,
		Limit:      decimal.NewFromFloat(400.00),
		Period:     models.PeriodMonthly,
		StartDate:  s.monthStart,
		EndDate:    s.monthEnd,
		Category:   models.Category{ID: groceriesID, UserID: s.userID, Name: "Groceries"},
	}

	// Ordered newest first, as the repository returns them
	expenses := []models.Expense{
		s.expense(groceriesID, "Groceries", "52.34", 22),
		s.expense(transportID, "Transport", "12.00", 15),
		s.expense(groceriesID, "Groceries", "45.67", 3),
	}

	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.monthStart, s.monthEnd).Return(expenses, nil)
	s.budgetRepo.EXPECT().GetActiveByUserID(s.userID, s.now).Return([]models.Budget{budget}, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, groceriesID, s.monthStart, s.monthEnd).
		Return(decimal.RequireFromString("98.01"), nil)

	view, err := s.service.GetDashboard(s.userID, s.now)
	s.NoError(err)
	s.NotNil(view)

	s.True(decimal.NewFromFloat(400.00).Equal(view.Summary.TotalBudget))
	s.True(decimal.RequireFromString("110.01").Equal(view.Summary.TotalSpent))
	s.True(decimal.RequireFromString("289.99").Equal(view.Summary.Remaining))
	s.Equal(3, view.Summary.ExpenseCount)

	s.Len(view.Budgets, 1)
	s.True(decimal.RequireFromString("98.01").Equal(view.Budgets[0].Spent))
	s.True(view.Budgets[0].IsActive)

	s.Len(view.Expenses, 3)
	s.Len(view.RecentExpenses, 2)
	s.Equal(view.Expenses[0].ID, view.RecentExpenses[0].ID)
	s.Equal(view.Expenses[1].ID, view.RecentExpenses[1].ID)

	s.Len(view.CategoryTotals, 2)
	s.True(decimal.RequireFromString("98.01").Equal(view.CategoryTotals["Groceries"]))
	s.True(decimal.RequireFromString("12.00").Equal(view.CategoryTotals["Transport"]))

	// Day 3 lands in bucket 0, day 15 in bucket 2, day 22 in bucket 3
	s.Len(view.WeeklyTotals, models.WeeklyBucketCount)
	s.True(decimal.RequireFromString("45.67").Equal(view.WeeklyTotals[0]))
	s.True(decimal.Zero.Equal(view.WeeklyTotals[1]))
	s.True(decimal.RequireFromString("12.00").Equal(view.WeeklyTotals[2]))
	s.True(decimal.RequireFromString("52.34").Equal(view.WeeklyTotals[3]))
}

func (s *DashboardServiceSuite) TestGetDashboard_EmptyMonth() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.monthStart, s.monthEnd).Return([]models.Expense{}, nil)
	s.budgetRepo.EXPECT().GetActiveByUserID(s.userID, s.now).Return([]models.Budget{}, nil)

	view, err := s.service.GetDashboard(s.userID, s.now)
	s.NoError(err)
	s.NotNil(view)

	s.True(decimal.Zero.Equal(view.Summary.TotalBudget))
	s.True(decimal.Zero.Equal(view.Summary.TotalSpent))
	s.Equal(0, view.Summary.ExpenseCount)
	s.NotNil(view.Budgets)
	s.Empty(view.Budgets)
	s.NotNil(view.Expenses)
	s.NotNil(view.RecentExpenses)
	s.NotNil(view.CategoryTotals)
	s.Len(view.WeeklyTotals, models.WeeklyBucketCount)
	for _, total := range view.WeeklyTotals {
		s.True(decimal.Zero.Equal(total))
	}
}

func (s *DashboardServiceSuite) TestGetDashboard_ExpenseLoadError() {
	s.expenseRepo.EXPECT().
		GetByDateRange(s.userID, s.monthStart, s.monthEnd).
		Return(nil, errors.New("connection reset"))

	view, err := s.service.GetDashboard(s.userID, s.now)
	s.Error(err)
	s.Nil(view)
}

func (s *DashboardServiceSuite) TestGetDashboard_BudgetLoadError() {
	s.expenseRepo.EXPECT().GetByDateRange(s.userID, s.monthStart, s.monthEnd).Return([]models.Expense{}, nil)
	s.budgetRepo.EXPECT().GetActiveByUserID(s.userID, s.now).Return(nil, errors.New("connection reset"))

	view, err := s.service.GetDashboard(s.userID, s.now)
	s.Error(err)
	s.Nil(view)
}
