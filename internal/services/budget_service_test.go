package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"smartbudget/internal/config"
	"smartbudget/internal/dto"
	"smartbudget/internal/models"
	"smartbudget/internal/repositories"
	"smartbudget/internal/repositories/repository_mocks"
	"smartbudget/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BudgetServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	budgetRepo   *repository_mocks.MockBudgetRepositoryInterface
	categoryRepo *repository_mocks.MockCategoryRepositoryInterface
	expenseRepo  *repository_mocks.MockExpenseRepositoryInterface
	metrics      *service_mocks.MockMetricsRecorderInterface
	service      BudgetServiceInterface
	userID       uuid.UUID
	categoryID   uuid.UUID
	category     *models.Category
}

func (s *BudgetServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.budgetRepo = repository_mocks.NewMockBudgetRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)

	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordGauge(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	s.service = s.newService(config.BudgetConfig{RecentExpensesLimit: 5})

	s.userID = uuid.New()
	s.categoryID = uuid.New()
	s.category = &models.Category{
		ID:     s.categoryID,
		UserID: s.userID,
		Name:   "Groceries",
	}
}

func (s *BudgetServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) newService(cfg config.BudgetConfig) BudgetServiceInterface {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBudgetService(s.budgetRepo, s.categoryRepo, s.expenseRepo, cfg, s.metrics, logger)
}

func (s *BudgetServiceSuite) existingBudget() *models.Budget {
	return &models.Budget{
		ID:         uuid.New(),
		UserID:     s.userID,
		CategoryID: s.categoryID,
		Limit:      decimal.NewFromFloat(400.00),
		Spent:      decimal.Zero,
		Period:     models.PeriodMonthly,
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		Category:   models.Category{ID: s.categoryID, UserID: s.userID, Name: "Groceries"},
	}
}

func (s *BudgetServiceSuite) TestCreateBudget_Monthly_Success() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      400.00,
		Period:     "monthly",
		StartDate:  "2025-03-01",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)
	s.budgetRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(b *models.Budget) error {
		b.ID = uuid.New()
		return nil
	})
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID,
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)).
		Return(decimal.RequireFromString("98.01"), nil)

	resp, err := s.service.CreateBudget(s.userID, req)
	s.NoError(err)
	s.NotNil(resp)
	s.Equal("Groceries", resp.Category)
	s.Equal("monthly", resp.Period)
	s.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), resp.StartDate)
	s.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), resp.EndDate)
	s.True(decimal.RequireFromString("98.01").Equal(resp.Spent))
	s.True(decimal.RequireFromString("301.99").Equal(resp.Remaining))
	s.InDelta(24.5025, resp.ProgressPercent, 0.0001)
}

func (s *BudgetServiceSuite) TestCreateBudget_MonthlyClampsEndOfMonth() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      250.00,
		Period:     "monthly",
		StartDate:  "2024-01-31",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)
	s.budgetRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, gomock.Any(), gomock.Any()).
		Return(decimal.Zero, nil)

	resp, err := s.service.CreateBudget(s.userID, req)
	s.NoError(err)
	// 2024 is a leap year
	s.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), resp.EndDate)
}

func (s *BudgetServiceSuite) TestCreateBudget_WeeklyWindow() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      100.00,
		Period:     "Weekly",
		StartDate:  "2025-03-10",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)
	s.budgetRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, gomock.Any(), gomock.Any()).
		Return(decimal.Zero, nil)

	resp, err := s.service.CreateBudget(s.userID, req)
	s.NoError(err)
	s.Equal("weekly", resp.Period)
	s.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), resp.EndDate)
}

func (s *BudgetServiceSuite) TestCreateBudget_CategoryNotFound() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      100.00,
		Period:     "monthly",
		StartDate:  "2025-03-01",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(nil, repositories.ErrCategoryNotFound)

	resp, err := s.service.CreateBudget(s.userID, req)
	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestCreateBudget_InvalidPeriod() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      100.00,
		Period:     "quarterly",
		StartDate:  "2025-03-01",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)

	resp, err := s.service.CreateBudget(s.userID, req)
	s.ErrorIs(err, models.ErrInvalidPeriod)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestCreateBudget_NonPositiveLimit() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      0,
		Period:     "monthly",
		StartDate:  "2025-03-01",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)

	resp, err := s.service.CreateBudget(s.userID, req)
	s.ErrorIs(err, models.ErrInvalidLimit)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestCreateBudget_OverlapAllowedByDefault() {
	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      100.00,
		Period:     "monthly",
		StartDate:  "2025-03-01",
	}

	// No CountOverlapping expectation: the default config never consults it
	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)
	s.budgetRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, gomock.Any(), gomock.Any()).
		Return(decimal.Zero, nil)

	_, err := s.service.CreateBudget(s.userID, req)
	s.NoError(err)
}

func (s *BudgetServiceSuite) TestCreateBudget_ConflictWhenSinglePerPeriod() {
	service := s.newService(config.BudgetConfig{SinglePerPeriod: true, RecentExpensesLimit: 5})

	req := &dto.CreateBudgetRequest{
		CategoryID: s.categoryID.String(),
		Limit:      100.00,
		Period:     "monthly",
		StartDate:  "2025-03-01",
	}

	s.categoryRepo.EXPECT().GetByID(s.userID, s.categoryID).Return(s.category, nil)
	s.budgetRepo.EXPECT().
		CountOverlapping(s.userID, s.categoryID,
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			uuid.Nil).
		Return(int64(1), nil)

	resp, err := service.CreateBudget(s.userID, req)
	s.ErrorIs(err, ErrBudgetConflict)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestGetBudget_Success() {
	budget := s.existingBudget()

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, budget.StartDate, budget.EndDate).
		Return(decimal.RequireFromString("450.00"), nil)

	resp, err := s.service.GetBudget(s.userID, budget.ID)
	s.NoError(err)
	// Over budget: remaining goes negative, progress clamps at 100
	s.True(decimal.RequireFromString("-50").Equal(resp.Remaining))
	s.Equal(100.0, resp.ProgressPercent)
}

func (s *BudgetServiceSuite) TestGetBudget_NotFound() {
	budgetID := uuid.New()

	s.budgetRepo.EXPECT().GetByID(s.userID, budgetID).Return(nil, repositories.ErrBudgetNotFound)

	resp, err := s.service.GetBudget(s.userID, budgetID)
	s.ErrorIs(err, ErrBudgetNotFound)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestListBudgets_ActiveOnly() {
	budget := s.existingBudget()

	s.budgetRepo.EXPECT().GetActiveByUserID(s.userID, gomock.Any()).Return([]models.Budget{*budget}, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, budget.StartDate, budget.EndDate).
		Return(decimal.Zero, nil)

	responses, err := s.service.ListBudgets(s.userID, true)
	s.NoError(err)
	s.Len(responses, 1)
	s.True(decimal.Zero.Equal(responses[0].Spent))
	s.True(budget.Limit.Equal(responses[0].Remaining))
}

func (s *BudgetServiceSuite) TestListBudgets_All() {
	s.budgetRepo.EXPECT().GetByUserID(s.userID).Return([]models.Budget{}, nil)

	responses, err := s.service.ListBudgets(s.userID, false)
	s.NoError(err)
	s.Empty(responses)
}

func (s *BudgetServiceSuite) TestUpdateBudget_LimitOnly() {
	budget := s.existingBudget()
	newLimit := 600.00
	req := &dto.UpdateBudgetRequest{Limit: &newLimit}

	updated := *budget
	updated.Limit = decimal.NewFromFloat(newLimit)

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.budgetRepo.EXPECT().
		UpdateFields(s.userID, budget.ID, gomock.Any()).
		DoAndReturn(func(_, _ uuid.UUID, fields map[string]interface{}) error {
			s.Contains(fields, "limit_amount")
			s.Contains(fields, "updated_at")
			s.NotContains(fields, "start_date")
			s.NotContains(fields, "end_date")
			return nil
		})
	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(&updated, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, budget.StartDate, budget.EndDate).
		Return(decimal.Zero, nil)

	resp, err := s.service.UpdateBudget(s.userID, budget.ID, req)
	s.NoError(err)
	s.True(decimal.NewFromFloat(600.00).Equal(resp.Limit))
}

func (s *BudgetServiceSuite) TestUpdateBudget_PeriodRecomputesWindow() {
	budget := s.existingBudget()
	newPeriod := "weekly"
	req := &dto.UpdateBudgetRequest{Period: &newPeriod}

	wantStart := budget.StartDate
	wantEnd := budget.StartDate.AddDate(0, 0, 7)

	updated := *budget
	updated.Period = models.PeriodWeekly
	updated.EndDate = wantEnd

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.budgetRepo.EXPECT().
		UpdateFields(s.userID, budget.ID, gomock.Any()).
		DoAndReturn(func(_, _ uuid.UUID, fields map[string]interface{}) error {
			s.Equal(models.PeriodWeekly, fields["period"])
			s.Equal(wantStart, fields["start_date"])
			s.Equal(wantEnd, fields["end_date"])
			return nil
		})
	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(&updated, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, wantStart, wantEnd).
		Return(decimal.Zero, nil)

	resp, err := s.service.UpdateBudget(s.userID, budget.ID, req)
	s.NoError(err)
	s.Equal(wantEnd, resp.EndDate)
}

func (s *BudgetServiceSuite) TestUpdateBudget_NoChangesReturnsCurrent() {
	budget := s.existingBudget()
	req := &dto.UpdateBudgetRequest{}

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, budget.StartDate, budget.EndDate).
		Return(decimal.Zero, nil)

	resp, err := s.service.UpdateBudget(s.userID, budget.ID, req)
	s.NoError(err)
	s.Equal(budget.ID.String(), resp.ID)
}

func (s *BudgetServiceSuite) TestUpdateBudget_MoveToMissingCategory() {
	budget := s.existingBudget()
	otherCategoryID := uuid.New().String()
	req := &dto.UpdateBudgetRequest{CategoryID: &otherCategoryID}

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.categoryRepo.EXPECT().GetByID(s.userID, gomock.Any()).Return(nil, repositories.ErrCategoryNotFound)

	resp, err := s.service.UpdateBudget(s.userID, budget.ID, req)
	s.ErrorIs(err, ErrCategoryNotFound)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestUpdateBudget_WindowConflictWhenSinglePerPeriod() {
	service := s.newService(config.BudgetConfig{SinglePerPeriod: true, RecentExpensesLimit: 5})

	budget := s.existingBudget()
	newStart := "2025-05-01"
	req := &dto.UpdateBudgetRequest{StartDate: &newStart}

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.budgetRepo.EXPECT().
		CountOverlapping(s.userID, s.categoryID,
			time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			budget.ID).
		Return(int64(1), nil)

	resp, err := service.UpdateBudget(s.userID, budget.ID, req)
	s.ErrorIs(err, ErrBudgetConflict)
	s.Nil(resp)
}

func (s *BudgetServiceSuite) TestDeleteBudget_Success() {
	budgetID := uuid.New()

	s.budgetRepo.EXPECT().Delete(s.userID, budgetID).Return(nil)

	s.NoError(s.service.DeleteBudget(s.userID, budgetID))
}

func (s *BudgetServiceSuite) TestDeleteBudget_NotFound() {
	budgetID := uuid.New()

	s.budgetRepo.EXPECT().Delete(s.userID, budgetID).Return(repositories.ErrBudgetNotFound)

	s.ErrorIs(s.service.DeleteBudget(s.userID, budgetID), ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestGetBudget_SumError() {
	budget := s.existingBudget()

	s.budgetRepo.EXPECT().GetByID(s.userID, budget.ID).Return(budget, nil)
	s.expenseRepo.EXPECT().
		SumByCategoryAndWindow(s.userID, s.categoryID, budget.StartDate, budget.EndDate).
		Return(decimal.Zero, errors.New("connection reset"))

	resp, err := s.service.GetBudget(s.userID, budget.ID)
	s.Error(err)
	s.Nil(resp)
}
