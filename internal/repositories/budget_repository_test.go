package repositories

import (
	"testing"
	"time"

	"smartbudget/internal/database"
	"smartbudget/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// BudgetRepositorySuite defines the test suite for BudgetRepository
type BudgetRepositorySuite struct {
	suite.Suite
	db           *database.DB
	repo         BudgetRepositoryInterface
	testUser     *models.User
	testCategory *models.Category
}

// SetupTest runs before each test in the suite
func (s *BudgetRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewBudgetRepository(s.db.DB)

	s.testUser = database.CreateTestUser(s.T(), s.db, "budgets@example.com")
	s.testCategory = database.CreateTestCategory(s.T(), s.db, s.testUser, "Groceries")
}

// TearDownTest runs after each test in the suite
func (s *BudgetRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestBudgetRepositorySuite runs the test suite
func TestBudgetRepositorySuite(t *testing.T) {
	suite.Run(t, new(BudgetRepositorySuite))
}

func (s *BudgetRepositorySuite) newBudget(period string, start time.Time, limit float64) *models.Budget {
	startDate, endDate, err := models.ComputeWindow(period, start)
	s.Require().NoError(err)

	return &models.Budget{
		UserID:     s.testUser.ID,
		CategoryID: s.testCategory.ID,
		Limit:      decimal.NewFromFloat(limit),
		Spent:      decimal.Zero,
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
	}
}

func (s *BudgetRepositorySuite) TestCreate() {
	budget := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)

	err := s.repo.Create(budget)
	s.NoError(err)
	s.NotEqual(uuid.Nil, budget.ID)
	s.NotZero(budget.CreatedAt)
	s.NotZero(budget.UpdatedAt)
}

func (s *BudgetRepositorySuite) TestCreate_NilBudget() {
	err := s.repo.Create(nil)
	s.Error(err)
}

func (s *BudgetRepositorySuite) TestGetByID() {
	budget := s.newBudget(models.PeriodWeekly, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 120.00)
	s.Require().NoError(s.repo.Create(budget))

	found, err := s.repo.GetByID(s.testUser.ID, budget.ID)
	s.NoError(err)
	s.Equal(budget.ID, found.ID)
	s.Equal(models.PeriodWeekly, found.Period)
	s.True(found.Limit.Equal(decimal.NewFromFloat(120.00)))
	s.Equal("Groceries", found.Category.Name)
}

func (s *BudgetRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.testUser.ID, uuid.New())
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestGetByID_OtherUsersBudgetIsNotFound() {
	budget := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(budget))

	otherUser := database.CreateTestUser(s.T(), s.db, "other@example.com")

	_, err := s.repo.GetByID(otherUser.ID, budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestGetByUserID() {
	first := s.newBudget(models.PeriodMonthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 300.00)
	second := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(first))
	s.Require().NoError(s.repo.Create(second))

	budgets, err := s.repo.GetByUserID(s.testUser.ID)
	s.NoError(err)
	s.Len(budgets, 2)

	// Newest window first
	s.Equal(second.ID, budgets[0].ID)
	s.Equal(first.ID, budgets[1].ID)
}

func (s *BudgetRepositorySuite) TestGetByUserID_EmptyForNewUser() {
	budgets, err := s.repo.GetByUserID(uuid.New())
	s.NoError(err)
	s.Empty(budgets)
}

func (s *BudgetRepositorySuite) TestGetActiveByUserID() {
	past := s.newBudget(models.PeriodMonthly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 300.00)
	current := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	future := s.newBudget(models.PeriodMonthly, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 500.00)
	s.Require().NoError(s.repo.Create(past))
	s.Require().NoError(s.repo.Create(current))
	s.Require().NoError(s.repo.Create(future))

	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	active, err := s.repo.GetActiveByUserID(s.testUser.ID, now)
	s.NoError(err)
	s.Len(active, 1)
	s.Equal(current.ID, active[0].ID)
}

func (s *BudgetRepositorySuite) TestGetActiveByUserID_EndBoundaryExcluded() {
	budget := s.newBudget(models.PeriodWeekly, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 100.00)
	s.Require().NoError(s.repo.Create(budget))

	// Active on the start boundary
	active, err := s.repo.GetActiveByUserID(s.testUser.ID, budget.StartDate)
	s.NoError(err)
	s.Len(active, 1)

	// No longer active at the exclusive end boundary
	active, err = s.repo.GetActiveByUserID(s.testUser.ID, budget.EndDate)
	s.NoError(err)
	s.Empty(active)
}

func (s *BudgetRepositorySuite) TestUpdateFields() {
	budget := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(budget))

	err := s.repo.UpdateFields(s.testUser.ID, budget.ID, map[string]interface{}{
		"limit_amount": decimal.NewFromFloat(550.00),
	})
	s.NoError(err)

	updated, err := s.repo.GetByID(s.testUser.ID, budget.ID)
	s.NoError(err)
	s.True(updated.Limit.Equal(decimal.NewFromFloat(550.00)))
}

func (s *BudgetRepositorySuite) TestUpdateFields_NotFound() {
	err := s.repo.UpdateFields(s.testUser.ID, uuid.New(), map[string]interface{}{
		"limit_amount": decimal.NewFromFloat(100.00),
	})
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestDelete() {
	budget := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(budget))

	err := s.repo.Delete(s.testUser.ID, budget.ID)
	s.NoError(err)

	_, err = s.repo.GetByID(s.testUser.ID, budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetRepositorySuite) TestDelete_OtherUsersBudget() {
	budget := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(budget))

	otherUser := database.CreateTestUser(s.T(), s.db, "other@example.com")

	err := s.repo.Delete(otherUser.ID, budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)

	// Budget still exists for the owner
	_, err = s.repo.GetByID(s.testUser.ID, budget.ID)
	s.NoError(err)
}

func (s *BudgetRepositorySuite) TestCountOverlapping() {
	march := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(march))

	// Window intersecting March
	start, end, err := models.ComputeWindow(models.PeriodWeekly, time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)

	count, err := s.repo.CountOverlapping(s.testUser.ID, s.testCategory.ID, start, end, uuid.Nil)
	s.NoError(err)
	s.Equal(int64(1), count)

	// Window entirely in May
	start, end, err = models.ComputeWindow(models.PeriodWeekly, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)

	count, err = s.repo.CountOverlapping(s.testUser.ID, s.testCategory.ID, start, end, uuid.Nil)
	s.NoError(err)
	s.Zero(count)
}

func (s *BudgetRepositorySuite) TestCountOverlapping_AdjacentWindowsDoNotOverlap() {
	march := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(march))

	// April window starts exactly where March ends
	count, err := s.repo.CountOverlapping(
		s.testUser.ID, s.testCategory.ID,
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		uuid.Nil,
	)
	s.NoError(err)
	s.Zero(count)
}

func (s *BudgetRepositorySuite) TestCountOverlapping_ExcludesGivenBudget() {
	march := s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)
	s.Require().NoError(s.repo.Create(march))

	count, err := s.repo.CountOverlapping(s.testUser.ID, s.testCategory.ID, march.StartDate, march.EndDate, march.ID)
	s.NoError(err)
	s.Zero(count)
}

func (s *BudgetRepositorySuite) TestCountByCategoryID() {
	s.Require().NoError(s.repo.Create(s.newBudget(models.PeriodMonthly, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 300.00)))
	s.Require().NoError(s.repo.Create(s.newBudget(models.PeriodMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 400.00)))

	count, err := s.repo.CountByCategoryID(s.testUser.ID, s.testCategory.ID)
	s.NoError(err)
	s.Equal(int64(2), count)

	count, err = s.repo.CountByCategoryID(s.testUser.ID, uuid.New())
	s.NoError(err)
	s.Zero(count)
}
