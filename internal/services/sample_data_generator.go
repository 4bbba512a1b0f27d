package services

import (
	"math/rand"
	"time"

	"smartbudget/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type sampleDataGenerator struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// categoryProfile pairs a category name with a plausible spending range
type categoryProfile struct {
	name      string
	minAmount float64
	maxAmount float64
}

var sampleCategoryProfiles = []categoryProfile{
	{"Groceries", 5, 180},
	{"Dining", 8, 95},
	{"Transport", 3, 60},
	{"Entertainment", 5, 120},
	{"Utilities", 30, 250},
	{"Healthcare", 10, 300},
	{"Shopping", 10, 400},
}

// NewSampleDataGenerator creates a generator for development sample data
func NewSampleDataGenerator() SampleDataGeneratorInterface {
	seed := time.Now().UnixNano()
	return &sampleDataGenerator{
		faker: gofakeit.New(uint64(seed)),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// GenerateCategories produces the standard sample category set for a user.
// Callers are expected to skip names the user already has.
func (g *sampleDataGenerator) GenerateCategories(userID uuid.UUID) []*models.Category {
	categories := make([]*models.Category, 0, len(sampleCategoryProfiles))
	for _, profile := range sampleCategoryProfiles {
		categories = append(categories, &models.Category{
			ID:     uuid.New(),
			UserID: userID,
			Name:   profile.name,
		})
	}
	return categories
}

// GenerateBudgets produces a monthly budget per category anchored on the
// first of the month containing anchor. Limits sit comfortably above each
// category's spending range so generated expenses land at plausible
// progress levels.
func (g *sampleDataGenerator) GenerateBudgets(
	userID uuid.UUID,
	categories []*models.Category,
	anchor time.Time,
) []*models.Budget {
	monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	budgets := make([]*models.Budget, 0, len(categories))
	for _, category := range categories {
		start, end, err := models.ComputeWindow(models.PeriodMonthly, monthStart)
		if err != nil {
			continue
		}

		profile := g.profileFor(category.Name)
		limit := g.faker.Price(profile.maxAmount*2, profile.maxAmount*6)

		budgets = append(budgets, &models.Budget{
			ID:         uuid.New(),
			UserID:     userID,
			CategoryID: category.ID,
			Limit:      decimalFromPrice(limit),
			Period:     models.PeriodMonthly,
			StartDate:  start,
			EndDate:    end,
		})
	}

	return budgets
}

// GenerateExpenses produces count random expenses spread across the given
// categories and date range, newest last
func (g *sampleDataGenerator) GenerateExpenses(
	userID uuid.UUID,
	categories []*models.Category,
	startDate time.Time,
	endDate time.Time,
	count int,
) []*models.Expense {
	if len(categories) == 0 || count < 1 {
		return nil
	}

	rangeDays := int(endDate.Sub(startDate).Hours() / 24)
	if rangeDays < 1 {
		rangeDays = 1
	}

	expenses := make([]*models.Expense, 0, count)
	for i := 0; i < count; i++ {
		category := categories[g.rng.Intn(len(categories))]
		profile := g.profileFor(category.Name)

		day := startDate.AddDate(0, 0, g.rng.Intn(rangeDays))
		amount := g.faker.Price(profile.minAmount, profile.maxAmount)

		expenses = append(expenses, &models.Expense{
			ID:          uuid.New(),
			UserID:      userID,
			CategoryID:  category.ID,
			Amount:      decimalFromPrice(amount),
			ExpenseDate: models.NormalizeDate(day),
			Note:        g.faker.ProductName(),
		})
	}

	return expenses
}

func decimalFromPrice(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// profileFor falls back to a generic range for user-created category names
func (g *sampleDataGenerator) profileFor(name string) categoryProfile {
	for _, profile := range sampleCategoryProfiles {
		if profile.name == name {
			return profile
		}
	}
	return categoryProfile{name: name, minAmount: 5, maxAmount: 150}
}
