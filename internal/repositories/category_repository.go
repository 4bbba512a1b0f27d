package repositories

import (
	"errors"
	"fmt"

	"smartbudget/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &CategoryRepository{
		db: db,
	}
}

// Create creates a new category in the database
func (r *CategoryRepository) Create(category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.Create(category).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID, scoped to the owning user
func (r *CategoryRepository) GetByID(userID, id uuid.UUID) (*models.Category, error) {
	var category models.Category

	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return &category, nil
}

// GetByUserID retrieves all categories belonging to a user, name-ordered
func (r *CategoryRepository) GetByUserID(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category

	if err := r.db.Where("user_id = ?", userID).Order("LOWER(name) ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories for user: %w", err)
	}

	return categories, nil
}

// GetByNormalizedName retrieves a user's category by case-insensitive name match
func (r *CategoryRepository) GetByNormalizedName(userID uuid.UUID, name string) (*models.Category, error) {
	var category models.Category

	normalized := models.NormalizeCategoryName(name)
	if err := r.db.Where("user_id = ? AND LOWER(name) = ?", userID, normalized).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}

	return &category, nil
}

// Delete removes a category owned by the user. Referential checks happen in
// the service layer before this is called.
func (r *CategoryRepository) Delete(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
