package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name too long")
)

const maxCategoryNameLength = 100

// Category is a user-defined spending label. Names are unique per user,
// case-insensitively; names are stored as entered but compared normalized.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	Budgets  []Budget  `gorm:"foreignKey:CategoryID" json:"-"`
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"-"`
}

// NormalizeCategoryName trims surrounding whitespace and lowercases a name
// for case-insensitive comparison.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return c.Validate()
}

// Validate checks the structural invariants of a category row
func (c *Category) Validate() error {
	if c.UserID == uuid.Nil {
		return errors.New("category user ID is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if len(c.Name) > maxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}
