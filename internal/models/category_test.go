package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		wantErr  bool
		errMsg   string
	}{
		{
			name: "valid category",
			category: Category{
				UserID: uuid.New(),
				Name:   "Groceries",
			},
		},
		{
			name: "missing user ID",
			category: Category{
				Name: "Groceries",
			},
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name: "empty name",
			category: Category{
				UserID: uuid.New(),
				Name:   "",
			},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name: "whitespace only name",
			category: Category{
				UserID: uuid.New(),
				Name:   "   ",
			},
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name: "name too long",
			category: Category{
				UserID: uuid.New(),
				Name:   strings.Repeat("a", 101),
			},
			wantErr: true,
			errMsg:  "name too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCategory_BeforeCreate(t *testing.T) {
	category := Category{
		UserID: uuid.New(),
		Name:   "Dining Out",
	}

	err := category.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, category.ID)
	assert.False(t, category.CreatedAt.IsZero())
}

func TestNormalizeCategoryName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Groceries", want: "groceries"},
		{input: "  Dining Out  ", want: "dining out"},
		{input: "TRANSPORT", want: "transport"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCategoryName(tt.input))
	}
}

func TestCategory_TableName(t *testing.T) {
	category := Category{}
	assert.Equal(t, "categories", category.TableName())
}
