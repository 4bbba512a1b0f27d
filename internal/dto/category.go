package dto

import "time"

// Category Request DTOs

// CreateCategoryRequest contains data for creating a spending category
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// Category Response DTOs

// CategoryResponse represents a spending category
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
