package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Category groups services
type Category struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Description  null.String `json:"description"`
	Icon         null.String `json:"icon"`
	IsActive     bool        `json:"isActive"`
	ServiceCount int64       `json:"serviceCount"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CategorySummary is embedded in service payloads
type CategorySummary struct {
	ID   uuid.UUID   `json:"id"`
	Name string      `json:"name"`
	Icon null.String `json:"icon"`
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
