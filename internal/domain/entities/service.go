package entities

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is used when neither the request nor the service names one.
const DefaultCurrency = "XAF"

// Service is a listing offered by a provider
type Service struct {
	ID          uuid.UUID        `json:"id"`
	ProviderID  uuid.UUID        `json:"providerId"`
	CategoryID  uuid.UUID        `json:"categoryId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Currency    string           `json:"currency"`
	Images      []string         `json:"images"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Provider    *UserSummary     `json:"provider,omitempty"`
	Category    *CategorySummary `json:"category,omitempty"`
}

// ServiceSummary is embedded in booking payloads
type ServiceSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
}

// Service sort columns
const (
	ServiceSortCreatedAt = "created_at"
	ServiceSortPrice     = "price"
	ServiceSortRating    = "rating"
	ServiceSortTitle     = "title"
)

// ValidServiceSort reports whether col may be used in ORDER BY.
func ValidServiceSort(col string) bool {
	switch col {
	case ServiceSortCreatedAt, ServiceSortPrice, ServiceSortRating, ServiceSortTitle:
		return true
	}
	return false
}

// ServiceFilter holds the listing filters; zero values mean "no filter".
type ServiceFilter struct {
	CategoryID *uuid.UUID
	ProviderID *uuid.UUID
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	SortBy     string
	SortAsc    bool
	Page       int
	Limit      int
}

// CreateServiceInput represents input for creating a service
type CreateServiceInput struct {
	ProviderID  string   `json:"providerId"`
	CategoryID  string   `json:"categoryId" binding:"required"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Currency    string   `json:"currency"`
	Images      []string `json:"images"`
}
