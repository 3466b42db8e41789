package repositories

import (
	"context"

	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
)

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	ListActive(ctx context.Context) ([]*entities.Category, error)
}

// ServiceRepository defines service listing data operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entities.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error)
	List(ctx context.Context, filter entities.ServiceFilter) ([]*entities.Service, int64, error)
}
