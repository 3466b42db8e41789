package repositories

import (
	"context"

	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error)
	CountByRole(ctx context.Context) (map[entities.UserRole]int64, error)
}
