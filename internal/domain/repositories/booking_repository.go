package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"houseman.backend/internal/domain/entities"
)

// BookingRepository defines booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entities.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	List(ctx context.Context, filter entities.BookingFilter) ([]*entities.Booking, int64, error)
	// UpdateStatus moves a booking from one status to another only if it is
	// still in from. It returns ErrNotFound when the row is gone and
	// ErrInvalidTransition when the status has already changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.BookingStatus, reason null.String) error
	// ListPendingBefore returns pending bookings scheduled before date (YYYY-MM-DD).
	ListPendingBefore(ctx context.Context, date string, limit int) ([]*entities.Booking, error)
	CountByStatus(ctx context.Context) (map[entities.BookingStatus]int64, error)
}
