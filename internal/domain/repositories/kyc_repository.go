package repositories

import (
	"context"

	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
)

// KYCRepository defines KYC verification data operations
type KYCRepository interface {
	Create(ctx context.Context, kyc *entities.KYCVerification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error)
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.KYCVerification, error)
	List(ctx context.Context, filter entities.KYCFilter) ([]*entities.KYCVerification, error)
	// UpdateReview applies a review decision only if the record is still in
	// from; kyc carries the new status and review fields.
	UpdateReview(ctx context.Context, kyc *entities.KYCVerification, from entities.KYCStatus) error
	CountByStatus(ctx context.Context, status entities.KYCStatus) (int64, error)
}
