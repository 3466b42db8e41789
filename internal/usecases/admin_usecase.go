package usecases

import (
	"context"
	"strings"

	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
)

// AdminUsecase serves the admin user listing and dashboard
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	bookingRepo repositories.BookingRepository
	kycRepo     repositories.KYCRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(userRepo repositories.UserRepository, bookingRepo repositories.BookingRepository, kycRepo repositories.KYCRepository) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		kycRepo:     kycRepo,
	}
}

// ListUsers searches users by name or email, optionally by role
func (u *AdminUsecase) ListUsers(ctx context.Context, search, role string) ([]*entities.User, error) {
	filter := entities.UserFilter{Search: strings.TrimSpace(search)}
	if strings.TrimSpace(role) != "" {
		r, ok := entities.ParseUserRole(role)
		if !ok {
			return nil, domainerrors.Validation("role must be client, provider or admin")
		}
		filter.Role = r
	}
	return u.userRepo.List(ctx, filter)
}

// Stats counts users by role, bookings by status and KYC records awaiting review
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.PlatformStats, error) {
	users, err := u.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := u.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := u.kycRepo.CountByStatus(ctx, entities.KYCStatusPending)
	if err != nil {
		return nil, err
	}
	review, err := u.kycRepo.CountByStatus(ctx, entities.KYCStatusUnderReview)
	if err != nil {
		return nil, err
	}

	stats := &entities.PlatformStats{
		UsersByRole:      users,
		BookingsByStatus: bookings,
		PendingKYC:       pending + review,
	}
	for _, n := range users {
		stats.TotalUsers += n
	}
	for _, n := range bookings {
		stats.TotalBookings += n
	}
	return stats, nil
}
