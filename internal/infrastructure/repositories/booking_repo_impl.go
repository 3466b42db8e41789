package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/infrastructure/models"
)

// BookingRepository implements booking data operations
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create creates a new booking
func (r *BookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	m := &models.Booking{
		ID:                 booking.ID,
		ClientID:           booking.ClientID,
		ProviderID:         booking.ProviderID,
		ServiceID:          booking.ServiceID,
		Status:             string(booking.Status),
		ScheduledDate:      booking.ScheduledDate,
		ScheduledTime:      booking.ScheduledTime,
		Duration:           booking.Duration,
		Price:              booking.Price,
		Currency:           booking.Currency,
		Notes:              booking.Notes.Ptr(),
		Address:            booking.Address.Ptr(),
		CancellationReason: booking.CancellationReason.Ptr(),
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a booking with its service, client and provider
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	var m models.Booking
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Service").Preload("Client").Preload("Provider").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return bookingToEntity(&m), nil
}

// List returns a page of bookings, newest first, and the total match count
func (r *BookingRepository) List(ctx context.Context, filter entities.BookingFilter) ([]*entities.Booking, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.ClientID != nil {
			q = q.Where("client_id = ?", *filter.ClientID)
		}
		if filter.ProviderID != nil {
			q = q.Where("provider_id = ?", *filter.ProviderID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", string(filter.Status))
		}
		return q
	}

	var total int64
	if err := db.Model(&models.Booking{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Scopes(scope).
		Preload("Service").Preload("Client").Preload("Provider").
		Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var rows []models.Booking
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, bookingToEntity(&rows[i]))
	}
	return out, total, nil
}

// UpdateStatus is a compare-and-swap on the current status
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.BookingStatus, reason null.String) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	if reason.Valid {
		updates["cancellation_reason"] = reason.String
	}

	result := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidTransition
}

// ListPendingBefore returns pending bookings scheduled before date
func (r *BookingRepository) ListPendingBefore(ctx context.Context, date string, limit int) ([]*entities.Booking, error) {
	var rows []models.Booking
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND scheduled_date < ?", string(entities.BookingStatusPending), date).
		Order("scheduled_date ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Booking, 0, len(rows))
	for i := range rows {
		out = append(out, bookingToEntity(&rows[i]))
	}
	return out, nil
}

// CountByStatus returns the number of bookings per status
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[entities.BookingStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.BookingStatus]int64, len(rows))
	for _, row := range rows {
		counts[entities.BookingStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func bookingToEntity(m *models.Booking) *entities.Booking {
	b := &entities.Booking{
		ID:                 m.ID,
		ClientID:           m.ClientID,
		ProviderID:         m.ProviderID,
		ServiceID:          m.ServiceID,
		Status:             entities.BookingStatus(m.Status),
		ScheduledDate:      m.ScheduledDate,
		ScheduledTime:      m.ScheduledTime,
		Duration:           m.Duration,
		Price:              m.Price,
		Currency:           m.Currency,
		Notes:              null.StringFromPtr(m.Notes),
		Address:            null.StringFromPtr(m.Address),
		CancellationReason: null.StringFromPtr(m.CancellationReason),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		Client:             userSummary(m.Client),
		Provider:           userSummary(m.Provider),
	}
	if m.Service != nil {
		b.Service = &entities.ServiceSummary{
			ID:       m.Service.ID,
			Title:    m.Service.Title,
			Price:    m.Service.Price,
			Currency: m.Service.Currency,
		}
	}
	return b
}
