package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/metrics"
)

// ExpiredBookingReason is stored as the cancellation reason of swept bookings.
const ExpiredBookingReason = "expired"

const expiryBatchSize = 100

type bookingExpiryRepository interface {
	ListPendingBefore(ctx context.Context, date string, limit int) ([]*entities.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.BookingStatus, reason null.String) error
}

var nowFunc = time.Now

// BookingExpiryJob cancels pending bookings whose scheduled date has passed.
type BookingExpiryJob struct {
	repo     bookingExpiryRepository
	interval time.Duration
	stop     chan struct{}
}

func NewBookingExpiryJob(repo bookingExpiryRepository, interval time.Duration) *BookingExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &BookingExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *BookingExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting booking expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Booking expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Booking expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredBookings(ctx)
		}
	}
}

func (j *BookingExpiryJob) Stop() {
	close(j.stop)
}

// processExpiredBookings returns how many bookings were cancelled.
func (j *BookingExpiryJob) processExpiredBookings(ctx context.Context) int {
	today := nowFunc().Format(entities.BookingDateLayout)
	stale, err := j.repo.ListPendingBefore(ctx, today, expiryBatchSize)
	if err != nil {
		logger.Error(ctx, "Failed to fetch stale bookings", zap.Error(err))
		return 0
	}
	if len(stale) == 0 {
		return 0
	}

	reason := null.StringFrom(ExpiredBookingReason)
	cancelled := 0
	for _, booking := range stale {
		err := j.repo.UpdateStatus(ctx, booking.ID, entities.BookingStatusPending, entities.BookingStatusCancelled, reason)
		switch {
		case err == nil:
			cancelled++
		case errors.Is(err, domainerrors.ErrInvalidTransition), errors.Is(err, domainerrors.ErrNotFound):
			// confirmed or removed since it was listed
		default:
			logger.Error(ctx, "Failed to expire booking", zap.String("booking_id", booking.ID.String()), zap.Error(err))
		}
	}

	if cancelled > 0 {
		metrics.RecordBookingsExpired(cancelled)
		logger.Info(ctx, "Expired stale bookings", zap.Int("count", cancelled))
	}
	return cancelled
}
