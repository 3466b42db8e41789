package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
)

type bookingExpiryRepoStub struct {
	stale     []*entities.Booking
	listErr   error
	updateErr map[uuid.UUID]error
	lastDate  string
	updated   []uuid.UUID
	reasons   []null.String
}

func (s *bookingExpiryRepoStub) ListPendingBefore(_ context.Context, date string, _ int) ([]*entities.Booking, error) {
	s.lastDate = date
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.stale, nil
}

func (s *bookingExpiryRepoStub) UpdateStatus(_ context.Context, id uuid.UUID, from, to entities.BookingStatus, reason null.String) error {
	if from != entities.BookingStatusPending || to != entities.BookingStatusCancelled {
		return errors.New("unexpected transition")
	}
	if err := s.updateErr[id]; err != nil {
		return err
	}
	s.updated = append(s.updated, id)
	s.reasons = append(s.reasons, reason)
	return nil
}

func fixNow(t *testing.T, at time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = orig })
}

func TestProcessExpiredBookings_NoItems(t *testing.T) {
	fixNow(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	repo := &bookingExpiryRepoStub{}
	job := NewBookingExpiryJob(repo, time.Millisecond)

	require.Equal(t, 0, job.processExpiredBookings(context.Background()))
	require.Equal(t, "2025-03-10", repo.lastDate)
	require.Empty(t, repo.updated)
}

func TestProcessExpiredBookings_CancelsWithReason(t *testing.T) {
	fixNow(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	id1, id2 := uuid.New(), uuid.New()
	repo := &bookingExpiryRepoStub{stale: []*entities.Booking{{ID: id1}, {ID: id2}}}
	job := NewBookingExpiryJob(repo, time.Millisecond)

	require.Equal(t, 2, job.processExpiredBookings(context.Background()))
	require.ElementsMatch(t, []uuid.UUID{id1, id2}, repo.updated)
	for _, r := range repo.reasons {
		require.Equal(t, null.StringFrom(ExpiredBookingReason), r)
	}
}

func TestProcessExpiredBookings_SkipsRacedAndFailed(t *testing.T) {
	raced, gone, broken, ok := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	repo := &bookingExpiryRepoStub{
		stale: []*entities.Booking{{ID: raced}, {ID: gone}, {ID: broken}, {ID: ok}},
		updateErr: map[uuid.UUID]error{
			raced:  domainerrors.ErrInvalidTransition,
			gone:   domainerrors.ErrNotFound,
			broken: errors.New("db down"),
		},
	}
	job := NewBookingExpiryJob(repo, time.Millisecond)

	require.Equal(t, 1, job.processExpiredBookings(context.Background()))
	require.Equal(t, []uuid.UUID{ok}, repo.updated)
}

func TestProcessExpiredBookings_ListError(t *testing.T) {
	repo := &bookingExpiryRepoStub{listErr: errors.New("db down")}
	job := NewBookingExpiryJob(repo, time.Millisecond)

	require.Equal(t, 0, job.processExpiredBookings(context.Background()))
	require.Empty(t, repo.updated)
}

func TestNewBookingExpiryJob_DefaultInterval(t *testing.T) {
	job := NewBookingExpiryJob(&bookingExpiryRepoStub{}, 0)
	require.Equal(t, time.Minute, job.interval)
}

func TestStartStop_StopsByContext(t *testing.T) {
	job := NewBookingExpiryJob(&bookingExpiryRepoStub{}, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewBookingExpiryJob(&bookingExpiryRepoStub{}, time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}
