package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus(t *testing.T) {
	cases := map[string]BookingStatus{
		"pending":     BookingStatusPending,
		"accepted":    BookingStatusConfirmed,
		"Confirmed":   BookingStatusConfirmed,
		"in_progress": BookingStatusInProgress,
		"in-progress": BookingStatusInProgress,
		"completed":   BookingStatusCompleted,
		" cancelled ": BookingStatusCancelled,
	}
	for in, want := range cases {
		got, ok := ParseBookingStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseBookingStatus("archived")
	assert.False(t, ok)
}

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress,
		BookingStatusCompleted, BookingStatusCancelled,
	}
	allowed := map[[2]BookingStatus]bool{
		{BookingStatusPending, BookingStatusConfirmed}:    true,
		{BookingStatusPending, BookingStatusCancelled}:    true,
		{BookingStatusConfirmed, BookingStatusInProgress}: true,
		{BookingStatusConfirmed, BookingStatusCancelled}:  true,
		{BookingStatusInProgress, BookingStatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]BookingStatus{from, to}], from.CanTransition(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusInProgress.IsTerminal())
}

func TestBookingIsParticipant(t *testing.T) {
	b := &Booking{ClientID: uuid.New(), ProviderID: uuid.New()}
	assert.True(t, b.IsParticipant(b.ClientID))
	assert.True(t, b.IsParticipant(b.ProviderID))
	assert.False(t, b.IsParticipant(uuid.New()))
}
