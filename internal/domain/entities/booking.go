package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BookingStatus represents the booking lifecycle state
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking date and time layouts
const (
	BookingDateLayout = "2006-01-02"
	BookingTimeLayout = "15:04"
)

// DefaultBookingDuration is the duration in minutes when none is given.
const DefaultBookingDuration = 60

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
}

// ParseBookingStatus accepts canonical names plus the "accepted" and
// "in_progress" spellings.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return BookingStatusPending, true
	case "confirmed", "accepted":
		return BookingStatusConfirmed, true
	case "in-progress", "in_progress":
		return BookingStatusInProgress, true
	case "completed":
		return BookingStatusCompleted, true
	case "cancelled", "canceled":
		return BookingStatusCancelled, true
	}
	return "", false
}

// CanTransition reports whether a booking may move from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition exists.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// Booking is a client's reservation of a provider's service
type Booking struct {
	ID                 uuid.UUID       `json:"id"`
	ClientID           uuid.UUID       `json:"clientId"`
	ProviderID         uuid.UUID       `json:"providerId"`
	ServiceID          uuid.UUID       `json:"serviceId"`
	Status             BookingStatus   `json:"status"`
	ScheduledDate      string          `json:"scheduledDate"`
	ScheduledTime      string          `json:"scheduledTime"`
	Duration           int             `json:"duration"`
	Price              float64         `json:"price"`
	Currency           string          `json:"currency"`
	Notes              null.String     `json:"notes"`
	Address            null.String     `json:"address"`
	CancellationReason null.String     `json:"cancellationReason"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	Service            *ServiceSummary `json:"service,omitempty"`
	Client             *UserSummary    `json:"client,omitempty"`
	Provider           *UserSummary    `json:"provider,omitempty"`
}

// IsParticipant reports whether userID is the booking's client or provider.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.ClientID == userID || b.ProviderID == userID
}

// BookingFilter narrows a booking listing
type BookingFilter struct {
	ClientID   *uuid.UUID
	ProviderID *uuid.UUID
	Status     BookingStatus
	Page       int
	Limit      int
}

// CreateBookingInput represents input for creating a booking
type CreateBookingInput struct {
	ServiceID     string   `json:"serviceId"`
	ClientID      string   `json:"clientId"`
	ProviderID    string   `json:"providerId"`
	ScheduledDate string   `json:"scheduledDate"`
	ScheduledTime string   `json:"scheduledTime"`
	Duration      *int     `json:"duration"`
	Price         *float64 `json:"price"`
	Currency      string   `json:"currency"`
	Notes         string   `json:"notes"`
	Address       string   `json:"address"`
}

// UpdateBookingStatusInput represents a requested status change
type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}
