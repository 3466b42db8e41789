package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
)

// ConversationRepository defines conversation data operations
type ConversationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Conversation, error)
	GetByParticipants(ctx context.Context, a, b uuid.UUID) (*entities.Conversation, error)
	// GetOrCreate returns the conversation for the pair in conv, inserting conv
	// when none exists. created is false when an existing row was returned.
	GetOrCreate(ctx context.Context, conv *entities.Conversation) (result *entities.Conversation, created bool, err error)
	// LinkBooking sets booking_id only when the conversation has none.
	LinkBooking(ctx context.Context, id, bookingID uuid.UUID) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Conversation, error)
}

// MessageRepository defines message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error)
	List(ctx context.Context, filter entities.MessageFilter) ([]*entities.Message, int64, error)
	// MarkRead flags every unread message in the conversation not sent by readerID.
	MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error)
}
