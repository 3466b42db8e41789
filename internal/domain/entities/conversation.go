package entities

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Message ordering
const (
	MessageOrderAsc  = "asc"
	MessageOrderDesc = "desc"

	DefaultMessageLimit = 50
)

// Conversation is a message thread between two users
type Conversation struct {
	ID               uuid.UUID       `json:"id"`
	Participant1ID   uuid.UUID       `json:"participant1Id"`
	Participant2ID   uuid.UUID       `json:"participant2Id"`
	BookingID        uuid.NullUUID   `json:"bookingId"`
	LastMessageAt    null.Time       `json:"lastMessageAt"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	OtherParticipant *UserSummary    `json:"otherParticipant,omitempty"`
	LastMessage      *MessagePreview `json:"lastMessage,omitempty"`
	UnreadCount      int64           `json:"unreadCount"`
}

// CanonicalPair orders two ids so a pair has a single stored form.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipantID returns the participant that is not userID.
func (c *Conversation) OtherParticipantID(userID uuid.UUID) uuid.UUID {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// Message is a single entry of a conversation. Messages are immutable apart
// from the read flag.
type Message struct {
	ID             uuid.UUID     `json:"id"`
	ConversationID uuid.UUID     `json:"conversationId"`
	SenderID       uuid.UUID     `json:"senderId"`
	Content        null.String   `json:"content"`
	ImageURL       null.String   `json:"imageUrl"`
	Attachments    []string      `json:"attachments"`
	ReplyToID      uuid.NullUUID `json:"replyToId"`
	IsRead         bool          `json:"isRead"`
	CreatedAt      time.Time     `json:"createdAt"`
	Sender         *UserSummary  `json:"sender,omitempty"`
	ReplyTo        *MessageReply `json:"replyTo,omitempty"`
}

// MessageReply is the quoted message shown above a reply
type MessageReply struct {
	ID         uuid.UUID   `json:"id"`
	Content    null.String `json:"content"`
	ImageURL   null.String `json:"imageUrl"`
	SenderName string      `json:"senderName"`
}

// MessagePreview summarizes the latest message of a conversation
type MessagePreview struct {
	ID        uuid.UUID   `json:"id"`
	SenderID  uuid.UUID   `json:"senderId"`
	Content   null.String `json:"content"`
	ImageURL  null.String `json:"imageUrl"`
	IsRead    bool        `json:"isRead"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MessageFilter selects a page of messages
type MessageFilter struct {
	ConversationID uuid.UUID
	Page           int
	Limit          int
	Ascending      bool
}

// CreateConversationInput represents input for opening a conversation
type CreateConversationInput struct {
	Participant1 string `json:"participant1"`
	Participant2 string `json:"participant2"`
	BookingID    string `json:"bookingId"`
}

// SendMessageInput represents input for sending a message
type SendMessageInput struct {
	ConversationID string   `json:"conversationId"`
	SenderID       string   `json:"senderId"`
	Content        string   `json:"content"`
	ImageURL       string   `json:"imageUrl"`
	ReplyToID      string   `json:"replyToId"`
	Attachments    []string `json:"attachments"`
}
