package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation rows store the participant pair in canonical order.
type Conversation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Participant1ID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair"`
	Participant2ID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversations_pair"`
	BookingID      *uuid.UUID `gorm:"type:uuid"`
	LastMessageAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Participant1 *User `gorm:"foreignKey:Participant1ID"`
	Participant2 *User `gorm:"foreignKey:Participant2ID"`
}

type Message struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID  `gorm:"type:uuid;not null"`
	Content        *string    `gorm:"type:text"`
	ImageURL       *string    `gorm:"type:text"`
	Attachments    []string   `gorm:"type:jsonb;serializer:json"`
	ReplyToID      *uuid.UUID `gorm:"type:uuid"`
	IsRead         bool       `gorm:"not null"`
	CreatedAt      time.Time  `gorm:"index"`

	Sender  *User    `gorm:"foreignKey:SenderID"`
	ReplyTo *Message `gorm:"foreignKey:ReplyToID"`
}
