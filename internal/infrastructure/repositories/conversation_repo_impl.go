package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/infrastructure/models"
)

// ConversationRepository implements conversation data operations
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// GetByID gets a conversation by ID
func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Conversation, error) {
	var m models.Conversation
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return conversationToEntity(&m), nil
}

// GetByParticipants finds the conversation between a and b in either order
func (r *ConversationRepository) GetByParticipants(ctx context.Context, a, b uuid.UUID) (*entities.Conversation, error) {
	p1, p2 := entities.CanonicalPair(a, b)
	var m models.Conversation
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("participant1_id = ? AND participant2_id = ?", p1, p2).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return conversationToEntity(&m), nil
}

// GetOrCreate inserts conv unless its pair already exists. The insert skips
// on conflict so a concurrent creator's row is returned instead.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, conv *entities.Conversation) (*entities.Conversation, bool, error) {
	p1, p2 := entities.CanonicalPair(conv.Participant1ID, conv.Participant2ID)

	existing, err := r.GetByParticipants(ctx, p1, p2)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}

	m := &models.Conversation{
		ID:             conv.ID,
		Participant1ID: p1,
		Participant2ID: p2,
		BookingID:      uuidPtr(conv.BookingID),
		LastMessageAt:  conv.LastMessageAt.Ptr(),
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	}
	result := GetDB(ctx, r.db).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.GetByParticipants(ctx, p1, p2)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return conversationToEntity(m), true, nil
}

// LinkBooking sets booking_id when it is still empty
func (r *ConversationRepository) LinkBooking(ctx context.Context, id, bookingID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ? AND booking_id IS NULL", id).
		Update("booking_id", bookingID).Error
}

// Touch records activity at the given instant
func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"last_message_at": at, "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListForUser returns userID's conversations by last activity, each with the
// other participant, the latest message and the unread count for userID.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Conversation, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var rows []models.Conversation
	err := db.Preload("Participant1").Preload("Participant2").
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*entities.Conversation{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var unread []struct {
		ConversationID uuid.UUID
		Count          int64
	}
	if err := db.Model(&models.Message{}).
		Select("conversation_id, COUNT(*) AS count").
		Where("conversation_id IN ? AND sender_id <> ? AND is_read = ?", ids, userID, false).
		Group("conversation_id").
		Scan(&unread).Error; err != nil {
		return nil, err
	}
	unreadByConv := make(map[uuid.UUID]int64, len(unread))
	for _, u := range unread {
		unreadByConv[u.ConversationID] = u.Count
	}

	// Latest message per conversation: the row with no newer sibling.
	var latest []models.Message
	if err := db.Where("conversation_id IN ?", ids).
		Where("NOT EXISTS (SELECT 1 FROM messages AS newer WHERE newer.conversation_id = messages.conversation_id" +
			" AND (newer.created_at > messages.created_at OR (newer.created_at = messages.created_at AND newer.id > messages.id)))").
		Find(&latest).Error; err != nil {
		return nil, err
	}
	lastByConv := make(map[uuid.UUID]*models.Message, len(latest))
	for i := range latest {
		lastByConv[latest[i].ConversationID] = &latest[i]
	}

	out := make([]*entities.Conversation, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		conv := conversationToEntity(row)
		if row.Participant1ID == userID {
			conv.OtherParticipant = userSummary(row.Participant2)
		} else {
			conv.OtherParticipant = userSummary(row.Participant1)
		}
		conv.UnreadCount = unreadByConv[row.ID]
		if last, ok := lastByConv[row.ID]; ok {
			conv.LastMessage = &entities.MessagePreview{
				ID:        last.ID,
				SenderID:  last.SenderID,
				Content:   null.StringFromPtr(last.Content),
				ImageURL:  null.StringFromPtr(last.ImageURL),
				IsRead:    last.IsRead,
				CreatedAt: last.CreatedAt,
			}
		}
		out = append(out, conv)
	}
	return out, nil
}

func conversationToEntity(m *models.Conversation) *entities.Conversation {
	return &entities.Conversation{
		ID:             m.ID,
		Participant1ID: m.Participant1ID,
		Participant2ID: m.Participant2ID,
		BookingID:      nullUUID(m.BookingID),
		LastMessageAt:  null.TimeFromPtr(m.LastMessageAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// MessageRepository implements message data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, message *entities.Message) error {
	attachments := message.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	m := &models.Message{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Content:        message.Content.Ptr(),
		ImageURL:       message.ImageURL.Ptr(),
		Attachments:    attachments,
		ReplyToID:      uuidPtr(message.ReplyToID),
		IsRead:         message.IsRead,
		CreatedAt:      message.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	var m models.Message
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Sender").Preload("ReplyTo.Sender").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return messageToEntity(&m), nil
}

// List returns a page of a conversation's messages and the total count
func (r *MessageRepository) List(ctx context.Context, filter entities.MessageFilter) ([]*entities.Message, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.Message{}).
		Where("conversation_id = ?", filter.ConversationID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := " DESC"
	if filter.Ascending {
		dir = " ASC"
	}
	query := db.Preload("Sender").Preload("ReplyTo.Sender").
		Where("conversation_id = ?", filter.ConversationID).
		Order("created_at" + dir).Order("id" + dir)
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var rows []models.Message
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Message, 0, len(rows))
	for i := range rows {
		out = append(out, messageToEntity(&rows[i]))
	}
	return out, total, nil
}

// MarkRead flags the other participants' unread messages as read
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func messageToEntity(m *models.Message) *entities.Message {
	attachments := m.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	msg := &entities.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        null.StringFromPtr(m.Content),
		ImageURL:       null.StringFromPtr(m.ImageURL),
		Attachments:    attachments,
		ReplyToID:      nullUUID(m.ReplyToID),
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
		Sender:         userSummary(m.Sender),
	}
	if m.ReplyTo != nil {
		msg.ReplyTo = &entities.MessageReply{
			ID:         m.ReplyTo.ID,
			Content:    null.StringFromPtr(m.ReplyTo.Content),
			ImageURL:   null.StringFromPtr(m.ReplyTo.ImageURL),
			SenderName: userSummary(m.ReplyTo.Sender).FullName(),
		}
	}
	return msg
}
