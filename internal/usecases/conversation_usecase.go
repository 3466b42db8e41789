package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/utils"
)

// ConversationUsecase handles conversations and their messages
type ConversationUsecase struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	userRepo         repositories.UserRepository
	bookingRepo      repositories.BookingRepository
	uow              repositories.UnitOfWork
}

// NewConversationUsecase creates a new conversation usecase
func NewConversationUsecase(
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	bookingRepo repositories.BookingRepository,
	uow repositories.UnitOfWork,
) *ConversationUsecase {
	return &ConversationUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		bookingRepo:      bookingRepo,
		uow:              uow,
	}
}

// CreateConversation returns the conversation for the pair, opening it if
// needed. The second result is true when a new row was inserted.
func (u *ConversationUsecase) CreateConversation(ctx context.Context, actor entities.Actor, input *entities.CreateConversationInput) (*entities.Conversation, bool, error) {
	p1, err := requireUUID("participant1", input.Participant1)
	if err != nil {
		return nil, false, err
	}
	p2, err := requireUUID("participant2", input.Participant2)
	if err != nil {
		return nil, false, err
	}
	bookingID, err := optionalUUID("bookingId", input.BookingID)
	if err != nil {
		return nil, false, err
	}
	if p1 == p2 {
		return nil, false, domainerrors.Validation("participants must be different users")
	}
	if !actor.IsAdmin() && actor.UserID != p1 && actor.UserID != p2 {
		return nil, false, domainerrors.Forbidden("caller must be a participant")
	}
	for _, id := range []uuid.UUID{p1, p2} {
		if _, err := u.userRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, false, domainerrors.NotFound("participant not found")
			}
			return nil, false, err
		}
	}

	var link uuid.NullUUID
	if bookingID != nil {
		booking, err := u.bookingRepo.GetByID(ctx, *bookingID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, false, domainerrors.NotFound("booking not found")
			}
			return nil, false, err
		}
		if !booking.IsParticipant(p1) || !booking.IsParticipant(p2) {
			return nil, false, domainerrors.Validation("booking does not belong to these participants")
		}
		link = uuid.NullUUID{UUID: *bookingID, Valid: true}
	}

	ts := now()
	conv, created, err := u.conversationRepo.GetOrCreate(ctx, &entities.Conversation{
		ID:             utils.GenerateUUIDv7(),
		Participant1ID: p1,
		Participant2ID: p2,
		BookingID:      link,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	})
	if err != nil {
		return nil, false, err
	}
	if !created && link.Valid && !conv.BookingID.Valid {
		if err := u.conversationRepo.LinkBooking(ctx, conv.ID, link.UUID); err != nil {
			return nil, false, err
		}
		conv.BookingID = link
	}
	if created {
		logger.Info(ctx, "Conversation opened", zap.String("conversation_id", conv.ID.String()))
	}
	return conv, created, nil
}

// ListConversations returns userID's conversations by last activity. Only
// admins may list someone else's.
func (u *ConversationUsecase) ListConversations(ctx context.Context, actor entities.Actor, userID *uuid.UUID) ([]*entities.Conversation, error) {
	subject, err := resolveSubject(actor, userID)
	if err != nil {
		return nil, err
	}
	return u.conversationRepo.ListForUser(ctx, subject)
}

// SendMessage stores a message from the caller and bumps the conversation's
// activity time in the same transaction.
func (u *ConversationUsecase) SendMessage(ctx context.Context, actor entities.Actor, input *entities.SendMessageInput) (*entities.Message, error) {
	convID, err := requireUUID("conversationId", input.ConversationID)
	if err != nil {
		return nil, err
	}
	if input.SenderID != "" && input.SenderID != actor.UserID.String() {
		return nil, domainerrors.Forbidden("senderId must be the authenticated user")
	}
	content := optionalString(input.Content)
	imageURL := optionalString(input.ImageURL)
	if content.Valid == imageURL.Valid {
		return nil, domainerrors.Validation("exactly one of content or imageUrl is required")
	}
	replyToID, err := optionalUUID("replyToId", input.ReplyToID)
	if err != nil {
		return nil, err
	}
	attachments := make([]string, 0, len(input.Attachments))
	for _, a := range input.Attachments {
		if a = strings.TrimSpace(a); a != "" {
			attachments = append(attachments, a)
		}
	}

	conv, err := u.conversationRepo.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(actor.UserID) {
		return nil, domainerrors.Forbidden("sender is not a participant")
	}

	var replyTo uuid.NullUUID
	if replyToID != nil {
		target, err := u.messageRepo.GetByID(ctx, *replyToID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.Validation("replyToId does not name a message")
			}
			return nil, err
		}
		if target.ConversationID != convID {
			return nil, domainerrors.Validation("replyToId belongs to another conversation")
		}
		replyTo = uuid.NullUUID{UUID: target.ID, Valid: true}
	}

	message := &entities.Message{
		ID:             utils.GenerateUUIDv7(),
		ConversationID: convID,
		SenderID:       actor.UserID,
		Content:        content,
		ImageURL:       imageURL,
		Attachments:    attachments,
		ReplyToID:      replyTo,
		CreatedAt:      now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.messageRepo.Create(txCtx, message); err != nil {
			return err
		}
		return u.conversationRepo.Touch(txCtx, convID, message.CreatedAt)
	})
	if err != nil {
		logger.Error(ctx, "Failed to send message", zap.String("conversation_id", convID.String()), zap.Error(err))
		return nil, err
	}

	stored, err := u.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		return message, nil
	}
	return stored, nil
}

// MessageListQuery carries the raw listing parameters
type MessageListQuery struct {
	ConversationID string
	Page           int
	Limit          int
	Order          string
}

// ListMessages returns a page of messages, newest first unless order=asc
func (u *ConversationUsecase) ListMessages(ctx context.Context, actor entities.Actor, query MessageListQuery) ([]*entities.Message, utils.PaginationMeta, error) {
	var meta utils.PaginationMeta

	convID, err := requireUUID("conversationId", query.ConversationID)
	if err != nil {
		return nil, meta, err
	}
	order := strings.ToLower(strings.TrimSpace(query.Order))
	switch order {
	case "", entities.MessageOrderDesc:
		order = entities.MessageOrderDesc
	case entities.MessageOrderAsc:
	default:
		return nil, meta, domainerrors.Validation("order must be asc or desc")
	}

	if err := u.requireParticipant(ctx, actor, convID); err != nil {
		return nil, meta, err
	}

	params := utils.GetPaginationParams(query.Page, query.Limit, entities.DefaultMessageLimit)
	messages, total, err := u.messageRepo.List(ctx, entities.MessageFilter{
		ConversationID: convID,
		Page:           params.Page,
		Limit:          params.Limit,
		Ascending:      order == entities.MessageOrderAsc,
	})
	if err != nil {
		return nil, meta, err
	}
	return messages, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// MarkRead flags the other participant's messages as read by the caller
func (u *ConversationUsecase) MarkRead(ctx context.Context, actor entities.Actor, conversationID uuid.UUID) (int64, error) {
	conv, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if !conv.HasParticipant(actor.UserID) {
		return 0, domainerrors.Forbidden("not a participant of this conversation")
	}
	return u.messageRepo.MarkRead(ctx, conversationID, actor.UserID)
}

func (u *ConversationUsecase) requireParticipant(ctx context.Context, actor entities.Actor, conversationID uuid.UUID) error {
	conv, err := u.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !conv.HasParticipant(actor.UserID) {
		return domainerrors.Forbidden("not a participant of this conversation")
	}
	return nil
}
