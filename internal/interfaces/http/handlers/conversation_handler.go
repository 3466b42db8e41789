package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/interfaces/http/response"
	"houseman.backend/internal/usecases"
	"houseman.backend/pkg/utils"
)

type ConversationService interface {
	CreateConversation(ctx context.Context, actor entities.Actor, input *entities.CreateConversationInput) (*entities.Conversation, bool, error)
	ListConversations(ctx context.Context, actor entities.Actor, userID *uuid.UUID) ([]*entities.Conversation, error)
	SendMessage(ctx context.Context, actor entities.Actor, input *entities.SendMessageInput) (*entities.Message, error)
	ListMessages(ctx context.Context, actor entities.Actor, query usecases.MessageListQuery) ([]*entities.Message, utils.PaginationMeta, error)
	MarkRead(ctx context.Context, actor entities.Actor, conversationID uuid.UUID) (int64, error)
}

// ConversationHandler handles conversation and message endpoints
type ConversationHandler struct {
	conversationUsecase ConversationService
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(conversationUsecase ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationUsecase: conversationUsecase}
}

// CreateConversation returns the conversation for a pair, creating it if needed
// POST /api/v1/conversations
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.CreateConversationInput
	if !bindJSON(c, &input) {
		return
	}

	conv, created, err := h.conversationUsecase.CreateConversation(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"conversation": conv})
}

// ListConversations lists the caller's conversations by last activity
// GET /api/v1/conversations
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}

	convs, err := h.conversationUsecase.ListConversations(c.Request.Context(), actor, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

// MarkRead marks the other participant's messages as read
// POST /api/v1/conversations/:id/read
func (h *ConversationHandler) MarkRead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "conversation")
	if !ok {
		return
	}

	updated, err := h.conversationUsecase.MarkRead(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}

// SendMessage posts a message to a conversation
// POST /api/v1/messages
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.SendMessageInput
	if !bindJSON(c, &input) {
		return
	}

	message, err := h.conversationUsecase.SendMessage(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": message})
}

// ListMessages pages through a conversation
// GET /api/v1/messages
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	messages, meta, err := h.conversationUsecase.ListMessages(c.Request.Context(), actor, usecases.MessageListQuery{
		ConversationID: c.Query("conversationId"),
		Page:           queryInt(c, "page"),
		Limit:          queryInt(c, "limit"),
		Order:          c.Query("order"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"messages":   messages,
		"pagination": meta,
	})
}
