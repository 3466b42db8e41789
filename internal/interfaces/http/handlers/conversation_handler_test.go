package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/usecases"
	"houseman.backend/pkg/utils"
)

type conversationServiceStub struct {
	createFn       func(ctx context.Context, actor entities.Actor, input *entities.CreateConversationInput) (*entities.Conversation, bool, error)
	listFn         func(ctx context.Context, actor entities.Actor, userID *uuid.UUID) ([]*entities.Conversation, error)
	sendFn         func(ctx context.Context, actor entities.Actor, input *entities.SendMessageInput) (*entities.Message, error)
	listMessagesFn func(ctx context.Context, actor entities.Actor, query usecases.MessageListQuery) ([]*entities.Message, utils.PaginationMeta, error)
	markReadFn     func(ctx context.Context, actor entities.Actor, conversationID uuid.UUID) (int64, error)
}

func (s conversationServiceStub) CreateConversation(ctx context.Context, actor entities.Actor, input *entities.CreateConversationInput) (*entities.Conversation, bool, error) {
	return s.createFn(ctx, actor, input)
}
func (s conversationServiceStub) ListConversations(ctx context.Context, actor entities.Actor, userID *uuid.UUID) ([]*entities.Conversation, error) {
	return s.listFn(ctx, actor, userID)
}
func (s conversationServiceStub) SendMessage(ctx context.Context, actor entities.Actor, input *entities.SendMessageInput) (*entities.Message, error) {
	return s.sendFn(ctx, actor, input)
}
func (s conversationServiceStub) ListMessages(ctx context.Context, actor entities.Actor, query usecases.MessageListQuery) ([]*entities.Message, utils.PaginationMeta, error) {
	return s.listMessagesFn(ctx, actor, query)
}
func (s conversationServiceStub) MarkRead(ctx context.Context, actor entities.Actor, conversationID uuid.UUID) (int64, error) {
	return s.markReadFn(ctx, actor, conversationID)
}

func TestConversationHandler_Create(t *testing.T) {
	client := testActor(entities.UserRoleClient)
	existing := &entities.Conversation{ID: uuid.New()}
	h := NewConversationHandler(conversationServiceStub{
		createFn: func(_ context.Context, _ entities.Actor, input *entities.CreateConversationInput) (*entities.Conversation, bool, error) {
			switch input.Participant2 {
			case "":
				return nil, false, domainerrors.Validation("participant2 is required")
			case "existing":
				return existing, false, nil
			}
			return &entities.Conversation{ID: uuid.New()}, true, nil
		},
	})
	r := newTestRouter()
	r.POST("/conversations", asActor(client), h.CreateConversation)

	w := doJSON(r, http.MethodPost, "/conversations", map[string]string{"participant1": client.UserID.String(), "participant2": uuid.NewString()})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/conversations", map[string]string{"participant1": client.UserID.String(), "participant2": "existing"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), existing.ID.String())

	w = doJSON(r, http.MethodPost, "/conversations", map[string]string{"participant1": client.UserID.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConversationHandler_ListAndMarkRead(t *testing.T) {
	provider := testActor(entities.UserRoleProvider)
	convID := uuid.New()
	var listedFor *uuid.UUID
	h := NewConversationHandler(conversationServiceStub{
		listFn: func(_ context.Context, _ entities.Actor, userID *uuid.UUID) ([]*entities.Conversation, error) {
			listedFor = userID
			return []*entities.Conversation{{ID: convID, UnreadCount: 2}}, nil
		},
		markReadFn: func(_ context.Context, _ entities.Actor, id uuid.UUID) (int64, error) {
			if id != convID {
				return 0, domainerrors.ErrNotFound
			}
			return 2, nil
		},
	})
	r := newTestRouter()
	r.GET("/conversations", asActor(provider), h.ListConversations)
	r.POST("/conversations/:id/read", asActor(provider), h.MarkRead)

	w := doJSON(r, http.MethodGet, "/conversations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, listedFor)
	assert.Contains(t, w.Body.String(), `"unreadCount":2`)

	w = doJSON(r, http.MethodGet, "/conversations?userId="+provider.UserID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, listedFor)
	assert.Equal(t, provider.UserID, *listedFor)

	w = doJSON(r, http.MethodPost, "/conversations/"+convID.String()+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["updated"])

	w = doJSON(r, http.MethodPost, "/conversations/"+uuid.NewString()+"/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConversationHandler_Messages(t *testing.T) {
	client := testActor(entities.UserRoleClient)
	var query usecases.MessageListQuery
	h := NewConversationHandler(conversationServiceStub{
		sendFn: func(_ context.Context, actor entities.Actor, input *entities.SendMessageInput) (*entities.Message, error) {
			if input.Content == "" && input.ImageURL == "" {
				return nil, domainerrors.Validation("exactly one of content or imageUrl is required")
			}
			return &entities.Message{ID: uuid.New(), SenderID: actor.UserID}, nil
		},
		listMessagesFn: func(_ context.Context, _ entities.Actor, q usecases.MessageListQuery) ([]*entities.Message, utils.PaginationMeta, error) {
			query = q
			return []*entities.Message{}, utils.CalculateMeta(0, 1, 50), nil
		},
	})
	r := newTestRouter()
	r.POST("/messages", asActor(client), h.SendMessage)
	r.GET("/messages", asActor(client), h.ListMessages)

	w := doJSON(r, http.MethodPost, "/messages", map[string]string{"conversationId": uuid.NewString(), "content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), client.UserID.String())

	w = doJSON(r, http.MethodPost, "/messages", map[string]string{"conversationId": uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	convID := uuid.NewString()
	w = doJSON(r, http.MethodGet, "/messages?conversationId="+convID+"&order=asc&limit=20", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, convID, query.ConversationID)
	assert.Equal(t, "asc", query.Order)
	assert.Equal(t, 20, query.Limit)
	assert.Contains(t, decodeBody(t, w), "pagination")
}
