package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/pkg/redis"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[entities.UserRole]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.UserRole]int64), args.Error(1)
}

// Mock ServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *entities.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context, filter entities.ServiceFilter) ([]*entities.Service, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Service), args.Get(1).(int64), args.Error(2)
}

// Mock CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActive(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

// Mock BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, filter entities.BookingFilter) ([]*entities.Booking, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.BookingStatus, reason null.String) error {
	return m.Called(ctx, id, from, to, reason).Error(0)
}

func (m *MockBookingRepository) ListPendingBefore(ctx context.Context, date string, limit int) ([]*entities.Booking, error) {
	args := m.Called(ctx, date, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context) (map[entities.BookingStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.BookingStatus]int64), args.Error(1)
}

// Mock ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetByParticipants(ctx context.Context, a, b uuid.UUID) (*entities.Conversation, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetOrCreate(ctx context.Context, conv *entities.Conversation) (*entities.Conversation, bool, error) {
	args := m.Called(ctx, conv)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*entities.Conversation), args.Bool(1), args.Error(2)
}

func (m *MockConversationRepository) LinkBooking(ctx context.Context, id, bookingID uuid.UUID) error {
	return m.Called(ctx, id, bookingID).Error(0)
}

func (m *MockConversationRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockConversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Conversation), args.Error(1)
}

// Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entities.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, filter entities.MessageFilter) ([]*entities.Message, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, conversationID, readerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, conversationID, readerID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock KYCRepository
type MockKYCRepository struct {
	mock.Mock
}

func (m *MockKYCRepository) Create(ctx context.Context, kyc *entities.KYCVerification) error {
	return m.Called(ctx, kyc).Error(0)
}

func (m *MockKYCRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.KYCVerification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KYCVerification), args.Error(1)
}

func (m *MockKYCRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.KYCVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.KYCVerification), args.Error(1)
}

func (m *MockKYCRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.KYCVerification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.KYCVerification), args.Error(1)
}

func (m *MockKYCRepository) List(ctx context.Context, filter entities.KYCFilter) ([]*entities.KYCVerification, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.KYCVerification), args.Error(1)
}

func (m *MockKYCRepository) UpdateReview(ctx context.Context, kyc *entities.KYCVerification, from entities.KYCStatus) error {
	return m.Called(ctx, kyc, from).Error(0)
}

func (m *MockKYCRepository) CountByStatus(ctx context.Context, status entities.KYCStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	return m.Called(ctx, sessionID, data, expiration).Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.SessionData), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// Mock FileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
