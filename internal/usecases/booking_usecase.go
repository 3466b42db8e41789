package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/metrics"
	"houseman.backend/pkg/utils"
)

// BookingDefaults are applied when a booking request leaves a field out
type BookingDefaults struct {
	Currency string
	Duration int
}

// BookingUsecase handles the booking lifecycle
type BookingUsecase struct {
	bookingRepo      repositories.BookingRepository
	serviceRepo      repositories.ServiceRepository
	userRepo         repositories.UserRepository
	conversationRepo repositories.ConversationRepository
	uow              repositories.UnitOfWork
	defaults         BookingDefaults
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	serviceRepo repositories.ServiceRepository,
	userRepo repositories.UserRepository,
	conversationRepo repositories.ConversationRepository,
	uow repositories.UnitOfWork,
	defaults BookingDefaults,
) *BookingUsecase {
	if defaults.Currency == "" {
		defaults.Currency = entities.DefaultCurrency
	}
	if defaults.Duration <= 0 {
		defaults.Duration = entities.DefaultBookingDuration
	}
	return &BookingUsecase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		uow:              uow,
		defaults:         defaults,
	}
}

// CreateBooking validates the request, snapshots the service price and
// persists the booking together with the client/provider conversation.
func (u *BookingUsecase) CreateBooking(ctx context.Context, actor entities.Actor, input *entities.CreateBookingInput) (*entities.Booking, error) {
	serviceID, err := requireUUID("serviceId", input.ServiceID)
	if err != nil {
		return nil, err
	}
	providerID, err := requireUUID("providerId", input.ProviderID)
	if err != nil {
		return nil, err
	}
	clientID, err := u.resolveClient(actor, input.ClientID)
	if err != nil {
		return nil, err
	}
	date, err := requireString("scheduledDate", input.ScheduledDate)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(entities.BookingDateLayout, date); err != nil {
		return nil, domainerrors.Validation("scheduledDate must be YYYY-MM-DD")
	}
	clock, err := requireString("scheduledTime", input.ScheduledTime)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(entities.BookingTimeLayout, clock); err != nil {
		return nil, domainerrors.Validation("scheduledTime must be HH:MM")
	}
	duration := u.defaults.Duration
	if input.Duration != nil {
		if *input.Duration <= 0 {
			return nil, domainerrors.Validation("duration must be positive")
		}
		duration = *input.Duration
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, domainerrors.Validation("price must not be negative")
	}
	currency, err := optionalCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	if clientID == providerID {
		return nil, domainerrors.Validation("a provider cannot book their own service")
	}

	service, err := u.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("service not found")
		}
		return nil, err
	}
	if !service.IsActive {
		return nil, domainerrors.Validation("service is not available")
	}
	if service.ProviderID != providerID {
		return nil, domainerrors.Validation("providerId does not match the service provider")
	}
	if _, err := u.userRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("client not found")
		}
		return nil, err
	}

	price := service.Price
	if input.Price != nil && *input.Price > 0 {
		price = *input.Price
	}
	if currency == "" {
		currency = service.Currency
	}
	if currency == "" {
		currency = u.defaults.Currency
	}

	ts := now()
	booking := &entities.Booking{
		ID:            utils.GenerateUUIDv7(),
		ClientID:      clientID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		Status:        entities.BookingStatusPending,
		ScheduledDate: date,
		ScheduledTime: clock,
		Duration:      duration,
		Price:         price,
		Currency:      currency,
		Notes:         optionalString(input.Notes),
		Address:       optionalString(input.Address),
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.bookingRepo.Create(txCtx, booking); err != nil {
			return err
		}
		conv, created, err := u.conversationRepo.GetOrCreate(txCtx, &entities.Conversation{
			ID:             utils.GenerateUUIDv7(),
			Participant1ID: clientID,
			Participant2ID: providerID,
			BookingID:      uuid.NullUUID{UUID: booking.ID, Valid: true},
			CreatedAt:      ts,
			UpdatedAt:      ts,
		})
		if err != nil {
			return err
		}
		if !created && !conv.BookingID.Valid {
			return u.conversationRepo.LinkBooking(txCtx, conv.ID, booking.ID)
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "Failed to create booking", zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("provider_id", providerID.String()),
	)

	created, err := u.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		return booking, nil
	}
	return created, nil
}

// resolveClient returns the booking's client: the caller for clients, the
// named client for admins.
func (u *BookingUsecase) resolveClient(actor entities.Actor, requested string) (uuid.UUID, error) {
	switch actor.Role {
	case entities.UserRoleAdmin:
		return requireUUID("clientId", requested)
	case entities.UserRoleClient:
		id, err := optionalUUID("clientId", requested)
		if err != nil {
			return uuid.Nil, err
		}
		if id != nil && *id != actor.UserID {
			return uuid.Nil, domainerrors.Forbidden("clients can only book for themselves")
		}
		return actor.UserID, nil
	default:
		return uuid.Nil, domainerrors.Forbidden("only clients can create bookings")
	}
}

// BookingListQuery carries the raw listing parameters
type BookingListQuery struct {
	UserID string
	Role   string
	Status string
	Page   int
	Limit  int
}

// ListBookings returns the caller's bookings. Scope follows the caller's
// role; admins may narrow to one user with UserID and Role.
func (u *BookingUsecase) ListBookings(ctx context.Context, actor entities.Actor, query BookingListQuery) ([]*entities.Booking, utils.PaginationMeta, error) {
	var meta utils.PaginationMeta

	requestedID, err := optionalUUID("userId", query.UserID)
	if err != nil {
		return nil, meta, err
	}
	var requestedRole entities.UserRole
	if strings.TrimSpace(query.Role) != "" {
		role, ok := entities.ParseUserRole(query.Role)
		if !ok {
			return nil, meta, domainerrors.Validation("role must be client, provider or admin")
		}
		requestedRole = role
	}

	filter := entities.BookingFilter{}
	if strings.TrimSpace(query.Status) != "" {
		status, ok := entities.ParseBookingStatus(query.Status)
		if !ok {
			return nil, meta, domainerrors.Validation("unknown booking status %q", query.Status)
		}
		filter.Status = status
	}

	if actor.IsAdmin() {
		if requestedID != nil {
			switch requestedRole {
			case entities.UserRoleProvider:
				filter.ProviderID = requestedID
			case entities.UserRoleClient, "":
				filter.ClientID = requestedID
			default:
				return nil, meta, domainerrors.Validation("role must be client or provider when filtering by user")
			}
		}
	} else {
		if requestedID != nil && *requestedID != actor.UserID {
			return nil, meta, domainerrors.Forbidden("cannot list another user's bookings")
		}
		if requestedRole != "" && requestedRole != actor.Role {
			return nil, meta, domainerrors.Forbidden("role does not match the authenticated user")
		}
		me := actor.UserID
		if actor.Role == entities.UserRoleProvider {
			filter.ProviderID = &me
		} else {
			filter.ClientID = &me
		}
	}

	params := utils.GetPaginationParams(query.Page, query.Limit, DefaultBookingPageLimit)
	filter.Page = params.Page
	filter.Limit = params.Limit

	bookings, total, err := u.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, meta, err
	}
	return bookings, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// GetBooking returns a booking visible to its participants and admins
func (u *BookingUsecase) GetBooking(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Booking, error) {
	booking, err := u.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !booking.IsParticipant(actor.UserID) {
		return nil, domainerrors.Forbidden("not a participant of this booking")
	}
	return booking, nil
}

// UpdateStatus applies one lifecycle step. The provider drives the booking
// forward, either participant may cancel, and admins may do both.
func (u *BookingUsecase) UpdateStatus(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateBookingStatusInput) (*entities.Booking, error) {
	next, ok := entities.ParseBookingStatus(input.Status)
	if !ok {
		return nil, domainerrors.Validation("unknown booking status %q", input.Status)
	}

	booking, err := u.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !booking.IsParticipant(actor.UserID) {
		return nil, domainerrors.Forbidden("not a participant of this booking")
	}

	current := booking.Status
	if !current.CanTransition(next) {
		return nil, domainerrors.InvalidTransition(string(current), string(next))
	}
	if !canDrive(actor, booking, next) {
		return nil, domainerrors.InvalidTransition(string(current), string(next))
	}

	var reason null.String
	if next == entities.BookingStatusCancelled {
		reason = optionalString(input.Reason)
	}

	if err := u.bookingRepo.UpdateStatus(ctx, id, current, next, reason); err != nil {
		if errors.Is(err, domainerrors.ErrInvalidTransition) {
			return nil, domainerrors.InvalidTransition(string(current), string(next))
		}
		return nil, err
	}

	metrics.RecordBookingTransition(string(current), string(next))
	logger.Info(ctx, "Booking status changed",
		zap.String("booking_id", id.String()),
		zap.String("from", string(current)),
		zap.String("to", string(next)),
		zap.String("actor_id", actor.UserID.String()),
	)

	return u.bookingRepo.GetByID(ctx, id)
}

func canDrive(actor entities.Actor, booking *entities.Booking, next entities.BookingStatus) bool {
	if actor.IsAdmin() {
		return true
	}
	if next == entities.BookingStatusCancelled {
		return booking.IsParticipant(actor.UserID)
	}
	return booking.ProviderID == actor.UserID
}
