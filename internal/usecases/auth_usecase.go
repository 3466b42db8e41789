package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/domain/repositories"
	"houseman.backend/pkg/crypto"
	"houseman.backend/pkg/jwt"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/redis"
	"houseman.backend/pkg/utils"
)

// SessionStore keeps token pairs server side, addressed by an opaque id
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	hashPassword      = crypto.HashPassword
	generateSessionID = crypto.GenerateSessionID
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	jwtService    *jwt.JWTService
	sessionStore  SessionStore
	sessionExpiry time.Duration
}

// NewAuthUsecase creates a new auth usecase. sessionStore may be nil, in
// which case session logins are refused.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore SessionStore,
	sessionExpiry time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		jwtService:    jwtService,
		sessionStore:  sessionStore,
		sessionExpiry: sessionExpiry,
	}
}

// Register creates a client or provider account
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	role, ok := entities.ParseUserRole(input.Role)
	if !ok || !role.SelfRegistrable() {
		return nil, domainerrors.Validation("role must be client or provider")
	}
	if len(input.Password) < crypto.MinPasswordLength {
		return nil, domainerrors.Validation("password must be at least %d characters", crypto.MinPasswordLength)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	firstName, err := requireString("firstName", input.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := requireString("lastName", input.LastName)
	if err != nil {
		return nil, err
	}

	_, err = u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	ts := now()
	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Phone:        optionalString(input.Phone),
		IsActive:     true,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, err
	}

	logger.Info(ctx, "User registered", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return user, nil
}

// Login authenticates a user and returns tokens, or a session id when the
// caller asks for a server-side session.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if !input.UseSession {
		return &entities.AuthResponse{
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
			User:         user,
		}, nil
	}

	sessionID, err := u.storeSession(ctx, user.ID, tokenPair)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		SessionID: sessionID,
		User:      user,
	}, nil
}

// RefreshToken exchanges a refresh token for a new pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := u.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// RefreshSession rotates the token pair stored behind sessionID
func (u *AuthUsecase) RefreshSession(ctx context.Context, sessionID string) error {
	if u.sessionStore == nil {
		return domainerrors.Unavailable("sessions are not configured")
	}
	session, err := u.sessionStore.GetSession(ctx, sessionID)
	if err != nil {
		return domainerrors.ErrUnauthorized
	}
	pair, err := u.RefreshToken(ctx, session.RefreshToken)
	if err != nil {
		return err
	}
	return u.sessionStore.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:       session.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, u.sessionExpiry)
}

// Logout drops a server-side session. Bearer-token clients just discard
// their tokens, so an empty id is not an error.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *AuthUsecase) activeUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}
	return user, nil
}

func (u *AuthUsecase) storeSession(ctx context.Context, userID uuid.UUID, pair *jwt.TokenPair) (string, error) {
	if u.sessionStore == nil {
		return "", domainerrors.Unavailable("sessions are not configured")
	}
	sessionID, err := generateSessionID()
	if err != nil {
		return "", err
	}
	err = u.sessionStore.CreateSession(ctx, sessionID, &redis.SessionData{
		UserID:       userID.String(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, u.sessionExpiry)
	if err != nil {
		logger.Error(ctx, "Failed to store session", zap.String("user_id", userID.String()), zap.Error(err))
		return "", err
	}
	return sessionID, nil
}
