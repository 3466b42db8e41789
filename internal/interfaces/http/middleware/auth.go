package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/interfaces/http/response"
	"houseman.backend/pkg/jwt"
	"houseman.backend/pkg/logger"
	"houseman.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// SessionHeader carries a server-side session id
	SessionHeader = "X-Session-Id"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
	// SessionIDKey is the context key for the session id, when one was used
	SessionIDKey = "sessionId"
)

// SessionReader resolves a session id to its stored tokens
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware accepts either an X-Session-Id header backed by the session
// store or an Authorization bearer token. sessions may be nil.
func AuthMiddleware(jwtService *jwt.JWTService, sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessions != nil {
			session, err := sessions.GetSession(c.Request.Context(), sessionID)
			if err != nil || session == nil {
				logger.Warn(c.Request.Context(), "Session lookup failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
				response.Abort(c, domainerrors.Unauthorized("invalid or expired session"))
				return
			}
			tokenString = session.AccessToken
			c.Set(SessionIDKey, sessionID)
		}

		if tokenString == "" {
			authHeader := c.GetHeader(AuthorizationHeader)
			if authHeader == "" {
				response.Abort(c, domainerrors.Unauthorized("authorization header is required"))
				return
			}
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				response.Abort(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
				return
			}
			tokenString = strings.TrimPrefix(authHeader, BearerPrefix)
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Abort(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "token has expired", domainerrors.ErrTokenExpired))
				return
			}
			response.Abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}
		if _, ok := entities.ParseUserRole(claims.Role); !ok {
			response.Abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (entities.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	if !ok {
		return "", false
	}
	return entities.ParseUserRole(s)
}

// GetActor returns the authenticated caller
func GetActor(c *gin.Context) (entities.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return entities.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return entities.Actor{}, false
	}
	return entities.Actor{UserID: id, Role: role}, true
}

// GetSessionID returns the session id used to authenticate, if any
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			response.Abort(c, domainerrors.Unauthorized("user role not found"))
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Abort(c, domainerrors.Forbidden("insufficient permissions"))
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.UserRoleAdmin)
}
