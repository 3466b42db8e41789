package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleClient   UserRole = "client"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"
)

// ParseUserRole accepts a role name in any case.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case UserRoleClient:
		return UserRoleClient, true
	case UserRoleProvider:
		return UserRoleProvider, true
	case UserRoleAdmin:
		return UserRoleAdmin, true
	}
	return "", false
}

// SelfRegistrable reports whether the role may be picked at sign-up.
func (r UserRole) SelfRegistrable() bool {
	return r == UserRoleClient || r == UserRoleProvider
}

// User represents a user entity
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Role         UserRole    `json:"role"`
	Phone        null.String `json:"phone"`
	AvatarURL    null.String `json:"avatarUrl"`
	IsVerified   bool        `json:"isVerified"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Summary returns the public projection joined onto other resources.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		AvatarURL:  u.AvatarURL,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	}
}

// UserSummary is the slice of a user embedded in bookings, services, messages
type UserSummary struct {
	ID         uuid.UUID   `json:"id"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Email      string      `json:"email,omitempty"`
	AvatarURL  null.String `json:"avatarUrl"`
	Role       UserRole    `json:"role,omitempty"`
	IsVerified bool        `json:"isVerified"`
}

// FullName joins first and last name.
func (s *UserSummary) FullName() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// RegisterInput represents input for self-registration
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" binding:"required,max=100"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// RefreshInput carries the refresh token for a new pair
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// UserFilter narrows the admin user listing
type UserFilter struct {
	Search string
	Role   UserRole
}

// Actor is the authenticated caller. Its role always comes from the verified
// token or session, never from request input.
type Actor struct {
	UserID uuid.UUID
	Role   UserRole
}

// IsAdmin reports whether the caller acts with admin rights.
func (a Actor) IsAdmin() bool {
	return a.Role == UserRoleAdmin
}
