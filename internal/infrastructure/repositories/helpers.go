package repositories

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/internal/infrastructure/models"
)

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return err
}

// isUniqueViolation matches translated duplicate-key errors and, for drivers
// without translation, the raw postgres / sqlite messages.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func nullUUID(p *uuid.UUID) uuid.NullUUID {
	if p == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *p, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func userSummary(m *models.User) *entities.UserSummary {
	if m == nil {
		return nil
	}
	return &entities.UserSummary{
		ID:         m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		AvatarURL:  null.StringFromPtr(m.AvatarURL),
		Role:       entities.UserRole(m.Role),
		IsVerified: m.IsVerified,
	}
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         entities.UserRole(m.Role),
		Phone:        null.StringFromPtr(m.Phone),
		AvatarURL:    null.StringFromPtr(m.AvatarURL),
		IsVerified:   m.IsVerified,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// likeEscape is the escape clause paired with likePattern; sqlite has no
// default LIKE escape character.
const likeEscape = ` ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds a case-insensitive contains pattern with LIKE
// metacharacters in search matched literally.
func likePattern(search string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
