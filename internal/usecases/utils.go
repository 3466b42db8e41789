package usecases

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"houseman.backend/internal/domain/entities"
	domainerrors "houseman.backend/internal/domain/errors"
	"houseman.backend/pkg/utils"
)

var nowFunc = time.Now

// now is truncated to microseconds so values survive a postgres round trip.
func now() time.Time {
	return nowFunc().UTC().Truncate(time.Microsecond)
}

func requireUUID(field, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, domainerrors.Validation("%s is required", field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domainerrors.Validation("%s must be a valid id", field)
	}
	return id, nil
}

func optionalUUID(field, value string) (*uuid.UUID, error) {
	id, err := utils.ParseOptionalUUID(value)
	if err != nil {
		return nil, domainerrors.Validation("%s must be a valid id", field)
	}
	return id, nil
}

func requireString(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domainerrors.Validation("%s is required", field)
	}
	return value, nil
}

// optionalCurrency normalizes an ISO 4217 style code. Blank input returns "".
func optionalCurrency(value string) (string, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	if len(value) != 3 {
		return "", domainerrors.Validation("currency must be a 3-letter code")
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return "", domainerrors.Validation("currency must be a 3-letter code")
		}
	}
	return value, nil
}

// optionalString maps blank input to a null column.
func optionalString(value string) null.String {
	value = strings.TrimSpace(value)
	if value == "" {
		return null.String{}
	}
	return null.StringFrom(value)
}

// resolveSubject picks the user a request acts on: the caller by default,
// any user for admins, and only themselves for everyone else.
func resolveSubject(actor entities.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == actor.UserID {
		return actor.UserID, nil
	}
	if actor.IsAdmin() {
		return *requested, nil
	}
	return uuid.Nil, domainerrors.Forbidden("cannot act on behalf of another user")
}
