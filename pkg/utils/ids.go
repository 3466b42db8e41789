package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUIDv7 returns a time-ordered id, falling back to v4.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ParseOptionalUUID parses s, treating blank input as "absent".
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
