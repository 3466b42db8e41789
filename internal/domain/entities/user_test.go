package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestParseUserRole(t *testing.T) {
	role, ok := ParseUserRole("Provider")
	assert.True(t, ok)
	assert.Equal(t, UserRoleProvider, role)

	_, ok = ParseUserRole("superuser")
	assert.False(t, ok)

	assert.True(t, UserRoleClient.SelfRegistrable())
	assert.True(t, UserRoleProvider.SelfRegistrable())
	assert.False(t, UserRoleAdmin.SelfRegistrable())
}

func TestUserSummary(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.Summary())

	u := &User{ID: uuid.New(), FirstName: "Ada", LastName: "Nkem", Email: "ada@example.com", AvatarURL: null.StringFrom("a.png")}
	s := u.Summary()
	assert.Equal(t, u.ID, s.ID)
	assert.Equal(t, "Ada Nkem", s.FullName())
	assert.Equal(t, "a.png", s.AvatarURL.String)
}
