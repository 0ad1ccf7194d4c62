package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubhouse/internal/policy"
)

func TestValidPartition(t *testing.T) {
	valid := [][2]string{
		{PageAboutUs, ""},
		{PageMembership, ""},
		{PageMembership, SubTop},
		{PageMembership, SubBottom},
	}
	for _, p := range valid {
		assert.True(t, ValidPartition(p[0], p[1]), "%s/%s", p[0], p[1])
	}

	// sub is only meaningful on the membership page.
	invalid := [][2]string{
		{"frontpage", ""},
		{PageAboutUs, SubTop},
		{PageMembership, "middle"},
		{"", SubTop},
		{"", ""},
	}
	for _, p := range invalid {
		assert.False(t, ValidPartition(p[0], p[1]), "%s/%s", p[0], p[1])
	}
}

func TestUserActorNormalizesRole(t *testing.T) {
	u := &User{Role: "test"}
	u.ID = "u-1"

	actor := u.Actor()
	require.NotNil(t, actor)
	assert.Equal(t, "u-1", actor.UID)
	assert.Equal(t, policy.RoleUser, actor.Role)

	u.Role = policy.RoleAdmin
	assert.Equal(t, policy.RoleAdmin, u.Actor().Role)
}

func TestAttributionSnapshot(t *testing.T) {
	u := &User{FirstName: "Anna", LastName: "Berg", Email: "anna@club.test"}

	attr := u.Attribution()
	assert.Equal(t, "Anna", attr.FirstName)
	assert.Equal(t, "Berg", attr.LastName)
	assert.Equal(t, "anna@club.test", attr.Email)

	// The snapshot is a copy; later profile edits leave it untouched.
	u.Email = "new@club.test"
	assert.Equal(t, "anna@club.test", attr.Email)
}

func TestOwnedOwnerUID(t *testing.T) {
	e := &Event{}
	assert.Equal(t, "", e.OwnerUID())

	e.UserID = "u-9"
	assert.Equal(t, "u-9", e.OwnerUID())
	assert.Equal(t, &e.Owned, e.Meta())
}
