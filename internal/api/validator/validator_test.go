package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roleRequest struct {
	Role string `json:"role" validate:"required,club_role"`
}

type blockRequest struct {
	Page      string `json:"page" validate:"required,page_section"`
	Direction string `json:"direction" validate:"required,move_direction"`
}

func TestClubRoleTag(t *testing.T) {
	v := NewValidator()
	require.NotNil(t, v)

	for _, role := range []string{"user", "editor", "admin"} {
		assert.NoError(t, v.Validate(&roleRequest{Role: role}), role)
	}

	// "test" is a reserved legacy role, never assignable.
	for _, role := range []string{"test", "superadmin", "Admin", ""} {
		assert.Error(t, v.Validate(&roleRequest{Role: role}), role)
	}
}

func TestPageSectionAndDirectionTags(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&blockRequest{Page: "aboutus", Direction: "up"}))
	assert.NoError(t, v.Validate(&blockRequest{Page: "membership", Direction: "down"}))

	assert.Error(t, v.Validate(&blockRequest{Page: "frontpage", Direction: "up"}))
	assert.Error(t, v.Validate(&blockRequest{Page: "aboutus", Direction: "sideways"}))
}

func TestValidationErrorsUseJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&roleRequest{Role: "test"})
	require.Error(t, err)

	ve, ok := err.(ValidationErrors)
	require.True(t, ok)

	formatted := ve.Format()
	require.Contains(t, formatted, "role")
	assert.Equal(t, "role must be one of 'user', 'editor' or 'admin'", formatted["role"])
	assert.Contains(t, ve.Error(), "role")
}

func TestFormatRequired(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&blockRequest{})
	require.Error(t, err)

	formatted := err.(ValidationErrors).Format()
	assert.Equal(t, "page is required", formatted["page"])
	assert.Equal(t, "direction is required", formatted["direction"])
}
