package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ownedResource is a minimal Resource for tests.
type ownedResource struct {
	owner string
}

func (r ownedResource) OwnerUID() string { return r.owner }

// nilOwner is a pointer implementation used to prove Decide survives a
// typed-nil resource.
type nilOwner struct{ owner string }

func (r *nilOwner) OwnerUID() string { return r.owner }

var allActions = []Action{ActionCreate, ActionUpdate, ActionDelete, ActionReorder, ActionViewAdminSurface}

func TestAdminAllowsEverything(t *testing.T) {
	admin := &Actor{UID: "A1", Role: RoleAdmin}
	other := ownedResource{owner: "U2"}

	for _, action := range allActions {
		assert.True(t, CanPerform(action, admin, other), "admin denied %s", action)
		assert.True(t, CanPerform(action, admin, nil), "admin denied %s on nil resource", action)
	}
}

func TestUserDeniedAllMutations(t *testing.T) {
	user := &Actor{UID: "U1", Role: RoleUser}
	own := ownedResource{owner: "U1"}

	for _, action := range allActions {
		assert.False(t, CanPerform(action, user, own), "user allowed %s", action)
	}
}

func TestAnonymousDeniedEverything(t *testing.T) {
	for _, action := range allActions {
		assert.False(t, CanPerform(action, nil, ownedResource{owner: "U1"}))
		assert.False(t, CanPerform(action, nil, nil))
	}
}

func TestEditorOwnership(t *testing.T) {
	editor := &Actor{UID: "U1", Role: RoleEditor}

	assert.True(t, CanPerform(ActionCreate, editor, nil))

	own := ownedResource{owner: "U1"}
	foreign := ownedResource{owner: "U2"}

	assert.True(t, CanPerform(ActionUpdate, editor, own))
	assert.True(t, CanPerform(ActionDelete, editor, own))
	assert.False(t, CanPerform(ActionUpdate, editor, foreign))
	assert.False(t, CanPerform(ActionDelete, editor, foreign))
}

func TestEditorDeniedForeignResourceWithReason(t *testing.T) {
	editor := &Actor{UID: "U1", Role: RoleEditor}
	foreign := ownedResource{owner: "U2"}

	d := Decide(ActionDelete, editor, foreign)
	require.False(t, d.Allowed)
	assert.Equal(t, "not your resource", d.Reason)
}

func TestOwnerlessResourceIsAdminOnly(t *testing.T) {
	editor := &Actor{UID: "U1", Role: RoleEditor}
	admin := &Actor{UID: "A1", Role: RoleAdmin}
	orphan := ownedResource{owner: ""}

	assert.False(t, CanPerform(ActionUpdate, editor, orphan))
	assert.False(t, CanPerform(ActionDelete, editor, orphan))
	assert.True(t, CanPerform(ActionUpdate, admin, orphan))
	assert.True(t, CanPerform(ActionDelete, admin, orphan))
}

func TestReorderIsAdminOnlyForEveryRole(t *testing.T) {
	res := ownedResource{owner: "U1"}
	cases := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleEditor, false},
		{RoleUser, false},
		{RoleTest, false},
		{Role("superuser"), false},
	}
	for _, tc := range cases {
		actor := &Actor{UID: "U1", Role: tc.role}
		assert.Equal(t, tc.want, CanPerform(ActionReorder, actor, res), "role %q", tc.role)
		assert.Equal(t, tc.want, CanPerform(ActionReorder, actor, nil), "role %q, nil resource", tc.role)
	}
}

func TestUnknownRoleTreatedAsUser(t *testing.T) {
	for _, role := range []Role{RoleTest, Role(""), Role("owner"), Role("ADMIN")} {
		actor := &Actor{UID: "U1", Role: role}
		own := ownedResource{owner: "U1"}

		assert.False(t, CanPerform(ActionCreate, actor, nil), "role %q", role)
		assert.False(t, CanPerform(ActionUpdate, actor, own), "role %q", role)
	}
}

func TestUnknownActionDenied(t *testing.T) {
	editor := &Actor{UID: "U1", Role: RoleEditor}
	user := &Actor{UID: "U1", Role: RoleUser}

	assert.False(t, CanPerform(Action("publish"), editor, ownedResource{owner: "U1"}))
	assert.False(t, CanPerform(Action(""), user, nil))
}

func TestTypedNilResourceDoesNotPanic(t *testing.T) {
	editor := &Actor{UID: "U1", Role: RoleEditor}
	var r *nilOwner

	require.NotPanics(t, func() {
		// A typed nil behaves like an ownerless record.
		assert.False(t, CanPerform(ActionUpdate, editor, r))
	})
}

func TestDecideIsRepeatable(t *testing.T) {
	editor := &Actor{UID: "U1", Role: RoleEditor}
	res := ownedResource{owner: "U2"}

	first := Decide(ActionUpdate, editor, res)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Decide(ActionUpdate, editor, res))
	}
}

func TestScenarioEditorCannotDeleteForeign(t *testing.T) {
	actor := &Actor{UID: "U1", Role: RoleEditor}
	resource := ownedResource{owner: "U2"}

	assert.False(t, CanPerform(ActionDelete, actor, resource))
}
