// Package policy is the single source of truth for who may do what.
// It is pure and framework-free so the same decisions can be evaluated
// before rendering a control, again right before the mutating call, and
// once more server-side on the privileged admin endpoints, without drift.
package policy

// Role is the single authorization axis of the application.
type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"

	// RoleTest is reserved and carries no privileges.
	RoleTest Role = "test"
)

// Normalize folds unknown role values (including the reserved "test"
// role) into the most restrictive known role. An unrecognized role must
// never become an implicit allow.
func (r Role) Normalize() Role {
	switch r {
	case RoleUser, RoleEditor, RoleAdmin:
		return r
	default:
		return RoleUser
	}
}

// Action is something an actor may attempt against the content model.
type Action string

const (
	ActionCreate           Action = "create"
	ActionUpdate           Action = "update"
	ActionDelete           Action = "delete"
	ActionReorder          Action = "reorder"
	ActionViewAdminSurface Action = "view-admin-surface"
)

// Actor is an authenticated caller. A nil *Actor is an anonymous caller,
// which is authorized only for public reads.
type Actor struct {
	UID  string
	Role Role
}

// Resource is anything ownership can be established against. OwnerUID
// returns the store-assigned owner uid, never the denormalized
// attribution snapshot. An empty owner uid means the record is no one's:
// only admins may act on it.
type Resource interface {
	OwnerUID() string
}

// Decision is the outcome of a policy evaluation. Reason is set only on
// denials and is safe to show to the user.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// CanPerform reports whether actor may perform action on resource.
// resource may be nil for create and view-admin-surface.
func CanPerform(action Action, actor *Actor, resource Resource) bool {
	return Decide(action, actor, resource).Allowed
}

// Decide evaluates the decision table. Rules are checked in precedence
// order and the first match wins. It never panics and has no side
// effects; evaluating it twice with the same inputs always agrees.
func Decide(action Action, actor *Actor, resource Resource) Decision {
	if actor == nil {
		return deny("sign in required")
	}

	role := actor.Role.Normalize()

	if role == RoleAdmin {
		return allow()
	}

	// Reorder and the admin surface are stricter than the per-row rules
	// and must be decided before the editor rules get a chance to match.
	switch action {
	case ActionReorder, ActionViewAdminSurface:
		return deny("admin only")
	}

	if role == RoleEditor {
		switch action {
		case ActionCreate:
			return allow()
		case ActionUpdate, ActionDelete:
			owner := ownerOf(resource)
			if owner == "" {
				// Malformed or legacy record with no owner: treat it as
				// no one's, so nothing short of admin may touch it.
				return deny("admin only")
			}
			if owner == actor.UID {
				return allow()
			}
			return deny("not your resource")
		}
	}

	// RoleUser, and any action not named above, is a deny.
	return deny("access denied")
}

// ownerOf extracts the owner uid without ever panicking, even for a nil
// interface or a typed-nil resource implementation.
func ownerOf(resource Resource) (uid string) {
	if resource == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			uid = ""
		}
	}()
	return resource.OwnerUID()
}
