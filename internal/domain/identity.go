package domain

// Role is the closed set of requester roles. Anything that does not parse
// maps to RoleUnknown, which every policy treats as fail-closed.
type Role int

const (
	RoleUnknown Role = iota
	RolePlatformAdmin
	RoleOrgAdmin
	RoleOrgUser
	RoleGuest
)

func ParseRole(s string) Role {
	switch s {
	case "platform-admin":
		return RolePlatformAdmin
	case "org-admin":
		return RoleOrgAdmin
	case "org-user":
		return RoleOrgUser
	case "guest":
		return RoleGuest
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RolePlatformAdmin:
		return "platform-admin"
	case RoleOrgAdmin:
		return "org-admin"
	case RoleOrgUser:
		return "org-user"
	case RoleGuest:
		return "guest"
	default:
		return "unknown"
	}
}

// IsOrgScoped reports whether the role shares visibility and quota with an
// organization.
func (r Role) IsOrgScoped() bool {
	return r == RoleOrgAdmin || r == RoleOrgUser
}

// Identity is an already-authenticated requester. OrgID is derived from the
// user id, never stored.
type Identity struct {
	Role   Role   `json:"role"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// OrgID resolves the organization for org-scoped roles. Platform admins and
// guests do not belong to a tenant.
func (i Identity) OrgID() (string, bool) {
	if !i.Role.IsOrgScoped() {
		return "", false
	}
	return ResolveOrgID(i.UserID), true
}

// User is a directory entry, consumed by the alert-recipient picker.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
