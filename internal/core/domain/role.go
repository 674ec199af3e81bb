package domain

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"

	// RoleUnresolved is the zero value: the subject presented a valid token
	// but its account could not be loaded. It satisfies no tier.
	RoleUnresolved Role = ""
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Tier is a named set of roles sufficient to pass an authorization check.
type Tier uint8

const (
	// TierAnyAuthenticated admits every valid role.
	TierAnyAuthenticated Tier = iota
	// TierAdminOnly admits admins.
	TierAdminOnly
)

// Allows reports whether role is a member of the tier's allowed set.
func (t Tier) Allows(role Role) bool {
	switch t {
	case TierAdminOnly:
		return role == RoleAdmin
	case TierAnyAuthenticated:
		return role == RoleAdmin || role == RoleUser
	}
	return false
}

func (t Tier) String() string {
	switch t {
	case TierAdminOnly:
		return "admin_only"
	case TierAnyAuthenticated:
		return "any_authenticated"
	}
	return "unknown"
}
