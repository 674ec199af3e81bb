package domain

import "time"

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the public projection of a user. It never carries the
// password hash or timestamps.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// AuthContext is the per-request identity derived from a verified token.
// Role stays at RoleUnresolved until the role-resolution stage loads it
// from the store; it is never trusted from the token itself.
type AuthContext struct {
	SubjectID string
	Username  string
	Role      Role
}
