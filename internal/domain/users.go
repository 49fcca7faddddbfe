package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole accepts the role names used by the management console.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStaff:
		return Role(s), true
	}
	return "", false
}

// User is a back-office account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	PasswordHash string    `json:"-"`
}

// IsAdmin reports whether the user may use the management console.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
