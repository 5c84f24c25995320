package core

import (
	"time"
)

// User roles. Admins manage the catalog and other users; regular users
// borrow and return books.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered library member.
//
// PasswordHash holds the bcrypt hash of the member's password and is
// stripped before a user leaves the identity service.
//
// The JSON field names are the persisted format and must stay stable.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password,omitempty"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createTime"`
}

// WithoutPassword returns a copy of the user with the password hash stripped.
func (u User) WithoutPassword() User {
	u.PasswordHash = ""
	return u
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NextUserID allocates the id for a new user: one above the highest
// existing id, or 1 when no users exist.
func NextUserID(users []User) int {
	maxID := 0
	for _, user := range users {
		if user.ID > maxID {
			maxID = user.ID
		}
	}

	return maxID + 1
}
