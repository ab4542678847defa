package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin             UserRole = "admin"
	RoleEnrollmentOfficer UserRole = "enrollment_officer"
	RoleCashier           UserRole = "cashier"
)

// Valid reports whether the role belongs to the closed role set.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEnrollmentOfficer, RoleCashier:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserPatch carries a shallow-merge update: only non-nil fields overwrite.
type UserPatch struct {
	Name *string   `json:"name,omitempty"`
	Role *UserRole `json:"role,omitempty"`
}
