package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMentor Role = "Mentor"
	RoleMentee Role = "Mentee"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMentor || r == RoleMentee
}

// User represents an account row. Authoritative state lives in the
// backend store; this struct is a transient projection.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               Role      `json:"role"`
	IsActive           bool      `json:"isActive"`
	MustChangePassword bool      `json:"mustChangePassword"`
	ProfileCompleted   bool      `json:"profileCompleted"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateUserRequest is the admin payload for creating an account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role" binding:"required,oneof=Mentor Mentee"`
}

// UserListResponse is the response for listing accounts
type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// ScanUser scans a single row into a User.
// Expected columns: userid, email, password_hash, role, is_active,
// must_change_password, profile_completed, created_at, updated_at
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.MustChangePassword,
		&u.ProfileCompleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ScanUsers scans multiple rows into a slice of Users
func ScanUsers(rows pgx.Rows) ([]*User, error) {
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user, err := ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
