package entity

import (
	"time"
)

// User is the aggregate root for the user directory
// Passwords are stored as bcrypt hashes in Password field
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	Firstname string
	Lastname  string
	Role      Role
	Image     string
	JoinedAt  time.Time
	UpdatedAt time.Time
}

// TokenUser is the identity carried inside access/refresh tokens and
// returned to clients. It never contains the password hash.
type TokenUser struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      Role   `json:"role"`
	Image     string `json:"image"`
}

// Token builds the token identity for u.
func (u *User) Token() TokenUser {
	return TokenUser{
		UserID:    u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Role:      u.Role,
		Image:     u.Image,
	}
}

// IsAdmin reports whether the token belongs to an administrator.
func (t TokenUser) IsAdmin() bool {
	return t.Role == RoleAdmin
}

// Author snapshots the display fields used on comments and replies.
func (t TokenUser) Author() Author {
	return Author{
		UserID:    t.UserID,
		Username:  t.Username,
		Firstname: t.Firstname,
		Lastname:  t.Lastname,
		Image:     t.Image,
	}
}

// PublicUser is the directory view of a user returned by admin endpoints.
type PublicUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	Role       Role      `json:"role"`
	Image      string    `json:"image"`
	JoinedDate time.Time `json:"joinedDate"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Firstname:  u.Firstname,
		Lastname:   u.Lastname,
		Role:       u.Role,
		Image:      u.Image,
		JoinedDate: u.JoinedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
