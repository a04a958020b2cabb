package model

import "time"

// User represents an account record as stored in the `users` table.
// PasswordHash never leaves the repository/service layers; handlers build
// their own response shapes.
type User struct {
	ID           uint64    // users.id
	Login        string    // users.login
	PasswordHash string    // users.password_hash (bcrypt)
	FullName     string    // users.full_name
	Phone        string    // users.phone
	Email        string    // users.email
	Avatar       *string   // users.avatar (nullable relative path)
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Profile is the public projection of a User returned by the profile API.
type Profile struct {
	ID       uint64  `json:"id"`
	Login    string  `json:"login"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar"`
}

// ProfileOf projects u without its credentials.
func ProfileOf(u User) Profile {
	return Profile{
		ID:       u.ID,
		Login:    u.Login,
		FullName: u.FullName,
		Phone:    u.Phone,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
