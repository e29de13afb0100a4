// Package users implements the credential store and the authentication
// service: durable user records, password hashing, and session issuance.
package users

import "time"

// User is the durable user record. The Password field always holds a bcrypt
// hash, never the original secret. ID is assigned by the store and immutable.
type User struct {
	ID        int64
	Pseudo    string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PublicUser is the projection of a User that may leave the server.
// The password hash is deliberately absent.
type PublicUser struct {
	ID        int64     `json:"id"`
	Pseudo    string    `json:"pseudo"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the externally visible fields of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Pseudo:    u.Pseudo,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
