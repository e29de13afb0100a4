package users

import (
	"context"
)

// UpdateFields is the allow-list of mutable user columns. Nil fields are left
// untouched; updated_at is stamped whenever at least one field is set.
type UpdateFields struct {
	Pseudo   *string
	Email    *string
	Password *string
}

// IsEmpty reports whether no field is set.
func (f UpdateFields) IsEmpty() bool {
	return f.Pseudo == nil && f.Email == nil && f.Password == nil
}

// Repository is the credential store contract. Absence of a row surfaces as
// shared.ErrNotFound; an email uniqueness violation on Create surfaces as
// shared.ErrDuplicateEmail.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
