package repository

import (
	"context"
	"time"
)

// User is a registered account in the directory. Identity is immutable after
// registration; the chat core only ever reads it.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserRepository is the user directory contract. Lookups return (nil, nil)
// when no user matches; a non-nil error always means a storage fault.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
