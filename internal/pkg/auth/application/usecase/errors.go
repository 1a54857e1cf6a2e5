package usecase

import "errors"

var (
	// ErrPersistence wraps unexpected storage failures.
	ErrPersistence = errors.New("unexpected persistence error")

	ErrUsernameTaken      = errors.New("auth: username already taken")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
