package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	userrepo "go-chatline/internal/repository/port"
)

// SignupInput carries one registration request.
type SignupInput struct {
	Username string
	Password string
}

// SignupUseCase registers a new user with a bcrypt-hashed password.
type SignupUseCase struct {
	Users userrepo.UserRepository
}

func NewSignupUseCase(users userrepo.UserRepository) *SignupUseCase {
	return &SignupUseCase{Users: users}
}

func (uc *SignupUseCase) Execute(ctx context.Context, in SignupInput) (*userrepo.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	existing, err := uc.Users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &userrepo.User{Username: in.Username, PasswordHash: string(hash)}
	if err := uc.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
