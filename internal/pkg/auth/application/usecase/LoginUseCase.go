package usecase

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"go-chatline/internal/pkg/auth"
	userrepo "go-chatline/internal/repository/port"
)

// LoginInput carries one credential check.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the issued session.
type LoginResult struct {
	UserID   string
	Username string
	Token    string
}

// LoginUseCase verifies credentials and issues a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
type LoginUseCase struct {
	Users  userrepo.UserRepository
	Issuer *auth.TokenIssuer
}

func NewLoginUseCase(users userrepo.UserRepository, issuer *auth.TokenIssuer) *LoginUseCase {
	return &LoginUseCase{Users: users, Issuer: issuer}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	user, err := uc.Users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.Issuer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{UserID: user.ID, Username: user.Username, Token: token}, nil
}
