package usecase

import (
	"context"
	"fmt"

	userrepo "go-chatline/internal/repository/port"
)

// ListUsersUseCase exposes the user directory for the contact picker.
type ListUsersUseCase struct {
	Users userrepo.UserRepository
}

func NewListUsersUseCase(users userrepo.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{Users: users}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]userrepo.User, error) {
	users, err := uc.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return users, nil
}
