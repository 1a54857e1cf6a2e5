package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-chatline/internal/pkg/chat/domain"
	repository "go-chatline/internal/pkg/chat/persistence/repository/port"
	userrepo "go-chatline/internal/repository/port"
)

// GetHistoryInput identifies the pair whose thread is requested. RequesterID
// is the already-authenticated caller; CounterpartID is the other member.
type GetHistoryInput struct {
	RequesterID   string
	CounterpartID string
}

// GetHistoryUseCase returns the pair's messages newest-first. A pair that has
// never exchanged a message yields an empty result, not an error; the
// conversation is never created on the read path.
type GetHistoryUseCase struct {
	Users userrepo.UserRepository
	Repo  repository.ChatRepository
}

func NewGetHistoryUseCase(users userrepo.UserRepository, repo repository.ChatRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{Users: users, Repo: repo}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, in GetHistoryInput) ([]chat.Message, error) {
	if in.RequesterID == "" || in.CounterpartID == "" {
		return nil, fmt.Errorf("requesterId and counterpartId are required")
	}

	counterpart, err := uc.Users.FindByID(ctx, in.CounterpartID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if counterpart == nil {
		return nil, chat.ErrRecipientNotFound
	}

	conversationID, err := uc.Repo.ResolveConversation(ctx, in.RequesterID, in.CounterpartID)
	if errors.Is(err, chat.ErrConversationNotFound) {
		return []chat.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msgs, err := uc.Repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
