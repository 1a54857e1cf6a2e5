package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"go-chatline/internal/metrics"
	chat "go-chatline/internal/pkg/chat/domain"
	repository "go-chatline/internal/pkg/chat/persistence/repository/port"
	userrepo "go-chatline/internal/repository/port"
)

// MessagePusher delivers a message event to every live connection of a user
// except the one named by excludeConnectionID, returning how many connections
// the event was handed to. Delivery is best-effort and must never block on a
// slow target.
type MessagePusher interface {
	PushMessage(userID string, excludeConnectionID string, ev chat.MessageEvent) int
}

// SendMessageInput carries one message routing request. SenderConnectionID
// identifies the originating connection and is excluded from the fan-out (the
// sending client renders its own message optimistically); it is empty when
// the send arrived over a path with no live connection, such as the REST
// endpoint or the background worker.
type SendMessageInput struct {
	SenderID           string
	SenderConnectionID string
	RecipientID        string
	Content            string
}

// SendMessageResult reports where the message landed.
type SendMessageResult struct {
	ConversationID int64
	MessageID      int64
	Delivered      int
}

// SendMessageUseCase routes one direct message: validate the recipient,
// resolve-or-create the pair's conversation, durably append the message, then
// fan it out to the recipient's live connections. There is no rollback: once
// the append succeeds the message is delivered, even if zero connections are
// live. History retrieval is the durable delivery path; live push is a
// convenience.
type SendMessageUseCase struct {
	Users  userrepo.UserRepository
	Repo   repository.ChatRepository
	Pusher MessagePusher
	Log    zerolog.Logger
}

func NewSendMessageUseCase(users userrepo.UserRepository, repo repository.ChatRepository, pusher MessagePusher, log zerolog.Logger) *SendMessageUseCase {
	return &SendMessageUseCase{Users: users, Repo: repo, Pusher: pusher, Log: log}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*SendMessageResult, error) {
	if in.SenderID == "" || in.RecipientID == "" {
		return nil, fmt.Errorf("senderId and recipientId are required")
	}

	recipient, err := uc.Users.FindByID(ctx, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if recipient == nil {
		return nil, chat.ErrRecipientNotFound
	}

	conversationID, err := uc.Repo.ResolveOrCreateConversation(ctx, in.SenderID, in.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	messageID, err := uc.Repo.AppendMessage(ctx, conversationID, in.SenderID, in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	metrics.MessagesSent.Inc()

	delivered := uc.Pusher.PushMessage(in.RecipientID, in.SenderConnectionID, chat.MessageEvent{
		SenderID:  in.SenderID,
		MessageID: messageID,
		Content:   in.Content,
	})

	uc.Log.Debug().
		Int64("conversation_id", conversationID).
		Int64("message_id", messageID).
		Int("delivered", delivered).
		Msg("message routed")

	return &SendMessageResult{
		ConversationID: conversationID,
		MessageID:      messageID,
		Delivered:      delivered,
	}, nil
}
