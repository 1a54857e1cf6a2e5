package task

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	qport "go-chatline/internal/infrastructure/queue/port"
	chat "go-chatline/internal/pkg/chat/domain"
	"go-chatline/internal/pkg/chat/application/usecase"

	"github.com/rs/zerolog"
)

// SendMessageTaskType is the queue task name for sending a message within the chat domain.
const SendMessageTaskType = "chat:send_message"

// SendMessageTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SendMessageTaskPayload struct {
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

// RegisterSendMessageTask binds the task handler to the provided server.
func RegisterSendMessageTask(srv qport.Server, uc *usecase.SendMessageUseCase, log zerolog.Logger) {
	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		// give DB a reasonable time budget per task execution
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.SendMessageInput{
			SenderID:    p.SenderID,
			RecipientID: p.RecipientID,
			Content:     p.Content,
		})
		if errors.Is(err, chat.ErrRecipientNotFound) {
			// retrying will not make the recipient exist
			log.Warn().
				Str("senderId", p.SenderID).
				Str("recipientId", p.RecipientID).
				Msg("dropping queued message for unknown recipient")
			return nil
		}
		return err
	})
}
