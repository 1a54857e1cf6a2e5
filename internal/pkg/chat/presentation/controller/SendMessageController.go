package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-chatline/internal/api/middleware"
	queueport "go-chatline/internal/infrastructure/queue/port"
	"go-chatline/internal/pkg/chat/application/task"
	"go-chatline/internal/pkg/chat/application/usecase"
	chat "go-chatline/internal/pkg/chat/domain"
)

// SendMessageController handles the REST send endpoint (one controller per
// endpoint). When a queue client is configured the message is routed through
// the background worker; otherwise it is routed inline.
type SendMessageController struct {
	Q  queueport.Client
	UC *usecase.SendMessageUseCase
}

func NewSendMessageController(client queueport.Client, uc *usecase.SendMessageUseCase) *SendMessageController {
	return &SendMessageController{Q: client, UC: uc}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFromContext(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if h.Q == nil {
			h.sendInline(c, identity.UserID, req)
			return
		}

		payload := task.SendMessageTaskPayload{
			SenderID:    identity.UserID,
			RecipientID: req.ReceiverID,
			Content:     req.Content,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 20}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.SendMessageTaskType, Payload: b}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue message"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":      "queued",
			"task_id":     id,
			"receiver_id": req.ReceiverID,
		})
	}
}

func (h *SendMessageController) sendInline(c *gin.Context, senderID string, req sendMessageRequest) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	result, err := h.UC.Execute(ctx, usecase.SendMessageInput{
		SenderID:    senderID,
		RecipientID: req.ReceiverID,
		Content:     req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrRecipientNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "receiver does not exist"})
		case errors.Is(err, usecase.ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":          "sent",
		"message_id":      result.MessageID,
		"conversation_id": result.ConversationID,
		"delivered":       result.Delivered,
	})
}
