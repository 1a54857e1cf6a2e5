package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-chatline/internal/api/middleware"
	"go-chatline/internal/pkg/chat/application/usecase"
	chat "go-chatline/internal/pkg/chat/domain"
)

// GetHistoryController handles the message history endpoint
type GetHistoryController struct {
	UC *usecase.GetHistoryUseCase
}

func NewGetHistoryController(uc *usecase.GetHistoryUseCase) *GetHistoryController {
	return &GetHistoryController{UC: uc}
}

type historyMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *GetHistoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFromContext(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		receiverID := c.Query("receiver_id")
		if receiverID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receiver_id is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetHistoryInput{
			RequesterID:   identity.UserID,
			CounterpartID: receiverID,
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

		out := make([]historyMessage, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, historyMessage{
				ID:        strconv.FormatInt(m.ID, 10),
				UserID:    m.AuthorID,
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
