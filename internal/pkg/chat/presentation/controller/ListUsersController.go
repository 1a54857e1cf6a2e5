package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-chatline/internal/api/middleware"
	"go-chatline/internal/pkg/chat/application/usecase"
)

// ListUsersController handles the contact directory endpoint
type ListUsersController struct {
	UC *usecase.ListUsersUseCase
}

func NewListUsersController(uc *usecase.ListUsersUseCase) *ListUsersController {
	return &ListUsersController{UC: uc}
}

type directoryEntry struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFromContext(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		users, err := h.UC.Execute(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
			return
		}

		out := make([]directoryEntry, 0, len(users))
		for _, u := range users {
			if u.ID == identity.UserID {
				continue
			}
			out = append(out, directoryEntry{ID: u.ID, Username: u.Username})
		}
		c.JSON(http.StatusOK, out)
	}
}
