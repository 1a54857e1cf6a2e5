package http

import (
	"github.com/gin-gonic/gin"

	qport "go-chatline/internal/infrastructure/queue/port"
	"go-chatline/internal/infrastructure/realtime"
	"go-chatline/internal/pkg/chat/application/usecase"
	"go-chatline/internal/pkg/chat/presentation/controller"
)

// Deps carries the wired dependencies of the chat endpoints. Queue may be nil
// when no broker is configured; the send endpoint then routes inline.
type Deps struct {
	Registry      *realtime.Registry
	Queue         qport.Client
	SendMessageUC *usecase.SendMessageUseCase
	GetHistoryUC  *usecase.GetHistoryUseCase
	ListUsersUC   *usecase.ListUsersUseCase
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	listUsersCtl := controller.NewListUsersController(deps.ListUsersUC)
	historyCtl := controller.NewGetHistoryController(deps.GetHistoryUC)
	sendMsgCtl := controller.NewSendMessageController(deps.Queue, deps.SendMessageUC)
	socketCtl := controller.NewChatSocketController(deps.Registry, deps.SendMessageUC)

	// GET /api/v1/chat/users -> contact directory
	g.GET("/chat/users", listUsersCtl.Handle())

	// GET /api/v1/chat/messages?receiver_id=... -> pair history, newest first
	g.GET("/chat/messages", historyCtl.Handle())

	// POST /api/v1/chat/messages -> send a direct message
	g.POST("/chat/messages", sendMsgCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
}
