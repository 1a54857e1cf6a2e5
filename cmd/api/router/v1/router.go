package v1

import (
	"github.com/gin-gonic/gin"

	"go-chatline/internal/api/middleware"
	"go-chatline/internal/pkg/auth"
	authHandler "go-chatline/internal/pkg/auth/presentation/http"
	chatHandler "go-chatline/internal/pkg/chat/presentation/http"
	userrepo "go-chatline/internal/repository/port"
)

// Deps is everything the v1 API surface needs wired in.
type Deps struct {
	Users  userrepo.UserRepository
	Issuer *auth.TokenIssuer
	Chat   chatHandler.Deps
}

// RegisterRoutes mounts all version 1 API routes under /api/v1. The auth
// endpoints are public; everything else sits behind token verification.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1, deps.Users, deps.Issuer)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(deps.Issuer))
	chatHandler.RegisterRoutes(protected, deps.Chat)
}
