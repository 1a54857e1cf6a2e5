package http

import (
	"github.com/gin-gonic/gin"

	"go-chatline/internal/pkg/auth"
	"go-chatline/internal/pkg/auth/application/usecase"
	"go-chatline/internal/pkg/auth/presentation/controller"
	userrepo "go-chatline/internal/repository/port"
)

// RegisterRoutes registers the public authentication endpoints under the given
// router group.
func RegisterRoutes(g *gin.RouterGroup, users userrepo.UserRepository, issuer *auth.TokenIssuer) {
	signupCtl := controller.NewSignupController(usecase.NewSignupUseCase(users))
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(users, issuer))

	// POST /api/v1/auth/signup -> register a new user
	g.POST("/auth/signup", signupCtl.Handle())

	// POST /api/v1/auth/login -> exchange credentials for a token
	g.POST("/auth/login", loginCtl.Handle())
}
