package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/webmuseum/expo-api/internal/interface/http"
)

// AuthModule registers the public authentication endpoints.
// POST /api/auth/register, POST /api/auth/login, GET /api/auth/verify
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.GET("/verify", m.Handler.Verify)
	}
}
