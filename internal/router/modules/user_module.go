package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/webmuseum/expo-api/internal/interface/http"
	"github.com/webmuseum/expo-api/internal/interface/middleware"
	"github.com/webmuseum/expo-api/pkg/helpers"
)

// UserModule wires the admin user listing/bulk-delete endpoints behind
// bearer auth.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth(m.JWT))
	{
		users.GET("", m.Handler.List)
		users.DELETE("", m.Handler.BulkDelete)
	}
}
