package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/webmuseum/expo-api/internal/interface/http"
	"github.com/webmuseum/expo-api/internal/interface/middleware"
	"github.com/webmuseum/expo-api/pkg/helpers"
)

// ExpoModule wires the exhibition CRUD endpoints behind bearer auth.
type ExpoModule struct {
	Handler *handlers.ExpoHandler
	JWT     *helpers.JWTManager
}

func NewExpoModule(h *handlers.ExpoHandler, jwt *helpers.JWTManager) *ExpoModule {
	return &ExpoModule{Handler: h, JWT: jwt}
}

func (m *ExpoModule) Register(rg *gin.RouterGroup) {
	expos := rg.Group("/expos")
	expos.Use(middleware.Auth(m.JWT))
	{
		expos.GET("", m.Handler.List)
		expos.GET("/search", m.Handler.Search)
		expos.GET("/:expoId", m.Handler.Get)
		expos.POST("", m.Handler.Create)
		expos.PUT("/:expoId", m.Handler.Update)
		expos.DELETE("/:expoId", m.Handler.Delete)
		expos.POST("/:expoId/photo", m.Handler.UploadPhoto)
	}
}
