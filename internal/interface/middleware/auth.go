package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webmuseum/expo-api/pkg/helpers"
	"github.com/webmuseum/expo-api/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxEmailKey  = "userEmail"

	bearerPrefix = "Bearer "
)

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	if strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):]
	}
	return ""
}

// Auth validates the Authorization bearer token and injects the decoded
// identity into the Gin context. It never consults the account store: an
// unexpired token from a since-deleted account still passes.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Message(c, http.StatusUnauthorized, "Authorization token is missing.")
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Message(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}
