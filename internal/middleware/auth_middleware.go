package middleware

import (
	"net/http"
	"strings"

	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AdminRequired guards the management and export endpoints. The token may
// arrive as the session cookie (browser UI) or a bearer token (API clients).
func AdminRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := adminToken(c)
		if _, err := auth.ParseToken(token); err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func adminToken(c *gin.Context) string {
	if cookie, err := c.Cookie(httpdto.AdminCookie); err == nil && cookie != "" {
		return cookie
	}
	return extractBearer(c)
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
