package handler

import (
	"net/http"
	"strings"

	"classpoll/internal/services"
	"classpoll/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles admin login/logout/check.
type AdminHandler struct {
	auth *services.AuthService
}

func NewAdminHandler(auth *services.AuthService) *AdminHandler {
	return &AdminHandler{auth: auth}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("invalid credentials"))
		return
	}

	maxAge := int(h.auth.TokenTTL().Seconds())
	c.SetCookie(httpdto.AdminCookie, token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, httpdto.LoginResponse{Success: true, Token: token})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(httpdto.AdminCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, httpdto.LoginResponse{Success: true})
}

func (h *AdminHandler) Check(c *gin.Context) {
	_, err := h.auth.ParseToken(adminToken(c))
	c.JSON(http.StatusOK, httpdto.CheckResponse{LoggedIn: err == nil})
}

// adminToken extracts the admin token from the session cookie or the
// Authorization header.
func adminToken(c *gin.Context) string {
	if cookie, err := c.Cookie(httpdto.AdminCookie); err == nil && cookie != "" {
		return cookie
	}
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
