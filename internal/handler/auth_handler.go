package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/internal/service"
	"github.com/pkdsmart/feedback-portal/pkg/config"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
	"github.com/pkdsmart/feedback-portal/pkg/render"
)

// AuthHandler wires the login and logout pages to the auth service.
type AuthHandler struct {
	service *service.AuthService
	cookie  config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	render.HTML(c, http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the submitted credentials, establishes the session
// cookie, and redirects by role. Failures re-render the form with a generic
// message that never reveals which field was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render.HTML(c, http.StatusOK, "login.html", gin.H{"Error": appErrors.ErrInvalidCredentials.Message})
		return
	}

	user, err := h.service.Login(c.Request.Context(), form)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrInvalidCredentials.Code {
			render.HTML(c, http.StatusOK, "login.html", gin.H{"Error": appErr.Message})
			return
		}
		render.Error(c, err)
		return
	}

	token, err := h.service.IssueSession(user)
	if err != nil {
		render.Error(c, err)
		return
	}

	c.SetCookie(h.cookie.CookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.CookieSecure, true)

	if user.Role == models.RoleAdmin {
		render.Redirect(c, "/dashboard")
		return
	}
	render.Redirect(c, "/feedback")
}

// Logout destroys the session cookie and returns to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.CookieSecure, true)
	render.Redirect(c, "/login")
}
