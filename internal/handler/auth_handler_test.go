package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/internal/service"
	"github.com/pkdsmart/feedback-portal/internal/web"
	"github.com/pkdsmart/feedback-portal/pkg/config"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "secret",
		TTL:        time.Hour,
		CookieName: "fp_session",
	}
}

func newAuthRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewAuthService(repo, nil, nil, service.AuthConfig{Secret: "secret", TTL: time.Hour})
	h := NewAuthHandler(svc, sessionConfig())

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	return r
}

func postForm(r *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginRedirectsUserToFeedback(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 1, Username: "alice", PasswordHash: hashOf(t, "password"), Role: models.RoleUser}}
	r := newAuthRouter(repo)

	w := postForm(r, "/login", url.Values{"username": {"alice"}, "password": {"password"}})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/feedback", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "fp_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginRedirectsAdminToDashboard(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 2, Username: "boss", PasswordHash: hashOf(t, "password"), Role: models.RoleAdmin}}
	r := newAuthRouter(repo)

	w := postForm(r, "/login", url.Values{"username": {"boss"}, "password": {"password"}})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLoginFailureIsGeneric(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 1, Username: "alice", PasswordHash: hashOf(t, "password"), Role: models.RoleUser}}
	r := newAuthRouter(repo)

	for _, values := range []url.Values{
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"password"}},
	} {
		w := postForm(r, "/login", values)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password.")
		assert.Empty(t, w.Result().Cookies())
	}
}

func TestShowLoginRendersForm(t *testing.T) {
	r := newAuthRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/login", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="username"`)
	assert.NotContains(t, w.Body.String(), "Invalid username or password.")
}

func TestLogoutClearsCookieAndRedirects(t *testing.T) {
	r := newAuthRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/logout", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "fp_session", cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}
