package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
)

// HTML renders a template with cache-defeating headers. Every page in the
// portal reflects mutable session or database state, so nothing is cacheable.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.HTML(status, name, data)
}

// Redirect issues a 303 See Other, the post-redirect-get contract used after
// every successful form submission.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// Error renders the shared error page from a typed application error.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	HTML(c, appErr.Status, "error.html", gin.H{
		"Code":    appErr.Code,
		"Message": appErr.Message,
	})
}
