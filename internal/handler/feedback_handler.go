package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pkdsmart/feedback-portal/internal/middleware"
	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/internal/web"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
	"github.com/pkdsmart/feedback-portal/pkg/render"
)

type feedbackService interface {
	List(ctx context.Context, userID int64) ([]models.Feedback, error)
	Submit(ctx context.Context, userID int64, form models.FeedbackForm) error
	EditLookup(ctx context.Context, userID, id int64) (*models.Feedback, error)
}

// FeedbackHandler serves the user feedback page.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler creates a new handler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Page lists the user's feedback and renders the submission form. An edit_id
// query parameter preloads the form with an owned entry; a miss degrades to
// the blank "create new" form.
func (h *FeedbackHandler) Page(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)

	var edit *models.Feedback
	if raw := c.Query("edit_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			entry, err := h.service.EditLookup(c.Request.Context(), claims.UserID, id)
			if err != nil {
				render.Error(c, err)
				return
			}
			edit = entry
		}
	}

	h.renderPage(c, claims.UserID, edit, "")
}

// Submit creates or edits a feedback entry, then redirects back to the page
// so a refresh never resubmits the form.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)

	var form models.FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderPage(c, claims.UserID, nil, "Feedback text and a rating between 1 and 5 are required.")
		return
	}

	if err := h.service.Submit(c.Request.Context(), claims.UserID, form); err != nil {
		appErr := appErrors.FromError(err)
		switch appErr.Code {
		case appErrors.ErrValidation.Code, appErrors.ErrNotFound.Code, appErrors.ErrFeedbackLocked.Code:
			h.renderPage(c, claims.UserID, nil, appErr.Message)
		default:
			render.Error(c, err)
		}
		return
	}

	render.Redirect(c, "/feedback")
}

func (h *FeedbackHandler) renderPage(c *gin.Context, userID int64, edit *models.Feedback, errMsg string) {
	entries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		render.Error(c, err)
		return
	}

	render.HTML(c, http.StatusOK, "feedback.html", gin.H{
		"Entries": entries,
		"Edit":    edit,
		"Emojis":  web.EmojiScale(),
		"Error":   errMsg,
	})
}
