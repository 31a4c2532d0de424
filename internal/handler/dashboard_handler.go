package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pkdsmart/feedback-portal/internal/models"
	"github.com/pkdsmart/feedback-portal/internal/service"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
	"github.com/pkdsmart/feedback-portal/pkg/render"
)

type dashboardService interface {
	List(ctx context.Context, q service.DashboardQuery) ([]models.AdminFeedbackRow, error)
	UpdateStatus(ctx context.Context, form models.StatusUpdateForm) error
	Delete(ctx context.Context, id int64) error
}

// DashboardHandler serves the admin triage page.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Page renders the default listing. A delete_id query parameter deletes the
// entry first and redirects, keeping the destructive action refresh-safe.
func (h *DashboardHandler) Page(c *gin.Context) {
	if raw := c.Query("delete_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.renderPage(c, service.DashboardQuery{}, "", "", "A feedback id is required.")
			return
		}
		if err := h.service.Delete(c.Request.Context(), id); err != nil {
			render.Error(c, err)
			return
		}
		render.Redirect(c, "/dashboard")
		return
	}

	h.renderPage(c, service.DashboardQuery{}, "", "", "")
}

// Submit handles the dashboard form posts: a status update, a date filter, or
// a search. Exactly one is evaluated per request, date filter first.
func (h *DashboardHandler) Submit(c *gin.Context) {
	if _, ok := c.GetPostForm("update_status"); ok {
		var form models.StatusUpdateForm
		if err := c.ShouldBind(&form); err != nil {
			h.renderPage(c, service.DashboardQuery{}, "", "", "A feedback id and status are required.")
			return
		}
		if err := h.service.UpdateStatus(c.Request.Context(), form); err != nil {
			appErr := appErrors.FromError(err)
			if appErr.Code == appErrors.ErrValidation.Code {
				h.renderPage(c, service.DashboardQuery{}, "", "", appErr.Message)
				return
			}
			render.Error(c, err)
			return
		}
		render.Redirect(c, "/dashboard")
		return
	}

	var q service.DashboardQuery
	var filterDate, search string
	if v, ok := c.GetPostForm("filter_date"); ok {
		filterDate = v
		q.FilterDate = &v
	} else if v, ok := c.GetPostForm("search"); ok {
		search = v
		q.Search = &v
	}

	h.renderPage(c, q, filterDate, search, "")
}

func (h *DashboardHandler) renderPage(c *gin.Context, q service.DashboardQuery, filterDate, search, errMsg string) {
	rows, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Code == appErrors.ErrValidation.Code {
			// Fall back to the unfiltered list so the page stays usable.
			rows, err = h.service.List(c.Request.Context(), service.DashboardQuery{})
			if err != nil {
				render.Error(c, err)
				return
			}
			errMsg = appErr.Message
		} else {
			render.Error(c, err)
			return
		}
	}

	render.HTML(c, http.StatusOK, "dashboard.html", gin.H{
		"Rows":       rows,
		"FilterDate": filterDate,
		"Search":     search,
		"Error":      errMsg,
	})
}
