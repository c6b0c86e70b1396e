package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qmsagent/console/internal/api/view"
	"github.com/qmsagent/console/internal/core/ports"
)

// PagesHandler serves the protected views. The views themselves are
// presentational collaborators; only the session gating around them is
// interesting here.
type PagesHandler struct {
	sessions ports.SessionManager
}

func NewPagesHandler(sessions ports.SessionManager) *PagesHandler {
	return &PagesHandler{sessions: sessions}
}

// Dashboard renders the signed-in landing page. The route gate guarantees
// an authenticated session before this runs.
func (h *PagesHandler) Dashboard(c echo.Context) error {
	state := h.sessions.Snapshot()
	if state.User == nil {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	c.Response().WriteHeader(http.StatusOK)
	return view.Dashboard(c.Response(), view.DashboardData{User: state.User})
}
