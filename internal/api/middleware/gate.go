package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qmsagent/console/internal/api/navigation"
	"github.com/qmsagent/console/internal/api/view"
	"github.com/qmsagent/console/internal/core/ports"
)

// ReturnToCookie carries the path a visitor originally requested before
// being sent to the login surface, so a successful login can return there.
const ReturnToCookie = "console_return_to"

// Gate wraps protected views. While the session is still settling it
// renders a neutral loading page rather than deciding a redirect; once
// settled it admits authenticated visitors and sends everyone else to the
// login surface, recording the requested path.
func Gate(sessions ports.SessionManager, nav *navigation.Tracker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := sessions.Snapshot()

			if state.Loading {
				c.Response().WriteHeader(http.StatusOK)
				return view.Loading(c.Response())
			}

			if state.Authenticated && !nav.LoginPending() {
				nav.MarkAway()
				return next(c)
			}

			SetReturnTo(c, c.Request().RequestURI)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
	}
}

// SetReturnTo records the requested path for the post-login redirect.
func SetReturnTo(c echo.Context, path string) {
	if !validReturnPath(path) {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     ReturnToCookie,
		Value:    path,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((10 * time.Minute).Seconds()),
	})
}

// ConsumeReturnTo returns the recorded path, or "/" when none was
// recorded, and clears the cookie.
func ConsumeReturnTo(c echo.Context) string {
	path := "/"
	if cookie, err := c.Cookie(ReturnToCookie); err == nil && validReturnPath(cookie.Value) {
		path = cookie.Value
	}
	c.SetCookie(&http.Cookie{
		Name:     ReturnToCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return path
}

// validReturnPath admits only local absolute paths, never schemes or
// protocol-relative targets, so the cookie cannot turn into an open
// redirect.
func validReturnPath(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}
