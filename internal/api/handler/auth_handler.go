package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/api/metrics"
	"github.com/qmsagent/console/internal/api/middleware"
	"github.com/qmsagent/console/internal/api/navigation"
	"github.com/qmsagent/console/internal/api/view"
	"github.com/qmsagent/console/internal/core/ports"
)

const genericLoginFailure = "Sign-in failed. Please try again."

// AuthHandler drives the login surface, the external-login round trip and
// sign-out.
type AuthHandler struct {
	sessions ports.SessionManager
	identity ports.IdentityProvider
	gw       ports.Gateway
	nav      *navigation.Tracker
	log      zerolog.Logger
}

func NewAuthHandler(sessions ports.SessionManager, identity ports.IdentityProvider, gw ports.Gateway, nav *navigation.Tracker, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		identity: identity,
		gw:       gw,
		nav:      nav,
		log:      log,
	}
}

// LoginPage renders the login surface. Arriving here ends any unauthorized
// episode: the redirect guard is re-armed and a pending login navigation
// is consumed by re-checking the (now purged) credential.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	pending := h.nav.LoginPending()
	h.nav.MarkAtLogin()
	h.gw.ResetRedirectGuard()
	if pending {
		h.sessions.CheckAuth(c.Request().Context())
	}

	state := h.sessions.Snapshot()
	if state.Loading {
		c.Response().WriteHeader(http.StatusOK)
		return view.Loading(c.Response())
	}
	if state.Authenticated {
		return c.Redirect(http.StatusSeeOther, middleware.ConsumeReturnTo(c))
	}

	var msg string
	if c.QueryParam("error") != "" {
		msg = c.QueryParam("error_description")
		if msg == "" {
			msg = genericLoginFailure
		}
	}
	c.Response().WriteHeader(http.StatusOK)
	return view.Login(c.Response(), view.LoginData{ErrorMessage: msg})
}

// StartExternalLogin performs the full navigation to the backend's
// login-initiation endpoint. No intermediate fetch: the backend itself
// redirects on to the external provider.
func (h *AuthHandler) StartExternalLogin(c echo.Context) error {
	h.nav.MarkAway()
	return c.Redirect(http.StatusFound, h.identity.ExternalLoginURL())
}

// callbackQuery is the redirect-back contract: a credential under the
// primary or the legacy name, or a provider error pair.
type callbackQuery struct {
	AccessToken      string `query:"access_token" validate:"omitempty,max=4096"`
	Token            string `query:"token" validate:"omitempty,max=4096"`
	Error            string `query:"error" validate:"omitempty,max=256"`
	ErrorDescription string `query:"error_description" validate:"omitempty,max=1024"`
}

// Callback handles the external provider's redirect back. Priority order:
// provider error, then credential (primary name, then legacy alias), then
// missing-token. A provider error never attempts a login.
func (h *AuthHandler) Callback(c echo.Context) error {
	h.nav.MarkAway()

	var q callbackQuery
	if err := c.Bind(&q); err != nil {
		return renderAuthError(c, genericLoginFailure)
	}
	if err := c.Validate(&q); err != nil {
		return renderAuthError(c, genericLoginFailure)
	}

	if q.Error != "" {
		h.log.Warn().Str("error", q.Error).Msg("external provider returned error")
		msg := q.ErrorDescription
		if msg == "" {
			msg = genericLoginFailure
		}
		return renderAuthError(c, msg)
	}

	credential := q.AccessToken
	if credential == "" {
		credential = q.Token
	}
	if credential == "" {
		return renderAuthError(c, "Missing authentication token.")
	}

	if err := h.sessions.Login(c.Request().Context(), credential); err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("failure").Inc()
		h.log.Warn().Err(err).Msg("callback login failed")
		return renderAuthError(c, genericLoginFailure)
	}

	metrics.SessionLoginsTotal.WithLabelValues("success").Inc()

	// A fresh session ends any unauthorized episode still in flight.
	h.nav.Reset()
	h.gw.ResetRedirectGuard()

	return c.Redirect(http.StatusSeeOther, middleware.ConsumeReturnTo(c))
}

// Logout clears the session and navigates back to the login surface.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/login")
}

func renderAuthError(c echo.Context, message string) error {
	c.Response().WriteHeader(http.StatusOK)
	return view.AuthError(c.Response(), message)
}
