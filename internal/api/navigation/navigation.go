// Package navigation realises the Navigator port for the HTTP surface.
// The original runtime navigated with location changes; here "navigate to
// login" becomes a pending flag the route gate and the login page consume
// as redirects, and "current location" is whether the login surface was
// the last page rendered.
package navigation

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

type Tracker struct {
	atLogin atomic.Bool
	pending atomic.Bool
	log     zerolog.Logger
}

func NewTracker(log zerolog.Logger) *Tracker {
	return &Tracker{log: log}
}

// ToLogin records that the application must move to the login surface.
// Invoked by the gateway, at most once per unauthorized episode.
func (t *Tracker) ToLogin() {
	t.pending.Store(true)
	t.log.Info().Msg("navigation to login requested")
}

// AtLogin reports whether the login surface was the last page rendered.
func (t *Tracker) AtLogin() bool {
	return t.atLogin.Load()
}

// LoginPending reports whether a requested login navigation has not yet
// been consumed by the login surface.
func (t *Tracker) LoginPending() bool {
	return t.pending.Load()
}

// MarkAtLogin records that the login surface is being rendered and clears
// any pending navigation, ending the unauthorized episode.
func (t *Tracker) MarkAtLogin() {
	t.atLogin.Store(true)
	t.pending.Store(false)
}

// MarkAway records that a surface other than login is being rendered.
func (t *Tracker) MarkAway() {
	t.atLogin.Store(false)
}

// Reset clears a pending login navigation without changing the tracked
// location. A successful login ends the unauthorized episode even when
// the login surface was never rendered in between.
func (t *Tracker) Reset() {
	t.pending.Store(false)
}
