package ports

// Navigator abstracts the "full navigation" side effects the original
// browser runtime performed with location changes. The HTTP surface
// realises them as redirects; tests record the calls.
type Navigator interface {
	// ToLogin navigates to the login surface. The gateway invokes it at
	// most once per unauthorized episode (see the redirect guard).
	ToLogin()
	// AtLogin reports whether the current location already is the login
	// surface, in which case a 401 must not navigate again.
	AtLogin() bool
}
