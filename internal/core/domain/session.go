// Package domain holds the session core's data model: the user profile,
// the session state with its action sum type and reducer, and the error
// taxonomy shared by the gateway, the services and the HTTP surface.
package domain

// SessionState is the in-memory record of the current authentication
// status. Exactly one live instance exists per process, owned by the
// session service.
//
// Invariant: Authenticated implies User != nil and Credential != "".
// The inverse need not hold while Loading (a validation is in flight).
type SessionState struct {
	User          *User
	Credential    string
	Authenticated bool
	Loading       bool
}

// InitialState is the state at process start: nothing known yet, a
// mount-time validation pending.
func InitialState(credential string) SessionState {
	return SessionState{Credential: credential, Loading: true}
}

// Action is the closed set of session transitions. Adding a variant forces
// every Reduce call site through the compiler.
type Action interface {
	isAction()
}

// AuthStart marks a validation attempt as in flight.
type AuthStart struct{}

// AuthSuccess carries the validated profile and the credential it was
// validated with.
type AuthSuccess struct {
	User       *User
	Credential string
}

// AuthFailure clears the session after a failed or impossible validation.
type AuthFailure struct{}

// Logout clears the session on user request.
type Logout struct{}

func (AuthStart) isAction()   {}
func (AuthSuccess) isAction() {}
func (AuthFailure) isAction() {}
func (Logout) isAction()      {}

// Reduce returns the state that follows s under action a. It is pure:
// side effects (credential persistence, navigation) live in the session
// service, never here.
func Reduce(s SessionState, a Action) SessionState {
	switch a := a.(type) {
	case AuthStart:
		s.Loading = true
		return s
	case AuthSuccess:
		return SessionState{
			User:          a.User,
			Credential:    a.Credential,
			Authenticated: true,
			Loading:       false,
		}
	case AuthFailure:
		return SessionState{}
	case Logout:
		return SessionState{}
	}
	return s
}
