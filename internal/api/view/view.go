// Package view renders the console's minimal HTML surfaces. The views are
// deliberately plain: presentation is not this subsystem's concern, the
// pages only exist to drive the session flows.
package view

import (
	"html/template"
	"io"

	"github.com/qmsagent/console/internal/core/domain"
)

var pages = template.Must(template.New("pages").Parse(`
{{define "layout_head"}}<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.}} - QMS Console</title></head>
<body>{{end}}
{{define "layout_foot"}}</body></html>{{end}}

{{define "login"}}{{template "layout_head" "Sign in"}}
<main>
  <h1>QMS Agent System</h1>
  {{if .ErrorMessage}}<p role="alert">{{.ErrorMessage}}</p>{{end}}
  <a href="/auth/google/start" rel="nofollow">Continue with Google</a>
</main>
{{template "layout_foot"}}{{end}}

{{define "loading"}}{{template "layout_head" "Loading"}}
<main>
  <p>Checking authentication…</p>
</main>
{{template "layout_foot"}}{{end}}

{{define "auth_error"}}{{template "layout_head" "Sign-in failed"}}
<main>
  <h1>Sign-in failed</h1>
  <p role="alert">{{.ErrorMessage}}</p>
  <a href="/login">Back to sign-in</a>
</main>
{{template "layout_foot"}}{{end}}

{{define "dashboard"}}{{template "layout_head" "Dashboard"}}
<main>
  <h1>Dashboard</h1>
  <p>Signed in as {{.User.FullName}} ({{.User.Email}}), role {{.User.Role}}.</p>
  <a href="/logout">Sign out</a>
</main>
{{template "layout_foot"}}{{end}}
`))

// LoginData feeds both the login page and the callback error page.
type LoginData struct {
	ErrorMessage string
}

// DashboardData feeds the protected dashboard view.
type DashboardData struct {
	User *domain.User
}

func Login(w io.Writer, data LoginData) error {
	return pages.ExecuteTemplate(w, "login", data)
}

func Loading(w io.Writer) error {
	return pages.ExecuteTemplate(w, "loading", nil)
}

func AuthError(w io.Writer, message string) error {
	return pages.ExecuteTemplate(w, "auth_error", LoginData{ErrorMessage: message})
}

func Dashboard(w io.Writer, data DashboardData) error {
	return pages.ExecuteTemplate(w, "dashboard", data)
}
