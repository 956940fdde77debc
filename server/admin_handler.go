package server

import (
	"fmt"
	"net/http"
)

const sessionCookieName = "javiradio_session"

const adminLoginPage = `<!DOCTYPE html>
<html><head><title>JaviRadio Admin</title></head>
<body>
<h1>Admin Login</h1>
%s
<form method="post" action="/admin/login">
<input type="password" name="password" placeholder="Password" autofocus>
<button type="submit">Log in</button>
</form>
</body></html>`

const adminDashboardPage = `<!DOCTYPE html>
<html><head><title>JaviRadio Dashboard</title></head>
<body>
<h1>Dashboard</h1>
<p>Nothing to moderate yet.</p>
<p><a href="/admin/logout">Log out</a></p>
</body></html>`

func serveLoginPage(w http.ResponseWriter, errorMessage string) {
	banner := ""
	if errorMessage != "" {
		banner = fmt.Sprintf("<p>%s</p>", errorMessage)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, adminLoginPage, banner)
}

// AdminLoginPageHandler serves the login form.
func (h *APIHandler) AdminLoginPageHandler(w http.ResponseWriter, r *http.Request) {
	serveLoginPage(w, "")
}

// AdminLoginHandler checks the shared admin password and issues a
// session cookie carrying the admin flag.
func (h *APIHandler) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	if !h.auth.CheckPassword(password) {
		serveLoginPage(w, "Invalid password")
		return
	}

	token, err := h.auth.IssueSession()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

// AdminLogoutHandler clears the session cookie.
func (h *APIHandler) AdminLogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// AdminRequired redirects to the login page unless the request carries
// a valid admin session.
func (h *APIHandler) AdminRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || !h.auth.VerifySession(cookie.Value) {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// AdminDashboardHandler serves the dashboard stub.
func (h *APIHandler) AdminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, adminDashboardPage)
}
