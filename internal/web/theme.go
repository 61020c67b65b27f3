package web

import (
	"net/http"
	"net/url"
)

const (
	themeCookie = "tema"
	themeLight  = "light"
	themeDark   = "dark"
)

// themeOf returns the saved theme, or "" to follow the system preference.
func themeOf(r *http.Request) string {
	c, err := r.Cookie(themeCookie)
	if err != nil {
		return ""
	}
	if c.Value == themeLight || c.Value == themeDark {
		return c.Value
	}
	return ""
}

// ThemeToggle handles POST /tema. The form sends the theme to switch to;
// without one the saved theme is flipped. The user is sent back to the
// page they came from.
func (s *Server) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := r.FormValue("tema")
	if next != themeLight && next != themeDark {
		next = themeDark
		if themeOf(r) == themeDark {
			next = themeLight
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   365 * 24 * 60 * 60,
	})
	http.Redirect(w, r, backPath(r), http.StatusSeeOther)
}

// backPath returns the local path of the referring page, or "/".
func backPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || ref.Path[0] != '/' || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if len(ref.Path) > 1 && ref.Path[1] == '/' {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
