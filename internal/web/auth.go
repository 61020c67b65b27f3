package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/amaralimoveis/vitrine/internal/auth"
	"github.com/amaralimoveis/vitrine/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := s.page(r, "Entrar")
	s.Templates.Render(w, "login.html", &data)
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "login.html", s.loginError(r, "Informe usuário e senha."))
		return
	}

	user, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
	}
	if err != nil || user == nil || user.DeletedAt != nil || !auth.CheckPassword(user.PasswordHash, password) {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", s.loginError(r, "Usuário ou senha inválidos."))
		return
	}

	token, claims, err := s.Tokens.Issue(user)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		s.Templates.RenderStatus(w, http.StatusInternalServerError, "login.html", s.loginError(r, "Erro ao entrar."))
		return
	}

	setAuthCookie(w, token, int(time.Until(claims.ExpiresAt.Time).Seconds()))
	slog.Info("user logged in", "user", user.Username, "role", user.Role)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) loginError(r *http.Request, msg string) *PageData {
	data := s.page(r, "Entrar")
	data.Error = msg
	return &data
}

// Logout handles POST /logout. The session token is revoked so a copied
// cookie stops working too.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := sessionClaims(r, s.Tokens, s.DB); ok {
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
			slog.Error("failed to revoke token", "error", err)
		} else {
			slog.Info("user logged out", "user", claims.Username)
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
