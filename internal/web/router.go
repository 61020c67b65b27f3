package web

import (
	"database/sql"
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/auth"
	"github.com/amaralimoveis/vitrine/internal/catalog"
	webembed "github.com/amaralimoveis/vitrine/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, tokens *auth.Tokens, svc *catalog.Service, contact Contact) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Catalog:   svc,
		Tokens:    tokens,
		Templates: templates,
		Contact:   contact,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(tokens, db)
	manager := func(h http.HandlerFunc) http.Handler {
		return cookieAuth(RequireManager(h))
	}

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.Showcase)
	mux.HandleFunc("GET /imoveis/{id}", s.ListingPage)
	mux.HandleFunc("GET /photos/{id}", s.PhotoGet)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("POST /tema", s.ThemeToggle)

	// Admin routes: every role can look, managers can change.
	mux.Handle("GET /admin", cookieAuth(http.HandlerFunc(s.AdminPage)))
	mux.Handle("GET /admin/imoveis/{id}/relatorio", cookieAuth(http.HandlerFunc(s.ListingReportPage)))
	mux.Handle("GET /admin/imoveis/novo", manager(s.ListingNewPage))
	mux.Handle("POST /admin/imoveis", manager(s.ListingCreateSubmit))
	mux.Handle("GET /admin/imoveis/{id}/editar", manager(s.ListingEditPage))
	mux.Handle("POST /admin/imoveis/{id}", manager(s.ListingUpdateSubmit))
	mux.Handle("POST /admin/imoveis/{id}/excluir", manager(s.ListingDeleteSubmit))

	return mux, nil
}
