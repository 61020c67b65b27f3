// Package api serves the JSON API under /api/.
package api

import (
	"database/sql"
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/auth"
	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/model"
)

// NewRouter creates the API router with all endpoints registered. lookup
// may be nil.
func NewRouter(db *sql.DB, tokens *auth.Tokens, svc *catalog.Service, lookup catalog.Lookup) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Tokens: tokens}
	usersHandler := &UsersHandler{DB: db}
	listingsHandler := &ListingsHandler{Catalog: svc}
	photosHandler := &PhotosHandler{Catalog: svc}
	postalHandler := &PostalHandler{Lookup: lookup}
	summaryHandler := &SummaryHandler{Catalog: svc}

	authMW := AuthMiddleware(tokens, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login and the showcase data.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/listings", listingsHandler.List)
	mux.HandleFunc("GET /api/listings/{id}", listingsHandler.Get)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/summary", authMW(http.HandlerFunc(summaryHandler.Get)))
	mux.Handle("GET /api/postal/{cep}", authMW(http.HandlerFunc(postalHandler.Get)))

	// Listings: write (manager+).
	mux.Handle("POST /api/listings", authMW(requireManager(http.HandlerFunc(listingsHandler.Create))))
	mux.Handle("PUT /api/listings/{id}", authMW(requireManager(http.HandlerFunc(listingsHandler.Update))))
	mux.Handle("DELETE /api/listings/{id}", authMW(requireManager(http.HandlerFunc(listingsHandler.Delete))))
	mux.Handle("POST /api/photos", authMW(requireManager(http.HandlerFunc(photosHandler.Upload))))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	return mux
}
