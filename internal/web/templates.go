// Package web serves the public showcase and the cookie-authenticated
// admin pages.
package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math"
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/auth"
	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/listing"
	"github.com/amaralimoveis/vitrine/internal/model"
	webembed "github.com/amaralimoveis/vitrine/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"roleAtLeast": model.RoleAtLeast,
		"roleName": func(role string) string {
			switch role {
			case model.RoleAdmin:
				return "Administrador"
			case model.RoleManager:
				return "Corretor"
			case model.RoleUser:
				return "Consulta"
			default:
				return role
			}
		},
		"categoryName": model.CategoryLabel,
		"statusName":   model.StatusLabel,
		"statusClass": func(status string) string {
			switch status {
			case model.StatusAvailable:
				return "status-disponivel"
			case model.StatusNegotiating:
				return "status-negociacao"
			default:
				return "status-vendido"
			}
		},
		"money": listing.FormatMoney,
		"area": func(v float64) string {
			if v == math.Trunc(v) {
				return listing.FormatNumber(v, 0)
			}
			return listing.FormatNumber(v, 2)
		},
		"pricePerArea": func(l model.Listing) float64 {
			return listing.PricePerArea(l.TotalPrice, l.TotalArea)
		},
		// Photo references are filtered by listing.SafeURL, which only
		// admits http(s), inline images and local uploads.
		"cover": func(l model.Listing) template.URL {
			return template.URL(listing.Cover(&l))
		},
		"photoURL": func(s string) template.URL {
			if s = listing.SafeURL(s); s == "" {
				s = listing.Placeholder
			}
			return template.URL(s)
		},
		"featureSummary": listing.FeatureSummary,
		"features":       listing.NonZeroFeatures,
		"address":        listing.AddressLine,
		"mapURL": func(loc model.Location) string {
			return listing.MapURL(loc.City, loc.Region)
		},
		"orDash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
		"add": func(a, b int) int { return a + b },
	}
}

// pages lists every page template; each is parsed together with the layout.
var pages = []string{
	"login.html",
	"showcase.html",
	"listing.html",
	"admin.html",
	"admin_form.html",
	"report.html",
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data and a 200 status.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	ts.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (ts *Templates) RenderStatus(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	User    *auth.Claims
	Contact Contact
	// Theme is "light", "dark" or "" to follow the system preference.
	Theme   string
	Error   string
	Success string
}

// Contact holds the public contact links shown on listing pages.
type Contact struct {
	WhatsApp  string
	Instagram string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Catalog   *catalog.Service
	Tokens    *auth.Tokens
	Templates *Templates
	Contact   Contact
}

func (s *Server) page(r *http.Request, title string) PageData {
	return PageData{
		Title:   title,
		User:    GetWebClaims(r.Context()),
		Contact: s.Contact,
		Theme:   themeOf(r),
	}
}
