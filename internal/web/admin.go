package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/listing"
	"github.com/amaralimoveis/vitrine/internal/model"
)

var flashMessages = map[string]string{
	"salvo":    "Imóvel salvo.",
	"excluido": "Imóvel excluído.",
}

// AdminPage handles GET /admin: the dashboard counters and the listing table.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	criteria := listing.CriteriaFromValues(r.URL.Query())
	all := s.Catalog.List(r.Context())

	data := &struct {
		PageData
		Summary  listing.Summary
		Filter   filterData
		Listings []model.Listing
	}{
		PageData: s.page(r, "Painel"),
		Summary:  listing.Summarize(all),
		Filter:   newFilterData(criteria),
		Listings: listing.Filter(all, criteria),
	}
	data.Success = flashMessages[r.URL.Query().Get("ok")]

	s.Templates.Render(w, "admin.html", data)
}

// formData is the listing form page. EditID is empty for a new listing.
type formData struct {
	PageData
	Form       listing.FormState
	PhotosText string
	EditID     string
	Categories []model.Option
	Statuses   []model.Option
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, editID string, st listing.FormState, msg string) {
	title := "Novo imóvel"
	if editID != "" {
		title = "Editar imóvel"
	}
	data := &formData{
		PageData:   s.page(r, title),
		Form:       st,
		PhotosText: strings.Join(st.Photos, "\n"),
		EditID:     editID,
		Categories: model.Categories,
		Statuses:   model.Statuses,
	}
	data.Error = msg
	s.Templates.RenderStatus(w, status, "admin_form.html", data)
}

// ListingNewPage handles GET /admin/imoveis/novo.
func (s *Server) ListingNewPage(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, "", listing.FormState{
		Category: model.CategoryHouse,
		Status:   model.StatusAvailable,
	}, "")
}

// ListingCreateSubmit handles POST /admin/imoveis.
func (s *Server) ListingCreateSubmit(w http.ResponseWriter, r *http.Request) {
	s.submitForm(w, r, "")
}

// ListingEditPage handles GET /admin/imoveis/{id}/editar.
func (s *Server) ListingEditPage(w http.ResponseWriter, r *http.Request) {
	l, ok := s.loadListing(w, r)
	if !ok {
		return
	}
	s.renderForm(w, r, http.StatusOK, l.ID, listing.FormStateOf(l), "")
}

// ListingUpdateSubmit handles POST /admin/imoveis/{id}.
func (s *Server) ListingUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	s.submitForm(w, r, r.PathValue("id"))
}

// submitForm handles both form posts. The "cep" action fills the address
// from the postal code and re-renders without saving; any other action
// saves. Uploaded files are stored and appended to the photos either way.
func (s *Server) submitForm(w http.ResponseWriter, r *http.Request, editID string) {
	claims := GetWebClaims(r.Context())

	st, err := parseListingForm(w, r)
	if err != nil {
		slog.Warn("invalid listing form", "error", err)
		s.renderForm(w, r, http.StatusBadRequest, editID, st, "Formulário inválido ou arquivos grandes demais.")
		return
	}
	uploadMsg := s.appendUploads(r, &st)

	if r.FormValue("action") == "cep" {
		s.renderForm(w, r, http.StatusOK, editID, s.Catalog.FillAddress(r.Context(), st), uploadMsg)
		return
	}

	var saved *model.Listing
	if editID == "" {
		saved, err = s.Catalog.Submit(r.Context(), st)
	} else {
		saved, err = s.Catalog.Update(r.Context(), editID, st)
	}

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		s.renderForm(w, r, http.StatusBadRequest, editID, st, verr.Message)
		return
	case errors.Is(err, catalog.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		slog.Error("failed to save listing", "user", claims.Username, "error", err)
		s.renderForm(w, r, http.StatusInternalServerError, editID, st, "Não foi possível salvar o imóvel. Tente novamente.")
		return
	}

	if editID == "" {
		slog.Info("listing created", "user", claims.Username, "listing", saved.ID, "title", saved.Title)
	} else {
		slog.Info("listing updated", "user", claims.Username, "listing", saved.ID)
	}

	if uploadMsg != "" {
		s.renderForm(w, r, http.StatusOK, saved.ID, listing.FormStateOf(saved), uploadMsg)
		return
	}
	http.Redirect(w, r, "/admin?ok=salvo", http.StatusSeeOther)
}

// ListingDeleteSubmit handles POST /admin/imoveis/{id}/excluir.
func (s *Server) ListingDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id := r.PathValue("id")

	if err := s.Catalog.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete listing", "user", claims.Username, "listing", id, "error", err)
		http.Error(w, "failed to delete", http.StatusInternalServerError)
		return
	}

	slog.Info("listing deleted", "user", claims.Username, "listing", id)
	http.Redirect(w, r, "/admin?ok=excluido", http.StatusSeeOther)
}

// ListingReportPage handles GET /admin/imoveis/{id}/relatorio, a printable
// summary of one listing.
func (s *Server) ListingReportPage(w http.ResponseWriter, r *http.Request) {
	l, ok := s.loadListing(w, r)
	if !ok {
		return
	}

	s.Templates.Render(w, "report.html", &struct {
		PageData
		Listing *model.Listing
	}{
		PageData: s.page(r, "Relatório - "+l.Title),
		Listing:  l,
	})
}

func (s *Server) loadListing(w http.ResponseWriter, r *http.Request) (*model.Listing, bool) {
	l, err := s.Catalog.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		slog.Error("failed to get listing", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return l, true
}
