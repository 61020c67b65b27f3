package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/listing"
	"github.com/amaralimoveis/vitrine/internal/model"
)

// filterData carries the current filter selection back into the form.
type filterData struct {
	Criteria   listing.Criteria
	Categories []model.Option
	Statuses   []model.Option
	All        string
}

func newFilterData(c listing.Criteria) filterData {
	return filterData{
		Criteria:   c,
		Categories: model.Categories,
		Statuses:   model.Statuses,
		All:        model.FilterAll,
	}
}

// Showcase handles GET /.
func (s *Server) Showcase(w http.ResponseWriter, r *http.Request) {
	criteria := listing.CriteriaFromValues(r.URL.Query())

	s.Templates.Render(w, "showcase.html", &struct {
		PageData
		Filter   filterData
		Listings []model.Listing
	}{
		PageData: s.page(r, "Imóveis"),
		Filter:   newFilterData(criteria),
		Listings: s.Catalog.Showcase(r.Context(), criteria),
	})
}

// ListingPage handles GET /imoveis/{id}. The foto query parameter selects
// the gallery photo and wraps around in both directions.
func (s *Server) ListingPage(w http.ResponseWriter, r *http.Request) {
	l, err := s.Catalog.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get listing", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	gallery := listing.Gallery(l)
	idx, _ := strconv.Atoi(r.URL.Query().Get("foto"))
	idx = listing.GalleryIndex(idx, len(gallery))

	s.Templates.Render(w, "listing.html", &struct {
		PageData
		Listing *model.Listing
		Gallery []string
		Index   int
		Prev    int
		Next    int
	}{
		PageData: s.page(r, l.Title),
		Listing:  l,
		Gallery:  gallery,
		Index:    idx,
		Prev:     listing.GalleryIndex(idx-1, len(gallery)),
		Next:     listing.GalleryIndex(idx+1, len(gallery)),
	})
}

// PhotoGet handles GET /photos/{id}.
func (s *Server) PhotoGet(w http.ResponseWriter, r *http.Request) {
	data, mime, err := s.Catalog.Photo(r.Context(), r.PathValue("id"))
	if errors.Is(err, catalog.ErrNoPhotoStore) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get photo", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}
