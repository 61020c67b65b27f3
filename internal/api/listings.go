package api

import (
	"log/slog"
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/listing"
	"github.com/amaralimoveis/vitrine/internal/model"
)

// ListingsHandler handles listing endpoints.
type ListingsHandler struct {
	Catalog *catalog.Service
}

type listingResponse struct {
	model.Listing
	PricePerArea float64 `json:"price_per_area"`
}

func newListingResponse(l *model.Listing) listingResponse {
	return listingResponse{Listing: *l, PricePerArea: listing.PricePerArea(l.TotalPrice, l.TotalArea)}
}

// List handles GET /api/listings. The q, tipo and status query parameters
// filter the result like the showcase does.
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	listings := h.Catalog.Showcase(r.Context(), listing.CriteriaFromValues(r.URL.Query()))
	jsonResponse(w, http.StatusOK, listings)
}

// Get handles GET /api/listings/{id}.
func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.Catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		catalogError(w, err, "get listing")
		return
	}
	jsonResponse(w, http.StatusOK, newListingResponse(l))
}

// Create handles POST /api/listings.
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var st listing.FormState
	if err := decodeJSON(r, &st); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Catalog.Submit(r.Context(), st)
	if err != nil {
		catalogError(w, err, "create listing")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("listing created", "user", claims.Username, "listing", l.ID, "title", l.Title)
	jsonResponse(w, http.StatusCreated, newListingResponse(l))
}

// Update handles PUT /api/listings/{id}.
func (h *ListingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var st listing.FormState
	if err := decodeJSON(r, &st); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Catalog.Update(r.Context(), r.PathValue("id"), st)
	if err != nil {
		catalogError(w, err, "update listing")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("listing updated", "user", claims.Username, "listing", l.ID)
	jsonResponse(w, http.StatusOK, newListingResponse(l))
}

// Delete handles DELETE /api/listings/{id}.
func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		catalogError(w, err, "delete listing")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("listing deleted", "user", claims.Username, "listing", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "listing deleted"})
}
