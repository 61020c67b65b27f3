package api

import (
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/catalog"
)

// PostalHandler resolves postal codes for clients filling in an address.
type PostalHandler struct {
	Lookup catalog.Lookup
}

// Get handles GET /api/postal/{cep}.
func (h *PostalHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Lookup == nil {
		jsonError(w, http.StatusNotFound, "postal code not found")
		return
	}

	addr, ok := h.Lookup.Lookup(r.Context(), r.PathValue("cep"))
	if !ok {
		jsonError(w, http.StatusNotFound, "postal code not found")
		return
	}
	jsonResponse(w, http.StatusOK, addr)
}
