package api

import (
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/listing"
)

// SummaryHandler serves the dashboard counters.
type SummaryHandler struct {
	Catalog *catalog.Service
}

// Get handles GET /api/summary.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, listing.Summarize(h.Catalog.List(r.Context())))
}
