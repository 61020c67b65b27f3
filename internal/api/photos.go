package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/amaralimoveis/vitrine/internal/catalog"
	"github.com/amaralimoveis/vitrine/internal/imaging"
)

// PhotosHandler handles photo uploads.
type PhotosHandler struct {
	Catalog *catalog.Service
}

// Upload handles POST /api/photos. The multipart field "photo" is
// processed and stored; the response carries the reference to add to a
// listing's photos.
func (h *PhotosHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)

	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	ref, err := h.Catalog.UploadPhoto(r.Context(), file)
	switch {
	case errors.Is(err, catalog.ErrNoPhotoStore):
		jsonError(w, http.StatusServiceUnavailable, "photo storage not configured")
		return
	case errors.Is(err, imaging.ErrUnsupported), errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Warn("photo upload rejected", "error", err)
		jsonError(w, http.StatusBadRequest, "invalid image")
		return
	}

	claims := GetClaims(r.Context())
	slog.Info("photo uploaded", "user", claims.Username, "ref", ref)
	jsonResponse(w, http.StatusCreated, map[string]string{"ref": ref})
}
