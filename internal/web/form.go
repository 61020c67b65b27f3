package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/amaralimoveis/vitrine/internal/imaging"
	"github.com/amaralimoveis/vitrine/internal/listing"
)

// maxFormBytes bounds a listing form including its uploaded photos.
const maxFormBytes = 64 << 20

// parseListingForm reads the admin listing form. Typed photo URLs that
// fail listing.SafeURL are dropped.
func parseListingForm(w http.ResponseWriter, r *http.Request) (listing.FormState, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return listing.FormState{}, fmt.Errorf("parsing form: %w", err)
	}

	st := listing.FormState{
		ExternalRef:    r.FormValue("external_ref"),
		Title:          r.FormValue("title"),
		Category:       r.FormValue("category"),
		Status:         r.FormValue("status"),
		PostalCode:     r.FormValue("postal_code"),
		Street:         r.FormValue("street"),
		Number:         r.FormValue("number"),
		Neighborhood:   r.FormValue("neighborhood"),
		City:           r.FormValue("city"),
		Region:         r.FormValue("region"),
		Complement:     r.FormValue("complement"),
		TotalPrice:     r.FormValue("total_price"),
		TotalArea:      r.FormValue("total_area"),
		BuiltArea:      r.FormValue("built_area"),
		Bedrooms:       r.FormValue("bedrooms"),
		Suites:         r.FormValue("suites"),
		Bathrooms:      r.FormValue("bathrooms"),
		Parking:        r.FormValue("parking"),
		LivingRooms:    r.FormValue("living_rooms"),
		Kitchens:       r.FormValue("kitchens"),
		OutdoorKitchen: r.FormValue("outdoor_kitchen"),
		Pool:           r.FormValue("pool"),
		Description:    r.FormValue("description"),
	}

	st.Photos = listing.SafePhotos(strings.Split(r.FormValue("photos"), "\n"))
	return st, nil
}

// appendUploads stores every file of the "upload" field and appends the
// resulting references to st. Files that cannot be processed are skipped
// and reported in the returned message.
func (s *Server) appendUploads(r *http.Request, st *listing.FormState) string {
	if r.MultipartForm == nil {
		return ""
	}

	var failed []string
	for _, fh := range r.MultipartForm.File["upload"] {
		f, err := fh.Open()
		if err != nil {
			failed = append(failed, fh.Filename)
			continue
		}
		ref, err := s.Catalog.UploadPhoto(r.Context(), f)
		f.Close()
		if err != nil {
			slog.Warn("photo upload rejected", "file", fh.Filename, "error", err)
			failed = append(failed, fh.Filename)
			continue
		}
		st.Photos = append(st.Photos, ref)
	}

	if len(failed) == 0 {
		return ""
	}
	return "Não foi possível enviar: " + strings.Join(failed, ", ")
}
