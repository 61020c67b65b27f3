package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/amaralimoveis/vitrine/internal/model"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="750">` +
	`<defs><linearGradient id="g" x1="0" x2="1">` +
	`<stop offset="0" stop-color="#f0f4f8"/><stop offset="1" stop-color="#dfe8f1"/>` +
	`</linearGradient></defs>` +
	`<rect width="100%" height="100%" fill="url(#g)"/>` +
	`<g fill="#1a477b" opacity="0.9"><path d="M600 170l260 200v310H690V520H510v160H340V370z"/></g>` +
	`<text x="50%" y="72%" text-anchor="middle" font-family="Arial, sans-serif" font-size="40" fill="#666">Sem foto cadastrada</text>` +
	`</svg>`

// Placeholder is the image reference stored when a listing has no photos.
var Placeholder = "data:image/svg+xml;charset=UTF-8," + strings.ReplaceAll(url.QueryEscape(placeholderSVG), "+", "%20")

// PhotoPathPrefix prefixes references to photos uploaded to this service.
const PhotoPathPrefix = "/photos/"

var (
	httpURL   = regexp.MustCompile(`(?i)^https?://`)
	dataImage = regexp.MustCompile(`(?i)^data:image/`)
)

// SafeURL returns s if it is an http(s) URL, an inline image or a reference
// to an uploaded photo, and "" otherwise.
func SafeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if httpURL.MatchString(s) || dataImage.MatchString(s) || strings.HasPrefix(s, PhotoPathPrefix) {
		return s
	}
	return ""
}

// SafePhotos keeps the photo references that pass SafeURL, in order.
func SafePhotos(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if u := SafeURL(p); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Cover returns the displayable cover image of a listing.
func Cover(l *model.Listing) string {
	if c := SafeURL(l.Cover()); c != "" {
		return c
	}
	return Placeholder
}

// Gallery returns every photo of a listing in displayable form.
func Gallery(l *model.Listing) []string {
	if len(l.Photos) == 0 {
		return []string{Placeholder}
	}
	out := make([]string, len(l.Photos))
	for i, p := range l.Photos {
		if out[i] = SafeURL(p); out[i] == "" {
			out[i] = Placeholder
		}
	}
	return out
}

// GalleryIndex wraps i into [0, total), so stepping before the first photo
// lands on the last one.
func GalleryIndex(i, total int) int {
	if total <= 0 {
		return 0
	}
	return ((i % total) + total) % total
}

// FormatMoney renders a value as Brazilian reais, e.g. "R$ 1.234,56".
func FormatMoney(v float64) string {
	return "R$ " + humanize.FormatFloat("#.###,##", v)
}

// FormatNumber renders v with pt-BR separators and the given number of
// decimal places (0 to 3).
func FormatNumber(v float64, digits int) string {
	switch digits {
	case 1:
		return humanize.FormatFloat("#.###,#", v)
	case 2:
		return humanize.FormatFloat("#.###,##", v)
	case 3:
		return humanize.FormatFloat("#.###,###", v)
	default:
		return humanize.FormatFloat("#.###,", v)
	}
}

// FeatureItem is a labelled feature counter.
type FeatureItem struct {
	Label string
	Icon  string
	Value int
}

// FeatureItems lists every feature counter in display order.
func FeatureItems(f model.Features) []FeatureItem {
	return []FeatureItem{
		{"Quartos", "🛏️", f.Bedrooms},
		{"Suítes", "🛏️", f.Suites},
		{"Banheiros", "🚿", f.Bathrooms},
		{"Vagas", "🚗", f.Parking},
		{"Salas", "📺", f.LivingRooms},
		{"Cozinhas", "🍽️", f.Kitchens},
		{"Área gourmet", "🥂", f.OutdoorKitchen},
		{"Piscina", "🏊", f.Pool},
	}
}

// NonZeroFeatures is FeatureItems without the zero counters.
func NonZeroFeatures(f model.Features) []FeatureItem {
	var out []FeatureItem
	for _, it := range FeatureItems(f) {
		if it.Value > 0 {
			out = append(out, it)
		}
	}
	return out
}

// FeatureSummary is the one-line room summary shown in tables.
func FeatureSummary(f model.Features) string {
	return fmt.Sprintf("%d qts • %d banh • %d vgs", f.Bedrooms, f.Bathrooms, f.Parking)
}

// AddressLine renders "Bairro, Cidade - UF" with "-" for missing parts.
func AddressLine(loc model.Location) string {
	return fmt.Sprintf("%s, %s - %s", orDash(loc.Neighborhood), orDash(loc.City), orDash(strings.ToUpper(loc.Region)))
}

// MapURL returns an embeddable map centred on the city, never on the
// exact street address.
func MapURL(city, region string) string {
	q := strings.TrimSpace(strings.TrimSpace(city) + " " + strings.ToUpper(strings.TrimSpace(region)))
	if q == "" {
		q = "Brasil"
	} else {
		q = strings.Join(strings.Fields(q), "-")
	}
	return "https://www.google.com/maps?q=" + url.QueryEscape(q) + "&output=embed"
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

// formatInput renders a stored quantity back into a form value that
// ParseNumber reads unchanged. Zero renders empty.
func formatInput(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
