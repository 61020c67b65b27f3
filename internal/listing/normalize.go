package listing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/amaralimoveis/vitrine/internal/model"
)

// FormState is the raw listing input as typed into the admin form or sent
// to the API. Everything except ID, CreatedAt and Photos is free text.
type FormState struct {
	ID          string    `json:"id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	ExternalRef string    `json:"external_ref"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`

	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Region       string `json:"region"`
	Complement   string `json:"complement"`

	TotalPrice string `json:"total_price"`
	TotalArea  string `json:"total_area"`
	BuiltArea  string `json:"built_area"`

	Bedrooms       string `json:"bedrooms"`
	Suites         string `json:"suites"`
	Bathrooms      string `json:"bathrooms"`
	Parking        string `json:"parking"`
	LivingRooms    string `json:"living_rooms"`
	Kitchens       string `json:"kitchens"`
	OutdoorKitchen string `json:"outdoor_kitchen"`
	Pool           string `json:"pool"`

	Description string   `json:"description"`
	Photos      []string `json:"photos"`
}

// Options controls the non-deterministic parts of Normalize.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = NewID
	}
	return o
}

// NewID returns a fresh listing identifier. UUIDv7 is time ordered with a
// random tail.
func NewID() string {
	return "imv_" + uuid.Must(uuid.NewV7()).String()
}

// Normalize turns form input into a fully defaulted listing.
func Normalize(st FormState, opts Options) model.Listing {
	opts = opts.withDefaults()
	now := opts.Now().UTC()

	id := strings.TrimSpace(st.ID)
	if id == "" {
		id = opts.NewID()
	}
	createdAt := st.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	category := strings.TrimSpace(st.Category)
	if category == "" {
		category = model.CategoryHouse
	}
	status := strings.TrimSpace(st.Status)
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Listing{
		ID:          id,
		ExternalRef: strings.TrimSpace(st.ExternalRef),
		Title:       strings.TrimSpace(st.Title),
		Category:    category,
		Status:      status,
		Location: model.Location{
			PostalCode:   FormatCEP(st.PostalCode),
			Street:       strings.TrimSpace(st.Street),
			Number:       strings.TrimSpace(st.Number),
			Neighborhood: strings.TrimSpace(st.Neighborhood),
			City:         strings.TrimSpace(st.City),
			Region:       NormalizeRegion(st.Region),
			Complement:   strings.TrimSpace(st.Complement),
		},
		TotalPrice: nonNegative(ParseNumber(st.TotalPrice)),
		TotalArea:  nonNegative(ParseNumber(st.TotalArea)),
		BuiltArea:  nonNegative(ParseNumber(st.BuiltArea)),
		Features: model.Features{
			Bedrooms:       parseCount(st.Bedrooms),
			Suites:         parseCount(st.Suites),
			Bathrooms:      parseCount(st.Bathrooms),
			Parking:        parseCount(st.Parking),
			LivingRooms:    parseCount(st.LivingRooms),
			Kitchens:       parseCount(st.Kitchens),
			OutdoorKitchen: parseCount(st.OutdoorKitchen),
			Pool:           parseCount(st.Pool),
		},
		Description: strings.TrimSpace(st.Description),
		Photos:      normalizePhotos(st.Photos),
		CreatedAt:   createdAt,
		UpdatedAt:   now,
	}
}

// NormalizeRegion upper-cases a state code and keeps its first two letters.
func NormalizeRegion(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if utf8.RuneCountInString(s) <= 2 {
		return s
	}
	return string([]rune(s)[:2])
}

// FormStateOf converts a stored listing back into form input, the inverse
// used when an existing listing is edited.
func FormStateOf(l *model.Listing) FormState {
	return FormState{
		ID:             l.ID,
		CreatedAt:      l.CreatedAt,
		ExternalRef:    l.ExternalRef,
		Title:          l.Title,
		Category:       l.Category,
		Status:         l.Status,
		PostalCode:     l.Location.PostalCode,
		Street:         l.Location.Street,
		Number:         l.Location.Number,
		Neighborhood:   l.Location.Neighborhood,
		City:           l.Location.City,
		Region:         l.Location.Region,
		Complement:     l.Location.Complement,
		TotalPrice:     formatInput(l.TotalPrice),
		TotalArea:      formatInput(l.TotalArea),
		BuiltArea:      formatInput(l.BuiltArea),
		Bedrooms:       itoa(l.Features.Bedrooms),
		Suites:         itoa(l.Features.Suites),
		Bathrooms:      itoa(l.Features.Bathrooms),
		Parking:        itoa(l.Features.Parking),
		LivingRooms:    itoa(l.Features.LivingRooms),
		Kitchens:       itoa(l.Features.Kitchens),
		OutdoorKitchen: itoa(l.Features.OutdoorKitchen),
		Pool:           itoa(l.Features.Pool),
		Description:    l.Description,
		Photos:         userPhotos(l.Photos),
	}
}

func normalizePhotos(in []string) []string {
	photos := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			photos = append(photos, p)
		}
	}
	if len(photos) == 0 {
		return []string{Placeholder}
	}
	return photos
}

// userPhotos drops the placeholder so that editing a listing without photos
// does not turn the placeholder into a real photo.
func userPhotos(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p != Placeholder {
			out = append(out, p)
		}
	}
	return out
}

func nonNegative(n float64) float64 {
	if n < 0 {
		return 0
	}
	return n
}
