// Package catalog implements the listing commands used by the API and the
// web pages: create, update, delete, list and showcase, plus address
// completion and photo upload.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/amaralimoveis/vitrine/internal/imaging"
	"github.com/amaralimoveis/vitrine/internal/listing"
	"github.com/amaralimoveis/vitrine/internal/model"
	"github.com/amaralimoveis/vitrine/internal/postal"
)

var (
	// ErrNotFound is returned when a listing does not exist.
	ErrNotFound = errors.New("listing not found")
	// ErrNoPhotoStore is returned by photo operations when no photo store
	// is configured.
	ErrNoPhotoStore = errors.New("photo storage not configured")
)

// ValidationError reports a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Store persists listings. Get returns nil, nil for a missing listing.
type Store interface {
	List(ctx context.Context) ([]model.Listing, error)
	Get(ctx context.Context, id string) (*model.Listing, error)
	Upsert(ctx context.Context, l model.Listing) error
	Delete(ctx context.Context, id string) error
}

// Lookup resolves postal codes to addresses.
type Lookup interface {
	Lookup(ctx context.Context, cep string) (*postal.Address, bool)
}

// PhotoStore persists processed photos. GetPhoto returns nil data for a
// missing photo.
type PhotoStore interface {
	SavePhoto(ctx context.Context, data []byte, mime string) (string, error)
	GetPhoto(ctx context.Context, id string) ([]byte, string, error)
}

// Service runs catalog commands against the injected collaborators.
type Service struct {
	store  Store
	lookup Lookup
	photos PhotoStore
	norm   listing.Options
}

// Option configures a Service.
type Option func(*Service)

// WithPhotos enables photo upload and retrieval.
func WithPhotos(p PhotoStore) Option {
	return func(s *Service) { s.photos = p }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.norm.Now = now }
}

// WithIDs overrides the listing ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.norm.NewID = newID }
}

// New returns a Service over store. lookup may be nil, which disables
// address completion.
func New(store Store, lookup Lookup, opts ...Option) *Service {
	s := &Service{store: store, lookup: lookup}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit creates a new listing. Any ID or creation time in st is ignored
// and photo references failing listing.SafeURL are dropped.
func (s *Service) Submit(ctx context.Context, st listing.FormState) (*model.Listing, error) {
	if err := validate(st); err != nil {
		return nil, err
	}

	st.ID = ""
	st.CreatedAt = time.Time{}
	st.Photos = listing.SafePhotos(st.Photos)
	l := listing.Normalize(st, s.norm)

	if err := s.store.Upsert(ctx, l); err != nil {
		return nil, fmt.Errorf("saving listing: %w", err)
	}
	return &l, nil
}

// Update replaces the listing with the given ID, keeping its identity and
// creation time.
func (s *Service) Update(ctx context.Context, id string, st listing.FormState) (*model.Listing, error) {
	if err := validate(st); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	st.ID = current.ID
	st.CreatedAt = current.CreatedAt
	st.Photos = listing.SafePhotos(st.Photos)
	l := listing.Normalize(st, s.norm)

	if err := s.store.Upsert(ctx, l); err != nil {
		return nil, fmt.Errorf("saving listing: %w", err)
	}
	return &l, nil
}

// Delete removes a listing permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	return nil
}

// List returns every listing, newest first. A store failure is logged and
// yields an empty list.
func (s *Service) List(ctx context.Context) []model.Listing {
	listings, err := s.store.List(ctx)
	if err != nil {
		slog.Error("failed to list listings", "error", err)
		return []model.Listing{}
	}
	if listings == nil {
		return []model.Listing{}
	}
	return listings
}

// Get returns a listing by ID.
func (s *Service) Get(ctx context.Context, id string) (*model.Listing, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading listing: %w", err)
	}
	if l == nil {
		return nil, ErrNotFound
	}
	return l, nil
}

// Showcase returns the listings matching c.
func (s *Service) Showcase(ctx context.Context, c listing.Criteria) []model.Listing {
	return listing.Filter(s.List(ctx), c)
}

// FillAddress completes the street, neighborhood, city and region of st
// from its postal code. The state is returned unchanged when the code is
// incomplete or unknown.
func (s *Service) FillAddress(ctx context.Context, st listing.FormState) listing.FormState {
	st.PostalCode = listing.FormatCEP(st.PostalCode)
	if s.lookup == nil || len(listing.OnlyDigits(st.PostalCode)) != 8 {
		return st
	}

	addr, ok := s.lookup.Lookup(ctx, st.PostalCode)
	if !ok {
		return st
	}

	st.Street = addr.Street
	st.Neighborhood = addr.Neighborhood
	st.City = addr.City
	st.Region = strings.ToUpper(addr.Region)
	return st
}

// UploadPhoto processes an uploaded image, stores it and returns the
// reference to put in a listing's photo list.
func (s *Service) UploadPhoto(ctx context.Context, r io.Reader) (string, error) {
	if s.photos == nil {
		return "", ErrNoPhotoStore
	}

	result, err := imaging.Process(r)
	if err != nil {
		return "", err
	}

	id, err := s.photos.SavePhoto(ctx, result.Data, result.MIME)
	if err != nil {
		return "", fmt.Errorf("saving photo: %w", err)
	}
	return listing.PhotoPathPrefix + id, nil
}

// Photo returns a stored photo. Data is nil when it does not exist.
func (s *Service) Photo(ctx context.Context, id string) ([]byte, string, error) {
	if s.photos == nil {
		return nil, "", ErrNoPhotoStore
	}
	return s.photos.GetPhoto(ctx, id)
}

func validate(st listing.FormState) error {
	if strings.TrimSpace(st.Title) == "" {
		return &ValidationError{Field: "title", Message: "O título do anúncio é obrigatório."}
	}
	return nil
}
