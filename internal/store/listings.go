// Package store implements SQLite persistence: the listing and photo
// document stores plus back-office accounts, settings and token revocation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amaralimoveis/vitrine/internal/model"
)

// timeLayout sorts lexically in the same order as the times it encodes.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Listings stores listings as JSON documents keyed by listing ID.
type Listings struct {
	DB *sql.DB
}

// NewListings returns a listing store backed by db.
func NewListings(db *sql.DB) *Listings {
	return &Listings{DB: db}
}

// List returns every listing, newest first.
func (s *Listings) List(ctx context.Context) ([]model.Listing, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT doc FROM listings ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		var l model.Listing
		if err := json.Unmarshal([]byte(doc), &l); err != nil {
			return nil, fmt.Errorf("decoding listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Get returns a listing by ID, or nil if it does not exist.
func (s *Listings) Get(ctx context.Context, id string) (*model.Listing, error) {
	var doc string
	err := s.DB.QueryRowContext(ctx,
		`SELECT doc FROM listings WHERE id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}

	l := &model.Listing{}
	if err := json.Unmarshal([]byte(doc), l); err != nil {
		return nil, fmt.Errorf("decoding listing %s: %w", id, err)
	}
	return l, nil
}

// Upsert inserts the listing or replaces the stored document with the same ID.
func (s *Listings) Upsert(ctx context.Context, l model.Listing) error {
	if l.ID == "" {
		return fmt.Errorf("upserting listing: empty id")
	}

	doc, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encoding listing: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO listings (id, doc, title, category, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     doc = excluded.doc,
		     title = excluded.title,
		     category = excluded.category,
		     status = excluded.status,
		     created_at = excluded.created_at,
		     updated_at = excluded.updated_at`,
		l.ID, string(doc), l.Title, l.Category, l.Status,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting listing: %w", err)
	}
	return nil
}

// Delete removes a listing. Deleting a missing listing is not an error.
func (s *Listings) Delete(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
