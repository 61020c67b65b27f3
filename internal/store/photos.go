package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Photos stores processed listing photos.
type Photos struct {
	DB *sql.DB
}

// NewPhotos returns a photo store backed by db.
func NewPhotos(db *sql.DB) *Photos {
	return &Photos{DB: db}
}

// SavePhoto stores image data and returns its new ID.
func (s *Photos) SavePhoto(ctx context.Context, data []byte, mime string) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO photos (id, data, mime) VALUES (?, ?, ?)`,
		id, data, mime,
	)
	if err != nil {
		return "", fmt.Errorf("saving photo: %w", err)
	}
	return id, nil
}

// GetPhoto returns a photo's data and MIME type. Data is nil when the
// photo does not exist.
func (s *Photos) GetPhoto(ctx context.Context, id string) ([]byte, string, error) {
	var data []byte
	var mime string
	err := s.DB.QueryRowContext(ctx,
		`SELECT data, mime FROM photos WHERE id = ?`, id,
	).Scan(&data, &mime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting photo: %w", err)
	}
	return data, mime, nil
}
