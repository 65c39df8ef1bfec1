package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/shift-handover/internal/gateway"
)

// ErrBlobExists is returned when uploading to an occupied path.
var ErrBlobExists = errors.New("blob already exists")

// LocalURLScheme prefixes the pseudo links handed out by CreateSignedURL.
const LocalURLScheme = "local"

// Upload stores data at path. Paths are write-once.
func (s *SQLiteStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if data == nil {
		data = []byte{}
	}

	var exists int
	if err := s.db.GetContext(ctx, &exists, "SELECT COUNT(*) FROM blobs WHERE path = ?", path); err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	if exists > 0 {
		return fmt.Errorf("uploading %s: %w", path, ErrBlobExists)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (id, path, content_type, size_bytes, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), path, contentType, len(data), data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	return nil
}

// Remove deletes the blobs at paths. Missing paths are ignored.
func (s *SQLiteStore) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM blobs WHERE path IN (?)", paths)
	if err != nil {
		return fmt.Errorf("building blob delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("removing blobs: %w", err)
	}
	return nil
}

// CreateSignedURL returns a local://blobs/{id} link carrying its expiry.
// Nothing serves these links; they identify the blob for display.
func (s *SQLiteStore) CreateSignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	var id string
	err := s.db.GetContext(ctx, &id, "SELECT id FROM blobs WHERE path = ?", path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("signing %s: %w", path, gateway.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("signing %s: %w", path, err)
	}

	u := url.URL{
		Scheme:   LocalURLScheme,
		Host:     "blobs",
		Path:     "/" + id,
		RawQuery: url.Values{"expires": {fmt.Sprint(time.Now().Add(ttl).Unix())}}.Encode(),
	}
	return u.String(), nil
}

// Download returns the bytes stored at path.
func (s *SQLiteStore) Download(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, "SELECT data FROM blobs WHERE path = ?", path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("downloading %s: %w", path, gateway.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", path, err)
	}
	return data, nil
}
