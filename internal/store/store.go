// Package store is the local backend: a SQLite database that serves the
// same gateway contract as the hosted service, blobs included. It backs
// offline use, demos and tests.
package store

import (
	"errors"
	"fmt"

	"github.com/nhle/shift-handover/internal/gateway"
)

var _ gateway.Backend = (*SQLiteStore)(nil)

// notFound wraps gateway.ErrNotFound with the missing row.
func notFound(table string, id int64) error {
	return fmt.Errorf("%s %d: %w", table, id, gateway.ErrNotFound)
}

// errEmptyTitle guards inserts and updates of titled rows.
var errEmptyTitle = errors.New("title must not be empty")
