package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// ListComments returns every comment, newest first. Callers filter by
// owner themselves.
func (s *SQLiteStore) ListComments(ctx context.Context) ([]model.Comment, error) {
	rows := []model.Comment{}
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM comments ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return rows, nil
}

// InsertComment stores a comment on a task or handover.
func (s *SQLiteStore) InsertComment(ctx context.Context, in model.CommentInput) (*model.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("creating comment: content must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (item_type, item_id, author_name, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(in.ItemType), in.ItemID, in.AuthorName, in.Content, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading comment id: %w", err)
	}
	return getByID[model.Comment](ctx, s, gateway.TableComments, id)
}

// DeleteComment removes a comment by id.
func (s *SQLiteStore) DeleteComment(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, gateway.TableComments, id)
}
