package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// ListAttachments returns every attachment row, newest first.
func (s *SQLiteStore) ListAttachments(ctx context.Context) ([]model.Attachment, error) {
	rows := []model.Attachment{}
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM attachments ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	return rows, nil
}

// InsertAttachment records the metadata of an uploaded blob.
func (s *SQLiteStore) InsertAttachment(ctx context.Context, in model.AttachmentInput) (*model.Attachment, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO attachments (
			item_type, item_id, file_name, storage_path,
			size_bytes, mime_type, uploaded_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(in.ItemType), in.ItemID, in.FileName, in.StoragePath,
		in.SizeBytes, in.MimeType, in.UploadedBy, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating attachment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading attachment id: %w", err)
	}
	return getByID[model.Attachment](ctx, s, gateway.TableAttachments, id)
}

// DeleteAttachment removes the metadata row only; the blob is removed
// separately through Remove.
func (s *SQLiteStore) DeleteAttachment(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, gateway.TableAttachments, id)
}
