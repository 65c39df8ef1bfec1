package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// ListHandovers returns handovers, newest first.
func (s *SQLiteStore) ListHandovers(ctx context.Context) ([]model.Handover, error) {
	rows := []model.Handover{}
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM handovers ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing handovers: %w", err)
	}
	return rows, nil
}

// InsertHandover creates a handover and returns the stored row.
func (s *SQLiteStore) InsertHandover(ctx context.Context, in model.HandoverInput) (*model.Handover, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("creating handover: %w", errEmptyTitle)
	}
	return s.insertHandoverAt(ctx, in, time.Now().UTC())
}

func (s *SQLiteStore) insertHandoverAt(ctx context.Context, in model.HandoverInput, at time.Time) (*model.Handover, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO handovers (
			department_id, title, description, priority_id, status_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		in.DepartmentID, in.Title, in.Description, in.PriorityID, in.StatusID, at,
	)
	if err != nil {
		return nil, fmt.Errorf("creating handover: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading handover id: %w", err)
	}
	return getByID[model.Handover](ctx, s, gateway.TableHandovers, id)
}

// UpdateHandover replaces the editable fields of a handover.
func (s *SQLiteStore) UpdateHandover(ctx context.Context, id int64, in model.HandoverInput) (*model.Handover, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("updating handover %d: %w", id, errEmptyTitle)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE handovers SET
			department_id = ?, title = ?, description = ?,
			priority_id = ?, status_id = ?
		WHERE id = ?`,
		in.DepartmentID, in.Title, in.Description, in.PriorityID, in.StatusID,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating handover %d: %w", id, err)
	}
	if err := checkUpdated(result, gateway.TableHandovers, id); err != nil {
		return nil, err
	}
	return getByID[model.Handover](ctx, s, gateway.TableHandovers, id)
}

// UpdateHandoverStatus sets only the status of a handover.
func (s *SQLiteStore) UpdateHandoverStatus(ctx context.Context, id int64, statusID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE handovers SET status_id = ? WHERE id = ?", statusID, id)
	if err != nil {
		return fmt.Errorf("updating handover %d status: %w", id, err)
	}
	return checkUpdated(result, gateway.TableHandovers, id)
}

// DeleteHandover removes a handover. Comments and attachments are kept.
func (s *SQLiteStore) DeleteHandover(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, gateway.TableHandovers, id)
}
