package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/shift-handover/internal/model"
)

// ListDepartments returns departments in insertion order.
func (s *SQLiteStore) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows := []model.Department{}
	err := s.db.SelectContext(ctx, &rows, "SELECT id, name, color FROM departments ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	return rows, nil
}

// ListPriorities returns priorities, highest level first.
func (s *SQLiteStore) ListPriorities(ctx context.Context) ([]model.Priority, error) {
	rows := []model.Priority{}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, name, color, level FROM priorities ORDER BY level DESC")
	if err != nil {
		return nil, fmt.Errorf("listing priorities: %w", err)
	}
	return rows, nil
}

// ListStatuses returns statuses ordered by category then order index.
func (s *SQLiteStore) ListStatuses(ctx context.Context) ([]model.Status, error) {
	rows := []model.Status{}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, name, color, category, order_index FROM statuses ORDER BY category, order_index")
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	return rows, nil
}

// getByID loads one row of table into T.
func getByID[T any](ctx context.Context, s *SQLiteStore, table string, id int64) (*T, error) {
	var row T
	err := s.db.GetContext(ctx, &row, "SELECT * FROM "+table+" WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", table, id, err)
	}
	return &row, nil
}

// deleteByID removes one row of table.
func (s *SQLiteStore) deleteByID(ctx context.Context, table string, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", table, id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound(table, id)
	}
	return nil
}

// checkUpdated maps a zero-row update onto ErrNotFound.
func checkUpdated(result sql.Result, table string, id int64) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound(table, id)
	}
	return nil
}
