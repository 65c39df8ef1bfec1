package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

func validateSchedule(in *model.ScheduleInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errEmptyTitle
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return fmt.Errorf("schedule date %q: want YYYY-MM-DD", in.Date)
	}
	if in.Duration <= 0 {
		in.Duration = model.DefaultScheduleDuration
	}
	return nil
}

// ListSchedules returns schedules by date then time, earliest first.
func (s *SQLiteStore) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	rows := []model.Schedule{}
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM schedules ORDER BY date, time, id")
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	return rows, nil
}

// InsertSchedule creates a schedule and returns the stored row.
func (s *SQLiteStore) InsertSchedule(ctx context.Context, in model.ScheduleInput) (*model.Schedule, error) {
	if err := validateSchedule(&in); err != nil {
		return nil, fmt.Errorf("creating schedule: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO schedules (
			title, department_id, date, time, description, duration, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.DepartmentID, in.Date, in.Time, in.Description, in.Duration,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating schedule: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading schedule id: %w", err)
	}
	return getByID[model.Schedule](ctx, s, gateway.TableSchedules, id)
}

// UpdateSchedule replaces the editable fields of a schedule.
func (s *SQLiteStore) UpdateSchedule(ctx context.Context, id int64, in model.ScheduleInput) (*model.Schedule, error) {
	if err := validateSchedule(&in); err != nil {
		return nil, fmt.Errorf("updating schedule %d: %w", id, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE schedules SET
			title = ?, department_id = ?, date = ?, time = ?,
			description = ?, duration = ?
		WHERE id = ?`,
		in.Title, in.DepartmentID, in.Date, in.Time, in.Description, in.Duration,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating schedule %d: %w", id, err)
	}
	if err := checkUpdated(result, gateway.TableSchedules, id); err != nil {
		return nil, err
	}
	return getByID[model.Schedule](ctx, s, gateway.TableSchedules, id)
}

// DeleteSchedule removes a schedule. Its attachments are left in place.
func (s *SQLiteStore) DeleteSchedule(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, gateway.TableSchedules, id)
}
