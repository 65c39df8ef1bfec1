package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

func validateTask(in model.TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errEmptyTitle
	}
	if in.DueDate != "" {
		if _, err := time.Parse("2006-01-02", in.DueDate); err != nil {
			return fmt.Errorf("due date %q: want YYYY-MM-DD", in.DueDate)
		}
	}
	return nil
}

// ListTasks returns tasks by due date, earliest first, undated last.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows := []model.Task{}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM tasks ORDER BY due_date = '', due_date, id")
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return rows, nil
}

// InsertTask creates a task and returns the stored row.
func (s *SQLiteStore) InsertTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	if err := validateTask(in); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return s.insertTaskAt(ctx, in, time.Now().UTC())
}

func (s *SQLiteStore) insertTaskAt(ctx context.Context, in model.TaskInput, at time.Time) (*model.Task, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			title, department_id, description, priority_id, status_id,
			due_date, assignee, completed, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.DepartmentID, in.Description, in.PriorityID, in.StatusID,
		in.DueDate, in.Assignee, in.Completed, at,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading task id: %w", err)
	}
	return getByID[model.Task](ctx, s, gateway.TableTasks, id)
}

// UpdateTask replaces the editable fields of a task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id int64, in model.TaskInput) (*model.Task, error) {
	if err := validateTask(in); err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, department_id = ?, description = ?, priority_id = ?,
			status_id = ?, due_date = ?, assignee = ?, completed = ?
		WHERE id = ?`,
		in.Title, in.DepartmentID, in.Description, in.PriorityID,
		in.StatusID, in.DueDate, in.Assignee, in.Completed,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task %d: %w", id, err)
	}
	if err := checkUpdated(result, gateway.TableTasks, id); err != nil {
		return nil, err
	}
	return getByID[model.Task](ctx, s, gateway.TableTasks, id)
}

// UpdateTaskStatus sets the status and completed flag of a task.
func (s *SQLiteStore) UpdateTaskStatus(ctx context.Context, id int64, statusID string, completed bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status_id = ?, completed = ? WHERE id = ?",
		statusID, completed, id)
	if err != nil {
		return fmt.Errorf("updating task %d status: %w", id, err)
	}
	return checkUpdated(result, gateway.TableTasks, id)
}

// DeleteTask removes a task. Comments and attachments are kept.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, gateway.TableTasks, id)
}
