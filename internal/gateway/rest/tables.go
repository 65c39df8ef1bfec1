package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

var _ gateway.Backend = (*Client)(nil)

// Order clauses per collection, in PostgREST syntax.
const (
	orderPriorities  = "level.desc"
	orderStatuses    = "category.asc,order_index.asc"
	orderSchedules   = "date.asc,time.asc"
	orderHandovers   = "created_at.desc"
	orderTasks       = "due_date.asc.nullslast"
	orderComments    = "created_at.desc"
	orderAttachments = "created_at.desc"
)

func tablePath(table string, q url.Values) string {
	return "/rest/v1/" + table + "?" + q.Encode()
}

func listRows[T any](ctx context.Context, c *Client, table, order string) ([]T, error) {
	q := url.Values{"select": {"*"}}
	if order != "" {
		q.Set("order", order)
	}
	rows := []T{}
	err := c.doJSON(ctx, request{method: http.MethodGet, path: tablePath(table, q)}, &rows)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", table, err)
	}
	return rows, nil
}

func insertRow[T any](ctx context.Context, c *Client, table string, payload interface{}) (*T, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	var rows []T
	err = c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table, url.Values{"select": {"*"}}),
		body:   body,
		header: map[string]string{"Prefer": "return=representation"},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("inserting into %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("inserting into %s: empty representation", table)
	}
	return &rows[0], nil
}

func idFilter(id int64) url.Values {
	return url.Values{"id": {fmt.Sprintf("eq.%d", id)}}
}

func updateRow[T any](ctx context.Context, c *Client, table string, id int64, payload interface{}) (*T, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return nil, err
	}
	q := idFilter(id)
	q.Set("select", "*")
	var rows []T
	err = c.doJSON(ctx, request{
		method: http.MethodPatch,
		path:   tablePath(table, q),
		body:   body,
		header: map[string]string{"Prefer": "return=representation"},
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("updating %s %d: %w", table, id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("updating %s %d: %w", table, id, gateway.ErrNotFound)
	}
	return &rows[0], nil
}

func patchRow(ctx context.Context, c *Client, table string, id int64, fields map[string]interface{}) error {
	_, err := updateRow[map[string]interface{}](ctx, c, table, id, fields)
	return err
}

func deleteRow(ctx context.Context, c *Client, table string, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: tablePath(table, idFilter(id))})
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", table, id, err)
	}
	return nil
}

// taskPayload sends an empty due date as null; the column is a date.
func taskPayload(in model.TaskInput) map[string]interface{} {
	p := map[string]interface{}{
		"title":         in.Title,
		"department_id": in.DepartmentID,
		"description":   in.Description,
		"priority_id":   in.PriorityID,
		"status_id":     in.StatusID,
		"assignee":      in.Assignee,
		"completed":     in.Completed,
		"due_date":      nil,
	}
	if in.DueDate != "" {
		p["due_date"] = in.DueDate
	}
	return p
}

func (c *Client) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return listRows[model.Department](ctx, c, gateway.TableDepartments, "")
}

func (c *Client) ListPriorities(ctx context.Context) ([]model.Priority, error) {
	return listRows[model.Priority](ctx, c, gateway.TablePriorities, orderPriorities)
}

func (c *Client) ListStatuses(ctx context.Context) ([]model.Status, error) {
	return listRows[model.Status](ctx, c, gateway.TableStatuses, orderStatuses)
}

func (c *Client) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	return listRows[model.Schedule](ctx, c, gateway.TableSchedules, orderSchedules)
}

func (c *Client) InsertSchedule(ctx context.Context, in model.ScheduleInput) (*model.Schedule, error) {
	return insertRow[model.Schedule](ctx, c, gateway.TableSchedules, in)
}

func (c *Client) UpdateSchedule(ctx context.Context, id int64, in model.ScheduleInput) (*model.Schedule, error) {
	return updateRow[model.Schedule](ctx, c, gateway.TableSchedules, id, in)
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return deleteRow(ctx, c, gateway.TableSchedules, id)
}

func (c *Client) ListHandovers(ctx context.Context) ([]model.Handover, error) {
	return listRows[model.Handover](ctx, c, gateway.TableHandovers, orderHandovers)
}

func (c *Client) InsertHandover(ctx context.Context, in model.HandoverInput) (*model.Handover, error) {
	return insertRow[model.Handover](ctx, c, gateway.TableHandovers, in)
}

func (c *Client) UpdateHandover(ctx context.Context, id int64, in model.HandoverInput) (*model.Handover, error) {
	return updateRow[model.Handover](ctx, c, gateway.TableHandovers, id, in)
}

func (c *Client) UpdateHandoverStatus(ctx context.Context, id int64, statusID string) error {
	return patchRow(ctx, c, gateway.TableHandovers, id, map[string]interface{}{
		"status_id": statusID,
	})
}

func (c *Client) DeleteHandover(ctx context.Context, id int64) error {
	return deleteRow(ctx, c, gateway.TableHandovers, id)
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	return listRows[model.Task](ctx, c, gateway.TableTasks, orderTasks)
}

func (c *Client) InsertTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	return insertRow[model.Task](ctx, c, gateway.TableTasks, taskPayload(in))
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in model.TaskInput) (*model.Task, error) {
	return updateRow[model.Task](ctx, c, gateway.TableTasks, id, taskPayload(in))
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id int64, statusID string, completed bool) error {
	return patchRow(ctx, c, gateway.TableTasks, id, map[string]interface{}{
		"status_id": statusID,
		"completed": completed,
	})
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return deleteRow(ctx, c, gateway.TableTasks, id)
}

func (c *Client) ListComments(ctx context.Context) ([]model.Comment, error) {
	return listRows[model.Comment](ctx, c, gateway.TableComments, orderComments)
}

func (c *Client) InsertComment(ctx context.Context, in model.CommentInput) (*model.Comment, error) {
	return insertRow[model.Comment](ctx, c, gateway.TableComments, in)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return deleteRow(ctx, c, gateway.TableComments, id)
}

func (c *Client) ListAttachments(ctx context.Context) ([]model.Attachment, error) {
	return listRows[model.Attachment](ctx, c, gateway.TableAttachments, orderAttachments)
}

func (c *Client) InsertAttachment(ctx context.Context, in model.AttachmentInput) (*model.Attachment, error) {
	return insertRow[model.Attachment](ctx, c, gateway.TableAttachments, in)
}

func (c *Client) DeleteAttachment(ctx context.Context, id int64) error {
	return deleteRow(ctx, c, gateway.TableAttachments, id)
}
