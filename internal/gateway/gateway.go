// Package gateway defines the contract between the client and the hosted
// backend: CRUD over the entity collections, the two polymorphic side
// tables and a blob store.
package gateway

import (
	"context"
	"time"

	"github.com/nhle/shift-handover/internal/model"
)

// Collection names as exposed by the backend.
const (
	TableDepartments = "departments"
	TablePriorities  = "priorities"
	TableStatuses    = "statuses"
	TableSchedules   = "schedules"
	TableHandovers   = "handovers"
	TableTasks       = "tasks"
	TableComments    = "comments"
	TableAttachments = "attachments"
)

// Gateway reads and writes the backend collections. List methods return
// rows in the backend's canonical order:
//
//	priorities   level desc
//	statuses     category, order_index
//	schedules    date asc, time asc
//	handovers    created_at desc
//	tasks        due_date asc (empty last)
//	comments     created_at desc
//	attachments  created_at desc
//
// Insert and Update return the canonical row as stored.
type Gateway interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
	ListPriorities(ctx context.Context) ([]model.Priority, error)
	ListStatuses(ctx context.Context) ([]model.Status, error)

	ListSchedules(ctx context.Context) ([]model.Schedule, error)
	InsertSchedule(ctx context.Context, in model.ScheduleInput) (*model.Schedule, error)
	UpdateSchedule(ctx context.Context, id int64, in model.ScheduleInput) (*model.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error

	ListHandovers(ctx context.Context) ([]model.Handover, error)
	InsertHandover(ctx context.Context, in model.HandoverInput) (*model.Handover, error)
	UpdateHandover(ctx context.Context, id int64, in model.HandoverInput) (*model.Handover, error)
	UpdateHandoverStatus(ctx context.Context, id int64, statusID string) error
	DeleteHandover(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]model.Task, error)
	InsertTask(ctx context.Context, in model.TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, id int64, in model.TaskInput) (*model.Task, error)
	UpdateTaskStatus(ctx context.Context, id int64, statusID string, completed bool) error
	DeleteTask(ctx context.Context, id int64) error

	ListComments(ctx context.Context) ([]model.Comment, error)
	InsertComment(ctx context.Context, in model.CommentInput) (*model.Comment, error)
	DeleteComment(ctx context.Context, id int64) error

	ListAttachments(ctx context.Context) ([]model.Attachment, error)
	InsertAttachment(ctx context.Context, in model.AttachmentInput) (*model.Attachment, error)
	DeleteAttachment(ctx context.Context, id int64) error
}

// BlobStore holds attachment bytes addressed by storage path.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, paths ...string) error
	CreateSignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
}

// Backend bundles the two halves a client needs.
type Backend interface {
	Gateway
	BlobStore
}
