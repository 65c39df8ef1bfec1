// Package mutation is the single path by which the client writes to the
// backend. Every operation calls the gateway, and on success reloads the
// collection it touched so the cache always reflects the server.
package mutation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// Options tunes controller behavior. Zero values fall back to defaults.
type Options struct {
	// CompletedStatusID is the task status that sets Task.Completed.
	CompletedStatusID string

	MaxUploadBytes int64
	SignedURLTTL   time.Duration

	// CascadeDeletes also removes comments and attachments of a deleted
	// owner. Without it they are left orphaned.
	CascadeDeletes bool

	// UserName is used when no author or uploader is given.
	UserName string
}

// Default limits.
const (
	DefaultMaxUploadBytes = 10 << 20
	DefaultSignedURLTTL   = time.Hour
)

// OptionsFromConfig maps the application config onto Options.
func OptionsFromConfig(cfg *model.AppConfig) Options {
	return Options{
		CompletedStatusID: cfg.Tasks.CompletedStatusID,
		MaxUploadBytes:    cfg.Attachments.MaxUploadBytes,
		SignedURLTTL:      time.Duration(cfg.Attachments.SignedURLTTLSec) * time.Second,
		CascadeDeletes:    cfg.Mutation.CascadeDeletes,
		UserName:          cfg.User.Name,
	}
}

// Controller applies user writes. It is safe for concurrent use as long
// as the backend is.
type Controller struct {
	backend gateway.Backend
	cache   *cache.Cache
	opts    Options
	now     func() time.Time
}

// New returns a Controller writing to backend and reloading c.
func New(backend gateway.Backend, c *cache.Cache, opts Options) *Controller {
	if opts.CompletedStatusID == "" {
		opts.CompletedStatusID = model.StatusTaskCompleted
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.SignedURLTTL <= 0 {
		opts.SignedURLTTL = DefaultSignedURLTTL
	}
	return &Controller{backend: backend, cache: c, opts: opts, now: time.Now}
}

// Cache returns the cache the controller reloads.
func (c *Controller) Cache() *cache.Cache { return c.cache }

// reload refreshes collections after a successful write. Reload failures
// are logged; the write itself already succeeded.
func (c *Controller) reload(ctx context.Context, names ...cache.Collection) {
	for _, name := range names {
		if err := c.cache.Load(ctx, name); err != nil {
			log.Printf("mutation: reload after write: %v", err)
		}
	}
}

// resolveStatus checks statusID against category, substituting the
// category's first status when statusID is empty.
func (c *Controller) resolveStatus(snap cache.Snapshot, category model.StatusCategory, statusID string) (string, error) {
	if statusID == "" {
		st, ok := snap.DefaultStatus(category)
		if !ok {
			return "", fmt.Errorf("%w: no %s statuses", ErrUnknownStatus, category)
		}
		return st.ID, nil
	}
	st, ok := snap.Status(statusID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownStatus, statusID)
	}
	if st.Category != category {
		return "", fmt.Errorf("%w: %s is a %s status", ErrStatusCategory, statusID, st.Category)
	}
	return st.ID, nil
}

// CreateSchedule inserts a schedule.
func (c *Controller) CreateSchedule(ctx context.Context, in model.ScheduleInput) error {
	const op = "create schedule"
	if in.Duration <= 0 {
		in.Duration = model.DefaultScheduleDuration
	}
	if _, err := c.backend.InsertSchedule(ctx, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Schedules)
	return nil
}

// UpdateSchedule replaces the editable fields of schedule id.
func (c *Controller) UpdateSchedule(ctx context.Context, id int64, in model.ScheduleInput) error {
	const op = "update schedule"
	if in.Duration <= 0 {
		in.Duration = model.DefaultScheduleDuration
	}
	if _, err := c.backend.UpdateSchedule(ctx, id, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Schedules)
	return nil
}

// DeleteSchedule removes schedule id.
func (c *Controller) DeleteSchedule(ctx context.Context, id int64) error {
	const op = "delete schedule"
	if err := c.backend.DeleteSchedule(ctx, id); err != nil {
		return fail(op, err)
	}
	c.cascade(ctx, model.ScheduleRef(id))
	c.reload(ctx, cache.Schedules)
	return nil
}

// CreateHandover inserts a handover. An empty status becomes the first
// handover status.
func (c *Controller) CreateHandover(ctx context.Context, in model.HandoverInput) error {
	const op = "create handover"
	statusID, err := c.resolveStatus(c.cache.Snapshot(), model.CategoryHandover, in.StatusID)
	if err != nil {
		return fail(op, err)
	}
	in.StatusID = statusID
	if _, err := c.backend.InsertHandover(ctx, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Handovers)
	return nil
}

// UpdateHandover replaces the editable fields of handover id.
func (c *Controller) UpdateHandover(ctx context.Context, id int64, in model.HandoverInput) error {
	const op = "update handover"
	statusID, err := c.resolveStatus(c.cache.Snapshot(), model.CategoryHandover, in.StatusID)
	if err != nil {
		return fail(op, err)
	}
	in.StatusID = statusID
	if _, err := c.backend.UpdateHandover(ctx, id, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Handovers)
	return nil
}

// DeleteHandover removes handover id.
func (c *Controller) DeleteHandover(ctx context.Context, id int64) error {
	const op = "delete handover"
	if err := c.backend.DeleteHandover(ctx, id); err != nil {
		return fail(op, err)
	}
	c.cascade(ctx, model.HandoverRef(id))
	c.reload(ctx, cache.Handovers)
	return nil
}

// CreateTask inserts a task. Completed is derived from the status.
func (c *Controller) CreateTask(ctx context.Context, in model.TaskInput) error {
	const op = "create task"
	statusID, err := c.resolveStatus(c.cache.Snapshot(), model.CategoryTask, in.StatusID)
	if err != nil {
		return fail(op, err)
	}
	in.StatusID = statusID
	in.Completed = statusID == c.opts.CompletedStatusID
	if _, err := c.backend.InsertTask(ctx, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Tasks)
	return nil
}

// UpdateTask replaces the editable fields of task id.
func (c *Controller) UpdateTask(ctx context.Context, id int64, in model.TaskInput) error {
	const op = "update task"
	statusID, err := c.resolveStatus(c.cache.Snapshot(), model.CategoryTask, in.StatusID)
	if err != nil {
		return fail(op, err)
	}
	in.StatusID = statusID
	in.Completed = statusID == c.opts.CompletedStatusID
	if _, err := c.backend.UpdateTask(ctx, id, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Tasks)
	return nil
}

// DeleteTask removes task id.
func (c *Controller) DeleteTask(ctx context.Context, id int64) error {
	const op = "delete task"
	if err := c.backend.DeleteTask(ctx, id); err != nil {
		return fail(op, err)
	}
	c.cascade(ctx, model.TaskRef(id))
	c.reload(ctx, cache.Tasks)
	return nil
}

// cascade removes the comments and attachments of a deleted owner when
// CascadeDeletes is set. Failures are logged; the owner is already gone.
func (c *Controller) cascade(ctx context.Context, ref model.ItemRef) {
	if !c.opts.CascadeDeletes {
		return
	}
	snap := c.cache.Snapshot()

	for _, cm := range snap.CommentsFor(ref) {
		if err := c.backend.DeleteComment(ctx, cm.ID); err != nil {
			log.Printf("mutation: cascade comment %d of %s: %v", cm.ID, ref, err)
		}
	}

	attachments := snap.AttachmentsFor(ref)
	if len(attachments) > 0 {
		paths := make([]string, 0, len(attachments))
		for _, a := range attachments {
			paths = append(paths, a.StoragePath)
		}
		if err := c.backend.Remove(ctx, paths...); err != nil {
			log.Printf("mutation: cascade blobs of %s: %v", ref, err)
		}
		for _, a := range attachments {
			if err := c.backend.DeleteAttachment(ctx, a.ID); err != nil {
				log.Printf("mutation: cascade attachment %d of %s: %v", a.ID, ref, err)
			}
		}
	}
	c.reload(ctx, cache.Comments, cache.Attachments)
}

// AddComment posts a comment on a task or handover.
func (c *Controller) AddComment(ctx context.Context, ref model.ItemRef, author, content string) error {
	const op = "add comment"
	if !ref.Commentable() {
		return fail(op, fmt.Errorf("%w: %s", ErrInvalidRef, ref))
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return fail(op, ErrEmptyContent)
	}
	if strings.TrimSpace(author) == "" {
		author = c.opts.UserName
	}
	in := model.CommentInput{
		ItemType:   ref.Kind,
		ItemID:     ref.ID,
		AuthorName: author,
		Content:    content,
	}
	if _, err := c.backend.InsertComment(ctx, in); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Comments)
	return nil
}

// DeleteComment removes comment id.
func (c *Controller) DeleteComment(ctx context.Context, id int64) error {
	const op = "delete comment"
	if err := c.backend.DeleteComment(ctx, id); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Comments)
	return nil
}
