package mutation

import (
	"context"
	"fmt"
	"log"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// StatusChange is a status edit already applied to the cache and not yet
// written. Commit it with CommitStatus.
type StatusChange struct {
	Ref      model.ItemRef
	StatusID string

	completed     bool
	prev          string
	prevCompleted bool
}

// StageTaskStatus patches the cached task so the selector reflects the
// new status immediately.
func (c *Controller) StageTaskStatus(id int64, statusID string) (*StatusChange, error) {
	const op = "change task status"
	if _, err := c.checkStatus(model.CategoryTask, statusID); err != nil {
		return nil, fail(op, err)
	}
	completed := statusID == c.opts.CompletedStatusID
	prev, prevCompleted, ok := c.cache.PatchTaskStatus(id, statusID, completed)
	if !ok {
		return nil, fail(op, fmt.Errorf("task %d: %w", id, gateway.ErrNotFound))
	}
	return &StatusChange{
		Ref:           model.TaskRef(id),
		StatusID:      statusID,
		completed:     completed,
		prev:          prev,
		prevCompleted: prevCompleted,
	}, nil
}

// StageHandoverStatus is the handover counterpart of StageTaskStatus.
func (c *Controller) StageHandoverStatus(id int64, statusID string) (*StatusChange, error) {
	const op = "change handover status"
	if _, err := c.checkStatus(model.CategoryHandover, statusID); err != nil {
		return nil, fail(op, err)
	}
	prev, ok := c.cache.PatchHandoverStatus(id, statusID)
	if !ok {
		return nil, fail(op, fmt.Errorf("handover %d: %w", id, gateway.ErrNotFound))
	}
	return &StatusChange{Ref: model.HandoverRef(id), StatusID: statusID, prev: prev}, nil
}

func (c *Controller) checkStatus(category model.StatusCategory, statusID string) (model.Status, error) {
	st, ok := c.cache.Snapshot().Status(statusID)
	if !ok {
		return model.Status{}, fmt.Errorf("%w: %q", ErrUnknownStatus, statusID)
	}
	if st.Category != category {
		return model.Status{}, fmt.Errorf("%w: %s is a %s status", ErrStatusCategory, statusID, st.Category)
	}
	return st, nil
}

// CommitStatus writes a staged change. On failure the cached patch is
// reverted; on success the owning collection is reloaded, which discards
// the patch in favor of whatever the server holds.
func (c *Controller) CommitStatus(ctx context.Context, ch *StatusChange) error {
	switch ch.Ref.Kind {
	case model.KindTask:
		const op = "change task status"
		if err := c.backend.UpdateTaskStatus(ctx, ch.Ref.ID, ch.StatusID, ch.completed); err != nil {
			c.cache.PatchTaskStatus(ch.Ref.ID, ch.prev, ch.prevCompleted)
			log.Printf("mutation: %s %s: %v", op, ch.Ref, err)
			return fail(op, err)
		}
		c.reload(ctx, cache.Tasks)
	case model.KindHandover:
		const op = "change handover status"
		if err := c.backend.UpdateHandoverStatus(ctx, ch.Ref.ID, ch.StatusID); err != nil {
			c.cache.PatchHandoverStatus(ch.Ref.ID, ch.prev)
			log.Printf("mutation: %s %s: %v", op, ch.Ref, err)
			return fail(op, err)
		}
		c.reload(ctx, cache.Handovers)
	default:
		return fail("change status", fmt.Errorf("%w: %s", ErrInvalidRef, ch.Ref))
	}
	return nil
}

// ChangeTaskStatus stages and commits in one call.
func (c *Controller) ChangeTaskStatus(ctx context.Context, id int64, statusID string) error {
	ch, err := c.StageTaskStatus(id, statusID)
	if err != nil {
		return err
	}
	return c.CommitStatus(ctx, ch)
}

// ChangeHandoverStatus stages and commits in one call.
func (c *Controller) ChangeHandoverStatus(ctx context.Context, id int64, statusID string) error {
	ch, err := c.StageHandoverStatus(id, statusID)
	if err != nil {
		return err
	}
	return c.CommitStatus(ctx, ch)
}
