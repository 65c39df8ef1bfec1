// Package cache holds the last fetched copy of every backend collection.
// Collections are only ever replaced wholesale by a Load call; the single
// local patch is the optimistic status change.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// Collection names a cached collection.
type Collection string

const (
	Departments Collection = gateway.TableDepartments
	Priorities  Collection = gateway.TablePriorities
	Statuses    Collection = gateway.TableStatuses
	Schedules   Collection = gateway.TableSchedules
	Handovers   Collection = gateway.TableHandovers
	Tasks       Collection = gateway.TableTasks
	Comments    Collection = gateway.TableComments
	Attachments Collection = gateway.TableAttachments
)

// AllCollections lists every collection in load order.
var AllCollections = []Collection{
	Departments, Priorities, Statuses,
	Schedules, Handovers, Tasks,
	Comments, Attachments,
}

// Cache mirrors the backend. It is safe for concurrent use.
type Cache struct {
	gw gateway.Gateway

	mu          sync.RWMutex
	departments []model.Department
	priorities  []model.Priority
	statuses    []model.Status
	schedules   []model.Schedule
	handovers   []model.Handover
	tasks       []model.Task
	comments    []model.Comment
	attachments []model.Attachment
}

// New creates an empty cache reading from gw.
func New(gw gateway.Gateway) *Cache {
	return &Cache{gw: gw}
}

// loadInto fetches rows and installs them with set. On error the
// previous contents stay in place.
func loadInto[T any](ctx context.Context, c *Cache, name Collection, fetch func(context.Context) ([]T, error), set func([]T)) error {
	rows, err := fetch(ctx)
	if err != nil {
		log.Printf("cache: loading %s: %v", name, err)
		return fmt.Errorf("loading %s: %w", name, err)
	}
	c.mu.Lock()
	set(rows)
	c.mu.Unlock()
	return nil
}

// LoadDepartments replaces the departments. If the read fails and
// nothing was cached yet, the built-in departments are installed.
func (c *Cache) LoadDepartments(ctx context.Context) error {
	err := loadInto(ctx, c, Departments, c.gw.ListDepartments, func(rows []model.Department) {
		c.departments = rows
	})
	if err != nil {
		c.mu.Lock()
		if len(c.departments) == 0 {
			c.departments = model.DefaultDepartments()
		}
		c.mu.Unlock()
	}
	return err
}

// LoadPriorities replaces the priorities, falling back like departments.
func (c *Cache) LoadPriorities(ctx context.Context) error {
	err := loadInto(ctx, c, Priorities, c.gw.ListPriorities, func(rows []model.Priority) {
		c.priorities = rows
	})
	if err != nil {
		c.mu.Lock()
		if len(c.priorities) == 0 {
			c.priorities = model.DefaultPriorities()
		}
		c.mu.Unlock()
	}
	return err
}

// LoadStatuses replaces the statuses. An empty result is treated like a
// failed read: without statuses no status selector can work.
func (c *Cache) LoadStatuses(ctx context.Context) error {
	err := loadInto(ctx, c, Statuses, c.gw.ListStatuses, func(rows []model.Status) {
		if len(rows) == 0 {
			rows = model.DefaultStatuses()
		}
		c.statuses = rows
	})
	if err != nil {
		c.mu.Lock()
		if len(c.statuses) == 0 {
			c.statuses = model.DefaultStatuses()
		}
		c.mu.Unlock()
	}
	return err
}

func (c *Cache) LoadSchedules(ctx context.Context) error {
	return loadInto(ctx, c, Schedules, c.gw.ListSchedules, func(rows []model.Schedule) {
		c.schedules = rows
	})
}

func (c *Cache) LoadHandovers(ctx context.Context) error {
	return loadInto(ctx, c, Handovers, c.gw.ListHandovers, func(rows []model.Handover) {
		c.handovers = rows
	})
}

func (c *Cache) LoadTasks(ctx context.Context) error {
	return loadInto(ctx, c, Tasks, c.gw.ListTasks, func(rows []model.Task) {
		c.tasks = rows
	})
}

func (c *Cache) LoadComments(ctx context.Context) error {
	return loadInto(ctx, c, Comments, c.gw.ListComments, func(rows []model.Comment) {
		c.comments = rows
	})
}

func (c *Cache) LoadAttachments(ctx context.Context) error {
	return loadInto(ctx, c, Attachments, c.gw.ListAttachments, func(rows []model.Attachment) {
		c.attachments = rows
	})
}

// Load reloads a single collection by name.
func (c *Cache) Load(ctx context.Context, name Collection) error {
	switch name {
	case Departments:
		return c.LoadDepartments(ctx)
	case Priorities:
		return c.LoadPriorities(ctx)
	case Statuses:
		return c.LoadStatuses(ctx)
	case Schedules:
		return c.LoadSchedules(ctx)
	case Handovers:
		return c.LoadHandovers(ctx)
	case Tasks:
		return c.LoadTasks(ctx)
	case Comments:
		return c.LoadComments(ctx)
	case Attachments:
		return c.LoadAttachments(ctx)
	}
	return fmt.Errorf("unknown collection %q", name)
}

// LoadAll reloads every collection, continuing past failures. The
// returned error joins every failed load.
func (c *Cache) LoadAll(ctx context.Context) error {
	var errs []error
	for _, name := range AllCollections {
		if err := c.Load(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PatchTaskStatus changes a cached task's status in place and returns the
// previous status. ok is false when the task is not cached.
func (c *Cache) PatchTaskStatus(id int64, statusID string, completed bool) (prev string, prevCompleted bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.tasks {
		if c.tasks[i].ID == id {
			prev, prevCompleted = c.tasks[i].StatusID, c.tasks[i].Completed
			c.tasks[i].StatusID = statusID
			c.tasks[i].Completed = completed
			return prev, prevCompleted, true
		}
	}
	return "", false, false
}

// PatchHandoverStatus is the handover counterpart of PatchTaskStatus.
func (c *Cache) PatchHandoverStatus(id int64, statusID string) (prev string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.handovers {
		if c.handovers[i].ID == id {
			prev = c.handovers[i].StatusID
			c.handovers[i].StatusID = statusID
			return prev, true
		}
	}
	return "", false
}

// Snapshot returns a copy of the current contents.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		Departments: append([]model.Department(nil), c.departments...),
		Priorities:  append([]model.Priority(nil), c.priorities...),
		Statuses:    append([]model.Status(nil), c.statuses...),
		Schedules:   append([]model.Schedule(nil), c.schedules...),
		Handovers:   append([]model.Handover(nil), c.handovers...),
		Tasks:       append([]model.Task(nil), c.tasks...),
		Comments:    append([]model.Comment(nil), c.comments...),
		Attachments: append([]model.Attachment(nil), c.attachments...),
	}
}
