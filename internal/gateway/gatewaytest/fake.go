// Package gatewaytest provides an in-memory gateway.Backend for tests.
package gatewaytest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

var _ gateway.Backend = (*Fake)(nil)

// Fake keeps every collection in memory and returns rows in the same order
// as the real backends. Set Errs[method] to make a method fail.
type Fake struct {
	mu sync.Mutex

	Departments []model.Department
	Priorities  []model.Priority
	Statuses    []model.Status
	Schedules   []model.Schedule
	Handovers   []model.Handover
	Tasks       []model.Task
	Comments    []model.Comment
	Attachments []model.Attachment
	Blobs       map[string][]byte

	// Errs maps a method name (e.g. "InsertTask") to the error it returns.
	Errs map[string]error

	// Calls records method names in call order.
	Calls []string

	// Now stamps created_at; it advances one second per insert.
	Now    time.Time
	nextID int64
}

// New returns a Fake seeded with the default reference data.
func New() *Fake {
	return &Fake{
		Departments: model.DefaultDepartments(),
		Priorities:  model.DefaultPriorities(),
		Statuses:    model.DefaultStatuses(),
		Blobs:       map[string][]byte{},
		Errs:        map[string]error{},
		Now:         time.Date(2025, 7, 3, 8, 0, 0, 0, time.UTC),
	}
}

// SetErr makes method fail with err; a nil err clears it.
func (f *Fake) SetErr(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.Errs, method)
		return
	}
	f.Errs[method] = err
}

// Called counts calls to method.
func (f *Fake) Called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// enter records the call and returns the injected error, if any. The
// caller must hold f.mu.
func (f *Fake) enter(method string) error {
	f.Calls = append(f.Calls, method)
	return f.Errs[method]
}

func (f *Fake) stamp() (int64, time.Time) {
	f.nextID++
	f.Now = f.Now.Add(time.Second)
	return f.nextID, f.Now
}

func (f *Fake) ListDepartments(ctx context.Context) ([]model.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListDepartments"); err != nil {
		return nil, err
	}
	return append([]model.Department{}, f.Departments...), nil
}

func (f *Fake) ListPriorities(ctx context.Context) ([]model.Priority, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListPriorities"); err != nil {
		return nil, err
	}
	out := append([]model.Priority{}, f.Priorities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level > out[j].Level })
	return out, nil
}

func (f *Fake) ListStatuses(ctx context.Context) ([]model.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListStatuses"); err != nil {
		return nil, err
	}
	out := append([]model.Status{}, f.Statuses...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out, nil
}

func (f *Fake) ListSchedules(ctx context.Context) ([]model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListSchedules"); err != nil {
		return nil, err
	}
	out := append([]model.Schedule{}, f.Schedules...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (f *Fake) InsertSchedule(ctx context.Context, in model.ScheduleInput) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertSchedule"); err != nil {
		return nil, err
	}
	id, at := f.stamp()
	row := model.Schedule{ID: id, ScheduleInput: in, CreatedAt: at}
	f.Schedules = append(f.Schedules, row)
	return &row, nil
}

func (f *Fake) UpdateSchedule(ctx context.Context, id int64, in model.ScheduleInput) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateSchedule"); err != nil {
		return nil, err
	}
	for i := range f.Schedules {
		if f.Schedules[i].ID == id {
			f.Schedules[i].ScheduleInput = in
			row := f.Schedules[i]
			return &row, nil
		}
	}
	return nil, fmt.Errorf("schedule %d: %w", id, gateway.ErrNotFound)
}

func (f *Fake) DeleteSchedule(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteSchedule"); err != nil {
		return err
	}
	f.Schedules = without(f.Schedules, func(s model.Schedule) bool { return s.ID == id })
	return nil
}

func (f *Fake) ListHandovers(ctx context.Context) ([]model.Handover, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListHandovers"); err != nil {
		return nil, err
	}
	out := append([]model.Handover{}, f.Handovers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *Fake) InsertHandover(ctx context.Context, in model.HandoverInput) (*model.Handover, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertHandover"); err != nil {
		return nil, err
	}
	id, at := f.stamp()
	row := model.Handover{ID: id, HandoverInput: in, CreatedAt: at}
	f.Handovers = append(f.Handovers, row)
	return &row, nil
}

func (f *Fake) UpdateHandover(ctx context.Context, id int64, in model.HandoverInput) (*model.Handover, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateHandover"); err != nil {
		return nil, err
	}
	for i := range f.Handovers {
		if f.Handovers[i].ID == id {
			f.Handovers[i].HandoverInput = in
			row := f.Handovers[i]
			return &row, nil
		}
	}
	return nil, fmt.Errorf("handover %d: %w", id, gateway.ErrNotFound)
}

func (f *Fake) UpdateHandoverStatus(ctx context.Context, id int64, statusID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateHandoverStatus"); err != nil {
		return err
	}
	for i := range f.Handovers {
		if f.Handovers[i].ID == id {
			f.Handovers[i].StatusID = statusID
			return nil
		}
	}
	return fmt.Errorf("handover %d: %w", id, gateway.ErrNotFound)
}

func (f *Fake) DeleteHandover(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteHandover"); err != nil {
		return err
	}
	f.Handovers = without(f.Handovers, func(h model.Handover) bool { return h.ID == id })
	return nil
}

func (f *Fake) ListTasks(ctx context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListTasks"); err != nil {
		return nil, err
	}
	out := append([]model.Task{}, f.Tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		if (a == "") != (b == "") {
			return b == ""
		}
		return a < b
	})
	return out, nil
}

func (f *Fake) InsertTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertTask"); err != nil {
		return nil, err
	}
	id, at := f.stamp()
	row := model.Task{ID: id, TaskInput: in, CreatedAt: at}
	f.Tasks = append(f.Tasks, row)
	return &row, nil
}

func (f *Fake) UpdateTask(ctx context.Context, id int64, in model.TaskInput) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateTask"); err != nil {
		return nil, err
	}
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks[i].TaskInput = in
			row := f.Tasks[i]
			return &row, nil
		}
	}
	return nil, fmt.Errorf("task %d: %w", id, gateway.ErrNotFound)
}

func (f *Fake) UpdateTaskStatus(ctx context.Context, id int64, statusID string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateTaskStatus"); err != nil {
		return err
	}
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks[i].StatusID = statusID
			f.Tasks[i].Completed = completed
			return nil
		}
	}
	return fmt.Errorf("task %d: %w", id, gateway.ErrNotFound)
}

func (f *Fake) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteTask"); err != nil {
		return err
	}
	f.Tasks = without(f.Tasks, func(t model.Task) bool { return t.ID == id })
	return nil
}

func (f *Fake) ListComments(ctx context.Context) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListComments"); err != nil {
		return nil, err
	}
	out := append([]model.Comment{}, f.Comments...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *Fake) InsertComment(ctx context.Context, in model.CommentInput) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertComment"); err != nil {
		return nil, err
	}
	id, at := f.stamp()
	row := model.Comment{ID: id, CommentInput: in, CreatedAt: at}
	f.Comments = append(f.Comments, row)
	return &row, nil
}

func (f *Fake) DeleteComment(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteComment"); err != nil {
		return err
	}
	f.Comments = without(f.Comments, func(c model.Comment) bool { return c.ID == id })
	return nil
}

func (f *Fake) ListAttachments(ctx context.Context) ([]model.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListAttachments"); err != nil {
		return nil, err
	}
	out := append([]model.Attachment{}, f.Attachments...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *Fake) InsertAttachment(ctx context.Context, in model.AttachmentInput) (*model.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("InsertAttachment"); err != nil {
		return nil, err
	}
	id, at := f.stamp()
	row := model.Attachment{ID: id, AttachmentInput: in, CreatedAt: at}
	f.Attachments = append(f.Attachments, row)
	return &row, nil
}

func (f *Fake) DeleteAttachment(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteAttachment"); err != nil {
		return err
	}
	f.Attachments = without(f.Attachments, func(a model.Attachment) bool { return a.ID == id })
	return nil
}

func (f *Fake) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Upload"); err != nil {
		return err
	}
	f.Blobs[path] = append([]byte(nil), data...)
	return nil
}

func (f *Fake) Remove(ctx context.Context, paths ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Remove"); err != nil {
		return err
	}
	for _, p := range paths {
		delete(f.Blobs, p)
	}
	return nil
}

func (f *Fake) CreateSignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateSignedURL"); err != nil {
		return "", err
	}
	if _, ok := f.Blobs[path]; !ok {
		return "", fmt.Errorf("signing %s: %w", path, gateway.ErrNotFound)
	}
	return fmt.Sprintf("https://fake.test/%s?ttl=%d", path, int(ttl/time.Second)), nil
}

func (f *Fake) Download(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Download"); err != nil {
		return nil, err
	}
	data, ok := f.Blobs[path]
	if !ok {
		return nil, fmt.Errorf("downloading %s: %w", path, gateway.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func without[T any](rows []T, drop func(T) bool) []T {
	out := rows[:0:0]
	for _, r := range rows {
		if !drop(r) {
			out = append(out, r)
		}
	}
	return out
}
