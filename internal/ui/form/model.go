package form

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/theme"
)

// Kind selects which entity the form edits.
type Kind int

const (
	KindSchedule Kind = iota
	KindHandover
	KindTask
	KindComment
	KindAttach
	KindStatus
)

// Options are the reference lists offered by the select fields.
type Options struct {
	Departments []model.Department
	Priorities  []model.Priority
	Statuses    []model.Status
}

// SubmitMsg is dispatched when the user completes the form. Only the
// fields for Kind are set. EditID is zero for creates.
type SubmitMsg struct {
	Kind   Kind
	EditID int64
	Ref    model.ItemRef

	Schedule model.ScheduleInput
	Handover model.HandoverInput
	Task     model.TaskInput

	Author   string
	Content  string
	Paths    []string
	StatusID string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	department  string
	priority    string
	status      string
	date        string
	time        string
	duration    string
	dueDate     string
	assignee    string
	author      string
	content     string
	paths       string
}

// Model is a modal form. After submit it stays visible in a pending
// state until the caller either closes it or reopens it for correction.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	kind    Kind
	editID  int64
	ref     model.ItemRef
	opts    Options
	pending bool
	width   int
	height  int
}

// New creates an empty form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

func (m *Model) reset(kind Kind, editID int64, ref model.ItemRef, opts Options) {
	m.kind = kind
	m.editID = editID
	m.ref = ref
	m.opts = opts
	m.pending = false
	m.fb = &formBindings{}
}

// StartSchedule opens the schedule form. A nil s creates a new schedule
// on date.
func (m *Model) StartSchedule(opts Options, s *model.Schedule, date string) tea.Cmd {
	if s == nil {
		m.reset(KindSchedule, 0, model.ItemRef{}, opts)
		m.fb.date = date
		m.fb.duration = strconv.Itoa(model.DefaultScheduleDuration)
		m.fb.department = firstDepartment(opts)
	} else {
		m.reset(KindSchedule, s.ID, s.Ref(), opts)
		m.fb.title = s.Title
		m.fb.department = s.DepartmentID
		m.fb.date = s.Date
		m.fb.time = model.FormatTime(s.Time)
		m.fb.description = s.Description
		m.fb.duration = strconv.Itoa(s.Duration)
	}
	return m.build()
}

// StartHandover opens the handover form. A nil h creates a new handover
// in department.
func (m *Model) StartHandover(opts Options, h *model.Handover, department string) tea.Cmd {
	if h == nil {
		m.reset(KindHandover, 0, model.ItemRef{}, opts)
		m.fb.department = department
		m.fb.priority = defaultPriority(opts)
		m.fb.status = firstStatus(opts, model.CategoryHandover)
	} else {
		m.reset(KindHandover, h.ID, h.Ref(), opts)
		m.fb.department = h.DepartmentID
		m.fb.title = h.Title
		m.fb.description = h.Description
		m.fb.priority = h.PriorityID
		m.fb.status = h.StatusID
	}
	return m.build()
}

// StartTask opens the task form. A nil t creates a new task.
func (m *Model) StartTask(opts Options, t *model.Task, department string) tea.Cmd {
	if t == nil {
		m.reset(KindTask, 0, model.ItemRef{}, opts)
		m.fb.department = department
		if m.fb.department == "" {
			m.fb.department = firstDepartment(opts)
		}
		m.fb.priority = defaultPriority(opts)
		m.fb.status = firstStatus(opts, model.CategoryTask)
	} else {
		m.reset(KindTask, t.ID, t.Ref(), opts)
		m.fb.title = t.Title
		m.fb.department = t.DepartmentID
		m.fb.description = t.Description
		m.fb.priority = t.PriorityID
		m.fb.status = t.StatusID
		m.fb.dueDate = t.DueDate
		m.fb.assignee = t.Assignee
	}
	return m.build()
}

// StartComment opens the comment form for ref.
func (m *Model) StartComment(ref model.ItemRef, author string) tea.Cmd {
	m.reset(KindComment, 0, ref, Options{})
	m.fb.author = author
	return m.build()
}

// StartAttach opens the file picker form for ref.
func (m *Model) StartAttach(ref model.ItemRef) tea.Cmd {
	m.reset(KindAttach, 0, ref, Options{})
	return m.build()
}

// StartStatus opens the status selector for ref with statuses of its
// category.
func (m *Model) StartStatus(ref model.ItemRef, statuses []model.Status, current string) tea.Cmd {
	m.reset(KindStatus, ref.ID, ref, Options{Statuses: statuses})
	m.fb.status = current
	return m.build()
}

// Reopen rebuilds the form with the values entered before the failed
// submit.
func (m *Model) Reopen() tea.Cmd {
	m.pending = false
	return m.build()
}

// Active reports whether a form has been started.
func (m Model) Active() bool { return m.form != nil }

// Pending reports whether the submitted values are being written.
func (m Model) Pending() bool { return m.pending }

// Close discards the form.
func (m *Model) Close() {
	m.form = nil
	m.pending = false
}

// Kind returns the kind of the current form.
func (m Model) Kind() Kind { return m.kind }

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.pending {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.pending = true
		sub := m.Submission()
		return m, func() tea.Msg { return sub }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := theme.SectionTitleStyle.Render(m.title())
	body := m.form.View()
	if m.pending {
		body = theme.HelpStyle.Render("保存中...")
	}

	return theme.ModalStyle.
		Width(m.formWidth()).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

func (m Model) title() string {
	verb := "新規"
	if m.editID != 0 {
		verb = "編集"
	}
	switch m.kind {
	case KindSchedule:
		return "予定 " + verb
	case KindHandover:
		return "申し送り " + verb
	case KindTask:
		return "タスク " + verb
	case KindComment:
		return "コメント追加"
	case KindAttach:
		return "ファイル添付"
	case KindStatus:
		return "ステータス変更"
	}
	return ""
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Submission converts the bound values into a SubmitMsg.
func (m Model) Submission() SubmitMsg {
	fb := m.fb
	sub := SubmitMsg{Kind: m.kind, EditID: m.editID, Ref: m.ref}

	switch m.kind {
	case KindSchedule:
		duration, _ := strconv.Atoi(strings.TrimSpace(fb.duration))
		sub.Schedule = model.ScheduleInput{
			Title:        strings.TrimSpace(fb.title),
			DepartmentID: fb.department,
			Date:         strings.TrimSpace(fb.date),
			Time:         strings.TrimSpace(fb.time),
			Description:  fb.description,
			Duration:     duration,
		}
	case KindHandover:
		sub.Handover = model.HandoverInput{
			DepartmentID: fb.department,
			Title:        strings.TrimSpace(fb.title),
			Description:  fb.description,
			PriorityID:   fb.priority,
			StatusID:     fb.status,
		}
	case KindTask:
		sub.Task = model.TaskInput{
			Title:        strings.TrimSpace(fb.title),
			DepartmentID: fb.department,
			Description:  fb.description,
			PriorityID:   fb.priority,
			StatusID:     fb.status,
			DueDate:      strings.TrimSpace(fb.dueDate),
			Assignee:     strings.TrimSpace(fb.assignee),
		}
	case KindComment:
		sub.Author = strings.TrimSpace(fb.author)
		sub.Content = strings.TrimSpace(fb.content)
	case KindAttach:
		sub.Paths = SplitPaths(fb.paths)
	case KindStatus:
		sub.StatusID = fb.status
	}
	return sub
}

// SplitPaths splits newline or comma separated paths, dropping blanks.
func SplitPaths(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' })
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	if w > 90 {
		w = 90
	}
	return w
}

func firstDepartment(opts Options) string {
	if len(opts.Departments) == 0 {
		return ""
	}
	return opts.Departments[0].ID
}

func defaultPriority(opts Options) string {
	for _, p := range opts.Priorities {
		if p.ID == "medium" {
			return p.ID
		}
	}
	if len(opts.Priorities) == 0 {
		return ""
	}
	return opts.Priorities[len(opts.Priorities)-1].ID
}

func firstStatus(opts Options, category model.StatusCategory) string {
	for _, s := range opts.Statuses {
		if s.Category == category {
			return s.ID
		}
	}
	return ""
}
