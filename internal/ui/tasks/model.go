package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/theme"
	"github.com/nhle/shift-handover/internal/ui"
	"github.com/nhle/shift-handover/internal/view"
)

// Model renders the filtered task list.
type Model struct {
	keys   *keys.KeyMap
	cursor ui.Cursor
	width  int
	height int
}

func New(keys *keys.KeyMap, width, height int) Model {
	return Model{keys: keys, width: width, height: height}
}

// Update moves the cursor within the current page.
func (m Model) Update(msg tea.Msg, v view.TasksView) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(v.Page.Items)
		switch {
		case key.Matches(msg, m.keys.Down):
			m.cursor.Move(1, n)
		case key.Matches(msg, m.keys.Up):
			m.cursor.Move(-1, n)
		}
	}
	return m, nil
}

func (m *Model) ResetCursor() { m.cursor.Reset() }

// Selected returns the task under the cursor.
func (m Model) Selected(v view.TasksView) (model.Task, bool) {
	i := m.cursor.At(len(v.Page.Items))
	if i < 0 {
		return model.Task{}, false
	}
	return v.Page.Items[i].Task, true
}

// NextDepartment cycles the department filter: all, then each department
// in order, then all again.
func NextDepartment(v view.TasksView) string {
	ids := make([]string, 0, len(v.Departments))
	for _, d := range v.Departments {
		ids = append(ids, d.ID)
	}
	return cycle(ids, v.Filter.Department)
}

// NextPriority cycles the priority filter like NextDepartment.
func NextPriority(v view.TasksView) string {
	ids := make([]string, 0, len(v.Priorities))
	for _, p := range v.Priorities {
		ids = append(ids, p.ID)
	}
	return cycle(ids, v.Filter.Priority)
}

func cycle(ids []string, current string) string {
	if current == "" {
		if len(ids) == 0 {
			return ""
		}
		return ids[0]
	}
	for i, id := range ids {
		if id == current && i+1 < len(ids) {
			return ids[i+1]
		}
	}
	return ""
}

func filterLabel(name string) string {
	if name == "" {
		return "すべて"
	}
	return name
}

func (m Model) View(v view.TasksView) string {
	var dept, prio string
	for _, d := range v.Departments {
		if d.ID == v.Filter.Department {
			dept = d.Name
		}
	}
	for _, p := range v.Priorities {
		if p.ID == v.Filter.Priority {
			prio = p.Name
		}
	}

	var b strings.Builder
	b.WriteString(theme.HelpStyle.Render(fmt.Sprintf(
		"係: %s   重要度: %s   検索: %q",
		filterLabel(dept), filterLabel(prio), v.Filter.Query,
	)))
	b.WriteString("\n\n")

	if len(v.Page.Items) == 0 {
		b.WriteString(theme.MutedStyle.Render("タスクはありません"))
		b.WriteString("\n")
	}

	selected := m.cursor.At(len(v.Page.Items))
	for i, row := range v.Page.Items {
		due := row.DueDate
		if due == "" {
			due = "期限なし"
		}
		assignee := ""
		if row.Assignee != "" {
			assignee = " @" + row.Assignee
		}
		title := row.Title
		if row.Completed {
			title = theme.MutedStyle.Strikethrough(true).Render(title)
		}
		line := fmt.Sprintf("%s %s %s %s  %s%s",
			theme.Badge(row.DepartmentColor, row.DepartmentName),
			theme.Badge(row.PriorityColor, row.PriorityName),
			theme.Badge(row.StatusColor, row.StatusName),
			title,
			theme.HelpStyle.Render(due),
			assignee,
		)
		if i == selected {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	p := v.Page
	b.WriteString(ui.PageFooter(p.Page, p.TotalPages, p.Total, p.HasPrev, p.HasNext))
	return b.String()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
