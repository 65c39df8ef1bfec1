package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/theme"
	"github.com/nhle/shift-handover/internal/ui"
	"github.com/nhle/shift-handover/internal/view"
)

// Model shows today's and tomorrow's schedules side by side. The cursor
// walks today's rows first, then tomorrow's.
type Model struct {
	keys   *keys.KeyMap
	cursor ui.Cursor
	width  int
	height int
}

func New(keys *keys.KeyMap, width, height int) Model {
	return Model{keys: keys, width: width, height: height}
}

func rows(v view.DashboardView) []view.ScheduleRow {
	out := make([]view.ScheduleRow, 0, len(v.Today.Schedules)+len(v.Tomorrow.Schedules))
	out = append(out, v.Today.Schedules...)
	return append(out, v.Tomorrow.Schedules...)
}

// Update moves the cursor.
func (m Model) Update(msg tea.Msg, v view.DashboardView) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(rows(v))
		switch {
		case key.Matches(msg, m.keys.Down):
			m.cursor.Move(1, n)
		case key.Matches(msg, m.keys.Up):
			m.cursor.Move(-1, n)
		}
	}
	return m, nil
}

// Selected returns the schedule under the cursor.
func (m Model) Selected(v view.DashboardView) (model.Schedule, bool) {
	all := rows(v)
	i := m.cursor.At(len(all))
	if i < 0 {
		return model.Schedule{}, false
	}
	return all[i].Schedule, true
}

func (m Model) View(v view.DashboardView) string {
	selected := m.cursor.At(len(rows(v)))
	colWidth := (m.width - 4) / 2
	if colWidth < 30 {
		colWidth = 30
	}

	today := m.renderDay("今日の予定", v.Today, 0, selected, colWidth)
	tomorrow := m.renderDay("明日の予定", v.Tomorrow, len(v.Today.Schedules), selected, colWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, today, "  ", tomorrow)
}

func (m Model) renderDay(title string, day view.DayAgenda, offset, selected, width int) string {
	var b strings.Builder
	b.WriteString(theme.SectionTitleStyle.Render(fmt.Sprintf("%s  %s", title, day.Date)))
	b.WriteString("\n")

	if len(day.Schedules) == 0 {
		b.WriteString(theme.MutedStyle.Render("予定はありません"))
	}
	for i, row := range day.Schedules {
		line := fmt.Sprintf("%s  %s %s",
			row.Time,
			theme.Badge(row.DepartmentColor, row.DepartmentName),
			row.Title,
		)
		if offset+i == selected {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return theme.DetailPanelStyle.Width(width).Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
