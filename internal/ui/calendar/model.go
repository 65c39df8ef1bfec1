package calendar

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

var weekdays = []string{"日", "月", "火", "水", "木", "金", "土"}

// Model renders the month grid with a day cursor, plus the schedules of
// the focused day with a cursor of their own.
type Model struct {
	keys   *keys.KeyMap
	cursor int
	daySel ui.Cursor
	width  int
	height int
}

func New(keys *keys.KeyMap, width, height int) Model {
	return Model{keys: keys, width: width, height: height}
}

// Update moves the day cursor: left/right by a day, up/down by a week.
// tab and shift+tab walk the focused day's schedules.
func (m Model) Update(msg tea.Msg, v view.CalendarView) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		var n int
		if cell, ok := m.Selected(v); ok {
			n = len(cell.Schedules)
		}
		switch {
		case key.Matches(msg, m.keys.NextTab):
			m.daySel.Move(1, n)
		case key.Matches(msg, m.keys.PrevTab):
			m.daySel.Move(-1, n)
		case key.Matches(msg, m.keys.Left):
			m.move(-1)
		case key.Matches(msg, m.keys.Right):
			m.move(1)
		case key.Matches(msg, m.keys.Up):
			m.move(-7)
		case key.Matches(msg, m.keys.Down):
			m.move(7)
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	c := m.cursor + delta
	if c < 0 || c >= view.CalendarCells {
		return
	}
	m.cursor = c
	m.daySel.Reset()
}

// FocusFirst puts the cursor on the first in-month day of v.
func (m *Model) FocusFirst(v view.CalendarView) {
	for i, c := range v.Cells {
		if c.InMonth {
			m.cursor = i
			m.daySel.Reset()
			return
		}
	}
}

// Focus puts the cursor on date when it is in the grid, otherwise on the
// first in-month day.
func (m *Model) Focus(v view.CalendarView, date string) {
	for i, c := range v.Cells {
		if c.Date == date {
			m.cursor = i
			m.daySel.Reset()
			return
		}
	}
	m.FocusFirst(v)
}

// Selected returns the cell under the cursor.
func (m Model) Selected(v view.CalendarView) (view.CalendarCell, bool) {
	if m.cursor < 0 || m.cursor >= len(v.Cells) {
		return view.CalendarCell{}, false
	}
	return v.Cells[m.cursor], true
}

// SelectedSchedule returns the focused schedule of the focused day.
func (m Model) SelectedSchedule(v view.CalendarView) (model.Schedule, bool) {
	cell, ok := m.Selected(v)
	if !ok {
		return model.Schedule{}, false
	}
	i := m.daySel.At(len(cell.Schedules))
	if i < 0 {
		return model.Schedule{}, false
	}
	return cell.Schedules[i].Schedule, true
}

func (m Model) cellWidth() int {
	w := (m.width - 2) / 7
	if w < 6 {
		w = 6
	}
	return w
}

func (m Model) View(v view.CalendarView) string {
	w := m.cellWidth()

	var b strings.Builder
	b.WriteString(theme.SectionTitleStyle.Render(fmt.Sprintf("%d年%d月", v.Year, int(v.Month))))
	b.WriteString("\n")

	head := make([]string, 0, 7)
	for _, d := range weekdays {
		head = append(head, lipgloss.NewStyle().Width(w).Bold(true).Render(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	for week := 0; week < len(v.Cells)/7; week++ {
		row := make([]string, 0, 7)
		for i := week * 7; i < week*7+7; i++ {
			row = append(row, m.renderCell(v.Cells[i], i == m.cursor, w))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}

	legend := make([]string, 0, len(v.Legend))
	for _, mk := range v.Legend {
		legend = append(legend, theme.Dot(mk.Color)+" "+mk.Name)
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(legend, "  "))
	b.WriteString("\n\n")
	b.WriteString(m.renderDay(v))
	return b.String()
}

func (m Model) renderDay(v view.CalendarView) string {
	cell, ok := m.Selected(v)
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.SectionTitleStyle.Render(cell.Date))
	b.WriteString("\n")
	if len(cell.Schedules) == 0 {
		b.WriteString(theme.MutedStyle.Render("予定はありません"))
		return b.String()
	}
	selected := m.daySel.At(len(cell.Schedules))
	for i, row := range cell.Schedules {
		line := fmt.Sprintf("%s %s %s", row.Time, theme.Badge(row.DepartmentColor, row.DepartmentName), row.Title)
		if i == selected {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(c view.CalendarCell, focused bool, w int) string {
	day := fmt.Sprintf("%2d", c.Day)
	var dots strings.Builder
	for _, mk := range c.Markers {
		dots.WriteString(theme.Dot(mk.Color))
	}

	style := lipgloss.NewStyle().Width(w)
	switch {
	case !c.InMonth:
		day = theme.MutedStyle.Render(day)
	case c.Today:
		day = lipgloss.NewStyle().Bold(true).Underline(true).Render(day)
	}
	if focused {
		style = style.Reverse(true)
	}
	return style.Render(day + " " + dots.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
