package handovers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/theme"
	"github.com/nhle/shift-handover/internal/ui"
	"github.com/nhle/shift-handover/internal/view"
)

// Model renders the department tab bar and the active tab's handovers.
// Tab, search and page changes are owned by the caller's view.State.
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
func (m Model) Update(msg tea.Msg, v view.HandoversView) (Model, tea.Cmd) {
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

// ResetCursor puts the cursor back on the first row, e.g. after a tab
// change.
func (m *Model) ResetCursor() { m.cursor.Reset() }

// Selected returns the handover under the cursor.
func (m Model) Selected(v view.HandoversView) (model.Handover, bool) {
	i := m.cursor.At(len(v.Page.Items))
	if i < 0 {
		return model.Handover{}, false
	}
	return v.Page.Items[i].Handover, true
}

// NeighborTab returns the department id delta tabs away from the active
// one, wrapping around.
func NeighborTab(v view.HandoversView, delta int) string {
	n := len(v.Tabs)
	if n == 0 {
		return v.Active
	}
	for i, t := range v.Tabs {
		if t.Active {
			return v.Tabs[((i+delta)%n+n)%n].ID
		}
	}
	return v.Tabs[0].ID
}

func (m Model) View(v view.HandoversView) string {
	var tabs []string
	for _, t := range v.Tabs {
		style := theme.TabStyle
		if t.Active {
			style = theme.ActiveTabStyle.Foreground(theme.Hex(t.Color))
		}
		tabs = append(tabs, style.Render(t.Name))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	if v.Query != "" {
		b.WriteString(theme.HelpStyle.Render(fmt.Sprintf("検索: %q", v.Query)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(v.Page.Items) == 0 {
		b.WriteString(theme.MutedStyle.Render("申し送り事項はありません"))
		b.WriteString("\n")
	}

	selected := m.cursor.At(len(v.Page.Items))
	for i, row := range v.Page.Items {
		line := fmt.Sprintf("%s %s %s  %s",
			theme.Badge(row.PriorityColor, row.PriorityName),
			theme.Badge(row.StatusColor, row.StatusName),
			row.Title,
			theme.HelpStyle.Render(humanize.Time(row.CreatedAt)),
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
