package search

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/shift-handover/internal/theme"
)

// SubmitMsg is emitted with the trimmed query when the user presses enter.
// An empty query clears the search.
type SubmitMsg string

// CancelMsg is emitted on esc; the previous query stays in effect.
type CancelMsg struct{}

// Model is the search prompt shown above the handover and task lists.
type Model struct {
	input textinput.Model
	width int
}

// New creates a search prompt.
func New(width int) Model {
	ti := textinput.New()
	ti.Placeholder = "タイトル・詳細で検索"
	ti.Prompt = "/ "
	ti.CharLimit = 100
	ti.Width = width - 6

	return Model{input: ti, width: width}
}

// Start focuses the prompt, prefilled with the current query.
func (m *Model) Start(query string) tea.Cmd {
	m.input.SetValue(query)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Value returns the text typed so far.
func (m Model) Value() string { return m.input.Value() }

// Update handles messages for the prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			m.input.Blur()
			return m, func() tea.Msg { return SubmitMsg(q) }
		case "esc":
			m.input.Blur()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("検索")

	content := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", m.input.View())
	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the prompt width.
func (m *Model) SetSize(width int) {
	m.width = width
	m.input.Width = width - 6
}
