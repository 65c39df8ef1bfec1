package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/theme"
	"github.com/nhle/shift-handover/internal/ui"
)

// BackMsg signals the parent to close the panel.
type BackMsg struct{}

// Action is something the user asked to do from the panel.
type Action int

const (
	ActionEdit Action = iota
	ActionDelete
	ActionStatus
	ActionComment
	ActionAttach
	ActionDeleteEntry
	ActionURL
	ActionDownload
)

// ActionMsg asks the parent to perform an action on the shown item.
// Entry is set for entry-level actions.
type ActionMsg struct {
	Action Action
	Ref    model.ItemRef
	Entry  Entry
}

// Model is the detail panel of a task, handover or schedule.
type Model struct {
	item     Item
	loaded   bool
	cursor   ui.Cursor
	viewport viewport.Model
	keys     *keys.KeyMap
	mdStyle  string
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, mdStyle string, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		mdStyle:  mdStyle,
		width:    width,
		height:   height,
	}
}

// Ref returns the item shown, if any.
func (m Model) Ref() (model.ItemRef, bool) {
	return m.item.Ref, m.loaded
}

// SetItem shows it. The entry cursor is kept when the same item is
// refreshed.
func (m *Model) SetItem(it Item) {
	if !m.loaded || it.Ref != m.item.Ref {
		m.cursor.Reset()
		m.viewport.GotoTop()
	}
	m.item = it
	m.loaded = true
	m.viewport.SetContent(m.renderContent())
}

// Clear empties the panel.
func (m *Model) Clear() {
	m.item = Item{}
	m.loaded = false
	m.cursor.Reset()
}

// SelectedEntry returns the attachment or comment under the cursor.
func (m Model) SelectedEntry() (Entry, bool) {
	entries := m.item.Entries()
	i := m.cursor.At(len(entries))
	if i < 0 {
		return Entry{}, false
	}
	return entries[i], true
}

func (m Model) action(a Action) tea.Cmd {
	msg := ActionMsg{Action: a, Ref: m.item.Ref}
	return func() tea.Msg { return msg }
}

func (m Model) entryAction(a Action, attachmentOnly bool) tea.Cmd {
	e, ok := m.SelectedEntry()
	if !ok || (attachmentOnly && e.Attachment == nil) {
		return nil
	}
	msg := ActionMsg{Action: a, Ref: m.item.Ref, Entry: e}
	return func() tea.Msg { return msg }
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.item.Entries())
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, m.keys.Down):
			m.cursor.Move(1, n)
			m.viewport.SetContent(m.renderContent())
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.cursor.Move(-1, n)
			m.viewport.SetContent(m.renderContent())
			return m, nil
		case key.Matches(msg, m.keys.Edit):
			return m, m.action(ActionEdit)
		case key.Matches(msg, m.keys.Delete):
			if n > 0 {
				return m, m.entryAction(ActionDeleteEntry, false)
			}
			return m, m.action(ActionDelete)
		case key.Matches(msg, m.keys.Status):
			if m.item.Ref.Kind != model.KindSchedule {
				return m, m.action(ActionStatus)
			}
			return m, nil
		case key.Matches(msg, m.keys.Comment):
			if m.item.Ref.Commentable() {
				return m, m.action(ActionComment)
			}
			return m, nil
		case key.Matches(msg, m.keys.Attach):
			return m, m.action(ActionAttach)
		case key.Matches(msg, m.keys.URL):
			return m, m.entryAction(ActionURL, true)
		case key.Matches(msg, m.keys.Download):
			return m, m.entryAction(ActionDownload, true)
		}
	}

	// Delegate to viewport for scrolling (pgup/pgdn, mouse)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if !m.loaded {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("項目が選択されていません")
	}
	hint := "e 編集  x 削除  c コメント  a 添付  u URL  d ダウンロード  esc 戻る"
	if m.item.Ref.Kind == model.KindTask || m.item.Ref.Kind == model.KindHandover {
		hint = "s ステータス  " + hint
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		theme.HelpStyle.Render(hint),
	)
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	it := m.item
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(it.Title))

	badges := make([]string, 0, len(it.Badges))
	for _, b := range it.Badges {
		badges = append(badges, theme.Badge(b.Color, b.Text))
	}
	sections = append(sections, strings.Join(badges, " "), "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	for _, f := range it.Fields {
		if f.Value == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("%s  %s", metaStyle.Render(f.Label+":"), f.Value))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))
	sections = append(sections, "", separator, "")

	body := renderMarkdown(it.Description, m.mdStyle, min(m.width-4, 100))
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("詳細なし")
	}
	sections = append(sections, body)

	selected := m.cursor.At(len(it.Entries()))
	row := 0
	render := func(line string) string {
		defer func() { row++ }()
		if row == selected {
			return theme.SelectedItemStyle.Render(line)
		}
		return theme.ListItemStyle.Render(line)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, "", separator, "",
		headerStyle.Render(fmt.Sprintf("添付ファイル (%d)", len(it.Attachments))))
	for _, a := range it.Attachments {
		sections = append(sections, render(fmt.Sprintf("%s  %s  %s",
			a.FileName,
			metaStyle.Render(humanize.IBytes(uint64(a.SizeBytes))),
			metaStyle.Render(a.UploadedBy+" "+humanize.Time(a.CreatedAt)),
		)))
	}

	if it.Ref.Commentable() {
		authorStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
		sections = append(sections, "",
			headerStyle.Render(fmt.Sprintf("コメント (%d)", len(it.Comments))))
		for _, c := range it.Comments {
			sections = append(sections, render(fmt.Sprintf("%s  %s\n%s",
				authorStyle.Render(c.AuthorName),
				metaStyle.Render(humanize.Time(c.CreatedAt)),
				c.Content,
			)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.loaded {
		m.viewport.SetContent(m.renderContent())
	}
}
