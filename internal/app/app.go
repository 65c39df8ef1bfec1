package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/mutation"
	appsync "github.com/nhle/shift-handover/internal/sync"
	"github.com/nhle/shift-handover/internal/theme"
	"github.com/nhle/shift-handover/internal/ui"
	"github.com/nhle/shift-handover/internal/ui/calendar"
	"github.com/nhle/shift-handover/internal/ui/dashboard"
	"github.com/nhle/shift-handover/internal/ui/detail"
	"github.com/nhle/shift-handover/internal/ui/form"
	"github.com/nhle/shift-handover/internal/ui/handovers"
	helpview "github.com/nhle/shift-handover/internal/ui/help"
	"github.com/nhle/shift-handover/internal/ui/notice"
	"github.com/nhle/shift-handover/internal/ui/search"
	"github.com/nhle/shift-handover/internal/ui/tasks"
	"github.com/nhle/shift-handover/internal/view"
)

// Config holds the UI settings taken from the application config.
type Config struct {
	PageSize      int
	UserName      string
	MarkdownStyle string
	DownloadDir   string
	Backend       string
}

// Overlay is what covers the active section, if anything.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayDetail
	OverlayForm
	OverlayHelp
	OverlaySearch
)

var sectionNames = []string{"ダッシュボード", "申し送り", "タスク", "カレンダー"}

// Model is the root Bubble Tea model. It owns the per-section view state
// and routes every write through the mutation controller.
type Model struct {
	ctrl      *mutation.Controller
	cache     *cache.Cache
	refresher *appsync.Refresher
	cfg       Config
	now       func() time.Time

	state   view.State
	overlay Overlay
	layout  ui.Layout
	keys    *keys.KeyMap

	dashboard dashboard.Model
	handovers handovers.Model
	tasks     tasks.Model
	calendar  calendar.Model
	detail    detail.Model
	form      form.Model
	help      helpview.Model
	notice    notice.Model
	search    search.Model

	// reopenForm reopens the form once the error notice for its failed
	// submit is dismissed.
	reopenForm bool

	message    string
	refreshErr error
	ready      bool
}

// New creates the root model. refresher may be nil when background
// refresh is off.
func New(ctrl *mutation.Controller, refresher *appsync.Refresher, cfg Config) Model {
	k := keys.DefaultKeyMap()
	if cfg.PageSize <= 0 {
		cfg.PageSize = view.DefaultPageSize
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "."
	}
	if cfg.MarkdownStyle == "" {
		cfg.MarkdownStyle = detail.MarkdownStyle("")
	}

	m := Model{
		ctrl:      ctrl,
		cache:     ctrl.Cache(),
		refresher: refresher,
		cfg:       cfg,
		now:       time.Now,
		keys:      k,
		dashboard: dashboard.New(k, 80, 24),
		handovers: handovers.New(k, 80, 24),
		tasks:     tasks.New(k, 80, 24),
		calendar:  calendar.New(k, 80, 24),
		detail:    detail.New(k, cfg.MarkdownStyle, 80, 24),
		form:      form.New(80, 24),
		help:      helpview.New(k, 80, 24),
		notice:    notice.New(80),
		search:    search.New(80),
	}
	m.state = view.NewState(m.now(), cfg.PageSize)
	m.calendar.Focus(m.calendarView(), m.now().Format("2006-01-02"))
	return m
}

// Init starts background refresh when configured.
func (m Model) Init() tea.Cmd {
	if m.refresher == nil {
		return nil
	}
	return m.refresher.Start()
}

func (m Model) snapshot() cache.Snapshot { return m.cache.Snapshot() }

func (m Model) dashboardView() view.DashboardView {
	return view.Dashboard(m.snapshot(), m.now())
}

func (m Model) handoversView() view.HandoversView {
	return view.Handovers(m.snapshot(), m.state.Handovers, m.state.PageSize)
}

func (m Model) tasksView() view.TasksView {
	return view.Tasks(m.snapshot(), m.state.Tasks, m.state.PageSize)
}

func (m Model) calendarView() view.CalendarView {
	return view.Calendar(m.snapshot(), m.state.Calendar, m.now())
}

func (m Model) formOptions() form.Options {
	snap := m.snapshot()
	return form.Options{
		Departments: snap.Departments,
		Priorities:  snap.Priorities,
		Statuses:    snap.Statuses,
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.dashboard.SetSize(w, h)
		m.handovers.SetSize(w, h)
		m.tasks.SetSize(w, h)
		m.calendar.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.form.SetSize(w, h)
		m.help.SetSize(w, h)
		m.notice.SetSize(w)
		m.search.SetSize(w)
		if m.overlay == OverlayForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil

	case appsync.RefreshResultMsg:
		m.refreshErr = msg.Err
		switch {
		case msg.AuthError != nil:
			m.message = msg.AuthError.Message
		case msg.Err != nil:
			m.message = msg.Err.Error()
		default:
			m.message = ""
		}
		m.syncDetail()
		if m.refresher == nil {
			return m, nil
		}
		return m, m.refresher.WaitForNextResult()

	case writeResultMsg:
		return m.handleWriteResult(msg)

	case urlResultMsg:
		if msg.err != nil {
			m.notice.Error(errorTitle(msg.err), msg.err)
			return m, nil
		}
		m.notice.Info("署名付きURL", msg.url)
		return m, nil

	case downloadResultMsg:
		if msg.err != nil {
			m.notice.Error(errorTitle(msg.err), msg.err)
			return m, nil
		}
		m.message = "保存しました: " + msg.path
		return m, nil

	case form.SubmitMsg:
		return m.handleSubmit(msg)

	case form.CancelMsg:
		m.form.Close()
		m.closeForm()
		return m, nil

	case notice.DismissedMsg:
		if m.reopenForm {
			m.reopenForm = false
			return m, m.form.Reopen()
		}
		return m, nil

	case notice.ConfirmedMsg:
		switch a := msg.Action.(type) {
		case deleteItem:
			return m, m.deleteItemCmd(a)
		case deleteEntry:
			return m, m.deleteEntryCmd(a)
		}
		return m, nil

	case notice.CanceledMsg:
		return m, nil

	case search.SubmitMsg:
		switch m.state.Section {
		case view.SectionHandovers:
			m.state.Handovers.SetQuery(string(msg))
			m.handovers.ResetCursor()
		case view.SectionTasks:
			m.state.Tasks.SetQuery(string(msg))
			m.tasks.ResetCursor()
		}
		m.overlay = OverlayNone
		return m, nil

	case search.CancelMsg:
		m.overlay = OverlayNone
		return m, nil

	case detail.BackMsg:
		m.overlay = OverlayNone
		m.detail.Clear()
		return m, nil

	case detail.ActionMsg:
		return m.handleDetailAction(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.overlay == OverlayForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWriteResult(msg writeResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.notice.Error(errorTitle(msg.err), msg.err)
		if msg.fromForm && m.form.Active() {
			m.reopenForm = true
		}
		m.syncDetail()
		return m, nil
	}

	if msg.fromForm {
		m.form.Close()
		m.closeForm()
	}
	m.message = msg.op
	m.syncDetail()
	return m, nil
}

// closeForm returns from the form to the detail panel when one is open,
// otherwise to the section.
func (m *Model) closeForm() {
	if _, ok := m.detail.Ref(); ok {
		m.overlay = OverlayDetail
		return
	}
	m.overlay = OverlayNone
}

// syncDetail re-resolves the open detail panel against the cache and
// closes it when its item is gone.
func (m *Model) syncDetail() {
	ref, ok := m.detail.Ref()
	if !ok {
		return
	}
	it, ok := detail.Resolve(m.snapshot(), ref)
	if !ok {
		m.detail.Clear()
		if m.overlay == OverlayDetail {
			m.overlay = OverlayNone
		}
		return
	}
	m.detail.SetItem(it)
}

func (m Model) handleSubmit(sub form.SubmitMsg) (tea.Model, tea.Cmd) {
	if sub.Kind == form.KindStatus {
		cmd, err := m.stageStatus(sub.Ref, sub.StatusID)
		if err != nil {
			m.form.Close()
			m.closeForm()
			m.notice.Error(errorTitle(err), err)
			return m, nil
		}
		m.syncDetail()
		return m, cmd
	}
	return m, m.submitCmd(sub)
}

func (m Model) openDetail(ref model.ItemRef) (tea.Model, tea.Cmd) {
	it, ok := detail.Resolve(m.snapshot(), ref)
	if !ok {
		return m, nil
	}
	m.detail.SetItem(it)
	m.overlay = OverlayDetail
	return m, nil
}

func (m Model) openEdit(ref model.ItemRef) (tea.Model, tea.Cmd) {
	snap := m.snapshot()
	opts := m.formOptions()
	var cmd tea.Cmd
	switch ref.Kind {
	case model.KindTask:
		t, ok := snap.Task(ref.ID)
		if !ok {
			return m, nil
		}
		cmd = m.form.StartTask(opts, &t, "")
	case model.KindHandover:
		h, ok := snap.Handover(ref.ID)
		if !ok {
			return m, nil
		}
		cmd = m.form.StartHandover(opts, &h, "")
	case model.KindSchedule:
		s, ok := snap.Schedule(ref.ID)
		if !ok {
			return m, nil
		}
		cmd = m.form.StartSchedule(opts, &s, "")
	default:
		return m, nil
	}
	m.overlay = OverlayForm
	return m, cmd
}

func (m Model) openStatus(ref model.ItemRef) (tea.Model, tea.Cmd) {
	snap := m.snapshot()
	var cmd tea.Cmd
	switch ref.Kind {
	case model.KindTask:
		t, ok := snap.Task(ref.ID)
		if !ok {
			return m, nil
		}
		cmd = m.form.StartStatus(ref, snap.StatusesFor(model.CategoryTask), t.StatusID)
	case model.KindHandover:
		h, ok := snap.Handover(ref.ID)
		if !ok {
			return m, nil
		}
		cmd = m.form.StartStatus(ref, snap.StatusesFor(model.CategoryHandover), h.StatusID)
	default:
		return m, nil
	}
	m.overlay = OverlayForm
	return m, cmd
}

func (m Model) confirmDelete(ref model.ItemRef) (tea.Model, tea.Cmd) {
	it, ok := detail.Resolve(m.snapshot(), ref)
	if !ok {
		return m, nil
	}
	m.notice.Confirm(fmt.Sprintf("「%s」を削除しますか？", it.Title), deleteItem{ref: ref, title: it.Title})
	return m, nil
}

func (m Model) handleDetailAction(msg detail.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case detail.ActionEdit:
		return m.openEdit(msg.Ref)
	case detail.ActionDelete:
		return m.confirmDelete(msg.Ref)
	case detail.ActionStatus:
		return m.openStatus(msg.Ref)
	case detail.ActionComment:
		m.overlay = OverlayForm
		return m, m.form.StartComment(msg.Ref, m.cfg.UserName)
	case detail.ActionAttach:
		m.overlay = OverlayForm
		return m, m.form.StartAttach(msg.Ref)
	case detail.ActionDeleteEntry:
		what := "コメント"
		if msg.Entry.Attachment != nil {
			what = "「" + msg.Entry.Attachment.FileName + "」"
		}
		m.notice.Confirm(what+"を削除しますか？", deleteEntry{entry: msg.Entry})
		return m, nil
	case detail.ActionURL:
		if msg.Entry.Attachment != nil {
			return m, m.attachmentURLCmd(msg.Entry.Attachment.ID)
		}
	case detail.ActionDownload:
		if msg.Entry.Attachment != nil {
			return m, m.downloadCmd(msg.Entry.Attachment.ID)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.notice.Active() {
		var cmd tea.Cmd
		m.notice, cmd = m.notice.Update(msg)
		return m, cmd
	}

	switch m.overlay {
	case OverlayForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case OverlayHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.overlay = OverlayNone
		}
		return m, nil

	case OverlaySearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case OverlayDetail:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	m.message = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.message = "更新中..."
		return m, m.refresh()
	case key.Matches(msg, m.keys.Dashboard):
		m.state.Section = view.SectionDashboard
		return m, nil
	case key.Matches(msg, m.keys.Handovers):
		m.state.Section = view.SectionHandovers
		return m, nil
	case key.Matches(msg, m.keys.Tasks):
		m.state.Section = view.SectionTasks
		return m, nil
	case key.Matches(msg, m.keys.Calendar):
		m.state.Section = view.SectionCalendar
		return m, nil
	}

	switch m.state.Section {
	case view.SectionDashboard:
		return m.updateDashboard(msg)
	case view.SectionHandovers:
		return m.updateHandovers(msg)
	case view.SectionTasks:
		return m.updateTasks(msg)
	case view.SectionCalendar:
		return m.updateCalendar(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.refresher != nil {
		m.refresher.Stop()
	}
	return m, tea.Quit
}

// refresh asks the refresher for a reload, or reloads inline when there
// is no refresher. Either way the outcome arrives as a RefreshResultMsg,
// so read failures only reach the status bar.
func (m Model) refresh() tea.Cmd {
	if m.refresher != nil {
		return m.refresher.RefreshNow()
	}
	c, now := m.cache, m.now
	return func() tea.Msg {
		err := c.LoadAll(context.Background())
		return appsync.RefreshResultMsg{Err: err, At: now()}
	}
}

func (m Model) startSearch(query string) (tea.Model, tea.Cmd) {
	m.overlay = OverlaySearch
	return m, m.search.Start(query)
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.dashboardView()
	switch {
	case key.Matches(msg, m.keys.New):
		m.overlay = OverlayForm
		return m, m.form.StartSchedule(m.formOptions(), nil, v.Today.Date)
	case key.Matches(msg, m.keys.Select):
		if s, ok := m.dashboard.Selected(v); ok {
			return m.openDetail(s.Ref())
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if s, ok := m.dashboard.Selected(v); ok {
			return m.openEdit(s.Ref())
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.dashboard.Selected(v); ok {
			return m.confirmDelete(s.Ref())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg, v)
	return m, cmd
}

func (m Model) updateHandovers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.handoversView()
	selected, hasSelected := m.handovers.Selected(v)
	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.state.Handovers.SelectDepartment(handovers.NeighborTab(v, 1))
		m.handovers.ResetCursor()
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.state.Handovers.SelectDepartment(handovers.NeighborTab(v, -1))
		m.handovers.ResetCursor()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if v.Page.HasNext {
			m.state.Handovers.Page++
			m.handovers.ResetCursor()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if v.Page.HasPrev {
			m.state.Handovers.Page--
			m.handovers.ResetCursor()
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.startSearch(m.state.Handovers.Query)
	case key.Matches(msg, m.keys.New):
		m.overlay = OverlayForm
		return m, m.form.StartHandover(m.formOptions(), nil, v.Active)
	case hasSelected && key.Matches(msg, m.keys.Select):
		return m.openDetail(selected.Ref())
	case hasSelected && key.Matches(msg, m.keys.Edit):
		return m.openEdit(selected.Ref())
	case hasSelected && key.Matches(msg, m.keys.Delete):
		return m.confirmDelete(selected.Ref())
	case hasSelected && key.Matches(msg, m.keys.Status):
		return m.openStatus(selected.Ref())
	}
	var cmd tea.Cmd
	m.handovers, cmd = m.handovers.Update(msg, v)
	return m, cmd
}

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.tasksView()
	selected, hasSelected := m.tasks.Selected(v)
	switch {
	case key.Matches(msg, m.keys.CycleDepartment):
		m.state.Tasks.SetDepartment(tasks.NextDepartment(v))
		m.tasks.ResetCursor()
		return m, nil
	case key.Matches(msg, m.keys.CyclePriority):
		m.state.Tasks.SetPriority(tasks.NextPriority(v))
		m.tasks.ResetCursor()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		if v.Page.HasNext {
			m.state.Tasks.Page++
			m.tasks.ResetCursor()
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		if v.Page.HasPrev {
			m.state.Tasks.Page--
			m.tasks.ResetCursor()
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.startSearch(m.state.Tasks.Query)
	case key.Matches(msg, m.keys.New):
		m.overlay = OverlayForm
		return m, m.form.StartTask(m.formOptions(), nil, m.state.Tasks.Department)
	case hasSelected && key.Matches(msg, m.keys.Select):
		return m.openDetail(selected.Ref())
	case hasSelected && key.Matches(msg, m.keys.Edit):
		return m.openEdit(selected.Ref())
	case hasSelected && key.Matches(msg, m.keys.Delete):
		return m.confirmDelete(selected.Ref())
	case hasSelected && key.Matches(msg, m.keys.Status):
		return m.openStatus(selected.Ref())
	}
	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg, v)
	return m, cmd
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.calendarView()
	switch {
	case key.Matches(msg, m.keys.NextMonth):
		m.state.Calendar = m.state.Calendar.Shift(1)
		m.calendar.FocusFirst(m.calendarView())
		return m, nil
	case key.Matches(msg, m.keys.PrevMonth):
		m.state.Calendar = m.state.Calendar.Shift(-1)
		m.calendar.FocusFirst(m.calendarView())
		return m, nil
	case key.Matches(msg, m.keys.New):
		date := m.now().Format("2006-01-02")
		if cell, ok := m.calendar.Selected(v); ok {
			date = cell.Date
		}
		m.overlay = OverlayForm
		return m, m.form.StartSchedule(m.formOptions(), nil, date)
	case key.Matches(msg, m.keys.Select):
		if s, ok := m.calendar.SelectedSchedule(v); ok {
			return m.openDetail(s.Ref())
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if s, ok := m.calendar.SelectedSchedule(v); ok {
			return m.openEdit(s.Ref())
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.calendar.SelectedSchedule(v); ok {
			return m.confirmDelete(s.Ref())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.calendar, cmd = m.calendar.Update(msg, v)
	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("申し送り", sectionNames, int(m.state.Section), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.message)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	if m.notice.Active() {
		return m.layout.Overlay(m.notice.View())
	}
	switch m.overlay {
	case OverlayForm:
		return m.layout.Overlay(m.form.View())
	case OverlayHelp:
		return m.layout.Overlay(m.help.View())
	case OverlayDetail:
		return m.detail.View()
	}

	section := m.renderSection()
	if m.overlay == OverlaySearch {
		return m.search.View() + "\n" + section
	}
	return section
}

func (m Model) renderSection() string {
	switch m.state.Section {
	case view.SectionDashboard:
		return m.dashboard.View(m.dashboardView())
	case view.SectionHandovers:
		return m.handovers.View(m.handoversView())
	case view.SectionTasks:
		return m.tasks.View(m.tasksView())
	case view.SectionCalendar:
		return m.calendar.View(m.calendarView())
	}
	return ""
}

// headerStatus shows the backend and the outcome of the last reload.
func (m Model) headerStatus() string {
	status := m.cfg.Backend
	if m.refreshErr != nil {
		label := "⚠ 読み込み失敗"
		if gateway.IsAuthError(m.refreshErr) {
			label = "⚠ 認証エラー"
		}
		return theme.ErrorStyle.Render(label) + " " + status
	}
	if m.refresher != nil {
		st := m.refresher.Status()
		switch st.State {
		case appsync.RefreshRunning:
			return "更新中 " + status
		case appsync.RefreshIdle:
			if !st.LastRefresh.IsZero() {
				return st.LastRefresh.Format("15:04") + " 更新 " + status
			}
		}
	}
	return status
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.overlay {
	case OverlayHelp:
		return "? close help | esc back"
	case OverlayForm:
		return "enter submit | esc cancel"
	case OverlaySearch:
		return "enter apply | esc cancel"
	case OverlayDetail:
		return "esc back | j/k select | e edit | x delete | c comment | a attach"
	}
	switch m.state.Section {
	case view.SectionHandovers:
		return "tab department | / search | [ ] page | n new | s status | enter detail | ? help"
	case view.SectionTasks:
		return "f department | p priority | / search | [ ] page | n new | s status | ? help"
	case view.SectionCalendar:
		return "←→↑↓ day | < > month | tab schedule | n new | enter detail | ? help"
	}
	return "1-4 section | n new | enter detail | r refresh | ? help | q quit"
}
