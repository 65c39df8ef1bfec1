package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/shift-handover/internal/model"
)

func (m *Model) build() tea.Cmd {
	var fields []huh.Field
	switch m.kind {
	case KindSchedule:
		fields = m.scheduleFields()
	case KindHandover:
		fields = m.handoverFields()
	case KindTask:
		fields = m.taskFields()
	case KindComment:
		fields = m.commentFields()
	case KindAttach:
		fields = m.attachFields()
	case KindStatus:
		fields = []huh.Field{m.statusField(m.opts.Statuses)}
	}

	m.form = huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth() - 4).WithShowHelp(true)
	return m.form.Init()
}

func (m *Model) scheduleFields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("タイトル").
			Value(&m.fb.title).
			Validate(validateRequired("タイトル")),
		m.departmentField(),
		huh.NewInput().
			Title("日付").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(validateDate),
		huh.NewInput().
			Title("時刻").
			Placeholder("HH:MM (任意)").
			Value(&m.fb.time).
			Validate(validateOptionalTime),
		huh.NewInput().
			Title("所要時間 (分)").
			Value(&m.fb.duration).
			Validate(validateDuration),
		huh.NewText().
			Title("詳細").
			Value(&m.fb.description),
	}
}

func (m *Model) handoverFields() []huh.Field {
	return []huh.Field{
		m.departmentField(),
		huh.NewInput().
			Title("件名").
			Value(&m.fb.title).
			Validate(validateRequired("件名")),
		huh.NewText().
			Title("内容 (Markdown)").
			Value(&m.fb.description),
		m.priorityField(),
		m.statusField(statusesOf(m.opts.Statuses, model.CategoryHandover)),
	}
}

func (m *Model) taskFields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("タスク名").
			Value(&m.fb.title).
			Validate(validateRequired("タスク名")),
		m.departmentField(),
		huh.NewText().
			Title("詳細 (Markdown)").
			Value(&m.fb.description),
		m.priorityField(),
		m.statusField(statusesOf(m.opts.Statuses, model.CategoryTask)),
		huh.NewInput().
			Title("期限").
			Placeholder("YYYY-MM-DD (任意)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("担当者").
			Value(&m.fb.assignee),
	}
}

func (m *Model) commentFields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("名前").
			Value(&m.fb.author),
		huh.NewText().
			Title("コメント").
			Value(&m.fb.content).
			Validate(validateRequired("コメント")),
	}
}

func (m *Model) attachFields() []huh.Field {
	return []huh.Field{
		huh.NewText().
			Title("ファイルパス").
			Description("1行に1ファイル。10MBを超えるファイルがあると全体を中止します。").
			Value(&m.fb.paths).
			Validate(func(s string) error {
				if len(SplitPaths(s)) == 0 {
					return errors.New("ファイルを指定してください")
				}
				return nil
			}),
	}
}

func (m *Model) departmentField() huh.Field {
	opts := make([]huh.Option[string], 0, len(m.opts.Departments))
	for _, d := range m.opts.Departments {
		opts = append(opts, huh.NewOption(d.Name, d.ID))
	}
	return huh.NewSelect[string]().
		Title("係").
		Options(opts...).
		Value(&m.fb.department)
}

func (m *Model) priorityField() huh.Field {
	opts := make([]huh.Option[string], 0, len(m.opts.Priorities))
	for _, p := range m.opts.Priorities {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return huh.NewSelect[string]().
		Title("重要度").
		Options(opts...).
		Value(&m.fb.priority)
}

func (m *Model) statusField(statuses []model.Status) huh.Field {
	opts := make([]huh.Option[string], 0, len(statuses))
	for _, s := range statuses {
		opts = append(opts, huh.NewOption(s.Name, s.ID))
	}
	return huh.NewSelect[string]().
		Title("ステータス").
		Options(opts...).
		Value(&m.fb.status)
}

func statusesOf(all []model.Status, category model.StatusCategory) []model.Status {
	var out []model.Status
	for _, s := range all {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%sを入力してください", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return errors.New("日付は YYYY-MM-DD 形式で入力してください")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(s)
}

func validateOptionalTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return errors.New("時刻は HH:MM 形式で入力してください")
	}
	return nil
}

func validateDuration(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("所要時間は正の整数で入力してください")
	}
	return nil
}
