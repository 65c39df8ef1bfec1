package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/mutation"
	"github.com/nhle/shift-handover/internal/ui/detail"
	"github.com/nhle/shift-handover/internal/ui/form"
)

// writeResultMsg is sent when a controller write finishes. fromForm
// marks writes submitted through the modal form.
type writeResultMsg struct {
	op       string
	err      error
	fromForm bool
}

// urlResultMsg carries a signed attachment URL.
type urlResultMsg struct {
	url string
	err error
}

// downloadResultMsg carries the path an attachment was saved to.
type downloadResultMsg struct {
	path string
	err  error
}

// deleteItem is the confirmation payload for deleting a task, handover
// or schedule.
type deleteItem struct {
	ref   model.ItemRef
	title string
}

// deleteEntry is the confirmation payload for deleting a comment or
// attachment.
type deleteEntry struct {
	entry detail.Entry
}

func write(op string, fromForm bool, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return writeResultMsg{op: op, err: fn(context.Background()), fromForm: fromForm}
	}
}

// submitCmd turns a completed form into the matching controller call.
func (m Model) submitCmd(sub form.SubmitMsg) tea.Cmd {
	ctrl := m.ctrl
	switch sub.Kind {
	case form.KindSchedule:
		if sub.EditID == 0 {
			return write("予定を登録しました", true, func(ctx context.Context) error {
				return ctrl.CreateSchedule(ctx, sub.Schedule)
			})
		}
		return write("予定を更新しました", true, func(ctx context.Context) error {
			return ctrl.UpdateSchedule(ctx, sub.EditID, sub.Schedule)
		})

	case form.KindHandover:
		if sub.EditID == 0 {
			return write("申し送りを登録しました", true, func(ctx context.Context) error {
				return ctrl.CreateHandover(ctx, sub.Handover)
			})
		}
		return write("申し送りを更新しました", true, func(ctx context.Context) error {
			return ctrl.UpdateHandover(ctx, sub.EditID, sub.Handover)
		})

	case form.KindTask:
		if sub.EditID == 0 {
			return write("タスクを登録しました", true, func(ctx context.Context) error {
				return ctrl.CreateTask(ctx, sub.Task)
			})
		}
		return write("タスクを更新しました", true, func(ctx context.Context) error {
			return ctrl.UpdateTask(ctx, sub.EditID, sub.Task)
		})

	case form.KindComment:
		return write("コメントを追加しました", true, func(ctx context.Context) error {
			return ctrl.AddComment(ctx, sub.Ref, sub.Author, sub.Content)
		})

	case form.KindAttach:
		user := m.cfg.UserName
		return write("ファイルを添付しました", true, func(ctx context.Context) error {
			files := make([]mutation.File, 0, len(sub.Paths))
			for _, p := range sub.Paths {
				f, err := mutation.ReadFile(p, ctrl.MaxUploadBytes())
				if err != nil {
					return &mutation.Error{Op: "upload attachments", Err: err}
				}
				files = append(files, f)
			}
			return ctrl.UploadAttachments(ctx, sub.Ref, user, files)
		})
	}
	return nil
}

// stageStatus applies the status change to the cache right away and
// returns the command that writes it.
func (m Model) stageStatus(ref model.ItemRef, statusID string) (tea.Cmd, error) {
	var (
		ch  *mutation.StatusChange
		err error
	)
	switch ref.Kind {
	case model.KindTask:
		ch, err = m.ctrl.StageTaskStatus(ref.ID, statusID)
	case model.KindHandover:
		ch, err = m.ctrl.StageHandoverStatus(ref.ID, statusID)
	default:
		err = fmt.Errorf("%w: %s", mutation.ErrInvalidRef, ref)
	}
	if err != nil {
		return nil, err
	}
	ctrl := m.ctrl
	return write("ステータスを変更しました", true, func(ctx context.Context) error {
		return ctrl.CommitStatus(ctx, ch)
	}), nil
}

func (m Model) deleteItemCmd(d deleteItem) tea.Cmd {
	ctrl := m.ctrl
	op := fmt.Sprintf("「%s」を削除しました", d.title)
	return write(op, false, func(ctx context.Context) error {
		switch d.ref.Kind {
		case model.KindTask:
			return ctrl.DeleteTask(ctx, d.ref.ID)
		case model.KindHandover:
			return ctrl.DeleteHandover(ctx, d.ref.ID)
		case model.KindSchedule:
			return ctrl.DeleteSchedule(ctx, d.ref.ID)
		}
		return fmt.Errorf("%w: %s", mutation.ErrInvalidRef, d.ref)
	})
}

func (m Model) deleteEntryCmd(d deleteEntry) tea.Cmd {
	ctrl := m.ctrl
	switch {
	case d.entry.Attachment != nil:
		id := d.entry.Attachment.ID
		return write("添付ファイルを削除しました", false, func(ctx context.Context) error {
			return ctrl.DeleteAttachment(ctx, id)
		})
	case d.entry.Comment != nil:
		id := d.entry.Comment.ID
		return write("コメントを削除しました", false, func(ctx context.Context) error {
			return ctrl.DeleteComment(ctx, id)
		})
	}
	return nil
}

func (m Model) attachmentURLCmd(id int64) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		url, err := ctrl.AttachmentURL(context.Background(), id)
		return urlResultMsg{url: url, err: err}
	}
}

func (m Model) downloadCmd(id int64) tea.Cmd {
	ctrl := m.ctrl
	dir := m.cfg.DownloadDir
	return func() tea.Msg {
		path, err := ctrl.SaveDownload(context.Background(), id, dir)
		return downloadResultMsg{path: path, err: err}
	}
}

// errorTitle picks the notice heading for a failed write.
func errorTitle(err error) string {
	var mErr *mutation.Error
	if errors.As(err, &mErr) {
		return "操作に失敗しました: " + mErr.Op
	}
	return "操作に失敗しました"
}
