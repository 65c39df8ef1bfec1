package detail

import (
	"fmt"
	"strconv"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/model"
)

// Badge is a colored label in the detail header.
type Badge struct {
	Text  string
	Color string
}

// Field is one label/value line of metadata.
type Field struct {
	Label string
	Value string
}

// Item is everything the panel shows about one task, handover or
// schedule, resolved against a snapshot.
type Item struct {
	Ref         model.ItemRef
	Title       string
	Badges      []Badge
	Fields      []Field
	Description string
	Comments    []model.Comment
	Attachments []model.Attachment
}

// Resolve builds the Item for ref. ok is false when ref is no longer
// cached, e.g. after it was deleted.
func Resolve(snap cache.Snapshot, ref model.ItemRef) (Item, bool) {
	var it Item
	switch ref.Kind {
	case model.KindTask:
		t, ok := snap.Task(ref.ID)
		if !ok {
			return Item{}, false
		}
		it = taskItem(snap, t)
	case model.KindHandover:
		h, ok := snap.Handover(ref.ID)
		if !ok {
			return Item{}, false
		}
		it = handoverItem(snap, h)
	case model.KindSchedule:
		s, ok := snap.Schedule(ref.ID)
		if !ok {
			return Item{}, false
		}
		it = scheduleItem(snap, s)
	default:
		return Item{}, false
	}

	it.Ref = ref
	if ref.Commentable() {
		it.Comments = snap.CommentsFor(ref)
	}
	it.Attachments = snap.AttachmentsFor(ref)
	return it, true
}

func taskItem(snap cache.Snapshot, t model.Task) Item {
	due := t.DueDate
	if due == "" {
		due = "なし"
	}
	it := Item{
		Title: t.Title,
		Badges: []Badge{
			{snap.DepartmentName(t.DepartmentID), snap.DepartmentColor(t.DepartmentID)},
			{snap.PriorityName(t.PriorityID), snap.PriorityColor(t.PriorityID)},
			{snap.StatusName(t.StatusID), snap.StatusColor(t.StatusID)},
		},
		Fields: []Field{
			{"期限", due},
			{"担当者", t.Assignee},
			{"作成", t.CreatedAt.Local().Format("2006-01-02 15:04")},
		},
		Description: t.Description,
	}
	return it
}

func handoverItem(snap cache.Snapshot, h model.Handover) Item {
	return Item{
		Title: h.Title,
		Badges: []Badge{
			{snap.DepartmentName(h.DepartmentID), snap.DepartmentColor(h.DepartmentID)},
			{snap.PriorityName(h.PriorityID), snap.PriorityColor(h.PriorityID)},
			{snap.StatusName(h.StatusID), snap.StatusColor(h.StatusID)},
		},
		Fields: []Field{
			{"作成", h.CreatedAt.Local().Format("2006-01-02 15:04")},
		},
		Description: h.Description,
	}
}

func scheduleItem(snap cache.Snapshot, s model.Schedule) Item {
	when := s.Date
	if t := model.FormatTime(s.Time); t != "" {
		when += " " + t
	}
	return Item{
		Title: s.Title,
		Badges: []Badge{
			{snap.DepartmentName(s.DepartmentID), snap.DepartmentColor(s.DepartmentID)},
		},
		Fields: []Field{
			{"日時", when},
			{"所要時間", strconv.Itoa(s.Duration) + "分"},
		},
		Description: s.Description,
	}
}

// Entry is a selectable row below the description: an attachment or a
// comment.
type Entry struct {
	Attachment *model.Attachment
	Comment    *model.Comment
}

// Entries lists attachments first, then comments.
func (it Item) Entries() []Entry {
	out := make([]Entry, 0, len(it.Attachments)+len(it.Comments))
	for i := range it.Attachments {
		out = append(out, Entry{Attachment: &it.Attachments[i]})
	}
	for i := range it.Comments {
		out = append(out, Entry{Comment: &it.Comments[i]})
	}
	return out
}

func (e Entry) String() string {
	switch {
	case e.Attachment != nil:
		return fmt.Sprintf("attachment %d", e.Attachment.ID)
	case e.Comment != nil:
		return fmt.Sprintf("comment %d", e.Comment.ID)
	}
	return ""
}
