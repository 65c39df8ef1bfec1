package model

import "fmt"

// ItemKind names the entity a comment or attachment belongs to.
type ItemKind string

const (
	KindTask     ItemKind = "task"
	KindHandover ItemKind = "handover"
	KindSchedule ItemKind = "schedule"
)

// ItemRef is the composite (kind, id) key used by comments and attachments
// to point at their owner. No referential integrity backs it.
type ItemRef struct {
	Kind ItemKind
	ID   int64
}

func TaskRef(id int64) ItemRef     { return ItemRef{Kind: KindTask, ID: id} }
func HandoverRef(id int64) ItemRef { return ItemRef{Kind: KindHandover, ID: id} }
func ScheduleRef(id int64) ItemRef { return ItemRef{Kind: KindSchedule, ID: id} }

// Valid reports whether the ref names a known kind and a positive id.
func (r ItemRef) Valid() bool {
	switch r.Kind {
	case KindTask, KindHandover, KindSchedule:
		return r.ID > 0
	}
	return false
}

// Commentable reports whether comments may be attached to the ref.
// Schedules accept attachments only.
func (r ItemRef) Commentable() bool {
	return r.Valid() && r.Kind != KindSchedule
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}
