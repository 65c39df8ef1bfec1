package cache

import "github.com/nhle/shift-handover/internal/model"

// Snapshot is an immutable view of the cache handed to renderers.
// Lookups never fail: unknown ids resolve to the raw id and
// model.FallbackColor.
type Snapshot struct {
	Departments []model.Department
	Priorities  []model.Priority
	Statuses    []model.Status
	Schedules   []model.Schedule
	Handovers   []model.Handover
	Tasks       []model.Task
	Comments    []model.Comment
	Attachments []model.Attachment
}

func (s Snapshot) Department(id string) (model.Department, bool) {
	for _, d := range s.Departments {
		if d.ID == id {
			return d, true
		}
	}
	return model.Department{}, false
}

func (s Snapshot) DepartmentName(id string) string {
	if d, ok := s.Department(id); ok {
		return d.Name
	}
	return id
}

func (s Snapshot) DepartmentColor(id string) string {
	if d, ok := s.Department(id); ok {
		return d.Color
	}
	return model.FallbackColor
}

func (s Snapshot) Priority(id string) (model.Priority, bool) {
	for _, p := range s.Priorities {
		if p.ID == id {
			return p, true
		}
	}
	return model.Priority{}, false
}

func (s Snapshot) PriorityName(id string) string {
	if p, ok := s.Priority(id); ok {
		return p.Name
	}
	return id
}

func (s Snapshot) PriorityColor(id string) string {
	if p, ok := s.Priority(id); ok {
		return p.Color
	}
	return model.FallbackColor
}

func (s Snapshot) Status(id string) (model.Status, bool) {
	for _, st := range s.Statuses {
		if st.ID == id {
			return st, true
		}
	}
	return model.Status{}, false
}

func (s Snapshot) StatusName(id string) string {
	if st, ok := s.Status(id); ok {
		return st.Name
	}
	return id
}

func (s Snapshot) StatusColor(id string) string {
	if st, ok := s.Status(id); ok {
		return st.Color
	}
	return model.FallbackColor
}

// StatusesFor returns the statuses of one category in cached order.
func (s Snapshot) StatusesFor(category model.StatusCategory) []model.Status {
	var out []model.Status
	for _, st := range s.Statuses {
		if st.Category == category {
			out = append(out, st)
		}
	}
	return out
}

// DefaultStatus returns the first status of a category, if any.
func (s Snapshot) DefaultStatus(category model.StatusCategory) (model.Status, bool) {
	statuses := s.StatusesFor(category)
	if len(statuses) == 0 {
		return model.Status{}, false
	}
	return statuses[0], true
}

func (s Snapshot) Schedule(id int64) (model.Schedule, bool) {
	for _, sc := range s.Schedules {
		if sc.ID == id {
			return sc, true
		}
	}
	return model.Schedule{}, false
}

func (s Snapshot) Handover(id int64) (model.Handover, bool) {
	for _, h := range s.Handovers {
		if h.ID == id {
			return h, true
		}
	}
	return model.Handover{}, false
}

func (s Snapshot) Task(id int64) (model.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (s Snapshot) Attachment(id int64) (model.Attachment, bool) {
	for _, a := range s.Attachments {
		if a.ID == id {
			return a, true
		}
	}
	return model.Attachment{}, false
}

// Exists reports whether the owner named by ref is cached.
func (s Snapshot) Exists(ref model.ItemRef) bool {
	var ok bool
	switch ref.Kind {
	case model.KindTask:
		_, ok = s.Task(ref.ID)
	case model.KindHandover:
		_, ok = s.Handover(ref.ID)
	case model.KindSchedule:
		_, ok = s.Schedule(ref.ID)
	}
	return ok
}

// CommentsFor returns the comments owned by ref, in cached order.
func (s Snapshot) CommentsFor(ref model.ItemRef) []model.Comment {
	var out []model.Comment
	for _, c := range s.Comments {
		if c.Ref() == ref {
			out = append(out, c)
		}
	}
	return out
}

// AttachmentsFor returns the attachments owned by ref, in cached order.
func (s Snapshot) AttachmentsFor(ref model.ItemRef) []model.Attachment {
	var out []model.Attachment
	for _, a := range s.Attachments {
		if a.Ref() == ref {
			out = append(out, a)
		}
	}
	return out
}
