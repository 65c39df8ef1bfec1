package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/shift-handover/internal/model"
)

// Seed fills an empty database with a day of sample data anchored on
// today: two schedules today, two tomorrow, three handovers and three
// tasks. It returns false without writing when any schedule, handover or
// task already exists.
func (s *SQLiteStore) Seed(ctx context.Context, today time.Time) (bool, error) {
	var existing int
	err := s.db.GetContext(ctx, &existing, `
		SELECT (SELECT COUNT(*) FROM schedules)
		     + (SELECT COUNT(*) FROM handovers)
		     + (SELECT COUNT(*) FROM tasks)`)
	if err != nil {
		return false, fmt.Errorf("counting rows: %w", err)
	}
	if existing > 0 {
		return false, nil
	}

	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format("2006-01-02")
	}
	at := func(hour, min int) time.Time {
		y, m, d := today.Date()
		return time.Date(y, m, d, hour, min, 0, 0, today.Location()).UTC()
	}

	schedules := []model.ScheduleInput{
		{Title: "月次会議", DepartmentID: "general", Date: day(0), Time: "09:00", Description: "月次業務報告会議", Duration: 120},
		{Title: "設備点検", DepartmentID: "machinery", Date: day(0), Time: "14:00", Description: "消防設備定期点検", Duration: 180},
		{Title: "防火訓練", DepartmentID: "fire", Date: day(1), Time: "10:00", Description: "避難訓練および消火訓練", Duration: 90},
		{Title: "予防査察", DepartmentID: "prevention", Date: day(1), Time: "13:30", Description: "事業所の予防査察実施", Duration: 60},
	}
	for _, in := range schedules {
		if _, err := s.InsertSchedule(ctx, in); err != nil {
			return false, fmt.Errorf("seeding schedules: %w", err)
		}
	}

	handovers := []struct {
		in model.HandoverInput
		at time.Time
	}{
		{model.HandoverInput{DepartmentID: "general", Title: "書類確認", Description: "月次報告書の確認が必要です。期限は明日まで。", PriorityID: "high", StatusID: model.StatusHandoverPending}, at(8, 30)},
		{model.HandoverInput{DepartmentID: "emergency", Title: "救急車両点検", Description: "救急車両の日常点検を実施。バッテリー交換が必要。", PriorityID: "urgent", StatusID: model.StatusHandoverCompleted}, at(7, 0)},
		{model.HandoverInput{DepartmentID: "fire", Title: "消防設備確認", Description: "消防設備の定期点検結果を確認してください。", PriorityID: "medium", StatusID: model.StatusHandoverPending}, at(9, 15)},
	}
	for _, h := range handovers {
		if _, err := s.insertHandoverAt(ctx, h.in, h.at); err != nil {
			return false, fmt.Errorf("seeding handovers: %w", err)
		}
	}

	tasks := []model.TaskInput{
		{Title: "予算資料作成", DepartmentID: "general", Description: "来月の予算資料を作成する", PriorityID: "medium", StatusID: model.StatusTaskTodo, DueDate: day(7), Assignee: "田中係長"},
		{Title: "緊急設備修理", DepartmentID: "machinery", Description: "ポンプ設備の緊急修理対応", PriorityID: "urgent", StatusID: model.StatusTaskInProgress, DueDate: day(1), Assignee: "佐藤主任"},
		{Title: "訓練計画立案", DepartmentID: "fire", Description: "来月の防火訓練計画を立案", PriorityID: "high", StatusID: model.StatusTaskTodo, DueDate: day(5), Assignee: "山田主任"},
	}
	for i, in := range tasks {
		if _, err := s.insertTaskAt(ctx, in, at(6, i)); err != nil {
			return false, fmt.Errorf("seeding tasks: %w", err)
		}
	}

	return true, nil
}
