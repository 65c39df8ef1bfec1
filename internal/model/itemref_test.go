package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItemRefValidity(t *testing.T) {
	tests := []struct {
		ref         ItemRef
		valid       bool
		commentable bool
	}{
		{TaskRef(5), true, true},
		{HandoverRef(1), true, true},
		{ScheduleRef(2), true, false},
		{ItemRef{Kind: "project", ID: 1}, false, false},
		{TaskRef(0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.ref.Valid())
			assert.Equal(t, tt.commentable, tt.ref.Commentable())
		})
	}
}

func TestStoragePath(t *testing.T) {
	at := time.UnixMilli(1751500000123)
	assert.Equal(t, "task/5/1751500000123_report.pdf", StoragePath(TaskRef(5), at, "report.pdf"))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "09:00", FormatTime("09:00:00"))
	assert.Equal(t, "14:30", FormatTime("14:30"))
	assert.Equal(t, "", FormatTime(""))
}
