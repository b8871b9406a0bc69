package task

import (
	"testing"
	"time"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDurationDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		task        Task
		defaultDays int
		want        int
	}{
		{
			name: "three day span",
			task: Task{Start: datePtr(2026, 3, 2), End: datePtr(2026, 3, 5)},
			want: 3,
		},
		{
			name: "partial day rounds up",
			task: func() Task {
				start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
				end := time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC)
				return Task{Start: &start, End: &end}
			}(),
			want: 3,
		},
		{
			name: "same day is one day",
			task: Task{Start: datePtr(2026, 3, 2), End: datePtr(2026, 3, 2)},
			want: 1,
		},
		{
			name: "milestone is zero even with a span",
			task: Task{Start: datePtr(2026, 3, 2), End: datePtr(2026, 3, 2), Milestone: true},
			want: 0,
		},
		{
			name:        "unscheduled uses default",
			task:        Task{},
			defaultDays: 3,
			want:        3,
		},
		{
			name: "unscheduled with zero default clamps to one",
			task: Task{},
			want: 1,
		},
		{
			name: "end before start clamps to one",
			task: Task{Start: datePtr(2026, 3, 5), End: datePtr(2026, 3, 2)},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.task.DurationDays(tt.defaultDays); got != tt.want {
				t.Errorf("DurationDays(%d) = %d, want %d", tt.defaultDays, got, tt.want)
			}
		})
	}
}

func TestGroup(t *testing.T) {
	t.Parallel()

	if got := (&Task{Category: "backend"}).Group(); got != "backend" {
		t.Errorf("Group() = %q, want %q", got, "backend")
	}
	if got := (&Task{}).Group(); got != DefaultCategory {
		t.Errorf("Group() = %q, want %q", got, DefaultCategory)
	}
}

func TestScheduledAndCompleted(t *testing.T) {
	t.Parallel()

	full := Task{Start: datePtr(2026, 1, 5), End: datePtr(2026, 1, 6), Status: StatusCompleted}
	if !full.Scheduled() {
		t.Error("task with both dates should be scheduled")
	}
	if !full.Completed() {
		t.Error("completed task should report Completed")
	}

	half := Task{Start: datePtr(2026, 1, 5), Status: StatusInProgress}
	if half.Scheduled() {
		t.Error("task with one date should not be scheduled")
	}
	if half.Completed() {
		t.Error("in-progress task should not report Completed")
	}
}
