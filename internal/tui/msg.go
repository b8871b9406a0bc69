package tui

import "github.com/papapumpkin/gantry/internal/task"

// MsgPlanChanged is sent when the watched plan file changes on disk.
type MsgPlanChanged struct{}

// MsgPlanLoaded carries a freshly loaded task collection.
type MsgPlanLoaded struct {
	Tasks []task.Task
}

// MsgLoadFailed is sent when a plan reload fails. The view keeps the
// last good collection and shows the error.
type MsgLoadFailed struct {
	Err error
}
