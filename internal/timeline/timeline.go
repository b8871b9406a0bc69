// Package timeline derives the visible calendar range for a task
// collection and projects dates onto a zoomable pixel axis. The range
// is a function of task data alone; zoom only changes pixel density
// and header segmentation.
package timeline

import (
	"fmt"
	"time"

	"github.com/papapumpkin/gantry/internal/task"
)

// Zoom selects the calendar granularity of the timeline. It is a
// closed enumeration: an unknown zoom is a programmer error at the
// call site, not a runtime condition.
type Zoom int

const (
	ZoomDay Zoom = iota
	ZoomWeek
	ZoomMonth
	ZoomQuarter
)

// Per-day pixel width for each zoom mode. Day is the densest view.
const (
	dayWidthDay     = 40
	dayWidthWeek    = 20
	dayWidthMonth   = 8
	dayWidthQuarter = 4
)

// DefaultMarginDays pads the range on both sides so the first and
// last bars are not flush against the viewport edge.
const DefaultMarginDays = 2

// DayWidth returns the fixed pixel width of one day at this zoom.
func (z Zoom) DayWidth() int {
	switch z {
	case ZoomWeek:
		return dayWidthWeek
	case ZoomMonth:
		return dayWidthMonth
	case ZoomQuarter:
		return dayWidthQuarter
	default:
		return dayWidthDay
	}
}

func (z Zoom) String() string {
	switch z {
	case ZoomWeek:
		return "week"
	case ZoomMonth:
		return "month"
	case ZoomQuarter:
		return "quarter"
	default:
		return "day"
	}
}

// ParseZoom maps a mode name to its Zoom, for CLI flags and config.
func ParseZoom(s string) (Zoom, error) {
	switch s {
	case "day":
		return ZoomDay, nil
	case "week":
		return ZoomWeek, nil
	case "month":
		return ZoomMonth, nil
	case "quarter":
		return ZoomQuarter, nil
	}
	return ZoomDay, fmt.Errorf("timeline: unknown zoom mode %q", s)
}

// Range is the visible date span: earliest task start minus a lead
// margin through latest task end plus a trail margin, normalized to
// UTC midnight.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange derives the range from the collection. Tasks without dates
// do not contribute; if no task has dates at all, the range centers on
// today so an empty chart still has an axis to draw.
func NewRange(tasks []task.Task, marginDays int, today time.Time) Range {
	if marginDays < 1 {
		marginDays = DefaultMarginDays
	}

	var lo, hi time.Time
	for i := range tasks {
		t := &tasks[i]
		if !t.Scheduled() {
			continue
		}
		s, e := truncDay(*t.Start), truncDay(*t.End)
		if lo.IsZero() || s.Before(lo) {
			lo = s
		}
		if hi.IsZero() || e.After(hi) {
			hi = e
		}
	}
	if lo.IsZero() {
		lo = truncDay(today)
		hi = lo
	}

	return Range{
		Start: lo.AddDate(0, 0, -marginDays),
		End:   hi.AddDate(0, 0, marginDays),
	}
}

// Days returns the number of whole days spanned by the range.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

// Contains reports whether the day of d falls inside the range.
func (r Range) Contains(d time.Time) bool {
	day := truncDay(d)
	return !day.Before(r.Start) && !day.After(r.End)
}

func truncDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
