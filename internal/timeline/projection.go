package timeline

import (
	"fmt"
	"time"
)

// Projection maps calendar dates to pixel offsets within a range at a
// given zoom. DateToX and XToDate are exact inverses at day
// granularity.
type Projection struct {
	Range    Range
	Zoom     Zoom
	DayWidth int

	// TotalDays is the day span of the range; the drawable axis is
	// [0, TotalDays*DayWidth).
	TotalDays int
}

// Segment is one header cell: a calendar-aligned slice of the range.
// Width is the segment's day count times the zoom's day width.
type Segment struct {
	Start time.Time
	Days  int
	Label string
	X     int
	Width int
}

// NewProjection builds the projection for a range and zoom mode.
func NewProjection(r Range, z Zoom) Projection {
	return Projection{
		Range:     r,
		Zoom:      z,
		DayWidth:  z.DayWidth(),
		TotalDays: r.Days(),
	}
}

// DateToX converts a date to its pixel offset from the range start.
// Dates before the range produce negative offsets.
func (p Projection) DateToX(d time.Time) int {
	days := int(truncDay(d).Sub(p.Range.Start) / (24 * time.Hour))
	return days * p.DayWidth
}

// XToDate converts a pixel offset back to the calendar day it falls
// on. The inverse of DateToX for day-aligned offsets.
func (p Projection) XToDate(x int) time.Time {
	days := x / p.DayWidth
	if x < 0 && x%p.DayWidth != 0 {
		days--
	}
	return p.Range.Start.AddDate(0, 0, days)
}

// TodayX returns the pixel position of the today marker and whether
// it falls inside the range; callers omit the marker when it does not.
func (p Projection) TodayX(today time.Time) (int, bool) {
	if !p.Range.Contains(today) {
		return 0, false
	}
	return p.DateToX(today), true
}

// BarSpan returns the horizontal pixel extent of a task's bar. A
// milestone is a zero-width point at its date; any other dated task
// gets at least one day of width.
func (p Projection) BarSpan(start, end time.Time, milestone bool) (x0, x1 int) {
	x0 = p.DateToX(start)
	if milestone {
		return x0, x0
	}
	x1 = p.DateToX(end)
	if x1 <= x0 {
		x1 = x0 + p.DayWidth
	}
	return x0, x1
}

// HeaderSegments slices the range into header cells for the zoom mode:
// one per calendar day, ISO week, calendar month, or calendar quarter.
// Leading and trailing segments are clipped to the range.
func (p Projection) HeaderSegments() []Segment {
	var segs []Segment
	cur := p.Range.Start
	for cur.Before(p.Range.End) {
		next := p.nextBoundary(cur)
		if next.After(p.Range.End) {
			next = p.Range.End
		}
		days := int(next.Sub(cur) / (24 * time.Hour))
		if days < 1 {
			break
		}
		segs = append(segs, Segment{
			Start: cur,
			Days:  days,
			Label: p.label(cur),
			X:     p.DateToX(cur),
			Width: days * p.DayWidth,
		})
		cur = next
	}
	return segs
}

// nextBoundary returns the first calendar boundary after d for the
// zoom mode: next day, next Monday, first of next month, or first day
// of the next quarter.
func (p Projection) nextBoundary(d time.Time) time.Time {
	switch p.Zoom {
	case ZoomWeek:
		// ISO weeks begin on Monday.
		offset := (8 - int(d.Weekday())) % 7
		if offset == 0 {
			offset = 7
		}
		return d.AddDate(0, 0, offset)
	case ZoomMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	case ZoomQuarter:
		qStartMonth := time.Month((int(d.Month())-1)/3*3 + 1)
		return time.Date(d.Year(), qStartMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 3, 0)
	default:
		return d.AddDate(0, 0, 1)
	}
}

func (p Projection) label(d time.Time) string {
	switch p.Zoom {
	case ZoomWeek:
		_, wk := d.ISOWeek()
		return fmt.Sprintf("W%02d", wk)
	case ZoomMonth:
		return d.Format("Jan 2006")
	case ZoomQuarter:
		q := (int(d.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", q, d.Year())
	default:
		return d.Format("2 Jan")
	}
}
