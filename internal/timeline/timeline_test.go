package timeline

import (
	"testing"
	"time"

	"github.com/papapumpkin/gantry/internal/task"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestParseZoom(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"day", "week", "month", "quarter"} {
		z, err := ParseZoom(name)
		if err != nil {
			t.Errorf("ParseZoom(%q): %v", name, err)
		}
		if z.String() != name {
			t.Errorf("ParseZoom(%q).String() = %q", name, z.String())
		}
	}
	if _, err := ParseZoom("fortnight"); err == nil {
		t.Error("ParseZoom should reject unknown modes")
	}
}

func TestZoomDayWidthOrdering(t *testing.T) {
	t.Parallel()

	if !(ZoomDay.DayWidth() > ZoomWeek.DayWidth() &&
		ZoomWeek.DayWidth() > ZoomMonth.DayWidth() &&
		ZoomMonth.DayWidth() > ZoomQuarter.DayWidth()) {
		t.Error("day widths must strictly decrease from day to quarter")
	}
	if ZoomQuarter.DayWidth() < 1 {
		t.Error("quarter day width must be positive")
	}
}

func TestNewRangePadsWithMargins(t *testing.T) {
	t.Parallel()

	tasks := []task.Task{
		{ID: "a", Start: datePtr(day(2026, 3, 4)), End: datePtr(day(2026, 3, 6))},
		{ID: "b", Start: datePtr(day(2026, 3, 2)), End: datePtr(day(2026, 3, 10))},
		{ID: "undated"},
	}
	r := NewRange(tasks, 2, day(2026, 3, 1))

	if !r.Start.Equal(day(2026, 2, 28)) {
		t.Errorf("range start = %v, want 2026-02-28", r.Start)
	}
	if !r.End.Equal(day(2026, 3, 12)) {
		t.Errorf("range end = %v, want 2026-03-12", r.End)
	}
}

func TestNewRangeAllUndatedFallsBackToToday(t *testing.T) {
	t.Parallel()

	today := day(2026, 5, 15)
	r := NewRange([]task.Task{{ID: "a"}, {ID: "b"}}, 3, today)
	if !r.Contains(today) {
		t.Error("fallback range must contain today")
	}
	if r.Days() != 6 {
		t.Errorf("fallback range spans %d days, want 6", r.Days())
	}
}

func TestRangeIndependentOfZoom(t *testing.T) {
	t.Parallel()

	tasks := []task.Task{
		{ID: "a", Start: datePtr(day(2026, 3, 2)), End: datePtr(day(2026, 3, 9))},
	}
	r := NewRange(tasks, 2, day(2026, 3, 1))
	for _, z := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth, ZoomQuarter} {
		p := NewProjection(r, z)
		if !p.Range.Start.Equal(r.Start) || !p.Range.End.Equal(r.End) {
			t.Errorf("zoom %v mutated the range", z)
		}
		if p.TotalDays != r.Days() {
			t.Errorf("zoom %v: TotalDays = %d, want %d", z, p.TotalDays, r.Days())
		}
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	t.Parallel()

	r := Range{Start: day(2026, 3, 2), End: day(2026, 3, 30)}
	for _, z := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth, ZoomQuarter} {
		p := NewProjection(r, z)

		// Every date in the range survives a dateToX/xToDate round trip.
		for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
			if got := p.XToDate(p.DateToX(d)); !got.Equal(d) {
				t.Errorf("zoom %v: XToDate(DateToX(%v)) = %v", z, d, got)
			}
		}

		// Every day-aligned pixel offset survives the inverse trip.
		for x := 0; x < p.TotalDays*p.DayWidth; x += p.DayWidth {
			if got := p.DateToX(p.XToDate(x)); got != x {
				t.Errorf("zoom %v: DateToX(XToDate(%d)) = %d", z, x, got)
			}
		}
	}
}

func TestProjectionNegativeOffsets(t *testing.T) {
	t.Parallel()

	r := Range{Start: day(2026, 3, 2), End: day(2026, 3, 16)}
	p := NewProjection(r, ZoomDay)

	before := day(2026, 3, 1)
	if x := p.DateToX(before); x != -p.DayWidth {
		t.Errorf("DateToX(day before range) = %d, want %d", x, -p.DayWidth)
	}
	if got := p.XToDate(-p.DayWidth); !got.Equal(before) {
		t.Errorf("XToDate(-dayWidth) = %v, want %v", got, before)
	}
}

func TestHeaderSegmentsWeek(t *testing.T) {
	t.Parallel()

	// 2026-03-02 is a Monday: a 14-day range is exactly two ISO weeks.
	r := Range{Start: day(2026, 3, 2), End: day(2026, 3, 16)}
	p := NewProjection(r, ZoomWeek)

	segs := p.HeaderSegments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segs), segs)
	}
	for i, s := range segs {
		if s.Days != 7 {
			t.Errorf("segment %d spans %d days, want 7", i, s.Days)
		}
		if s.Width != 7*p.DayWidth {
			t.Errorf("segment %d width = %d, want %d", i, s.Width, 7*p.DayWidth)
		}
	}
	if segs[0].Label != "W10" || segs[1].Label != "W11" {
		t.Errorf("labels = %q, %q; want W10, W11", segs[0].Label, segs[1].Label)
	}
}

func TestHeaderSegmentsDay(t *testing.T) {
	t.Parallel()

	r := Range{Start: day(2026, 3, 2), End: day(2026, 3, 7)}
	p := NewProjection(r, ZoomDay)

	segs := p.HeaderSegments()
	if len(segs) != 5 {
		t.Fatalf("got %d segments, want 5", len(segs))
	}
	for i, s := range segs {
		if s.Days != 1 || s.Width != p.DayWidth {
			t.Errorf("segment %d: days=%d width=%d, want 1 day cell", i, s.Days, s.Width)
		}
		if s.X != i*p.DayWidth {
			t.Errorf("segment %d X = %d, want %d", i, s.X, i*p.DayWidth)
		}
	}
}

func TestHeaderSegmentsMonthClipped(t *testing.T) {
	t.Parallel()

	// Mid-March through mid-May: partial March, full April, partial May.
	r := Range{Start: day(2026, 3, 15), End: day(2026, 5, 10)}
	p := NewProjection(r, ZoomMonth)

	segs := p.HeaderSegments()
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].Days != 17 { // Mar 15..Apr 1
		t.Errorf("March segment spans %d days, want 17", segs[0].Days)
	}
	if segs[1].Days != 30 {
		t.Errorf("April segment spans %d days, want 30", segs[1].Days)
	}
	if segs[2].Days != 9 { // May 1..May 10
		t.Errorf("May segment spans %d days, want 9", segs[2].Days)
	}

	total := 0
	for _, s := range segs {
		total += s.Days
	}
	if total != p.TotalDays {
		t.Errorf("segment days sum to %d, want %d", total, p.TotalDays)
	}
}

func TestHeaderSegmentsQuarter(t *testing.T) {
	t.Parallel()

	r := Range{Start: day(2026, 2, 1), End: day(2026, 8, 1)}
	p := NewProjection(r, ZoomQuarter)

	segs := p.HeaderSegments()
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	want := []string{"Q1 2026", "Q2 2026", "Q3 2026"}
	for i, s := range segs {
		if s.Label != want[i] {
			t.Errorf("segment %d label = %q, want %q", i, s.Label, want[i])
		}
	}
}

func TestTodayMarker(t *testing.T) {
	t.Parallel()

	r := Range{Start: day(2026, 3, 2), End: day(2026, 3, 16)}
	p := NewProjection(r, ZoomDay)

	if x, ok := p.TodayX(day(2026, 3, 5)); !ok || x != 3*p.DayWidth {
		t.Errorf("TodayX(in range) = %d,%v; want %d,true", x, ok, 3*p.DayWidth)
	}
	if _, ok := p.TodayX(day(2026, 6, 1)); ok {
		t.Error("today outside the range must be omitted")
	}
	if _, ok := p.TodayX(day(2026, 2, 1)); ok {
		t.Error("today before the range must be omitted")
	}
}

func TestBarSpan(t *testing.T) {
	t.Parallel()

	r := Range{Start: day(2026, 3, 2), End: day(2026, 3, 16)}
	p := NewProjection(r, ZoomDay)

	x0, x1 := p.BarSpan(day(2026, 3, 4), day(2026, 3, 7), false)
	if x0 != 2*p.DayWidth || x1 != 5*p.DayWidth {
		t.Errorf("BarSpan = %d..%d, want %d..%d", x0, x1, 2*p.DayWidth, 5*p.DayWidth)
	}

	// Milestones are zero-width points.
	mx0, mx1 := p.BarSpan(day(2026, 3, 4), day(2026, 3, 4), true)
	if mx0 != mx1 {
		t.Errorf("milestone span = %d..%d, want zero width", mx0, mx1)
	}

	// A same-day task still gets a visible one-day bar.
	sx0, sx1 := p.BarSpan(day(2026, 3, 4), day(2026, 3, 4), false)
	if sx1-sx0 != p.DayWidth {
		t.Errorf("same-day bar width = %d, want %d", sx1-sx0, p.DayWidth)
	}
}
