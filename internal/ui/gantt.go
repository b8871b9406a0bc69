// This file implements the ASCII/ANSI Gantt chart renderer. Bars are
// placed by scaling the projection's pixel axis down to terminal
// columns, so the chart honors the same geometry at every zoom.
package ui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/gantry/internal/ansi"
	"github.com/papapumpkin/gantry/internal/engine"
	"github.com/papapumpkin/gantry/internal/task"
)

// GanttRenderer produces a terminal Gantt chart from an engine
// snapshot. Bars are status-colored, critical bars are highlighted,
// and a dotted marker shows today when it falls inside the range.
type GanttRenderer struct {
	// Width is the available terminal width in columns.
	Width int

	// UseColor controls whether ANSI escape codes are emitted.
	UseColor bool
}

const (
	minChartCols  = 10
	maxLabelWidth = 24

	barCell       = '█'
	milestoneCell = '◆'
	todayCell     = '┊'
)

// Render draws the chart: a calendar header, then one line per
// visible row. Collapsed groups contribute only their header line.
func (r *GanttRenderer) Render(snap *engine.Snapshot) string {
	width := r.Width
	if width <= 0 {
		width = 80
	}

	labelWidth := r.labelWidth(snap)
	chartCols := width - labelWidth - 3
	if chartCols < minChartCols {
		chartCols = minChartCols
	}

	chartPx := snap.Projection.TotalDays * snap.Projection.DayWidth
	pxPerCol := (chartPx + chartCols - 1) / chartCols
	if pxPerCol < 1 {
		pxPerCol = 1
	}
	cols := chartPx / pxPerCol
	if cols < 1 {
		cols = 1
	}

	todayCol := -1
	if x, ok := snap.Projection.TodayX(snap.Today); ok {
		todayCol = x / pxPerCol
	}

	critical := snap.CriticalSet()

	var sb strings.Builder
	r.renderHeader(&sb, snap, labelWidth, cols, pxPerCol, todayCol)

	lines := make([][]rune, snap.Rows.Total)
	labels := make([]string, snap.Rows.Total)

	for _, group := range snap.Rows.GroupOrder {
		row := snap.Rows.GroupRow[group]
		glyph := "▸"
		if _, expanded := snap.Rows.TaskRow[firstMember(snap, group)]; expanded || len(snap.Rows.Members[group]) == 0 {
			glyph = "▾"
		}
		labels[row] = r.style(ansi.Bold, glyph+" "+group)
		lines[row] = blankRow(cols, todayCol)
	}
	for i := range snap.Tasks {
		t := &snap.Tasks[i]
		row, ok := snap.Rows.TaskRow[t.ID]
		if !ok {
			continue
		}
		labels[row] = "  " + t.Title
		lines[row] = r.taskRow(snap, t, cols, pxPerCol, todayCol, critical[t.ID])
	}

	for row := range lines {
		sb.WriteString(padLabel(stripLen(labels[row]), labels[row], labelWidth))
		sb.WriteString(" │ ")
		sb.WriteString(strings.TrimRight(string(lines[row]), " "))
		sb.WriteByte('\n')
	}

	// Connector overlay summary. Only visible, scheduled edges are
	// routed, so the counts match what the chart could draw.
	if n := len(snap.Connectors); n > 0 {
		satisfied := 0
		for _, c := range snap.Connectors {
			if c.Satisfied {
				satisfied++
			}
		}
		line := fmt.Sprintf("↳ %d link(s): %d satisfied, %d pending", n, satisfied, n-satisfied)
		sb.WriteString(r.style(ansi.Dim, line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// renderHeader writes the calendar segment line and a rule. Segment
// labels are placed at their scaled start column and truncated to the
// segment's width.
func (r *GanttRenderer) renderHeader(sb *strings.Builder, snap *engine.Snapshot, labelWidth, cols, pxPerCol, todayCol int) {
	header := make([]rune, cols)
	for i := range header {
		header[i] = ' '
	}
	rule := make([]rune, cols)
	for i := range rule {
		rule[i] = '─'
	}

	for _, seg := range snap.Projection.HeaderSegments() {
		start := seg.X / pxPerCol
		segCols := seg.Width / pxPerCol
		if start >= cols {
			continue
		}
		if start > 0 && start < cols {
			rule[start] = '┼'
		}
		label := []rune(seg.Label)
		for i := 0; i < len(label) && i < segCols-1 && start+i < cols; i++ {
			header[start+i] = label[i]
		}
	}
	if todayCol >= 0 && todayCol < cols {
		rule[todayCol] = todayCell
	}

	sb.WriteString(strings.Repeat(" ", labelWidth))
	sb.WriteString(" │ ")
	sb.WriteString(strings.TrimRight(string(header), " "))
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("─", labelWidth))
	sb.WriteString("─┼─")
	sb.WriteString(string(rule))
	sb.WriteByte('\n')
}

// taskRow draws one task's bar. Tasks without dates have no bar and
// render as an empty row.
func (r *GanttRenderer) taskRow(snap *engine.Snapshot, t *task.Task, cols, pxPerCol, todayCol int, critical bool) []rune {
	row := blankRow(cols, todayCol)
	if !t.Scheduled() {
		return row
	}

	x0, x1 := snap.Projection.BarSpan(*t.Start, *t.End, t.Milestone)
	c0 := x0 / pxPerCol
	c1 := x1 / pxPerCol

	if t.Milestone {
		if c0 >= 0 && c0 < cols {
			row[c0] = milestoneCell
		}
		return r.colorRow(row, c0, c0+1, t, critical)
	}

	if c1 <= c0 {
		c1 = c0 + 1
	}
	for c := c0; c < c1; c++ {
		if c >= 0 && c < cols {
			row[c] = barCell
		}
	}
	return r.colorRow(row, c0, c1, t, critical)
}

// colorRow wraps the bar cells in the task's status color. Critical
// bars are red regardless of status so the path stands out.
func (r *GanttRenderer) colorRow(row []rune, c0, c1 int, t *task.Task, critical bool) []rune {
	if !r.UseColor {
		return row
	}
	color := ansi.Cyan
	switch {
	case critical:
		color = ansi.Bold + ansi.Red
	case t.Status == task.StatusCompleted:
		color = ansi.Green
	case t.Status == task.StatusInProgress:
		color = ansi.Blue
	case t.Status == task.StatusBlocked:
		color = ansi.Yellow
	}
	if c0 < 0 {
		c0 = 0
	}
	if c1 > len(row) {
		c1 = len(row)
	}
	if c0 >= c1 {
		return row
	}
	out := make([]rune, 0, len(row)+16)
	out = append(out, row[:c0]...)
	out = append(out, []rune(color)...)
	out = append(out, row[c0:c1]...)
	out = append(out, []rune(ansi.Reset)...)
	out = append(out, row[c1:]...)
	return out
}

func (r *GanttRenderer) style(code, s string) string {
	if !r.UseColor {
		return s
	}
	return code + s + ansi.Reset
}

func (r *GanttRenderer) labelWidth(snap *engine.Snapshot) int {
	w := 0
	for _, group := range snap.Rows.GroupOrder {
		if n := len([]rune(group)) + 2; n > w {
			w = n
		}
	}
	for i := range snap.Tasks {
		if !snap.Rows.Visible(snap.Tasks[i].ID) {
			continue
		}
		if n := len([]rune(snap.Tasks[i].Title)) + 2; n > w {
			w = n
		}
	}
	if w > maxLabelWidth {
		w = maxLabelWidth
	}
	if w < 8 {
		w = 8
	}
	return w
}

func blankRow(cols, todayCol int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = ' '
	}
	if todayCol >= 0 && todayCol < cols {
		row[todayCol] = todayCell
	}
	return row
}

func firstMember(snap *engine.Snapshot, group string) string {
	members := snap.Rows.Members[group]
	if len(members) == 0 {
		return ""
	}
	return members[0]
}

// padLabel pads by display length so styled labels line up with
// plain ones.
func padLabel(displayLen int, label string, width int) string {
	if displayLen >= width {
		return truncStyled(label, width)
	}
	return label + strings.Repeat(" ", width-displayLen)
}

// stripLen returns the display length of a string, ignoring ANSI
// escape sequences.
func stripLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// truncStyled truncates a string to width display columns, keeping
// escape sequences intact.
func truncStyled(s string, width int) string {
	var sb strings.Builder
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			sb.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
		case r == '\033':
			sb.WriteRune(r)
			inEscape = true
		default:
			if n < width {
				sb.WriteRune(r)
				n++
			}
		}
	}
	return sb.String()
}
