// Package connector computes the geometry of dependency arrows
// between task bars: endpoint coordinates, a curvature offset, and a
// satisfied/pending classification. It emits numbers, not pixels; the
// rendering layer decides how to draw them.
package connector

import (
	"github.com/papapumpkin/gantry/internal/graph"
	"github.com/papapumpkin/gantry/internal/layout"
	"github.com/papapumpkin/gantry/internal/task"
	"github.com/papapumpkin/gantry/internal/timeline"
)

// RowHeight is the vertical pitch of one chart row in pixels.
const RowHeight = 32

// CurveCap bounds the horizontal curvature offset so long-range
// connectors bow outward without sweeping across the whole chart.
const CurveCap = 40

// Point is a pixel coordinate in chart space.
type Point struct {
	X int
	Y int
}

// Connector is the routed geometry for one dependency edge. Satisfied
// connectors (source task completed) render solid; pending ones
// dashed. The classification is advisory overlay data only — it never
// feeds back into cycle or critical-path computation.
type Connector struct {
	From      string
	To        string
	Start     Point
	End       Point
	Curve     int
	Satisfied bool
}

// Route computes connectors for every graph edge whose endpoints both
// occupy a row and have bars. Edges into or out of a collapsed group
// are skipped — an arrow is never drawn to a hidden row — and so are
// edges touching unscheduled tasks, which have no bar to anchor to.
func Route(g *graph.Graph, rows *layout.Rows, p timeline.Projection, tasks []task.Task) []Connector {
	byID := make(map[string]*task.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	var conns []Connector
	for _, e := range g.Edges {
		src, dst := byID[e.From], byID[e.To]
		if src == nil || dst == nil || !src.Scheduled() || !dst.Scheduled() {
			continue
		}
		srcRow, ok := rows.TaskRow[e.From]
		if !ok {
			continue
		}
		dstRow, ok := rows.TaskRow[e.To]
		if !ok {
			continue
		}

		_, srcRight := p.BarSpan(*src.Start, *src.End, src.Milestone)
		dstLeft, _ := p.BarSpan(*dst.Start, *dst.End, dst.Milestone)

		start := Point{X: srcRight, Y: rowCenter(srcRow)}
		end := Point{X: dstLeft, Y: rowCenter(dstRow)}

		conns = append(conns, Connector{
			From:      e.From,
			To:        e.To,
			Start:     start,
			End:       end,
			Curve:     curvature(end.X - start.X),
			Satisfied: src.Completed(),
		})
	}
	return conns
}

func rowCenter(row int) int {
	return row*RowHeight + RowHeight/2
}

// curvature grows with horizontal distance so adjacent-row connectors
// stay nearly straight, capped so long hops do not overlap bars.
func curvature(dx int) int {
	if dx < 0 {
		dx = -dx
	}
	c := dx / 3
	if c > CurveCap {
		c = CurveCap
	}
	return c
}
