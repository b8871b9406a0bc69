// Package layout arranges tasks into category groups and assigns
// visible rows. Row indices are valid only for the current expanded
// set and are recomputed whenever group state or task data changes.
package layout

import "github.com/papapumpkin/gantry/internal/task"

// Rows is the computed vertical arrangement of the chart.
type Rows struct {
	// GroupOrder lists categories in first-seen input order, which
	// keeps rows stable across re-renders when task order is stable.
	GroupOrder []string

	// GroupRow maps each category to its header row index. Every
	// group occupies exactly one header row regardless of expand
	// state.
	GroupRow map[string]int

	// TaskRow maps task id to row index. Tasks in collapsed groups
	// occupy no row and are absent from this map.
	TaskRow map[string]int

	// Members maps each category to its task ids in input order.
	Members map[string][]string

	// Total is the number of rows occupied, headers included.
	Total int
}

// Compute assigns rows in a single linear scan: a header row per
// group, then one row per member task when the group id is in
// expanded. Collapsing a group leaves no gaps in the index sequence.
func Compute(tasks []task.Task, expanded map[string]bool) *Rows {
	rows := &Rows{
		GroupRow: make(map[string]int),
		TaskRow:  make(map[string]int),
		Members:  make(map[string][]string),
	}

	for i := range tasks {
		t := &tasks[i]
		group := t.Group()
		if _, seen := rows.Members[group]; !seen {
			rows.GroupOrder = append(rows.GroupOrder, group)
		}
		rows.Members[group] = append(rows.Members[group], t.ID)
	}

	row := 0
	for _, group := range rows.GroupOrder {
		rows.GroupRow[group] = row
		row++
		if !expanded[group] {
			continue
		}
		for _, id := range rows.Members[group] {
			rows.TaskRow[id] = row
			row++
		}
	}
	rows.Total = row

	return rows
}

// Visible reports whether the task currently occupies a row.
func (r *Rows) Visible(id string) bool {
	_, ok := r.TaskRow[id]
	return ok
}

// ExpandAll returns an expanded-set covering every category present
// in the collection.
func ExpandAll(tasks []task.Task) map[string]bool {
	expanded := make(map[string]bool)
	for i := range tasks {
		expanded[tasks[i].Group()] = true
	}
	return expanded
}
