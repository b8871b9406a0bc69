package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/gantry/internal/engine"
	"github.com/papapumpkin/gantry/internal/layout"
	"github.com/papapumpkin/gantry/internal/task"
	"github.com/papapumpkin/gantry/internal/telemetry"
	"github.com/papapumpkin/gantry/internal/timeline"
	"github.com/papapumpkin/gantry/internal/ui"
)

// rowKind distinguishes group header rows from task rows.
type rowKind int

const (
	rowGroup rowKind = iota
	rowTask
)

// rowRef identifies what occupies one visible chart row.
type rowRef struct {
	kind rowKind
	id   string // group name or task id
}

// Model is the root BubbleTea model: a scrollable, zoomable Gantt
// chart over one task collection, with live reload from the plan
// file.
type Model struct {
	Keys     KeyMap
	PlanName string

	// Loader re-reads the task collection; nil disables reload.
	Loader func() ([]task.Task, error)

	// Changes signals plan file modifications; nil disables watching.
	Changes <-chan struct{}

	Emitter *telemetry.Emitter

	tasks    []task.Task
	opts     engine.Options
	expanded map[string]bool
	snap     *engine.Snapshot
	rows     []rowRef
	cursor   int
	width    int
	height   int
	status   string
}

// NewModel builds the initial model and computes the first snapshot.
func NewModel(planName string, tasks []task.Task, opts engine.Options) Model {
	m := Model{
		Keys:     DefaultKeyMap(),
		PlanName: planName,
		tasks:    tasks,
		opts:     opts,
		expanded: opts.Expanded,
	}
	if m.expanded == nil {
		m.expanded = layout.ExpandAll(tasks)
	}
	m.recompute()
	return m
}

// Snapshot exposes the current derived state, mainly for tests.
func (m *Model) Snapshot() *engine.Snapshot { return m.snap }

// Cursor returns the selected visible row index.
func (m *Model) Cursor() int { return m.cursor }

func (m *Model) recompute() {
	m.opts.Expanded = m.expanded
	m.snap = engine.Compute(m.tasks, m.opts)

	m.rows = make([]rowRef, m.snap.Rows.Total)
	for _, group := range m.snap.Rows.GroupOrder {
		m.rows[m.snap.Rows.GroupRow[group]] = rowRef{kind: rowGroup, id: group}
	}
	for id, row := range m.snap.Rows.TaskRow {
		m.rows[row] = rowRef{kind: rowTask, id: id}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the watcher channel and converts a change
// notification into a message. Re-armed after every reload.
func (m Model) waitForChange() tea.Cmd {
	if m.Changes == nil {
		return nil
	}
	ch := m.Changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return MsgPlanChanged{}
	}
}

func (m Model) reload() tea.Msg {
	if m.Loader == nil {
		return nil
	}
	tasks, err := m.Loader()
	if err != nil {
		return MsgLoadFailed{Err: err}
	}
	return MsgPlanLoaded{Tasks: tasks}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MsgPlanChanged:
		return m, tea.Batch(m.reload, m.waitForChange())

	case MsgPlanLoaded:
		m.tasks = msg.Tasks
		m.pruneExpanded()
		m.recompute()
		m.status = "plan reloaded"
		m.emit(telemetry.KindPlanReloaded, nil)
		return m, nil

	case MsgLoadFailed:
		m.status = "reload failed: " + msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.Keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.Keys.Toggle):
		if m.cursor < len(m.rows) && m.rows[m.cursor].kind == rowGroup {
			group := m.rows[m.cursor].id
			if m.expanded[group] {
				delete(m.expanded, group)
			} else {
				m.expanded[group] = true
			}
			m.recompute()
			m.emit(telemetry.KindGroupToggled, map[string]any{
				"group":    group,
				"expanded": m.expanded[group],
			})
		}

	case key.Matches(msg, m.Keys.ZoomIn):
		m.setZoom(m.opts.Zoom - 1)

	case key.Matches(msg, m.Keys.ZoomOut):
		m.setZoom(m.opts.Zoom + 1)

	case key.Matches(msg, m.Keys.Reload):
		return m, m.reload
	}
	return m, nil
}

func (m *Model) setZoom(z timeline.Zoom) {
	if z < timeline.ZoomDay || z > timeline.ZoomQuarter {
		return
	}
	m.opts.Zoom = z
	m.recompute()
	m.status = "zoom: " + z.String()
	m.emit(telemetry.KindZoomChanged, map[string]any{"zoom": z.String()})
}

// pruneExpanded drops expand state for groups that no longer exist
// after a reload.
func (m *Model) pruneExpanded() {
	live := make(map[string]bool)
	for i := range m.tasks {
		live[m.tasks[i].Group()] = true
	}
	for group := range m.expanded {
		if !live[group] {
			delete(m.expanded, group)
		}
	}
}

func (m *Model) emit(kind string, data map[string]any) {
	_ = m.Emitter.Emit(telemetry.Event{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Plan:      m.PlanName,
		Data:      data,
	})
}

func (m Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	var sb strings.Builder
	sb.WriteString(m.statusBarView(width))
	sb.WriteByte('\n')

	renderer := &ui.GanttRenderer{Width: width - 2, UseColor: true}
	chart := renderer.Render(m.snap)
	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")
	// The first two chart lines are the calendar header and rule;
	// visible row i sits at line 2+i.
	for i, line := range lines {
		indicator := " "
		if i-2 == m.cursor {
			indicator = styleSelected.Render(selectionIndicator)
		}
		sb.WriteString(indicator)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(m.detailView())
	sb.WriteString(m.footerView(width))
	return sb.String()
}

func (m Model) statusBarView(width int) string {
	parts := []string{
		styleStatusLabel.Render("plan") + " " + styleStatusValue.Render(m.PlanName),
		styleStatusLabel.Render("zoom") + " " + styleStatusValue.Render(m.opts.Zoom.String()),
		styleStatusLabel.Render("span") + " " + styleStatusValue.Render(fmt.Sprintf("%dd", m.snap.Schedule.TotalDuration)),
	}
	if m.snap.HasCycles() {
		parts = append(parts, styleStatusWarn.Render(fmt.Sprintf("↻ %d cycle(s)", len(m.snap.Cycles))))
	}
	if m.status != "" {
		parts = append(parts, styleDetailLabel.Render(m.status))
	}
	return styleStatusBar.Width(width).Render(strings.Join(parts, "  "))
}

// detailView shows schedule figures for the selected task, or member
// counts for a selected group.
func (m Model) detailView() string {
	if m.cursor >= len(m.rows) {
		return ""
	}
	ref := m.rows[m.cursor]

	if ref.kind == rowGroup {
		n := len(m.snap.Rows.Members[ref.id])
		return styleDetailLabel.Render("group ") + styleDetailValue.Render(ref.id) +
			styleDetailLabel.Render(fmt.Sprintf("  %d task(s)", n)) + "\n"
	}

	t := m.snap.Task(ref.id)
	if t == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(styleDetailValue.Render(t.Title))
	sb.WriteString(styleDetailLabel.Render("  " + string(t.Status)))
	if e, ok := m.snap.Schedule.Schedule[ref.id]; ok {
		sb.WriteString(styleDetailLabel.Render(fmt.Sprintf("  es %d  ef %d  float %d", e.EarliestStart, e.EarliestFinish, e.Float)))
		if e.Critical {
			sb.WriteString("  " + styleCritical.Render("critical"))
		}
	} else {
		sb.WriteString("  " + styleStatusWarn.Render("unschedulable"))
	}
	if len(t.DependsOn) > 0 {
		sb.WriteString(styleDetailLabel.Render("  after " + strings.Join(t.DependsOn, ", ")))
	}
	sb.WriteByte('\n')
	return sb.String()
}
