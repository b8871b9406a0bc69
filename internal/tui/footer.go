package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// compactWidth is the terminal width below which the footer drops
// keybinding descriptions.
const compactWidth = 60

// footerView renders keybinding hints on a single line.
func (m Model) footerView(width int) string {
	bindings := []key.Binding{
		m.Keys.Up, m.Keys.Down, m.Keys.Toggle,
		m.Keys.ZoomIn, m.Keys.ZoomOut, m.Keys.Reload, m.Keys.Quit,
	}
	compact := width < compactWidth

	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		if compact {
			parts = append(parts, styleFooterKey.Render(help.Key))
			continue
		}
		parts = append(parts, styleFooterKey.Render(help.Key)+styleFooterSep.Render(":")+styleFooterDesc.Render(help.Desc))
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	return styleFooter.Width(width).Render(strings.Join(parts, sep))
}
