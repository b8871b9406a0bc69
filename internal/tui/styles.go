package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan — primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold — attention
	colorSuccess    = lipgloss.Color("#00E676") // Green — completed
	colorDanger     = lipgloss.Color("#FF5252") // Red — critical path / errors
	colorMuted      = lipgloss.Color("#636363") // Gray — de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray — normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface — status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface — footer bg
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusWarn = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
)

// Detail line styles for the selected row.
var (
	styleDetailLabel = lipgloss.NewStyle().Foreground(colorMuted)
	styleDetailValue = lipgloss.NewStyle().Foreground(colorWhite)
	styleCritical    = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleFooterKey  = lipgloss.NewStyle().Foreground(colorPrimary)
	styleFooterSep  = lipgloss.NewStyle().Foreground(colorMuted)
	styleFooterDesc = lipgloss.NewStyle().Foreground(colorMutedLight)
)

var styleSelected = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
