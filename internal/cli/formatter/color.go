package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dmateus/crewplan/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the lipgloss style for an entry status.
func StatusStyle(s domain.EntryStatus) lipgloss.Style {
	switch s {
	case domain.EntryOngoing:
		return StyleGreen
	case domain.EntryOnQueue:
		return StyleYellow
	case domain.EntryClosed:
		return StyleDim
	case domain.EntryOpen:
		return StyleBlue
	default:
		return StyleFg
	}
}

// StatusBadge returns a short colored status label such as "● ongoing".
func StatusBadge(s domain.EntryStatus) string {
	return StatusStyle(s).Render("● " + string(s))
}
