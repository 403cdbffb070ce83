package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"loupe/internal/severity"
)

// flavor is the active catppuccin palette; ApplyTheme swaps it.
var flavor catppuccin.Flavour = catppuccin.Mocha

// Header styles
var (
	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	noticeStyle lipgloss.Style
	errorStyle  lipgloss.Style
)

// List item styles
var (
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style
	pinMarkStyle      lipgloss.Style
	mutedStyle        lipgloss.Style
)

// Content pane styles
var (
	gutterStyle      lipgloss.Style
	placeholderStyle lipgloss.Style
	sidebarStyle     lipgloss.Style
	filterLineStyle  lipgloss.Style
	badgeOffStyle    lipgloss.Style
)

// Help style
var helpStyle lipgloss.Style

// severityStyles colors log lines by their classified severity.
var severityStyles map[severity.Tag]lipgloss.Style

func init() {
	ApplyTheme("mocha")
}

// ApplyTheme rebuilds every style from the named catppuccin flavor.
// Unknown names fall back to mocha.
func ApplyTheme(name string) {
	switch name {
	case "latte":
		flavor = catppuccin.Latte
	case "frappe":
		flavor = catppuccin.Frappe
	case "macchiato":
		flavor = catppuccin.Macchiato
	default:
		flavor = catppuccin.Mocha
	}

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(flavor.Mauve().Hex))

	statusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Overlay1().Hex))

	noticeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Peach().Hex))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Red().Hex)).
		Bold(true).
		Padding(1)

	selectedItemStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(flavor.Surface1().Hex)).
		Foreground(lipgloss.Color(flavor.Text().Hex)).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Text().Hex))

	pinMarkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Yellow().Hex))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Overlay1().Hex))

	gutterStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Surface2().Hex))

	placeholderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Overlay0().Hex)).
		Padding(1, 2)

	sidebarStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color(flavor.Surface1().Hex))

	filterLineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Subtext0().Hex))

	badgeOffStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Surface2().Hex)).
		Strikethrough(true)

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(flavor.Overlay1().Hex))

	severityStyles = map[severity.Tag]lipgloss.Style{
		severity.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Red().Hex)),
		severity.Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Yellow().Hex)),
		severity.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Blue().Hex)),
		severity.Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Teal().Hex)),
		severity.Trace:   lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Overlay1().Hex)),
		severity.Verbose: lipgloss.NewStyle().Foreground(lipgloss.Color(flavor.Overlay0().Hex)),
	}
}

// styleForSeverity returns the line style for a severity tag.
func styleForSeverity(tag severity.Tag) lipgloss.Style {
	if st, ok := severityStyles[tag]; ok {
		return st
	}
	return normalItemStyle
}
