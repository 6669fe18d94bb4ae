// Package style holds the colors and icons shared by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Title renders a section heading in the brand color.
var Title = lipgloss.NewStyle().Bold(true).Foreground(Iris)

// Muted renders secondary detail such as sizes and paths.
var Muted = lipgloss.NewStyle().Foreground(Slate)
