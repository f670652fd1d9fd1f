// Package style provides the colors and icons shared by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#0EA5E9")
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
	Arrow   = "→"
	Minus   = "-"
	Plus    = "+"
)

// KindIcon returns the marker printed in front of a planned task of the given kind.
func KindIcon(kind string) string {
	switch kind {
	case "delete":
		return Minus
	case "convert", "copy":
		return Plus
	default:
		return Warning
	}
}

// KindColor returns the color a planned task of the given kind is rendered in.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "delete":
		return Red
	case "convert":
		return Accent
	case "copy":
		return Green
	default:
		return Yellow
	}
}
