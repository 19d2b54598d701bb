package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "63"  // Indigo - titles, borders
	ColorHighlight = "33"  // Blue - keys, links
	ColorDanger    = "196" // Red - error banner, failed Luhn
	ColorSuccess   = "42"  // Green - passed Luhn
	ColorMuted     = "241" // Gray - hints, labels
	ColorText      = "252" // Light gray - values
)

// Styles contains shared style definitions.
var Styles = struct {
	Title    lipgloss.Style // Bold accent - app title
	Subtitle lipgloss.Style // Muted - tagline under the title

	Form       lipgloss.Style // Rounded box around the input
	Panel      lipgloss.Style // Result panel box
	PanelTitle lipgloss.Style // Panel heading
	Banner     lipgloss.Style // Error banner (thick left border)

	Label   lipgloss.Style // Field labels
	Value   lipgloss.Style // Field values
	Link    lipgloss.Style // Phone / website
	Hint    lipgloss.Style // Footer and help text
	Button  lipgloss.Style // "Verify BIN"
	Loading lipgloss.Style // Spinner + "Processing..."

	BadgeValid   lipgloss.Style
	BadgeInvalid lipgloss.Style
	Badge        lipgloss.Style // Country codes
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Form: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(1, 2),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 2),
	PanelTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Banner: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Foreground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Value: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Link: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Underline(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color(ColorAccent)).
		Padding(0, 2),
	Loading: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	BadgeValid: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorSuccess)),
	BadgeInvalid: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Badge: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color("237")),
}
