package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Row styles
	Rank = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60A5FA")). // Blue
		Width(6).
		Align(lipgloss.Right)

	RowID = lipgloss.NewStyle().
		Foreground(Muted)

	RowLabel = lipgloss.NewStyle()

	RowCursor = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	RowMarked = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Selection markers
	MarkOn  = "● "
	MarkOff = "  "

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// DirectionArrow returns the header marker for a sort direction
func DirectionArrow(descending bool) string {
	if descending {
		return "▼"
	}
	return "▲"
}
