package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToListMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sortable Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Reorder a ranked list one entry or one page at a time"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpBinding(ListKeys.Up, ListKeys.Down, "Move cursor up/down"))
	b.WriteString(helpBinding(ListKeys.PrevPage, ListKeys.NextPage, "Previous/next page"))
	b.WriteString(helpLine("o", "Reverse sort direction"))
	b.WriteString(helpLine("r", "Reload"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Reordering"))
	b.WriteString("\n")
	b.WriteString(helpBinding(ListKeys.MoveUp, ListKeys.MoveDown, "Move entry one position"))
	b.WriteString(helpLine("space / x", "Select entry on this page"))
	b.WriteString(helpLine("b / f", "Move selection to previous/next page"))
	b.WriteString(helpLine("g / G", "Move selection to first/last page"))
	b.WriteString(helpLine("p", "Move selection to a page"))
	b.WriteString(styles.MutedText.Render("  Without a selection the entry under the cursor is moved."))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Entries"))
	b.WriteString("\n")
	b.WriteString(helpLine("n", "Append new entry"))
	b.WriteString(helpLine("d", "Delete entry"))
	b.WriteString(helpLine("y", "Copy entry ID"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func helpBinding(a, b key.Binding, desc string) string {
	return helpLine(a.Help().Key+" / "+b.Help().Key, desc)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
