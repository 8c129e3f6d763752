package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/tui/styles"
	"sortable/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel provides a base for confirmation-style views
type ConfirmationModel struct {
	ViewState
	Target *domain.Entry
	Keys   ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetTarget sets the entry the confirmation is about
func (m *ConfirmationModel) SetTarget(e domain.Entry) {
	m.Target = &e
	m.ClearMessage()
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders the rank, ID and label of the target entry
func RenderTargetInfo(e *domain.Entry, action string) string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(action + " entry:"))
	b.WriteString("\n")
	b.WriteString(styles.Rank.Render(fmt.Sprint(e.Rank)))
	b.WriteString("  ")
	b.WriteString(e.ID)
	b.WriteString(" ")
	b.WriteString(e.Label)

	return b.String()
}
