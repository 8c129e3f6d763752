package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/tui/styles"
)

// PromptKeyMap defines key bindings for single-line prompts
type PromptKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var PromptKeys = PromptKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// Prompt is a labelled single-line text input
type Prompt struct {
	Label string
	Input textinput.Model
}

// NewPrompt creates a focused prompt
func NewPrompt(label, placeholder string, charLimit int) *Prompt {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	input.Focus()
	return &Prompt{Label: label, Input: input}
}

// Init returns the blink command for the input
func (p *Prompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the input
func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return cmd
}

// Value returns the trimmed input
func (p *Prompt) Value() string {
	return strings.TrimSpace(p.Input.Value())
}

// Reset clears the input and focuses it again
func (p *Prompt) Reset() {
	p.Input.SetValue("")
	p.Input.Focus()
}

// Render renders the label above the framed input
func (p *Prompt) Render() string {
	return styles.InputLabel.Render(p.Label) + "\n" + styles.InputFocused.Render(p.Input.View())
}

// RenderHelp renders the help text for the prompt
func (p *Prompt) RenderHelp(submitText string) string {
	return styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render(submitText) + "  " +
		styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel")
}
