package views

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MoveModel asks for the page a selection should be moved to
type MoveModel struct {
	ViewState
	pages    int
	selected int
	prompt   *Prompt
}

// NewMoveModel creates a new move view model
func NewMoveModel() *MoveModel {
	return &MoveModel{
		prompt: NewPrompt("Target page:", "1", 9),
	}
}

// SetTarget prepares the prompt for a selection on a list of pages
func (m *MoveModel) SetTarget(selected, pages int) {
	m.selected = selected
	m.pages = pages
	m.ClearMessage()
	m.prompt.Reset()
}

// Init initializes the move view
func (m *MoveModel) Init() tea.Cmd {
	return m.prompt.Init()
}

// Update handles messages for the move view
func (m *MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PromptKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToListMsg{}
			}
		case key.Matches(msg, PromptKeys.Submit):
			page, err := strconv.Atoi(m.prompt.Value())
			if err != nil || page < 1 || page > m.pages {
				m.SetMessage(fmt.Sprintf("Enter a page between 1 and %d", m.pages), true)
				return m, nil
			}
			return m, func() tea.Msg {
				return PageChosenMsg{Page: page}
			}
		}
	}

	return m, m.prompt.Update(msg)
}

// PageChosenMsg carries the target page of an exact-page move
type PageChosenMsg struct {
	Page int
}

// View renders the move view
func (m *MoveModel) View() string {
	return NewViewBuilder().
		Title("Move To Page").
		Subtitle(fmt.Sprintf("%d selected, pages 1-%d", m.selected, m.pages)).
		Line(m.prompt.Render()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.prompt.RenderHelp("move")).
		String()
}
