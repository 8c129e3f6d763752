package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/application/commands"
	"sortable/internal/ports"
)

// CreateModel is the model for the new entry view
type CreateModel struct {
	ViewState
	store  ports.RankStore
	scope  string
	prompt *Prompt
}

// NewCreateModel creates a new create view model
func NewCreateModel(store ports.RankStore) *CreateModel {
	return &CreateModel{
		store:  store,
		prompt: NewPrompt("Label:", "Display text", 200),
	}
}

// SetScope sets the scope the entry is appended to and clears the form
func (m *CreateModel) SetScope(scope string) {
	m.scope = scope
	m.ClearMessage()
	m.prompt.Reset()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.prompt.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return m, m.create()
		}
	}

	return m, m.prompt.Update(msg)
}

func (m *CreateModel) create() tea.Cmd {
	store, scope, label := m.store, m.scope, m.prompt.Value()
	return func() tea.Msg {
		result, err := commands.NewCreateCommand(store, scope, label).Execute(context.Background())
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		return CreateSuccessMsg{Message: result.Message}
	}
}

// CreateSuccessMsg indicates successful creation
type CreateSuccessMsg struct {
	Message string
}

// CreateErrMsg indicates an error during creation
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	return NewViewBuilder().
		Title("New Entry").
		Subtitle("Appended at the end of "+scopeTitle(m.scope)).
		Line(m.prompt.Render()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.prompt.RenderHelp("create")).
		String()
}
