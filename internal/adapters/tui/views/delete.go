package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/tui/styles"
	"sortable/internal/application/commands"
	"sortable/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store ports.RankStore
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store ports.RankStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return SwitchToListMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no target selected")}
	}

	result, err := commands.NewDeleteCommand(m.store, m.Target.Scope, m.Target.ID).Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}

	return DeleteSuccessMsg{Message: result.Message}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Message string
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Confirmation"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Target, "Delete"))
	b.WriteString("\n\n")

	// Deleting leaves a gap in the ranking
	b.WriteString(styles.MutedText.Render("  Other entries keep their ranks."))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
