package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/tui/views"
	"sortable/internal/domain"
	"sortable/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewCreate
	ViewDelete
	ViewMove
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state  ViewState
	list   *views.ListModel
	create *views.CreateModel
	del    *views.DeleteModel
	move   *views.MoveModel
	help   *views.HelpModel

	width  int
	height int
}

// NewApp creates a TUI over one scope of store. observer may be nil.
func NewApp(store ports.RankStore, observer ports.RankObserver, scope string, pageSize int) *App {
	return &App{
		state:  ViewList,
		list:   views.NewListModel(store, observer, scope, pageSize),
		create: views.NewCreateModel(store),
		del:    views.NewDeleteModel(store),
		move:   views.NewMoveModel(),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.list.Init()
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.move.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToAddMsg:
		a.state = ViewCreate
		a.create.SetScope(msg.Scope)
		return a, a.create.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.del.SetTarget(msg.Entry)
		return a, nil

	case views.SwitchToPageMsg:
		a.state = ViewMove
		a.move.SetTarget(len(a.list.SelectedIDs()), msg.Pages)
		return a, a.move.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToListMsg:
		a.state = ViewList
		return a, a.list.Reload()

	// Results of the secondary views
	case views.CreateSuccessMsg:
		a.state = ViewList
		a.list.SetMessage(msg.Message, false)
		return a, a.list.Reload()

	case views.CreateErrMsg:
		a.create.SetError(msg.Err)
		return a, nil

	case views.DeleteSuccessMsg:
		a.state = ViewList
		a.list.SetMessage(msg.Message, false)
		return a, a.list.Reload()

	case views.DeleteErrMsg:
		a.del.SetError(msg.Err)
		return a, nil

	case views.PageChosenMsg:
		a.state = ViewList
		return a, a.list.MoveSelection(domain.Exact(msg.Page))
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewList:
		_, cmd = a.list.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewMove:
		_, cmd = a.move.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewDelete:
		return a.del.View()
	case ViewMove:
		return a.move.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.list.View()
	}
}
