package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sortable/internal/adapters/tui/styles"
	"sortable/internal/application"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
	"sortable/internal/ports"
)

// ListKeyMap defines key bindings for the ranked list view
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Select   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Back     key.Binding
	Forward  key.Binding
	First    key.Binding
	Last     key.Binding
	ToPage   key.Binding
	Reverse  key.Binding
	Copy     key.Binding
	New      key.Binding
	Delete   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "select"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Back: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "to prev page"),
	),
	Forward: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "to next page"),
	),
	First: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "to first page"),
	),
	Last: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "to last page"),
	),
	ToPage: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "to page..."),
	),
	Reverse: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "reverse"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ListModel shows one scope of a ranked collection a page at a time and
// reorders it in place
type ListModel struct {
	ViewState
	store     ports.RankStore
	observer  ports.RankObserver
	scope     string
	direction domain.Direction
	pager     *Paginator
	entries   []domain.Entry // Rows of the current page
	actions   []string
	selected  map[string]bool
	loaded    bool
	copyText  func(string) error
}

// NewListModel creates a list over scope. observer may be nil.
func NewListModel(store ports.RankStore, observer ports.RankObserver, scope string, pageSize int) *ListModel {
	return &ListModel{
		store:    store,
		observer: observer,
		scope:    scope,
		pager:    NewPaginator(pageSize),
		selected: make(map[string]bool),
		copyText: clipboard.WriteAll,
	}
}

type pageLoadedMsg struct {
	result *commands.ListResult
}

type errMsg struct {
	err error
}

type movedMsg struct {
	result *commands.MoveResult
	offset int // Display offset the moved entry ends at
}

type bulkMovedMsg struct {
	result *commands.BulkMoveResult
	err    error
}

// Init initializes the list
func (m *ListModel) Init() tea.Cmd {
	return m.loadPage
}

// Scope returns the key of the listed scope
func (m *ListModel) Scope() string {
	return m.scope
}

// PageSize returns the rows per page
func (m *ListModel) PageSize() int {
	return m.pager.PageSize()
}

// Reload reloads the current page from the store
func (m *ListModel) Reload() tea.Cmd {
	return m.loadPage
}

func (m *ListModel) loadPage() tea.Msg {
	ctx := context.Background()
	page := m.pager.CurrentPage()

	res, err := commands.NewListCommand(m.store, m.scope, page, m.pager.PageSize(), m.direction).Execute(ctx)
	var pageErr *application.PageError
	if errors.As(err, &pageErr) {
		// The list shrank under the cursor
		res, err = commands.NewListCommand(m.store, m.scope, pageErr.Pages, m.pager.PageSize(), m.direction).Execute(ctx)
	}
	if err != nil {
		return errMsg{err}
	}
	return pageLoadedMsg{res}
}

// Update handles messages for the list
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case pageLoadedMsg:
		m.applyPage(msg.result)
		return m, nil

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case movedMsg:
		m.SetMessage(msg.result.Message, false)
		if len(msg.result.Changes) == 0 {
			return m, nil
		}
		m.pager.SetCursor(msg.offset)
		return m, m.loadPage

	case bulkMovedMsg:
		return m, m.finishBulkMove(msg)

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, ListKeys.Quit):
		return tea.Quit

	case key.Matches(msg, ListKeys.Up):
		return m.moveCursor(m.pager.CursorUp)

	case key.Matches(msg, ListKeys.Down):
		return m.moveCursor(m.pager.CursorDown)

	case key.Matches(msg, ListKeys.PrevPage):
		return m.moveCursor(m.pager.PrevPage)

	case key.Matches(msg, ListKeys.NextPage):
		return m.moveCursor(m.pager.NextPage)

	case key.Matches(msg, ListKeys.Select):
		if e := m.CursorEntry(); e != nil {
			if m.selected[e.ID] {
				delete(m.selected, e.ID)
			} else {
				m.selected[e.ID] = true
			}
		}
		return nil

	case key.Matches(msg, ListKeys.MoveUp):
		return m.moveEntry(-1)

	case key.Matches(msg, ListKeys.MoveDown):
		return m.moveEntry(1)

	case key.Matches(msg, ListKeys.Back):
		return m.MoveSelection(domain.Back(1))

	case key.Matches(msg, ListKeys.Forward):
		return m.MoveSelection(domain.Forward(1))

	case key.Matches(msg, ListKeys.First):
		return m.MoveSelection(domain.First())

	case key.Matches(msg, ListKeys.Last):
		return m.MoveSelection(domain.Last())

	case key.Matches(msg, ListKeys.ToPage):
		if len(m.SelectedIDs()) == 0 {
			return nil
		}
		pages := m.pager.TotalPages()
		return func() tea.Msg {
			return SwitchToPageMsg{Pages: pages}
		}

	case key.Matches(msg, ListKeys.Reverse):
		if m.direction == domain.Ascending {
			m.direction = domain.Descending
		} else {
			m.direction = domain.Ascending
		}
		m.pager.SetCursor(0)
		m.clearSelection()
		return m.loadPage

	case key.Matches(msg, ListKeys.Copy):
		if e := m.CursorEntry(); e != nil {
			if err := m.copyText(e.ID); err != nil {
				m.SetMessage(fmt.Sprintf("Failed to copy: %v", err), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", e.ID), false)
			}
		}
		return nil

	case key.Matches(msg, ListKeys.New):
		scope := m.scope
		return func() tea.Msg {
			return SwitchToAddMsg{Scope: scope}
		}

	case key.Matches(msg, ListKeys.Delete):
		if e := m.CursorEntry(); e != nil {
			entry := *e
			return func() tea.Msg {
				return SwitchToDeleteMsg{Entry: entry}
			}
		}
		return nil

	case key.Matches(msg, ListKeys.Reload):
		return m.loadPage

	case key.Matches(msg, ListKeys.Help):
		return func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}
	return nil
}

// moveCursor runs step and reloads when the cursor lands on another page
func (m *ListModel) moveCursor(step func() bool) tea.Cmd {
	page := m.pager.CurrentPage()
	if !step() || m.pager.CurrentPage() == page {
		return nil
	}
	m.clearSelection()
	return m.loadPage
}

// moveEntry moves the entry under the cursor by delta display positions
func (m *ListModel) moveEntry(delta int) tea.Cmd {
	e := m.CursorEntry()
	if e == nil {
		return nil
	}
	start := e.Rank
	offset := m.pager.Cursor() + delta
	if offset < 0 || offset >= m.pager.Total() {
		return func() tea.Msg {
			return movedMsg{result: &commands.MoveResult{Message: "Nothing to move"}, offset: offset}
		}
	}
	// Ranks may have gaps after deletes, so the target is the neighbour's rank
	end, onPage := 0, false
	if i := m.pager.CursorInPage() + delta; i >= 0 && i < len(m.entries) {
		end, onPage = m.entries[i].Rank, true
	}
	store, observer, scope, dir := m.store, m.observer, m.scope, m.direction

	return func() tea.Msg {
		ctx := context.Background()
		if !onPage {
			// Neighbour sits on the adjacent page
			found, err := store.ListRange(ctx, scope, dir, offset, 1)
			if err != nil {
				return errMsg{err}
			}
			if len(found) == 0 {
				return movedMsg{result: &commands.MoveResult{Message: "Nothing to move"}, offset: offset}
			}
			end = found[0].Rank
		}
		res, err := commands.NewMoveCommand(store, observer, scope, start, end).Execute(ctx)
		if err != nil {
			return errMsg{err}
		}
		return movedMsg{result: res, offset: offset}
	}
}

// MoveSelection moves the selected entries, or the entry under the cursor
// when nothing is selected, to dest
func (m *ListModel) MoveSelection(dest domain.Destination) tea.Cmd {
	ids := m.SelectedIDs()
	if len(ids) == 0 {
		return nil
	}
	cmd := commands.NewBulkMoveCommand(m.store, m.observer, m.scope, ids,
		m.pager.CurrentPage(), dest, m.direction, m.pager.PageSize())

	return func() tea.Msg {
		res, err := cmd.Execute(context.Background())
		return bulkMovedMsg{result: res, err: err}
	}
}

func (m *ListModel) finishBulkMove(msg bulkMovedMsg) tea.Cmd {
	res := msg.result
	if msg.err != nil {
		m.SetError(msg.err)
		if res == nil || res.Moved == 0 {
			return nil
		}
		// Part of the batch landed; show where the ranks are now
		m.clearSelection()
		return m.loadPage
	}
	if res.Skipped {
		m.SetMessage(res.Message, false)
		return nil
	}
	m.SetMessage(res.Message, false)
	m.clearSelection()
	m.pager.GoToPage(res.TargetPage)
	return m.loadPage
}

func (m *ListModel) applyPage(res *commands.ListResult) {
	m.loaded = true
	cursor := m.pager.Cursor()
	m.pager.SetTotal(res.Count)
	if m.pager.CurrentPage() != res.Page {
		m.pager.GoToPage(res.Page)
	} else {
		m.pager.SetCursor(cursor)
	}
	m.entries = res.Entries
	m.actions = res.Actions

	onPage := make(map[string]bool, len(res.Entries))
	for _, e := range res.Entries {
		onPage[e.ID] = true
	}
	for id := range m.selected {
		if !onPage[id] {
			delete(m.selected, id)
		}
	}
}

func (m *ListModel) clearSelection() {
	clear(m.selected)
}

// CursorEntry returns the entry under the cursor, nil before the first load
func (m *ListModel) CursorEntry() *domain.Entry {
	i := m.pager.CursorInPage()
	if i >= 0 && i < len(m.entries) {
		return &m.entries[i]
	}
	return nil
}

// SelectedIDs returns the selected entries of the current page in display
// order, or the entry under the cursor when none is selected
func (m *ListModel) SelectedIDs() []string {
	var ids []string
	for _, e := range m.entries {
		if m.selected[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		if e := m.CursorEntry(); e != nil {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// View renders the list
func (m *ListModel) View() string {
	if !m.loaded {
		if m.Message != "" {
			return NewViewBuilder().Message(m.Message, m.MessageErr).String()
		}
		return "Loading..."
	}

	v := NewViewBuilder().
		Title("Sortable " + scopeTitle(m.scope)).
		Line(RenderPageInfo(m.pager.CurrentPage(), m.pager.TotalPages(), m.pager.Total(), m.direction == domain.Descending)).
		BlankLine()

	if len(m.entries) == 0 {
		v.Muted("No entries. Press n to add one.")
	}
	cursor := m.pager.CursorInPage()
	for i, e := range m.entries {
		v.Line(m.renderRow(e, i == cursor))
	}
	v.BlankLine()

	if n := len(m.selected); n > 0 {
		v.Line(styles.RowMarked.Render(fmt.Sprintf("%d selected", n)))
	}
	if len(m.actions) > 0 {
		v.Muted("actions: " + strings.Join(m.actions, ", "))
	}
	v.Message(m.Message, m.MessageErr)

	return v.Help(ListKeys.Select, ListKeys.MoveUp, ListKeys.MoveDown,
		ListKeys.Back, ListKeys.Forward, ListKeys.ToPage, ListKeys.Help, ListKeys.Quit).String()
}

func (m *ListModel) renderRow(e domain.Entry, atCursor bool) string {
	mark := styles.MarkOff
	if m.selected[e.ID] {
		mark = styles.MarkOn
	}
	var text string
	switch {
	case atCursor:
		text = styles.RowCursor.Render(e.ID + " " + e.Label)
	case m.selected[e.ID]:
		text = styles.RowMarked.Render(e.ID + " " + e.Label)
	default:
		text = styles.RowID.Render(e.ID) + " " + styles.RowLabel.Render(e.Label)
	}
	return fmt.Sprintf("%s%s  %s", styles.RowMarked.Render(mark), styles.Rank.Render(fmt.Sprint(e.Rank)), text)
}

func scopeTitle(scope string) string {
	if scope == domain.TableScope {
		return "(table)"
	}
	return scope
}

// Messages for view switching
type SwitchToAddMsg struct {
	Scope string
}

type SwitchToDeleteMsg struct {
	Entry domain.Entry
}

// SwitchToPageMsg opens the target page prompt for the current selection
type SwitchToPageMsg struct {
	Pages int
}

type SwitchToHelpMsg struct{}

type SwitchToListMsg struct{}
