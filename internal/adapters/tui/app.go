package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/editor"
	"mdvault/internal/adapters/notify"
	"mdvault/internal/adapters/tui/views"
	"mdvault/internal/application/commands"
	"mdvault/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewPreview
	ViewHelp
	ViewCreate
	ViewRename
	ViewMove
	ViewDelete
	ViewSearch
)

// App is the main TUI application model
type App struct {
	ctx           context.Context
	vault         *commands.Vault
	editor        *editor.Opener
	launcher      ports.LinkOpener
	notifications <-chan notify.Message

	state   ViewState
	browser *views.BrowserModel
	preview *views.PreviewModel
	help    *views.HelpModel
	create  *views.CreateModel
	rename  *views.RenameModel
	move    *views.MoveModel
	delete  *views.DeleteModel
	search  *views.SearchModel

	width  int
	height int
}

// NewApp creates a new TUI application. Notifications published on
// notifications are applied to the tree as they arrive.
func NewApp(ctx context.Context, vault *commands.Vault, ed *editor.Opener, launcher ports.LinkOpener, notifications <-chan notify.Message) *App {
	return &App{
		ctx:           ctx,
		vault:         vault,
		editor:        ed,
		launcher:      launcher,
		notifications: notifications,
		state:         ViewBrowser,
		browser:       views.NewBrowserModel(vault),
		preview:       views.NewPreviewModel(),
		help:          views.NewHelpModel(),
		create:        views.NewCreateModel(vault),
		rename:        views.NewRenameModel(vault),
		move:          views.NewMoveModel(vault),
		delete:        views.NewDeleteModel(vault),
		search:        views.NewSearchModel(vault),
	}
}

// Browser returns the tree browser
func (a *App) Browser() *views.BrowserModel {
	return a.browser
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.browser.Init(), a.waitForNotification())
}

func (a *App) waitForNotification() tea.Cmd {
	if a.notifications == nil {
		return nil
	}
	return views.WaitForNotification(a.ctx, a.notifications)
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, m := range a.models() {
			if v, ok := m.(interface{ SetSize(width, height int) }); ok {
				v.SetSize(msg.Width, msg.Height)
			}
		}
		return a, nil

	case views.NotificationMsg:
		a.browser.Apply(notify.Message(msg))
		return a, a.waitForNotification()

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		if a.state == ViewPreview {
			_ = a.vault.CloseNote(a.ctx)
		}
		a.state = ViewBrowser
		return a, nil

	case views.SwitchToCreateMsg:
		a.create.SetParent(msg.Parent)
		a.state = ViewCreate
		return a, a.create.Init()

	case views.SwitchToRenameMsg:
		a.rename.SetTarget(msg.Target)
		a.state = ViewRename
		return a, a.rename.Init()

	case views.SwitchToMoveMsg:
		a.move.SetSource(msg.Target, msg.Mode)
		a.state = ViewMove
		return a, a.move.Init()

	case views.SwitchToDeleteMsg:
		a.delete.SetTarget(msg.Target)
		a.state = ViewDelete
		return a, nil

	case views.SwitchToSearchMsg:
		a.search.Reset()
		a.state = ViewSearch
		return a, a.search.Init()

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		a.browser.Reveal(msg.Result.Path)
		return a, nil

	case views.OpDoneMsg:
		// a failed form stays open so the input can be corrected
		if form := a.form(); form != nil && msg.Err != nil {
			form.SetError(msg.Err)
			return a, nil
		}
		if a.state != ViewPreview {
			a.state = ViewBrowser
		}
		a.browser.Update(msg)
		return a, nil

	case views.OpenPreviewMsg:
		a.preview.SetNote(msg.Path, msg.Name, msg.Content)
		a.state = ViewPreview
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.OpenExternalMsg:
		return a, a.launch(msg.Path, false)

	case views.OpenLinkMsg:
		return a, a.launch(msg.URL, true)

	case views.StatusMsg:
		if a.state == ViewPreview && msg.Err != nil {
			a.preview.SetError(msg.Err)
			return a, nil
		}
		a.browser.Update(msg)
		return a, nil

	case editorFinishedMsg:
		if msg.err != nil {
			a.state = ViewBrowser
			a.browser.SetMessage("editor: "+msg.err.Error(), true)
			return a, nil
		}
		if a.state == ViewPreview {
			return a, a.reopen(a.preview.Path())
		}
		return a, nil
	}

	// Delegate to current view
	_, cmd := a.current().Update(msg)
	return a, cmd
}

// current returns the model of the active view
func (a *App) current() tea.Model {
	switch a.state {
	case ViewPreview:
		return a.preview
	case ViewHelp:
		return a.help
	case ViewCreate:
		return a.create
	case ViewRename:
		return a.rename
	case ViewMove:
		return a.move
	case ViewDelete:
		return a.delete
	case ViewSearch:
		return a.search
	default:
		return a.browser
	}
}

func (a *App) models() []tea.Model {
	return []tea.Model{a.browser, a.preview, a.help, a.create, a.rename, a.move, a.delete, a.search}
}

// form returns the active input form, if any
func (a *App) form() interface{ SetError(error) } {
	switch a.state {
	case ViewCreate:
		return a.create
	case ViewRename:
		return a.rename
	case ViewMove:
		return a.move
	default:
		return nil
	}
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// launch hands target to the desktop off the update loop
func (a *App) launch(target string, link bool) tea.Cmd {
	if a.launcher == nil {
		return nil
	}
	open := a.launcher.OpenFile
	if link {
		open = a.launcher.OpenLink
	}
	return func() tea.Msg {
		if err := open(target); err != nil {
			return views.StatusMsg{Err: err}
		}
		return views.StatusMsg{Message: "Opened " + target}
	}
}

// reopen reloads the previewed note after it was edited
func (a *App) reopen(path string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.vault.OpenNote(a.ctx, path)
		if err != nil {
			return editorFinishedMsg{err: err}
		}
		return views.OpenPreviewMsg{Path: res.Path, Name: res.Name, Content: res.Content}
	}
}

// View renders the current view
func (a *App) View() string {
	return a.current().View()
}
