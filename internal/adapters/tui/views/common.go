package views

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/notify"
	"mdvault/internal/adapters/tui/styles"
	"mdvault/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err as an error message
func (s *ViewState) SetError(err error) {
	s.SetMessage(err.Error(), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// NotificationMsg carries a vault notification into the program
type NotificationMsg notify.Message

// WaitForNotification blocks on ch and delivers the next notification.
// It returns nil once ctx is done or ch is closed.
func WaitForNotification(ctx context.Context, ch <-chan notify.Message) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			return NotificationMsg(m)
		}
	}
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

type SwitchToSearchMsg struct{}

// SwitchToCreateMsg opens the new folder form for Parent
type SwitchToCreateMsg struct {
	Parent string
}

type SwitchToRenameMsg struct {
	Target *domain.Entry
}

type SwitchToMoveMsg struct {
	Target *domain.Entry
	Mode   MoveMode
}

type SwitchToDeleteMsg struct {
	Target *domain.Entry
}

// OpDoneMsg reports the outcome of a vault operation started by a view
type OpDoneMsg struct {
	Message string
	Reveal  string // entry to select once it shows up in the tree
	Err     error
}

// runOp executes a vault operation off the update loop
func runOp(op func(ctx context.Context) (message, reveal string, err error)) tea.Cmd {
	return func() tea.Msg {
		message, reveal, err := op(context.Background())
		return OpDoneMsg{Message: message, Reveal: reveal, Err: err}
	}
}

// newHelp returns a bubbles help model in the app's colours
func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.HelpDesc
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.HelpDesc
	h.FullSeparator = "    "
	return h
}

// displayPath shows path relative to the vault root, "/" for the root itself
func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if rel == "." {
		return "/"
	}
	return filepath.ToSlash(rel)
}

// OpenEditorMsg asks the app to run the external editor on Path
type OpenEditorMsg struct {
	Path string
}

// OpenPreviewMsg asks the app to show a rendered note
type OpenPreviewMsg struct {
	Path    string
	Name    string
	Content string
}

// OpenExternalMsg asks the app to open Path with the desktop's default application
type OpenExternalMsg struct {
	Path string
}

// StatusMsg reports the outcome of work done outside the views
type StatusMsg struct {
	Message string
	Err     error
}
