package views

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/tui/styles"
	"mdvault/internal/application/commands"
	"mdvault/internal/domain"
)

// MoveMode tells whether the source is moved or copied
type MoveMode int

const (
	MoveModeMove MoveMode = iota
	MoveModeCopy
)

func (m MoveMode) String() string {
	if m == MoveModeCopy {
		return "copy"
	}
	return "move"
}

// MoveKeyMap defines key bindings for the move view
type MoveKeyMap struct {
	Submit key.Binding
	Toggle key.Binding
	Cancel key.Binding
}

var MoveKeys = MoveKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "move/copy"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp implements help.KeyMap
func (k MoveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Toggle, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k MoveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MoveModel is the model for moving or copying an entry into another folder
type MoveModel struct {
	ViewState
	vault  *commands.Vault
	source *domain.Entry
	mode   MoveMode
	dest   InputField
	help   help.Model
}

// NewMoveModel creates a new move view model
func NewMoveModel(vault *commands.Vault) *MoveModel {
	return &MoveModel{
		vault: vault,
		dest:  NewInputField("Destination folder:", "empty for the vault root"),
		help:  newHelp(),
	}
}

// SetSource sets the entry to move or copy
func (m *MoveModel) SetSource(entry *domain.Entry, mode MoveMode) {
	m.source = entry
	m.mode = mode
	m.ClearMessage()
	m.dest.Reset("")
}

// Mode returns whether the form moves or copies
func (m *MoveModel) Mode() MoveMode {
	return m.mode
}

// Init initializes the move view
func (m *MoveModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the move view
func (m *MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, MoveKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, MoveKeys.Toggle):
			if m.mode == MoveModeMove {
				m.mode = MoveModeCopy
			} else {
				m.mode = MoveModeMove
			}
			return m, nil

		case key.Matches(msg, MoveKeys.Submit):
			return m, m.move()
		}
	}

	return m, m.dest.Update(msg)
}

func (m *MoveModel) move() tea.Cmd {
	if m.source == nil {
		return nil
	}

	transfer := m.vault.Move
	if m.mode == MoveModeCopy {
		transfer = m.vault.Copy
	}
	path, dest := m.source.Path, m.destination()

	return runOp(func(ctx context.Context) (string, string, error) {
		res, err := transfer(ctx, path, dest)
		if err != nil {
			return "", "", err
		}
		return res.Message, res.Entry.Path, nil
	})
}

// destination turns the vault-relative input into an absolute folder.
// Empty means the vault root.
func (m *MoveModel) destination() string {
	value := m.dest.Value()
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	root, err := m.vault.Session().Root()
	if err != nil {
		return value
	}
	return filepath.Join(root, filepath.FromSlash(value))
}

// View renders the move view
func (m *MoveModel) View() string {
	var b strings.Builder

	title := "Move"
	if m.mode == MoveModeCopy {
		title = "Copy"
	}
	if m.source != nil && m.source.IsDir {
		title += " Folder"
	} else {
		title += " Note"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	if m.source != nil {
		b.WriteString(styles.InputLabel.Render("Source:"))
		b.WriteString("\n  ")
		if root, err := m.vault.Session().Root(); err == nil {
			b.WriteString(displayPath(root, m.source.Path))
		} else {
			b.WriteString(m.source.Name)
		}
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle.Render("Folder relative to the vault root, e.g. projects/2024"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.dest.View())
	b.WriteString("\n\n")
	b.WriteString(renderMessage(m.ViewState))
	b.WriteString(m.help.View(MoveKeys))

	return styles.App.Render(b.String())
}
