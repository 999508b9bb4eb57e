package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/tui/styles"
	"mdvault/internal/application/commands"
	"mdvault/internal/domain"
)

var RenameKeys = newFormKeys("rename")

// RenameModel is the model for the rename form
type RenameModel struct {
	ViewState
	vault  *commands.Vault
	target *domain.Entry
	name   InputField
	help   help.Model
}

// NewRenameModel creates a new rename view model
func NewRenameModel(vault *commands.Vault) *RenameModel {
	return &RenameModel{
		vault: vault,
		name:  NewInputField("New name:", "name"),
		help:  newHelp(),
	}
}

// SetTarget prepares the form for entry, starting from its current name
func (m *RenameModel) SetTarget(entry *domain.Entry) {
	m.target = entry
	m.ClearMessage()
	m.name.Reset(entry.Name)
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, RenameKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, RenameKeys.Submit):
			return m, m.rename()
		}
	}

	return m, m.name.Update(msg)
}

func (m *RenameModel) rename() tea.Cmd {
	if m.target == nil {
		return nil
	}
	path, name := m.target.Path, m.name.Value()
	return runOp(func(ctx context.Context) (string, string, error) {
		res, err := m.vault.Rename(ctx, path, name)
		if err != nil {
			return "", "", err
		}
		return res.Message, res.Entry.Path, nil
	})
}

// View renders the rename view
func (m *RenameModel) View() string {
	var b strings.Builder

	title := "Rename Note"
	if m.target != nil && m.target.IsDir {
		title = "Rename Folder"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	if m.target != nil {
		b.WriteString(styles.Subtitle.Render(m.target.Name))
		b.WriteString("\n\n")
	}

	b.WriteString(m.name.View())
	b.WriteString("\n\n")
	b.WriteString(renderMessage(m.ViewState))
	b.WriteString(m.help.View(RenameKeys))

	return styles.App.Render(b.String())
}
