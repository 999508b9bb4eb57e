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
)

var CreateKeys = newFormKeys("create")

// CreateModel is the model for the new folder form
type CreateModel struct {
	ViewState
	vault  *commands.Vault
	parent string
	name   InputField
	help   help.Model
}

// NewCreateModel creates a new create view model
func NewCreateModel(vault *commands.Vault) *CreateModel {
	return &CreateModel{
		vault: vault,
		name:  NewInputField("Name:", "Untitled"),
		help:  newHelp(),
	}
}

// SetParent prepares the form for a folder inside parent.
// An empty parent means the vault root.
func (m *CreateModel) SetParent(parent string) {
	m.parent = parent
	m.ClearMessage()
	m.name.Reset("")
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CreateKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, CreateKeys.Submit):
			return m, m.create()
		}
	}

	return m, m.name.Update(msg)
}

func (m *CreateModel) create() tea.Cmd {
	parent, name := m.parent, m.name.Value()
	return runOp(func(ctx context.Context) (string, string, error) {
		res, err := m.vault.CreateFolder(ctx, parent, name)
		if err != nil {
			return "", "", err
		}
		return res.Message, res.Entry.Path, nil
	})
}

// View renders the create view
func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Folder"))
	b.WriteString("\n\n")

	if root, err := m.vault.Session().Root(); err == nil {
		parent := m.parent
		if parent == "" {
			parent = root
		}
		b.WriteString(styles.Subtitle.Render("Inside " + displayPath(root, parent)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.name.View())
	b.WriteString("\n\n")
	b.WriteString(renderMessage(m.ViewState))
	b.WriteString(m.help.View(CreateKeys))

	return styles.App.Render(b.String())
}
