package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/tui/styles"
	"mdvault/internal/application/commands"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	vault *commands.Vault
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(vault *commands.Vault) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		vault:             vault,
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
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return SwitchToBrowserMsg{}
	}
	res, err := m.vault.Delete(context.Background(), m.Target.Path)
	if err != nil {
		return OpDoneMsg{Err: err}
	}
	return OpDoneMsg{Message: res.Message}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This cannot be undone."))
	b.WriteString("\n\n")

	root, _ := m.vault.Session().Root()
	b.WriteString(RenderTargetInfo(root, m.Target, "Delete"))
	b.WriteString("\n\n")

	if m.Target != nil && m.Target.IsDir {
		b.WriteString(styles.MutedText.Render("  Everything inside the folder goes with it."))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
