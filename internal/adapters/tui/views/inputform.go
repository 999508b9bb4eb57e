package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/tui/styles"
)

// FormKeyMap defines the key bindings shared by single field forms
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func newFormKeys(submit string) FormKeyMap {
	return FormKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", submit),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// InputField is a labelled text input
type InputField struct {
	Label string
	Input textinput.Model
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 255
	return InputField{
		Label: label,
		Input: input,
	}
}

// Reset replaces the value and focuses the field
func (f *InputField) Reset(value string) {
	f.Input.SetValue(value)
	f.Input.CursorEnd()
	f.Input.Focus()
}

// Update forwards msg to the text input
func (f *InputField) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return cmd
}

// Value returns the trimmed input
func (f *InputField) Value() string {
	return strings.TrimSpace(f.Input.Value())
}

// View renders the label above the input
func (f *InputField) View() string {
	return styles.InputLabel.Render(f.Label) + "\n" + styles.InputFocused.Render(f.Input.View())
}

// renderMessage renders the view's message, if any, followed by a blank line
func renderMessage(s ViewState) string {
	if s.Message == "" {
		return ""
	}
	if s.MessageErr {
		return styles.ErrorMsg.Render(s.Message) + "\n\n"
	}
	return styles.Success.Render(s.Message) + "\n\n"
}
