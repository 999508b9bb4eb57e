package views

import (
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"mdvault/internal/adapters/tui/styles"
)

// PreviewKeyMap defines key bindings for the note preview
type PreviewKeyMap struct {
	Close    key.Binding
	Edit     key.Binding
	NextLink key.Binding
	OpenLink key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "back"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	NextLink: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next link"),
	),
	OpenLink: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open link"),
	),
}

// linkPattern matches bare web links; markdown link targets end at ")"
var linkPattern = regexp.MustCompile(`https?://[^\s)>\]]+`)

// Links returns the distinct web links in a note, in order of appearance
func Links(content string) []string {
	var links []string
	seen := make(map[string]bool)
	for _, l := range linkPattern.FindAllString(content, -1) {
		l = strings.TrimRight(l, ".,;:!?")
		if !seen[l] {
			seen[l] = true
			links = append(links, l)
		}
	}
	return links
}

// OpenLinkMsg asks the app to open URL in the browser
type OpenLinkMsg struct {
	URL string
}

// PreviewModel shows a note rendered with glamour
type PreviewModel struct {
	ViewState
	path     string
	name     string
	content  string
	style    string
	links    []string
	link     int
	viewport viewport.Model
}

// NewPreviewModel creates a preview. The glamour style comes from
// $GLAMOUR_STYLE and defaults to dark.
func NewPreviewModel() *PreviewModel {
	style := os.Getenv("GLAMOUR_STYLE")
	if style == "" {
		style = "dark"
	}
	return &PreviewModel{
		style:    style,
		viewport: viewport.New(80, 20),
	}
}

// Path returns the previewed note
func (m *PreviewModel) Path() string {
	return m.path
}

// SetNote replaces the previewed note
func (m *PreviewModel) SetNote(path, name, content string) {
	m.path = path
	m.name = name
	m.content = content
	m.links = Links(content)
	m.link = 0
	m.render()
}

// SetSize updates the view dimensions and re-wraps the note
func (m *PreviewModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.viewport.Width = max(width-6, 20)
	m.viewport.Height = max(height-8, 5)
	m.render()
}

func (m *PreviewModel) render() {
	out, err := RenderMarkdown(m.content, m.style, m.viewport.Width)
	if err != nil {
		m.SetError(err)
		out = m.content
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
}

// RenderMarkdown renders note text for the terminal
func RenderMarkdown(content, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// Init initializes the preview
func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, PreviewKeys.Close):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, PreviewKeys.Edit):
			path := m.path
			return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
		case key.Matches(msg, PreviewKeys.NextLink):
			if len(m.links) > 0 {
				m.link = (m.link + 1) % len(m.links)
			}
			return m, nil
		case key.Matches(msg, PreviewKeys.OpenLink):
			if link := m.SelectedLink(); link != "" {
				return m, func() tea.Msg { return OpenLinkMsg{URL: link} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SelectedLink returns the link "o" opens, or "" when the note has none
func (m *PreviewModel) SelectedLink() string {
	if m.link < len(m.links) {
		return m.links[m.link]
	}
	return ""
}

// View renders the preview
func (m *PreviewModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(m.name))
	b.WriteString("\n")
	b.WriteString(styles.Preview.Render(m.viewport.View()))
	b.WriteString("\n")
	if m.Message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n")
	}
	if link := m.SelectedLink(); link != "" {
		b.WriteString(styles.MutedText.Render("link: ") + styles.SearchMatch.Render(link))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("back"))
	b.WriteString(styles.HelpSeparator.String())
	b.WriteString(styles.HelpKey.Render("e") + " " + styles.HelpDesc.Render("edit"))
	b.WriteString(styles.HelpSeparator.String())
	b.WriteString(styles.HelpKey.Render("j/k") + " " + styles.HelpDesc.Render("scroll"))
	if len(m.links) > 0 {
		b.WriteString(styles.HelpSeparator.String())
		b.WriteString(styles.HelpKey.Render("tab/o") + " " + styles.HelpDesc.Render("next/open link"))
	}
	return styles.App.Render(b.String())
}
