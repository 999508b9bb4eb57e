package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mdvault/internal/adapters/tui/styles"
	"mdvault/internal/application/commands"
)

// minQuery is the shortest query that is sent to the vault
const minQuery = 2

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reveal"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// ShortHelp implements help.KeyMap
func (k SearchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k SearchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	vault   *commands.Vault
	input   textinput.Model
	query   string
	results []commands.SearchResult
	cursor  int
	help    help.Model
}

// NewSearchModel creates a new search view model
func NewSearchModel(vault *commands.Vault) *SearchModel {
	input := textinput.New()
	input.Placeholder = "note or folder name"
	input.CharLimit = 255
	input.Focus()

	return &SearchModel{
		vault: vault,
		input: input,
		help:  newHelp(),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and the results
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.input.Focus()
	m.query = ""
	m.results = nil
	m.cursor = 0
	m.ClearMessage()
}

// Results returns the results for the current query
func (m *SearchModel) Results() []commands.SearchResult {
	return m.results
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
	err     error
}

// SearchSelectMsg is sent when a search result is chosen
type SearchSelectMsg struct {
	Result commands.SearchResult
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// answers to an older query arrive late while typing
		if msg.query != m.query {
			return m, nil
		}
		if msg.err != nil {
			m.SetError(msg.err)
			return m, nil
		}
		m.ClearMessage()
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor < len(m.results) {
				result := m.results[m.cursor]
				return m, func() tea.Msg { return SearchSelectMsg{Result: result} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := strings.TrimSpace(m.input.Value())
	if query == m.query {
		return m, cmd
	}
	m.query = query
	if len([]rune(query)) < minQuery {
		m.results = nil
		m.cursor = 0
		return m, cmd
	}
	return m, tea.Batch(cmd, m.search(query))
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.vault.Search(context.Background(), query)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// visibleResults is how many results fit the screen
func (m *SearchModel) visibleResults() int {
	if m.Height == 0 {
		return 10
	}
	return max(m.Height-12, 3)
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case len(m.results) > 0:
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		root, _ := m.vault.Session().Root()
		limit := m.visibleResults()
		start := 0
		if m.cursor >= limit {
			start = m.cursor - limit + 1
		}
		end := min(start+limit, len(m.results))
		for i := start; i < end; i++ {
			b.WriteString(m.renderResult(root, m.results[i], i == m.cursor))
			b.WriteString("\n")
		}
		if rest := len(m.results) - end; rest > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", rest)))
			b.WriteString("\n")
		}

	case len([]rune(m.query)) >= minQuery:
		b.WriteString(styles.MutedText.Render("No results found"))
		b.WriteString("\n")

	default:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Type at least %d characters to search", minQuery)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderMessage(m.ViewState))
	b.WriteString(m.help.View(SearchKeys))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(root string, result commands.SearchResult, selected bool) string {
	tag := "[note]  "
	if result.IsDir {
		tag = "[folder]"
	}
	text := tag + " " + displayPath(root, result.Path)

	switch {
	case selected:
		return styles.NodeSelected.Render(text)
	case result.IsDir:
		return styles.NodeFolder.Render(text)
	default:
		return text
	}
}
