// Package codec converts note text between Markdown and the editor's
// document tree.
//
// Only headings (levels 1-6), paragraphs and bold/italic runs are modeled.
// Anything else is carried through as literal text; parsing never fails.
package codec

import (
	"strings"

	"mdvault/internal/domain"
)

// MarkdownToTree parses markdown text into a document tree
func MarkdownToTree(text string) *domain.Root {
	root := domain.NewRoot()
	var paragraph *domain.Paragraph

	flush := func() {
		if paragraph != nil {
			root.Children = append(root.Children, paragraph)
			paragraph = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if line == "" {
			flush()
			continue
		}

		if level, rest, ok := parseHeading(line); ok {
			flush()
			root.Children = append(root.Children, &domain.Heading{
				Level:    level,
				Children: parseInline(rest),
			})
			continue
		}

		if paragraph == nil {
			paragraph = &domain.Paragraph{}
		}
		paragraph.Children = append(paragraph.Children, parseInline(line)...)
	}
	flush()

	return root
}

// parseHeading recognises a run of '#' followed by a space.
// Runs longer than six are capped at level six.
func parseHeading(line string) (level int, rest string, ok bool) {
	hashes := 0
	for hashes < len(line) && line[hashes] == '#' {
		hashes++
	}
	if hashes == 0 || hashes >= len(line) || line[hashes] != ' ' {
		return 0, "", false
	}
	return min(hashes, domain.MaxHeadingLevel), line[hashes+1:], true
}

// parseInline splits a line on single spaces and merges consecutive
// tokens of the same format into one run.
func parseInline(line string) []*domain.Text {
	if line == "" {
		return nil
	}

	var runs []*domain.Text
	var current []string
	format := domain.FormatNormal

	for _, token := range strings.Split(line, " ") {
		tokenFormat, word := classifyToken(token)
		if len(current) > 0 && tokenFormat != format {
			runs = append(runs, &domain.Text{Text: strings.Join(current, " "), Format: format})
			current = nil
		}
		format = tokenFormat
		current = append(current, word)
	}
	if len(current) > 0 {
		runs = append(runs, &domain.Text{Text: strings.Join(current, " "), Format: format})
	}

	return runs
}

func classifyToken(token string) (domain.TextFormat, string) {
	switch {
	case len(token) > 4 && strings.HasPrefix(token, "**") && strings.HasSuffix(token, "**"):
		return domain.FormatBold, token[2 : len(token)-2]
	case len(token) > 2 && strings.HasPrefix(token, "*") && strings.HasSuffix(token, "*") &&
		!strings.HasPrefix(token, "**"):
		return domain.FormatItalic, token[1 : len(token)-1]
	default:
		return domain.FormatNormal, token
	}
}

// TreeToMarkdown serializes a document tree back into markdown.
// Blocks are separated by a blank line; each block is a single line.
func TreeToMarkdown(root *domain.Root) string {
	if root == nil || len(root.Children) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(root.Children))
	for _, block := range root.Children {
		switch b := block.(type) {
		case *domain.Heading:
			level := min(max(b.Level, 1), domain.MaxHeadingLevel)
			line := strings.Repeat("#", level) + " " + renderRuns(b.Children)
			blocks = append(blocks, line)
		case *domain.Paragraph:
			line := renderRuns(b.Children)
			if line == "" {
				continue
			}
			blocks = append(blocks, line)
		}
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func renderRuns(runs []*domain.Text) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, renderRun(run))
	}
	return strings.Join(parts, " ")
}

// renderRun wraps each word of a merged run so the parser merges it again
func renderRun(run *domain.Text) string {
	var marker string
	switch run.Format {
	case domain.FormatBold:
		marker = "**"
	case domain.FormatItalic:
		marker = "*"
	default:
		return run.Text
	}

	words := strings.Split(run.Text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = marker + w + marker
		}
	}
	return strings.Join(words, " ")
}
