package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mdvault/internal/domain"
)

// ErrUnsupportedNode is returned when a payload contains a node the tree cannot hold
var ErrUnsupportedNode = errors.New("unsupported document node")

// wireNode is the editor's serialized node shape. Fields irrelevant to a
// given type are omitted on encode and ignored on decode.
type wireNode struct {
	Children  []*wireNode `json:"children,omitempty"`
	Direction *string     `json:"direction,omitempty"`
	Format    any         `json:"format"`
	Indent    *int        `json:"indent,omitempty"`
	Type      string      `json:"type"`
	Version   int         `json:"version"`

	Tag    string  `json:"tag,omitempty"`
	Detail *int    `json:"detail,omitempty"`
	Mode   string  `json:"mode,omitempty"`
	Style  *string `json:"style,omitempty"`
	Text   *string `json:"text,omitempty"`
}

type wireDocument struct {
	Root *wireNode `json:"root"`
}

// EncodeDocument serializes a tree into the editor's JSON form
func EncodeDocument(root *domain.Root) ([]byte, error) {
	if root == nil {
		root = domain.NewRoot()
	}
	return json.Marshal(wireDocument{Root: encodeRoot(root)})
}

func encodeRoot(root *domain.Root) *wireNode {
	direction := root.Direction
	if direction == "" {
		direction = "ltr"
	}
	n := elementNode(root.Type(), direction)
	n.Children = make([]*wireNode, 0, len(root.Children))
	for _, block := range root.Children {
		n.Children = append(n.Children, encodeBlock(block))
	}
	return n
}

func encodeBlock(block domain.Block) *wireNode {
	n := elementNode(block.Type(), "ltr")
	if h, ok := block.(*domain.Heading); ok {
		n.Tag = "h" + strconv.Itoa(h.Level)
	}
	n.Children = make([]*wireNode, 0, len(block.Runs()))
	for _, run := range block.Runs() {
		n.Children = append(n.Children, encodeText(run))
	}
	return n
}

func elementNode(nodeType, direction string) *wireNode {
	indent := 0
	return &wireNode{
		Direction: &direction,
		Format:    "",
		Indent:    &indent,
		Type:      nodeType,
		Version:   domain.SchemaVersion,
	}
}

func encodeText(t *domain.Text) *wireNode {
	detail := 0
	style := ""
	text := t.Text
	return &wireNode{
		Detail:  &detail,
		Format:  int(t.Format),
		Mode:    "normal",
		Style:   &style,
		Text:    &text,
		Type:    t.Type(),
		Version: domain.SchemaVersion,
	}
}

// DecodeDocument parses the editor's JSON form into a tree
func DecodeDocument(data []byte) (*domain.Root, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("document has no root: %w", ErrUnsupportedNode)
	}
	if err := checkNode(doc.Root, "root"); err != nil {
		return nil, err
	}

	root := domain.NewRoot()
	if doc.Root.Direction != nil && *doc.Root.Direction != "" {
		root.Direction = *doc.Root.Direction
	}

	for i, child := range doc.Root.Children {
		block, err := decodeBlock(child)
		if err != nil {
			return nil, fmt.Errorf("root child %d: %w", i, err)
		}
		root.Children = append(root.Children, block)
	}

	return root, nil
}

func decodeBlock(n *wireNode) (domain.Block, error) {
	if n == nil {
		return nil, fmt.Errorf("null node: %w", ErrUnsupportedNode)
	}

	var runs []*domain.Text
	for i, child := range n.Children {
		run, err := decodeText(child)
		if err != nil {
			return nil, fmt.Errorf("%s child %d: %w", n.Type, i, err)
		}
		runs = append(runs, run)
	}

	switch n.Type {
	case "paragraph":
		if err := checkNode(n, "paragraph"); err != nil {
			return nil, err
		}
		return &domain.Paragraph{Children: runs}, nil
	case "heading":
		if err := checkNode(n, "heading"); err != nil {
			return nil, err
		}
		level, err := parseTag(n.Tag)
		if err != nil {
			return nil, err
		}
		return &domain.Heading{Level: level, Children: runs}, nil
	default:
		return nil, fmt.Errorf("%q: %w", n.Type, ErrUnsupportedNode)
	}
}

func decodeText(n *wireNode) (*domain.Text, error) {
	if n == nil {
		return nil, fmt.Errorf("null node: %w", ErrUnsupportedNode)
	}
	if err := checkNode(n, "text"); err != nil {
		return nil, err
	}
	if len(n.Children) > 0 {
		return nil, fmt.Errorf("text node with children: %w", ErrUnsupportedNode)
	}

	t := &domain.Text{}
	if n.Text != nil {
		t.Text = *n.Text
	}

	// The editor stores format as a bit mask; bold wins over italic since
	// the tree holds a single format per run.
	if f, ok := n.Format.(float64); ok {
		switch mask := int(f); {
		case mask&int(domain.FormatBold) != 0:
			t.Format = domain.FormatBold
		case mask&int(domain.FormatItalic) != 0:
			t.Format = domain.FormatItalic
		}
	}

	return t, nil
}

func checkNode(n *wireNode, want string) error {
	if n.Type != want {
		return fmt.Errorf("expected %s, got %q: %w", want, n.Type, ErrUnsupportedNode)
	}
	if n.Version > domain.SchemaVersion {
		return fmt.Errorf("%s version %d is newer than %d: %w", want, n.Version, domain.SchemaVersion, ErrUnsupportedNode)
	}
	return nil
}

func parseTag(tag string) (int, error) {
	if !strings.HasPrefix(tag, "h") {
		return 0, fmt.Errorf("heading tag %q: %w", tag, ErrUnsupportedNode)
	}
	level, err := strconv.Atoi(tag[1:])
	if err != nil || level < 1 || level > domain.MaxHeadingLevel {
		return 0, fmt.Errorf("heading tag %q: %w", tag, ErrUnsupportedNode)
	}
	return level, nil
}
