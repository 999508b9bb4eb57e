package domain

// SchemaVersion is the version tag carried by every document node
const SchemaVersion = 1

// MaxHeadingLevel is the deepest supported heading
const MaxHeadingLevel = 6

// TextFormat is the inline style of a text run
type TextFormat int

const (
	FormatNormal TextFormat = 0
	FormatBold   TextFormat = 1
	FormatItalic TextFormat = 2
)

func (f TextFormat) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	default:
		return "normal"
	}
}

// Node is a node of the rich-text document tree.
// The set of implementations is closed: Root, Paragraph, Heading and Text.
type Node interface {
	Type() string
	Version() int
	node()
}

// Block is a direct child of the root: a Paragraph or a Heading
type Block interface {
	Node
	Runs() []*Text
	block()
}

// Root is the single top-level node of a document
type Root struct {
	Children  []Block
	Direction string
}

// NewRoot returns an empty left-to-right document
func NewRoot() *Root {
	return &Root{Direction: "ltr"}
}

func (*Root) Type() string { return "root" }
func (*Root) Version() int { return SchemaVersion }
func (*Root) node()        {}

// Paragraph is a block of text runs
type Paragraph struct {
	Children []*Text
}

func (*Paragraph) Type() string    { return "paragraph" }
func (*Paragraph) Version() int    { return SchemaVersion }
func (p *Paragraph) Runs() []*Text { return p.Children }
func (*Paragraph) node()           {}
func (*Paragraph) block()          {}

// Heading is a titled block with a level in 1..6
type Heading struct {
	Level    int
	Children []*Text
}

func (*Heading) Type() string    { return "heading" }
func (*Heading) Version() int    { return SchemaVersion }
func (h *Heading) Runs() []*Text { return h.Children }
func (*Heading) node()           {}
func (*Heading) block()          {}

// Text is a leaf run of uniformly formatted text
type Text struct {
	Text   string
	Format TextFormat
}

func (*Text) Type() string { return "text" }
func (*Text) Version() int { return SchemaVersion }
func (*Text) node()        {}
