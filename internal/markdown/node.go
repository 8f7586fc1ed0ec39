// Package markdown holds the document model for exported transcripts: a small
// tree of Markdown nodes plus the conversions between trees and Markdown text.
package markdown

// Node is one unit of the document tree. The set of implementations is closed;
// every consumer switches over it exhaustively.
type Node interface {
	node()
}

// Text is a plain text span. Stringify escapes Markdown syntax inside it.
type Text struct {
	Value string
}

// Emph is emphasized (italic) inline content.
type Emph struct {
	Children []Node
}

// Strong is bold inline content.
type Strong struct {
	Children []Node
}

// Code is an inline code span.
type Code struct {
	Value string
}

// CodeBlock is a fenced code block with an optional language tag.
type CodeBlock struct {
	Lang  string
	Value string
}

// HardBreak is an explicit line break inside a paragraph.
type HardBreak struct{}

// Link is an inline hyperlink.
type Link struct {
	URL      string
	Children []Node
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Children []Node
}

// Heading is a section heading, level 1-6.
type Heading struct {
	Level    int
	Children []Node
}

// Blockquote wraps block content in a quote.
type Blockquote struct {
	Children []Node
}

// Table is a simple table of string cells. Header may be empty for
// header-less tables, which never occurs in trees this tool builds.
type Table struct {
	Header []string
	Rows   [][]string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// RawFragment is opaque markup passed through Stringify verbatim. Disclosure
// blocks and already-serialized collapsed content travel as raw fragments.
type RawFragment struct {
	Markup string
}

func (Text) node()          {}
func (Emph) node()          {}
func (Strong) node()        {}
func (Code) node()          {}
func (CodeBlock) node()     {}
func (HardBreak) node()     {}
func (Link) node()          {}
func (Paragraph) node()     {}
func (Heading) node()       {}
func (Blockquote) node()    {}
func (Table) node()         {}
func (ThematicBreak) node() {}
func (RawFragment) node()   {}

// P builds a paragraph from inline children.
func P(children ...Node) Paragraph {
	return Paragraph{Children: children}
}

// H builds a heading of the given level.
func H(level int, children ...Node) Heading {
	return Heading{Level: level, Children: children}
}

// T builds a text span.
func T(value string) Text {
	return Text{Value: value}
}

// B builds a bold span around plain text.
func B(value string) Strong {
	return Strong{Children: []Node{Text{Value: value}}}
}
