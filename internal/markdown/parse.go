package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var parser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Parse converts Markdown text into a node list. It never rejects input:
// constructs outside the modeled node set are carried through as raw source
// fragments so no content is lost.
func Parse(text string) []Node {
	source := []byte(text)
	doc := parser.Parser().Parse(gmtext.NewReader(source))

	var nodes []Node
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if conv := convertBlock(n, source); conv != nil {
			nodes = append(nodes, conv)
		}
	}
	return nodes
}

func convertBlock(n ast.Node, source []byte) Node {
	switch b := n.(type) {
	case *ast.Paragraph:
		return Paragraph{Children: convertInlineChildren(b, source)}
	case *ast.TextBlock:
		return Paragraph{Children: convertInlineChildren(b, source)}
	case *ast.Heading:
		return Heading{Level: b.Level, Children: convertInlineChildren(b, source)}
	case *ast.FencedCodeBlock:
		return CodeBlock{
			Lang:  string(b.Language(source)),
			Value: linesValue(b, source),
		}
	case *ast.CodeBlock:
		return CodeBlock{Value: linesValue(b, source)}
	case *ast.Blockquote:
		var children []Node
		for c := b.FirstChild(); c != nil; c = c.NextSibling() {
			if conv := convertBlock(c, source); conv != nil {
				children = append(children, conv)
			}
		}
		return Blockquote{Children: children}
	case *ast.ThematicBreak:
		return ThematicBreak{}
	case *east.Table:
		return convertTable(b, source)
	default:
		// Lists, HTML blocks, and anything else goldmark knows but this
		// model does not: keep the original source text verbatim.
		if raw := sourceSpan(n, source); raw != "" {
			return RawFragment{Markup: raw}
		}
		return nil
	}
}

// linesValue concatenates the source segments of a leaf block.
func linesValue(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

// sourceSpan recovers the original source text of a block, including leading
// markers such as list bullets, by spanning from the first to the last line
// segment of its descendant leaves.
func sourceSpan(n ast.Node, source []byte) string {
	start, stop := -1, -1
	var visit func(ast.Node)
	visit = func(cur ast.Node) {
		// Lines is only defined for block nodes; inline nodes panic.
		if cur.Type() != ast.TypeBlock {
			return
		}
		lines := cur.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		for c := cur.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	if start < 0 || stop <= start {
		return ""
	}
	// Expand to the start of the line so block markers are included.
	if idx := bytes.LastIndexByte(source[:start], '\n'); idx >= 0 {
		start = idx + 1
	} else {
		start = 0
	}
	return strings.TrimRight(string(source[start:stop]), "\n")
}

func convertInlineChildren(n ast.Node, source []byte) []Node {
	var nodes []Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		nodes = append(nodes, convertInline(c, source)...)
	}
	return nodes
}

func convertInline(n ast.Node, source []byte) []Node {
	switch i := n.(type) {
	case *ast.Text:
		var nodes []Node
		if v := unescapePunctuation(string(i.Segment.Value(source))); v != "" {
			nodes = append(nodes, Text{Value: v})
		}
		if i.HardLineBreak() {
			nodes = append(nodes, HardBreak{})
		} else if i.SoftLineBreak() {
			nodes = append(nodes, Text{Value: " "})
		}
		return nodes
	case *ast.String:
		return []Node{Text{Value: string(i.Value)}}
	case *ast.CodeSpan:
		return []Node{Code{Value: inlineText(i, source)}}
	case *ast.Emphasis:
		children := convertInlineChildren(i, source)
		if i.Level >= 2 {
			return []Node{Strong{Children: children}}
		}
		return []Node{Emph{Children: children}}
	case *ast.Link:
		return []Node{Link{URL: string(i.Destination), Children: convertInlineChildren(i, source)}}
	case *ast.AutoLink:
		url := string(i.URL(source))
		return []Node{Link{URL: url, Children: []Node{Text{Value: url}}}}
	case *ast.Image:
		return []Node{Link{URL: string(i.Destination), Children: convertInlineChildren(i, source)}}
	case *ast.RawHTML:
		var sb strings.Builder
		for s := 0; s < i.Segments.Len(); s++ {
			seg := i.Segments.At(s)
			sb.Write(seg.Value(source))
		}
		return []Node{RawFragment{Markup: sb.String()}}
	default:
		// Unknown inline: flatten to its children, dropping only wrappers.
		return convertInlineChildren(n, source)
	}
}

// unescapePunctuation resolves CommonMark backslash escapes. goldmark keeps
// them in the source segments and only resolves them at render time, so text
// extracted from the AST must do the same.
func unescapePunctuation(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// inlineText collects the raw text beneath an inline node, e.g. the body of a
// code span.
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func convertTable(t *east.Table, source []byte) Node {
	var table Table
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, cellText(c, source))
		}
		if _, ok := r.(*east.TableHeader); ok {
			table.Header = cells
		} else {
			table.Rows = append(table.Rows, cells)
		}
	}
	return table
}

// cellText flattens a table cell to plain text. Inline markup inside cells is
// reduced to its text content.
func cellText(n ast.Node, source []byte) string {
	var sb strings.Builder
	var visit func(ast.Node)
	visit = func(cur ast.Node) {
		if t, ok := cur.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		for c := cur.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	return unescapePunctuation(sb.String())
}
