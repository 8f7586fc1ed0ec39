package markdown

import (
	"fmt"
	"html"
	"strings"
)

// RenderInline converts a restricted node subset into inline HTML suitable for
// a <summary> label. It panics on any node kind outside the subset: a new node
// type reaching a disclosure label is a bug in the caller, and silently
// dropping it would corrupt the label.
func RenderInline(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch i := n.(type) {
		case Text:
			sb.WriteString(html.EscapeString(i.Value))
		case Strong:
			sb.WriteString("<strong>" + RenderInline(i.Children) + "</strong>")
		case Code:
			sb.WriteString("<code>" + html.EscapeString(i.Value) + "</code>")
		case CodeBlock:
			sb.WriteString("<pre><code>" + html.EscapeString(i.Value) + "</code></pre>")
		case Link:
			sb.WriteString(`<a href="` + html.EscapeString(i.URL) + `">` + RenderInline(i.Children) + "</a>")
		default:
			panic(fmt.Sprintf("markdown: node type %T cannot be rendered inside a disclosure label", n))
		}
	}
	return sb.String()
}

// DisclosureBlock wraps a label and a hidden body in a collapsible
// <details> construct. The body is serialized Markdown separated from the
// HTML by blank lines, so it may contain headings, tables, or code blocks.
func DisclosureBlock(label, body []Node) Node {
	var sb strings.Builder
	sb.WriteString("<details>\n")
	sb.WriteString("<summary>" + RenderInline(label) + "</summary>\n\n")
	sb.WriteString(Stringify(body))
	sb.WriteString("\n</details>")
	return RawFragment{Markup: sb.String()}
}

// IsDisclosure reports whether a node is a disclosure block built by
// DisclosureBlock.
func IsDisclosure(n Node) bool {
	raw, ok := n.(RawFragment)
	return ok && strings.HasPrefix(raw.Markup, "<details>")
}

// MetaPair is one ordered Property/Value entry of a metadata table.
type MetaPair struct {
	Key   string
	Value string
}

// MetadataTable builds a two-column Property/Value table. An empty pair list
// yields no nodes at all rather than a header-only table.
func MetadataTable(pairs []MetaPair) []Node {
	if len(pairs) == 0 {
		return nil
	}
	t := Table{Header: []string{"Property", "Value"}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{p.Key, p.Value})
	}
	return []Node{t}
}
