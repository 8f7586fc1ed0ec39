package export

import (
	"github.com/szhu/claude-code-history-exporter/internal/markdown"
)

// visibleParagraphs is how many leading paragraphs stay outside the
// disclosure block.
const visibleParagraphs = 3

// Collapse keeps a node list scannable: the first three paragraphs (and
// whatever non-heading material precedes them) stay visible, everything after
// that is folded behind a "More..." disclosure.
//
// A heading switches to collapsed immediately, itself included, no matter how
// few paragraphs have been seen: an author heading rendered bare would compete
// with the document's own structural headings. The switch is a one-way latch;
// once collapsed, the walk never returns to visible.
func Collapse(nodes []markdown.Node) []markdown.Node {
	if len(nodes) == 0 {
		return nil
	}

	var visible, collapsed []markdown.Node
	collapsing := false
	paragraphs := 0

	for _, n := range nodes {
		if !collapsing {
			switch n.(type) {
			case markdown.Heading:
				collapsing = true
			case markdown.Paragraph:
				if paragraphs >= visibleParagraphs {
					collapsing = true
				} else {
					paragraphs++
				}
			default:
				if paragraphs >= visibleParagraphs {
					collapsing = true
				}
			}
		}
		if collapsing {
			collapsed = append(collapsed, n)
		} else {
			visible = append(visible, n)
		}
	}

	if len(collapsed) == 0 {
		return visible
	}
	return append(visible, wrapCollapsed(collapsed))
}

// wrapCollapsed folds the collapsed tail into a single node. If the tail
// already contains a disclosure block (typically a tool-use render), nesting
// it inside another one would be redundant; the serialized tail is appended
// as-is instead.
func wrapCollapsed(collapsed []markdown.Node) markdown.Node {
	for _, n := range collapsed {
		if markdown.IsDisclosure(n) {
			return markdown.RawFragment{Markup: markdown.Stringify(collapsed)}
		}
	}
	return markdown.DisclosureBlock(
		[]markdown.Node{markdown.T("More...")},
		collapsed,
	)
}
