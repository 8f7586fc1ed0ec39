package export

import (
	"strings"
	"time"

	"github.com/szhu/claude-code-history-exporter/internal/markdown"
	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

const timestampLayout = "2006-01-02 15:04:05"

// RenderRecord converts one reconciled record into document nodes. Records
// with nothing renderable (for example a message whose only block was a tool
// result already folded in by Reconcile) yield an empty list.
func RenderRecord(rec parse.Record, index ToolResultIndex) []markdown.Node {
	switch r := rec.(type) {
	case parse.SessionSummary:
		return renderSummary(r)
	case parse.SystemNotice:
		return renderSystem(r)
	case parse.ChatMessage:
		if r.Role == "user" {
			return renderUser(r, index)
		}
		// Assistant, and for safety any unrecognized role: parsed as
		// Markdown and collapsed, never emitted raw.
		return renderAssistant(r, index)
	default:
		return nil
	}
}

func renderSummary(r parse.SessionSummary) []markdown.Node {
	content := Collapse([]markdown.Node{
		markdown.P(markdown.T(r.Summary)),
	})
	if len(content) == 0 {
		return nil
	}
	return append([]markdown.Node{markdown.H(2, markdown.T("Summary"))}, content...)
}

func renderSystem(r parse.SystemNotice) []markdown.Node {
	content := Collapse([]markdown.Node{
		markdown.P(markdown.T("🔧 "), markdown.B("System"), markdown.T(": "+r.Text)),
	})
	if len(content) == 0 {
		return nil
	}
	return append([]markdown.Node{timestampHeading(r.Timestamp)}, content...)
}

func renderUser(r parse.ChatMessage, index ToolResultIndex) []markdown.Node {
	var content []markdown.Node
	for _, block := range r.Blocks {
		switch b := block.(type) {
		case parse.TextBlock:
			content = append(content, literalParagraph(b.Text))
		case parse.ToolUseBlock:
			// Atypical, but user content can carry tool invocations.
			result, ok := index[b.ID]
			content = append(content, RenderToolUse(b, result, ok)...)
		}
		// Thinking and stray tool results are dropped.
	}
	if len(content) == 0 {
		return nil
	}
	return []markdown.Node{
		timestampHeading(r.Timestamp),
		markdown.Blockquote{Children: content},
	}
}

func renderAssistant(r parse.ChatMessage, index ToolResultIndex) []markdown.Node {
	var content []markdown.Node
	for _, block := range r.Blocks {
		switch b := block.(type) {
		case parse.TextBlock:
			// Assistant text is Markdown the model authored; honor it.
			content = append(content, markdown.Parse(b.Text)...)
		case parse.ToolUseBlock:
			result, ok := index[b.ID]
			content = append(content, RenderToolUse(b, result, ok)...)
		}
	}
	if len(content) == 0 {
		return nil
	}
	content = Collapse(content)
	return append([]markdown.Node{timestampHeading(r.Timestamp)}, content...)
}

// literalParagraph renders user text as a single paragraph with explicit line
// breaks, so the user's own formatting survives without being reinterpreted
// as Markdown.
func literalParagraph(text string) markdown.Node {
	lines := strings.Split(text, "\n")
	var children []markdown.Node
	for i, line := range lines {
		if i > 0 {
			children = append(children, markdown.HardBreak{})
		}
		children = append(children, markdown.T(line))
	}
	return markdown.Paragraph{Children: children}
}

func timestampHeading(ts time.Time) markdown.Node {
	return markdown.H(3, markdown.T(formatTimestamp(ts)))
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "Unknown time"
	}
	return ts.Format(timestampLayout)
}
