package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/szhu/claude-code-history-exporter/internal/markdown"
	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

// summarizer produces the one-line label suffix for a tool invocation, e.g.
// the target file of a Read or the command of a Bash call.
type summarizer func(input map[string]any) []markdown.Node

// toolSummaries maps tool names to their label rules. Tools absent here get
// the bare "🔧 **Name**" label.
var toolSummaries = map[string]summarizer{
	"TodoWrite": todoCountsSummary,
	"Read":      filePathSummary,
	"Write":     filePathSummary,
	"Edit":      filePathSummary,
	"MultiEdit": filePathSummary,
	"Bash":      commandSummary,
	"Glob":      patternSummary,
	"Grep":      patternSummary,
}

// openResultTools render their result unconditionally visible instead of
// inside the collapsible body.
var openResultTools = map[string]bool{
	"Write": true,
	"Edit":  true,
}

// RenderToolUse renders one tool invocation, plus its reconciled result when
// one exists. The returned list always starts with the label: either a bare
// raw fragment or a disclosure block wrapping the parameter/result body.
func RenderToolUse(tu parse.ToolUseBlock, result string, hasResult bool) []markdown.Node {
	label := []markdown.Node{markdown.T("🔧 "), markdown.B(tu.Name)}
	if summarize, ok := toolSummaries[tu.Name]; ok {
		label = append(label, summarize(tu.Input)...)
	}

	var body, open []markdown.Node

	if len(tu.Input) > 0 {
		body = append(body,
			markdown.P(markdown.T("Parameters:")),
			markdown.CodeBlock{Lang: "json", Value: indentJSON(tu.RawInput)},
		)
	}

	if hasResult {
		switch {
		case openResultTools[tu.Name]:
			open = append(open,
				markdown.P(markdown.T("📋 "), markdown.B("Result:")),
				markdown.CodeBlock{Value: result},
			)
		case tu.Name == "Read":
			body = append(body,
				markdown.P(markdown.T("File Contents:")),
				markdown.CodeBlock{Value: result},
			)
		default:
			body = append(body,
				markdown.P(markdown.T("Result:")),
				markdown.CodeBlock{Value: result},
			)
		}
	}

	if tu.Name == "TodoWrite" {
		if list := todoStatusList(tu.Input); len(list) > 0 {
			open = append(open, markdown.Paragraph{Children: list})
		}
	}

	var nodes []markdown.Node
	if len(body) > 0 {
		nodes = append(nodes, markdown.DisclosureBlock(label, body))
	} else {
		nodes = append(nodes, markdown.RawFragment{Markup: markdown.RenderInline(label)})
	}
	return append(nodes, open...)
}

func filePathSummary(input map[string]any) []markdown.Node {
	path, _ := input["file_path"].(string)
	if path == "" {
		return nil
	}
	return []markdown.Node{markdown.T(": "), markdown.Code{Value: path}}
}

func patternSummary(input map[string]any) []markdown.Node {
	pattern, _ := input["pattern"].(string)
	if pattern == "" {
		return nil
	}
	return []markdown.Node{markdown.T(": "), markdown.Code{Value: pattern}}
}

func commandSummary(input map[string]any) []markdown.Node {
	cmd, _ := input["command"].(string)
	if cmd == "" {
		return nil
	}
	if strings.Contains(cmd, "\n") {
		return []markdown.Node{markdown.T(":"), markdown.CodeBlock{Lang: "bash", Value: cmd}}
	}
	return []markdown.Node{markdown.T(": "), markdown.Code{Value: cmd}}
}

func todoCountsSummary(input map[string]any) []markdown.Node {
	completed, inProgress, pending := todoCounts(input)
	if completed+inProgress+pending == 0 {
		return nil
	}
	return []markdown.Node{markdown.T(fmt.Sprintf(
		" (%d completed, %d in progress, %d pending)",
		completed, inProgress, pending,
	))}
}

func todoCounts(input map[string]any) (completed, inProgress, pending int) {
	for _, status := range todoStatuses(input) {
		switch status {
		case "completed":
			completed++
		case "in_progress":
			inProgress++
		default:
			pending++
		}
	}
	return
}

func todoStatuses(input map[string]any) []string {
	todos, _ := input["todos"].([]any)
	var statuses []string
	for _, t := range todos {
		entry, ok := t.(map[string]any)
		if !ok {
			continue
		}
		status, _ := entry["status"].(string)
		statuses = append(statuses, status)
	}
	return statuses
}

// todoStatusList renders the openly visible task list: one line per todo with
// a status glyph, lines joined by explicit breaks. Scanning outstanding work
// is the point of TodoWrite, so this never goes behind a disclosure.
func todoStatusList(input map[string]any) []markdown.Node {
	todos, _ := input["todos"].([]any)
	var lines []markdown.Node
	for _, t := range todos {
		entry, ok := t.(map[string]any)
		if !ok {
			continue
		}
		content, _ := entry["content"].(string)
		status, _ := entry["status"].(string)
		if len(lines) > 0 {
			lines = append(lines, markdown.HardBreak{})
		}
		lines = append(lines, markdown.T(todoGlyph(status)+" "+content))
	}
	return lines
}

func todoGlyph(status string) string {
	switch status {
	case "completed":
		return "✅"
	case "in_progress":
		return "🔄"
	default:
		return "⬜"
	}
}

// indentJSON pretty-prints the raw parameter object, preserving its original
// key order.
func indentJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err == nil {
		return buf.String()
	}
	// Raw bytes were unusable; re-encode whatever decoded.
	b, err := json.MarshalIndent(json.RawMessage(raw), "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(b)
}
