package markdown

import (
	"fmt"
	"strings"
)

// textEscaper escapes characters that Markdown would otherwise interpret as
// syntax. Raw fragments bypass this entirely.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	`|`, `\|`,
	"`", "\\`",
	`<`, `\<`,
	`>`, `\>`,
)

// Stringify serializes a node list to Markdown text. The output is
// deterministic: the same tree always yields the same bytes.
func Stringify(nodes []Node) string {
	var blocks []string
	for _, n := range nodes {
		s := stringifyBlock(n)
		if s == "" {
			continue
		}
		blocks = append(blocks, s)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func stringifyBlock(n Node) string {
	switch b := n.(type) {
	case Paragraph:
		return stringifyInline(b.Children)
	case Heading:
		level := b.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + stringifyInline(b.Children)
	case Blockquote:
		inner := strings.TrimRight(Stringify(b.Children), "\n")
		var qlines []string
		for _, line := range strings.Split(inner, "\n") {
			if line == "" {
				qlines = append(qlines, ">")
			} else {
				qlines = append(qlines, "> "+line)
			}
		}
		return strings.Join(qlines, "\n")
	case CodeBlock:
		fence := codeFence(b.Value)
		return fence + b.Lang + "\n" + strings.TrimRight(b.Value, "\n") + "\n" + fence
	case Table:
		return stringifyTable(b)
	case ThematicBreak:
		return "---"
	case RawFragment:
		return strings.TrimRight(b.Markup, "\n")
	default:
		// Inline node at block position: wrap like a paragraph.
		return stringifyInline([]Node{n})
	}
}

// codeFence returns a backtick fence longer than any run of backticks in the
// body, so embedded fences cannot terminate the block early.
func codeFence(body string) string {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	return fence
}

func stringifyInline(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch i := n.(type) {
		case Text:
			sb.WriteString(textEscaper.Replace(i.Value))
		case Emph:
			sb.WriteString("*" + stringifyInline(i.Children) + "*")
		case Strong:
			sb.WriteString("**" + stringifyInline(i.Children) + "**")
		case Code:
			sb.WriteString(codeSpan(i.Value))
		case HardBreak:
			sb.WriteString("\\\n")
		case Link:
			sb.WriteString("[" + stringifyInline(i.Children) + "](" + i.URL + ")")
		case RawFragment:
			sb.WriteString(i.Markup)
		default:
			// Block node in inline position: render standalone.
			sb.WriteString(stringifyBlock(n))
		}
	}
	return sb.String()
}

// codeSpan wraps a value in enough backticks that embedded backticks survive.
func codeSpan(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	delim := "`"
	for strings.Contains(value, delim) {
		delim += "`"
	}
	if delim == "`" {
		return "`" + value + "`"
	}
	return delim + " " + value + " " + delim
}

func stringifyTable(t Table) string {
	if len(t.Header) == 0 && len(t.Rows) == 0 {
		return ""
	}
	cell := func(s string) string {
		s = strings.ReplaceAll(s, "\n", " ")
		return textEscaper.Replace(s)
	}
	var sb strings.Builder
	cols := len(t.Header)
	sb.WriteString("|")
	for _, h := range t.Header {
		fmt.Fprintf(&sb, " %s |", cell(h))
	}
	sb.WriteString("\n|")
	for range t.Header {
		sb.WriteString(" --- |")
	}
	for _, row := range t.Rows {
		sb.WriteString("\n|")
		for i, c := range row {
			if i >= cols && cols > 0 {
				break
			}
			fmt.Fprintf(&sb, " %s |", cell(c))
		}
		for i := len(row); i < cols; i++ {
			sb.WriteString("  |")
		}
	}
	return sb.String()
}
