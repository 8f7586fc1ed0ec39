package export

import (
	"strings"
	"testing"

	"github.com/szhu/claude-code-history-exporter/internal/markdown"
	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

func renderToMarkup(nodes []markdown.Node) string {
	return markdown.Stringify(nodes)
}

func TestRenderToolUse_BareLabelWithoutBody(t *testing.T) {
	nodes := RenderToolUse(parse.ToolUseBlock{ID: "t1", Name: "WebSearch"}, "", false)
	if len(nodes) != 1 {
		t.Fatalf("expected a single label node, got %d", len(nodes))
	}
	raw, ok := nodes[0].(markdown.RawFragment)
	if !ok {
		t.Fatalf("expected raw label fragment, got %T", nodes[0])
	}
	if raw.Markup != "🔧 <strong>WebSearch</strong>" {
		t.Errorf("label mismatch: %q", raw.Markup)
	}
}

func TestRenderToolUse_ParametersCollapse(t *testing.T) {
	tu := parse.ToolUseBlock{
		ID:       "t1",
		Name:     "Glob",
		Input:    map[string]any{"pattern": "**/*.go"},
		RawInput: []byte(`{"pattern":"**/*.go"}`),
	}
	out := renderToMarkup(RenderToolUse(tu, "", false))
	if !strings.Contains(out, "<summary>🔧 <strong>Glob</strong>: <code>**/*.go</code></summary>") {
		t.Errorf("label missing pattern: %q", out)
	}
	if !strings.Contains(out, "Parameters:") || !strings.Contains(out, `"pattern": "**/*.go"`) {
		t.Errorf("parameter dump missing: %q", out)
	}
}

func TestRenderToolUse_BashCommand(t *testing.T) {
	t.Run("single line inline code", func(t *testing.T) {
		tu := parse.ToolUseBlock{Name: "Bash", Input: map[string]any{"command": "go test ./..."}, RawInput: []byte(`{"command":"go test ./..."}`)}
		out := renderToMarkup(RenderToolUse(tu, "", false))
		if !strings.Contains(out, "<code>go test ./...</code>") {
			t.Errorf("inline command missing: %q", out)
		}
	})
	t.Run("multi line code block", func(t *testing.T) {
		tu := parse.ToolUseBlock{Name: "Bash", Input: map[string]any{"command": "cd /tmp\nls"}, RawInput: []byte(`{"command":"cd /tmp\nls"}`)}
		out := renderToMarkup(RenderToolUse(tu, "", false))
		if !strings.Contains(out, "<pre><code>cd /tmp\nls</code></pre>") {
			t.Errorf("multi-line command not a code block: %q", out)
		}
	})
}

func TestRenderToolUse_WriteResultShownOpenly(t *testing.T) {
	tu := parse.ToolUseBlock{
		Name:     "Write",
		Input:    map[string]any{"file_path": "/tmp/x.go", "content": "package x"},
		RawInput: []byte(`{"file_path":"/tmp/x.go","content":"package x"}`),
	}
	nodes := RenderToolUse(tu, "File created successfully", true)
	out := renderToMarkup(nodes)

	if !strings.Contains(out, "📋 **Result:**") {
		t.Errorf("open result marker missing: %q", out)
	}
	// The open result must sit outside the disclosure body.
	details := out[strings.Index(out, "<details>"):strings.Index(out, "</details>")]
	if strings.Contains(details, "File created successfully") {
		t.Errorf("Write result was collapsed: %q", details)
	}
}

func TestRenderToolUse_ReadResultCollapsedAsFileContents(t *testing.T) {
	tu := parse.ToolUseBlock{
		Name:     "Read",
		Input:    map[string]any{"file_path": "/tmp/x.go"},
		RawInput: []byte(`{"file_path":"/tmp/x.go"}`),
	}
	out := renderToMarkup(RenderToolUse(tu, "package x", true))
	if !strings.Contains(out, "File Contents:") {
		t.Errorf("Read result label missing: %q", out)
	}
	details := out[strings.Index(out, "<details>"):strings.Index(out, "</details>")]
	if !strings.Contains(details, "package x") {
		t.Errorf("Read result should be inside the disclosure: %q", out)
	}
}

func TestRenderToolUse_DefaultResultCollapsed(t *testing.T) {
	tu := parse.ToolUseBlock{Name: "WebFetch"}
	out := renderToMarkup(RenderToolUse(tu, "fetched body", true))
	if !strings.Contains(out, "Result:") || !strings.Contains(out, "fetched body") {
		t.Errorf("default result missing: %q", out)
	}
	if !strings.Contains(out, "<details>") {
		t.Errorf("default result should be collapsed: %q", out)
	}
}

func TestRenderToolUse_TodoWrite(t *testing.T) {
	tu := parse.ToolUseBlock{
		Name: "TodoWrite",
		Input: map[string]any{"todos": []any{
			map[string]any{"content": "ship it", "status": "completed"},
			map[string]any{"content": "test it", "status": "in_progress"},
			map[string]any{"content": "doc it", "status": "pending"},
		}},
		RawInput: []byte(`{"todos":[{"content":"ship it","status":"completed"},{"content":"test it","status":"in_progress"},{"content":"doc it","status":"pending"}]}`),
	}
	nodes := RenderToolUse(tu, "", false)
	out := renderToMarkup(nodes)

	if !strings.Contains(out, "(1 completed, 1 in progress, 1 pending)") {
		t.Errorf("counts summary missing: %q", out)
	}
	for _, want := range []string{"✅ ship it", "🔄 test it", "⬜ doc it"} {
		if !strings.Contains(out, want) {
			t.Errorf("status line %q missing: %q", want, out)
		}
	}
	// The status list is open, not inside the disclosure.
	details := out[strings.Index(out, "<details>"):strings.Index(out, "</details>")]
	if strings.Contains(details, "✅ ship it") {
		t.Errorf("todo list was collapsed: %q", details)
	}
}
