package markdown

import (
	"strings"
	"testing"
)

func TestStringify_EscapesMarkupCharacters(t *testing.T) {
	got := Stringify([]Node{P(T("a*b_c|d<e>f`g"))})
	want := "a\\*b\\_c\\|d\\<e\\>f\\`g\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStringify_RawFragmentPassesThroughVerbatim(t *testing.T) {
	raw := "<details>\n<summary>x *not emphasis*</summary>\n\nbody\n\n</details>"
	got := Stringify([]Node{RawFragment{Markup: raw}})
	if !strings.Contains(got, "*not emphasis*") {
		t.Errorf("raw fragment was escaped: %q", got)
	}
}

func TestStringify_CodeBlockFenceGrowsPastEmbeddedFence(t *testing.T) {
	got := Stringify([]Node{CodeBlock{Lang: "md", Value: "```\ninner\n```"}})
	if !strings.HasPrefix(got, "````md\n") {
		t.Errorf("fence did not grow: %q", got)
	}
}

func TestStringify_Blockquote(t *testing.T) {
	got := Stringify([]Node{Blockquote{Children: []Node{
		P(T("line one"), HardBreak{}, T("line two")),
	}}})
	want := "> line one\\\n> line two\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStringify_Heading(t *testing.T) {
	got := Stringify([]Node{H(3, T("2025-01-02 03:04:05"))})
	if got != "### 2025-01-02 03:04:05\n" {
		t.Errorf("got %q", got)
	}
}

func TestStringify_TableEscapesPipes(t *testing.T) {
	got := Stringify([]Node{Table{
		Header: []string{"Property", "Value"},
		Rows:   [][]string{{"Cmd", "a | b"}},
	}})
	if !strings.Contains(got, `a \| b`) {
		t.Errorf("pipe not escaped in cell: %q", got)
	}
	if !strings.Contains(got, "| Property | Value |") {
		t.Errorf("missing header row: %q", got)
	}
}

func TestStringify_Deterministic(t *testing.T) {
	nodes := []Node{
		H(1, T("Title")),
		P(T("body "), B("bold"), T(" tail")),
		ThematicBreak{},
	}
	a := Stringify(nodes)
	b := Stringify(nodes)
	if a != b {
		t.Errorf("output not deterministic:\n%q\n%q", a, b)
	}
}

func TestMetadataTable_EmptyYieldsNoNodes(t *testing.T) {
	if nodes := MetadataTable(nil); len(nodes) != 0 {
		t.Errorf("expected no nodes for empty input, got %d", len(nodes))
	}
}

func TestMetadataTable_PreservesOrder(t *testing.T) {
	nodes := MetadataTable([]MetaPair{
		{Key: "Session ID", Value: "abc"},
		{Key: "Started", Value: "2025-01-01"},
	})
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	table, ok := nodes[0].(Table)
	if !ok {
		t.Fatalf("expected Table, got %T", nodes[0])
	}
	if table.Rows[0][0] != "Session ID" || table.Rows[1][0] != "Started" {
		t.Errorf("row order not preserved: %v", table.Rows)
	}
}

func TestRenderInline_Label(t *testing.T) {
	got := RenderInline([]Node{T("🔧 "), B("Bash"), T(": "), Code{Value: "ls <dir>"}})
	want := `🔧 <strong>Bash</strong>: <code>ls &lt;dir&gt;</code>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderInline_PanicsOnUnsupportedNode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for unsupported node type")
		}
	}()
	RenderInline([]Node{Heading{Level: 1, Children: []Node{T("nope")}}})
}

func TestDisclosureBlock(t *testing.T) {
	node := DisclosureBlock(
		[]Node{T("More...")},
		[]Node{H(2, T("Hidden")), P(T("hidden body"))},
	)
	raw, ok := node.(RawFragment)
	if !ok {
		t.Fatalf("expected RawFragment, got %T", node)
	}
	for _, want := range []string{"<details>", "<summary>More...</summary>", "## Hidden", "hidden body", "</details>"} {
		if !strings.Contains(raw.Markup, want) {
			t.Errorf("missing %q in %q", want, raw.Markup)
		}
	}
	if !IsDisclosure(node) {
		t.Errorf("IsDisclosure should report true")
	}
}
