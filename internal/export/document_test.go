package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeChat(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func userLine(ts, text string) string {
	return `{"type":"user","timestamp":"` + ts + `","sessionId":"s1","message":{"role":"user","content":"` + text + `"}}`
}

func TestBuildDocument_ChronologicalOrdering(t *testing.T) {
	dir := t.TempDir()
	// Alphabetical file order a, b, c; timestamps deliberately shuffled so
	// b's chat is oldest and must come first.
	a := writeChat(t, dir, "a.jsonl", userLine("2025-01-02T10:00:00Z", "chat a"))
	b := writeChat(t, dir, "b.jsonl", userLine("2025-01-01T10:00:00Z", "chat b"))
	c := writeChat(t, dir, "c.jsonl", userLine("2025-01-03T10:00:00Z", "chat c"))

	doc, err := BuildDocument("Test Export", []string{a, b, c}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	posA := strings.Index(doc, "## Chat: a")
	posB := strings.Index(doc, "## Chat: b")
	posC := strings.Index(doc, "## Chat: c")
	if posA < 0 || posB < 0 || posC < 0 {
		t.Fatalf("missing chat sections: %q", doc)
	}
	if !(posB < posA && posA < posC) {
		t.Errorf("wrong chat order: b=%d a=%d c=%d", posB, posA, posC)
	}
}

func TestBuildDocument_Structure(t *testing.T) {
	dir := t.TempDir()
	a := writeChat(t, dir, "a.jsonl", userLine("2025-01-02T10:00:00Z", "hello"))

	doc, err := BuildDocument("My Export", []string{a}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(doc, "# My Export\n") {
		t.Errorf("missing title heading: %q", doc)
	}
	for _, want := range []string{"| Property | Value |", "| Chats | 1 |", "---", "## Chat: a", "| Session ID | s1 |"} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q in document", want)
		}
	}
}

func TestBuildDocument_ChatFilter(t *testing.T) {
	dir := t.TempDir()
	a := writeChat(t, dir, "a.jsonl", userLine("2025-01-01T10:00:00Z", "keep"))
	b := writeChat(t, dir, "b.jsonl", userLine("2025-01-02T10:00:00Z", "skip"))

	doc, err := BuildDocument("Export", []string{a, b}, Options{Chats: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "## Chat: a") || strings.Contains(doc, "## Chat: b") {
		t.Errorf("chat filter not applied: %q", doc)
	}
}

func TestBuildDocument_NoChats(t *testing.T) {
	if _, err := BuildDocument("Export", nil, Options{}); err != ErrNoChats {
		t.Errorf("expected ErrNoChats, got %v", err)
	}
}

func TestBuildDocument_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	good := writeChat(t, dir, "good.jsonl", userLine("2025-01-01T10:00:00Z", "fine"))

	// A directory masquerading as a chat file: opening succeeds, reading fails.
	bad := filepath.Join(dir, "bad.jsonl")
	if err := os.Mkdir(bad, 0o755); err != nil {
		t.Fatal(err)
	}

	doc, err := BuildDocument("Export", []string{good, bad}, Options{})
	if err != nil {
		t.Fatalf("bad chat must not fail the export: %v", err)
	}
	if !strings.Contains(doc, "## Chat: bad") {
		t.Errorf("bad chat heading missing: %q", doc)
	}
	if !strings.Contains(doc, "*Error processing this chat:") {
		t.Errorf("inline error note missing: %q", doc)
	}
	if !strings.Contains(doc, "fine") {
		t.Errorf("good chat was affected: %q", doc)
	}
}

func TestBuildDocument_MalformedLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	a := writeChat(t, dir, "a.jsonl",
		userLine("2025-01-01T10:00:00Z", "first"),
		"{this is not json",
		userLine("2025-01-01T10:05:00Z", "second"),
	)

	doc, err := BuildDocument("Export", []string{a}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "first") || !strings.Contains(doc, "second") {
		t.Errorf("sibling lines of a malformed line were lost: %q", doc)
	}
}
