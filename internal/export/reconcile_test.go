package export

import (
	"testing"

	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

func TestReconcile_MatchesResultAndDropsCarrier(t *testing.T) {
	records := []parse.Record{
		parse.ChatMessage{Role: "assistant", Blocks: []parse.ContentBlock{
			parse.ToolUseBlock{ID: "t1", Name: "Bash", Input: map[string]any{"command": "ls"}, RawInput: []byte(`{"command":"ls"}`)},
		}},
		parse.ChatMessage{Role: "user", Blocks: []parse.ContentBlock{
			parse.ToolResultBlock{ToolUseID: "t1", Content: "file-a\nfile-b"},
		}},
	}

	out, index := Reconcile(records)
	if len(out) != 1 {
		t.Fatalf("expected the carrier message dropped, got %d records", len(out))
	}
	if _, ok := out[0].(parse.ChatMessage); !ok {
		t.Fatalf("surviving record has wrong type %T", out[0])
	}
	if index["t1"] != "file-a\nfile-b" {
		t.Errorf("result not indexed: %q", index["t1"])
	}
}

func TestReconcile_DuplicateIDLastWins(t *testing.T) {
	records := []parse.Record{
		parse.ChatMessage{Role: "user", Blocks: []parse.ContentBlock{
			parse.ToolResultBlock{ToolUseID: "t1", Content: "first"},
		}},
		parse.ChatMessage{Role: "user", Blocks: []parse.ContentBlock{
			parse.ToolResultBlock{ToolUseID: "t1", Content: "second"},
		}},
	}
	_, index := Reconcile(records)
	if index["t1"] != "second" {
		t.Errorf("expected last write to win, got %q", index["t1"])
	}
}

func TestReconcile_MixedUserMessageSurvives(t *testing.T) {
	records := []parse.Record{
		parse.ChatMessage{Role: "user", Blocks: []parse.ContentBlock{
			parse.ToolResultBlock{ToolUseID: "t1", Content: "res"},
			parse.TextBlock{Text: "and my comment"},
		}},
	}
	out, index := Reconcile(records)
	if len(out) != 1 {
		t.Fatalf("mixed message must survive, got %d records", len(out))
	}
	if index["t1"] != "res" {
		t.Errorf("result from mixed message not indexed")
	}
}

func TestReconcile_PreservesOrder(t *testing.T) {
	records := []parse.Record{
		parse.SessionSummary{Summary: "s"},
		parse.ChatMessage{Role: "user", Blocks: []parse.ContentBlock{parse.TextBlock{Text: "hi"}}},
		parse.SystemNotice{Text: "note"},
		parse.ChatMessage{Role: "assistant", Blocks: []parse.ContentBlock{parse.TextBlock{Text: "yo"}}},
	}
	out, _ := Reconcile(records)
	if len(out) != 4 {
		t.Fatalf("expected all records to survive, got %d", len(out))
	}
	if _, ok := out[0].(parse.SessionSummary); !ok {
		t.Errorf("order changed: first is %T", out[0])
	}
	if _, ok := out[2].(parse.SystemNotice); !ok {
		t.Errorf("order changed: third is %T", out[2])
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	records := []parse.Record{
		parse.ChatMessage{Role: "assistant", Blocks: []parse.ContentBlock{
			parse.ToolUseBlock{ID: "t1", Name: "Read"},
		}},
		parse.ChatMessage{Role: "user", Blocks: []parse.ContentBlock{
			parse.ToolResultBlock{ToolUseID: "t1", Content: "contents"},
		}},
	}
	once, _ := Reconcile(records)
	twice, index := Reconcile(once)
	if len(twice) != len(once) {
		t.Errorf("second pass changed record count: %d vs %d", len(twice), len(once))
	}
	if len(index) != 0 {
		t.Errorf("second pass found results that were already folded: %v", index)
	}
}
