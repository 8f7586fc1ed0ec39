// Package export turns decoded session records into a Markdown document:
// tool calls are matched to their results, each record becomes a node list,
// and long content is folded behind disclosure blocks.
package export

import (
	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

// ToolResultIndex maps a tool invocation id to the text of its result. It is
// built once per chat and read-only afterward.
type ToolResultIndex map[string]string

// Reconcile matches tool invocations to their results across a chat's full
// record list. It returns the surviving records in their original order plus
// the result index.
//
// User messages whose content is nothing but tool results exist only to carry
// results back to the assistant; they are folded into the index and dropped
// from the record stream. When an invocation id appears more than once the
// last payload wins.
func Reconcile(records []parse.Record) ([]parse.Record, ToolResultIndex) {
	index := ToolResultIndex{}

	for _, rec := range records {
		msg, ok := rec.(parse.ChatMessage)
		if !ok || msg.Role != "user" {
			continue
		}
		for _, block := range msg.Blocks {
			if res, ok := block.(parse.ToolResultBlock); ok && res.ToolUseID != "" {
				index[res.ToolUseID] = res.Content
			}
		}
	}

	out := make([]parse.Record, 0, len(records))
	for _, rec := range records {
		if msg, ok := rec.(parse.ChatMessage); ok && msg.Role == "user" && onlyToolResults(msg.Blocks) {
			continue
		}
		out = append(out, rec)
	}
	return out, index
}

func onlyToolResults(blocks []parse.ContentBlock) bool {
	if len(blocks) == 0 {
		return false
	}
	for _, b := range blocks {
		if _, ok := b.(parse.ToolResultBlock); !ok {
			return false
		}
	}
	return true
}
