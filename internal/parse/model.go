// Package parse decodes Claude Code session logs (one JSON object per line)
// into typed records. Malformed lines are skipped with a warning; the whole
// file fails only when it cannot be read.
package parse

import "time"

// Record is one decoded line of a session log. The variant set is closed:
// ChatMessage, SystemNotice, and SessionSummary.
type Record interface {
	record()
}

// ChatMessage is a user or assistant turn.
type ChatMessage struct {
	Role      string // "user" or "assistant"
	Blocks    []ContentBlock
	Timestamp time.Time
	SessionID string
	Cwd       string
	Version   string
	GitBranch string
	Model     string // assistant turns only
	Usage     *Usage // assistant turns only
}

// SystemNotice is a system-generated log line shown to the user.
type SystemNotice struct {
	Text      string
	Timestamp time.Time
}

// SessionSummary is a standalone conversation summary record. It carries no
// timestamp of its own.
type SessionSummary struct {
	Summary string
}

func (ChatMessage) record()    {}
func (SystemNotice) record()   {}
func (SessionSummary) record() {}

// ContentBlock is one element of a chat message's content list. Variants:
// TextBlock, ToolUseBlock, ToolResultBlock, ThinkingBlock.
type ContentBlock interface {
	contentBlock()
}

// TextBlock is plain message text.
type TextBlock struct {
	Text string
}

// ToolUseBlock is the assistant requesting execution of a named tool.
type ToolUseBlock struct {
	ID    string
	Name  string
	Input map[string]any
	// RawInput is the undecoded parameter object, kept so parameter dumps
	// preserve the original key order.
	RawInput []byte
}

// ToolResultBlock answers a prior ToolUseBlock, matched by ToolUseID.
// Structured payloads are flattened to text at decode time.
type ToolResultBlock struct {
	ToolUseID string
	Content   string
	IsError   bool
}

// ThinkingBlock is internal model reasoning. It is never rendered.
type ThinkingBlock struct {
	Text string
}

func (TextBlock) contentBlock()       {}
func (ToolUseBlock) contentBlock()    {}
func (ToolResultBlock) contentBlock() {}
func (ThinkingBlock) contentBlock()   {}

// Usage holds per-message token counters.
type Usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}
