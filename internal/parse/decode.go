package parse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// Record types that carry nothing renderable and are dropped without a warning.
var silentTypes = map[string]bool{
	"file-history-snapshot": true,
	"queue-operation":       true,
}

type rawRecord struct {
	Type      string          `json:"type"`
	IsMeta    bool            `json:"isMeta"`
	Timestamp string          `json:"timestamp"`
	Cwd       string          `json:"cwd"`
	SessionID string          `json:"sessionId"`
	Version   string          `json:"version"`
	GitBranch string          `json:"gitBranch"`
	Content   string          `json:"content"` // type="system"
	Summary   string          `json:"summary"` // type="summary"
	Message   json.RawMessage `json:"message"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
	Usage   *Usage          `json:"usage"`
}

type rawBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
}

// DecodeLogFile reads one session log and returns its records in file order.
// Individual lines that fail to decode are skipped with a warning on stderr.
func DecodeLogFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chat file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s:%d: skipping malformed line: %v\n", filepath.Base(path), lineNum, err)
			continue
		}

		rec, ok := decodeRecord(raw)
		if ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chat file: %w", err)
	}
	return records, nil
}

func decodeRecord(raw rawRecord) (Record, bool) {
	if raw.IsMeta || silentTypes[raw.Type] {
		return nil, false
	}

	switch raw.Type {
	case "summary":
		if raw.Summary == "" {
			return nil, false
		}
		return SessionSummary{Summary: raw.Summary}, true
	case "system":
		if raw.Content == "" {
			return nil, false
		}
		return SystemNotice{Text: raw.Content, Timestamp: parseTimestamp(raw.Timestamp)}, true
	}

	// Everything else is treated as a chat message when it carries one.
	// Unknown roles are rendered assistant-like downstream, never raw.
	if len(raw.Message) == 0 {
		return nil, false
	}
	var msg rawMessage
	if err := json.Unmarshal(raw.Message, &msg); err != nil {
		return nil, false
	}
	role := msg.Role
	if role == "" {
		role = raw.Type
	}
	blocks := decodeContent(msg.Content)
	if len(blocks) == 0 {
		return nil, false
	}
	return ChatMessage{
		Role:      role,
		Blocks:    blocks,
		Timestamp: parseTimestamp(raw.Timestamp),
		SessionID: raw.SessionID,
		Cwd:       raw.Cwd,
		Version:   raw.Version,
		GitBranch: raw.GitBranch,
		Model:     msg.Model,
		Usage:     msg.Usage,
	}, true
}

// decodeContent handles the polymorphic message content: either a bare string
// or an array of typed blocks.
func decodeContent(raw json.RawMessage) []ContentBlock {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []ContentBlock{TextBlock{Text: s}}
	}

	var rawBlocks []rawBlock
	if err := json.Unmarshal(raw, &rawBlocks); err != nil {
		return nil
	}

	var blocks []ContentBlock
	for _, b := range rawBlocks {
		switch b.Type {
		case "text":
			if b.Text != "" {
				blocks = append(blocks, TextBlock{Text: b.Text})
			}
		case "thinking":
			text := b.Thinking
			if text == "" {
				text = b.Text
			}
			blocks = append(blocks, ThinkingBlock{Text: text})
		case "tool_use":
			var input map[string]any
			if len(b.Input) > 0 {
				json.Unmarshal(b.Input, &input)
			}
			blocks = append(blocks, ToolUseBlock{
				ID:       b.ID,
				Name:     b.Name,
				Input:    input,
				RawInput: b.Input,
			})
		case "tool_result":
			blocks = append(blocks, ToolResultBlock{
				ToolUseID: b.ToolUseID,
				Content:   flattenResultContent(b.Content),
				IsError:   b.IsError,
			})
		}
	}
	return blocks
}

// flattenResultContent reduces a tool result payload to text. Payloads arrive
// as a plain string, as a list of text blocks, or occasionally as arbitrary
// JSON, which is kept pretty-printed.
func flattenResultContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts []rawBlock
	if err := json.Unmarshal(raw, &parts); err == nil {
		var texts []string
		for _, p := range parts {
			if p.Type == "text" && p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err == nil {
		return buf.String()
	}
	return string(raw)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
