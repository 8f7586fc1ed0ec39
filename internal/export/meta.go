package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/szhu/claude-code-history-exporter/internal/markdown"
	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

// ExtractMetadata derives the chat metadata table pairs from a record list:
// identity, environment, time span, message counts, and token usage. Pairs
// whose value is absent from the log are omitted.
func ExtractMetadata(records []parse.Record) []markdown.MetaPair {
	var (
		sessionID, cwd, version, branch string
		firstTS, lastTS                 time.Time
		userCount, assistantCount       int
		usage                           parse.Usage
		models                          []string
		seenModels                      = map[string]bool{}
	)

	for _, rec := range records {
		msg, ok := rec.(parse.ChatMessage)
		if !ok {
			continue
		}
		if sessionID == "" {
			sessionID = msg.SessionID
		}
		if cwd == "" {
			cwd = msg.Cwd
		}
		if version == "" {
			version = msg.Version
		}
		if branch == "" {
			branch = msg.GitBranch
		}
		if !msg.Timestamp.IsZero() {
			if firstTS.IsZero() || msg.Timestamp.Before(firstTS) {
				firstTS = msg.Timestamp
			}
			if msg.Timestamp.After(lastTS) {
				lastTS = msg.Timestamp
			}
		}
		switch msg.Role {
		case "user":
			userCount++
		default:
			assistantCount++
		}
		if msg.Model != "" && !seenModels[msg.Model] {
			seenModels[msg.Model] = true
			models = append(models, msg.Model)
		}
		if msg.Usage != nil {
			usage.InputTokens += msg.Usage.InputTokens
			usage.OutputTokens += msg.Usage.OutputTokens
			usage.CacheCreationInputTokens += msg.Usage.CacheCreationInputTokens
			usage.CacheReadInputTokens += msg.Usage.CacheReadInputTokens
		}
	}

	var pairs []markdown.MetaPair
	add := func(key, value string) {
		if value != "" {
			pairs = append(pairs, markdown.MetaPair{Key: key, Value: value})
		}
	}

	add("Session ID", sessionID)
	add("Working Directory", cwd)
	add("Tool Version", version)
	add("Git Branch", branch)
	add("Models", strings.Join(models, ", "))
	if !firstTS.IsZero() {
		add("Started", formatTimestamp(firstTS))
		add("Last Activity", formatTimestamp(lastTS))
	}
	if userCount+assistantCount > 0 {
		add("Messages", fmt.Sprintf("%d user, %d assistant", userCount, assistantCount))
	}
	if usage.InputTokens+usage.OutputTokens > 0 {
		add("Token Usage", fmt.Sprintf("%d in / %d out", usage.InputTokens, usage.OutputTokens))
	}
	if usage.CacheReadInputTokens+usage.CacheCreationInputTokens > 0 {
		add("Cache Tokens", fmt.Sprintf("%d read / %d created",
			usage.CacheReadInputTokens, usage.CacheCreationInputTokens))
	}
	return pairs
}
