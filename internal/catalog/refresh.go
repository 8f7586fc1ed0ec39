package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/szhu/claude-code-history-exporter/internal/parse"
	"github.com/szhu/claude-code-history-exporter/internal/scan"
)

const summaryMax = 200

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// Refresh walks every project under the Claude root and brings the catalog up
// to date. Unchanged files (same mtime and size) are skipped; sessions whose
// files vanished are pruned.
func Refresh(db *DB, claudeRoot string) (Stats, error) {
	var stats Stats

	projects, err := scan.WalkProjects(claudeRoot)
	if err != nil {
		return stats, err
	}

	seen := make(map[string]struct{})
	for _, project := range projects {
		files, err := scan.ListChatFiles(project, nil)
		if err != nil {
			continue // empty project directories are normal
		}
		for _, path := range files {
			stats.Scanned++
			key := sessionKey(claudeRoot, path)
			seen[key] = struct{}{}

			info, err := os.Stat(path)
			if err != nil {
				stats.Errors++
				continue
			}
			mtime, size, cached, err := db.Stamp(key)
			if err != nil {
				stats.Errors++
				continue
			}
			if cached && mtime == info.ModTime().Unix() && size == info.Size() {
				stats.Skipped++
				continue
			}

			session, err := summarize(path)
			if err != nil {
				stats.Errors++
				fmt.Fprintf(os.Stderr, "WARN: catalog %s: %v\n", path, err)
				continue
			}
			session.SessionKey = key
			session.Project = filepath.Base(project)
			session.FilePath = path
			session.Mtime = info.ModTime().Unix()
			session.Size = info.Size()
			if err := db.Upsert(session); err != nil {
				stats.Errors++
				continue
			}
			stats.Updated++
		}
	}

	keys, err := db.AllKeys()
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	for key := range keys {
		if _, ok := seen[key]; !ok {
			if err := db.Delete(key); err != nil {
				return stats, fmt.Errorf("prune: %w", err)
			}
			stats.Pruned++
		}
	}
	return stats, nil
}

func sessionKey(claudeRoot, path string) string {
	rel, err := filepath.Rel(claudeRoot, path)
	if err != nil {
		rel = path
	}
	return strings.TrimSuffix(rel, ".jsonl")
}

// summarize decodes one log and distills the catalog row: time span, message
// count, working directory, and a one-line summary (the session's summary
// record when present, otherwise the head of the first user message).
func summarize(path string) (Session, error) {
	records, err := parse.DecodeLogFile(path)
	if err != nil {
		return Session{}, err
	}

	var s Session
	var firstTS, lastTS time.Time
	var firstUserText string

	for _, rec := range records {
		switch r := rec.(type) {
		case parse.SessionSummary:
			s.Summary = r.Summary
		case parse.ChatMessage:
			s.MessageCount++
			if s.RepoCwd == "" {
				s.RepoCwd = r.Cwd
			}
			if !r.Timestamp.IsZero() {
				if firstTS.IsZero() || r.Timestamp.Before(firstTS) {
					firstTS = r.Timestamp
				}
				if r.Timestamp.After(lastTS) {
					lastTS = r.Timestamp
				}
			}
			if firstUserText == "" && r.Role == "user" {
				for _, b := range r.Blocks {
					if t, ok := b.(parse.TextBlock); ok {
						firstUserText = t.Text
						break
					}
				}
			}
		}
	}

	if s.Summary == "" && firstUserText != "" {
		line := strings.ReplaceAll(firstUserText, "\n", " ")
		if runewidth.StringWidth(line) > summaryMax {
			line = runewidth.Truncate(line, summaryMax, "")
		}
		s.Summary = line
	}
	if !firstTS.IsZero() {
		s.CreatedAt = firstTS.Format("2006-01-02T15:04:05Z")
		s.UpdatedAt = lastTS.Format("2006-01-02T15:04:05Z")
	}
	return s, nil
}
