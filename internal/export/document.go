package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/szhu/claude-code-history-exporter/internal/markdown"
	"github.com/szhu/claude-code-history-exporter/internal/parse"
)

// Options controls document assembly.
type Options struct {
	// Chats restricts the export to the named chat ids (file base names).
	Chats []string
	// Output is where the caller intends to write the document. Recorded
	// for symmetry with the CLI flags; assembly itself never touches it.
	Output string
	// Reserved toggles.
	IncludeMetadata   bool
	IncludeTimestamps bool
}

// ErrNoChats means no chat file survived the Options.Chats filter.
var ErrNoChats = errors.New("no chat files to export")

// BuildDocument renders the given chat files into one Markdown document:
// title, export metadata, then each chat in ascending order of its first
// record's timestamp. A chat that fails to decode is replaced by an inline
// error note; the remaining chats are unaffected.
func BuildDocument(title string, paths []string, opts Options) (string, error) {
	paths = filterChats(paths, opts.Chats)
	if len(paths) == 0 {
		return "", ErrNoChats
	}
	paths = sortByStartTime(paths)

	nodes := []markdown.Node{
		markdown.H(1, markdown.T(title)),
	}
	nodes = append(nodes, markdown.MetadataTable([]markdown.MetaPair{
		{Key: "Exported", Value: formatTimestamp(time.Now())},
		{Key: "Chats", Value: fmt.Sprintf("%d", len(paths))},
	})...)
	nodes = append(nodes, markdown.ThematicBreak{})

	for _, path := range paths {
		nodes = append(nodes, markdown.H(2, markdown.T("Chat: "+chatID(path))))
		nodes = append(nodes, renderChat(path)...)
		nodes = append(nodes, markdown.ThematicBreak{})
	}

	return markdown.Stringify(nodes), nil
}

// renderChat produces one chat section's nodes. Decode failures are isolated
// to an italic error paragraph so sibling chats still export.
func renderChat(path string) []markdown.Node {
	records, err := parse.DecodeLogFile(path)
	if err != nil {
		return []markdown.Node{errorParagraph(err)}
	}

	records, index := Reconcile(records)

	var nodes []markdown.Node
	nodes = append(nodes, markdown.MetadataTable(ExtractMetadata(records))...)
	for _, rec := range records {
		nodes = append(nodes, RenderRecord(rec, index)...)
	}
	return nodes
}

func errorParagraph(err error) markdown.Node {
	return markdown.P(markdown.Emph{Children: []markdown.Node{
		markdown.T("Error processing this chat: " + err.Error()),
	}})
}

// chatID is the chat's identifier: the file name without its extension.
func chatID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func filterChats(paths, ids []string) []string {
	if len(ids) == 0 {
		return paths
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []string
	for _, p := range paths {
		if wanted[chatID(p)] {
			out = append(out, p)
		}
	}
	return out
}

// sortByStartTime orders chats by their first record's timestamp, ascending.
// The per-file probes are independent reads and run concurrently; everything
// is awaited before sorting.
func sortByStartTime(paths []string) []string {
	type dated struct {
		path  string
		start time.Time
	}
	entries := make([]dated, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			start, _ := parse.PeekStartTime(path)
			entries[i] = dated{path: path, start: start}
		}(i, path)
	}
	wg.Wait()

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].start.Before(entries[b].start)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}
