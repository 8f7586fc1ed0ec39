// Package scan locates Claude Code project directories and the chat files
// inside them.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrProjectNotFound means the resolved project directory does not exist.
var ErrProjectNotFound = errors.New("project directory not found")

// ErrNoChatFiles means the project directory holds no matching chat files.
var ErrNoChatFiles = errors.New("no chat files found")

// ResolveProject turns a user-supplied project argument into a directory of
// chat files. An existing directory is used as-is; anything else is looked up
// under the Claude root using the projects-directory path encoding. An empty
// argument resolves the current working directory.
func ResolveProject(arg, claudeRoot string) (string, error) {
	if arg != "" {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			return arg, nil
		}
		candidate := filepath.Join(claudeRoot, encodeProjectPath(arg))
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		// Bare project directory name under the root.
		candidate = filepath.Join(claudeRoot, arg)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, arg)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	candidate := filepath.Join(claudeRoot, encodeProjectPath(cwd))
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %s (from %s)", ErrProjectNotFound, candidate, cwd)
}

// encodeProjectPath mirrors how Claude Code names per-project directories:
// path separators and dots replaced with dashes.
func encodeProjectPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ".", "-", ":", "-")
	return replacer.Replace(path)
}

// ListChatFiles returns the chat files inside projectPath, sorted by name.
// A non-empty chatIDs filter restricts the result to the named chats.
func ListChatFiles(projectPath string, chatIDs []string) ([]string, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectPath)
		}
		return nil, fmt.Errorf("stat project: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrProjectNotFound, projectPath)
	}

	entries, err := os.ReadDir(projectPath)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	wanted := make(map[string]bool, len(chatIDs))
	for _, id := range chatIDs {
		wanted[id] = true
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		if strings.Contains(e.Name(), "sessions-index") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".jsonl")
		if len(wanted) > 0 && !wanted[id] {
			continue
		}
		files = append(files, filepath.Join(projectPath, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoChatFiles, projectPath)
	}
	sort.Strings(files)
	return files, nil
}

// WalkProjects lists every project directory under the Claude root, for the
// catalog refresh and the session browser.
func WalkProjects(claudeRoot string) ([]string, error) {
	entries, err := os.ReadDir(claudeRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, claudeRoot)
		}
		return nil, fmt.Errorf("read claude root: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(claudeRoot, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
