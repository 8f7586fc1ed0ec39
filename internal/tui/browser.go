// Package tui is the interactive session browser: filter sessions, preview
// the rendered Markdown, and export the selected one.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/szhu/claude-code-history-exporter/internal/catalog"
	"github.com/szhu/claude-code-history-exporter/internal/export"
)

// previewLimit caps how much of the rendered document the preview pane shows.
const previewLimit = 400 // lines

type previewMsg struct {
	key     string
	content string
}

type model struct {
	sessions    []catalog.Session
	filtered    []catalog.Session
	filterInput textinput.Model
	cursor      int
	listOffset  int
	preview     viewport.Model
	previewKey  string // session key of the currently rendered preview
	width       int
	height      int
	ready       bool
	quitting    bool
	selected    *catalog.Session
	title       string
}

func initialModel(sessions []catalog.Session, title string) model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Focus()
	ti.Prompt = "> "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	return model{
		sessions:    sessions,
		filtered:    sessions,
		filterInput: ti,
		preview:     viewport.New(0, 0),
		title:       title,
	}
}

// Run opens the browser over the cataloged sessions. When the user selects a
// session it is exported to outputDir and the output path is copied to the
// clipboard.
func Run(sessions []catalog.Session, title, outputDir string) error {
	m := initialModel(sessions, title)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	fm := finalModel.(model)
	if fm.selected == nil {
		return nil
	}
	return exportSession(*fm.selected, title, outputDir)
}

func exportSession(s catalog.Session, title, outputDir string) error {
	doc, err := export.BuildDocument(title, []string{s.FilePath}, export.Options{})
	if err != nil {
		return fmt.Errorf("export %s: %w", s.SessionKey, err)
	}

	name := strings.TrimSuffix(filepath.Base(s.FilePath), ".jsonl") + ".md"
	outPath := filepath.Join(outputDir, name)
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	if err := clipboard.WriteAll(outPath); err == nil {
		fmt.Printf("Exported %s (path copied to clipboard)\n", outPath)
	} else {
		fmt.Printf("Exported %s\n", outPath)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = m.previewWidth() - 2
		m.preview.Height = m.panelHeight() - 2
		m.ready = true
		return m, m.renderPreviewCmd()

	case previewMsg:
		if msg.key == m.currentKey() {
			m.previewKey = msg.key
			m.preview.SetContent(msg.content)
			m.preview.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.filtered) {
				s := m.filtered[m.cursor]
				m.selected = &s
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.adjustListScroll(m.panelHeight() - 2)
			return m, m.renderPreviewCmd()
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			m.adjustListScroll(m.panelHeight() - 2)
			return m, m.renderPreviewCmd()
		case key.Matches(msg, keys.PreviewUp):
			m.preview.HalfViewUp()
			return m, nil
		case key.Matches(msg, keys.PreviewDn):
			m.preview.HalfViewDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filterInput.Value()
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.applyFilter()
		return m, tea.Batch(cmd, m.renderPreviewCmd())
	}
	return m, cmd
}

func (m *model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if query == "" {
		m.filtered = m.sessions
	} else {
		var out []catalog.Session
		for _, s := range m.sessions {
			hay := strings.ToLower(s.Summary + " " + s.RepoCwd + " " + s.Project)
			if strings.Contains(hay, query) {
				out = append(out, s)
			}
		}
		m.filtered = out
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	m.listOffset = 0
}

func (m model) currentKey() string {
	if m.cursor < len(m.filtered) {
		return m.filtered[m.cursor].SessionKey
	}
	return ""
}

// renderPreviewCmd renders the selected session to Markdown off the update
// loop. Stale results are discarded by key in Update.
func (m model) renderPreviewCmd() tea.Cmd {
	if m.cursor >= len(m.filtered) {
		return nil
	}
	s := m.filtered[m.cursor]
	if s.SessionKey == m.previewKey {
		return nil
	}
	title := m.title
	return func() tea.Msg {
		doc, err := export.BuildDocument(title, []string{s.FilePath}, export.Options{})
		if err != nil {
			return previewMsg{key: s.SessionKey, content: "Error: " + err.Error()}
		}
		lines := strings.Split(doc, "\n")
		if len(lines) > previewLimit {
			lines = append(lines[:previewLimit], "...")
		}
		return previewMsg{key: s.SessionKey, content: strings.Join(lines, "\n")}
	}
}

func (m model) panelHeight() int {
	h := m.height - 3 // filter line + status bar
	if h < 4 {
		h = 4
	}
	return h
}

func (m model) listWidth() int {
	w := m.width / 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	w := m.width - m.listWidth()
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) View() string {
	if !m.ready || m.quitting {
		return ""
	}

	listPanel := stylePanelBorder.Width(m.listWidth() - 2).Height(m.panelHeight() - 2).
		Render(m.renderList(m.listWidth()-2, m.panelHeight()-2))
	previewPanel := stylePanelBorder.Width(m.previewWidth() - 2).Height(m.panelHeight() - 2).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	status := styleStatusBar.Render(fmt.Sprintf(
		"%d/%d sessions · enter export · esc quit", len(m.filtered), len(m.sessions))) +
		styleTitle.Render(" · "+m.title)

	return m.filterInput.View() + "\n" + panels + "\n" + status
}
