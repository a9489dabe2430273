package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ConflictResolution represents what to do with an existing file
type ConflictResolution int

const (
	Skip ConflictResolution = iota
	Overwrite
	ShowDiff
	Cancel
)

// Resolver handles file conflict resolution
type Resolver struct {
	strategy ConflictStrategy
}

// ConflictStrategy determines how to resolve conflicts
type ConflictStrategy interface {
	Resolve(path string, existing, newer []byte) (ConflictResolution, error)
}

// Lipgloss styles for terminal output
var (
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
)

// NewResolver creates a conflict resolver with the specified flags.
// Returns error if --force is combined with --skip or --diff.
func NewResolver(force, skip, diff bool) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}

	return &Resolver{strategy: selectStrategy(force, skip, diff)}, nil
}

// ResolveConflict determines what to do with a file that already exists.
// Returns the user's decision (or automatic decision based on flags).
func (r *Resolver) ResolveConflict(path string, existing, newer []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, existing, newer)
}

// selectStrategy chooses the appropriate strategy based on flags
func selectStrategy(force, skip, diff bool) ConflictStrategy {
	switch {
	case force:
		return &ForceStrategy{}
	case skip:
		return &SkipStrategy{}
	case diff:
		return &DiffStrategy{}
	default:
		return &InteractiveStrategy{}
	}
}

// ForceStrategy always returns Overwrite (no prompts)
type ForceStrategy struct{}

// Resolve always returns Overwrite for force mode
func (s *ForceStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy always returns Skip (no prompts)
type SkipStrategy struct{}

// Resolve always returns Skip for skip mode
func (s *SkipStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy shows diff then delegates to interactive
type DiffStrategy struct{}

// Resolve shows the diff and then prompts for decision
func (s *DiffStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	diff := GenerateDiffDefault(path, path, existing, newer)
	if diff == "" {
		// Same content, nothing to overwrite
		return Skip, nil
	}

	lineCount := strings.Count(diff, "\n")
	if lineCount > 20 && isTerminal() {
		// Show in full-screen viewport
		model := newDiffViewerModel(path, diff)
		p := tea.NewProgram(model, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return Cancel, fmt.Errorf("failed to show diff: %w", err)
		}

		if finalModel.(diffViewerModel).cancelled {
			return Cancel, nil
		}
	} else {
		// Print diff inline for small diffs
		fmt.Println(diff)
	}

	// Now show interactive menu for decision
	interactive := &InteractiveStrategy{}
	return interactive.Resolve(path, existing, newer)
}

// InteractiveStrategy shows menu with keyboard navigation
type InteractiveStrategy struct{}

// Resolve shows an interactive menu and returns the user's choice. Selecting
// "Show diff and decide" loops back to the menu after the diff, so the user
// can review it more than once. When stdin is not a terminal, there is nobody
// to ask: the conflict resolves to Cancel.
func (s *InteractiveStrategy) Resolve(path string, existing, newer []byte) (ConflictResolution, error) {
	if !isTerminal() {
		return Cancel, fmt.Errorf("conflict at %s and no terminal to ask; re-run with --force or --skip", path)
	}

	// Get file info
	fileInfo, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		return Cancel, fmt.Errorf("failed to stat file: %w", err)
	}

	model := newConflictMenuModel(path, fileInfo)
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return Cancel, fmt.Errorf("failed to show menu: %w", err)
	}

	result := finalModel.(conflictMenuModel)
	if result.selected == nil {
		return Cancel, nil
	}

	if *result.selected == ShowDiff {
		diffStrategy := &DiffStrategy{}
		return diffStrategy.Resolve(path, existing, newer)
	}

	return *result.selected, nil
}

// isTerminal reports whether stdin is attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// conflictMenuModel is the BubbleTea model for the conflict menu
type conflictMenuModel struct {
	path     string
	fileInfo os.FileInfo
	choices  []string
	cursor   int
	selected *ConflictResolution
}

// newConflictMenuModel creates a new conflict menu model
func newConflictMenuModel(path string, fileInfo os.FileInfo) conflictMenuModel {
	return conflictMenuModel{
		path:     path,
		fileInfo: fileInfo,
		choices: []string{
			"Show diff and decide",
			"Skip (keep existing file)",
			"Overwrite (replace with generated file)",
			"Cancel operation",
		},
		cursor: 0,
	}
}

// Init initializes the menu model
func (m conflictMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input
func (m conflictMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}

		case "enter":
			// Map selection to resolution
			resolution := mapChoiceToResolution(m.cursor)
			m.selected = &resolution
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu
func (m conflictMenuModel) View() string {
	var b strings.Builder

	// Header
	b.WriteString(warningStyle.Render("⚠️  File conflict detected: ") + titleStyle.Render(m.path) + "\n")

	// File info
	if m.fileInfo != nil {
		b.WriteString(mutedStyle.Render("    Size: ") + formatFileSize(m.fileInfo.Size()) + "\n")
	}

	b.WriteString("\n")

	// Instructions
	b.WriteString(mutedStyle.Render("    [↑/↓] Navigate    [Enter] Select    [q] Cancel") + "\n\n")

	// Choices
	for i, choice := range m.choices {
		cursor := "  "
		if m.cursor == i {
			cursor = "> "
			b.WriteString("    " + selectedStyle.Render(cursor+choice) + "\n")
		} else {
			b.WriteString("    " + cursor + choice + "\n")
		}
	}

	return b.String()
}

// mapChoiceToResolution maps cursor position to resolution
func mapChoiceToResolution(cursor int) ConflictResolution {
	switch cursor {
	case 0:
		return ShowDiff
	case 1:
		return Skip
	case 2:
		return Overwrite
	case 3:
		return Cancel
	default:
		return Cancel
	}
}

// diffViewerModel is the BubbleTea model for showing diffs
type diffViewerModel struct {
	path      string
	diff      string
	viewport  viewport.Model
	ready     bool
	cancelled bool
}

// newDiffViewerModel creates a new diff viewer model
func newDiffViewerModel(path, diff string) diffViewerModel {
	return diffViewerModel{
		path: path,
		diff: diff,
	}
}

// Init initializes the diff viewer
func (m diffViewerModel) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input and window sizing
func (m diffViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			m.viewport.LineUp(1)

		case "down", "j":
			m.viewport.LineDown(1)

		case "pgup", "b":
			m.viewport.ViewUp()

		case "pgdown", "f", "space":
			m.viewport.ViewDown()
		}

	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-verticalMargin)
			m.viewport.SetContent(m.diff)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - verticalMargin
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the diff viewer
func (m diffViewerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Diff: "+m.path) + "\n\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(mutedStyle.Render(" [↑/↓] Scroll    [q] Return to menu ") + "\n")
	return b.String()
}

// formatFileSize formats file size in human-readable format
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
