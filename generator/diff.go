package generator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DiffOptions configures how diffs are generated and displayed.
// All fields are optional with sensible defaults.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines to show around changes.
	// Default: 3
	ContextLines int

	// TabWidth is the number of spaces each tab character expands to.
	// Default: 4
	TabWidth int
}

// Lipgloss styles for terminal output
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// GenerateDiffDefault is a convenience wrapper using default options.
func GenerateDiffDefault(oldPath, newPath string, old, newer []byte) string {
	return GenerateDiff(oldPath, newPath, old, newer, nil)
}

// GenerateDiff creates a styled unified diff between two file contents.
// Returns the empty string when the contents are identical. Generated
// scaffold files are small; a quadratic LCS is fine here.
func GenerateDiff(oldPath, newPath string, old, newer []byte, opts *DiffOptions) string {
	if opts == nil {
		opts = &DiffOptions{}
	}
	if opts.ContextLines == 0 {
		opts.ContextLines = 3
	}
	if opts.TabWidth == 0 {
		opts.TabWidth = 4
	}

	if isBinary(old) || isBinary(newer) {
		return "Binary files differ\n"
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))

	edits := computeEditScript(oldLines, newLines)
	hunks := buildHunks(edits, opts.ContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(headerStyle.Render("--- "+oldPath) + "\n")
	buf.WriteString(headerStyle.Render("+++ "+newPath) + "\n")

	tab := strings.Repeat(" ", opts.TabWidth)
	for _, h := range hunks {
		buf.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			h.oldStart, h.oldCount, h.newStart, h.newCount)) + "\n")
		for _, l := range h.lines {
			content := strings.ReplaceAll(l.content, "\t", tab)
			switch l.op {
			case opAdded:
				buf.WriteString(addedStyle.Render("+"+content) + "\n")
			case opRemoved:
				buf.WriteString(removedStyle.Render("-"+content) + "\n")
			default:
				buf.WriteString(" " + content + "\n")
			}
		}
	}

	return buf.String()
}

// operation represents the type of diff operation
type operation int

const (
	opUnchanged operation = iota
	opAdded
	opRemoved
)

// diffLine represents a single line in the diff with its operation
type diffLine struct {
	oldLineNum int       // Line number in old file (0 if added)
	newLineNum int       // Line number in new file (0 if removed)
	content    string    // Line content
	op         operation // Operation type
}

// hunk represents a contiguous block of changes with surrounding context
type hunk struct {
	oldStart int
	oldCount int
	newStart int
	newCount int
	lines    []diffLine
}

// computeEditScript produces the full line-level edit script between two
// files using a longest-common-subsequence table.
func computeEditScript(old, newer []string) []diffLine {
	n, m := len(old), len(newer)

	// lcs[i][j] = LCS length of old[i:] and newer[j:]
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if old[i] == newer[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var edits []diffLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case old[i] == newer[j]:
			edits = append(edits, diffLine{oldLineNum: i + 1, newLineNum: j + 1, content: old[i], op: opUnchanged})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			edits = append(edits, diffLine{oldLineNum: i + 1, content: old[i], op: opRemoved})
			i++
		default:
			edits = append(edits, diffLine{newLineNum: j + 1, content: newer[j], op: opAdded})
			j++
		}
	}
	for ; i < n; i++ {
		edits = append(edits, diffLine{oldLineNum: i + 1, content: old[i], op: opRemoved})
	}
	for ; j < m; j++ {
		edits = append(edits, diffLine{newLineNum: j + 1, content: newer[j], op: opAdded})
	}

	return edits
}

// buildHunks groups changed lines into hunks with surrounding context.
func buildHunks(edits []diffLine, contextLines int) []hunk {
	// Indexes of changed lines
	var changed []int
	for i, e := range edits {
		if e.op != opUnchanged {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var hunks []hunk
	start := maxInt(0, changed[0]-contextLines)
	end := minInt(len(edits), changed[0]+contextLines+1)

	for _, idx := range changed[1:] {
		// Merge into the current hunk when context regions touch
		if idx-contextLines <= end {
			end = minInt(len(edits), idx+contextLines+1)
			continue
		}
		hunks = append(hunks, makeHunk(edits[start:end]))
		start = maxInt(0, idx-contextLines)
		end = minInt(len(edits), idx+contextLines+1)
	}
	hunks = append(hunks, makeHunk(edits[start:end]))

	return hunks
}

// makeHunk derives the header counts from a slice of the edit script.
func makeHunk(lines []diffLine) hunk {
	h := hunk{lines: lines}
	for _, l := range lines {
		if l.op != opAdded {
			if h.oldStart == 0 {
				h.oldStart = l.oldLineNum
			}
			h.oldCount++
		}
		if l.op != opRemoved {
			if h.newStart == 0 {
				h.newStart = l.newLineNum
			}
			h.newCount++
		}
	}
	return h
}

// splitLines splits content into lines without trailing newlines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// isBinary reports whether content looks binary (contains a NUL byte in the
// first 8KB).
func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 8192 {
		probe = probe[:8192]
	}
	for _, b := range probe {
		if b == 0 {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
