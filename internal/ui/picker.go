// Package ui renders arbor's interactive surfaces.
//
// The picker is the interactive half of "arbor find": a fuzzy-filtered
// list over the registry, re-ranked on every keystroke. It renders to
// stderr so stdout stays clean for shell substitution, the same reason
// the output package splits data from diagnostics.
package ui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"
)

// PickerItem is one selectable row.
type PickerItem struct {
	Label  string // primary text, matched by the filter
	Detail string // dimmed secondary text (the local path)
}

// PickerResult holds the outcome of a picker run.
type PickerResult struct {
	Index     int // index into the items passed to Pick; -1 when cancelled
	Cancelled bool
}

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true)
	detailStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// maxVisible bounds the rendered list; the cursor scrolls the window.
const maxVisible = 10

// itemSource implements fuzzy.Source over item labels.
type itemSource []PickerItem

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

type pickerModel struct {
	input    textinput.Model
	items    []PickerItem
	filtered []fuzzy.Match
	cursor   int
	selected int // index into items; -1 while undecided
	done     bool
}

func newPickerModel(items []PickerItem) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.SetWidth(50)

	m := &pickerModel{
		input:    ti,
		items:    items,
		selected: -1,
	}
	m.applyFilter()
	return m
}

func (m *pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.filtered) {
			m.selected = m.filtered[m.cursor].Index
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m *pickerModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(detailStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.filtered[i]
		item := m.items[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		label := item.Label
		if m.input.Value() != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(item.Label, match.MatchedIndexes, i == m.cursor)
		} else if i == m.cursor {
			label = selectedStyle.Render(label)
		}

		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, label, detailStyle.Render(item.Detail)))
	}

	if end < len(m.filtered) {
		b.WriteString(detailStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(detailStyle.Render("  No matching repositories") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")

	return tea.NewView(b.String())
}

// applyFilter re-ranks the items against the current input. An empty
// filter keeps the caller's order (most recently opened first).
func (m *pickerModel) applyFilter() {
	query := m.input.Value()
	if query == "" {
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i := range m.items {
			m.filtered[i] = fuzzy.Match{Str: m.items[i].Label, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(query, itemSource(m.items))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// highlightMatches renders the label with matched characters highlighted.
func highlightMatches(label string, matchedIndexes []int, isSelected bool) string {
	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range []rune(label) {
		char := string(r)
		switch {
		case matchSet[i]:
			result.WriteString(matchStyle.Render(char))
		case isSelected:
			result.WriteString(selectedStyle.Render(char))
		default:
			result.WriteString(char)
		}
	}
	return result.String()
}

// Pick runs the interactive picker over items and returns the selected
// index. Items should arrive pre-ordered for the empty filter (the find
// verb passes them most recently opened first).
func Pick(items []PickerItem) (PickerResult, error) {
	if len(items) == 0 {
		return PickerResult{Index: -1, Cancelled: true}, nil
	}

	model := newPickerModel(items)

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	m := finalModel.(*pickerModel)
	if m.selected < 0 {
		return PickerResult{Index: -1, Cancelled: true}, nil
	}
	return PickerResult{Index: m.selected}, nil
}
