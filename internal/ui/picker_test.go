package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func items() []PickerItem {
	return []PickerItem{
		{Label: "github.com/alice/proj", Detail: "/r/github.com/alice/proj"},
		{Label: "github.com/bob/tool", Detail: "/r/github.com/bob/tool"},
		{Label: "gitlab.com/carol/app", Detail: "/r/gitlab.com/carol/app"},
	}
}

func press(m *pickerModel, key tea.KeyPressMsg) *pickerModel {
	updated, _ := m.Update(key)
	return updated.(*pickerModel)
}

func TestPickerEnterSelectsCursor(t *testing.T) {
	t.Parallel()

	m := newPickerModel(items())
	m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if !m.done {
		t.Error("enter should finish the picker")
	}
	if m.selected != 1 {
		t.Errorf("selected = %d, want 1", m.selected)
	}
}

func TestPickerEscCancels(t *testing.T) {
	t.Parallel()

	m := newPickerModel(items())
	m = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})

	if !m.done {
		t.Error("esc should finish the picker")
	}
	if m.selected != -1 {
		t.Errorf("selected = %d, want -1", m.selected)
	}
}

func TestPickerFilterNarrowsAndSelects(t *testing.T) {
	t.Parallel()

	m := newPickerModel(items())
	for _, r := range "carol" {
		m = press(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}

	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %d entries, want 1", len(m.filtered))
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.selected != 2 {
		t.Errorf("selected = %d, want original index 2", m.selected)
	}
}

func TestPickerEmptyFilterKeepsOrder(t *testing.T) {
	t.Parallel()

	m := newPickerModel(items())
	if len(m.filtered) != 3 {
		t.Fatalf("filtered = %d entries, want all 3", len(m.filtered))
	}
	for i, match := range m.filtered {
		if match.Index != i {
			t.Errorf("filtered[%d].Index = %d, want caller order preserved", i, match.Index)
		}
	}
}

func TestPickerCursorBounds(t *testing.T) {
	t.Parallel()

	m := newPickerModel(items())
	m = press(m, tea.KeyPressMsg{Code: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped at 0", m.cursor)
	}

	for range 10 {
		m = press(m, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want clamped at last item", m.cursor)
	}
}
