package prompt

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/textinput"
)

func newTextModel(prompt, placeholder string) textInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	return textInputModel{textInput: ti, prompt: prompt}
}

func TestTextInputTyping(t *testing.T) {
	t.Parallel()

	m := newTextModel("Root directory?", "~/src")
	for _, r := range "~/code" {
		updated, _ := m.Update(keyPress(string(r)))
		m = updated.(textInputModel)
	}

	if got := m.textInput.Value(); got != "~/code" {
		t.Errorf("value = %q, want ~/code", got)
	}

	updated, cmd := m.Update(keyPress("enter"))
	m = updated.(textInputModel)
	if !m.done || m.cancelled {
		t.Errorf("enter should finish without cancelling, done=%v cancelled=%v", m.done, m.cancelled)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestTextInputEscapeCancels(t *testing.T) {
	t.Parallel()

	m := newTextModel("Root directory?", "~/src")
	updated, _ := m.Update(keyPress("esc"))
	m = updated.(textInputModel)

	if !m.cancelled {
		t.Error("esc should cancel the prompt")
	}
}

func TestTextInputView(t *testing.T) {
	t.Parallel()

	m := newTextModel("Root directory?", "~/src")
	if got := m.render(); !strings.Contains(got, "Root directory?") {
		t.Errorf("render should show the prompt, got %q", got)
	}

	m.done = true
	if got := m.render(); got != "" {
		t.Errorf("finished prompt should render nothing, got %q", got)
	}
}
