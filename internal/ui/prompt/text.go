package prompt

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// render builds the prompt and input line; View wraps it for bubbletea.
func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View())
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}

// TextInput shows a text input prompt and returns the user's input.
// An empty submission falls back to placeholder.
func TextInput(prompt, placeholder string) (TextInputResult, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	model := textInputModel{
		textInput: ti,
		prompt:    prompt,
	}
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)

	value := m.textInput.Value()
	if value == "" {
		value = placeholder
	}
	return TextInputResult{
		Value:     value,
		Cancelled: m.cancelled,
	}, nil
}
