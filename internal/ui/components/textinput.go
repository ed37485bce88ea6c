package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Field is a focused single-line input with the app's prompt.
type Field struct {
	input textinput.Model
}

// NewField creates a focused Field. A limit of 0 leaves the length open.
func NewField(placeholder string, limit int) Field {
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Focus()
	return Field{input: in}
}

// Focus gives the field the cursor and returns its blink command.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Reset empties the field and focuses it.
func (f *Field) Reset() tea.Cmd {
	f.input.Reset()
	return f.Focus()
}

func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f Field) View() string {
	return f.input.View()
}

func (f Field) Value() string {
	return f.input.Value()
}

func (f *Field) SetValue(s string) {
	f.input.SetValue(s)
}
