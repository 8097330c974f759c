package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormModel is a vertical stack of labelled text inputs. Enter on the last
// field submits; tab, shift+tab, up and down move between fields.
type FormModel struct {
	title     string
	labels    []string
	inputs    []textinput.Model
	focus     int
	submitted bool
	err       string
	st        styles
}

func NewFormModel(st styles, title string, labels ...string) FormModel {
	inputs := make([]textinput.Model, len(labels))
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l
		ti.Prompt = "> "
		ti.CharLimit = 128
		ti.Width = 40
		inputs[i] = ti
	}
	f := FormModel{title: title, labels: labels, inputs: inputs, st: st}
	if len(inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	f.submitted = false

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if f.focus == len(f.inputs)-1 {
				f.submitted = true
				return f, nil
			}
			return f, f.setFocus(f.focus + 1)
		case "tab", "down":
			return f, f.setFocus((f.focus + 1) % len(f.inputs))
		case "shift+tab", "up":
			return f, f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *FormModel) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

// Submitted is true right after enter on the last field.
func (f FormModel) Submitted() bool {
	return f.submitted
}

// Value returns the trimmed text of field i.
func (f FormModel) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// SetError shows msg under the form and moves focus to field i.
func (f *FormModel) SetError(msg string, field int) tea.Cmd {
	f.err = msg
	return f.setFocus(field)
}

// Reset clears every field and the error, focusing the first field.
func (f *FormModel) Reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.err = ""
	return f.setFocus(0)
}

func (f FormModel) View() string {
	var b strings.Builder
	b.WriteString(f.st.title.Render(f.title) + "\n\n")
	for i, in := range f.inputs {
		b.WriteString("  " + f.st.label.Render(f.labels[i]) + "\n")
		b.WriteString("  " + in.View() + "\n\n")
	}
	if f.err != "" {
		b.WriteString("  " + f.st.errorText.Render(f.err) + "\n")
	}
	return b.String()
}
