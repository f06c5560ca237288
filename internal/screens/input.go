package screens

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 48
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// fields is an ordered group of text inputs with a single focused entry.
type fields struct {
	inputs []textinput.Model
	labels []string
	focus  int
}

func newFields(labels, placeholders []string) fields {
	f := fields{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range labels {
		f.inputs[i] = newInput(placeholders[i])
	}
	f.inputs[0].Focus()
	return f
}

func (f *fields) setFocus(i int) {
	n := len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = ((i % n) + n) % n
	f.inputs[f.focus].Focus()
}

func (f *fields) next() { f.setFocus(f.focus + 1) }
func (f *fields) prev() { f.setFocus(f.focus - 1) }

func (f fields) last() bool { return f.focus == len(f.inputs)-1 }

func (f fields) value(i int) string { return f.inputs[i].Value() }

// update forwards msg to the focused input only.
func (f *fields) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f fields) view(s Styles) string {
	var out string
	for i, in := range f.inputs {
		label := s.Label.Render(f.labels[i] + ":")
		if i == f.focus {
			label = s.Selected.Render(f.labels[i] + ":")
		}
		out += label + " " + in.View() + "\n"
	}
	return out
}
