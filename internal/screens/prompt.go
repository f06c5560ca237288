package screens

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/session"
)

const (
	promptName = iota
	promptPassword
	promptNickname
)

// PromptModel is the welcome prompt asking for credentials and a nickname.
type PromptModel struct {
	fields      fields
	nicknames   Nicknames
	creds       session.Credentials
	dismissable bool
	errText     string
}

// NewPromptModel builds an empty prompt. When dismissable is false the
// prompt cannot be left without confirming.
func NewPromptModel(nicknames Nicknames, creds session.Credentials, dismissable bool) PromptModel {
	f := newFields(
		[]string{"Name", "Password", "Nickname"},
		[]string{"Name", "Password", "Nickname"},
	)
	f.inputs[promptPassword].EchoMode = textinput.EchoPassword
	return PromptModel{fields: f, nicknames: nicknames, creds: creds, dismissable: dismissable}
}

func (m PromptModel) submit() tea.Cmd {
	w := session.Welcome{
		Name:     m.fields.value(promptName),
		Password: m.fields.value(promptPassword),
		Nickname: m.fields.value(promptNickname),
	}
	nicknames, creds := m.nicknames, m.creds
	return func() tea.Msg {
		nick, err := nicknames.Confirm(creds, w)
		return nicknameMsg{nickname: nick, err: err}
	}
}

// Update handles key input and failed confirmations.
func (m PromptModel) Update(msg tea.Msg) (PromptModel, tea.Cmd) {
	switch msg := msg.(type) {
	case nicknameMsg:
		switch {
		case errors.Is(msg.err, session.ErrInvalidWelcome):
			m.errText = "Fill in all fields correctly."
		case msg.err != nil:
			m.errText = genericFailure
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.dismissable {
				return m, back
			}
			return m, nil
		case "tab", "down":
			m.fields.next()
			return m, nil
		case "shift+tab", "up":
			m.fields.prev()
			return m, nil
		case "enter":
			if !m.fields.last() {
				m.fields.next()
				return m, nil
			}
			m.errText = ""
			return m, m.submit()
		case "ctrl+s":
			m.errText = ""
			return m, m.submit()
		}
	}
	return m, m.fields.update(msg)
}

// View renders the prompt.
func (m PromptModel) View(s Styles) string {
	out := s.Title.Render("Welcome!") + "\n" + m.fields.view(s)
	if m.errText != "" {
		out += s.Error.Render(m.errText) + "\n"
	}
	help := "tab next field • enter confirm"
	if m.dismissable {
		help += " • esc back"
	}
	return out + s.Help.Render(help)
}
