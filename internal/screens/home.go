package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
)

type menuItem struct {
	label string
	to    Screen
}

var homeMenu = []menuItem{
	{"View all products", ScreenList},
	{"Insert product", ScreenForm},
	{"Search by name", ScreenSearchName},
	{"Search by color", ScreenSearchColor},
	{"Change nickname", ScreenPrompt},
}

// HomeModel greets the user and offers the main menu.
type HomeModel struct {
	nickname string
	cursor   int
}

// NewHomeModel returns the menu with the first entry selected.
func NewHomeModel(nickname string) HomeModel {
	return HomeModel{nickname: nickname}
}

// Update moves the selection and opens the chosen screen.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(homeMenu)-1 {
			m.cursor++
		}
	case "enter":
		// the insert form always starts empty
		return m, open(homeMenu[m.cursor].to, product.Product{})
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// View renders the greeting and the menu.
func (m HomeModel) View(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Greeting.Render("Hello, "+m.nickname+"!") + "\n\n")
	b.WriteString(s.Title.Render("Main menu") + "\n")
	for i, item := range homeMenu {
		b.WriteString(s.cursorLine(item.label, i == m.cursor) + "\n")
	}
	b.WriteString(s.Help.Render("↑/↓ move • enter open • q quit"))
	return b.String()
}
