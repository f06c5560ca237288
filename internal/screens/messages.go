package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/session"
)

// Catalog is the query layer the screens read from and write to.
type Catalog interface {
	List(ctx context.Context) ([]product.Product, error)
	SearchByName(ctx context.Context, term string) ([]product.Product, error)
	SearchByColor(ctx context.Context, term string) ([]product.Product, error)
	Insert(ctx context.Context, p product.Product) (int64, error)
	Update(ctx context.Context, p product.Product) error
	Delete(ctx context.Context, id int64) error
}

// Nicknames reads and stores the session nickname.
type Nicknames interface {
	Nickname() (string, error)
	Confirm(creds session.Credentials, w session.Welcome) (string, error)
}

// Screen identifies a view of the app.
type Screen int

const (
	ScreenPrompt Screen = iota
	ScreenHome
	ScreenList
	ScreenDetail
	ScreenForm
	ScreenSearchName
	ScreenSearchColor
)

func (s Screen) String() string {
	switch s {
	case ScreenPrompt:
		return "prompt"
	case ScreenHome:
		return "home"
	case ScreenList:
		return "list"
	case ScreenDetail:
		return "detail"
	case ScreenForm:
		return "form"
	case ScreenSearchName:
		return "search-name"
	case ScreenSearchColor:
		return "search-color"
	default:
		return "unknown"
	}
}

// genericFailure is shown for every storage error.
const genericFailure = "something went wrong"

// navigateMsg asks the app to switch screens. product is set when
// opening the detail or edit form.
// reset drops the back history.
type navigateMsg struct {
	to      Screen
	product product.Product
	reset   bool
}

// backMsg returns to the previous screen.
type backMsg struct{}

// nicknameMsg carries the stored nickname after a read or a save.
type nicknameMsg struct {
	nickname string
	err      error
}

// productsMsg carries the result of a list or search.
type productsMsg struct {
	origin   Screen
	products []product.Product
	err      error
}

// savedMsg reports the outcome of a form submission.
type savedMsg struct {
	id  int64
	err error
}

// statusMsg sets the status line until the next key press.
type statusMsg string

// deletedMsg reports the outcome of a delete.
type deletedMsg struct {
	err error
}

func navigate(to Screen) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func open(to Screen, p product.Product) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to, product: p} }
}

func navigateReset(to Screen) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to, reset: true} }
}

func back() tea.Msg { return backMsg{} }

func flash(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg(text) }
}
