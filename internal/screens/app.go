// Package screens implements the interactive terminal front end: one
// bubbletea model per screen and an App that routes between them.
package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/session"
)

// nicknameLoadedMsg carries the nickname read at startup.
type nicknameLoadedMsg struct {
	nickname string
	err      error
}

// App is the root model. It starts in a loading state until the stored
// nickname is read, then shows the welcome prompt or the home menu.
type App struct {
	ctx       context.Context
	catalog   Catalog
	nicknames Nicknames
	creds     session.Credentials
	styles    Styles

	loading  bool
	screen   Screen
	history  []Screen
	nickname string
	status   string

	home   HomeModel
	list   ListModel
	detail DetailModel
	form   FormModel
	search SearchModel
	prompt PromptModel
}

// NewApp builds the root model.
func NewApp(ctx context.Context, cat Catalog, nicknames Nicknames, creds session.Credentials) App {
	return App{
		ctx:       ctx,
		catalog:   cat,
		nicknames: nicknames,
		creds:     creds,
		styles:    DefaultStyles(),
		loading:   true,
	}
}

// Screen returns the active screen.
func (a App) Screen() Screen { return a.screen }

// Loading reports whether the app is still reading the stored nickname.
func (a App) Loading() bool { return a.loading }

// Nickname returns the nickname greeted on the home screen.
func (a App) Nickname() string { return a.nickname }

// Init reads the stored nickname.
func (a App) Init() tea.Cmd {
	nicknames := a.nicknames
	return func() tea.Msg {
		nick, err := nicknames.Nickname()
		return nicknameLoadedMsg{nickname: nick, err: err}
	}
}

// Update routes msg to the app or the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""
		if a.loading {
			return a, nil
		}
	case nicknameLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.status = genericFailure
		}
		a.nickname = msg.nickname
		if session.NeedsPrompt(a.nickname) {
			return a.enter(ScreenPrompt, product.Product{})
		}
		return a.enter(ScreenHome, product.Product{})
	case nicknameMsg:
		if msg.err == nil {
			a.nickname = msg.nickname
			a.history = nil
			return a.enter(ScreenHome, product.Product{})
		}
	case statusMsg:
		a.status = string(msg)
		return a, nil
	case navigateMsg:
		if msg.reset {
			a.history = nil
			if msg.to != ScreenHome {
				a.history = []Screen{ScreenHome}
			}
		} else {
			a.history = append(a.history, a.screen)
		}
		return a.enter(msg.to, msg.product)
	case backMsg:
		to := ScreenHome
		if n := len(a.history); n > 0 {
			to = a.history[n-1]
			a.history = a.history[:n-1]
		}
		return a.resume(to)
	case productsMsg:
		if msg.origin == ScreenList {
			a.list, _ = a.list.Update(msg)
			return a, nil
		}
		a.search, _ = a.search.Update(a.ctx, a.catalog, msg)
		return a, nil
	}
	return a.updateScreen(msg)
}

func (a App) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenPrompt:
		a.prompt, cmd = a.prompt.Update(msg)
	case ScreenHome:
		a.home, cmd = a.home.Update(msg)
	case ScreenList:
		a.list, cmd = a.list.Update(msg)
	case ScreenDetail:
		a.detail, cmd = a.detail.Update(a.ctx, a.catalog, msg)
	case ScreenForm:
		a.form, cmd = a.form.Update(a.ctx, a.catalog, msg)
	case ScreenSearchName, ScreenSearchColor:
		a.search, cmd = a.search.Update(a.ctx, a.catalog, msg)
	}
	return a, cmd
}

// enter opens a screen with fresh state.
func (a App) enter(to Screen, p product.Product) (tea.Model, tea.Cmd) {
	switch to {
	case ScreenPrompt:
		a.prompt = NewPromptModel(a.nicknames, a.creds, !session.NeedsPrompt(a.nickname))
	case ScreenDetail:
		a.detail = NewDetailModel(p)
	case ScreenForm:
		a.form = NewFormModel(p)
	case ScreenSearchName:
		a.search = NewSearchModel(ByName)
	case ScreenSearchColor:
		a.search = NewSearchModel(ByColor)
	}
	return a.resume(to)
}

// resume shows a screen keeping its state. The home greeting and the
// product list are refreshed every time they gain focus.
func (a App) resume(to Screen) (tea.Model, tea.Cmd) {
	a.screen = to
	var cmd tea.Cmd
	switch to {
	case ScreenHome:
		a.home = NewHomeModel(a.nickname)
	case ScreenList:
		a.list, cmd = a.list.Focus(a.ctx, a.catalog)
	}
	return a, cmd
}

// View renders the active screen and the status line.
func (a App) View() string {
	s := a.styles
	if a.loading {
		return s.Muted.Render("Loading...") + "\n"
	}
	var view string
	switch a.screen {
	case ScreenPrompt:
		view = a.prompt.View(s)
	case ScreenHome:
		view = a.home.View(s)
	case ScreenList:
		view = a.list.View(s)
	case ScreenDetail:
		view = a.detail.View(s)
	case ScreenForm:
		view = a.form.View(s)
	case ScreenSearchName, ScreenSearchColor:
		view = a.search.View(s)
	}
	if a.status != "" {
		style := s.Success
		if a.status == genericFailure {
			style = s.Error
		}
		view += "\n" + style.Render(a.status)
	}
	return view + "\n"
}

// Run starts the terminal program and blocks until the user quits.
func Run(ctx context.Context, cat Catalog, nicknames Nicknames, creds session.Credentials, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewApp(ctx, cat, nicknames, creds), opts...).Run()
	return err
}
