package screens

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/session"
	"github.com/lojacapivara/catalog/internal/testutil"
)

// driver feeds messages to an App and runs the returned commands
// synchronously until the queue drains.
type driver struct {
	t    *testing.T
	app  App
	quit bool
}

func newDriver(t *testing.T, cat Catalog, nicknames Nicknames) *driver {
	t.Helper()
	d := &driver{t: t, app: NewApp(t.Context(), cat, nicknames, testutil.WelcomeCredentials)}
	d.run(d.app.Init())
	return d
}

// started returns a driver past the welcome prompt, on the home screen.
func started(t *testing.T, cat Catalog) *driver {
	t.Helper()
	sess := testutil.OpenSession(t)
	require.NoError(t, sess.SetNickname("capi"))
	d := newDriver(t, cat, sess)
	require.Equal(t, ScreenHome, d.app.Screen())
	return d
}

func (d *driver) send(msg tea.Msg) {
	d.t.Helper()
	model, cmd := d.app.Update(msg)
	d.app = model.(App)
	d.run(cmd)
}

func (d *driver) run(cmd tea.Cmd) {
	d.t.Helper()
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			d.quit = true
			continue
		}
		d.send(msg)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func (d *driver) key(k string) {
	d.t.Helper()
	d.send(keyMsg(k))
}

func (d *driver) keys(ks ...string) {
	d.t.Helper()
	for _, k := range ks {
		d.key(k)
	}
}

func (d *driver) typeText(s string) {
	d.t.Helper()
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

var errBroken = errors.New("disk on fire")

// brokenCatalog fails every operation.
type brokenCatalog struct {
	calls int
}

func (b *brokenCatalog) List(context.Context) ([]product.Product, error) {
	b.calls++
	return nil, errBroken
}

func (b *brokenCatalog) SearchByName(context.Context, string) ([]product.Product, error) {
	b.calls++
	return nil, errBroken
}

func (b *brokenCatalog) SearchByColor(context.Context, string) ([]product.Product, error) {
	b.calls++
	return nil, errBroken
}

func (b *brokenCatalog) Insert(context.Context, product.Product) (int64, error) {
	b.calls++
	return 0, errBroken
}

func (b *brokenCatalog) Update(context.Context, product.Product) error {
	b.calls++
	return errBroken
}

func (b *brokenCatalog) Delete(context.Context, int64) error {
	b.calls++
	return errBroken
}

// brokenNicknames cannot read the session file.
type brokenNicknames struct{}

func (brokenNicknames) Nickname() (string, error) { return "", errBroken }

func (brokenNicknames) Confirm(session.Credentials, session.Welcome) (string, error) {
	return "", errBroken
}
