package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
)

// SearchMode selects the field a search matches against.
type SearchMode int

const (
	ByName SearchMode = iota
	ByColor
)

// SearchModel searches products by name or color and lists the results.
type SearchModel struct {
	mode     SearchMode
	input    textinput.Model
	results  []product.Product
	cursor   int
	browsing bool // focus is on the results, not the input
	searched bool
	loading  bool
	failed   bool
}

// NewSearchModel returns an empty search in the given mode.
func NewSearchModel(mode SearchMode) SearchModel {
	placeholder := "Type the product name"
	if mode == ByColor {
		placeholder = "Type the color"
	}
	in := newInput(placeholder)
	in.Focus()
	return SearchModel{mode: mode, input: in}
}

// Mode returns the search mode.
func (m SearchModel) Mode() SearchMode { return m.mode }

func (m SearchModel) search(ctx context.Context, cat Catalog) tea.Cmd {
	term, mode := m.input.Value(), m.mode
	origin := ScreenSearchName
	if mode == ByColor {
		origin = ScreenSearchColor
	}
	return func() tea.Msg {
		var (
			rows []product.Product
			err  error
		)
		if mode == ByColor {
			rows, err = cat.SearchByColor(ctx, term)
		} else {
			rows, err = cat.SearchByName(ctx, term)
		}
		return productsMsg{origin: origin, products: rows, err: err}
	}
}

func (m *SearchModel) browse(on bool) {
	m.browsing = on
	if on {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

// Update handles search results and keys.
func (m SearchModel) Update(ctx context.Context, cat Catalog, msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsMsg:
		m.loading = false
		m.searched = true
		if msg.err != nil {
			m.failed = true
			m.results = nil
			return m, nil
		}
		m.results = msg.products
		m.cursor = 0
		m.browse(len(m.results) > 0)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, back
		case "tab":
			m.browse(!m.browsing && len(m.results) > 0)
			return m, nil
		}
		if m.browsing {
			switch msg.String() {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.results)-1 {
					m.cursor++
				}
			case "enter":
				return m, open(ScreenDetail, m.results[m.cursor])
			case "/":
				m.browse(false)
			}
			return m, nil
		}
		if msg.String() == "enter" {
			m.loading = true
			m.failed = false
			return m, m.search(ctx, cat)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the input and the results.
func (m SearchModel) View(s Styles) string {
	title := "Search by name"
	if m.mode == ByColor {
		title = "Search by color"
	}
	var b strings.Builder
	b.WriteString(s.Title.Render(title) + "\n")
	b.WriteString(m.input.View() + "\n\n")
	switch {
	case m.loading:
		b.WriteString(s.Muted.Render("Searching...") + "\n")
	case m.failed:
		b.WriteString(s.Error.Render(genericFailure) + "\n")
	case m.searched && len(m.results) == 0:
		b.WriteString(s.Muted.Render("No products found.") + "\n")
	default:
		cursor := -1
		if m.browsing {
			cursor = m.cursor
		}
		writeProducts(&b, s, m.results, cursor)
	}
	if m.browsing {
		b.WriteString(s.Help.Render("↑/↓ move • enter details • / edit search • esc back"))
	} else {
		b.WriteString(s.Help.Render("enter search • tab results • esc back"))
	}
	return b.String()
}
