package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
)

// ListModel shows every product. It reloads each time it gains focus.
type ListModel struct {
	products []product.Product
	cursor   int
	loading  bool
	failed   bool
}

// Focus marks the list as loading and returns the command that reloads it.
func (m ListModel) Focus(ctx context.Context, cat Catalog) (ListModel, tea.Cmd) {
	m.loading = true
	m.failed = false
	return m, func() tea.Msg {
		rows, err := cat.List(ctx)
		return productsMsg{origin: ScreenList, products: rows, err: err}
	}
}

// Update handles load results and navigation keys.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsMsg:
		m.loading = false
		if msg.err != nil {
			m.failed = true
			return m, nil
		}
		m.products = msg.products
		if m.cursor >= len(m.products) {
			m.cursor = max(len(m.products)-1, 0)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.products)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.products) > 0 {
				return m, open(ScreenDetail, m.products[m.cursor])
			}
		case "esc", "q":
			return m, back
		}
	}
	return m, nil
}

// View renders the products.
func (m ListModel) View(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Products") + "\n")
	switch {
	case m.loading:
		b.WriteString(s.Muted.Render("Loading...") + "\n")
	case m.failed:
		b.WriteString(s.Error.Render(genericFailure) + "\n")
	case len(m.products) == 0:
		b.WriteString(s.Muted.Render("No products yet.") + "\n")
	default:
		writeProducts(&b, s, m.products, m.cursor)
	}
	b.WriteString(s.Help.Render("↑/↓ move • enter details • esc back"))
	return b.String()
}

func writeProducts(b *strings.Builder, s Styles, products []product.Product, cursor int) {
	for i, p := range products {
		line := p.Name
		if len(p.Colors) > 0 {
			line += s.Muted.Render(fmt.Sprintf("  colors: %s", product.DisplayList(p.Colors)))
		}
		b.WriteString(s.cursorLine(line, i == cursor) + "\n")
	}
}
