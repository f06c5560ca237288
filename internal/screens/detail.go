package screens

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
)

// DetailModel shows one product and handles edit and delete.
type DetailModel struct {
	product    product.Product
	confirming bool
	failed     bool
}

// NewDetailModel shows p.
func NewDetailModel(p product.Product) DetailModel {
	return DetailModel{product: p}
}

// Update handles keys and the delete outcome.
func (m DetailModel) Update(ctx context.Context, cat Catalog, msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case deletedMsg:
		if msg.err != nil {
			m.failed = true
			return m, nil
		}
		return m, tea.Batch(flash("Product removed."), navigateReset(ScreenList))
	case tea.KeyMsg:
		if m.confirming {
			switch msg.String() {
			case "y":
				m.confirming = false
				id := m.product.ID
				return m, func() tea.Msg {
					return deletedMsg{err: cat.Delete(ctx, id)}
				}
			case "n", "esc":
				m.confirming = false
			}
			return m, nil
		}
		switch msg.String() {
		case "e":
			return m, open(ScreenForm, m.product)
		case "d":
			m.failed = false
			m.confirming = true
		case "esc", "q":
			return m, back
		}
	}
	return m, nil
}

// View renders every field; the image URL is shown as text.
func (m DetailModel) View(s Styles) string {
	p := m.product
	var b strings.Builder
	b.WriteString(s.Title.Render(p.Name) + "\n")
	row := func(label, value string) {
		b.WriteString(s.Label.Render(label+": ") + value + "\n")
	}
	row("Image", p.Image)
	row("Colors", product.DisplayList(p.Colors))
	row("Sizes", product.DisplayList(p.Sizes))
	row("Description", p.Description)

	if m.failed {
		b.WriteString(s.Error.Render(genericFailure) + "\n")
	}
	if m.confirming {
		b.WriteString(s.Error.Render("Remove this product? (y/n)"))
		return b.String()
	}
	b.WriteString(s.Help.Render("e edit • d remove • esc back"))
	return b.String()
}
