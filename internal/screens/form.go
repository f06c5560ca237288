package screens

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lojacapivara/catalog/internal/product"
)

const (
	formName = iota
	formImage
	formColors
	formSizes
	formDescription
)

// FormModel creates a product, or edits one when id is non-zero.
type FormModel struct {
	id      int64
	fields  fields
	errText string
}

// NewFormModel prefills the inputs from p. A zero p.ID means insert.
func NewFormModel(p product.Product) FormModel {
	f := newFields(
		[]string{"Name", "Image", "Colors", "Sizes", "Description"},
		[]string{"Name", "Image URL", "Colors (comma separated)", "Sizes (P,M,G,GG)", "Description"},
	)
	f.inputs[formName].SetValue(p.Name)
	f.inputs[formImage].SetValue(p.Image)
	f.inputs[formColors].SetValue(product.JoinList(p.Colors))
	f.inputs[formSizes].SetValue(product.JoinList(p.Sizes))
	f.inputs[formDescription].SetValue(p.Description)
	return FormModel{id: p.ID, fields: f}
}

// Editing reports whether the form updates an existing product.
func (m FormModel) Editing() bool { return m.id != 0 }

// Product builds the product from the current input values.
func (m FormModel) Product() product.Product {
	return product.Product{
		ID:          m.id,
		Name:        strings.TrimSpace(m.fields.value(formName)),
		Image:       strings.TrimSpace(m.fields.value(formImage)),
		Colors:      product.ParseInput(m.fields.value(formColors)),
		Sizes:       product.ParseInput(m.fields.value(formSizes)),
		Description: m.fields.value(formDescription),
	}.Normalize()
}

// save validates the form. On failure it sets the inline error and
// returns no command, so nothing reaches the store.
func (m FormModel) save(ctx context.Context, cat Catalog) (FormModel, tea.Cmd) {
	p := m.Product()
	if err := p.Validate(); err != nil {
		if errors.Is(err, product.ErrEmptyName) {
			m.errText = "Enter the product name."
		} else {
			m.errText = err.Error()
		}
		return m, nil
	}
	m.errText = ""
	if m.Editing() {
		return m, func() tea.Msg {
			return savedMsg{id: p.ID, err: cat.Update(ctx, p)}
		}
	}
	return m, func() tea.Msg {
		id, err := cat.Insert(ctx, p)
		return savedMsg{id: id, err: err}
	}
}

// Update handles keys and the save outcome.
func (m FormModel) Update(ctx context.Context, cat Catalog, msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.errText = genericFailure
			return m, nil
		}
		text := "Product inserted!"
		if m.Editing() {
			text = "Product updated!"
		}
		return m, tea.Batch(flash(text), navigateReset(ScreenList))
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, back
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
			return m.save(ctx, cat)
		case "ctrl+s":
			return m.save(ctx, cat)
		}
	}
	return m, m.fields.update(msg)
}

// View renders the inputs and the inline error.
func (m FormModel) View(s Styles) string {
	title := "New product"
	if m.Editing() {
		title = "Edit product"
	}
	out := s.Title.Render(title) + "\n" + m.fields.view(s)
	if m.errText != "" {
		out += s.Error.Render(m.errText) + "\n"
	}
	return out + s.Help.Render("tab next field • ctrl+s save • esc cancel")
}
