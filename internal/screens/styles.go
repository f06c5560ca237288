package screens

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Primary     = lipgloss.Color("#8D6E63") // capybara brown
	Accent      = lipgloss.Color("#2196F3")
	Muted       = lipgloss.Color("#9E9E9E")
	Destructive = lipgloss.Color("#E53935")
	Success     = lipgloss.Color("#8BC34A")
)

// Styles groups the lipgloss styles used by every screen.
type Styles struct {
	Title    lipgloss.Style
	Greeting lipgloss.Style
	Label    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the terminal theme.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Greeting: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Label:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Foreground(Accent).Bold(true),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Error:    lipgloss.NewStyle().Foreground(Destructive),
		Success:  lipgloss.NewStyle().Foreground(Success),
		Help:     lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
	}
}

// cursorLine renders one selectable row.
func (s Styles) cursorLine(text string, selected bool) string {
	if selected {
		return s.Selected.Render("> " + text)
	}
	return s.Item.Render(text)
}
