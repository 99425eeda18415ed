package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Loading       *lipgloss.Style
	Item          *lipgloss.Style
	ItemIndicator *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Header        *lipgloss.Style
	Footer        *lipgloss.Style
	Filter        *lipgloss.Style
	FilterPrompt  *lipgloss.Style
	Cursor        *lipgloss.Style

	TabActive   *lipgloss.Style
	TabInactive *lipgloss.Style

	SectionTitle *lipgloss.Style
	Label        *lipgloss.Style
	Value        *lipgloss.Style
	Placeholder  *lipgloss.Style
	Hint         *lipgloss.Style

	ActionPrimary   *lipgloss.Style
	ActionSecondary *lipgloss.Style
	ActionDanger    *lipgloss.Style
	CheckPass       *lipgloss.Style
	CheckFail       *lipgloss.Style
}

var defaultStyles = Styles{
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	TabActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	TabInactive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	SectionTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	ActionPrimary: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	ActionSecondary: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ActionDanger: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	CheckPass: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	),
	CheckFail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// ForState builds the style for a classified state descriptor. Pulsing
// descriptors blink to mark an in-flight transition.
func ForState(color string, pulse bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	if pulse {
		style = style.Blink(true)
	}
	return style
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
