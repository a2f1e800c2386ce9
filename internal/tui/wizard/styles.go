// Package wizard holds the widgets shared by the event wizard steps:
// the button bar, the selection list, the image picker, and the hint
// bar. Widgets render strings; layout belongs to the caller.
package wizard

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/tui/theme"
)

// TabExitForwardMsg is emitted by a step when tab walks past its last
// input, handing focus to the wizard's button bar.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is emitted when shift+tab walks before the first
// input, handing focus to the button bar from the end.
type TabExitBackwardMsg struct{}

// TextInputStyles is the shared textinput styling for wizard fields.
func TextInputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderFocused)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// ErrorStyle renders a step's validation message.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Error))
}

// MutedStyle renders secondary text such as hints and empty states.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().FgSubtle))
}

// LabelStyle renders a field label above an input.
func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Secondary)).Bold(true)
}

// ModalStyle is the bordered container for the save-error modal.
func ModalStyle() lipgloss.Style {
	t := theme.Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderFocused)).
		Background(lipgloss.Color(t.BgBase)).
		Padding(1, 2)
}

// ModalTitleStyle renders the modal heading.
func ModalTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Current().Primary)).
		Bold(true).
		Align(lipgloss.Center)
}

// RenderHintBar formats key/description pairs as a single line:
// RenderHintBar("↑↓", "navigate", "enter", "select") gives
// "↑↓ navigate • enter select".
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}
	t := theme.Current()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderDefault))

	var out string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			out += " " + sepStyle.Render("•") + " "
		}
		out += keyStyle.Render(pairs[i]) + " " + descStyle.Render(pairs[i+1])
	}
	return out
}
