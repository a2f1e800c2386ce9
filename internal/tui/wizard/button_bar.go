package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/tui/theme"
)

// ButtonID identifies what a button in the bar does when activated.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
	ButtonCancel
	ButtonSubmit
)

// Button is one entry in the bar.
type Button struct {
	ID       ButtonID
	Label    string
	Disabled bool
}

// ButtonBar renders a row of buttons and tracks which one holds focus.
// Focus is -1 when the step content above the bar has it instead.
type ButtonBar struct {
	buttons []Button
	focused int
	width   int
}

// NewButtonBar builds a bar. Focus starts off the bar.
func NewButtonBar(buttons ...Button) *ButtonBar {
	return &ButtonBar{buttons: buttons, focused: -1, width: 60}
}

// BackNext is the standard bar for a middle step.
func BackNext() *ButtonBar {
	return NewButtonBar(
		Button{ID: ButtonBack, Label: "← Back"},
		Button{ID: ButtonNext, Label: "Next →"},
	)
}

// CancelNext is the bar for the first step, where backing out cancels.
func CancelNext() *ButtonBar {
	return NewButtonBar(
		Button{ID: ButtonCancel, Label: "Cancel"},
		Button{ID: ButtonNext, Label: "Next →"},
	)
}

// BackSubmit is the bar for the final step.
func BackSubmit(label string) *ButtonBar {
	return NewButtonBar(
		Button{ID: ButtonBack, Label: "← Back"},
		Button{ID: ButtonSubmit, Label: label},
	)
}

// SetWidth updates the centering width.
func (b *ButtonBar) SetWidth(width int) { b.width = width }

// Focused reports whether any button holds focus.
func (b *ButtonBar) Focused() bool { return b.focused >= 0 }

// FocusedButton returns the id of the focused button; ok is false when
// focus is off the bar.
func (b *ButtonBar) FocusedButton() (ButtonID, bool) {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return 0, false
	}
	return b.buttons[b.focused].ID, true
}

// FocusFirst puts focus on the leftmost enabled button.
func (b *ButtonBar) FocusFirst() {
	for i, btn := range b.buttons {
		if !btn.Disabled {
			b.focused = i
			return
		}
	}
	b.focused = -1
}

// FocusLast puts focus on the rightmost enabled button.
func (b *ButtonBar) FocusLast() {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if !b.buttons[i].Disabled {
			b.focused = i
			return
		}
	}
	b.focused = -1
}

// FocusNext moves focus one button right. Returns false when focus
// walks off the end, leaving the bar blurred.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focused + 1; i < len(b.buttons); i++ {
		if !b.buttons[i].Disabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// FocusPrev moves focus one button left. Returns false when focus
// walks off the start, leaving the bar blurred.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focused - 1; i >= 0; i-- {
		if !b.buttons[i].Disabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// Blur takes focus off the bar.
func (b *ButtonBar) Blur() { b.focused = -1 }

// SetDisabled toggles a button by id.
func (b *ButtonBar) SetDisabled(id ButtonID, disabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID == id {
			b.buttons[i].Disabled = disabled
		}
	}
	if b.focused >= 0 && b.buttons[b.focused].Disabled {
		b.focused = -1
	}
}

// Render draws the bar centered within its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}
	t := theme.Current()
	normal := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).MarginLeft(1).MarginRight(1)
	disabled := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle)).
		Padding(0, 2).MarginLeft(1).MarginRight(1)
	focused := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.BorderFocused)).
		Bold(true).
		Padding(0, 2).MarginLeft(1).MarginRight(1)

	rendered := make([]string, len(b.buttons))
	for i, btn := range b.buttons {
		switch {
		case btn.Disabled:
			rendered[i] = disabled.Render(btn.Label)
		case i == b.focused:
			rendered[i] = focused.Render(btn.Label)
		default:
			rendered[i] = normal.Render(btn.Label)
		}
	}
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}
