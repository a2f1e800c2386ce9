package eventwizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/tui/theme"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

type extrasFocus int

const (
	focusInclusions extrasFocus = iota
	focusExclusions
	focusImages
)

// ExtrasStep edits the optional extras: inclusions, exclusions, and
// supporting image URLs. Every edit is applied to the draft
// immediately; nothing here is required, so the step validates
// vacuously.
type ExtrasStep struct {
	draft event.DraftEvent
	focus extrasFocus

	input    textinput.Model
	selected map[extrasFocus]int
	editID   string

	width  int
	height int
}

// NewExtrasStep builds the step from the draft.
func NewExtrasStep(draft event.DraftEvent) *ExtrasStep {
	ti := textinput.New()
	ti.Placeholder = "Add an inclusion..."
	ti.CharLimit = 200
	ti.SetStyles(wizard.TextInputStyles())
	ti.Focus()

	return &ExtrasStep{
		draft:    draft,
		input:    ti,
		selected: map[extrasFocus]int{},
		width:    60,
		height:   20,
	}
}

// Init focuses the input.
func (e *ExtrasStep) Init() tea.Cmd { return textinput.Blink }

// SetSize updates the dimensions.
func (e *ExtrasStep) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.input.SetWidth(width - 8)
}

func (e *ExtrasStep) sectionLen() int {
	switch e.focus {
	case focusInclusions:
		return len(e.draft.Inclusions)
	case focusExclusions:
		return len(e.draft.Exclusions)
	default:
		return len(e.draft.SupportingImages)
	}
}

func (e *ExtrasStep) listKind() event.ListKind {
	if e.focus == focusExclusions {
		return event.Exclusions
	}
	return event.Inclusions
}

func (e *ExtrasStep) selectedItem() (event.ListItem, bool) {
	idx := e.selected[e.focus]
	var items []event.ListItem
	switch e.focus {
	case focusInclusions:
		items = e.draft.Inclusions
	case focusExclusions:
		items = e.draft.Exclusions
	default:
		return event.ListItem{}, false
	}
	if idx < 0 || idx >= len(items) {
		return event.ListItem{}, false
	}
	return items[idx], true
}

// Update handles messages.
func (e *ExtrasStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case draftChangedMsg:
		e.draft = msg.draft
		if e.selected[e.focus] >= e.sectionLen() {
			e.selected[e.focus] = e.sectionLen() - 1
		}
		if e.selected[e.focus] < 0 {
			e.selected[e.focus] = 0
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if e.focus == focusImages {
				return func() tea.Msg { return wizard.TabExitForwardMsg{} }
			}
			e.switchSection(e.focus + 1)
			return nil
		case "shift+tab":
			if e.focus == focusInclusions {
				return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
			}
			e.switchSection(e.focus - 1)
			return nil
		case "enter":
			return e.commitInput()
		case "up":
			if e.selected[e.focus] > 0 {
				e.selected[e.focus]--
			}
			return nil
		case "down":
			if e.selected[e.focus] < e.sectionLen()-1 {
				e.selected[e.focus]++
			}
			return nil
		case "ctrl+d":
			return e.removeSelected()
		case "ctrl+e":
			// Load the selected item into the input for editing.
			if item, ok := e.selectedItem(); ok {
				e.editID = item.ID
				e.input.SetValue(item.Text)
			}
			return nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *ExtrasStep) switchSection(f extrasFocus) {
	e.focus = f
	e.editID = ""
	e.input.SetValue("")
	switch f {
	case focusInclusions:
		e.input.Placeholder = "Add an inclusion..."
	case focusExclusions:
		e.input.Placeholder = "Add an exclusion..."
	default:
		e.input.Placeholder = "Add a supporting image URL..."
	}
}

func (e *ExtrasStep) commitInput() tea.Cmd {
	text := strings.TrimSpace(e.input.Value())
	if text == "" {
		return nil
	}
	e.input.SetValue("")

	if e.focus == focusImages {
		return func() tea.Msg {
			return PatchMsg{Patch: event.AddSupportingImage{URL: text}}
		}
	}

	kind := e.listKind()
	if e.editID != "" {
		id := e.editID
		e.editID = ""
		return func() tea.Msg {
			return PatchMsg{Patch: event.EditListItem{Kind: kind, ID: id, Text: text}}
		}
	}
	return func() tea.Msg {
		return PatchMsg{Patch: event.AddListItem{Kind: kind, Text: text}}
	}
}

func (e *ExtrasStep) removeSelected() tea.Cmd {
	if e.focus == focusImages {
		idx := e.selected[e.focus]
		if idx < 0 || idx >= len(e.draft.SupportingImages) {
			return nil
		}
		return func() tea.Msg {
			return PatchMsg{Patch: event.RemoveSupportingImage{Index: idx}}
		}
	}
	item, ok := e.selectedItem()
	if !ok {
		return nil
	}
	kind := e.listKind()
	return func() tea.Msg {
		return PatchMsg{Patch: event.RemoveListItem{Kind: kind, ID: item.ID}}
	}
}

// View renders the step.
func (e *ExtrasStep) View() string {
	t := theme.Current()
	label := wizard.LabelStyle()
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true)

	section := func(f extrasFocus, title string, lines []string) []string {
		head := "  " + label.Render(title)
		if e.focus == f {
			head = selStyle.Render("▸ ") + label.Render(title)
		}
		out := []string{head}
		if len(lines) == 0 {
			out = append(out, "    "+wizard.MutedStyle().Render("none"))
			return out
		}
		for i, line := range lines {
			mark := "    "
			if e.focus == f && e.selected[f] == i {
				mark = "  " + selStyle.Render("• ")
			}
			out = append(out, mark+line)
		}
		return out
	}

	itemTexts := func(items []event.ListItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Text
		}
		return out
	}

	var rows []string
	rows = append(rows, section(focusInclusions, "Inclusions", itemTexts(e.draft.Inclusions))...)
	rows = append(rows, "")
	rows = append(rows, section(focusExclusions, "Exclusions", itemTexts(e.draft.Exclusions))...)
	rows = append(rows, "")
	rows = append(rows, section(focusImages, "Supporting images", e.draft.SupportingImages)...)
	rows = append(rows, "")
	rows = append(rows, e.input.View())
	rows = append(rows, "")
	rows = append(rows, wizard.RenderHintBar(
		"enter", "add",
		"ctrl+e", "edit",
		"ctrl+d", "remove",
		"tab", "section",
	))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Focus puts focus on the first section.
func (e *ExtrasStep) Focus() {
	e.focus = focusInclusions
	e.input.Focus()
}

// Blur removes focus.
func (e *ExtrasStep) Blur() { e.input.Blur() }

// Patches returns nothing: list edits are applied as they happen.
func (e *ExtrasStep) Patches() []event.Patch { return nil }
