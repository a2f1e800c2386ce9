package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/tui/theme"
)

// Option is one selectable row.
type Option struct {
	ID    string
	Label string
}

// SelectList is a windowed single-select list. Every row is one line,
// so scrolling is a plain offset over the option slice.
type SelectList struct {
	options  []Option
	selected int
	offset   int
	width    int
	height   int
}

// NewSelectList builds a list showing height rows at a time.
func NewSelectList(width, height int) *SelectList {
	return &SelectList{width: width, height: height}
}

// SetOptions replaces the rows. Selection is preserved by id when the
// previously selected option survives, otherwise it resets to the top.
func (s *SelectList) SetOptions(options []Option) {
	prev := s.SelectedID()
	s.options = options
	s.selected = 0
	for i, o := range options {
		if o.ID == prev && prev != "" {
			s.selected = i
			break
		}
	}
	s.scrollIntoView()
}

// SetSize updates the window dimensions.
func (s *SelectList) SetSize(width, height int) {
	s.width = width
	if height < 1 {
		height = 1
	}
	s.height = height
	s.scrollIntoView()
}

// Len returns the number of rows.
func (s *SelectList) Len() int { return len(s.options) }

// SelectedID returns the id of the highlighted row, or "".
func (s *SelectList) SelectedID() string {
	if s.selected < 0 || s.selected >= len(s.options) {
		return ""
	}
	return s.options[s.selected].ID
}

// Selected returns the highlighted option; ok is false on an empty
// list.
func (s *SelectList) Selected() (Option, bool) {
	if s.selected < 0 || s.selected >= len(s.options) {
		return Option{}, false
	}
	return s.options[s.selected], true
}

// SelectID highlights the row with the given id if present.
func (s *SelectList) SelectID(id string) {
	for i, o := range s.options {
		if o.ID == id {
			s.selected = i
			s.scrollIntoView()
			return
		}
	}
}

// Update moves the highlight on up/down and j/k.
func (s *SelectList) Update(msg tea.Msg) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.options) == 0 {
		return
	}
	switch key.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	case "home":
		s.selected = 0
	case "end":
		s.selected = len(s.options) - 1
	}
	s.scrollIntoView()
}

func (s *SelectList) scrollIntoView() {
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+s.height {
		s.offset = s.selected - s.height + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

// View renders the visible window.
func (s *SelectList) View() string {
	if len(s.options) == 0 {
		return ""
	}
	t := theme.Current()
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary)).
		Background(lipgloss.Color(t.BgSurface0)).
		Bold(true)

	var b strings.Builder
	end := s.offset + s.height
	if end > len(s.options) {
		end = len(s.options)
	}
	for i := s.offset; i < end; i++ {
		label := truncate(s.options[i].Label, s.width-2)
		if i == s.selected {
			b.WriteString(selectedStyle.Render("▸ " + label))
		} else {
			b.WriteString("  " + label)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
