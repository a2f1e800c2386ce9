package eventwizard

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/tui/theme"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

type scheduleFocus int

const (
	focusActivity scheduleFocus = iota
	focusCalendar
	focusStartTime
	focusEndTime
)

// ScheduleStep collects the activity type, the date set, and the
// start/end times. Date edits land in the draft immediately; times are
// flushed on navigation.
type ScheduleStep struct {
	draft  event.DraftEvent
	focus  scheduleFocus
	year   int
	month  time.Month
	cursor event.Date

	startInput textinput.Model
	endInput   textinput.Model
	timeErr    string

	width  int
	height int
}

// NewScheduleStep builds the step from the draft.
func NewScheduleStep(draft event.DraftEvent) *ScheduleStep {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(draft.EventDates) > 0 {
		t := draft.EventDates[0].Time()
		year, month = t.Year(), t.Month()
	}

	newTimeInput := func(value *event.TimeOfDay) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = "HH:MM"
		ti.CharLimit = 5
		ti.SetWidth(7)
		ti.SetStyles(wizard.TextInputStyles())
		if value != nil {
			ti.SetValue(value.String())
		}
		return ti
	}

	return &ScheduleStep{
		draft:      draft,
		year:       year,
		month:      month,
		cursor:     cursorStart(year, month, now),
		startInput: newTimeInput(draft.StartTime),
		endInput:   newTimeInput(draft.EndTime),
		width:      60,
		height:     20,
	}
}

// Init does nothing; the step has no async work.
func (s *ScheduleStep) Init() tea.Cmd { return nil }

// SetSize updates the dimensions.
func (s *ScheduleStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update handles messages.
func (s *ScheduleStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case draftChangedMsg:
		s.draft = msg.draft
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if s.focus == focusEndTime {
				return func() tea.Msg { return wizard.TabExitForwardMsg{} }
			}
			s.setFocus(s.focus + 1)
			return nil
		case "shift+tab":
			if s.focus == focusActivity {
				return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
			}
			s.setFocus(s.focus - 1)
			return nil
		}

		switch s.focus {
		case focusActivity:
			return s.updateActivity(msg)
		case focusCalendar:
			return s.updateCalendar(msg)
		}
	}

	switch s.focus {
	case focusStartTime:
		var cmd tea.Cmd
		s.startInput, cmd = s.startInput.Update(msg)
		s.timeErr = ""
		return cmd
	case focusEndTime:
		var cmd tea.Cmd
		s.endInput, cmd = s.endInput.Update(msg)
		s.timeErr = ""
		return cmd
	}
	return nil
}

func (s *ScheduleStep) setFocus(f scheduleFocus) {
	s.startInput.Blur()
	s.endInput.Blur()
	s.focus = f
	switch f {
	case focusStartTime:
		s.startInput.Focus()
	case focusEndTime:
		s.endInput.Focus()
	}
}

func (s *ScheduleStep) updateActivity(msg tea.KeyPressMsg) tea.Cmd {
	var picked event.ActivityType
	switch msg.String() {
	case "left", "h", "s":
		picked = event.ActivitySingle
	case "right", "l", "r":
		picked = event.ActivityRecurring
	case "enter", " ":
		if s.draft.ActivityType == event.ActivityNone {
			picked = event.ActivitySingle
		}
	}
	if picked == event.ActivityNone || picked == s.draft.ActivityType {
		return nil
	}
	return func() tea.Msg {
		return PatchMsg{Patch: event.SetActivityType{Type: picked}}
	}
}

func (s *ScheduleStep) updateCalendar(msg tea.KeyPressMsg) tea.Cmd {
	var deltaDays int
	switch msg.String() {
	case "left", "h":
		deltaDays = -1
	case "right", "l":
		deltaDays = 1
	case "up", "k":
		deltaDays = -7
	case "down", "j":
		deltaDays = 7
	case "pgup", "[":
		s.year, s.month = shiftMonth(s.year, s.month, -1)
		s.cursor = cursorStart(s.year, s.month, time.Now())
		return nil
	case "pgdown", "]":
		s.year, s.month = shiftMonth(s.year, s.month, 1)
		s.cursor = cursorStart(s.year, s.month, time.Now())
		return nil
	case "enter", " ":
		cursor := s.cursor
		if s.draft.ActivityType == event.ActivitySingle {
			return func() tea.Msg {
				return PatchMsg{Patch: event.SetSingleDate{Date: cursor}}
			}
		}
		return func() tea.Msg {
			return PatchMsg{Patch: event.ToggleDate{Date: cursor}}
		}
	default:
		return nil
	}

	next, monthShift := moveCursor(s.cursor, deltaDays, s.year, s.month)
	if monthShift != 0 {
		s.year, s.month = shiftMonth(s.year, s.month, monthShift)
		t := s.cursor.Time().AddDate(0, 0, deltaDays)
		next = event.Date(t.Format("2006-01-02"))
	}
	s.cursor = next
	return nil
}

// View renders the step.
func (s *ScheduleStep) View() string {
	t := theme.Current()
	label := wizard.LabelStyle()
	focusMark := func(f scheduleFocus, text string) string {
		if s.focus == f {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render("▸ ") + text
		}
		return "  " + text
	}

	var rows []string
	rows = append(rows, focusMark(focusActivity, label.Render("Activity type")))
	rows = append(rows, "  "+s.renderActivityRadio())
	rows = append(rows, "")

	rows = append(rows, focusMark(focusCalendar, label.Render("Dates")))
	rows = append(rows, s.renderCalendar())
	rows = append(rows, "")

	rows = append(rows, focusMark(focusStartTime, label.Render("Start time"))+"  "+s.startInput.View())
	rows = append(rows, focusMark(focusEndTime, label.Render("End time"))+"    "+s.endInput.View())
	if s.timeErr != "" {
		rows = append(rows, wizard.ErrorStyle().Render("✗ "+s.timeErr))
	}

	rows = append(rows, "")
	rows = append(rows, wizard.RenderHintBar(
		"tab", "next field",
		"enter", "toggle date",
		"[ ]", "change month",
	))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *ScheduleStep) renderActivityRadio() string {
	t := theme.Current()
	on := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Bold(true)
	off := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))

	render := func(at event.ActivityType, name string) string {
		if s.draft.ActivityType == at {
			return on.Render("(•) " + name)
		}
		return off.Render("( ) " + name)
	}
	return render(event.ActivitySingle, "Single") + "   " + render(event.ActivityRecurring, "Recurring")
}

func (s *ScheduleStep) renderCalendar() string {
	t := theme.Current()
	headStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Bold(true)
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgBase)).Background(lipgloss.Color(t.Primary)).Bold(true)
	pickedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true)
	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))

	var b strings.Builder
	b.WriteString("  " + headStyle.Render(fmt.Sprintf("%s %d", s.month, s.year)))
	b.WriteString("\n  " + headStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")

	for _, week := range monthWeeks(s.year, s.month) {
		b.WriteString("  ")
		for i, d := range week {
			if i > 0 {
				b.WriteString(" ")
			}
			if d == "" {
				b.WriteString("  ")
				continue
			}
			cell := fmt.Sprintf("%2d", d.Time().Day())
			switch {
			case d == s.cursor && s.focus == focusCalendar:
				b.WriteString(cursorStyle.Render(cell))
			case s.draft.HasDate(d):
				b.WriteString(pickedStyle.Render(cell))
			default:
				b.WriteString(dayStyle.Render(cell))
			}
		}
		b.WriteString("\n")
	}

	if len(s.draft.EventDates) > 0 {
		parts := make([]string, len(s.draft.EventDates))
		for i, d := range s.draft.EventDates {
			parts[i] = string(d)
		}
		b.WriteString("  " + wizard.MutedStyle().Render("Selected: "+strings.Join(parts, ", ")))
	}
	return b.String()
}

// Focus puts focus on the first field.
func (s *ScheduleStep) Focus() { s.setFocus(focusActivity) }

// Blur removes keyboard focus.
func (s *ScheduleStep) Blur() {
	s.startInput.Blur()
	s.endInput.Blur()
}

// Patches returns the pending time edits. Text that does not parse as
// HH:MM leaves the corresponding time unset, which the validator then
// reports.
func (s *ScheduleStep) Patches() []event.Patch {
	var start, end *event.TimeOfDay
	if v := strings.TrimSpace(s.startInput.Value()); v != "" {
		if t, err := event.ParseTimeOfDay(v); err == nil {
			start = &t
		} else {
			s.timeErr = "Times use 24-hour HH:MM"
		}
	}
	if v := strings.TrimSpace(s.endInput.Value()); v != "" {
		if t, err := event.ParseTimeOfDay(v); err == nil {
			end = &t
		} else {
			s.timeErr = "Times use 24-hour HH:MM"
		}
	}
	return []event.Patch{event.SetTimes{Start: start, End: end}}
}
