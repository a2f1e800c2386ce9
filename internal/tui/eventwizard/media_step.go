package eventwizard

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/tui/theme"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

type mediaFocus int

const (
	focusBanner mediaFocus = iota
	focusTicketed
	focusTiers
)

// tierInputs is the editable row for one ticket tier.
type tierInputs struct {
	name     textinput.Model
	price    textinput.Model
	quantity textinput.Model
}

func newTierInputs(t event.Ticket) tierInputs {
	name := textinput.New()
	name.Placeholder = "Tier name"
	name.CharLimit = 60
	name.SetWidth(20)
	name.SetStyles(wizard.TextInputStyles())
	name.SetValue(t.Name)

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 10
	price.SetWidth(8)
	price.SetStyles(wizard.TextInputStyles())
	if t.Price != 0 {
		price.SetValue(strconv.FormatFloat(t.Price, 'f', -1, 64))
	}

	qty := textinput.New()
	qty.Placeholder = "0"
	qty.CharLimit = 6
	qty.SetWidth(6)
	qty.SetStyles(wizard.TextInputStyles())
	if t.Quantity != 0 {
		qty.SetValue(strconv.Itoa(t.Quantity))
	}

	return tierInputs{name: name, price: price, quantity: qty}
}

func (ti *tierInputs) field(i int) *textinput.Model {
	switch i {
	case 1:
		return &ti.price
	case 2:
		return &ti.quantity
	default:
		return &ti.name
	}
}

// MediaStep handles the banner image and ticket pricing.
type MediaStep struct {
	draft event.DraftEvent
	focus mediaFocus

	picker     *wizard.ImagePicker
	pickerOpen bool

	tiers     []tierInputs
	tierIdx   int
	tierField int

	width  int
	height int
}

// NewMediaStep builds the step from the draft.
func NewMediaStep(draft event.DraftEvent) *MediaStep {
	m := &MediaStep{
		draft:  draft,
		width:  60,
		height: 20,
	}
	m.rebuildTiers()
	return m
}

func (m *MediaStep) rebuildTiers() {
	m.tiers = make([]tierInputs, len(m.draft.Tickets))
	for i, t := range m.draft.Tickets {
		m.tiers[i] = newTierInputs(t)
	}
	if m.tierIdx >= len(m.tiers) {
		m.tierIdx = len(m.tiers) - 1
	}
	if m.tierIdx < 0 {
		m.tierIdx = 0
	}
}

// Init does nothing.
func (m *MediaStep) Init() tea.Cmd { return nil }

// SetSize updates the dimensions.
func (m *MediaStep) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.picker != nil {
		m.picker.SetSize(width-4, height-4)
	}
}

// Update handles messages.
func (m *MediaStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case draftChangedMsg:
		tiersBefore := len(m.draft.Tickets)
		m.draft = msg.draft
		switch {
		case len(m.draft.Tickets) > tiersBefore:
			// A tier was appended; keep text typed into existing rows.
			m.flushTierInputs()
			m.rebuildTiers()
		case len(m.draft.Tickets) < tiersBefore:
			// A tier was removed and the survivors shifted down, so the
			// stale rows no longer align by position and must not be
			// copied over them.
			m.rebuildTiers()
		}
		return nil

	case wizard.ImageSelectedMsg:
		m.pickerOpen = false
		m.picker = nil
		return func() tea.Msg {
			return PatchMsg{Patch: event.SetBanner{Path: msg.Path}}
		}

	case tea.KeyPressMsg:
		if m.pickerOpen {
			if msg.String() == "esc" {
				m.pickerOpen = false
				m.picker = nil
				return nil
			}
			return m.picker.Update(msg)
		}

		switch msg.String() {
		case "tab":
			if m.focus == focusTiers || (m.focus == focusTicketed && !m.draft.IsTicketed) {
				return func() tea.Msg { return wizard.TabExitForwardMsg{} }
			}
			m.focus++
			return nil
		case "shift+tab":
			if m.focus == focusBanner {
				return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
			}
			m.focus--
			return nil
		}

		switch m.focus {
		case focusBanner:
			return m.updateBanner(msg)
		case focusTicketed:
			return m.updateTicketed(msg)
		case focusTiers:
			return m.updateTiers(msg)
		}
	}
	return nil
}

func (m *MediaStep) updateBanner(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "b":
		m.picker = wizard.NewImagePicker()
		m.picker.SetSize(m.width-4, m.height-4)
		m.pickerOpen = true
	case "x":
		if m.draft.BannerPath != "" {
			return func() tea.Msg {
				return PatchMsg{Patch: event.ClearBanner{}}
			}
		}
	}
	return nil
}

func (m *MediaStep) updateTicketed(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", " ":
		on := !m.draft.IsTicketed
		return func() tea.Msg {
			return PatchMsg{Patch: event.SetTicketed{Ticketed: on}}
		}
	}
	return nil
}

func (m *MediaStep) updateTiers(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "a", "+":
		// Only treat as "add tier" when no field is being typed into;
		// otherwise the letter belongs to the tier name.
		if len(m.tiers) == 0 || !m.currentField().Focused() {
			m.flushTierInputs()
			return func() tea.Msg {
				return PatchMsg{Patch: event.AddTicket{}}
			}
		}
	case "ctrl+d":
		return m.removeSelectedTier()
	case "up":
		m.blurTierField()
		if m.tierIdx > 0 {
			m.tierIdx--
		}
		return nil
	case "down":
		m.blurTierField()
		if m.tierIdx < len(m.tiers)-1 {
			m.tierIdx++
		}
		return nil
	case "left":
		if !m.currentFieldFocused() {
			if m.tierField > 0 {
				m.tierField--
			}
			return nil
		}
	case "right":
		if !m.currentFieldFocused() {
			if m.tierField < 2 {
				m.tierField++
			}
			return nil
		}
	case "enter":
		if len(m.tiers) > 0 {
			f := m.currentField()
			if f.Focused() {
				f.Blur()
			} else {
				return f.Focus()
			}
		}
		return nil
	}

	if len(m.tiers) > 0 && m.currentFieldFocused() {
		f := m.currentField()
		var cmd tea.Cmd
		*f, cmd = f.Update(msg)
		return cmd
	}
	return nil
}

// removeSelectedTier drops the highlighted tier row. The row slice and
// the local draft shrink together before the patch lands, so text typed
// into the surviving rows is kept and stays aligned by position.
func (m *MediaStep) removeSelectedTier() tea.Cmd {
	if len(m.tiers) == 0 {
		return nil
	}
	idx := m.tierIdx
	m.flushTierInputs()
	m.tiers = append(m.tiers[:idx], m.tiers[idx+1:]...)
	m.draft.Tickets = append(m.draft.Tickets[:idx], m.draft.Tickets[idx+1:]...)
	if m.tierIdx >= len(m.tiers) && m.tierIdx > 0 {
		m.tierIdx--
	}
	return func() tea.Msg {
		return PatchMsg{Patch: event.RemoveTicket{Index: idx}}
	}
}

func (m *MediaStep) currentField() *textinput.Model {
	if m.tierIdx < 0 || m.tierIdx >= len(m.tiers) {
		return nil
	}
	return m.tiers[m.tierIdx].field(m.tierField)
}

func (m *MediaStep) currentFieldFocused() bool {
	f := m.currentField()
	return f != nil && f.Focused()
}

func (m *MediaStep) blurTierField() {
	if f := m.currentField(); f != nil {
		f.Blur()
	}
}

// flushTierInputs copies the row inputs back into the local draft copy
// so a rebuild does not lose typed-but-unflushed text.
func (m *MediaStep) flushTierInputs() {
	for i := range m.tiers {
		if i < len(m.draft.Tickets) {
			m.draft.Tickets[i] = m.tierTicket(i)
		}
	}
}

func (m *MediaStep) tierTicket(i int) event.Ticket {
	row := m.tiers[i]
	price, _ := strconv.ParseFloat(strings.TrimSpace(row.price.Value()), 64)
	qty, _ := strconv.Atoi(strings.TrimSpace(row.quantity.Value()))
	return event.Ticket{
		Name:     strings.TrimSpace(row.name.Value()),
		Price:    price,
		Quantity: qty,
	}
}

// View renders the step.
func (m *MediaStep) View() string {
	if m.pickerOpen && m.picker != nil {
		return m.picker.View()
	}

	t := theme.Current()
	label := wizard.LabelStyle()
	focusMark := func(f mediaFocus, text string) string {
		if m.focus == f {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary)).Render("▸ ") + text
		}
		return "  " + text
	}

	var rows []string
	rows = append(rows, focusMark(focusBanner, label.Render("Banner image")))
	switch {
	case m.draft.BannerPath != "":
		rows = append(rows, "  "+lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Render("✓ "+m.draft.BannerPath))
	case m.draft.BannerURL != "":
		rows = append(rows, "  "+lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Render("✓ existing: "+m.draft.BannerURL))
	default:
		rows = append(rows, "  "+wizard.MutedStyle().Render("No banner selected (enter to browse)"))
	}
	rows = append(rows, "")

	rows = append(rows, focusMark(focusTicketed, label.Render("Ticketed event")))
	toggle := "[ ] Free event"
	if m.draft.IsTicketed {
		toggle = "[x] Sell tickets"
	}
	rows = append(rows, "  "+toggle)
	rows = append(rows, "")

	if m.draft.IsTicketed {
		rows = append(rows, focusMark(focusTiers, label.Render("Ticket tiers")))
		if len(m.tiers) == 0 {
			rows = append(rows, "  "+wizard.MutedStyle().Render("No tiers yet (press a to add)"))
		}
		selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Primary))
		for i, row := range m.tiers {
			mark := "  "
			if i == m.tierIdx && m.focus == focusTiers {
				mark = selStyle.Render("▸ ")
			}
			line := fmt.Sprintf("%s%s  $%s  ×%s", mark, row.name.View(), row.price.View(), row.quantity.View())
			rows = append(rows, line)
		}
	}

	rows = append(rows, "")
	hints := []string{"enter", "open/edit", "tab", "next field"}
	if m.focus == focusTiers {
		hints = []string{"a", "add tier", "ctrl+d", "remove", "↑↓", "tier", "←→", "field", "enter", "edit"}
	}
	rows = append(rows, wizard.RenderHintBar(hints...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Focus puts focus on the banner section.
func (m *MediaStep) Focus() { m.focus = focusBanner }

// Blur removes focus from the tier inputs.
func (m *MediaStep) Blur() { m.blurTierField() }

// Patches flushes the tier rows into the draft.
func (m *MediaStep) Patches() []event.Patch {
	var out []event.Patch
	for i := range m.tiers {
		out = append(out, event.UpdateTicket{Index: i, Ticket: m.tierTicket(i)})
	}
	return out
}
