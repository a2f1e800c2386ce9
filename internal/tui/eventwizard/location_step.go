package eventwizard

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/gatherly/organizer/internal/api"
	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/tui/theme"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

// LocationStep resolves a free-text query to a geocoded place. The
// address and coordinates always travel together: selecting a result
// writes the whole triple, and 'c' clears it whole.
type LocationStep struct {
	draft event.DraftEvent

	query     textinput.Model
	results   *wizard.SelectList
	places    []api.Place
	searching bool
	searchErr string
	spinner   spinner.Model

	ctx    context.Context
	client *api.Client
	width  int
	height int
}

// NewLocationStep builds the step from the draft.
func NewLocationStep(ctx context.Context, client *api.Client, draft event.DraftEvent) *LocationStep {
	ti := textinput.New()
	ti.Placeholder = "Search for a venue or address..."
	ti.CharLimit = 200
	ti.SetStyles(wizard.TextInputStyles())
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &LocationStep{
		draft:   draft,
		query:   ti,
		results: wizard.NewSelectList(60, 6),
		spinner: s,
		ctx:     ctx,
		client:  client,
		width:   60,
		height:  20,
	}
}

// Init focuses the query field.
func (l *LocationStep) Init() tea.Cmd { return textinput.Blink }

// SetSize updates the dimensions.
func (l *LocationStep) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.query.SetWidth(width - 8)
	listHeight := height - 10
	if listHeight < 3 {
		listHeight = 3
	}
	l.results.SetSize(width-4, listHeight)
}

// Update handles messages.
func (l *LocationStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case draftChangedMsg:
		l.draft = msg.draft
		return nil

	case PlacesFoundMsg:
		l.searching = false
		l.searchErr = ""
		l.places = msg.Places
		opts := make([]wizard.Option, len(msg.Places))
		for i, p := range msg.Places {
			opts[i] = wizard.Option{ID: fmt.Sprintf("%d", i), Label: p.Address}
		}
		l.results.SetOptions(opts)
		if len(msg.Places) == 0 {
			l.searchErr = "No matches for " + msg.Query
		}
		return nil

	case PlaceLookupErrMsg:
		l.searching = false
		l.searchErr = msg.Err.Error()
		return nil

	case spinner.TickMsg:
		if l.searching {
			var cmd tea.Cmd
			l.spinner, cmd = l.spinner.Update(msg)
			return cmd
		}
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			return func() tea.Msg { return wizard.TabExitForwardMsg{} }
		case "shift+tab":
			return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
		case "enter":
			if len(l.places) > 0 {
				return l.pickSelected()
			}
			return l.startSearch()
		case "c":
			// Clear only when the query box is empty, so typing a 'c'
			// into the search text still works.
			if l.query.Value() == "" && l.draft.Location.IsSet() {
				return func() tea.Msg {
					return PatchMsg{Patch: event.ClearLocation{}}
				}
			}
		case "up", "down", "j", "k":
			if len(l.places) > 0 && l.query.Value() == "" {
				l.results.Update(msg)
				return nil
			}
		}
	}

	var cmd tea.Cmd
	prev := l.query.Value()
	l.query, cmd = l.query.Update(msg)
	if l.query.Value() != prev {
		// New text invalidates the old result list.
		l.places = nil
		l.results.SetOptions(nil)
		l.searchErr = ""
	}
	return cmd
}

func (l *LocationStep) startSearch() tea.Cmd {
	q := strings.TrimSpace(l.query.Value())
	if q == "" {
		return nil
	}
	l.searching = true
	l.searchErr = ""
	ctx := l.ctx
	client := l.client
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		places, err := client.Lookup(ctx, q)
		if err != nil {
			return PlaceLookupErrMsg{Err: err}
		}
		return PlacesFoundMsg{Query: q, Places: places}
	})
}

func (l *LocationStep) pickSelected() tea.Cmd {
	opt, ok := l.results.Selected()
	if !ok {
		return nil
	}
	var idx int
	fmt.Sscanf(opt.ID, "%d", &idx)
	if idx < 0 || idx >= len(l.places) {
		return nil
	}
	p := l.places[idx]
	l.query.SetValue("")
	l.places = nil
	l.results.SetOptions(nil)
	return func() tea.Msg {
		return PatchMsg{Patch: event.SetLocation{Location: event.Location{
			Address:   p.Address,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		}}}
	}
}

// View renders the step.
func (l *LocationStep) View() string {
	label := wizard.LabelStyle()
	var rows []string

	if l.draft.Location.IsSet() {
		t := theme.Current()
		rows = append(rows, label.Render("Current location"))
		rows = append(rows, lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Render("✓ "+l.draft.Location.Address))
		rows = append(rows, wizard.MutedStyle().Render(fmt.Sprintf("  %.5f, %.5f", l.draft.Location.Latitude, l.draft.Location.Longitude)))
		rows = append(rows, "")
	}

	rows = append(rows, label.Render("Search"))
	rows = append(rows, l.query.View())
	rows = append(rows, "")

	switch {
	case l.searching:
		rows = append(rows, l.spinner.View()+" Searching...")
	case l.searchErr != "":
		rows = append(rows, wizard.ErrorStyle().Render(l.searchErr))
	case len(l.places) > 0:
		rows = append(rows, l.results.View())
	}

	rows = append(rows, "")
	hints := []string{"enter", "search"}
	if len(l.places) > 0 {
		hints = []string{"↑↓", "pick", "enter", "select"}
	}
	if l.draft.Location.IsSet() {
		hints = append(hints, "c", "clear")
	}
	rows = append(rows, wizard.RenderHintBar(hints...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Focus puts focus on the query field.
func (l *LocationStep) Focus() { l.query.Focus() }

// Blur removes focus.
func (l *LocationStep) Blur() { l.query.Blur() }

// Patches returns nothing: location edits are applied atomically when
// a result is selected, never from partial widget state.
func (l *LocationStep) Patches() []event.Patch { return nil }
