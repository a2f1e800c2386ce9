package eventwizard

import (
	"context"
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/gatherly/organizer/internal/api"
	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/tui/theme"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

// basicFocus tracks which field on the step has keyboard focus.
type basicFocus int

const (
	focusTitle basicFocus = iota
	focusDescription
	focusCategory
)

// BasicStep collects title, description, and category.
type BasicStep struct {
	title       textinput.Model
	description textarea.Model
	categories  *wizard.SelectList

	focus    basicFocus
	loading  bool
	loadErr  string
	spinner  spinner.Model
	tmpFile  string
	ctx      context.Context
	client   *api.Client
	width    int
	height   int
	draftCat string
}

// NewBasicStep builds the step from the draft.
func NewBasicStep(ctx context.Context, client *api.Client, draft event.DraftEvent) *BasicStep {
	ti := textinput.New()
	ti.Placeholder = "e.g. 'Jazz Night at the Blue Room'"
	ti.CharLimit = 120
	ti.SetStyles(wizard.TextInputStyles())
	ti.SetValue(draft.Title)
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "What should attendees know about this event?"
	ta.SetHeight(4)
	ta.SetValue(draft.Description)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	return &BasicStep{
		title:       ti,
		description: ta,
		categories:  wizard.NewSelectList(50, 6),
		spinner:     s,
		loading:     true,
		ctx:         ctx,
		client:      client,
		draftCat:    draft.Category,
		width:       60,
		height:      20,
	}
}

// Init starts the category fetch.
func (b *BasicStep) Init() tea.Cmd {
	return tea.Batch(b.fetchCategories(), b.spinner.Tick, textinput.Blink)
}

func (b *BasicStep) fetchCategories() tea.Cmd {
	ctx := b.ctx
	client := b.client
	return func() tea.Msg {
		cats, err := client.Categories(ctx)
		if err != nil {
			return CategoriesErrorMsg{Err: err}
		}
		return CategoriesLoadedMsg{Categories: cats}
	}
}

// SetSize updates the dimensions.
func (b *BasicStep) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.title.SetWidth(width - 8)
	b.description.SetWidth(width - 8)
	listHeight := height - 12
	if listHeight < 3 {
		listHeight = 3
	}
	b.categories.SetSize(width-4, listHeight)
}

// Update handles messages.
func (b *BasicStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CategoriesLoadedMsg:
		b.loading = false
		b.loadErr = ""
		opts := make([]wizard.Option, len(msg.Categories))
		for i, c := range msg.Categories {
			opts[i] = wizard.Option{ID: c.ID, Label: c.DisplayName}
		}
		b.categories.SetOptions(opts)
		if b.draftCat != "" {
			b.categories.SelectID(b.draftCat)
		}
		return nil

	case CategoriesErrorMsg:
		b.loading = false
		b.loadErr = msg.Err.Error()
		return nil

	case spinner.TickMsg:
		if b.loading {
			var cmd tea.Cmd
			b.spinner, cmd = b.spinner.Update(msg)
			return cmd
		}
		return nil

	case DescriptionEditedMsg:
		if b.tmpFile != "" {
			_ = os.Remove(b.tmpFile)
			b.tmpFile = ""
		}
		if msg.Err == nil {
			b.description.SetValue(strings.TrimRight(msg.Text, "\n"))
		}
		return nil

	case draftChangedMsg:
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			if b.focus == focusCategory {
				return func() tea.Msg { return wizard.TabExitForwardMsg{} }
			}
			b.cycleFocus(1)
			return nil
		case "shift+tab":
			if b.focus == focusTitle {
				return func() tea.Msg { return wizard.TabExitBackwardMsg{} }
			}
			b.cycleFocus(-1)
			return nil
		case "ctrl+e":
			if b.focus == focusDescription && os.Getenv("EDITOR") != "" {
				return b.openEditor()
			}
		case "r":
			if b.loadErr != "" && b.focus == focusCategory {
				b.loading = true
				b.loadErr = ""
				return tea.Batch(b.fetchCategories(), b.spinner.Tick)
			}
		}
	}

	switch b.focus {
	case focusTitle:
		var cmd tea.Cmd
		b.title, cmd = b.title.Update(msg)
		return cmd
	case focusDescription:
		var cmd tea.Cmd
		b.description, cmd = b.description.Update(msg)
		return cmd
	default:
		if !b.loading && b.loadErr == "" {
			b.categories.Update(msg)
		}
	}
	return nil
}

func (b *BasicStep) cycleFocus(dir int) {
	b.title.Blur()
	b.description.Blur()
	b.focus = basicFocus((int(b.focus) + dir + 3) % 3)
	switch b.focus {
	case focusTitle:
		b.title.Focus()
	case focusDescription:
		b.description.Focus()
	}
}

// openEditor round-trips the description through $EDITOR.
func (b *BasicStep) openEditor() tea.Cmd {
	tmp, err := os.CreateTemp("", "organizer_description_*.md")
	if err != nil {
		return nil
	}
	if _, err := tmp.WriteString(b.description.Value()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil
	}
	_ = tmp.Close()
	b.tmpFile = tmp.Name()

	cmd, err := editor.Command("organizer", tmp.Name())
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return DescriptionEditedMsg{Err: err}
		}
		raw, err := os.ReadFile(tmp.Name())
		if err != nil {
			return DescriptionEditedMsg{Err: err}
		}
		return DescriptionEditedMsg{Text: string(raw)}
	})
}

// View renders the step.
func (b *BasicStep) View() string {
	label := wizard.LabelStyle()
	var rows []string

	rows = append(rows, label.Render("Event name"))
	rows = append(rows, b.title.View())
	rows = append(rows, "")

	descLabel := "Description"
	if os.Getenv("EDITOR") != "" && b.focus == focusDescription {
		descLabel += "  (ctrl+e opens $EDITOR)"
	}
	rows = append(rows, label.Render(descLabel))
	rows = append(rows, b.description.View())
	rows = append(rows, "")

	rows = append(rows, label.Render("Category"))
	switch {
	case b.loading:
		rows = append(rows, b.spinner.View()+" Loading categories...")
	case b.loadErr != "":
		rows = append(rows, wizard.ErrorStyle().Render("Could not load categories: "+b.loadErr))
		rows = append(rows, wizard.MutedStyle().Render("Press r to retry (with category focused)"))
	case b.categories.Len() == 0:
		rows = append(rows, wizard.MutedStyle().Render("No categories available"))
	default:
		rows = append(rows, b.categories.View())
	}

	rows = append(rows, "")
	rows = append(rows, wizard.RenderHintBar("tab", "next field", "↑↓", "pick category"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Focus puts focus back on the first field.
func (b *BasicStep) Focus() {
	b.focus = focusTitle
	b.title.Focus()
}

// Blur removes focus from every field.
func (b *BasicStep) Blur() {
	b.title.Blur()
	b.description.Blur()
}

// Patches returns the step's pending edits.
func (b *BasicStep) Patches() []event.Patch {
	patches := []event.Patch{
		event.SetDetails{
			Title:       strings.TrimSpace(b.title.Value()),
			Description: strings.TrimSpace(b.description.Value()),
		},
	}
	if id := b.categories.SelectedID(); id != "" {
		patches = append(patches, event.SetCategory{ID: id})
	}
	return patches
}
