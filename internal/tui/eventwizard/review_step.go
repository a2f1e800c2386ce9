package eventwizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"

	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

// ReviewStep shows the complete draft as rendered markdown for a final
// read-through before submission.
type ReviewStep struct {
	viewport viewport.Model
	draft    event.DraftEvent
	width    int
	height   int
}

// NewReviewStep builds the step from the draft.
func NewReviewStep(draft event.DraftEvent) *ReviewStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(12),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SetContent(renderMarkdown(summaryMarkdown(draft), 60))

	return &ReviewStep{
		viewport: vp,
		draft:    draft,
		width:    60,
		height:   16,
	}
}

// summaryMarkdown lays the draft out as a markdown document.
func summaryMarkdown(d event.DraftEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Description)
	}

	fmt.Fprintf(&b, "## Schedule\n\n")
	fmt.Fprintf(&b, "- **Type:** %s\n", d.ActivityType)
	if len(d.EventDates) > 0 {
		parts := make([]string, len(d.EventDates))
		for i, date := range d.EventDates {
			parts[i] = string(date)
		}
		fmt.Fprintf(&b, "- **Dates:** %s\n", strings.Join(parts, ", "))
	}
	if d.StartTime != nil && d.EndTime != nil {
		fmt.Fprintf(&b, "- **Time:** %s – %s\n", d.StartTime, d.EndTime)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Location\n\n%s\n\n", d.Location.Address)

	fmt.Fprintf(&b, "## Tickets\n\n")
	if !d.IsTicketed {
		b.WriteString("Free event\n\n")
	} else {
		for _, t := range d.Tickets {
			fmt.Fprintf(&b, "- **%s** — $%.2f × %d\n", t.Name, t.Price, t.Quantity)
		}
		b.WriteString("\n")
	}

	if len(d.Inclusions) > 0 {
		b.WriteString("## Included\n\n")
		for _, it := range d.Inclusions {
			fmt.Fprintf(&b, "- %s\n", it.Text)
		}
		b.WriteString("\n")
	}
	if len(d.Exclusions) > 0 {
		b.WriteString("## Not included\n\n")
		for _, it := range d.Exclusions {
			fmt.Fprintf(&b, "- %s\n", it.Text)
		}
		b.WriteString("\n")
	}

	banner := d.BannerPath
	if banner == "" {
		banner = d.BannerURL
	}
	if banner != "" {
		fmt.Fprintf(&b, "## Media\n\n- Banner: %s\n", banner)
		for _, url := range d.SupportingImages {
			fmt.Fprintf(&b, "- Supporting: %s\n", url)
		}
	}
	return b.String()
}

// renderMarkdown renders markdown with glamour, falling back to plain
// text when the renderer is unavailable.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}

// Init does nothing.
func (r *ReviewStep) Init() tea.Cmd { return nil }

// SetSize updates the dimensions and re-renders at the new width.
func (r *ReviewStep) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.viewport.SetWidth(width)
	vh := height - 2
	if vh < 5 {
		vh = 5
	}
	r.viewport.SetHeight(vh)
	r.viewport.SetContent(renderMarkdown(summaryMarkdown(r.draft), width))
	r.viewport.GotoTop()
}

// Update forwards scrolling to the viewport.
func (r *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	if dc, ok := msg.(draftChangedMsg); ok {
		r.draft = dc.draft
		r.viewport.SetContent(renderMarkdown(summaryMarkdown(r.draft), r.width))
		return nil
	}
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return cmd
}

// View renders the step.
func (r *ReviewStep) View() string {
	var b strings.Builder
	b.WriteString(r.viewport.View())
	b.WriteString("\n")
	b.WriteString(wizard.RenderHintBar(
		"↑↓", "scroll",
		"tab", "buttons",
		"esc", "back",
	))
	return b.String()
}

// Focus is a no-op; the viewport scrolls without explicit focus.
func (r *ReviewStep) Focus() {}

// Blur is a no-op.
func (r *ReviewStep) Blur() {}

// Patches returns nothing; the review step edits no fields.
func (r *ReviewStep) Patches() []event.Patch { return nil }
