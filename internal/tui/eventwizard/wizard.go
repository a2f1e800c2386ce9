// Package eventwizard is the multi-step terminal form for creating and
// editing events. Navigation and validation live in the flow
// controller; this package renders steps, collects input, and talks to
// the backend.
package eventwizard

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/gatherly/organizer/internal/api"
	"github.com/gatherly/organizer/internal/config"
	"github.com/gatherly/organizer/internal/event"
	"github.com/gatherly/organizer/internal/logger"
	"github.com/gatherly/organizer/internal/tui/theme"
	"github.com/gatherly/organizer/internal/tui/wizard"
)

// Mode selects between creating a new event and editing a fetched one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

const (
	panelWidth        = 78
	panelPadding      = 2
	panelContentWidth = panelWidth - (panelPadding * 2) - 2
)

// stepComponent is the contract every step screen satisfies. Patches
// returns the edits still sitting in the step's widgets; the wizard
// flushes them into the draft before any forward move.
type stepComponent interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Focus()
	Blur()
	Patches() []event.Patch
}

// Model is the BubbleTea model for the event wizard.
type Model struct {
	ctrl    *event.Controller
	mode    Mode
	eventID string
	cfg     *config.Config
	client  *api.Client
	ctx     context.Context

	width     int
	height    int
	cancelled bool

	basicStep    *BasicStep
	scheduleStep *ScheduleStep
	locationStep *LocationStep
	mediaStep    *MediaStep
	extrasStep   *ExtrasStep
	reviewStep   *ReviewStep

	buttonBar     *wizard.ButtonBar
	buttonFocused bool
	stepBars      map[int]*wizard.ButtonBar

	isSubmitting    bool
	spinner         spinner.Model
	submitError     string
	showSubmitError bool

	done        bool
	resultID    string
	receiptPath string
}

// Run drives the wizard to completion and returns the created or
// updated event id. A user cancel returns an error.
func Run(ctx context.Context, cfg *config.Config, client *api.Client, draft event.DraftEvent, mode Mode, eventID string) (string, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	m := &Model{
		ctrl:     event.New(draft),
		mode:     mode,
		eventID:  eventID,
		cfg:      cfg,
		client:   client,
		ctx:      ctx,
		spinner:  s,
		stepBars: make(map[int]*wizard.ButtonBar),
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("event wizard failed: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if fm.cancelled {
		return "", fmt.Errorf("cancelled")
	}
	return fm.resultID, nil
}

// Init builds the first step.
func (m *Model) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if m.showSubmitError {
			switch msg.String() {
			case "y", "Y":
				return m, func() tea.Msg { return RetrySubmitMsg{} }
			case "n", "N", "esc":
				m.showSubmitError = false
				m.submitError = ""
				return m, nil
			}
			return m, nil
		}

		if m.done {
			switch msg.String() {
			case "enter", "q", "esc":
				return m, tea.Quit
			}
			return m, nil
		}

		if m.isSubmitting {
			if msg.String() == "ctrl+c" {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.focusStepContent()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.focusStepContent()
				}
				return m, nil
			case "enter", " ":
				if id, ok := m.buttonBar.FocusedButton(); ok {
					return m.activateButton(id)
				}
				return m, nil
			}
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.ctrl.Step() == event.StepBasicInfo {
				m.cancelled = true
				return m, tea.Quit
			}
			return m, m.goBack()
		case "tab":
			if !m.buttonFocused {
				m.buttonFocused = true
				m.blurStepContent()
				m.ensureButtonBar()
				m.buttonBar.FocusFirst()
				return m, nil
			}
		case "shift+tab":
			if !m.buttonFocused {
				m.buttonFocused = true
				m.blurStepContent()
				m.ensureButtonBar()
				m.buttonBar.FocusLast()
				return m, nil
			}
		case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6":
			target := int(msg.String()[4] - '0')
			return m, m.jumpTo(target)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case spinner.TickMsg:
		if m.isSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case PatchMsg:
		m.ctrl.Apply(msg.Patch)
		// Steps that show derived state re-read the draft.
		return m, m.forwardToStep(draftChangedMsg{draft: m.ctrl.Draft()})

	case wizard.TabExitForwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusFirst()
		return m, nil

	case wizard.TabExitBackwardMsg:
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusLast()
		return m, nil

	case SubmitFinishedMsg:
		logger.Info("Event submitted: %s", msg.ID)
		m.isSubmitting = false
		m.ctrl.MarkSubmitted()
		m.done = true
		m.resultID = msg.ID
		return m, m.writeReceipt(msg.ID)

	case SubmitErrorMsg:
		logger.Error("Submission failed: %v", msg.Err)
		m.isSubmitting = false
		m.submitError = msg.Err.Error()
		m.showSubmitError = true
		return m, nil

	case RetrySubmitMsg:
		m.showSubmitError = false
		m.submitError = ""
		return m, m.startSubmit()

	case ReceiptWrittenMsg:
		if msg.Err != nil {
			// The event exists server-side; a failed receipt is only
			// worth a log line.
			logger.Error("Failed to write receipt: %v", msg.Err)
			return m, nil
		}
		m.receiptPath = msg.Path
		return m, nil
	}

	return m, m.forwardToStep(msg)
}

// draftChangedMsg tells the current step the draft it renders from has
// moved underneath it.
type draftChangedMsg struct {
	draft event.DraftEvent
}

// View renders the wizard.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderPanel()
	centered := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})
	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func (m *Model) currentStep() stepComponent {
	switch m.ctrl.Step() {
	case event.StepBasicInfo:
		if m.basicStep != nil {
			return m.basicStep
		}
	case event.StepSchedule:
		if m.scheduleStep != nil {
			return m.scheduleStep
		}
	case event.StepLocation:
		if m.locationStep != nil {
			return m.locationStep
		}
	case event.StepMedia:
		if m.mediaStep != nil {
			return m.mediaStep
		}
	case event.StepExtras:
		if m.extrasStep != nil {
			return m.extrasStep
		}
	default:
		if m.reviewStep != nil {
			return m.reviewStep
		}
	}
	return nil
}

func (m *Model) forwardToStep(msg tea.Msg) tea.Cmd {
	if step := m.currentStep(); step != nil {
		return step.Update(msg)
	}
	return nil
}

// initCurrentStep rebuilds the current step's component from the
// draft. Components are recreated on every entry so they always render
// the controller's state, never a stale copy.
func (m *Model) initCurrentStep() tea.Cmd {
	m.buttonFocused = false
	m.buttonBar = nil
	draft := m.ctrl.Draft()

	var cmd tea.Cmd
	switch m.ctrl.Step() {
	case event.StepBasicInfo:
		m.basicStep = NewBasicStep(m.ctx, m.client, draft)
		cmd = m.basicStep.Init()
	case event.StepSchedule:
		m.scheduleStep = NewScheduleStep(draft)
		cmd = m.scheduleStep.Init()
	case event.StepLocation:
		m.locationStep = NewLocationStep(m.ctx, m.client, draft)
		cmd = m.locationStep.Init()
	case event.StepMedia:
		m.mediaStep = NewMediaStep(draft)
		cmd = m.mediaStep.Init()
	case event.StepExtras:
		m.extrasStep = NewExtrasStep(draft)
		cmd = m.extrasStep.Init()
	case event.StepReview:
		m.reviewStep = NewReviewStep(draft)
		cmd = m.reviewStep.Init()
	}
	m.updateCurrentStepSize()
	return cmd
}

func (m *Model) updateCurrentStepSize() {
	if step := m.currentStep(); step != nil {
		h := m.height - 12
		if h < 12 {
			h = 12
		}
		if h > 32 {
			h = 32
		}
		step.SetSize(panelContentWidth, h)
	}
}

// flushCurrentStep pushes the step's pending widget edits into the
// draft so validation sees what is on screen.
func (m *Model) flushCurrentStep() {
	step := m.currentStep()
	if step == nil {
		return
	}
	for _, p := range step.Patches() {
		m.ctrl.Apply(p)
	}
}

func (m *Model) activateButton(id wizard.ButtonID) (tea.Model, tea.Cmd) {
	switch id {
	case wizard.ButtonBack:
		return m, m.goBack()
	case wizard.ButtonCancel:
		m.cancelled = true
		return m, tea.Quit
	case wizard.ButtonNext:
		return m, m.goNext()
	case wizard.ButtonSubmit:
		return m, m.trySubmit()
	}
	return m, nil
}

func (m *Model) goNext() tea.Cmd {
	m.flushCurrentStep()
	if !m.ctrl.Next() {
		return nil
	}
	return m.initCurrentStep()
}

func (m *Model) goBack() tea.Cmd {
	m.flushCurrentStep()
	if !m.ctrl.Prev() {
		return nil
	}
	return m.initCurrentStep()
}

func (m *Model) jumpTo(target int) tea.Cmd {
	m.flushCurrentStep()
	before := m.ctrl.Step()
	m.ctrl.JumpTo(target)
	if m.ctrl.Step() == before {
		return nil
	}
	return m.initCurrentStep()
}

func (m *Model) trySubmit() tea.Cmd {
	m.flushCurrentStep()
	if !m.ctrl.Submit() {
		return nil
	}
	return m.startSubmit()
}

func (m *Model) startSubmit() tea.Cmd {
	m.isSubmitting = true
	return tea.Batch(m.spinner.Tick, m.submitCmd())
}

// submitCmd sends the draft. The draft is read once here and never
// touched while the request is in flight, so a retry resends identical
// bytes.
func (m *Model) submitCmd() tea.Cmd {
	draft := m.ctrl.Draft()
	ctx := m.ctx
	client := m.client
	mode := m.mode
	eventID := m.eventID
	return func() tea.Msg {
		if mode == ModeEdit {
			if err := client.UpdateEvent(ctx, eventID, draft); err != nil {
				return SubmitErrorMsg{Err: err}
			}
			return SubmitFinishedMsg{ID: eventID}
		}
		id, err := client.CreateEvent(ctx, draft)
		if err != nil {
			return SubmitErrorMsg{Err: err}
		}
		return SubmitFinishedMsg{ID: id}
	}
}

func (m *Model) writeReceipt(id string) tea.Cmd {
	draft := m.ctrl.Draft()
	dir := m.cfg.DataDir
	return func() tea.Msg {
		path, err := WriteReceipt(dir, id, draft)
		return ReceiptWrittenMsg{Path: path, Err: err}
	}
}

func (m *Model) focusStepContent() {
	if step := m.currentStep(); step != nil {
		step.Focus()
	}
}

func (m *Model) blurStepContent() {
	if step := m.currentStep(); step != nil {
		step.Blur()
	}
}

// ensureButtonBar returns the cached bar for the step, building it on
// first entry so focus survives re-renders.
func (m *Model) ensureButtonBar() {
	step := m.ctrl.Step()
	if bar, ok := m.stepBars[step]; ok {
		m.buttonBar = bar
		return
	}

	var bar *wizard.ButtonBar
	switch step {
	case event.StepBasicInfo:
		bar = wizard.CancelNext()
	case event.StepReview:
		label := "Create Event"
		if m.mode == ModeEdit {
			label = "Save Changes"
		}
		bar = wizard.BackSubmit(label)
	default:
		bar = wizard.BackNext()
	}
	bar.SetWidth(panelContentWidth)
	m.stepBars[step] = bar
	m.buttonBar = bar
}

// renderStepper draws the numbered step header with the current step
// highlighted and failed steps marked.
func (m *Model) renderStepper() string {
	t := theme.Current()
	current := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgBase)).Background(lipgloss.Color(t.Primary)).Bold(true).Padding(0, 1)
	errored := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)).Padding(0, 1)
	other := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).Padding(0, 1)
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderDefault)).Render("›")

	parts := make([]string, 0, event.StepCount*2-1)
	for s := event.StepBasicInfo; s <= event.StepCount; s++ {
		label := fmt.Sprintf("%d %s", s, event.StepTitle(s))
		switch {
		case s == m.ctrl.Step():
			parts = append(parts, current.Render(label))
		case m.ctrl.Err(s) != "":
			parts = append(parts, errored.Render(label))
		default:
			parts = append(parts, other.Render(label))
		}
		if s < event.StepCount {
			parts = append(parts, sep)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderPanel() string {
	t := theme.Current()

	if m.showSubmitError {
		return m.renderSubmitErrorModal()
	}
	if m.done {
		return m.renderDoneScreen()
	}

	title := "New Event"
	if m.mode == ModeEdit {
		title = "Edit Event"
	}
	titleLine := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)).MarginBottom(1).Render(title)

	var stepContent string
	if m.isSubmitting {
		stepContent = m.spinner.View() + " Submitting event..."
	} else if step := m.currentStep(); step != nil {
		stepContent = step.View()
	}

	var errLine string
	if msg := m.ctrl.Err(m.ctrl.Step()); msg != "" {
		errLine = wizard.ErrorStyle().Bold(true).Render("✗ " + msg)
	}

	var barLine string
	if !m.isSubmitting {
		m.ensureButtonBar()
		barLine = m.buttonBar.Render()
	}

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).
		Render("tab buttons • alt+number jump to step • esc back")

	rows := []string{m.renderStepper(), "", titleLine, stepContent}
	if errLine != "" {
		rows = append(rows, "", errLine)
	}
	if barLine != "" {
		rows = append(rows, "", barLine)
	}
	rows = append(rows, "", hint)

	return lipgloss.NewStyle().
		Width(panelWidth).
		Padding(panelPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault)).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderSubmitErrorModal() string {
	t := theme.Current()
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Error)).MarginBottom(1).
		Render("⚠ Submission Failed")
	message := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)).MarginBottom(1).
		Render("The event was not saved: " + m.submitError)
	keys := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).
		Render("Press Y to retry, N or ESC to keep editing")

	return lipgloss.NewStyle().
		Width(60).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Error)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, message, "", keys))
}

func (m *Model) renderDoneScreen() string {
	t := theme.Current()
	verb := "created"
	if m.mode == ModeEdit {
		verb = "updated"
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Success)).MarginBottom(1).
		Render("✓ Event " + verb)

	var lines []string
	lines = append(lines, title)
	lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)).Render("Event ID: "+m.resultID))
	if m.receiptPath != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)).Render("Receipt: "+m.receiptPath))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)).Render("Press enter to exit"))

	return lipgloss.NewStyle().
		Width(60).
		Padding(2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Success)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
