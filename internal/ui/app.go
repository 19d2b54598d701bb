package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bincheck/internal/bin"
	"bincheck/internal/lookup"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	defaultWidth = 80
	inputWidth   = 40
)

// AppModel is the root model: one BIN form and its lookup state.
// All state lives here and is only touched from Update, on the event loop.
type AppModel struct {
	State      lookup.State
	Input      textinput.Model
	Spinner    spinner.Model
	KeyHandler *KeyHandler
	Lookuper   lookup.Lookuper
	Logger     *zap.Logger
	ShowHelp   bool
	Width      int

	// Ctx is passed to every lookup; cancelling it aborts in-flight requests on quit.
	Ctx context.Context
}

var errNoLookuper = errors.New("no lookup client configured")

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(ctx context.Context, l lookup.Lookuper, logger *zap.Logger) *AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// No CharLimit: a pasted "4111 1111 1111 1111" must be sanitized
	// before it is truncated, so the limit is applied by bin.Sanitize.
	ti := textinput.New()
	ti.Placeholder = "Enter first 6-8 digits (e.g., 601120)"
	ti.Prompt = "› "
	ti.Width = inputWidth
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Loading

	reg := NewKeybindRegistry()
	reg.BindWithDesc("enter", func() tea.Msg { return SubmitMsg{} }, "verify")
	reg.BindWithDesc("ctrl+r", func() tea.Msg { return ResetMsg{} }, "reset")
	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")
	reg.BindWithDesc("SPC r", func() tea.Msg { return ResetMsg{} }, "Reset")
	reg.BindWithDesc("SPC ?", func() tea.Msg { return ToggleHelpMsg{} }, "Help")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	return &AppModel{
		Input:      ti,
		Spinner:    s,
		KeyHandler: NewKeyHandler(reg),
		Lookuper:   l,
		Logger:     logger,
		Width:      defaultWidth,
		Ctx:        ctx,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitMsg:
		return a, a.submit()
	case LookupCompleteMsg:
		a.resolve(msg.Outcome)
		return a, nil
	case ResetMsg:
		a.State = lookup.Reset(a.State)
		a.Input.SetValue("")
		a.Logger.Debug("form reset", zap.Uint64("generation", a.State.Generation))
		return a, nil
	case ToggleHelpMsg:
		a.ShowHelp = !a.ShowHelp
		return a, nil
	case tea.WindowSizeMsg:
		a.Width = msg.Width
		return a, nil
	case spinner.TickMsg:
		if !a.State.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.Spinner, cmd = a.Spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
		var cmd tea.Cmd
		a.Input, cmd = a.Input.Update(msg)
		a.syncInput()
		return a, cmd
	}

	var cmd tea.Cmd
	a.Input, cmd = a.Input.Update(msg)
	return a, cmd
}

// syncInput runs the widget value through lookup.UpdateInput and writes the
// sanitized value back, so the field never shows a non-digit or a ninth digit.
func (a *appModelAdapter) syncInput() {
	raw := a.Input.Value()
	a.State = lookup.UpdateInput(a.State, raw)
	if raw != a.State.Input {
		pos := a.Input.Position()
		a.Input.SetValue(a.State.Input)
		if pos > len(a.State.Input) {
			pos = len(a.State.Input)
		}
		a.Input.SetCursor(pos)
	}
}

func (a *appModelAdapter) submit() tea.Cmd {
	next, ticket := lookup.Begin(a.State)
	a.State = next
	if ticket == nil {
		if next.Phase == lookup.PhaseError {
			a.Logger.Debug("submission rejected", zap.Int("digits", len(next.Input)))
		}
		return nil
	}
	a.Logger.Debug("lookup started", zap.Uint64("generation", ticket.ID), zap.Int("digits", len(ticket.Digits)))
	if a.Lookuper == nil {
		return func() tea.Msg {
			return LookupCompleteMsg{Outcome: lookup.Outcome{Ticket: *ticket, Err: errNoLookuper}}
		}
	}
	return tea.Batch(a.Spinner.Tick, lookupCmd(a.Ctx, a.Lookuper, *ticket))
}

func (a *appModelAdapter) resolve(o lookup.Outcome) {
	before := a.State
	a.State = lookup.Resolve(a.State, o)
	if a.State.Loading() || !before.Loading() {
		a.Logger.Debug("stale lookup outcome dropped",
			zap.Uint64("ticket", o.Ticket.ID), zap.Uint64("generation", before.Generation))
		return
	}
	a.Logger.Debug("lookup resolved",
		zap.Uint64("generation", o.Ticket.ID), zap.Stringer("phase", a.State.Phase))
}

// View implements tea.Model. It is a pure projection of State.
func (a *appModelAdapter) View() string {
	width := a.Width
	if width <= 0 {
		width = defaultWidth
	}

	sections := []string{
		Styles.Title.Render("BIN Checker Pro"),
		Styles.Subtitle.Render("BIN lookup for card verification and bank identification"),
		"",
		a.viewForm(),
	}
	switch a.State.Phase {
	case lookup.PhaseError:
		sections = append(sections, "", Styles.Banner.Render("✗ "+a.State.Message))
	case lookup.PhaseSuccess:
		sections = append(sections, "", renderResult(a.State.Result, width))
	}
	sections = append(sections, "", RenderKeybindHelp(a.KeyHandler, a.ShowHelp))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (a *appModelAdapter) viewForm() string {
	var b strings.Builder
	b.WriteString(Styles.Value.Render("Enter BIN Number"))
	b.WriteString("\n\n")
	b.WriteString(a.Input.View())
	b.WriteString("\n\n")
	if a.State.Loading() {
		b.WriteString(a.Spinner.View() + Styles.Loading.Render(" Processing..."))
	} else {
		b.WriteString(Styles.Button.Render("Verify BIN"))
		if n := len(a.State.Input); n > 0 && n < bin.MinDigits {
			b.WriteString(Styles.Hint.Render("  " + digitsNeeded(n)))
		}
	}
	return Styles.Form.Render(b.String())
}

// digitsNeeded renders the "n more digits" hint shown under a short input.
func digitsNeeded(n int) string {
	missing := bin.MinDigits - n
	if missing == 1 {
		return "1 more digit"
	}
	return fmt.Sprintf("%d more digits", missing)
}
