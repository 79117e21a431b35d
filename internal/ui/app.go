package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/triage/internal/logging"
	"github.com/five82/triage/internal/prefs"
	"github.com/five82/triage/internal/session"
	"github.com/five82/triage/internal/state"
	"github.com/five82/triage/internal/triage"
)

// Controller runs triage sessions for the UI.
type Controller interface {
	Submit(ctx context.Context, form triage.Form) session.Outcome
	Busy() bool
	Cancel()
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller Controller
	Store      *state.Store
	ThemeName  string
	PrefsPath  string
	Logger     *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller Controller
	store      *state.Store
	prefsPath  string
	logger     *slog.Logger
	keys       keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	inFlight bool

	form    form
	result  viewport.Model
	spinner spinner.Model
	help    help.Model

	snapshot state.Snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var snap state.Snapshot
	if opts.Store != nil {
		snap = opts.Store.Snapshot()
	}

	return Model{
		ctx:        ctx,
		controller: opts.Controller,
		store:      opts.Store,
		prefsPath:  prefsPath,
		logger:     logger,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(themeName),
		form:       newForm(),
		result:     viewport.New(0, 0),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		snapshot:   snap,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.store != nil {
		cmds = append(cmds, waitForChange(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		m.refreshResult()
		return m, nil

	case changeMsg:
		m.snapshot = m.store.Snapshot()
		m.refreshResult()
		return m, waitForChange(m.store)

	case sessionDoneMsg:
		return m.handleSessionDone(session.Outcome(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.controller != nil {
			m.controller.Cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help), m.form.onButton() && msg.String() == "?":
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
		m.refreshResult()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.form.next()

	case key.Matches(msg, m.keys.Prev):
		return m, m.form.prev()

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Press):
		switch m.form.focus {
		case focusButton:
			return m.submit()
		case focusName, focusAge:
			return m, m.form.next()
		}

	case key.Matches(msg, m.keys.ScrollUp):
		m.result.SetYOffset(m.result.YOffset - m.result.Height)
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.result.SetYOffset(m.result.YOffset + m.result.Height)
		return m, nil
	}

	if m.form.onButton() {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// submit starts a session unless one is already running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.controller == nil || m.inFlight || !m.snapshot.SubmitEnabled || m.controller.Busy() {
		return m, nil
	}
	m.inFlight = true
	return m, submitCmd(m.ctx, m.controller, m.form.values())
}

func (m Model) handleSessionDone(out session.Outcome) (tea.Model, tea.Cmd) {
	m.inFlight = false
	logger := m.logger.With("session", out.SessionID, "state", out.State.String())

	var vErr *triage.ValidationError
	if errors.As(out.Err, &vErr) {
		logger.Info("form rejected", "field", vErr.Field)
		return m, m.form.markInvalid(vErr.Field)
	}
	if out.Err != nil {
		logger.Warn("session failed", "error", out.Err, "expired", out.Expired)
		return m, nil
	}
	logger.Info("session finished", "chars", len([]rune(out.Text)))
	return m, nil
}

func (m *Model) resize() {
	formWidth := min(formMaxWidth, m.width/2)
	m.form.setWidth(formWidth)

	resultWidth := max(m.width-formWidth-panelChrome-1, minResultWidth)
	resultHeight := max(m.height-chromeLines-panelChrome-1, minResultHeight)
	m.result.Width = resultWidth
	m.result.Height = resultHeight
	m.help.Width = m.width
}

// refreshResult re-renders the advice and scrolls to the newest content.
func (m *Model) refreshResult() {
	m.result.SetContent(resultContent(m.snapshot, m.theme.Styles(), m.result.Width))
	m.result.GotoBottom()
}

func (m Model) renderMain() string {
	styles := m.theme.Styles()

	header := headerBar(m.theme, styles, m.width)

	formWidth := min(formMaxWidth, m.width/2)
	left := lipgloss.NewStyle().Width(formWidth).Render(m.form.view(styles, m.snapshot.SubmitEnabled && !m.inFlight))

	status := statusLine(m.snapshot, styles, m.spinner.View())
	right := styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, status, m.result.View()))

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	footer := styles.Footer.Render(m.help.View(m.keys))

	return strings.Join([]string{header, body, footer}, "\n")
}

// Messages

type changeMsg struct{}

type sessionDoneMsg session.Outcome

// Commands

// waitForChange blocks until the store signals a write.
func waitForChange(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		<-store.Changes()
		return changeMsg{}
	}
}

// submitCmd runs a whole session off the event loop.
func submitCmd(ctx context.Context, controller Controller, values triage.Form) tea.Cmd {
	return func() tea.Msg {
		return sessionDoneMsg(controller.Submit(ctx, values))
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is canceled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
