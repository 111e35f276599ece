package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calcpad/internal/config"
	"calcpad/internal/engine"
	"calcpad/internal/keymap"
	"calcpad/internal/logging"
	"calcpad/internal/tui/state"
	"calcpad/internal/tui/util"
	"calcpad/internal/tui/widgets/display"
	"calcpad/internal/tui/widgets/helpoverlay"
	"calcpad/internal/tui/widgets/keypad"
	"calcpad/internal/tui/widgets/statusbar"
)

// noticeTTL is how long a status notice stays up.
const noticeTTL = 3 * time.Second

// Options configures Run.
type Options struct {
	Settings     config.Settings
	SettingsPath string // where theme changes are saved; empty disables saving
	Logger       *slog.Logger
	NoColor      bool
}

// Run starts the interactive calculator and blocks until the user quits.
func Run(o Options) error {
	if o.Logger == nil {
		o.Logger = logging.New(nil, slog.LevelWarn)
	}
	eng := engine.New(
		engine.WithErrorDelay(o.Settings.ErrorDelay()),
		engine.WithLogger(o.Logger),
	)
	defer eng.Close()

	m := newModel(eng, o)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	// the error auto-clear fires off the UI goroutine
	eng.SetListener(func(pr engine.Projection) { p.Send(projectionMsg(pr)) })
	_, err := p.Run()
	return err
}

// ===== Model =====

type projectionMsg engine.Projection

type clearNoticeMsg struct{ seq int }

type model struct {
	eng    *engine.Engine
	proj   engine.Projection
	ui     state.UIState
	keys   keymap.Bindings
	help   helpoverlay.HelpOverlay
	status statusbar.StatusBar
	layout [][]keypad.Button

	settings config.Settings
	path     string
	noColor  bool
	copy     func(string) error
	log      *slog.Logger
}

func newModel(eng *engine.Engine, o Options) model {
	log := o.Logger
	if log == nil {
		log = logging.New(nil, slog.LevelWarn)
	}
	return model{
		eng:      eng,
		proj:     eng.Projection(),
		ui:       state.UIState{Theme: state.ParseTheme(o.Settings.Theme)},
		keys:     keymap.Default(),
		help:     helpoverlay.NewHelpOverlay(),
		status:   statusbar.NewStatusBar(),
		layout:   keypad.Layout(),
		settings: o.Settings,
		path:     o.SettingsPath,
		noColor:  util.NoColor(o.NoColor || o.Settings.NoColor),
		copy:     clipboard.WriteAll,
		log:      log,
	}
}

func (m model) Init() tea.Cmd { return nil }

// Update handles keyboard, mouse and engine messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleClick(msg.X, msg.Y)

	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.help = m.help.SetWidth(msg.Width)
		return m, nil

	case projectionMsg:
		m.proj = engine.Projection(msg)
		return m, nil

	case clearNoticeMsg:
		m.ui = state.ClearNotice(m.ui, msg.seq)
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Copy):
		return m.copyResult()
	case key.Matches(msg, m.keys.Help):
		m.ui = state.ToggleHelp(m.ui)
		return m, nil
	case key.Matches(msg, m.keys.Press):
		return m.press(m.ui.Row, m.ui.Col)
	}

	switch msg.String() {
	case "up":
		m.ui = state.MoveCursor(m.ui, -1, 0, keypad.RowLens(m.layout))
		return m, nil
	case "down":
		m.ui = state.MoveCursor(m.ui, 1, 0, keypad.RowLens(m.layout))
		return m, nil
	case "left":
		m.ui = state.MoveCursor(m.ui, 0, -1, keypad.RowLens(m.layout))
		return m, nil
	case "right":
		m.ui = state.MoveCursor(m.ui, 0, 1, keypad.RowLens(m.layout))
		return m, nil
	}

	tok, ok := keymap.Token(msg.String())
	if !ok {
		return m, nil
	}
	if r, c, found := m.buttonFor(tok); found {
		m.ui = state.Focus(m.ui, r, c, keypad.RowLens(m.layout))
	}
	m.proj = m.eng.Dispatch(tok)
	return m, nil
}

func (m model) handleClick(x, y int) (tea.Model, tea.Cmd) {
	if y == 0 && x >= m.contentWidth()-lipgloss.Width(m.themeToggle()) {
		return m.toggleTheme()
	}
	r, c, ok := keypad.HitTest(m.layout, x, y-m.keypadTop())
	if !ok {
		return m, nil
	}
	return m.press(r, c)
}

func (m model) press(row, col int) (tea.Model, tea.Cmd) {
	if row < 0 || row >= len(m.layout) || col < 0 || col >= len(m.layout[row]) {
		return m, nil
	}
	m.ui = state.Focus(m.ui, row, col, keypad.RowLens(m.layout))
	m.proj = m.eng.Dispatch(m.layout[row][col].Token)
	return m, nil
}

func (m model) buttonFor(tok engine.Token) (row, col int, ok bool) {
	for r, buttons := range m.layout {
		for c, b := range buttons {
			if b.Token == tok {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func (m model) toggleTheme() (tea.Model, tea.Cmd) {
	m.ui = state.ToggleTheme(m.ui)
	m.settings.Theme = m.ui.Theme.String()
	if m.path != "" {
		if err := config.Save(m.path, m.settings); err != nil {
			m.log.Warn("save settings", "path", m.path, "err", err)
			m.ui = state.SetNotice(m.ui, "Could not save theme")
		}
	}
	return m, m.expireNotice()
}

func (m model) copyResult() (tea.Model, tea.Cmd) {
	if m.proj.IsError {
		m.ui = state.SetNotice(m.ui, "Nothing to copy")
		return m, m.expireNotice()
	}
	if err := m.copy(m.proj.Primary); err != nil {
		m.log.Warn("copy to clipboard", "err", err)
		m.ui = state.SetNotice(m.ui, "Copy failed")
		return m, m.expireNotice()
	}
	m.log.Debug("copied", "value", m.proj.Primary)
	m.ui = state.SetNotice(m.ui, "Copied "+m.proj.Primary)
	return m, m.expireNotice()
}

func (m model) expireNotice() tea.Cmd {
	seq := m.ui.NoticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// ===== Views =====

func (m model) View() string {
	pal := util.PaletteFor(m.ui.Theme)
	top := m.top(pal)
	pad := keypad.View(m.layout, m.ui.Row, m.ui.Col, pal, m.noColor)

	status := m.status.View(m.ui)
	if !m.noColor {
		status = lipgloss.NewStyle().Foreground(pal.Muted).Render(status)
	}

	var b strings.Builder
	b.WriteString(top + "\n\n")
	b.WriteString(pad + "\n\n")
	b.WriteString(status + "\n")
	b.WriteString(m.help.View(m.ui, m.keys))
	return b.String()
}

// top renders the header and display; the keypad starts one blank line below.
func (m model) top(pal util.Palette) string {
	width := m.contentWidth()
	title := "Calculator"
	toggle := m.themeToggle()
	gap := width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	titleStyle := lipgloss.NewStyle().Bold(true)
	if !m.noColor {
		titleStyle = titleStyle.Foreground(pal.Text)
	}
	header := titleStyle.Render(title) + strings.Repeat(" ", gap) + toggle
	return lipgloss.JoinVertical(lipgloss.Left, header, display.View(m.proj, width, pal, m.noColor))
}

func (m model) keypadTop() int {
	return lipgloss.Height(m.top(util.PaletteFor(m.ui.Theme))) + 1
}

func (m model) contentWidth() int { return keypad.Width(m.layout) }

func (m model) themeToggle() string {
	if m.ui.Theme == state.Dark {
		return "[☀]"
	}
	return "[☾]"
}
