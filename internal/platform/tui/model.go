package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-catch/internal/core"
	"github.com/vovakirdan/tui-catch/internal/games/catch"
	"github.com/vovakirdan/tui-catch/internal/registry"
	"github.com/vovakirdan/tui-catch/internal/storage"
)

// eventSource is implemented by games that report catches and misses.
type eventSource interface {
	Events() []catch.Event
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	input     *InputState
	clock     *frameClock
	logger    *log.Logger
	gameState core.GameState

	bell       bool
	ringing    bool
	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// Option configures a Model.
type Option func(*Model)

// WithBell rings the terminal bell on catches and misses.
func WithBell(on bool) Option {
	return func(m *Model) { m.bell = on }
}

// WithLogger sets the logger for session diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// embedded keeps the model from quitting the program on back, so a parent
// model can switch back to its menu.
func embedded() Option {
	return func(m *Model) { m.embedded = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  NewInputState(),
		clock:  &frameClock{},
		logger: log.New(io.Discard),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// playHeight leaves the last terminal row for the help bar.
func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	actions := m.keys.MapKey(msg)
	for _, a := range actions {
		switch a {
		case core.ActionQuit:
			m.quitting = true
			return m, tea.Quit
		case core.ActionBack:
			m.backToMenu = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		}
	}
	m.input.Press(time.Now(), actions...)
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := m.input.Frame(now)
	delta := m.clock.Delta(now, m.config.FrameDelta())

	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.input.Release()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Frame(delta, frame)
	m.gameState = result.State

	m.ringing = false
	if src, ok := m.game.(eventSource); ok && len(src.Events()) > 0 {
		m.ringing = m.bell
	}

	m.persist()
	return m, tickCmd(m.config.TickRate)
}

// persist saves level outcomes as they happen and the final score once.
func (m *Model) persist() {
	if lr, ok := m.game.(registry.LevelReporter); ok {
		for _, res := range lr.DrainLevelResults() {
			m.logger.Info("level finished", "game", res.GameID, "level", res.Level, "outcome", res.Outcome)
			if m.store != nil {
				//nolint:errcheck // Best-effort save, game continues regardless
				m.store.SaveLevelResult(res)
			}
		}
	}

	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		if m.store != nil {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.scoreSaved = true
	}
}

func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	view := RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
	if m.ringing {
		view += "\a"
	}
	return view
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// It reports whether the player asked to return to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (bool, error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
