package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/session"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Env carries what every screen of the front-end needs.
type Env struct {
	Config   *config.PlatformerConfig
	Registry *registry.Registry // nil means registry.Default
	Store    *storage.Store     // nil disables the run history
	Logger   *log.Logger        // nil discards
	Runtime  core.RuntimeConfig
	Player   string // Name recorded with saved runs
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

// NewController starts a session for the given mode and level.
func (e Env) NewController(mode session.Mode, start int) (*session.Controller, error) {
	opts := []session.Option{
		session.WithLogger(e.logger()),
		session.WithSeed(e.Runtime.Seed),
		session.WithMode(mode),
		session.WithStartLevel(start),
	}
	if e.Registry != nil {
		opts = append(opts, session.WithRegistry(e.Registry))
	}
	return session.New(e.Config, opts...)
}

// GameModel is the Bubble Tea model for one play session.
type GameModel struct {
	ctrl       *session.Controller
	env        Env
	screen     *core.Screen
	keyMapper  *KeyMapper
	hold       *KeyHold
	now        func() time.Time
	last       time.Time // Previous frame, zero before the first
	quitting   bool
	backToMenu bool
	runSaved   bool
	standalone bool // Leaving ends the program instead of returning to a menu
	err        error
}

// NewGameModel wraps a session controller.
func NewGameModel(ctrl *session.Controller, env Env) GameModel {
	return GameModel{
		ctrl:      ctrl,
		env:       env,
		screen:    core.NewScreen(env.Runtime.ScreenW, env.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		hold:      NewKeyHold(env.Config.Input.Hold),
		now:       time.Now,
	}
}

// Init starts the frame loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.env.Runtime.FrameFPS)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.env.Runtime.ScreenW = msg.Width
		m.env.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, run, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	now := m.now()
	switch action {
	case core.ActionLeft, core.ActionRight:
		m.hold.Press(action, now)
		if run {
			m.hold.Press(core.ActionRun, now)
		}
	case core.ActionRun:
		m.hold.Press(core.ActionRun, now)
	case core.ActionJump:
		m.ctrl.Jump()
	case core.ActionPause:
		m.ctrl.TogglePause()
		m.hold.Clear()
	case core.ActionRestart:
		if m.ctrl.State() == session.StateGameOver {
			if err := m.ctrl.Restart(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.runSaved = false
			m.hold.Clear()
		}
	case core.ActionBack:
		if m.ctrl.Paused() || m.ctrl.State() == session.StateGameOver {
			m.saveRun()
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// handleTick feeds the elapsed wall time to the session clock.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	var elapsed time.Duration
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	m.ctrl.SetKeys(m.hold.Keys(now))
	if _, err := m.ctrl.Advance(elapsed); err != nil {
		m.env.logger().Error("session failed", "error", err)
		m.err = err
		return m, tea.Quit
	}

	if m.ctrl.State() == session.StateGameOver {
		m.saveRun()
	}
	return m, tickCmd(m.env.Runtime.FrameFPS)
}

// saveRun records the run once. Runs without points are not kept.
func (m *GameModel) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	stats := m.ctrl.Stats()
	if m.env.Store == nil || stats.Score <= 0 {
		return
	}
	_, err := m.env.Store.SaveRun(storage.Run{
		Player:        m.env.Player,
		Mode:          string(stats.Mode),
		World:         stats.World,
		Score:         stats.Score,
		Coins:         stats.Coins,
		Seed:          stats.Seed,
		LevelsCleared: stats.LevelsCleared,
		Deaths:        stats.Deaths,
	})
	if err != nil {
		m.env.logger().Warn("could not save run", "error", err)
		return
	}
	m.env.logger().Info("run saved", "score", stats.Score, "world", stats.World, "mode", stats.Mode)
}

// saveScreenshot writes the current frame as plain text.
func (m *GameModel) saveScreenshot() {
	DrawGame(m.screen, m.ctrl.Snapshot())

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("world%d_%s.txt", m.ctrl.Index(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	DrawGame(m.screen, m.ctrl.Snapshot())
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the error that ended the session, if any.
func (m GameModel) Err() error {
	return m.err
}

// Run plays one session in the terminal until the player quits or leaves.
func Run(ctrl *session.Controller, env Env) error {
	model := NewGameModel(ctrl, env)
	model.standalone = true
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(GameModel); ok {
		return m.Err()
	}
	return nil
}
