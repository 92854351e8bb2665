// Package session runs a play session: it owns the simulation clock, the
// current world and the player, and moves between levels as the player
// dies or reaches the flag.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// State is the controller's level-flow state.
type State int

const (
	StatePlaying  State = iota // Player has control
	StateDying                 // Death fall in progress
	StateClearing              // Flag reached, waiting out the clear delay
	StateGameOver              // No lives left
)

var stateNames = [...]string{"playing", "dying", "clearing", "game over"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Mode selects how the level schedule is built.
type Mode string

const (
	ModeCampaign Mode = "campaign" // session.levels, then the overflow builder
	ModeEndless  Mode = "endless"  // overflow builder for every level
)

// cameraLead is how far into the view the player sits before it scrolls.
const cameraLead = 0.4

// Stats aggregates the run so far.
type Stats struct {
	Mode          Mode
	Seed          int64
	World         int
	Score         int
	Coins         int
	Lives         int
	Deaths        int
	LevelsCleared int
	Kills         int
	Pickups       int
	Ticks         uint64
	Dropped       uint64 // Render callbacks whose backlog hit the catch-up cap
}

// View is what a front-end needs to draw one frame.
type View struct {
	sim.Snapshot

	State   State
	Paused  bool
	Lives   int
	CameraX float64
	Builder string // Builder id of the current level
	Title   string
	Alpha   float64 // Progress into the next tick, in [0, 1)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the event logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRegistry sets where builder ids are looked up. Default is registry.Default.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Controller) { c.reg = r }
}

// WithSeed sets the run seed. Level n is built from seed+n.
func WithSeed(seed int64) Option {
	return func(c *Controller) { c.seed = seed }
}

// WithMode selects campaign or endless scheduling.
func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

// WithStartLevel sets the 1-based level the run starts at.
func WithStartLevel(index int) Option {
	return func(c *Controller) {
		if index > 0 {
			c.start = index
		}
	}
}

// Controller drives one player through a sequence of levels.
// It is not safe for concurrent use.
type Controller struct {
	cfg    *config.PlatformerConfig
	reg    *registry.Registry
	logger *log.Logger
	clock  *core.Clock

	world  *sim.World
	player *sim.Player
	keys   sim.Keys

	mode    Mode
	seed    int64
	start   int
	index   int
	builder registry.Builder

	state      State
	paused     bool
	lives      int
	clearTimer int
	cameraX    float64

	stats Stats
	err   error // First level-load failure raised inside a clock tick
}

// New creates a controller and loads the start level.
func New(cfg *config.PlatformerConfig, opts ...Option) (*Controller, error) {
	c := &Controller{
		cfg:    cfg,
		reg:    registry.Default,
		logger: log.New(io.Discard),
		mode:   ModeCampaign,
		start:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}
	c.clock = core.NewClock(cfg.TickDuration(), cfg.Clock.MaxCatchUp)
	c.player = sim.NewPlayer(cfg)
	c.lives = cfg.Session.Lives

	if err := c.LoadLevel(c.start); err != nil {
		return nil, err
	}
	return c, nil
}

// BuilderFor returns the builder id scheduled for a 1-based level index.
func (c *Controller) BuilderFor(index int) string {
	levels := c.cfg.Session.Levels
	if c.mode == ModeEndless || index < 1 || index > len(levels) {
		return c.cfg.Session.Overflow
	}
	return levels[index-1]
}

// LoadLevel builds level index from scratch and respawns the player.
// Score, coins and power state carry over.
func (c *Controller) LoadLevel(index int) error {
	id := c.BuilderFor(index)
	b, err := c.reg.Lookup(id)
	if err != nil {
		return fmt.Errorf("session: level %d: %w", index, err)
	}

	seed := c.seed + int64(index)
	w, err := b.Build(c.cfg, index, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("session: level %d: %w", index, err)
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("session: level %d (%s): %w", index, id, err)
	}

	c.world = w
	c.builder = b
	c.index = index
	c.player.Respawn()
	c.keys = sim.Keys{}
	c.state = StatePlaying
	c.clearTimer = 0
	c.cameraX = 0
	c.clock.Reset()

	c.logger.Info("level loaded", "world", index, "builder", id, "seed", seed, "lives", c.lives)
	return nil
}

// ResetLevel rebuilds the current level.
func (c *Controller) ResetLevel() error {
	return c.LoadLevel(c.index)
}

// AdvanceLevel loads the next level.
func (c *Controller) AdvanceLevel() error {
	return c.LoadLevel(c.index + 1)
}

// SetKeys replaces the held-key set sampled by the next ticks.
func (c *Controller) SetKeys(keys sim.Keys) {
	c.keys = keys
}

// Advance feeds elapsed wall time to the clock and runs the resulting
// ticks. Nothing accumulates while paused or after game over.
func (c *Controller) Advance(elapsed time.Duration) (int, error) {
	if c.paused || c.state == StateGameOver {
		return 0, nil
	}
	n := c.clock.Advance(elapsed, c.tick)
	return n, c.takeErr()
}

// Step runs exactly one tick with the given keys, bypassing the clock.
func (c *Controller) Step(keys sim.Keys) error {
	if c.paused || c.state == StateGameOver {
		return nil
	}
	c.keys = keys
	c.tick()
	return c.takeErr()
}

// Jump is the edge-triggered jump input.
func (c *Controller) Jump() {
	if c.paused || c.state != StatePlaying {
		return
	}
	c.player.Jump()
}

// TogglePause flips the pause flag and returns the new value.
func (c *Controller) TogglePause() bool {
	if c.state == StateGameOver {
		return c.paused
	}
	c.paused = !c.paused
	if c.paused {
		c.clock.Reset()
	}
	c.logger.Debug("pause toggled", "paused", c.paused)
	return c.paused
}

// Restart begins a new run with the same seed and start level.
func (c *Controller) Restart() error {
	c.player = sim.NewPlayer(c.cfg)
	c.lives = c.cfg.Session.Lives
	c.paused = false
	c.stats = Stats{}
	c.err = nil
	c.logger.Info("run restarted", "seed", c.seed)
	return c.LoadLevel(c.start)
}

// State returns the level-flow state.
func (c *Controller) State() State { return c.state }

// Paused reports whether the session is paused.
func (c *Controller) Paused() bool { return c.paused }

// Index returns the current 1-based level index.
func (c *Controller) Index() int { return c.index }

// Lives returns the remaining lives.
func (c *Controller) Lives() int { return c.lives }

// Seed returns the run seed.
func (c *Controller) Seed() int64 { return c.seed }

// Mode returns the scheduling mode.
func (c *Controller) Mode() Mode { return c.mode }

// Alpha returns the clock's progress into the next tick.
func (c *Controller) Alpha() float64 { return c.clock.Alpha() }

// Snapshot returns a read-only view of the current frame.
func (c *Controller) Snapshot() View {
	return View{
		Snapshot: c.world.Snapshot(c.player),
		State:    c.state,
		Paused:   c.paused,
		Lives:    c.lives,
		CameraX:  c.cameraX,
		Alpha:    c.Alpha(),
		Builder:  c.builder.ID(),
		Title:    c.builder.Title(),
	}
}

// Stats returns the run totals.
func (c *Controller) Stats() Stats {
	s := c.stats
	s.Mode = c.mode
	s.Seed = c.seed
	s.World = c.index
	s.Score = c.player.Score
	s.Coins = c.player.Coins
	s.Lives = c.lives
	s.Dropped = c.clock.Dropped()
	return s
}

func (c *Controller) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

// tick runs one simulation step and the level-flow transitions after it.
func (c *Controller) tick() {
	if c.err != nil {
		return
	}
	c.stats.Ticks++

	switch c.state {
	case StatePlaying:
		res := c.world.Step(c.player, c.keys, false)
		c.stats.Kills += res.Kills
		c.stats.Pickups += res.Pickups
		c.follow()

		switch {
		case res.PlayerDied:
			c.state = StateDying
			c.stats.Deaths++
			c.logger.Info("player died", "world", c.index, "x", c.player.X, "score", c.player.Score)
		case res.Cleared:
			c.state = StateClearing
			c.clearTimer = c.cfg.Session.ClearDelay
			c.stats.LevelsCleared++
			c.logger.Info("level cleared", "world", c.index, "score", c.player.Score, "coins", c.player.Coins)
		}

	case StateDying:
		c.world.Step(c.player, sim.Keys{}, false)
		if c.player.Y <= c.cfg.World.ViewHeight+c.cfg.Session.RespawnMargin {
			return
		}
		c.lives--
		if c.lives <= 0 {
			c.lives = 0
			c.state = StateGameOver
			c.logger.Info("game over", "world", c.index, "score", c.player.Score, "coins", c.player.Coins)
			return
		}
		c.setErr(c.ResetLevel())

	case StateClearing:
		c.world.Step(c.player, sim.Keys{}, true)
		c.clearTimer--
		if c.clearTimer <= 0 {
			c.setErr(c.AdvanceLevel())
		}

	case StateGameOver:
	}
}

func (c *Controller) setErr(err error) {
	if err == nil {
		return
	}
	c.logger.Error("level load failed", "error", err)
	// Stop the clock loop from ticking a stale world.
	c.state = StateGameOver
	c.err = errors.Join(c.err, err)
}

// follow scrolls the camera forward and keeps the player inside the
// visible span and the level end.
func (c *Controller) follow() {
	p := c.player
	if p.Dead {
		return
	}
	view := c.cfg.World.ViewWidth
	maxCam := max(c.world.EndX-view, 0)

	if target := p.X - view*cameraLead; target > c.cameraX {
		c.cameraX = min(target, maxCam)
	}

	if p.X < c.cameraX {
		p.X = c.cameraX
		if p.VX < 0 {
			p.VX = 0
		}
	}
	if right := c.world.EndX - p.W; p.X > right {
		p.X = right
		if p.VX > 0 {
			p.VX = 0
		}
	}
}
