// Package happyball implements the Happy Ball simulation.
// A ball falls under gravity, the player kicks it upward, and it must pass
// through the gaps of an endless stream of scrolling obstacles. The package is
// driven by an external clock (OnTick) and external input (Jump) and exposes
// its state as Snapshots; it never renders or schedules on its own.
package happyball

import (
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/core"
)

// Game is the state machine for one player: Idle -> Playing -> GameOver ->
// Playing. It exclusively owns the ball, the obstacle field and the sky.
type Game struct {
	cfg      config.HappyBallConfig
	seed     int64
	ball     *Ball
	field    *ObstacleField
	sky      *Sky
	detector CollisionDetector
	latch    JumpLatch
	ticking  atomic.Bool

	phase Phase
	score int
	tick  uint64
}

// NewGame creates an idle game whose obstacle layout is derived from seed.
// It panics if cfg is not playable; configs from the loader are already validated.
func NewGame(cfg config.HappyBallConfig, seed int64) *Game {
	return NewGameWithSource(cfg, seed, NewRandSource(seed))
}

// NewGameWithSource is NewGame with an explicit random source.
func NewGameWithSource(cfg config.HappyBallConfig, seed int64, rng RandSource) *Game {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("happyball: %v", err))
	}

	g := &Game{
		cfg:  cfg,
		seed: seed,
		detector: CollisionDetector{
			ObstacleWidth: float64(cfg.Obstacles.Width),
			GapHeight:     float64(cfg.Obstacles.GapHeight),
			GroundY:       cfg.GroundY(),
			CeilingY:      0,
		},
		field: NewObstacleField(cfg.Obstacles, cfg.Playfield.Width, rng),
		sky:   NewSky(cfg.Clouds, cfg.Playfield.Width, NewRandSource(seed^cloudSalt)),
		phase: PhaseIdle,
	}
	g.ball = g.newBall()
	return g
}

func (g *Game) newBall() *Ball {
	return NewBall(float64(g.cfg.Ball.X), g.cfg.StartY(), float64(g.cfg.Ball.Size))
}

// Jump queues a jump for the next tick. Safe to call from any goroutine.
func (g *Game) Jump() {
	g.latch.Raise()
}

// OnTick advances the simulation by exactly one tick and returns the
// resulting snapshot. It must not be called concurrently with itself.
func (g *Game) OnTick() Snapshot {
	if !g.ticking.CompareAndSwap(false, true) {
		panic("happyball: OnTick re-entered while a tick is in progress")
	}
	defer g.ticking.Store(false)

	g.tick++
	jumped := g.latch.Consume()
	g.sky.Tick()

	switch g.phase {
	case PhaseIdle, PhaseGameOver:
		if jumped {
			g.reset()
			g.phase = PhasePlaying
			g.ball.ApplyImpulse(g.cfg.Physics.JumpImpulse)
		}
	case PhasePlaying:
		if jumped {
			g.ball.ApplyImpulse(g.cfg.Physics.JumpImpulse)
		}
		g.update()
	}

	return g.snapshot(jumped)
}

// update runs the Playing pipeline. Collisions are evaluated after the ball
// has moved, so the final frame shows the positions that caused game over.
func (g *Game) update() {
	physics := g.cfg.Physics

	g.field.Tick(physics.ScrollSpeed, float64(g.cfg.Playfield.Width))
	g.ball.Integrate(physics.Gravity, 1)
	g.score += g.field.CheckPassAndScore(g.ball.X)

	if g.detector.Collides(g.ball.Box(), g.field.Obstacles()) {
		g.phase = PhaseGameOver
	}
}

// reset starts a new round: zero score, a fresh ball at the start position
// and a pre-populated field. The caller sets the phase.
func (g *Game) reset() {
	g.score = 0
	g.ball = g.newBall()
	g.field.Reset()
}

// Snapshot returns the current state without advancing the simulation.
func (g *Game) Snapshot() Snapshot {
	return g.snapshot(false)
}

// Phase returns the current state machine position.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the score of the current round.
func (g *Game) Score() int {
	return g.score
}

// Seed returns the seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.HappyBallConfig {
	return g.cfg
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "happyball"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Happy Ball"
}

// applyInput turns a platform input frame into game commands.
func (g *Game) applyInput(in core.InputFrame) {
	if in.Has(core.ActionJump) {
		g.Jump()
	}
	if in.Has(core.ActionRestart) && g.phase == PhaseGameOver {
		g.Jump()
	}
}

// Step applies the frame's input and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.applyInput(in)
	g.OnTick()
	return core.StepResult{State: g.State()}
}

// Render draws the current state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(g.Snapshot(), dst)
}

// State returns the platform-facing summary of the game.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Started:  g.phase != PhaseIdle,
		GameOver: g.phase == PhaseGameOver,
	}
}
