package happyball

import "github.com/vovakirdan/happyball/internal/core"

// Phase is the game's state machine position.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting for the first jump
	PhasePlaying               // Full tick pipeline runs
	PhaseGameOver              // Frozen until a jump restarts the round
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ObstacleView is the renderer's read-only view of one obstacle.
type ObstacleView struct {
	X         float64 // Leading edge
	Width     float64
	GapTop    float64 // First free row of the gap
	GapBottom float64 // First solid row below the gap
	Passed    bool
}

// Snapshot is a self-contained copy of the world after a tick.
// It shares no memory with the game, so it can be handed to another goroutine.
type Snapshot struct {
	Phase        Phase
	Score        int
	Tick         uint64 // Ticks processed so far, including this one
	Jumped       bool   // Whether this tick consumed a jump
	Ball         core.Box
	BallVelocity float64
	Obstacles    []ObstacleView
	Clouds       []core.Box

	Width   float64 // Playfield width
	Height  float64 // Playfield height
	GroundY float64
}

// snapshot copies the current state into a Snapshot.
func (g *Game) snapshot(jumped bool) Snapshot {
	gapHeight := float64(g.cfg.Obstacles.GapHeight)
	width := g.field.Width()

	live := g.field.Obstacles()
	views := make([]ObstacleView, len(live))
	for i, o := range live {
		views[i] = ObstacleView{
			X:         o.X,
			Width:     width,
			GapTop:    float64(o.GapTop),
			GapBottom: float64(o.GapTop) + gapHeight,
			Passed:    o.Passed,
		}
	}

	clouds := append([]core.Box(nil), g.sky.Clouds()...)

	return Snapshot{
		Phase:        g.phase,
		Score:        g.score,
		Tick:         g.tick,
		Jumped:       jumped,
		Ball:         g.ball.Box(),
		BallVelocity: g.ball.VelocityY,
		Obstacles:    views,
		Clouds:       clouds,
		Width:        float64(g.cfg.Playfield.Width),
		Height:       float64(g.cfg.Playfield.Height),
		GroundY:      g.cfg.GroundY(),
	}
}
