package happyball

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/core"
)

// RandSource supplies the randomness used for obstacle layout.
// Implementations must be deterministic for a given seed.
type RandSource interface {
	// Intn returns a uniform integer in [0, n). n is always positive.
	Intn(n int) int
}

// NewRandSource returns the default seeded source.
func NewRandSource(seed int64) RandSource {
	return rand.New(rand.NewSource(uint64(seed)))
}

// Obstacle is a gated pair: a solid column with one gap of fixed height.
type Obstacle struct {
	X      float64 // Horizontal position (leading edge)
	GapTop int     // Height of the top segment, i.e. where the gap begins
	Passed bool    // Whether the ball has cleared this obstacle
}

// Trailing returns the x-coordinate of the obstacle's trailing edge.
func (o Obstacle) Trailing(width float64) float64 {
	return o.X + width
}

// TopBox returns the collision box of the segment above the gap.
func (o Obstacle) TopBox(width float64) core.Box {
	return core.NewBox(o.X, 0, width, float64(o.GapTop))
}

// BottomBox returns the collision box of the segment between the gap and the ground.
func (o Obstacle) BottomBox(width, gapHeight, groundY float64) core.Box {
	top := float64(o.GapTop) + gapHeight
	return core.NewBox(o.X, top, width, groundY-top)
}

// ObstacleField owns the ordered sequence of obstacles, oldest (smallest X) first.
type ObstacleField struct {
	obstacles      []Obstacle
	cfg            config.Obstacles
	width          float64 // Obstacle width
	playfieldWidth float64
	rng            RandSource
}

// NewObstacleField creates an empty field. Call Reset to pre-populate it.
func NewObstacleField(cfg config.Obstacles, playfieldWidth int, rng RandSource) *ObstacleField {
	if cfg.InitialCount < 0 {
		panic(fmt.Sprintf("happyball: negative initial obstacle count %d", cfg.InitialCount))
	}
	if cfg.MaxGapTop < cfg.MinGapTop || cfg.MaxSpacing < cfg.MinSpacing {
		panic("happyball: obstacle ranges are inverted")
	}
	return &ObstacleField{
		obstacles:      make([]Obstacle, 0, cfg.InitialCount+2),
		cfg:            cfg,
		width:          float64(cfg.Width),
		playfieldWidth: float64(playfieldWidth),
		rng:            rng,
	}
}

// Reset clears the field and lays out the initial obstacles past the right
// edge, using the same spacing rule as steady-state spawning.
func (f *ObstacleField) Reset() {
	f.obstacles = f.obstacles[:0]

	x := f.playfieldWidth + float64(f.cfg.StartOffset)
	for i := 0; i < f.cfg.InitialCount; i++ {
		f.SpawnAt(x)
		x += f.spacing()
	}
}

// SpawnAt appends an obstacle with a random gap position at x.
// Callers keep the sequence ordered by only spawning past the last obstacle.
func (f *ObstacleField) SpawnAt(x float64) {
	gapTop := f.cfg.MinGapTop + f.rng.Intn(f.cfg.MaxGapTop-f.cfg.MinGapTop+1)
	f.obstacles = append(f.obstacles, Obstacle{X: x, GapTop: gapTop})
}

// spacing draws the distance between two consecutive leading edges.
func (f *ObstacleField) spacing() float64 {
	return float64(f.cfg.MinSpacing + f.rng.Intn(f.cfg.MaxSpacing-f.cfg.MinSpacing+1))
}

// Tick scrolls every obstacle left, spawns a new one when the last obstacle
// has moved far enough into the playfield, and drops obstacles that have
// fully left the screen.
func (f *ObstacleField) Tick(scrollSpeed, playfieldWidth float64) {
	for i := range f.obstacles {
		f.obstacles[i].X -= scrollSpeed
	}

	n := len(f.obstacles)
	if n == 0 || f.obstacles[n-1].Trailing(f.width) < playfieldWidth-float64(f.cfg.Lookahead) {
		lastX := playfieldWidth
		if n > 0 {
			lastX = f.obstacles[n-1].X
		}
		f.SpawnAt(lastX + f.spacing())
	}

	// Build the surviving sequence first, then swap it in.
	kept := make([]Obstacle, 0, len(f.obstacles))
	for _, o := range f.obstacles {
		if o.Trailing(f.width) >= 0 {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept
}

// CheckPassAndScore marks every obstacle whose trailing edge is left of
// ballX as passed and returns how many were newly passed.
func (f *ObstacleField) CheckPassAndScore(ballX float64) int {
	passed := 0
	for i := range f.obstacles {
		if !f.obstacles[i].Passed && f.obstacles[i].Trailing(f.width) < ballX {
			f.obstacles[i].Passed = true
			passed++
		}
	}
	return passed
}

// Obstacles returns the live obstacle sequence. Callers must not modify it.
func (f *ObstacleField) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Width returns the obstacle column width.
func (f *ObstacleField) Width() float64 {
	return f.width
}
