package happyball

import (
	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/core"
)

// cloudSalt separates the cloud stream from the obstacle stream of the same
// seed, so scenery never shifts obstacle layouts.
const cloudSalt int64 = 0x636c6f756473

// Sky owns the background clouds. Clouds drift left on every tick whatever
// the game phase, and wrap back past the right edge once fully off screen.
type Sky struct {
	clouds         []core.Box
	cfg            config.Clouds
	playfieldWidth float64
	rng            RandSource
}

// NewSky scatters cfg.Count clouds across the playfield.
func NewSky(cfg config.Clouds, playfieldWidth int, rng RandSource) *Sky {
	s := &Sky{
		clouds:         make([]core.Box, 0, cfg.Count),
		cfg:            cfg,
		playfieldWidth: float64(playfieldWidth),
		rng:            rng,
	}
	for i := 0; i < cfg.Count; i++ {
		x := float64(rng.Intn(playfieldWidth))
		y := float64(rng.Intn(cfg.MaxY + 1))
		w := float64(between(rng, cfg.MinWidth, cfg.MaxWidth))
		h := float64(between(rng, cfg.MinHeight, cfg.MaxHeight))
		s.clouds = append(s.clouds, core.NewBox(x, y, w, h))
	}
	return s
}

// Tick drifts every cloud left and respawns those that left the playfield.
func (s *Sky) Tick() {
	for i := range s.clouds {
		c := &s.clouds[i]
		c.X -= s.cfg.Drift
		if c.Right() < 0 {
			c.X = s.playfieldWidth + float64(s.rng.Intn(s.cfg.RespawnSpread+1))
		}
	}
}

// Clouds returns the live clouds. The slice must not be modified.
func (s *Sky) Clouds() []core.Box {
	return s.clouds
}

// between draws a uniform integer in [lo, hi].
func between(rng RandSource, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
