// Package config provides YAML-based game configuration loading and
// validation for Happy Ball.
package config

import "fmt"

// HappyBallConfig contains every tunable constant of the simulation.
type HappyBallConfig struct {
	Playfield Playfield `yaml:"playfield"`
	Ball      Ball      `yaml:"ball"`
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	Clouds    Clouds    `yaml:"clouds"`
}

// Playfield defines the world dimensions.
type Playfield struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundHeight int `yaml:"ground_height"`
}

// Ball defines the player's fixed column and hitbox size.
type Ball struct {
	X    int `yaml:"x"`
	Size int `yaml:"size"`
}

// Physics defines per-tick motion constants.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// Obstacles defines obstacle geometry and spawning.
type Obstacles struct {
	Width        int `yaml:"width"`
	GapHeight    int `yaml:"gap_height"`
	MinGapTop    int `yaml:"min_gap_top"`
	MaxGapTop    int `yaml:"max_gap_top"`
	Lookahead    int `yaml:"lookahead"`
	MinSpacing   int `yaml:"min_spacing"`
	MaxSpacing   int `yaml:"max_spacing"`
	InitialCount int `yaml:"initial_count"`
	StartOffset  int `yaml:"start_offset"`
}

// Clouds defines the drifting background scenery. Ranges are inclusive.
type Clouds struct {
	Count         int     `yaml:"count"`
	Drift         float64 `yaml:"drift"`
	MaxY          int     `yaml:"max_y"`
	MinWidth      int     `yaml:"min_width"`
	MaxWidth      int     `yaml:"max_width"`
	MinHeight     int     `yaml:"min_height"`
	MaxHeight     int     `yaml:"max_height"`
	RespawnSpread int     `yaml:"respawn_spread"`
}

// GroundY returns the y-coordinate of the ground surface.
func (c HappyBallConfig) GroundY() float64 {
	return float64(c.Playfield.Height - c.Playfield.GroundHeight)
}

// StartY returns the ball's vertical start position.
func (c HappyBallConfig) StartY() float64 {
	return float64(c.Playfield.Height) / 2
}

// Validate checks that the configuration describes a playable game.
func (c HappyBallConfig) Validate() error {
	p, b, ph, o, cl := c.Playfield, c.Ball, c.Physics, c.Obstacles, c.Clouds

	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("config: playfield must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.GroundHeight < 0 || p.GroundHeight >= p.Height {
		return fmt.Errorf("config: ground_height %d must be in [0, %d)", p.GroundHeight, p.Height)
	}
	if b.Size <= 0 {
		return fmt.Errorf("config: ball size must be positive, got %d", b.Size)
	}
	if b.X < 0 || b.X+b.Size > p.Width {
		return fmt.Errorf("config: ball x %d does not fit in playfield width %d", b.X, p.Width)
	}
	if c.StartY()+float64(b.Size) > c.GroundY() {
		return fmt.Errorf("config: ball start position %.1f is below the ground", c.StartY())
	}
	if ph.Gravity <= 0 {
		return fmt.Errorf("config: gravity must be positive, got %v", ph.Gravity)
	}
	if ph.JumpImpulse >= 0 {
		return fmt.Errorf("config: jump_impulse must be negative (upward), got %v", ph.JumpImpulse)
	}
	if ph.ScrollSpeed <= 0 {
		return fmt.Errorf("config: scroll_speed must be positive, got %v", ph.ScrollSpeed)
	}
	if o.Width <= 0 {
		return fmt.Errorf("config: obstacle width must be positive, got %d", o.Width)
	}
	if o.GapHeight <= b.Size {
		return fmt.Errorf("config: gap_height %d must exceed ball size %d", o.GapHeight, b.Size)
	}
	if o.MinGapTop < 0 || o.MinGapTop > o.MaxGapTop {
		return fmt.Errorf("config: gap top range [%d, %d] is invalid", o.MinGapTop, o.MaxGapTop)
	}
	if float64(o.MaxGapTop+o.GapHeight) > c.GroundY() {
		return fmt.Errorf("config: lowest gap (%d+%d) reaches below the ground at %.0f",
			o.MaxGapTop, o.GapHeight, c.GroundY())
	}
	if o.MinSpacing < o.Width+b.Size {
		return fmt.Errorf("config: min_spacing %d must leave room for the ball between obstacles (>= %d)",
			o.MinSpacing, o.Width+b.Size)
	}
	if float64(o.MinSpacing) <= ph.ScrollSpeed {
		return fmt.Errorf("config: min_spacing %d must exceed scroll_speed %v", o.MinSpacing, ph.ScrollSpeed)
	}
	if o.MaxSpacing < o.MinSpacing {
		return fmt.Errorf("config: spacing range [%d, %d] is invalid", o.MinSpacing, o.MaxSpacing)
	}
	if o.Lookahead < 0 || o.InitialCount < 0 || o.StartOffset < 0 {
		return fmt.Errorf("config: lookahead, initial_count and start_offset must be non-negative")
	}
	if cl.Count < 0 {
		return fmt.Errorf("config: cloud count must be non-negative, got %d", cl.Count)
	}
	if cl.Count == 0 {
		return nil
	}
	if cl.Drift < 0 {
		return fmt.Errorf("config: cloud drift must be non-negative, got %v", cl.Drift)
	}
	if cl.MaxY < 0 || float64(cl.MaxY) >= c.GroundY() {
		return fmt.Errorf("config: cloud max_y %d must be in [0, %.0f)", cl.MaxY, c.GroundY())
	}
	if cl.MinWidth <= 0 || cl.MaxWidth < cl.MinWidth {
		return fmt.Errorf("config: cloud width range [%d, %d] is invalid", cl.MinWidth, cl.MaxWidth)
	}
	if cl.MinHeight <= 0 || cl.MaxHeight < cl.MinHeight {
		return fmt.Errorf("config: cloud height range [%d, %d] is invalid", cl.MinHeight, cl.MaxHeight)
	}
	if cl.RespawnSpread < 0 {
		return fmt.Errorf("config: cloud respawn_spread must be non-negative, got %d", cl.RespawnSpread)
	}
	return nil
}
