package config

import (
	_ "embed"
)

//go:embed defaults/happyball.yaml
var defaultHappyBallYAML []byte

// DefaultHappyBallConfig returns the built-in configuration.
// It mirrors defaults/happyball.yaml and is the fallback when the embedded
// document cannot be parsed.
func DefaultHappyBallConfig() HappyBallConfig {
	return HappyBallConfig{
		Playfield: Playfield{
			Width:        400,
			Height:       600,
			GroundHeight: 100,
		},
		Ball: Ball{
			X:    100,
			Size: 22,
		},
		Physics: Physics{
			Gravity:     0.5,
			JumpImpulse: -8,
			ScrollSpeed: 3,
		},
		Obstacles: Obstacles{
			Width:        70,
			GapHeight:    160,
			MinGapTop:    100,
			MaxGapTop:    299,
			Lookahead:    160,
			MinSpacing:   160,
			MaxSpacing:   199,
			InitialCount: 4,
			StartOffset:  100,
		},
		Clouds: Clouds{
			Count:         5,
			Drift:         1,
			MaxY:          199,
			MinWidth:      60,
			MaxWidth:      99,
			MinHeight:     30,
			MaxHeight:     44,
			RespawnSpread: 99,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultHappyBallYAML
}
