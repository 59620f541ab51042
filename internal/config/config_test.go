package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultHappyBallConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultHappyBallConfig() {
		t.Errorf("embedded YAML differs from DefaultHappyBallConfig:\n%+v\n%+v", cfg, DefaultHappyBallConfig())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *HappyBallConfig)
		wantErr string
	}{
		{"zero width", func(c *HappyBallConfig) { c.Playfield.Width = 0 }, "playfield"},
		{"ground too tall", func(c *HappyBallConfig) { c.Playfield.GroundHeight = 600 }, "ground_height"},
		{"ball outside", func(c *HappyBallConfig) { c.Ball.X = 390 }, "ball x"},
		{"no gravity", func(c *HappyBallConfig) { c.Physics.Gravity = 0 }, "gravity"},
		{"downward jump", func(c *HappyBallConfig) { c.Physics.JumpImpulse = 4 }, "jump_impulse"},
		{"stopped scroll", func(c *HappyBallConfig) { c.Physics.ScrollSpeed = 0 }, "scroll_speed"},
		{"gap smaller than ball", func(c *HappyBallConfig) { c.Obstacles.GapHeight = 20 }, "gap_height"},
		{"inverted gap range", func(c *HappyBallConfig) { c.Obstacles.MinGapTop = 310 }, "gap top range"},
		{"gap below ground", func(c *HappyBallConfig) { c.Obstacles.MaxGapTop = 400 }, "below the ground"},
		{"overlapping obstacles", func(c *HappyBallConfig) { c.Obstacles.MinSpacing = 80 }, "min_spacing"},
		{"inverted spacing", func(c *HappyBallConfig) { c.Obstacles.MaxSpacing = 100 }, "spacing range"},
		{"negative count", func(c *HappyBallConfig) { c.Obstacles.InitialCount = -1 }, "non-negative"},
		{"negative clouds", func(c *HappyBallConfig) { c.Clouds.Count = -1 }, "cloud count"},
		{"clouds below ground", func(c *HappyBallConfig) { c.Clouds.MaxY = 500 }, "max_y"},
		{"inverted cloud width", func(c *HappyBallConfig) { c.Clouds.MaxWidth = 10 }, "cloud width range"},
		{"flat clouds", func(c *HappyBallConfig) { c.Clouds.MinHeight = 0 }, "cloud height range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultHappyBallConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %q, expected it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateWithoutClouds(t *testing.T) {
	cfg := DefaultHappyBallConfig()
	cfg.Clouds = Clouds{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("a clear sky should be valid: %v", err)
	}
}

func TestParsePartialDocument(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  scroll_speed: 4.5\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.ScrollSpeed != 4.5 {
		t.Errorf("scroll_speed = %v, expected 4.5", cfg.Physics.ScrollSpeed)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("missing keys should keep defaults, gravity = %v", cfg.Physics.Gravity)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := "obstacles:\n  gap_height: 200\n  max_gap_top: 250\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadHappyBall(path)
	if err != nil {
		t.Fatalf("LoadHappyBall() failed: %v", err)
	}
	if cfg.Obstacles.GapHeight != 200 || cfg.Obstacles.MaxGapTop != 250 {
		t.Errorf("custom values not applied: %+v", cfg.Obstacles)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadHappyBall(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHappyBall(bad); err == nil {
		t.Error("malformed custom config should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  gravity: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHappyBall(invalid); err == nil {
		t.Error("invalid custom config should be an error")
	}
}

func TestGeometryHelpers(t *testing.T) {
	cfg := DefaultHappyBallConfig()
	if cfg.GroundY() != 500 {
		t.Errorf("GroundY() = %v, expected 500", cfg.GroundY())
	}
	if cfg.StartY() != 300 {
		t.Errorf("StartY() = %v, expected 300", cfg.StartY())
	}
}
