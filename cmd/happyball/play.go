package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/happyball/internal/core"
	"github.com/vovakirdan/happyball/internal/platform/tui"
	"github.com/vovakirdan/happyball/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Happy Ball",
	Long: `Start playing Happy Ball in this terminal.

Controls:
  Space/Up/W - Jump (also starts and restarts a round)
  P          - Pause
  R          - Restart (after game over)
  Esc/B      - Replay list (when paused or after game over)
  Q/Ctrl+C   - Quit

Every session is recorded as a replay (seed plus jump ticks) unless
--no-record is given. Logs go to ~/.happyball/happyball.log by default.

Examples:
  happyball play
  happyball play --seed 42
  happyball play --config ./my-happyball.yaml
  happyball play --no-record`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save a replay of this session")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logPath := flagLogFile
	if logPath == "" {
		logPath = defaultPlayLog
	}
	logger, closer, err := newLogger(logPath, "happyball")
	if err != nil {
		return err
	}
	defer closer.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Game: gameCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Logger: logger,
		Player: os.Getenv("USER"),
	}

	if !flagNoRecord {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			// Continue without replays - the game still works
			fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", openErr)
			logger.Warn("could not open replay database", "error", openErr)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	if err := tui.Run(opts, tui.ModeGame); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
