// happyball is a terminal Happy Ball game: keep the ball in the air and
// through the gaps of an endless stream of obstacles.
//
// Usage:
//
//	happyball play               - Play in this terminal
//	happyball serve              - Start SSH server for remote play
//	happyball replays            - Browse recorded replays
//	happyball replays verify ID  - Re-simulate a replay
//	happyball simulate           - Run a headless game
//
// Global flags:
//
//	--config <path>  - Game config YAML (default: search path, then embedded)
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.happyball/replays.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/happyball/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "happyball",
	Short: "Happy Ball - keep the ball flying in your terminal",
	Long: `Happy Ball is a one-button arcade game for the terminal.

A ball falls under gravity; every jump kicks it upward. Steer it through the
gaps between obstacles that scroll in from the right. Touching an obstacle,
the ground or the ceiling ends the round.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  replays   - Browse, verify and delete recorded replays
  simulate  - Run a headless game and print the final state

Examples:
  happyball play
  happyball play --seed 42 --config ./my-happyball.yaml
  happyball serve --ssh :2222
  happyball replays
  happyball simulate --ticks 6000 --jump-every 18`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.happyball/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of the default")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadGameConfig loads the world configuration honoring --config.
func loadGameConfig() (config.HappyBallConfig, error) {
	cfg, err := config.LoadHappyBall(flagConfig)
	if err != nil {
		return config.HappyBallConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
