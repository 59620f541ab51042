package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/core"
	"github.com/vovakirdan/happyball/internal/games/happyball"
	"github.com/vovakirdan/happyball/internal/platform/tui"
	"github.com/vovakirdan/happyball/internal/storage"
)

var flagListLimit int

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded replays",
	Long: `Open an interactive list of recorded replays.

Controls:
  Up/Down    - Select a replay
  Enter      - Watch it
  N/Space    - Start a new game
  D          - Delete (your own replays only)
  Q/Esc      - Quit

Subcommands print to stdout instead:
  happyball replays list
  happyball replays verify <id>
  happyball replays delete <id>`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent replays",
	Args:  cobra.NoArgs,
	RunE:  runReplaysList,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a replay and print its final state",
	Long: `Re-simulate a stored replay twice from its seed and jump ticks,
check that both runs agree, and print the final snapshot.

The replay is simulated with the config it was recorded under, whatever
--config currently says.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a replay",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplaysDelete,
}

func init() {
	replaysListCmd.Flags().IntVar(&flagListLimit, "limit", 20, "Number of replays to list")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

func runReplays(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

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
		Store:  store,
		Logger: logger,
		Player: os.Getenv("USER"),
	}
	return tui.Run(opts, tui.ModeBrowser)
}

func runReplaysList(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	replays, err := store.RecentReplays(flagListLimit)
	if err != nil {
		return err
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'happyball play' to record one!")
		return nil
	}

	fmt.Printf("  %-36s  %-12s  %-6s  %-6s  %-8s  %s\n", "ID", "Player", "Best", "Rounds", "Ticks", "Date")
	fmt.Printf("  %-36s  %-12s  %-6s  %-6s  %-8s  %s\n", "--", "------", "----", "------", "-----", "----")
	for _, r := range replays {
		sum := happyball.Summarize(r.Config, r.Recording)
		fmt.Printf("  %-36s  %-12s  %-6d  %-6d  %-8d  %s\n",
			r.ID, r.Player, sum.Best, sum.Rounds, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplaysVerify(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Replay(args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no replay with id %q; run 'happyball replays list'", args[0])
	}
	if err != nil {
		return err
	}

	final, ok := verify(r.Config, r.Recording)

	fmt.Printf("Replay %s by %s (seed %d, %d ticks, %d jumps)\n",
		r.ID, r.Player, r.Seed, r.Ticks, len(r.Jumps))
	printSnapshot(os.Stdout, final)
	fmt.Printf("  %-10s %d\n", "Best", happyball.Summarize(r.Config, r.Recording).Best)
	fmt.Println()
	if !ok {
		return errors.New("replay is not deterministic: two simulations disagree")
	}
	fmt.Println("Deterministic: both simulations agree.")
	return nil
}

// verify simulates rec twice in lockstep and reports whether every snapshot
// matched. It returns the final snapshot of the first run.
func verify(cfg config.HappyBallConfig, rec happyball.Recording) (happyball.Snapshot, bool) {
	a := happyball.NewPlayer(cfg, rec)
	b := happyball.NewPlayer(cfg, rec)

	final := a.Snapshot()
	for {
		sa, okA := a.Next()
		sb, okB := b.Next()
		if okA != okB || !reflect.DeepEqual(sa, sb) {
			return final, false
		}
		if !okA {
			return final, true
		}
		final = sa
	}
}

func runReplaysDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteReplay(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted replay %s\n", args[0])
	return nil
}
