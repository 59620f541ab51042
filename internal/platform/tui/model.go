package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/core"
	"github.com/vovakirdan/happyball/internal/games/happyball"
	"github.com/vovakirdan/happyball/internal/storage"
)

// Options configure a session. Store and Logger may be nil.
type Options struct {
	Game    config.HappyBallConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store
	Logger  *log.Logger
	Player  string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Runtime.TickRate <= 0 {
		o.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	return o
}

// GameModel runs one recorded game and saves its replay when the player
// leaves.
type GameModel struct {
	game      *happyball.Recorder
	screen    *core.Screen
	opts      Options
	gen       uint64
	keyMapper *KeyMapper

	inputFrame core.InputFrame
	gameState  core.GameState
	paused     bool
	quitting   bool
	backToMenu bool
	replayID   string
}

// NewGameModel creates a game model. A zero seed is replaced by the clock.
func NewGameModel(opts Options) GameModel {
	opts = opts.withDefaults()
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	g := happyball.NewRecorder(happyball.NewGame(opts.Game, opts.Runtime.Seed))

	return GameModel{
		game:       g,
		screen:     core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:       opts,
		gen:        nextTickGen(),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  g.State(),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Jumps go straight to the game's latch;
// everything else is applied on the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveReplay()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		if !m.paused {
			m.game.Jump()
		}
	case core.ActionPause:
		if m.gameState.Started && !m.gameState.GameOver {
			m.paused = !m.paused
		}
	case core.ActionBack:
		if m.paused || !m.gameState.Started || m.gameState.GameOver {
			m.saveReplay()
			m.backToMenu = true
		}
	case core.ActionRestart:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick advances the game unless paused.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		result := m.game.Step(m.inputFrame)
		m.gameState = result.State
		m.inputFrame.Clear()
	}
	return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// saveReplay stores the recording once. Failures are logged and otherwise
// ignored; losing a replay never interrupts play.
func (m *GameModel) saveReplay() {
	if m.opts.Store == nil || m.replayID != "" {
		return
	}

	rec := m.game.Recording()
	if len(rec.Jumps) == 0 {
		return
	}

	id, err := m.opts.Store.SaveReplay(m.game.ID(), m.opts.Player, m.game.Config(), rec)
	if err != nil {
		m.opts.Logger.Warn("could not save replay", "player", m.opts.Player, "error", err)
		return
	}
	m.replayID = id
	m.opts.Logger.Info("replay saved",
		"id", id,
		"player", m.opts.Player,
		"seed", rec.Seed,
		"ticks", rec.Ticks,
		"jumps", len(rec.Jumps),
		"score", m.game.Score(),
	)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		drawBanner(m.screen, m.screen.Height()/2, " PAUSED - p to resume, esc for replays ")
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the replay list.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// ReplayID returns the id of the saved replay, if any.
func (m GameModel) ReplayID() string {
	return m.replayID
}

// State returns the last platform state reported by the game.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Paused reports whether the simulation clock is held.
func (m GameModel) Paused() bool {
	return m.paused
}
