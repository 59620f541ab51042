package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/happyball/internal/core"
	"github.com/vovakirdan/happyball/internal/games/happyball"
	"github.com/vovakirdan/happyball/internal/storage"
)

// PlaybackModel replays a stored recording at the tick rate it was played at.
type PlaybackModel struct {
	replay    storage.Replay
	player    *happyball.Player
	snap      happyball.Snapshot
	screen    *core.Screen
	opts      Options
	gen       uint64
	keyMapper *KeyMapper

	paused     bool
	quitting   bool
	backToMenu bool
}

// NewPlaybackModel creates a playback of r under the config it was recorded with.
func NewPlaybackModel(opts Options, r storage.Replay) PlaybackModel {
	opts = opts.withDefaults()
	p := happyball.NewPlayer(r.Config, r.Recording)

	return PlaybackModel{
		replay:    r,
		player:    p,
		snap:      p.Snapshot(),
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		opts:      opts,
		gen:       nextTickGen(),
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the playback clock.
func (m PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate, m.gen)
}

// Update handles messages.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action, isQuit := m.keyMapper.MapKey(msg)
		if isQuit {
			m.quitting = true
			return m, tea.Quit
		}
		switch action {
		case core.ActionBack:
			m.backToMenu = true
		case core.ActionPause, core.ActionJump:
			m.paused = !m.paused
		case core.ActionRestart:
			m.player = happyball.NewPlayer(m.replay.Config, m.replay.Recording)
			m.snap = m.player.Snapshot()
			m.paused = false
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if !m.paused {
			if s, ok := m.player.Next(); ok {
				m.snap = s
			}
		}
		return m, tickCmd(m.opts.Runtime.TickRate, m.gen)
	}

	return m, nil
}

// View renders the replayed snapshot with a status line.
func (m PlaybackModel) View() string {
	if m.quitting {
		return ""
	}

	happyball.RenderSnapshot(m.snap, m.screen)

	done, total := m.player.Progress()
	status := fmt.Sprintf(" REPLAY %s  %d/%d ", shortID(m.replay.ID), done, total)
	if m.replay.Player != "" {
		status += "by " + m.replay.Player + " "
	}
	m.screen.DrawTextColored(0, 0, status, core.ColorCyan)

	switch {
	case m.player.Done():
		drawBanner(m.screen, m.screen.Height()-1, " End of replay - r: again, esc: back ")
	case m.paused:
		drawBanner(m.screen, m.screen.Height()-1, " PAUSED ")
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlaybackModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the replay list.
func (m PlaybackModel) BackToMenu() bool {
	return m.backToMenu
}

// Done reports whether every recorded tick has been shown.
func (m PlaybackModel) Done() bool {
	return m.player.Done()
}

// shortID trims a UUID to its first group for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
