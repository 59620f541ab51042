package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the screen a session is showing.
type Mode int

const (
	ModeGame Mode = iota
	ModeBrowser
	ModePlayback
)

// SessionModel manages the session flow: game -> replays -> playback.
// This is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts     Options
	mode     Mode
	game     GameModel
	browser  BrowserModel
	playback PlaybackModel
	quitting bool
}

// NewSessionModel creates a session starting at the given screen.
// ModePlayback is not a valid start and falls back to the browser.
func NewSessionModel(opts Options, start Mode) SessionModel {
	m := SessionModel{opts: opts.withDefaults()}
	switch start {
	case ModeGame:
		m.mode = ModeGame
		m.game = NewGameModel(m.opts)
	default:
		m.mode = ModeBrowser
		m.browser = NewBrowserModel(m.opts)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	switch m.mode {
	case ModeGame:
		return m.game.Init()
	default:
		return m.browser.Init()
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.mode {
	case ModeGame:
		return m.updateGame(msg)
	case ModePlayback:
		return m.updatePlayback(msg)
	default:
		return m.updateBrowser(msg)
	}
}

// updateGame handles updates while a game is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(GameModel); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		if m.opts.Store == nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m.toBrowser()
	}

	return m, cmd
}

// updateBrowser handles updates while the replay list is shown.
func (m SessionModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.browser.Update(msg)
	if bm, ok := newModel.(BrowserModel); ok {
		m.browser = bm
	}

	switch {
	case m.browser.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.browser.NewGame():
		opts := m.opts
		opts.Runtime.Seed = 0 // Each new game gets a fresh layout
		m.game = NewGameModel(opts)
		m.mode = ModeGame
		return m, m.game.Init()

	case m.browser.Watch() != nil:
		m.playback = NewPlaybackModel(m.opts, *m.browser.Watch())
		m.mode = ModePlayback
		return m, m.playback.Init()
	}

	return m, cmd
}

// updatePlayback handles updates while a replay is playing.
func (m SessionModel) updatePlayback(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.playback.Update(msg)
	if pm, ok := newModel.(PlaybackModel); ok {
		m.playback = pm
	}

	if m.playback.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.playback.BackToMenu() {
		return m.toBrowser()
	}

	return m, cmd
}

func (m SessionModel) toBrowser() (tea.Model, tea.Cmd) {
	m.browser = NewBrowserModel(m.opts)
	m.mode = ModeBrowser
	return m, m.browser.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ModeGame:
		return m.game.View()
	case ModePlayback:
		return m.playback.View()
	default:
		return m.browser.View()
	}
}

// Mode returns the screen currently shown.
func (m SessionModel) Mode() Mode {
	return m.mode
}

// Run starts a local Bubble Tea program on the given screen.
func Run(opts Options, start Mode) error {
	p := tea.NewProgram(
		NewSessionModel(opts, start),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
