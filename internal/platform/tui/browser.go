package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/happyball/internal/core"
	"github.com/vovakirdan/happyball/internal/games/happyball"
	"github.com/vovakirdan/happyball/internal/storage"
)

// maxReplays caps how many replays the browser loads.
const maxReplays = 50

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Watch   key.Binding
	Delete  key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Watch, k.NewGame, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.NewGame, k.Delete},
		{k.Help, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n/space", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// BrowserModel lists stored replays and lets the user pick one to watch.
type BrowserModel struct {
	opts    Options
	replays []storage.Replay
	best    []int
	table   table.Model
	help    help.Model
	keys    BrowserKeyMap
	width   int
	height  int
	status  string

	watch    *storage.Replay
	newGame  bool
	quitting bool
}

// NewBrowserModel creates a browser and loads the most recent replays.
func NewBrowserModel(opts Options) BrowserModel {
	opts = opts.withDefaults()

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Runtime.ScreenW

	m := BrowserModel{
		opts:   opts,
		keys:   DefaultBrowserKeyMap(),
		help:   h,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized for the current window.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "Best", Width: 6},
		{Title: "Ticks", Width: 8},
		{Title: "Jumps", Width: 6},
		{Title: "Date", Width: 12},
	}

	// Give spare width to the player column.
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[1].Width += core.Min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reads replays from the store and replays each one to find its
// best round.
func (m *BrowserModel) loadReplays() {
	m.replays, m.best = nil, nil
	if m.opts.Store == nil {
		m.status = "Replay storage is unavailable."
		m.updateTableRows()
		return
	}

	replays, err := m.opts.Store.RecentReplays(maxReplays)
	if err != nil {
		m.opts.Logger.Warn("could not load replays", "error", err)
		m.status = "Could not load replays."
		m.updateTableRows()
		return
	}

	m.replays = replays
	m.best = make([]int, len(replays))
	for i, r := range replays {
		m.best[i] = happyball.Summarize(r.Config, r.Recording).Best
	}
	m.status = ""
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded replays.
func (m *BrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			shortID(r.ID),
			player,
			fmt.Sprintf("%d", m.best[i]),
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", len(r.Jumps)),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selected returns the replay under the cursor.
func (m BrowserModel) selected() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// Init initializes the browser.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NewGame):
			m.newGame = true
			return m, nil

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.selected(); ok {
				m.watch = &r
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// deleteSelected removes the replay under the cursor. Players may only delete
// their own replays when the session has a player name.
func (m *BrowserModel) deleteSelected() {
	r, ok := m.selected()
	if !ok || m.opts.Store == nil {
		return
	}
	if m.opts.Player != "" && r.Player != m.opts.Player {
		m.status = "You can only delete your own replays."
		return
	}
	if err := m.opts.Store.DeleteReplay(r.ID); err != nil {
		m.opts.Logger.Warn("could not delete replay", "id", r.ID, "error", err)
		m.status = "Could not delete replay."
		return
	}
	m.opts.Logger.Info("replay deleted", "id", r.ID, "player", m.opts.Player)
	m.loadReplays()
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("HAPPY BALL - REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" && len(m.replays) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m BrowserModel) renderTableContent() string {
	if len(m.replays) == 0 {
		msg := m.status
		if msg == "" {
			msg = "No replays recorded yet.\nPlay a game to record one!"
		}
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render(msg)
	}

	return m.table.View()
}

// Watch returns the replay the user picked, if any.
func (m BrowserModel) Watch() *storage.Replay {
	return m.watch
}

// NewGame returns true if the user asked for a new game.
func (m BrowserModel) NewGame() bool {
	return m.newGame
}

// IsQuitting returns true if user wants to quit entirely.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// Replays returns the loaded replays, newest first.
func (m BrowserModel) Replays() []storage.Replay {
	return m.replays
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
