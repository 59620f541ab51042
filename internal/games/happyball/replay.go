package happyball

import (
	"slices"

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/core"
)

// Recording is everything needed to reproduce a session: the seed and the
// zero-based indices of the ticks that consumed a jump.
type Recording struct {
	Seed  int64
	Ticks uint64
	Jumps []uint64 // Ascending tick indices
}

// Recorder wraps a Game and logs which ticks consumed a jump.
type Recorder struct {
	*Game
	jumps []uint64
}

// NewRecorder wraps a game that has not ticked yet, so that the recording
// can be replayed from a fresh game with the same seed.
func NewRecorder(g *Game) *Recorder {
	return &Recorder{Game: g}
}

// OnTick advances the wrapped game and records the tick if it jumped.
func (r *Recorder) OnTick() Snapshot {
	s := r.Game.OnTick()
	if s.Jumped {
		r.jumps = append(r.jumps, s.Tick-1)
	}
	return s
}

// Step applies the frame's input and advances one recorded tick.
func (r *Recorder) Step(in core.InputFrame) core.StepResult {
	r.applyInput(in)
	r.OnTick()
	return core.StepResult{State: r.State()}
}

// Recording returns a copy of what has been recorded so far.
func (r *Recorder) Recording() Recording {
	return Recording{
		Seed:  r.Seed(),
		Ticks: r.tick,
		Jumps: slices.Clone(r.jumps),
	}
}

// Simulate replays a recording on a fresh game and returns the final snapshot.
// For ticks == 0 it returns the initial idle snapshot.
func Simulate(cfg config.HappyBallConfig, rec Recording) Snapshot {
	return Summarize(cfg, rec).Final
}

// Summary condenses a replayed session, which may span several rounds.
type Summary struct {
	Final  Snapshot
	Best   int // Highest score of any round
	Rounds int // Rounds started
}

// Summarize replays a recording and reports its final state, its best round
// score and how many rounds were played.
func Summarize(cfg config.HappyBallConfig, rec Recording) Summary {
	sum := Summary{Final: NewGame(cfg, rec.Seed).Snapshot()}
	prev := sum.Final.Phase
	Play(cfg, rec, func(s Snapshot) {
		if s.Phase == PhasePlaying && prev != PhasePlaying {
			sum.Rounds++
		}
		sum.Best = core.Max(sum.Best, s.Score)
		sum.Final = s
		prev = s.Phase
	})
	return sum
}

// Play replays a recording and calls visit with the snapshot of every tick.
func Play(cfg config.HappyBallConfig, rec Recording, visit func(Snapshot)) {
	p := NewPlayer(cfg, rec)
	for {
		s, ok := p.Next()
		if !ok {
			return
		}
		visit(s)
	}
}

// Player steps through a recording one tick at a time, for playback driven
// by an external clock.
type Player struct {
	game *Game
	rec  Recording
	next int
	tick uint64
}

// NewPlayer prepares a fresh game for replaying rec.
func NewPlayer(cfg config.HappyBallConfig, rec Recording) *Player {
	return &Player{game: NewGame(cfg, rec.Seed), rec: rec}
}

// Next advances one recorded tick. It returns false once every tick of the
// recording has been replayed.
func (p *Player) Next() (Snapshot, bool) {
	if p.Done() {
		return Snapshot{}, false
	}

	jumps := p.rec.Jumps
	for p.next < len(jumps) && jumps[p.next] < p.tick {
		p.next++ // Out-of-order or duplicate entries are ignored.
	}
	if p.next < len(jumps) && jumps[p.next] == p.tick {
		p.game.Jump()
		p.next++
	}
	p.tick++

	return p.game.OnTick(), true
}

// Done reports whether the recording is exhausted.
func (p *Player) Done() bool {
	return p.tick >= p.rec.Ticks
}

// Progress returns the number of replayed ticks and the recording length.
func (p *Player) Progress() (done, total uint64) {
	return p.tick, p.rec.Ticks
}

// Snapshot returns the current replayed state without advancing.
func (p *Player) Snapshot() Snapshot {
	return p.game.Snapshot()
}
