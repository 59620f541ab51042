package happyball

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/happyball/internal/config"
)

func TestRecorderCapturesJumpTicks(t *testing.T) {
	r := NewRecorder(newTestGame(42))

	for tick := 0; tick < 30; tick++ {
		if tick == 3 || tick == 10 || tick == 11 {
			r.Jump()
			r.Jump() // coalesces
		}
		r.OnTick()
	}

	rec := r.Recording()
	if rec.Seed != 42 || rec.Ticks != 30 {
		t.Errorf("recording header = seed %d ticks %d, expected 42/30", rec.Seed, rec.Ticks)
	}
	if want := []uint64{3, 10, 11}; !reflect.DeepEqual(rec.Jumps, want) {
		t.Errorf("Jumps = %v, expected %v", rec.Jumps, want)
	}
}

func TestSimulateReproducesLiveRun(t *testing.T) {
	cfg := config.DefaultHappyBallConfig()
	r := NewRecorder(NewGame(cfg, 777))

	var live []Snapshot
	for tick := 0; tick < 900; tick++ {
		if tick%17 == 0 || (r.Phase() == PhaseGameOver && tick%5 == 0) {
			r.Jump()
		}
		live = append(live, r.OnTick())
	}

	rec := r.Recording()

	i := 0
	Play(cfg, rec, func(s Snapshot) {
		if !reflect.DeepEqual(s, live[i]) {
			t.Fatalf("tick %d diverged:\n%+v\n%+v", i, s, live[i])
		}
		i++
	})
	if i != len(live) {
		t.Errorf("Play visited %d ticks, expected %d", i, len(live))
	}

	if final := Simulate(cfg, rec); !reflect.DeepEqual(final, live[len(live)-1]) {
		t.Error("Simulate should return the last live snapshot")
	}
}

func TestSimulateEmptyRecording(t *testing.T) {
	s := Simulate(config.DefaultHappyBallConfig(), Recording{Seed: 1})
	if s.Phase != PhaseIdle || s.Tick != 0 {
		t.Errorf("empty recording should yield the idle snapshot, got %v at tick %d", s.Phase, s.Tick)
	}
}

func TestPlayIgnoresUnorderedJumps(t *testing.T) {
	rec := Recording{Seed: 1, Ticks: 10, Jumps: []uint64{5, 2, 5, 7}}

	var jumped []uint64
	Play(config.DefaultHappyBallConfig(), rec, func(s Snapshot) {
		if s.Jumped {
			jumped = append(jumped, s.Tick-1)
		}
	})
	if want := []uint64{5, 7}; !reflect.DeepEqual(jumped, want) {
		t.Errorf("jumped on %v, expected %v", jumped, want)
	}
}

func TestPlayerStepsAndStops(t *testing.T) {
	rec := Recording{Seed: 3, Ticks: 4, Jumps: []uint64{1}}
	p := NewPlayer(config.DefaultHappyBallConfig(), rec)

	if s := p.Snapshot(); s.Phase != PhaseIdle {
		t.Fatalf("fresh player should be idle, got %v", s.Phase)
	}

	for i := 0; i < 4; i++ {
		s, ok := p.Next()
		if !ok {
			t.Fatalf("Next() stopped early at tick %d", i)
		}
		if s.Jumped != (i == 1) {
			t.Errorf("tick %d: Jumped = %v", i, s.Jumped)
		}
	}

	if !p.Done() {
		t.Error("player should be done after the last recorded tick")
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() should return false once the recording is exhausted")
	}
	if done, total := p.Progress(); done != 4 || total != 4 {
		t.Errorf("Progress() = %d/%d, expected 4/4", done, total)
	}
	if s := p.Snapshot(); s.Phase != PhasePlaying || s.Tick != 4 {
		t.Errorf("final snapshot = %v at tick %d", s.Phase, s.Tick)
	}
}

// openSkyConfig has gaps spanning the whole sky, so only the ground or the
// ceiling can end a round.
func openSkyConfig() config.HappyBallConfig {
	cfg := config.DefaultHappyBallConfig()
	cfg.Obstacles.MinGapTop = 0
	cfg.Obstacles.MaxGapTop = 0
	cfg.Obstacles.GapHeight = 500
	return cfg
}

func TestSummarizeKeepsBestRound(t *testing.T) {
	cfg := openSkyConfig()
	r := NewRecorder(NewGame(cfg, 5))

	// A jump every 31 ticks holds the ball level while obstacles pass.
	for tick := 0; tick < 400; tick++ {
		if tick%31 == 0 {
			r.Jump()
		}
		r.OnTick()
	}
	for i := 0; i < 200 && r.Phase() != PhaseGameOver; i++ {
		r.OnTick()
	}
	if r.Phase() != PhaseGameOver {
		t.Fatal("without jumps the ball should reach the ground")
	}
	best := r.Score()
	if best == 0 {
		t.Fatal("the first round should have scored")
	}

	r.Jump()
	r.OnTick()
	r.OnTick()

	sum := Summarize(cfg, r.Recording())
	if sum.Final.Score != 0 || sum.Final.Phase != PhasePlaying {
		t.Errorf("final snapshot = score %d phase %v, expected a fresh round", sum.Final.Score, sum.Final.Phase)
	}
	if sum.Best != best {
		t.Errorf("Best = %d, expected the first round's %d", sum.Best, best)
	}
	if sum.Rounds != 2 {
		t.Errorf("Rounds = %d, expected 2", sum.Rounds)
	}
}

func TestSummarizeEmptyRecording(t *testing.T) {
	sum := Summarize(config.DefaultHappyBallConfig(), Recording{Seed: 3, Ticks: 4})
	if sum.Rounds != 0 || sum.Best != 0 || sum.Final.Phase != PhaseIdle {
		t.Errorf("a recording without jumps never starts a round, got %+v", sum)
	}
}
