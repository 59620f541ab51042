package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/happyball/internal/config"
	"github.com/vovakirdan/happyball/internal/games/happyball"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	rec := happyball.Recording{Seed: 42, Ticks: 900, Jumps: []uint64{0, 25, 51, 300}}
	id, err := store.SaveReplay("happyball", "alice", config.DefaultHappyBallConfig(), rec)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a UUID: %v", id, err)
	}

	got, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.ID != id || got.GameID != "happyball" || got.Player != "alice" {
		t.Errorf("metadata = %+v", got)
	}
	if got.Seed != 42 || got.Ticks != 900 {
		t.Errorf("seed/ticks = %d/%d, want 42/900", got.Seed, got.Ticks)
	}
	if !slices.Equal(got.Jumps, rec.Jumps) {
		t.Errorf("jumps = %v, want %v", got.Jumps, rec.Jumps)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreNegativeSeed(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay("happyball", "", config.DefaultHappyBallConfig(), happyball.Recording{Seed: -7, Ticks: 1})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	got, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.Seed != -7 {
		t.Errorf("seed = %d, want -7", got.Seed)
	}
	if len(got.Jumps) != 0 {
		t.Errorf("jumps = %v, want none", got.Jumps)
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Replay("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay() error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteReplay("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteReplay() error = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsUnsortedJumps(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveReplay("happyball", "bob", config.DefaultHappyBallConfig(), happyball.Recording{Ticks: 10, Jumps: []uint64{5, 1}})
	if !errors.Is(err, ErrUnsortedJumps) {
		t.Errorf("SaveReplay() error = %v, want ErrUnsortedJumps", err)
	}

	n, err := store.CountReplays()
	if err != nil {
		t.Fatalf("CountReplays() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("CountReplays() = %d, want 0", n)
	}
}

func TestStoreRecentReplaysLimit(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := store.SaveReplay("happyball", "p", config.DefaultHappyBallConfig(), happyball.Recording{Seed: int64(i), Ticks: uint64(i)})
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}

	replays, err := store.RecentReplays(3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(replays))
	}

	// Same-second inserts fall back to insertion order, newest first.
	for i, r := range replays {
		if want := ids[4-i]; r.ID != want {
			t.Errorf("replays[%d] = %s, want %s", i, r.ID, want)
		}
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay("happyball", "carol", config.DefaultHappyBallConfig(), happyball.Recording{Seed: 1, Ticks: 2})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay() after delete error = %v, want ErrNotFound", err)
	}
}

func TestStoreReplayReproducesGame(t *testing.T) {
	store := openTestStore(t)
	cfg := config.DefaultHappyBallConfig()
	cfg.Physics.ScrollSpeed = 4
	cfg.Obstacles.GapHeight = 180

	r := happyball.NewRecorder(happyball.NewGame(cfg, 99))
	for i := 0; i < 400; i++ {
		if i%20 == 0 {
			r.Jump()
		}
		r.OnTick()
	}
	want := r.Snapshot()

	id, err := store.SaveReplay(r.ID(), "dave", r.Config(), r.Recording())
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	loaded, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	if loaded.Config != cfg {
		t.Fatalf("stored config = %+v, want %+v", loaded.Config, cfg)
	}
	got := happyball.Simulate(loaded.Config, loaded.Recording)
	if got.Score != want.Score || got.Phase != want.Phase || got.Ball != want.Ball || got.Tick != want.Tick {
		t.Errorf("re-simulated snapshot differs: got %+v, want %+v", got, want)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReadsReplaysWithoutConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	// A database created before configs were stored with each replay.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	blob, err := EncodeJumps([]uint64{0, 9})
	if err != nil {
		t.Fatalf("EncodeJumps() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			jumps BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		t.Fatalf("create old schema: %v", err)
	}
	_, err = db.Exec("INSERT INTO replays (id, game_id, player, seed, ticks, jumps) VALUES ('old', 'happyball', 'erin', 3, 20, ?)", blob)
	if err != nil {
		t.Fatalf("insert old row: %v", err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() should migrate the old schema: %v", err)
	}
	defer store.Close()

	got, err := store.Replay("old")
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.Config != config.DefaultHappyBallConfig() {
		t.Errorf("old rows should load the built-in config, got %+v", got.Config)
	}
	if !slices.Equal(got.Jumps, []uint64{0, 9}) {
		t.Errorf("jumps = %v, want [0 9]", got.Jumps)
	}

	// New replays keep working after the migration.
	if _, err := store.SaveReplay("happyball", "erin", config.DefaultHappyBallConfig(), happyball.Recording{Seed: 1, Ticks: 2}); err != nil {
		t.Errorf("SaveReplay() after migration failed: %v", err)
	}
}

func TestStoreReopenKeepsSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() #%d failed: %v", i+1, err)
		}
		store.Close()
	}
}
