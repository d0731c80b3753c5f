package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
)

var _ sim.BestStore = (*Slot)(nil)

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

	v, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if v != 2 {
		t.Errorf("Expected schema version 2, got %d", v)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SetBestTime(BestTimeSlot, 4200*time.Millisecond); err != nil {
		t.Fatalf("SetBestTime() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	d, ok, err := store.BestTime(BestTimeSlot)
	if err != nil || !ok || d != 4200*time.Millisecond {
		t.Errorf("BestTime() = %v, %v, %v; want 4.2s", d, ok, err)
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []struct {
		difficulty string
		ms         int64
	}{
		{"medium", 1000},
		{"medium", 500},
		{"medium", 2000},
		{"hard", 5000},
	} {
		if _, err := store.SaveRun(r.difficulty, time.Duration(r.ms)*time.Millisecond, false); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("medium", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 medium runs, got %d", len(runs))
	}
	want := []time.Duration{2 * time.Second, time.Second, 500 * time.Millisecond}
	for i, r := range runs {
		if r.Elapsed != want[i] {
			t.Errorf("run %d elapsed = %v, want %v", i, r.Elapsed, want[i])
		}
		if r.Difficulty != "medium" {
			t.Errorf("run %d difficulty = %q", i, r.Difficulty)
		}
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Difficulty != "hard" {
		t.Errorf("TopRuns(all) = %+v, want 4 runs led by hard", all)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun("easy", time.Duration(i)*time.Second, false)
	}

	runs, err := store.TopRuns("easy", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs with limit, got %d", len(runs))
	}
	if runs[0].Elapsed != 19*time.Second {
		t.Errorf("Expected longest run first, got %v", runs[0].Elapsed)
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openTestStore(t)

	a, err := store.SaveRun("hard", time.Second, true)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	b, _ := store.SaveRun("hard", time.Second, false)

	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", a.RunID, err)
	}
	if a.RunID == b.RunID {
		t.Error("RunIDs should be unique")
	}

	got, err := store.RunByID(a.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil || !got.NewRecord || got.Difficulty != "hard" {
		t.Errorf("RunByID() = %+v", got)
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("easy", time.Second, false)
	store.SaveRun("hard", 2*time.Second, false)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Difficulty != "hard" {
		t.Errorf("RecentRuns() = %+v, want newest first", runs)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("easy", time.Second, false)
	store.SetBestTime(BestTimeSlot, time.Second)

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if _, ok, _ := store.BestTime(BestTimeSlot); !ok {
		t.Error("ClearRuns should not touch the best time")
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	d, ok, err := store.BestTime(BestTimeSlot)
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if ok || d != 0 {
		t.Errorf("Expected no best time on empty database, got %v (%v)", d, ok)
	}

	store.SetBestTime(BestTimeSlot, 3*time.Second)
	store.SetBestTime(BestTimeSlot, 5*time.Second)
	stored, err := store.SetBestTime(BestTimeSlot, 4*time.Second)
	if err != nil || stored != 5*time.Second {
		t.Errorf("SetBestTime(4s) = %v, %v; want the stored 5s", stored, err)
	}

	d, ok, _ = store.BestTime(BestTimeSlot)
	if !ok || d != 5*time.Second {
		t.Errorf("Expected best 5s, got %v (%v)", d, ok)
	}

	// Records are independent by name.
	if _, ok, _ := store.BestTime("other"); ok {
		t.Error("unwritten record should report ok=false")
	}
}

func TestSlotWithClock(t *testing.T) {
	store := openTestStore(t)
	slot := store.Slot(BestTimeSlot)

	now := time.Unix(0, 0)
	clock := sim.NewClock(slot, func() time.Time { return now })
	if err := clock.LoadBest(); err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}

	clock.Start()
	now = now.Add(7 * time.Second)
	rec := clock.Finalize()
	if rec.SaveErr != nil {
		t.Fatalf("Finalize() save failed: %v", rec.SaveErr)
	}

	d, ok, _ := slot.Load()
	if !ok || d != 7*time.Second {
		t.Errorf("slot = %v (%v), want 7s", d, ok)
	}
}

func TestSlotSharedByClocks(t *testing.T) {
	store := openTestStore(t)
	slot := store.Slot(BestTimeSlot)

	now := time.Unix(0, 0)
	clockNow := func() time.Time { return now }
	a := sim.NewClock(slot, clockNow)
	b := sim.NewClock(slot, clockNow)
	for _, c := range []*sim.Clock{a, b} {
		if err := c.LoadBest(); err != nil {
			t.Fatalf("LoadBest() failed: %v", err)
		}
	}

	a.Start()
	now = now.Add(5 * time.Second)
	a.Finalize()

	b.Start()
	now = now.Add(10 * time.Second)
	if rec := b.Finalize(); !rec.NewRecord {
		t.Fatalf("b should set a record: %+v", rec)
	}

	a.Reset()
	a.Start()
	now = now.Add(7 * time.Second)
	rec := a.Finalize()
	if rec.NewRecord || rec.Best != 10*time.Second {
		t.Errorf("a second run = %+v, want no record and best 10s", rec)
	}

	d, _, _ := slot.Load()
	if d != 10*time.Second {
		t.Errorf("stored = %v, want 10s", d)
	}
}

func TestSlotMillisecondTieAfterReload(t *testing.T) {
	store := openTestStore(t)
	slot := store.Slot(BestTimeSlot)
	if _, err := slot.Save(5 * time.Second); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	now := time.Unix(0, 0)
	c := sim.NewClock(slot, func() time.Time { return now })
	if err := c.LoadBest(); err != nil {
		t.Fatalf("LoadBest() failed: %v", err)
	}
	c.Start()
	now = now.Add(5*time.Second + 700*time.Microsecond)
	if rec := c.Finalize(); rec.NewRecord {
		t.Errorf("same-millisecond run counted as a record: %+v", rec)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("medium", 1*time.Second, false)
	store.SaveRun("medium", 3*time.Second, true)
	store.SaveRun("easy", 10*time.Second, true)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}

	medium := stats["medium"]
	if medium == nil {
		t.Fatal("missing medium stats")
	}
	if medium.Runs != 2 || medium.Longest != 3*time.Second || medium.Average != 2*time.Second || medium.Total != 4*time.Second {
		t.Errorf("medium stats = %+v", medium)
	}
	if stats["easy"] == nil || stats["easy"].Runs != 1 {
		t.Errorf("easy stats = %+v", stats["easy"])
	}
	if _, ok := stats["hard"]; ok {
		t.Error("unplayed difficulty should have no stats")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Nested directories are created on demand
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
