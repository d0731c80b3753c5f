package sim

import (
	"sync"
	"time"
)

// BestStore persists the best survival time. Several clocks may share one
// store. Load reports ok=false when no record has been saved yet. Save never
// lowers the stored value and returns the value held after the write.
type BestStore interface {
	Load() (best time.Duration, ok bool, err error)
	Save(best time.Duration) (stored time.Duration, err error)
}

// Record is the outcome of a finished session.
type Record struct {
	Elapsed   time.Duration
	Best      time.Duration
	NewRecord bool
	SaveErr   error // Persisting a new best failed; the in-memory best is still updated
}

// Clock tracks the running session's start time and the best time across
// sessions. The best only ever grows, and only on a strictly longer run.
type Clock struct {
	now     func() time.Time
	store   BestStore
	start   time.Time
	started bool
	best    time.Duration
	hasBest bool
}

// NewClock creates a clock. A nil now uses time.Now; a nil store keeps the
// best time in memory only.
func NewClock(store BestStore, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, store: store}
}

// LoadBest reads the persisted best time. A loaded value never lowers the
// in-memory best.
func (c *Clock) LoadBest() error {
	if c.store == nil {
		return nil
	}
	best, ok, err := c.store.Load()
	if err != nil {
		return err
	}
	if ok {
		c.raise(best)
	}
	return nil
}

func (c *Clock) raise(d time.Duration) {
	if !c.hasBest || d > c.best {
		c.best, c.hasBest = d, true
	}
}

// Start records the session start time. Calls after the first are no-ops
// until Reset.
func (c *Clock) Start() {
	if c.started {
		return
	}
	c.start = c.now()
	c.started = true
}

// Reset forgets the session start so the next Start begins a new session.
func (c *Clock) Reset() {
	c.started = false
	c.start = time.Time{}
}

// Elapsed returns the time since Start, or 0 before it.
func (c *Clock) Elapsed() time.Duration {
	if !c.started {
		return 0
	}
	return c.now().Sub(c.start)
}

// Best returns the best time and whether one exists.
func (c *Clock) Best() (time.Duration, bool) {
	return c.best, c.hasBest
}

// Finalize closes the session: the elapsed time, truncated to the
// millisecond the store keeps, replaces the best if it is strictly greater.
// The stored best is reread first so bests saved by other sessions count,
// and a longer value returned by Save wins over this session's time.
func (c *Clock) Finalize() Record {
	rec := Record{Elapsed: c.Elapsed().Truncate(time.Millisecond)}
	if c.store != nil {
		// A failed read leaves the in-memory best; Save reconciles below.
		if best, ok, err := c.store.Load(); err == nil && ok {
			c.raise(best)
		}
	}
	if !c.hasBest || rec.Elapsed > c.best {
		c.raise(rec.Elapsed)
		rec.NewRecord = true
		if c.store != nil {
			stored, err := c.store.Save(rec.Elapsed)
			switch {
			case err != nil:
				rec.SaveErr = err
			case stored > rec.Elapsed:
				c.raise(stored)
				rec.NewRecord = false
			}
		}
	}
	rec.Best = c.best
	return rec
}

// MemoryBest is a BestStore that keeps the value in process memory.
type MemoryBest struct {
	mu    sync.Mutex
	best  time.Duration
	ok    bool
	saves int
}

// Load implements BestStore.
func (m *MemoryBest) Load() (time.Duration, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, m.ok, nil
}

// Save implements BestStore.
func (m *MemoryBest) Save(best time.Duration) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok || best > m.best {
		m.best, m.ok = best, true
	}
	m.saves++
	return m.best, nil
}

// Saves returns how many times Save was called.
func (m *MemoryBest) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
