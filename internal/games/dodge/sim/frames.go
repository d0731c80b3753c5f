package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// FrameSource is the loop's yield point. Next blocks until the next frame
// is due or ctx is done.
type FrameSource interface {
	Next(ctx context.Context) error
}

// TickerFrames delivers frames at a fixed wall-clock rate.
type TickerFrames struct {
	ticker *time.Ticker
	frames atomic.Uint64
}

// NewTickerFrames creates a frame source running at fps frames per second.
// Non-positive rates fall back to 60.
func NewTickerFrames(fps int) *TickerFrames {
	if fps <= 0 {
		fps = 60
	}
	return &TickerFrames{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Next implements FrameSource.
func (t *TickerFrames) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		t.frames.Add(1)
		return nil
	}
}

// Frames returns how many frames have been delivered.
func (t *TickerFrames) Frames() uint64 {
	return t.frames.Load()
}

// Stop releases the ticker.
func (t *TickerFrames) Stop() {
	t.ticker.Stop()
}

// VirtualFrames advances a virtual clock by a fixed step on every frame
// without sleeping. Pass its Now to NewClock for headless runs.
type VirtualFrames struct {
	mu     sync.Mutex
	now    time.Time
	step   time.Duration
	frames uint64
	limit  uint64
}

// ErrFrameLimit is returned by VirtualFrames once its frame limit is spent.
var ErrFrameLimit = errors.New("sim: frame limit reached")

// NewVirtualFrames creates a virtual frame source starting at start and
// advancing by step per frame. A limit of 0 means unbounded.
func NewVirtualFrames(start time.Time, step time.Duration, limit uint64) *VirtualFrames {
	return &VirtualFrames{now: start, step: step, limit: limit}
}

// Next implements FrameSource.
func (v *VirtualFrames) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.limit > 0 && v.frames >= v.limit {
		return ErrFrameLimit
	}
	v.frames++
	v.now = v.now.Add(v.step)
	return nil
}

// Now returns the current virtual time.
func (v *VirtualFrames) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Frames returns how many frames have been delivered.
func (v *VirtualFrames) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}
