package wheel

import (
	"math"
	"math/rand/v2"
	"time"
)

// Easing maps elapsed-time fraction to travel fraction. Easing(0) must be
// 0, Easing(1) must be 1, and it must not decrease.
type Easing func(progress float64) float64

func EaseOutCubic(p float64) float64 { return 1 - math.Pow(1-p, 3) }

func Linear(p float64) float64 { return p }

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock { return &ManualClock{now: start} }

func (c *ManualClock) Now() time.Time { return c.now }

func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// FrameQueue is a Scheduler for hosts that own their refresh loop: frame
// callbacks queue up until the host calls Flush.
type FrameQueue struct {
	pending []func(time.Time)
}

func (q *FrameQueue) RequestFrame(fn func(time.Time)) {
	q.pending = append(q.pending, fn)
}

func (q *FrameQueue) Pending() bool { return len(q.pending) > 0 }

// Flush runs the callbacks queued before the call. Callbacks queued while
// flushing wait for the next Flush.
func (q *FrameQueue) Flush(now time.Time) int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }
