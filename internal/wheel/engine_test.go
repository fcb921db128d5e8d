package wheel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixedRand struct {
	index int
	frac  float64
}

func (r fixedRand) IntN(n int) int   { return r.index % n }
func (r fixedRand) Float64() float64 { return r.frac }

type countingSurface struct {
	nopSurface
	frames int
	open   bool
}

func (s *countingSurface) BeginFrame() { s.open = true }
func (s *countingSurface) EndFrame()   { s.open = false; s.frames++ }

type nopSurface struct{}

func (nopSurface) Clear(x, y, w, h float64)                                    {}
func (nopSurface) FillRect(x, y, w, h float64, c RGBColor)                     {}
func (nopSurface) StrokeRect(x, y, w, h float64, c RGBColor, width float64)    {}
func (nopSurface) FillArc(cx, cy, r, start, end float64, c RGBColor)           {}
func (nopSurface) StrokeArc(cx, cy, r, start, end float64, c RGBColor, w float64) {}
func (nopSurface) FillText(text string, x, y float64, style TextStyle)         {}
func (nopSurface) Save()                                                       {}
func (nopSurface) Restore()                                                    {}
func (nopSurface) Translate(dx, dy float64)                                    {}
func (nopSurface) Rotate(angle float64)                                        {}

type harness struct {
	engine  *Engine
	clock   *ManualClock
	queue   *FrameQueue
	surface *countingSurface
}

func newHarness(t *testing.T, layout Layout, options []Option, rnd Rand) *harness {
	t.Helper()
	h := &harness{
		clock:   NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		queue:   &FrameQueue{},
		surface: &countingSurface{},
	}
	e, err := New(Config{
		Layout:    layout,
		Duration:  5 * time.Second,
		Clock:     h.clock,
		Scheduler: h.queue,
		Rand:      rnd,
		Surface:   h.surface,
		Logger:    zaptest.NewLogger(t),
	}, options)
	require.NoError(t, err)
	h.engine = e
	return h
}

// run drives frames every step until the spin settles and returns the
// positions observed while the wheel was moving.
func (h *harness) run(t *testing.T, ch <-chan Result, step time.Duration) (Result, []float64) {
	t.Helper()
	var positions []float64
	for i := 0; i < 100000; i++ {
		select {
		case res, ok := <-ch:
			require.True(t, ok, "result channel closed without a result")
			return res, positions
		default:
		}
		require.True(t, h.queue.Pending(), "animation stopped before delivering a result")
		h.queue.Flush(h.clock.Advance(step))
		if h.engine.Spinning() {
			positions = append(positions, h.engine.Position())
		}
	}
	t.Fatal("spin never settled")
	return Result{}, nil
}

func labelled(n int) []Option {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("opt-%d", i)
	}
	return OptionsFromLabels(labels)
}

func TestSpin_LandsOnChosenIndex(t *testing.T) {
	layouts := []Layout{DefaultReel(), Reel{SlotSize: 60, Width: 300, Height: 390, MinTravel: 3000, MaxTravel: 5000}, DefaultPie()}
	for _, layout := range layouts {
		for n := 1; n <= 9; n++ {
			for w := 0; w < n; w++ {
				t.Run(fmt.Sprintf("%s/n=%d/w=%d", layout.Kind(), n, w), func(t *testing.T) {
					opts := labelled(n)
					h := newHarness(t, layout, opts, fixedRand{index: w, frac: 0.37})

					ch, err := h.engine.Spin()
					require.NoError(t, err)
					assert.Equal(t, w, h.engine.State().ChosenIndex)

					res, _ := h.run(t, ch, 16*time.Millisecond)
					assert.Equal(t, w, res.Index)
					assert.Equal(t, opts[w], res.Option)
					assert.Equal(t, opts[w], h.engine.CurrentWinnerAtRest())
					assert.Equal(t, PhaseIdle, h.engine.Phase())

					last, ok := h.engine.LastWinner()
					assert.True(t, ok)
					assert.Equal(t, w, last)
				})
			}
		}
	}
}

func TestSpin_ConsecutiveSpinsStayConsistent(t *testing.T) {
	for _, layout := range []Layout{DefaultReel(), DefaultPie()} {
		t.Run(string(layout.Kind()), func(t *testing.T) {
			opts := labelled(7)
			h := newHarness(t, layout, opts, rand.New(rand.NewPCG(7, 11)))
			for i := 0; i < 25; i++ {
				ch, err := h.engine.Spin()
				require.NoError(t, err)
				chosen := h.engine.State().ChosenIndex
				res, _ := h.run(t, ch, 33*time.Millisecond)
				require.Equal(t, chosen, res.Index)
				require.Equal(t, res.Option, h.engine.CurrentWinnerAtRest())
			}
		})
	}
}

func TestSpin_ForwardOnlyTravel(t *testing.T) {
	cases := []struct {
		layout Layout
		min    func(n int) float64
	}{
		{layout: DefaultReel(), min: func(int) float64 { return 3000 }},
		{layout: DefaultPie(), min: func(int) float64 { return 5 * tau }},
	}
	for _, tc := range cases {
		t.Run(string(tc.layout.Kind()), func(t *testing.T) {
			rnd := rand.New(rand.NewPCG(1, 2))
			for _, n := range []int{1, 2, 3, 13, 30, 80} {
				h := newHarness(t, tc.layout, labelled(n), rnd)
				for i := 0; i < 5; i++ {
					ch, err := h.engine.Spin()
					require.NoError(t, err)
					assert.GreaterOrEqual(t, h.engine.State().TargetDistance, tc.min(n), "n=%d", n)

					_, positions := h.run(t, ch, 40*time.Millisecond)
					for j := 1; j < len(positions); j++ {
						require.GreaterOrEqual(t, positions[j], positions[j-1], "position went backwards")
					}
				}
			}
		})
	}
}

func TestSpin_PieCyclesWithinRange(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	h := newHarness(t, DefaultPie(), labelled(5), rnd)
	for i := 0; i < 50; i++ {
		ch, err := h.engine.Spin()
		require.NoError(t, err)
		d := h.engine.State().TargetDistance
		assert.GreaterOrEqual(t, d, 5*tau)
		assert.Less(t, d, 9*tau)
		h.run(t, ch, time.Second)
	}
}

func TestSpin_RejectedWhileSpinning(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(4), fixedRand{index: 1, frac: 0.5})
	ch, err := h.engine.Spin()
	require.NoError(t, err)
	h.queue.Flush(h.clock.Advance(time.Second))

	before := h.engine.State()

	again, err := h.engine.Spin()
	assert.ErrorIs(t, err, ErrAlreadySpinning)
	assert.Nil(t, again)
	_, err = h.engine.SpinTo(3)
	assert.ErrorIs(t, err, ErrAlreadySpinning)
	assert.Equal(t, before, h.engine.State())

	opts := h.engine.Options()
	err = h.engine.SetOptions(labelled(9))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, opts, h.engine.Options())

	res, _ := h.run(t, ch, 16*time.Millisecond)
	assert.Equal(t, 1, res.Index)
}

func TestSpin_SingleOption(t *testing.T) {
	for _, layout := range []Layout{DefaultReel(), DefaultPie()} {
		t.Run(string(layout.Kind()), func(t *testing.T) {
			opts := []Option{{Label: "only", Color: Palette[3]}}
			h := newHarness(t, layout, opts, rand.New(rand.NewPCG(5, 6)))
			cycle := layout.Cycle(1)
			for i := 0; i < 3; i++ {
				ch, err := h.engine.Spin()
				require.NoError(t, err)

				d := h.engine.State().TargetDistance
				whole := math.Round(d / cycle)
				assert.Equal(t, whole*cycle, d, "distance must be whole cycles")

				res, _ := h.run(t, ch, 50*time.Millisecond)
				assert.Equal(t, opts[0], res.Option)
				assert.Equal(t, opts[0], h.engine.CurrentWinnerAtRest())
			}
		})
	}
}

func TestScenario_ReelFourOptionsForcedIndex(t *testing.T) {
	opts := []Option{
		{Label: "A", Color: Palette[0]},
		{Label: "B", Color: Palette[1]},
		{Label: "C", Color: Palette[2]},
		{Label: "D", Color: Palette[3]},
	}
	reel := DefaultReel()
	pointerY := reel.PointerY()

	plan := PlanSpin(reel, 4, 0, 2, 13)
	want := math.Mod(2*60+30-pointerY, 240)
	if want < 0 {
		want += 240
	}
	assert.Equal(t, want, plan.Target)
	assert.Equal(t, 90.0, plan.Target)
	assert.Equal(t, 13*240+90.0, plan.Distance)

	h := newHarness(t, reel, opts, fixedRand{frac: 0.2})
	ch, err := h.engine.SpinTo(2)
	require.NoError(t, err)
	res, _ := h.run(t, ch, 16*time.Millisecond)
	assert.Equal(t, "C", res.Option.Label)
	assert.Equal(t, "C", h.engine.CurrentWinnerAtRest().Label)
	assert.Equal(t, 90.0, h.engine.Position())
}

func TestSpin_SkippedFramesStillConverge(t *testing.T) {
	h := newHarness(t, DefaultPie(), labelled(6), fixedRand{index: 4})
	ch, err := h.engine.Spin()
	require.NoError(t, err)

	// a single, very late frame finishes the spin
	h.queue.Flush(h.clock.Advance(30 * time.Second))
	select {
	case res := <-ch:
		assert.Equal(t, 4, res.Index)
	default:
		t.Fatal("expected the late frame to settle the spin")
	}
	assert.False(t, h.queue.Pending())
}

func TestSpin_ClockGoingBackwardsDoesNotRewind(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(5), fixedRand{index: 2, frac: 0.5})
	ch, err := h.engine.Spin()
	require.NoError(t, err)

	h.queue.Flush(h.clock.Advance(2 * time.Second))
	at := h.engine.Position()
	h.queue.Flush(h.clock.Advance(-time.Second))
	assert.Equal(t, at, h.engine.Position())

	res, _ := h.run(t, ch, 16*time.Millisecond)
	assert.Equal(t, 2, res.Index)
}

func TestSpin_FinalFrameDeliveredOnce(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(3), fixedRand{index: 0})
	ch, err := h.engine.Spin()
	require.NoError(t, err)

	_, _ = h.run(t, ch, 100*time.Millisecond)
	frames := h.surface.frames
	assert.False(t, h.queue.Pending(), "no frame may be requested after completion")
	assert.Equal(t, 0, h.queue.Flush(h.clock.Advance(time.Second)))
	assert.Equal(t, frames, h.surface.frames)

	_, ok := <-ch
	assert.False(t, ok, "result channel is closed after the single result")
}

func TestSpinTo_OutOfRange(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(3), nil)
	_, err := h.engine.SpinTo(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = h.engine.SpinTo(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, PhaseIdle, h.engine.Phase())
}

func TestSetOptions(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(3), nil)
	assert.ErrorIs(t, h.engine.SetOptions(nil), ErrEmptyOptionSet)
	assert.Len(t, h.engine.Options(), 3)

	next := labelled(5)
	require.NoError(t, h.engine.SetOptions(next))
	assert.Equal(t, next, h.engine.Options())
	assert.Equal(t, next[0], h.engine.CurrentWinnerAtRest())
	_, ok := h.engine.LastWinner()
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, labelled(2))
	assert.ErrorIs(t, err, ErrNoScheduler)

	_, err = New(Config{Scheduler: &FrameQueue{}}, nil)
	assert.ErrorIs(t, err, ErrEmptyOptionSet)
}

func TestResize_DeferredWhileSpinning(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(6), fixedRand{index: 4, frac: 0.1})
	ch, err := h.engine.Spin()
	require.NoError(t, err)

	assert.False(t, h.engine.Resize(300, 390))
	w, ht := h.engine.Layout().Size()
	assert.Equal(t, 400.0, w)
	assert.Equal(t, 600.0, ht)

	res, _ := h.run(t, ch, 16*time.Millisecond)
	w, ht = h.engine.Layout().Size()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 390.0, ht)
	assert.Equal(t, res.Option, h.engine.CurrentWinnerAtRest())
}

func TestResize_AtRestKeepsOptionUnderPointer(t *testing.T) {
	for _, layout := range []Layout{DefaultReel(), DefaultPie()} {
		h := newHarness(t, layout, labelled(8), fixedRand{index: 5, frac: 0.9})
		ch, err := h.engine.Spin()
		require.NoError(t, err)
		res, _ := h.run(t, ch, 16*time.Millisecond)

		assert.True(t, h.engine.Resize(250, 333))
		assert.Equal(t, res.Option, h.engine.CurrentWinnerAtRest(), "%s", layout.Kind())
	}
}

func TestFrame(t *testing.T) {
	h := newHarness(t, DefaultReel(), labelled(4), fixedRand{index: 2})
	f := h.engine.Frame()
	assert.Equal(t, PhaseIdle, f.Phase)
	assert.Equal(t, KindReel, f.Layout)
	assert.Equal(t, 240.0, f.Cycle)
	assert.Equal(t, 0, f.Index)

	ch, err := h.engine.Spin()
	require.NoError(t, err)
	h.queue.Flush(h.clock.Advance(2500 * time.Millisecond))
	f = h.engine.Frame()
	assert.Equal(t, PhaseSpinning, f.Phase)
	assert.InDelta(t, 0.5, f.Progress, 1e-9)
	assert.Less(t, f.Position, f.Cycle)

	h.run(t, ch, 16*time.Millisecond)
	assert.Equal(t, 2, h.engine.Frame().Index)
}

func TestEasing(t *testing.T) {
	for _, ease := range []Easing{EaseOutCubic, Linear} {
		assert.Equal(t, 0.0, ease(0))
		assert.Equal(t, 1.0, ease(1))
		prev := 0.0
		for p := 0.0; p <= 1; p += 0.01 {
			require.GreaterOrEqual(t, ease(p), prev)
			prev = ease(p)
		}
	}
}

func TestFrameQueue_FlushRunsOnlyQueuedBatch(t *testing.T) {
	var q FrameQueue
	calls := 0
	var again func(time.Time)
	again = func(time.Time) {
		calls++
		q.RequestFrame(again)
	}
	q.RequestFrame(again)

	assert.Equal(t, 1, q.Flush(time.Now()))
	assert.Equal(t, 1, calls)
	assert.True(t, q.Pending())
}
