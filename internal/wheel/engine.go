package wheel

import (
	"math"
	"slices"
	"time"

	"go.uber.org/zap"
)

const DefaultDuration = 5 * time.Second

type Config struct {
	Layout    Layout
	Duration  time.Duration
	Easing    Easing
	Clock     Clock
	Scheduler Scheduler
	Rand      Rand
	// Surface may be nil for hosts that draw from Frame themselves.
	Surface Surface
	Logger  *zap.Logger
}

// Plan is the arithmetic of one spin, fixed before the animation starts.
type Plan struct {
	Index    int
	Target   float64
	Cycles   int
	Distance float64
}

// PlanSpin computes where a spin landing on index must stop and how far it
// travels from current. The remainder term is taken forward only, so the
// distance is never shorter than cycles full turns.
func PlanSpin(l Layout, n int, current float64, index, cycles int) Plan {
	c := l.Cycle(n)
	target := l.Target(n, index)
	delta := normalize(target-normalize(current, c), c)
	return Plan{
		Index:    index,
		Target:   target,
		Cycles:   cycles,
		Distance: float64(cycles)*c + delta,
	}
}

type size struct{ w, h float64 }

// Engine is the wheel: one option set, one visual position and the spin
// state machine. It is not safe for concurrent use; a host drives it from a
// single goroutine and delivers frames through the Scheduler.
type Engine struct {
	layout    Layout
	duration  time.Duration
	easing    Easing
	clock     Clock
	scheduler Scheduler
	rand      Rand
	surface   Surface
	logger    *zap.Logger

	options    []Option
	position   float64
	state      SpinState
	plan       Plan
	progress   float64
	lastWinner int
	resize     *size
	result     chan Result
}

func New(cfg Config, options []Option) (*Engine, error) {
	if cfg.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	e := &Engine{
		layout:     cfg.Layout,
		duration:   cfg.Duration,
		easing:     cfg.Easing,
		clock:      cfg.Clock,
		scheduler:  cfg.Scheduler,
		rand:       cfg.Rand,
		surface:    cfg.Surface,
		logger:     cfg.Logger,
		state:      SpinState{Phase: PhaseIdle},
		lastWinner: -1,
	}
	if e.layout == nil {
		e.layout = DefaultReel()
	}
	if e.duration == 0 {
		e.duration = DefaultDuration
	}
	if e.easing == nil {
		e.easing = EaseOutCubic
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.rand == nil {
		e.rand = globalRand{}
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if err := e.SetOptions(options); err != nil {
		return nil, err
	}
	return e, nil
}

// SetOptions replaces the option set and parks index 0 under the pointer.
func (e *Engine) SetOptions(options []Option) error {
	if len(options) == 0 {
		return ErrEmptyOptionSet
	}
	if e.Spinning() {
		return ErrInvalidState
	}
	e.options = slices.Clone(options)
	e.position = e.layout.Target(len(e.options), 0)
	e.lastWinner = -1
	e.draw()
	return nil
}

// Spin chooses a winner uniformly and starts the animation. The returned
// channel receives exactly one Result when the final frame has been drawn.
func (e *Engine) Spin() (<-chan Result, error) {
	if e.Spinning() {
		return nil, ErrAlreadySpinning
	}
	return e.start(e.rand.IntN(len(e.options)))
}

// SpinTo is Spin with the winner decided by the caller.
func (e *Engine) SpinTo(index int) (<-chan Result, error) {
	if e.Spinning() {
		return nil, ErrAlreadySpinning
	}
	if index < 0 || index >= len(e.options) {
		return nil, ErrIndexOutOfRange
	}
	return e.start(index)
}

func (e *Engine) start(index int) (<-chan Result, error) {
	n := len(e.options)
	e.plan = PlanSpin(e.layout, n, e.position, index, e.layout.Cycles(n, e.rand))
	e.state = SpinState{
		Phase:          PhaseSpinning,
		StartTime:      e.clock.Now(),
		StartPosition:  e.position,
		TargetDistance: e.plan.Distance,
		ChosenIndex:    index,
	}
	e.progress = 0
	e.result = make(chan Result, 1)

	e.logger.Debug("spin started",
		zap.Int("index", index),
		zap.Int("cycles", e.plan.Cycles),
		zap.Float64("distance", e.plan.Distance),
		zap.Float64("target", e.plan.Target),
	)
	e.scheduler.RequestFrame(e.animate)
	return e.result, nil
}

// animate is the per-frame step: position is a function of elapsed time
// only, so late or skipped frames still land exactly on the target.
func (e *Engine) animate(now time.Time) {
	if !e.Spinning() {
		return
	}
	progress := 1.0
	if e.duration > 0 {
		progress = math.Min(float64(now.Sub(e.state.StartTime))/float64(e.duration), 1)
	}
	if progress < e.progress {
		progress = e.progress
	}
	e.progress = progress

	if progress >= 1 {
		e.settle()
		return
	}
	e.position = e.state.StartPosition + e.state.TargetDistance*e.easing(progress)
	e.draw()
	e.scheduler.RequestFrame(e.animate)
}

func (e *Engine) settle() {
	n := len(e.options)
	w := e.state.ChosenIndex

	// start+distance is congruent to the target; storing the target keeps
	// float error from accumulating across spins.
	e.position = e.plan.Target
	if got := e.layout.IndexAt(n, e.position); got != w {
		e.logger.Error("landing index disagrees with chosen index",
			zap.Int("chosen", w), zap.Int("landed", got), zap.Float64("position", e.position))
	}

	e.state = SpinState{Phase: PhaseIdle}
	e.lastWinner = w
	if e.resize != nil {
		e.applyResize(e.resize.w, e.resize.h)
		e.resize = nil
	}
	e.draw()

	res := Result{Index: w, Option: e.options[w], Position: e.position, Distance: e.plan.Distance}
	e.logger.Debug("spin settled", zap.Int("index", w), zap.String("label", res.Option.Label))
	e.result <- res
	close(e.result)
	e.result = nil
}

// Resize rebuilds the layout for a new surface size. While spinning the
// change is held back until the spin settles; the return value reports
// whether it was applied now.
func (e *Engine) Resize(width, height float64) bool {
	if e.Spinning() {
		e.resize = &size{w: width, h: height}
		return false
	}
	e.applyResize(width, height)
	e.draw()
	return true
}

// applyResize keeps the option under the pointer in place across the size
// change.
func (e *Engine) applyResize(width, height float64) {
	n := len(e.options)
	shown := e.layout.IndexAt(n, e.position)
	e.layout = e.layout.Resize(width, height)
	e.position = e.layout.Target(n, shown)
}

// CurrentWinnerAtRest reads the option under the pointer from the position
// alone, independent of the last Result.
func (e *Engine) CurrentWinnerAtRest() Option {
	return e.options[e.layout.IndexAt(len(e.options), e.position)]
}

// LastWinner is the index of the last settled spin since the option set
// was replaced.
func (e *Engine) LastWinner() (int, bool) {
	return e.lastWinner, e.lastWinner >= 0
}

func (e *Engine) Render() { e.draw() }

func (e *Engine) draw() {
	if e.surface == nil {
		return
	}
	if fs, ok := e.surface.(FrameSurface); ok {
		fs.BeginFrame()
		defer fs.EndFrame()
	}
	e.layout.Draw(e.surface, e.options, e.position)
}

func (e *Engine) Frame() Frame {
	n := len(e.options)
	c := e.layout.Cycle(n)
	w, h := e.layout.Size()
	progress := 0.0
	if e.Spinning() {
		progress = e.progress
	}
	return Frame{
		Phase:    e.Phase(),
		Layout:   e.layout.Kind(),
		Position: normalize(e.position, c),
		Cycle:    c,
		Progress: progress,
		Index:    e.layout.IndexAt(n, e.position),
		Width:    w,
		Height:   h,
	}
}

func (e *Engine) Phase() Phase {
	if e.Spinning() {
		return PhaseSpinning
	}
	return PhaseIdle
}

func (e *Engine) Spinning() bool { return e.state.Phase == PhaseSpinning }

func (e *Engine) State() SpinState { return e.state }

// Position is unbounded while spinning and normalised at rest.
func (e *Engine) Position() float64 { return e.position }

func (e *Engine) Options() []Option { return slices.Clone(e.options) }

func (e *Engine) Layout() Layout { return e.layout }

func (e *Engine) Duration() time.Duration { return e.duration }
