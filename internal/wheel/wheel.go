package wheel

import (
	"errors"
	"time"
)

var ErrEmptyOptionSet = errors.New("option set is empty")
var ErrAlreadySpinning = errors.New("wheel is already spinning")
var ErrInvalidState = errors.New("operation not allowed while spinning")
var ErrIndexOutOfRange = errors.New("option index out of range")
var ErrNoScheduler = errors.New("frame scheduler is required")

type Option struct {
	Label string   `json:"label" yaml:"label"`
	Color RGBColor `json:"color" yaml:"color"`
}

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseSpinning Phase = "spinning"
)

// SpinState is Idle unless a spin animation is running.
type SpinState struct {
	Phase          Phase
	StartTime      time.Time
	StartPosition  float64
	TargetDistance float64
	ChosenIndex    int
}

type Result struct {
	Index    int     `json:"index"`
	Option   Option  `json:"option"`
	Position float64 `json:"position"`
	Distance float64 `json:"distance"`
}

type Frame struct {
	Phase    Phase   `json:"phase"`
	Layout   Kind    `json:"layout"`
	Position float64 `json:"position"`
	Cycle    float64 `json:"cycle"`
	Progress float64 `json:"progress"`
	Index    int     `json:"index"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Clock supplies wall-clock time to the animation.
type Clock interface {
	Now() time.Time
}

// Scheduler delivers one callback per visual refresh. The engine hands it
// the next frame callback and returns; the host invokes it later from the
// same execution context.
type Scheduler interface {
	RequestFrame(fn func(now time.Time))
}

// Rand is satisfied by *math/rand/v2.Rand.
type Rand interface {
	IntN(n int) int
	Float64() float64
}
