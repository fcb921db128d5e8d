package wheel

import (
	"fmt"
	"math"
)

type Kind string

const (
	KindReel Kind = "reel"
	KindPie  Kind = "pie"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindReel, KindPie:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown layout %q", s)
	}
}

// Layout is the geometric contract shared by the reel and the pie. Every
// method taking n assumes n >= 1. Target and IndexAt are inverses: for
// every index i, IndexAt(n, Target(n, i)) == i, and IndexAt always agrees
// with Placed, the rule Draw uses to put options on the surface.
type Layout interface {
	Kind() Kind
	// Cycle is the position after which the picture repeats.
	Cycle(n int) float64
	// Target is the normalised position that centres option index under the
	// pointer.
	Target(n, index int) float64
	IndexAt(n int, position float64) int
	// Placed scans the drawn slots or slices and returns the one covering
	// the pointer, or -1.
	Placed(n int, position float64) int
	// Cycles draws the number of extra full cycles for one spin.
	Cycles(n int, r Rand) int
	Draw(s Surface, options []Option, position float64)
	Resize(width, height float64) Layout
	Size() (width, height float64)
}

const tau = 2 * math.Pi

// normalize maps x into [0, cycle).
func normalize(x, cycle float64) float64 {
	m := math.Mod(x, cycle)
	if m < 0 {
		m += cycle
	}
	if m >= cycle {
		m = 0
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// CanvasSize derives the drawing surface from the viewport the same way the
// browser host does, with a floor so tiny viewports still draw something.
func CanvasSize(viewportW, viewportH float64) (float64, float64) {
	w := math.Max(100, math.Min(400, viewportW-60))
	h := math.Max(100, math.Min(600, viewportH-250))
	return w, h
}

// Reel is a vertically scrolling strip of slots wrapped seamlessly. The
// pointer is a horizontal line at half the surface height.
type Reel struct {
	SlotSize  float64
	Width     float64
	Height    float64
	MinTravel float64
	MaxTravel float64
}

func DefaultReel() Reel {
	return Reel{SlotSize: 60, Width: 400, Height: 600, MinTravel: 3000, MaxTravel: 5000}
}

func (r Reel) Kind() Kind { return KindReel }

func (r Reel) PointerY() float64 { return r.Height / 2 }

func (r Reel) Cycle(n int) float64 { return float64(n) * r.SlotSize }

func (r Reel) Target(n, index int) float64 {
	return normalize(float64(index)*r.SlotSize+r.SlotSize/2-r.PointerY(), r.Cycle(n))
}

func (r Reel) IndexAt(n int, position float64) int {
	return r.IndexAtY(n, position, r.PointerY())
}

// IndexAtY returns the option drawn at surface row y.
func (r Reel) IndexAtY(n int, position, y float64) int {
	c := r.Cycle(n)
	rel := normalize(normalize(position, c)+y, c)
	return int(math.Floor(rel/r.SlotSize)) % n
}

// slots visits every drawn slot, one repeat above the surface and enough
// below it to cover the height, until fn returns false.
func (r Reel) slots(n int, position float64, fn func(index int, y float64) bool) {
	c := r.Cycle(n)
	o := normalize(position, c)
	repeats := int(math.Ceil(r.Height/c)) + 2
	for k := -1; k <= repeats; k++ {
		for i := 0; i < n; i++ {
			if !fn(i, float64(k)*c+float64(i)*r.SlotSize-o) {
				return
			}
		}
	}
}

func (r Reel) Placed(n int, position float64) int {
	p := r.PointerY()
	found := -1
	r.slots(n, position, func(i int, y float64) bool {
		if y <= p && p < y+r.SlotSize {
			found = i
			return false
		}
		return true
	})
	return found
}

// Cycles samples a travel length in [MinTravel, MaxTravel] and rounds it up
// to whole cycles, so a spin never travels less than MinTravel.
func (r Reel) Cycles(n int, rnd Rand) int {
	travel := r.MinTravel + rnd.Float64()*(r.MaxTravel-r.MinTravel)
	return int(math.Ceil(travel / r.Cycle(n)))
}

func (r Reel) Draw(s Surface, options []Option, position float64) {
	n := len(options)
	s.Clear(0, 0, r.Width, r.Height)
	text := TextStyle{Size: clamp(r.Width/20, 12, 18), Bold: true, Align: AlignCenter, Color: White}
	r.slots(n, position, func(i int, y float64) bool {
		if y+r.SlotSize < 0 || y > r.Height {
			return true
		}
		opt := options[i]
		s.FillRect(0, y, r.Width, r.SlotSize, opt.Color)
		s.StrokeRect(0, y, r.Width, r.SlotSize, White, 3)
		s.FillText(opt.Label, r.Width/2, y+r.SlotSize/2, text)
		return true
	})
	s.FillRect(r.Width-10, r.PointerY()-2, 40, 4, PointerRed)
}

func (r Reel) Resize(width, height float64) Layout {
	r.Width, r.Height = width, height
	return r
}

func (r Reel) Size() (float64, float64) { return r.Width, r.Height }

// PointerAngle points straight up on a canvas whose y axis grows downward.
const PointerAngle = 3 * math.Pi / 2

// Pie is a circular wheel of equal slices. Slice i spans
// [i*slice + rotation, (i+1)*slice + rotation).
type Pie struct {
	Width     float64
	Height    float64
	MinCycles int
	MaxCycles int
}

func DefaultPie() Pie {
	return Pie{Width: 400, Height: 400, MinCycles: 5, MaxCycles: 8}
}

func (p Pie) Kind() Kind { return KindPie }

func (p Pie) SliceAngle(n int) float64 { return tau / float64(n) }

func (p Pie) Cycle(int) float64 { return tau }

func (p Pie) Radius() float64 { return math.Min(p.Width, p.Height)/2 - 10 }

func (p Pie) Target(n, index int) float64 {
	return normalize(PointerAngle-(float64(index)+0.5)*p.SliceAngle(n), tau)
}

func (p Pie) IndexAt(n int, position float64) int {
	rel := normalize(PointerAngle-normalize(position, tau), tau)
	i := int(math.Floor(rel / p.SliceAngle(n)))
	if i >= n {
		i = n - 1
	}
	return i
}

func (p Pie) Placed(n int, position float64) int {
	r := normalize(position, tau)
	slice := p.SliceAngle(n)
	for i := 0; i < n; i++ {
		start := float64(i)*slice + r
		if normalize(PointerAngle-start, tau) < slice {
			return i
		}
	}
	return -1
}

// Cycles is uniform over [MinCycles, MaxCycles].
func (p Pie) Cycles(_ int, rnd Rand) int {
	span := p.MaxCycles - p.MinCycles
	if span <= 0 {
		return p.MinCycles
	}
	return p.MinCycles + rnd.IntN(span+1)
}

func (p Pie) Draw(s Surface, options []Option, position float64) {
	n := len(options)
	slice := p.SliceAngle(n)
	radius := p.Radius()
	cx, cy := p.Width/2, p.Height/2
	text := TextStyle{Size: clamp(radius/12, 10, 16), Bold: true, Align: AlignRight, Color: White}

	s.Clear(0, 0, p.Width, p.Height)
	s.Save()
	s.Translate(cx, cy)
	s.Rotate(normalize(position, tau))
	for i, opt := range options {
		start := float64(i) * slice
		s.FillArc(0, 0, radius, start, start+slice, opt.Color)
		s.StrokeArc(0, 0, radius, start, start+slice, White, 2)
		s.Save()
		s.Rotate(start + slice/2)
		s.FillText(opt.Label, radius-10, 0, text)
		s.Restore()
	}
	s.Restore()

	s.Save()
	s.Translate(cx, cy-radius)
	s.FillRect(-3, -14, 6, 24, PointerRed)
	s.Restore()
}

func (p Pie) Resize(width, height float64) Layout {
	p.Width, p.Height = width, height
	return p
}

func (p Pie) Size() (float64, float64) { return p.Width, p.Height }
