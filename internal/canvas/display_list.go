// Package canvas records wheel drawing calls as a display list that a
// browser client replays onto an HTML canvas 2D context.
package canvas

import (
	"slices"

	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

type Op string

const (
	OpClear      Op = "clear"
	OpFillRect   Op = "fillRect"
	OpStrokeRect Op = "strokeRect"
	OpFillArc    Op = "fillArc"
	OpStrokeArc  Op = "strokeArc"
	OpFillText   Op = "fillText"
	OpSave       Op = "save"
	OpRestore    Op = "restore"
	OpTranslate  Op = "translate"
	OpRotate     Op = "rotate"
)

// Command is one canvas call. Args are positional in the order of the
// matching wheel.Surface method.
type Command struct {
	Op    Op        `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Color string    `json:"color,omitempty"`
	Width float64   `json:"width,omitempty"`
	Text  string    `json:"text,omitempty"`
	Font  string    `json:"font,omitempty"`
	Align string    `json:"align,omitempty"`
}

// DisplayList implements wheel.FrameSurface. Calls between BeginFrame and
// EndFrame build the next frame; Last returns the most recent complete one.
type DisplayList struct {
	building []Command
	last     []Command
	frames   int
}

var _ wheel.FrameSurface = (*DisplayList)(nil)

func New() *DisplayList { return &DisplayList{} }

func (d *DisplayList) BeginFrame() { d.building = d.building[:0] }

func (d *DisplayList) EndFrame() {
	d.last = slices.Clone(d.building)
	d.frames++
}

// Last is safe to hand to another goroutine; the list never writes to it
// again.
func (d *DisplayList) Last() []Command { return d.last }

// Frames counts completed frames.
func (d *DisplayList) Frames() int { return d.frames }

func (d *DisplayList) add(c Command) { d.building = append(d.building, c) }

func (d *DisplayList) Clear(x, y, w, h float64) {
	d.add(Command{Op: OpClear, Args: []float64{x, y, w, h}})
}

func (d *DisplayList) FillRect(x, y, w, h float64, c wheel.RGBColor) {
	d.add(Command{Op: OpFillRect, Args: []float64{x, y, w, h}, Color: c.Hex()})
}

func (d *DisplayList) StrokeRect(x, y, w, h float64, c wheel.RGBColor, width float64) {
	d.add(Command{Op: OpStrokeRect, Args: []float64{x, y, w, h}, Color: c.Hex(), Width: width})
}

func (d *DisplayList) FillArc(cx, cy, r, start, end float64, c wheel.RGBColor) {
	d.add(Command{Op: OpFillArc, Args: []float64{cx, cy, r, start, end}, Color: c.Hex()})
}

func (d *DisplayList) StrokeArc(cx, cy, r, start, end float64, c wheel.RGBColor, width float64) {
	d.add(Command{Op: OpStrokeArc, Args: []float64{cx, cy, r, start, end}, Color: c.Hex(), Width: width})
}

func (d *DisplayList) FillText(text string, x, y float64, style wheel.TextStyle) {
	d.add(Command{
		Op:    OpFillText,
		Args:  []float64{x, y},
		Color: style.Color.Hex(),
		Text:  text,
		Font:  Font(style),
		Align: string(style.Align),
	})
}

func (d *DisplayList) Save()    { d.add(Command{Op: OpSave}) }
func (d *DisplayList) Restore() { d.add(Command{Op: OpRestore}) }

func (d *DisplayList) Translate(dx, dy float64) {
	d.add(Command{Op: OpTranslate, Args: []float64{dx, dy}})
}

func (d *DisplayList) Rotate(angle float64) {
	d.add(Command{Op: OpRotate, Args: []float64{angle}})
}
