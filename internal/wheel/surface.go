package wheel

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type TextStyle struct {
	Size  float64
	Bold  bool
	Align Align
	Color RGBColor
}

// Surface is the 2D drawing target a layout renders onto. Angles are in
// radians, clockwise from the positive x axis, matching an HTML canvas.
type Surface interface {
	Clear(x, y, w, h float64)
	FillRect(x, y, w, h float64, c RGBColor)
	StrokeRect(x, y, w, h float64, c RGBColor, width float64)
	// FillArc fills the circular sector between start and end.
	FillArc(cx, cy, r, start, end float64, c RGBColor)
	StrokeArc(cx, cy, r, start, end float64, c RGBColor, width float64)
	FillText(text string, x, y float64, style TextStyle)
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(angle float64)
}

// FrameSurface is implemented by surfaces that need to know where one
// frame's draw calls begin and end.
type FrameSurface interface {
	Surface
	BeginFrame()
	EndFrame()
}
