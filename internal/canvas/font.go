package canvas

import (
	"strconv"

	"github.com/DoyleJ11/spin-wheel/internal/wheel"
)

// Font renders a TextStyle as a CSS font shorthand, e.g. "bold 18px Arial".
func Font(style wheel.TextStyle) string {
	size := strconv.FormatFloat(style.Size, 'f', -1, 64) + "px Arial"
	if style.Bold {
		return "bold " + size
	}
	return size
}
