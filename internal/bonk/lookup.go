package bonk

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

// CellAt maps a window-centred cursor position to the grid cell under it.
//
// The origin is shifted by size/LookupDivisor rather than exactly half the
// window, so the mapping drifts slightly from the drawn layout toward the far
// edges. The result is clamped into the grid.
func (w *World) CellAt(mouse r2.Vec, width, height float64) image.Point {
	p := w.params
	return image.Pt(
		cellIndex(mouse.X, width, p.Cols, p.LookupDivisor),
		cellIndex(mouse.Y, height, p.Rows, p.LookupDivisor),
	)
}

func cellIndex(pos, extent float64, count int, divisor float64) int {
	span := int(extent)
	if span <= 0 {
		return 0
	}
	i := int((pos+extent/divisor)*float64(count)) / span
	switch {
	case i < 0:
		return 0
	case i >= count:
		return count - 1
	}
	return i
}
