package game

import "gonum.org/v1/gonum/spatial/r2"

// toWorld converts a screen position (top-left origin, y down) into the
// window-centred, y-up space the grid lives in.
func toWorld(x, y int, width, height float64) r2.Vec {
	return r2.Vec{
		X: float64(x) - width/2,
		Y: height/2 - float64(y),
	}
}

// toScreen converts a centred rectangle into its top-left corner and extent in
// screen space. ok is false when the rectangle has no area.
func toScreen(center, size r2.Vec, width, height float64) (x, y, w, h float32, ok bool) {
	if size.X <= 0 || size.Y <= 0 {
		return 0, 0, 0, 0, false
	}
	left := width/2 + center.X - size.X/2
	top := height/2 - center.Y - size.Y/2
	return float32(left), float32(top), float32(size.X), float32(size.Y), true
}
