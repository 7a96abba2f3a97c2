package bonk

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Background is the clear colour of every frame.
var Background = color.Black

// Rect is a filled rectangle draw command.
type Rect struct {
	Cell   image.Point
	Center r2.Vec // window-centred, y up
	Size   r2.Vec
	Color  colorful.Color
}

// Frame is the full set of draw commands for one tick.
type Frame struct {
	Clear color.Color
	Rects []Rect
}

// AppendRects appends a draw command for every awake cell of g to dst.
func AppendRects(dst []Rect, g *Grid) []Rect {
	cells := g.Cells()
	for i := range cells {
		c := &cells[i]
		if c.Sleeping {
			continue
		}
		dst = append(dst, Rect{
			Cell:   g.Coord(i),
			Center: c.Center,
			Size:   c.Size,
			Color:  CellColor(c),
		})
	}
	return dst
}

// CellColor is full saturation at the cell's hue, with lightness rising to
// 0.5 at full excitement.
func CellColor(c *Cell) colorful.Color {
	return colorful.Hsl(c.Hue, 1, 0.5*c.Excitement).Clamped()
}

// Frame rebuilds the world's draw commands. The returned frame is reused by
// the next call.
func (w *World) Frame() *Frame {
	w.frame.Rects = AppendRects(w.frame.Rects[:0], w.grid)
	return &w.frame
}
