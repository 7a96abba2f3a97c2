// Package bonk implements the bonk grid: a field of cells that light up when
// the cursor moves across them and fade back to dark.
//
// The package is host independent. A host feeds one Input per tick to
// World.Step and rasterizes the Frame returned by World.Frame.
package bonk

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cell is one rectangle of the grid.
type Cell struct {
	Center     r2.Vec // window-centred, y up
	Size       r2.Vec
	Excitement float64 // brightness, decays toward 0
	Hue        float64 // degrees, set on bonk only
	Sleeping   bool    // sleeping cells are not drawn
}

// Grid is a fixed Cols×Rows field of cells stored row-major.
type Grid struct {
	Cols, Rows int
	cells      []Cell
}

// NewGrid allocates a grid with every cell asleep.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{
		Cols:  cols,
		Rows:  rows,
		cells: make([]Cell, cols*rows),
	}
	for i := range g.cells {
		g.cells[i] = Cell{Size: r2.Vec{X: 1, Y: 1}, Sleeping: true}
	}
	return g
}

// Index returns the offset of (x, y) in Cells.
func (g *Grid) Index(x, y int) int {
	return y*g.Cols + x
}

// Coord is the inverse of Index.
func (g *Grid) Coord(i int) image.Point {
	return image.Pt(i%g.Cols, i/g.Cols)
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) *Cell {
	return &g.cells[g.Index(x, y)]
}

// Cells exposes the backing slice in row-major order.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Len is the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Awake counts the cells that would be drawn.
func (g *Grid) Awake() int {
	n := 0
	for i := range g.cells {
		if !g.cells[i].Sleeping {
			n++
		}
	}
	return n
}
