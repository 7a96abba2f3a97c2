package bonk

import (
	"image"
	"math"
	"time"

	"github.com/iburimskiy/bonk-grid/internal/config"
	"gonum.org/v1/gonum/spatial/r2"
)

// Params are the tunables of a World.
type Params struct {
	Cols, Rows     int
	Gap            float64
	LayoutDivisor  float64
	LookupDivisor  float64
	DecayRate      float64
	SleepThreshold float64
	SpeedLimit     float64
	HueRate        float64
}

// DefaultParams mirrors the built-in configuration constants.
func DefaultParams() Params {
	return Params{
		Cols:           config.RectCountX,
		Rows:           config.RectCountY,
		Gap:            config.RectGap,
		LayoutDivisor:  config.LayoutDivisor,
		LookupDivisor:  config.LookupDivisor,
		DecayRate:      config.DecayRate,
		SleepThreshold: config.SleepThreshold,
		SpeedLimit:     config.SpeedLimit,
		HueRate:        config.HueRate,
	}
}

// ParamsFromConfig extracts the grid tunables from a loaded config.
func ParamsFromConfig(c *config.Config) Params {
	return Params{
		Cols:           c.Grid.Cols,
		Rows:           c.Grid.Rows,
		Gap:            c.Grid.Gap,
		LayoutDivisor:  c.Grid.LayoutDivisor,
		LookupDivisor:  c.Grid.LookupDivisor,
		DecayRate:      c.Bonk.DecayRate,
		SleepThreshold: c.Bonk.SleepThreshold,
		SpeedLimit:     c.Bonk.SpeedLimit,
		HueRate:        c.Bonk.HueRate,
	}
}

// Input is what a host reports each tick.
type Input struct {
	Now           time.Time
	Width, Height float64
	Mouse         r2.Vec // window-centred, y up
}

// World is the grid plus the frame and cursor state carried between ticks.
type World struct {
	params Params
	grid   *Grid

	prevTime, curTime   time.Time
	elapsed             float64 // ms
	prevMouse, curMouse r2.Vec
	speed               float64 // px/ms
	focused             image.Point
	colorPos            float64

	frame Frame
}

// New creates a world whose first tick measures elapsed time from now.
func New(p Params, now time.Time) *World {
	return &World{
		params:   p,
		grid:     NewGrid(p.Cols, p.Rows),
		prevTime: now,
		curTime:  now,
		frame:    Frame{Clear: Background},
	}
}

// Grid returns the cell grid.
func (w *World) Grid() *Grid { return w.grid }

// Params returns the tunables the world was built with.
func (w *World) Params() Params { return w.params }

// Speed is the cursor speed of the last tick in px/ms.
func (w *World) Speed() float64 { return w.speed }

// Elapsed is the length of the last tick in ms.
func (w *World) Elapsed() float64 { return w.elapsed }

// ColorPos is the hue accumulator after the last tick.
func (w *World) ColorPos() float64 { return w.colorPos }

// Focused is the cell under the cursor on the last tick.
func (w *World) Focused() image.Point { return w.focused }

// Mouse returns the cursor positions of the last two ticks.
func (w *World) Mouse() (prev, cur r2.Vec) { return w.prevMouse, w.curMouse }

// Step advances the world by one tick and reports whether a cell was bonked.
func (w *World) Step(in Input) bool {
	w.prevTime, w.curTime = w.curTime, in.Now
	w.elapsed = float64(w.curTime.Sub(w.prevTime)) / float64(time.Millisecond)
	if w.elapsed < 0 {
		w.elapsed = 0
	}

	w.prevMouse, w.curMouse = w.curMouse, in.Mouse
	w.speed = MouseSpeed(w.prevMouse, w.curMouse, w.elapsed)

	w.updateCells(in.Width, in.Height)

	w.colorPos = wrapHue(w.colorPos + w.speed*w.params.HueRate)

	cur := w.CellAt(in.Mouse, in.Width, in.Height)
	bonked := cur != w.focused
	w.focused = cur
	if bonked {
		c := w.grid.At(cur.X, cur.Y)
		c.Excitement = SpeedPercent(w.speed, w.params.SpeedLimit)
		c.Hue = w.colorPos
		c.Sleeping = false
	}
	return bonked
}

// updateCells lays every cell out for the current window size and decays it.
func (w *World) updateCells(width, height float64) {
	p := w.params
	cellW := width / float64(p.Cols)
	cellH := height / float64(p.Rows)
	offX := width / p.LayoutDivisor
	offY := height / p.LayoutDivisor
	keep := 1 - p.DecayRate

	cells := w.grid.Cells()
	for i := range cells {
		c := &cells[i]
		x, y := i%p.Cols, i/p.Cols

		c.Center = r2.Vec{X: float64(x)*cellW - offX, Y: float64(y)*cellH - offY}
		c.Size = r2.Vec{X: cellW - p.Gap, Y: cellH - p.Gap}

		if c.Excitement > 0 {
			c.Excitement *= keep
		} else {
			c.Excitement = 0
		}
		if c.Excitement < p.SleepThreshold && !c.Sleeping {
			c.Sleeping = true
		}
	}
}

// MouseSpeed returns the cursor speed in px/ms. A zero interval yields 0.
func MouseSpeed(prev, cur r2.Vec, elapsedMs float64) float64 {
	if elapsedMs <= 0 {
		return 0
	}
	s := r2.Norm(r2.Sub(cur, prev)) / elapsedMs
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return s
}

// SpeedPercent maps a speed to a bonk excitement in [0, 1].
// The limit is applied twice; with the default limit of 1 this is min(speed, 1).
func SpeedPercent(speed, limit float64) float64 {
	return math.Min(speed/limit, limit) / limit
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
