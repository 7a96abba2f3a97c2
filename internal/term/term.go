// Package term hosts the bonk grid in a terminal. Each character cell stands
// in for a block of pixels so cursor speeds match the windowed host.
package term

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/bonk-grid/internal/bonk"
	"github.com/iburimskiy/bonk-grid/internal/config"
)

// Nominal pixel size of one character cell.
const (
	charWidth  = 8
	charHeight = 16
)

var background = tcell.StyleDefault.Background(tcell.ColorBlack)

// Host drives a World from terminal mouse events and paints it with tcell.
type Host struct {
	screen tcell.Screen
	world  *bonk.World
	log    *slog.Logger
	now    func() time.Time
	tick   time.Duration

	cols, rows int    // screen size in characters
	mouse      r2.Vec // last cursor position, centred pixels
}

// Open initializes the terminal and returns a host drawing to it.
func Open(cfg *config.Config, logger *slog.Logger) (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, cfg, logger), nil
}

// New wraps an initialized screen.
func New(screen tcell.Screen, cfg *config.Config, logger *slog.Logger) *Host {
	return newHost(screen, cfg, logger, time.Now)
}

func newHost(screen tcell.Screen, cfg *config.Config, logger *slog.Logger, now func() time.Time) *Host {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(background)

	h := &Host{
		screen: screen,
		world:  bonk.New(bonk.ParamsFromConfig(cfg), now()),
		log:    logger,
		now:    now,
		tick:   time.Second / time.Duration(cfg.Window.TPS),
	}
	h.resize()
	return h
}

// Close restores the terminal.
func (h *Host) Close() {
	h.screen.Fini()
}

// Run drives the grid until the user quits or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.step(h.now())
			h.draw()
		}
	}
}

// handle applies one terminal event and reports whether to keep running.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return false
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		w, hgt := h.pixelSize()
		h.mouse = r2.Vec{
			X: (float64(x)+0.5)*charWidth - w/2,
			Y: hgt/2 - (float64(y)+0.5)*charHeight,
		}
	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
	return true
}

func (h *Host) resize() {
	h.cols, h.rows = h.screen.Size()
	h.log.Debug("terminal size", "cols", h.cols, "rows", h.rows)
}

func (h *Host) pixelSize() (float64, float64) {
	return float64(h.cols * charWidth), float64(h.rows * charHeight)
}

func (h *Host) step(now time.Time) {
	w, hgt := h.pixelSize()
	if h.world.Step(bonk.Input{Now: now, Width: w, Height: hgt, Mouse: h.mouse}) {
		h.log.Debug("bonk",
			"cell", h.world.Focused(),
			"speed", h.world.Speed(),
			"hue", h.world.ColorPos())
	}
}

// draw paints every character whose centre falls inside an awake cell.
func (h *Host) draw() {
	f := h.world.Frame()
	h.screen.Fill(' ', background)

	w, hgt := h.pixelSize()
	for _, r := range f.Rects {
		if r.Size.X <= 0 || r.Size.Y <= 0 {
			continue
		}
		left := w/2 + r.Center.X - r.Size.X/2
		top := hgt/2 - r.Center.Y - r.Size.Y/2
		c0, c1 := charSpan(left, r.Size.X, charWidth, h.cols)
		r0, r1 := charSpan(top, r.Size.Y, charHeight, h.rows)

		style := background.Background(toTcell(r.Color))
		for y := r0; y < r1; y++ {
			for x := c0; x < c1; x++ {
				h.screen.SetContent(x, y, ' ', nil, style)
			}
		}
	}
	h.screen.Show()
}

// charSpan returns the half-open range of characters whose centres lie in
// [start, start+length) pixels, clipped to [0, limit).
func charSpan(start, length float64, char, limit int) (int, int) {
	first := int(math.Ceil(start/float64(char) - 0.5))
	end := int(math.Ceil((start+length)/float64(char) - 0.5))
	return max(first, 0), min(end, limit)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
