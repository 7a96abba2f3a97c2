package term

import (
	"io"
	"math"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/bonk-grid/internal/config"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newSimHost(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := newHost(screen, config.Default(), logger, func() time.Time { return t0 })
	return h, screen
}

func bgAt(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestHandleQuitKeys(t *testing.T) {
	h, _ := newSimHost(t)
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.handle(tt.ev); got != tt.want {
				t.Errorf("handle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMouseMapsToCentredPixels(t *testing.T) {
	h, _ := newSimHost(t)
	h.handle(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone))

	// 80x24 characters is 640x384 pixels; character (40, 12) is centred at (324, 200).
	if h.mouse.X != 4 || h.mouse.Y != -8 {
		t.Errorf("mouse = %v, want (4, -8)", h.mouse)
	}
}

func TestDrawPaintsBonkedCell(t *testing.T) {
	h, screen := newSimHost(t)
	h.handle(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone))
	h.step(t0.Add(16 * time.Millisecond))
	h.draw()

	if h.world.Grid().Awake() != 1 {
		t.Fatalf("awake cells = %d, want 1", h.world.Grid().Awake())
	}
	// (0, 0) to (4, -8) in 16ms
	wantExcitement := math.Sqrt(80) / 16
	if got := h.world.Grid().At(14, 14).Excitement; math.Abs(got-wantExcitement) > 1e-12 {
		t.Errorf("excitement = %v, want %v", got, wantExcitement)
	}

	// Grid cell (14, 14) covers characters 40-41 on row 11.
	for _, p := range [][2]int{{40, 11}, {41, 11}} {
		if bg := bgAt(screen, p[0], p[1]); bg == tcell.ColorBlack {
			t.Errorf("char %v not painted", p)
		}
	}
	for _, p := range [][2]int{{39, 11}, {42, 11}, {40, 12}, {40, 10}} {
		if bg := bgAt(screen, p[0], p[1]); bg != tcell.ColorBlack {
			t.Errorf("char %v painted %v, want black", p, bg)
		}
	}
}

func TestResizeEvent(t *testing.T) {
	h, screen := newSimHost(t)
	screen.SetSize(100, 40)
	if !h.handle(tcell.NewEventResize(100, 40)) {
		t.Fatal("resize should not quit")
	}
	if h.cols != 100 || h.rows != 40 {
		t.Errorf("size = %dx%d, want 100x40", h.cols, h.rows)
	}
}

func TestCharSpan(t *testing.T) {
	tests := []struct {
		start, length float64
		char, limit   int
		wantA, wantB  int
	}{
		{0, 16, 8, 10, 0, 2},
		{3, 8, 8, 10, 0, 1},
		{5, 8, 8, 10, 1, 2},
		{-20, 40, 8, 10, 0, 2},
		{70, 40, 8, 10, 9, 10},
		{10, 1, 8, 10, 1, 1},
	}
	for _, tt := range tests {
		a, b := charSpan(tt.start, tt.length, tt.char, tt.limit)
		if a != tt.wantA || b != tt.wantB {
			t.Errorf("charSpan(%v, %v) = [%d, %d), want [%d, %d)", tt.start, tt.length, a, b, tt.wantA, tt.wantB)
		}
	}
}
