package game

import (
	"image"
	"io"
	"log/slog"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/bonk-grid/internal/config"
)

func newTestGame(t *testing.T) (*Game, *time.Time) {
	t.Helper()
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 360, 360
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g := NewGame(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	g.now = func() time.Time { return clock }
	return g, &clock
}

func TestToWorld(t *testing.T) {
	tests := []struct {
		x, y int
		w, h float64
		want r2.Vec
	}{
		{0, 0, 360, 240, r2.Vec{X: -180, Y: 120}},
		{180, 120, 360, 240, r2.Vec{}},
		{360, 240, 360, 240, r2.Vec{X: 180, Y: -120}},
		{10, 200, 100, 100, r2.Vec{X: -40, Y: -150}},
	}
	for _, tt := range tests {
		if got := toWorld(tt.x, tt.y, tt.w, tt.h); got != tt.want {
			t.Errorf("toWorld(%d, %d, %v, %v) = %v, want %v", tt.x, tt.y, tt.w, tt.h, got, tt.want)
		}
	}
}

func TestToScreen(t *testing.T) {
	x, y, w, h, ok := toScreen(r2.Vec{X: -10, Y: 20}, r2.Vec{X: 8, Y: 6}, 200, 100)
	if !ok {
		t.Fatal("expected a drawable rect")
	}
	if x != 86 || y != 27 || w != 8 || h != 6 {
		t.Errorf("toScreen = (%v, %v, %v, %v), want (86, 27, 8, 6)", x, y, w, h)
	}

	if _, _, _, _, ok := toScreen(r2.Vec{}, r2.Vec{X: -0.5, Y: 3}, 200, 100); ok {
		t.Error("negative width should not be drawable")
	}
}

func TestTickBonksUnderCursor(t *testing.T) {
	g, clock := newTestGame(t)

	*clock = clock.Add(16 * time.Millisecond)
	// screen (180-113, 180+113) is about 160px down-left of centre
	g.tick(67, 293)

	if got := g.world.Focused(); got != image.Pt(5, 5) {
		t.Fatalf("Focused = %v, want (5,5)", got)
	}
	if c := g.world.Grid().At(5, 5); c.Sleeping || c.Excitement != 1 {
		t.Errorf("cell (5,5) = %+v, want awake at full excitement", *c)
	}
	if n := len(g.world.Frame().Rects); n != 1 {
		t.Errorf("frame has %d rects, want 1", n)
	}
}

func TestLayoutTracksResize(t *testing.T) {
	g, clock := newTestGame(t)

	if w, h := g.Layout(800, 600); w != 800 || h != 600 {
		t.Fatalf("Layout = %d, %d", w, h)
	}
	*clock = clock.Add(16 * time.Millisecond)
	g.tick(400, 300)

	c := g.world.Grid().At(0, 0)
	cellW, cellH := 800.0, 600.0
	cellW /= 30
	cellH /= 30
	wantSize := r2.Vec{X: cellW - 1, Y: cellH - 1}
	if c.Size != wantSize {
		t.Errorf("cell size = %v, want %v", c.Size, wantSize)
	}
}
