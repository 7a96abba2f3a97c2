// Package game hosts the bonk grid in an ebiten window.
package game

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/bonk-grid/internal/bonk"
	"github.com/iburimskiy/bonk-grid/internal/config"
)

// Game implements ebiten.Game around a bonk.World.
type Game struct {
	world *bonk.World
	log   *slog.Logger
	now   func() time.Time

	// window size as last reported by Layout
	width, height int
}

// NewGame creates a game sized to the configured window.
func NewGame(cfg *config.Config, logger *slog.Logger) *Game {
	now := time.Now
	return &Game{
		world:  bonk.New(bonk.ParamsFromConfig(cfg), now()),
		log:    logger,
		now:    now,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.tick(mouseX, mouseY)
	return nil
}

// tick feeds one frame of input to the world.
func (g *Game) tick(mouseX, mouseY int) {
	w, h := float64(g.width), float64(g.height)
	in := bonk.Input{
		Now:    g.now(),
		Width:  w,
		Height: h,
		Mouse:  toWorld(mouseX, mouseY, w, h),
	}
	if g.world.Step(in) {
		g.log.Debug("bonk",
			"cell", g.world.Focused(),
			"speed", g.world.Speed(),
			"hue", g.world.ColorPos())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	f := g.world.Frame()
	screen.Fill(f.Clear)

	w, h := float64(g.width), float64(g.height)
	for _, r := range f.Rects {
		x, y, rw, rh, ok := toScreen(r.Center, r.Size, w, h)
		if !ok {
			continue
		}
		vector.DrawFilledRect(screen, x, y, rw, rh, r.Color, false)
	}
}

// Layout tracks the window size so the grid stretches with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.log.Debug("resize", "width", outsideWidth, "height", outsideHeight)
		g.width, g.height = outsideWidth, outsideHeight
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *slog.Logger) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)
	if !cfg.Window.CursorVisible {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	g := NewGame(cfg, logger)
	logger.Info("window open",
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"grid", [2]int{cfg.Grid.Cols, cfg.Grid.Rows})
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
