package screen

import (
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arbor"
)

// Grower is what a Game grows: a single *arbor.Tree or a whole forest.
type Grower interface {
	Start(now time.Duration)
	Tick(s arbor.Surface, now time.Duration) arbor.FrameStats
	Done(now time.Duration) bool
}

// Game drives one Grower and its ground layer inside an Ebitengine window.
// It implements ebiten.Game: every Draw ticks the ground and then the tree.
type Game struct {
	tree   Grower
	ground *arbor.Ground

	canvas *arbor.Canvas
	sink   *sink
	width  int
	height int
	frame  int

	start time.Time
	now   func() time.Time

	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool
	// Debug prints a frame summary to stderr every frame.
	Debug bool
	// OnFrame, if set, receives the stats of every tree tick.
	OnFrame func(arbor.FrameStats)
	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	log             *slog.Logger
	script          *Script
	screenshotQueue []string
	quit            bool
}

// NewGame returns a game that grows tree over ground. A nil ground leaves
// the grass out.
func NewGame(tree Grower, ground *arbor.Ground, log *slog.Logger) *Game {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := newSink()
	return &Game{
		tree:          tree,
		ground:        ground,
		sink:          s,
		canvas:        arbor.NewCanvas(s, 0, 0),
		now:           time.Now,
		ScreenshotDir: "screenshots",
		log:           log,
	}
}

// SetScript attaches a frame script. Its steps run from Update.
func (g *Game) SetScript(s *Script) {
	g.script = s
}

// Screenshot queues a labeled capture of the next drawn frame.
func (g *Game) Screenshot(label string) {
	g.screenshotQueue = append(g.screenshotQueue, label)
}

// Elapsed returns the time since the first update.
func (g *Game) Elapsed() time.Duration {
	if g.start.IsZero() {
		return 0
	}
	return g.now().Sub(g.start)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.start.IsZero() {
		g.start = g.now()
		g.tree.Start(0)
	}
	g.frame++
	if g.ground != nil {
		g.ground.Update(float32(1.0 / float64(ebiten.TPS())))
	}
	if g.script != nil {
		g.script.step(g)
	}
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(arbor.BackgroundColor.RGBA())

	g.sink.target = screen
	g.canvas.Resize(float64(g.width), float64(g.height))
	g.canvas.Reset()

	if g.ground != nil {
		g.ground.Draw(g.canvas, g.frame)
	}
	stats := g.tree.Tick(g.canvas, g.Elapsed())

	if g.OnFrame != nil {
		g.OnFrame(stats)
	}
	if g.Debug {
		stats.WriteDebug(os.Stderr)
	}
	if g.ShowFPS {
		drawFPS(screen)
	}
	g.flushScreenshots(screen)
	g.sink.target = nil
}

// Layout implements ebiten.Game. The logical size follows the window, and
// a resize never touches growth progress.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.log.Debug("surface resized", "width", outsideWidth, "height", outsideHeight)
	}
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// RunConfig configures Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	ShowFPS   bool
	Resizable bool
}

// Run opens a window and runs g until the window closes or a script quits.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "arbor"
	}
	g.ShowFPS = g.ShowFPS || cfg.ShowFPS

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
