// Gridterm-demo opens the main terminal window and draws a small dungeon
// screen into it. Clicks are routed through a Donburi world and echoed on
// the message line.
//
// Usage:
//
//	gridterm-demo [-prefs file] [-graphics manifest.toml] [-replay script.json] [-tty]
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/gridterm"
	"github.com/phanxgames/gridterm/ecs"
	"github.com/phanxgames/gridterm/graphics"
	"github.com/phanxgames/gridterm/prefs"
)

const (
	gameTitle    = "Gridterm Demo"
	maxTerminals = 8
)

type game struct {
	term  *gridterm.Window
	world donburi.World
	fps   *gridterm.FPSOverlay
	last  time.Time

	outsideW, outsideH int
}

func (g *game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now

	g.resizeToWindow()
	g.term.Update(dt)
	events.ProcessAllEvents(g.world)
	g.fps.Update(dt)
	return nil
}

// resizeToWindow matches the grid to the window after the user drags an edge.
func (g *game) resizeToWindow() {
	if g.outsideW == 0 || g.outsideH == 0 {
		return
	}
	cfg := g.term.Config()
	rows, cols := cfg.GridForContentSize(float64(g.outsideW), float64(g.outsideH))
	if rows == cfg.Rows && cols == cfg.Columns {
		return
	}
	g.term.Resize(rows, cols)
	drawDungeon(g.term)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.term.Draw(screen)
	g.fps.Draw(screen)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.outsideW, g.outsideH = outsideW, outsideH
	return outsideW, outsideH
}

func main() {
	prefsPath := flag.String("prefs", "gridterm-prefs.json", "preferences file")
	manifestPath := flag.String("graphics", "", "graphics manifest (TOML)")
	replayPath := flag.String("replay", "", "replay script (JSON)")
	tty := flag.Bool("tty", false, "draw in the terminal instead of a window")
	debug := flag.Bool("debug", false, "enable debug logging and checks")
	flag.Parse()

	gridterm.SetDebugMode(*debug)

	store, err := prefs.Load(*prefsPath)
	if err != nil {
		log.Fatal(err)
	}
	fonts := gridterm.NewFontRegistry()
	if err := gridterm.RegisterDefaults(store, gridterm.FontDescriptor{Name: gridterm.DefaultFontName, Size: gridterm.DefaultFontSize}, maxTerminals); err != nil {
		log.Fatal(err)
	}
	cfg, err := gridterm.RestoreTermConfig(store, gridterm.MainTermIndex, fonts)
	if err != nil {
		log.Fatal(err)
	}

	world := donburi.NewWorld()

	if *tty {
		if err := runTTY(cfg, world); err != nil {
			log.Fatal(err)
		}
		return
	}

	font, err := fonts.Load(cfg.Font)
	if err != nil {
		log.Fatal(err)
	}
	term := gridterm.NewWindow(cfg, font, gridterm.DefaultColorTable())
	term.SetCursorPulse(true, 0, 0)
	bindWorld(world, term)

	if *manifestPath != "" {
		manifest, err := graphics.Load(*manifestPath)
		if err != nil {
			log.Printf("gridterm-demo: %v", err)
		} else if err := manifest.Apply(store, term); err != nil {
			log.Printf("gridterm-demo: %v", err)
		}
	}

	drawDungeon(term)
	if *replayPath != "" {
		data, err := os.ReadFile(*replayPath)
		if err != nil {
			log.Fatal(err)
		}
		r, err := gridterm.LoadReplay(data)
		if err != nil {
			log.Fatal(err)
		}
		term.SetReplay(r)
	}

	size := cfg.PreferredContentBounds()
	ebiten.SetWindowTitle(cfg.WindowTitle(gameTitle))
	ebiten.SetWindowSize(int(size.Width), int(size.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	minW, minH := windowLimits(cfg)
	ebiten.SetWindowSizeLimits(minW, minH, -1, -1)
	gridterm.ApplyFrameRate(gridterm.FrameRateFromPreferences(store))

	g := &game{term: term, world: world, fps: gridterm.NewFPSOverlay(), last: time.Now()}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	if err := term.Config().Save(store); err != nil {
		log.Fatal(err)
	}
	if err := store.Save(); err != nil {
		log.Fatal(err)
	}
	term.Dispose()
}

// windowLimits returns the smallest window size in whole pixels.
func windowLimits(cfg gridterm.TermConfig) (minW, minH int) {
	m := cfg.WindowMinimumSize()
	return int(math.Ceil(m.X)), int(math.Ceil(m.Y))
}

// bindWorld routes the window's clicks into world and echoes each one back
// as an update on the message line.
func bindWorld(world donburi.World, term *gridterm.Window) {
	term.SetMouseSink(ecs.NewDonburiSink(world))
	ecs.BindUpdates(world, term)
	ecs.MouseEventType.Subscribe(world, func(w donburi.World, e gridterm.MouseEvent) {
		msg := fmt.Sprintf("click %d at (%d, %d) code %#x", e.Button, e.Col, e.Row, e.Code())
		ecs.PublishUpdate(w, e.Term, gridterm.WipeRun(0, 0, term.Config().Columns, nil, nil))
		ecs.PublishUpdate(w, e.Term, gridterm.TextRun(0, 0, msg, 1))
	})
}

// Colour attributes of the stock palette.
const (
	attrWhite  = 1
	attrGray   = 2
	attrRed    = 4
	attrYellow = 11
)

// drawDungeon paints a sidebar, a walled room and the player.
func drawDungeon(term *gridterm.Window) {
	cfg := term.Config()
	updates := []gridterm.Update{
		gridterm.Clear(),
		gridterm.TextRun(0, 0, "Welcome to the dungeon.", attrWhite),
		gridterm.TextRun(0, 2, "Human", attrWhite),
		gridterm.TextRun(0, 3, "Warrior", attrWhite),
		gridterm.TextRun(0, 5, "HP   12/12", attrRed),
		gridterm.TextRun(0, 6, "AU     120", attrYellow),
	}

	left, top := gridterm.MainTermInset.Left+2, 3
	right, bottom := min(left+30, cfg.Columns-1), min(top+12, cfg.Rows-2)
	for y := top; y <= bottom; y++ {
		n := right - left + 1
		chars := make([]rune, n)
		attrs := make([]int, n)
		for i := range chars {
			chars[i] = '.'
			if y == top || y == bottom || i == 0 || i == n-1 {
				chars[i] = '#'
			}
			attrs[i] = attrGray
		}
		updates = append(updates, gridterm.Update{
			Kind: gridterm.UpdateTile, X: left, Y: y, Count: n,
			FeatureChars: chars, FeatureAttrs: attrs,
			TerrainChars: chars, TerrainAttrs: attrs,
		})
	}
	px, py := (left+right)/2, (top+bottom)/2
	updates = append(updates,
		gridterm.TileRun(px, py, []rune{'@'}, []int{attrWhite}, []rune{'.'}, []int{attrGray}),
	)
	if err := term.ApplyAll(updates); err != nil {
		log.Printf("gridterm-demo: %v", err)
	}
	term.HandleCursor(gridterm.UpdateInfo{X: px, Y: py, Count: 1})
}
