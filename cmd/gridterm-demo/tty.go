package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/gridterm"
	"github.com/phanxgames/gridterm/ecs"
	"github.com/phanxgames/gridterm/tcellterm"
)

// runTTY draws the main terminal with tcell until Escape or q is pressed.
func runTTY(cfg gridterm.TermConfig, world donburi.World) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("gridterm-demo: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("gridterm-demo: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	colors := gridterm.DefaultColorTable()
	term := gridterm.NewWindow(cfg, nil, colors)
	r := tcellterm.New(screen, colors)
	r.Resize(term)
	bindWorld(world, term)
	drawDungeon(term)

	for {
		r.Draw(term, term.Dirty())

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
			r.Resize(term)
			drawDungeon(term)
		case *tcell.EventMouse:
			if e, ok := r.MouseEvent(term, ev); ok {
				ecs.NewDonburiSink(world).OnMouse(e)
			}
		case nil:
			return nil
		}
		events.ProcessAllEvents(world)
	}
}
