package ecs

import (
	"log"

	"github.com/phanxgames/gridterm"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MouseEventType is the Donburi event type for mouse presses mapped to cells.
var MouseEventType = events.NewEventType[gridterm.MouseEvent]()

// UpdateEventType is the Donburi event type for grid updates addressed to a
// terminal.
var UpdateEventType = events.NewEventType[TermUpdate]()

// TermUpdate is a grid update for the terminal with index Term.
type TermUpdate struct {
	Term   int
	Update gridterm.Update
}

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a MouseSink that publishes to MouseEventType.
// Events are queued until the world processes them.
func NewDonburiSink(world donburi.World) gridterm.MouseSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) OnMouse(e gridterm.MouseEvent) {
	MouseEventType.Publish(s.world, e)
}

// BindUpdates subscribes w to UpdateEventType. Updates for other terminals
// are ignored; rejected updates are logged.
func BindUpdates(world donburi.World, w *gridterm.Window) {
	UpdateEventType.Subscribe(world, func(_ donburi.World, u TermUpdate) {
		if u.Term != w.Config().Index {
			return
		}
		if err := w.Apply(u.Update); err != nil {
			log.Printf("gridterm/ecs: term %d: %v", u.Term, err)
		}
	})
}

// PublishUpdate queues an update for a terminal.
func PublishUpdate(world donburi.World, term int, u gridterm.Update) {
	UpdateEventType.Publish(world, TermUpdate{Term: term, Update: u})
}
