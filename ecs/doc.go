// Package ecs bridges gridterm windows and a [Donburi] world.
//
// [NewDonburiSink] publishes accepted mouse presses as typed events;
// subscribe to [MouseEventType] in your systems to receive them.
// [BindUpdates] goes the other way: systems publish [gridterm.Update]
// values to [UpdateEventType] and they are applied to a window when the
// world processes its events.
//
// Usage:
//
//	window.SetMouseSink(ecs.NewDonburiSink(world))
//	ecs.BindUpdates(world, window)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
