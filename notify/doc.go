// Package notify is a small publish/subscribe hub for store events.
//
// Hooks subscribe to an event name and are called synchronously, in
// subscription order, for every matching event:
//
//	hub := notify.NewHub()
//	unsubscribe := hub.Subscribe(notify.EventNotesChanged, notify.HookFunc(
//		func(ctx context.Context, ev notify.Event) error {
//			redraw()
//			return nil
//		}))
//	defer unsubscribe()
//
// Subscribing with the empty name receives every event.
package notify
