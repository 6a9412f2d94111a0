// Package actionlog records executed reversible actions and undoes them in
// reverse order.
//
// A [Log] has a fixed capacity. Executing an action applies it and pushes it
// to the front of the history; when the history is full the oldest entry is
// dropped without being reverted, so only the most recent Capacity() actions
// can ever be undone.
//
//	light := devices.NewLight("hall")
//	history, _ := actionlog.New(2)
//	_ = history.Execute(devices.LightOn(light))
//	_, _ = history.UndoLast() // light is off again
//
// All methods are safe for concurrent use. Apply and Revert run while the log
// is locked, so they must not call back into the same Log.
package actionlog
