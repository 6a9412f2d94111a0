package devices

import "sync"

// Door can be opened and closed.
type Door struct {
	name string
	mu   sync.Mutex
	open bool
}

// NewDoor returns a closed door.
func NewDoor(name string) *Door {
	return &Door{name: name}
}

// Name returns the door's name.
func (d *Door) Name() string { return d.name }

// IsOpen reports whether the door is open.
func (d *Door) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Door) set(open bool) (prev bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev, d.open = d.open, open
	return prev
}

// DoorOpen returns a command that opens d.
func DoorOpen(d *Door) *Command {
	return switchCommand(d.name+" open", d.set, true)
}

// DoorClose returns a command that closes d.
func DoorClose(d *Door) *Command {
	return switchCommand(d.name+" close", d.set, false)
}
