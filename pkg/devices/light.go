package devices

import "sync"

// Light is a switchable lamp.
type Light struct {
	name string
	mu   sync.Mutex
	on   bool
}

// NewLight returns a light that starts off.
func NewLight(name string) *Light {
	return &Light{name: name}
}

// Name returns the light's name.
func (l *Light) Name() string { return l.name }

// IsOn reports whether the light is on.
func (l *Light) IsOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

func (l *Light) set(on bool) (prev bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev, l.on = l.on, on
	return prev
}

// LightOn returns a command that switches l on.
func LightOn(l *Light) *Command {
	return switchCommand(l.name+" on", l.set, true)
}

// LightOff returns a command that switches l off.
func LightOff(l *Light) *Command {
	return switchCommand(l.name+" off", l.set, false)
}
