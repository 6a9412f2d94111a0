package devices

import (
	"fmt"
	"sync"
)

// DefaultTemperature is the setpoint of a new thermostat, in °C.
const DefaultTemperature = 20

// Thermostat holds a temperature setpoint.
type Thermostat struct {
	name string
	mu   sync.Mutex
	temp int
}

// NewThermostat returns a thermostat set to DefaultTemperature.
func NewThermostat(name string) *Thermostat {
	return &Thermostat{name: name, temp: DefaultTemperature}
}

// Name returns the thermostat's name.
func (t *Thermostat) Name() string { return t.name }

// Temperature returns the current setpoint.
func (t *Thermostat) Temperature() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.temp
}

func (t *Thermostat) set(temp int) (prev int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev, t.temp = t.temp, temp
	return prev
}

// SetTemperature returns a command that changes the setpoint to temp.
func SetTemperature(t *Thermostat, temp int) *Command {
	var prev int
	return &Command{
		label:  fmt.Sprintf("%s set %d", t.name, temp),
		apply:  func() { prev = t.set(temp) },
		revert: func() { t.set(prev) },
	}
}
