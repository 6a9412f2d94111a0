package devices

import (
	"fmt"
	"sync"
)

// TV has a power switch and a channel.
type TV struct {
	name    string
	mu      sync.Mutex
	on      bool
	channel int
}

// NewTV returns a TV that is off and tuned to channel 1.
func NewTV(name string) *TV {
	return &TV{name: name, channel: 1}
}

// Name returns the TV's name.
func (tv *TV) Name() string { return tv.name }

// IsOn reports whether the TV is on.
func (tv *TV) IsOn() bool {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	return tv.on
}

// Channel returns the current channel.
func (tv *TV) Channel() int {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	return tv.channel
}

func (tv *TV) setPower(on bool) (prev bool) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	prev, tv.on = tv.on, on
	return prev
}

func (tv *TV) setChannel(ch int) (prev int) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	prev, tv.channel = tv.channel, ch
	return prev
}

// TVPowerOn returns a command that turns tv on.
func TVPowerOn(tv *TV) *Command {
	return switchCommand(tv.name+" power on", tv.setPower, true)
}

// TVPowerOff returns a command that turns tv off.
func TVPowerOff(tv *TV) *Command {
	return switchCommand(tv.name+" power off", tv.setPower, false)
}

// TVChannel returns a command that tunes tv to ch.
func TVChannel(tv *TV, ch int) *Command {
	var prev int
	return &Command{
		label:  fmt.Sprintf("%s channel %d", tv.name, ch),
		apply:  func() { prev = tv.setChannel(ch) },
		revert: func() { tv.setChannel(prev) },
	}
}
