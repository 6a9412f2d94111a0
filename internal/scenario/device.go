package scenario

import (
	"fmt"

	"github.com/bft-labs/switchyard/pkg/devices"
)

// device adapts a concrete device to the scenario runner.
type device interface {
	command(name string, value int) *devices.Command
	status() string
}

func newDevice(d Device) device {
	switch d.Kind {
	case "light":
		return light{devices.NewLight(d.Name)}
	case "door":
		return door{devices.NewDoor(d.Name)}
	case "thermostat":
		return thermostat{devices.NewThermostat(d.Name)}
	case "tv":
		return tv{devices.NewTV(d.Name)}
	}
	return nil
}

type light struct{ *devices.Light }

func (l light) command(name string, _ int) *devices.Command {
	if name == "on" {
		return devices.LightOn(l.Light)
	}
	return devices.LightOff(l.Light)
}

func (l light) status() string {
	return fmt.Sprintf("%s: %s", l.Name(), onOff(l.IsOn()))
}

type door struct{ *devices.Door }

func (d door) command(name string, _ int) *devices.Command {
	if name == "open" {
		return devices.DoorOpen(d.Door)
	}
	return devices.DoorClose(d.Door)
}

func (d door) status() string {
	if d.IsOpen() {
		return d.Name() + ": open"
	}
	return d.Name() + ": closed"
}

type thermostat struct{ *devices.Thermostat }

func (t thermostat) command(_ string, value int) *devices.Command {
	return devices.SetTemperature(t.Thermostat, value)
}

func (t thermostat) status() string {
	return fmt.Sprintf("%s: %d°C", t.Name(), t.Temperature())
}

type tv struct{ *devices.TV }

func (t tv) command(name string, value int) *devices.Command {
	switch name {
	case "on":
		return devices.TVPowerOn(t.TV)
	case "off":
		return devices.TVPowerOff(t.TV)
	default:
		return devices.TVChannel(t.TV, value)
	}
}

func (t tv) status() string {
	return fmt.Sprintf("%s: %s, channel %d", t.Name(), onOff(t.IsOn()), t.Channel())
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
