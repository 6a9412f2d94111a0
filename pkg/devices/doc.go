// Package devices provides small stateful devices and the reversible
// commands that drive them.
//
// Every command captures the device state when it is applied and restores
// exactly that state on revert, so undoing a command is a true inverse even
// when the command did not change anything (turning on a light that was
// already on).
//
// Devices guard their state with a mutex and can be shared between
// goroutines.
package devices
