// Package scenario loads scripted sessions against a switchyard core and
// runs them into a transcript.
//
// A scenario declares a history capacity, a set of devices and an ordered
// list of steps. Steps that fail (undo on an empty history, a send from a
// disconnected endpoint) are written to the transcript and the run goes on;
// only a malformed scenario is an error.
package scenario
