// Package domain contains the core value types and errors shared by the
// action log and the router.
//
// This package is the innermost layer of switchyard. It has no dependencies
// on logging, metrics, configuration or the CLI.
//
// # Types
//
//   - [Message]: a payload delivered to an endpoint, tagged with its [Kind]
//   - [Kind]: system notification, broadcast or directed delivery
//
// # Errors
//
// Every error condition surfaced by the public packages is one of the
// sentinel values in errors.go and can be matched with errors.Is.
package domain
