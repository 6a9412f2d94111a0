package domain

import "errors"

// Action log errors.
var (
	// ErrNilAction is returned when Execute is called without an action.
	ErrNilAction = errors.New("switchyard: nil action")

	// ErrEmptyHistory is returned when there is nothing left to undo.
	ErrEmptyHistory = errors.New("switchyard: empty history")

	// ErrInvalidCapacity is returned when an action log is built with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("switchyard: capacity must be positive")
)

// Router and endpoint errors.
var (
	// ErrDuplicateName is returned when registering a name that is already taken.
	ErrDuplicateName = errors.New("switchyard: duplicate endpoint name")

	// ErrNotConnected is returned when an endpoint with no router tries to send.
	ErrNotConnected = errors.New("switchyard: endpoint not connected")

	// ErrSenderNotRegistered is returned when the sender is not the endpoint
	// currently registered under its name.
	ErrSenderNotRegistered = errors.New("switchyard: sender not registered")

	// ErrRecipientNotFound is delivered to the sender (not returned) when a
	// directed message names an unknown endpoint.
	ErrRecipientNotFound = errors.New("switchyard: recipient not found")

	// ErrNilEndpoint is returned when a nil endpoint is passed to the router.
	ErrNilEndpoint = errors.New("switchyard: nil endpoint")

	// ErrInvalidName is returned when an endpoint has an empty name.
	ErrInvalidName = errors.New("switchyard: invalid endpoint name")

	// ErrAlreadyBound is returned when an endpoint is registered while still
	// bound to another router.
	ErrAlreadyBound = errors.New("switchyard: endpoint bound to another router")
)

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("switchyard: invalid configuration")
