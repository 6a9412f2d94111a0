package domain

// Kind tells a receiver how a message reached it.
type Kind int

const (
	// KindSystem is a router notification: joins, leaves and delivery failures.
	KindSystem Kind = iota
	// KindBroadcast is a payload sent to every endpoint except the sender.
	KindBroadcast
	// KindDirected is a payload addressed to exactly one endpoint.
	KindDirected
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindBroadcast:
		return "broadcast"
	case KindDirected:
		return "directed"
	default:
		return "unknown"
	}
}

// Message is a single delivery to an endpoint.
type Message struct {
	// Kind distinguishes system notifications from broadcast and directed payloads.
	Kind Kind

	// From is the sender name. Empty for system notifications.
	From string

	// To is the recipient name for directed messages, empty otherwise.
	To string

	// Payload is the text being delivered.
	Payload string

	// Subject names the endpoint a system notification is about
	// (the one that joined or left, or the missing recipient).
	Subject string

	// Err is set on system notifications that report a failure,
	// e.g. ErrRecipientNotFound.
	Err error
}

// IsSystem reports whether the message is a router notification.
func (m Message) IsSystem() bool {
	return m.Kind == KindSystem
}
