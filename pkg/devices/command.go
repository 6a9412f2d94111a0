package devices

import "github.com/bft-labs/switchyard/pkg/actionlog"

// Command is a reversible device operation. A nil or zero Command does
// nothing.
type Command struct {
	label  string
	apply  func()
	revert func()
}

var _ actionlog.ReversibleAction = (*Command)(nil)

// Apply performs the command.
func (c *Command) Apply() {
	if c != nil && c.apply != nil {
		c.apply()
	}
}

// Revert restores the state captured by the last Apply.
func (c *Command) Revert() {
	if c != nil && c.revert != nil {
		c.revert()
	}
}

// Name returns a label such as "hall on".
func (c *Command) Name() string {
	if c == nil {
		return ""
	}
	return c.label
}

func switchCommand(label string, set func(bool) bool, to bool) *Command {
	var prev bool
	return &Command{
		label:  label,
		apply:  func() { prev = set(to) },
		revert: func() { set(prev) },
	}
}
