package actionlog

// ReversibleAction is an operation paired with its inverse.
// Revert must undo the most recent Apply of the same value; the log assumes
// this and never checks it.
type ReversibleAction interface {
	Apply()
	Revert()
}

// Namer is implemented by actions that want a readable name in logs.
type Namer interface {
	Name() string
}

// Func builds a ReversibleAction from two closures. Nil closures are no-ops.
type Func struct {
	Label    string
	ApplyFn  func()
	RevertFn func()
}

// Apply calls ApplyFn.
func (f *Func) Apply() {
	if f != nil && f.ApplyFn != nil {
		f.ApplyFn()
	}
}

// Revert calls RevertFn.
func (f *Func) Revert() {
	if f != nil && f.RevertFn != nil {
		f.RevertFn()
	}
}

// Name returns the label.
func (f *Func) Name() string {
	if f == nil {
		return ""
	}
	return f.Label
}

// NewFunc returns a named action built from apply and revert.
func NewFunc(label string, apply, revert func()) *Func {
	return &Func{Label: label, ApplyFn: apply, RevertFn: revert}
}

// NameOf returns the action's name, or "anonymous".
func NameOf(a ReversibleAction) string {
	if n, ok := a.(Namer); ok && n.Name() != "" {
		return n.Name()
	}
	return "anonymous"
}
