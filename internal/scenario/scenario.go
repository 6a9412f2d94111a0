package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned for scenarios that cannot be run.
var ErrInvalidScenario = errors.New("scenario: invalid")

// Step operations.
const (
	OpExecute    = "execute"
	OpUndo       = "undo"
	OpUndoN      = "undo_n"
	OpRegister   = "register"
	OpUnregister = "unregister"
	OpSend       = "send"
	OpStatus     = "status"
)

// Scenario is a scripted session.
type Scenario struct {
	// Capacity overrides the configured history capacity when positive.
	Capacity int      `toml:"capacity" yaml:"capacity"`
	Devices  []Device `toml:"devices" yaml:"devices"`
	Steps    []Step   `toml:"steps" yaml:"steps"`
}

// Device declares a named device of a given kind: light, door, thermostat or tv.
type Device struct {
	Name string `toml:"name" yaml:"name"`
	Kind string `toml:"kind" yaml:"kind"`
}

// Step is one operation. Which fields matter depends on Op.
type Step struct {
	Op string `toml:"op" yaml:"op"`

	// execute
	Device  string `toml:"device" yaml:"device"`
	Command string `toml:"command" yaml:"command"`
	Value   int    `toml:"value" yaml:"value"`

	// undo_n
	N int `toml:"n" yaml:"n"`

	// register, unregister, send
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
	To       string `toml:"to" yaml:"to"`
	Payload  string `toml:"payload" yaml:"payload"`
}

// Load reads a scenario file. The format follows the extension: .toml,
// .yaml or .yml.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Parse decodes and validates a scenario in the given format.
func Parse(data []byte, format string) (*Scenario, error) {
	var sc Scenario
	switch strings.ToLower(format) {
	case "toml":
		if err := toml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidScenario, format)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks device declarations and every step.
func (sc *Scenario) Validate() error {
	if sc.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidScenario, sc.Capacity)
	}

	kinds := make(map[string]string, len(sc.Devices))
	for _, d := range sc.Devices {
		if d.Name == "" {
			return fmt.Errorf("%w: device without a name", ErrInvalidScenario)
		}
		if _, dup := kinds[d.Name]; dup {
			return fmt.Errorf("%w: device %q declared twice", ErrInvalidScenario, d.Name)
		}
		if _, ok := commandSets[d.Kind]; !ok {
			return fmt.Errorf("%w: device %q has unknown kind %q", ErrInvalidScenario, d.Name, d.Kind)
		}
		kinds[d.Name] = d.Kind
	}

	for i, st := range sc.Steps {
		if err := st.validate(kinds); err != nil {
			return fmt.Errorf("%w: step %d (%s): %s", ErrInvalidScenario, i+1, st.Op, err)
		}
	}
	return nil
}

func (st Step) validate(kinds map[string]string) error {
	switch st.Op {
	case OpExecute:
		kind, ok := kinds[st.Device]
		if !ok {
			return fmt.Errorf("unknown device %q", st.Device)
		}
		if !commandSets[kind][st.Command] {
			return fmt.Errorf("%s has no command %q", kind, st.Command)
		}
	case OpUndo, OpUndoN, OpStatus:
	case OpRegister, OpUnregister, OpSend:
		if st.Endpoint == "" {
			return errors.New("endpoint is required")
		}
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// commandSets lists the commands each device kind accepts.
var commandSets = map[string]map[string]bool{
	"light":      {"on": true, "off": true},
	"door":       {"open": true, "close": true},
	"thermostat": {"set": true},
	"tv":         {"on": true, "off": true, "channel": true},
}
