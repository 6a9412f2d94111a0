package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_TOML(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "undo.toml"))
	require.NoError(t, err)

	assert.Equal(t, 2, sc.Capacity)
	assert.Equal(t, []Device{{Name: "hall", Kind: "light"}}, sc.Devices)
	require.Len(t, sc.Steps, 6)
	assert.Equal(t, Step{Op: OpExecute, Device: "hall", Command: "on"}, sc.Steps[0])
	assert.Equal(t, Step{Op: OpUndoN, N: 5}, sc.Steps[3])
}

func TestLoad_YAML(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "chat.yaml"))
	require.NoError(t, err)

	assert.Zero(t, sc.Capacity)
	assert.Empty(t, sc.Devices)
	require.Len(t, sc.Steps, 10)
	assert.Equal(t, Step{Op: OpSend, Endpoint: "bob", To: "cathy", Payload: "hi cathy"}, sc.Steps[4])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		format string
		data   string
	}{
		{"unsupported format", "json", `{}`},
		{"malformed toml", "toml", `capacity = `},
		{"malformed yaml", "yaml", "steps: [\n"},
		{"negative capacity", "toml", `capacity = -1`},
		{"unknown op", "yaml", "steps:\n  - {op: explode}\n"},
		{"unknown device kind", "yaml", "devices:\n  - {name: x, kind: toaster}\n"},
		{"nameless device", "yaml", "devices:\n  - {kind: light}\n"},
		{"duplicate device", "yaml", "devices:\n  - {name: x, kind: light}\n  - {name: x, kind: door}\n"},
		{"undeclared device", "yaml", "steps:\n  - {op: execute, device: hall, command: on}\n"},
		{"bad command for kind", "yaml", "devices:\n  - {name: front, kind: door}\nsteps:\n  - {op: execute, device: front, command: on}\n"},
		{"send without endpoint", "yaml", "steps:\n  - {op: send, payload: hi}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestParse_FormatIsCaseInsensitive(t *testing.T) {
	_, err := Parse([]byte("capacity: 3\n"), "YML")
	assert.NoError(t, err)
}
