package harness

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/log_entries.yaml")
	require.NoError(t, err)

	assert.Equal(t, "log_entries", scenario.Name)
	assert.Equal(t, "2015-06-15 14:09:00", scenario.Clock.Start)
	assert.Equal(t, time.Minute, scenario.Clock.Step)
	assert.Equal(t, "written in the editor", scenario.Editor)
	require.Len(t, scenario.Setup, 1)
	require.Len(t, scenario.Flow, 6)
	assert.Equal(t, OpSearch, scenario.Flow[5].Op)
	assert.True(t, scenario.Flow[5].Fold)
	require.NotNil(t, scenario.Flow[3].Expect)
	require.NotNil(t, scenario.Flow[3].Expect.Found)
	assert.True(t, *scenario.Flow[3].Expect.Found)
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
flow:
  - op: list
assertions:
  - type: count
    count: 0
`), 0o644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "s", scenario.Name)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: d\nflow: [{op: list}]\nassertion: []\n",
			wantErr: "field assertion not found",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nflow: [{op: list}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nflow: [{op: list}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: "description is required",
		},
		{
			name:    "empty flow",
			yaml:    "name: x\ndescription: d\nflow: []\nassertions: [{type: count, count: 0}]\n",
			wantErr: "flow list is required",
		},
		{
			name:    "no assertions",
			yaml:    "name: x\ndescription: d\nflow: [{op: list}]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "unknown op",
			yaml:    "name: x\ndescription: d\nflow: [{op: frobnicate}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: `flow[0]: unknown op "frobnicate"`,
		},
		{
			name:    "get without key",
			yaml:    "name: x\ndescription: d\nflow: [{op: get}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: "flow[0]: get: key is required",
		},
		{
			name:    "setup step without op",
			yaml:    "name: x\ndescription: d\nsetup: [{key: a}]\nflow: [{op: list}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: "setup[0]: op is required",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ndescription: d\nflow: [{op: list}]\nassertions: [{type: vibes}]\n",
			wantErr: `unknown assertion type "vibes"`,
		},
		{
			name:    "count without count",
			yaml:    "name: x\ndescription: d\nflow: [{op: list}]\nassertions: [{type: count}]\n",
			wantErr: "count requires count",
		},
		{
			name:    "record without value",
			yaml:    "name: x\ndescription: d\nflow: [{op: list}]\nassertions: [{type: record, key: a}]\n",
			wantErr: "record requires key and value",
		},
		{
			name:    "trace_order with one op",
			yaml:    "name: x\ndescription: d\nflow: [{op: list}]\nassertions: [{type: trace_order, ops: [list]}]\n",
			wantErr: "at least 2 ops",
		},
		{
			name:    "bad key format",
			yaml:    "name: x\ndescription: d\nkey_format: epoch\nflow: [{op: list}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: "key_format",
		},
		{
			name:    "bad clock start",
			yaml:    "name: x\ndescription: d\nclock: {start: tomorrow}\nflow: [{op: list}]\nassertions: [{type: count, count: 0}]\n",
			wantErr: "clock.start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenario_ClockStartDefault(t *testing.T) {
	s := &Scenario{}
	start, err := s.clockStart()
	require.NoError(t, err)
	assert.Equal(t, DefaultClockStart, start)
}
