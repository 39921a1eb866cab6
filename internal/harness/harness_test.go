package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "scenario name should match its file")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: mismatch
description: "get expects the wrong value"
setup:
  - op: add
    key: age
    value: "30"
flow:
  - op: get
    key: age
    expect:
      value: "31"
  - op: delete
    key: missing
assertions:
  - type: count
    count: 1
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `expected value "31", got 30`)
	assert.Contains(t, result.Errors[1], "expected outcome ok, got key_not_found")
}

func TestRun_AssertionFailures(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: failing_assertions
description: "every assertion is wrong"
flow:
  - op: add
    key: age
    value: "30"
assertions:
  - type: record
    key: age
    value: "31"
  - type: absent
    key: age
  - type: count
    count: 2
  - type: keys
    keys: [sex]
  - type: trace_count
    op: add
    count: 3
  - type: trace_order
    ops: [add, delete]
  - type: prompted
    count: 1
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 7)
	assert.Contains(t, result.Errors[0], "Assertion failed: record")
	assert.Contains(t, result.Errors[5], "missing op: delete")
}

func TestRun_SetupFailureAborts(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: bad_setup
description: "setup deletes a key that is not there"
setup:
  - op: delete
    key: nope
flow:
  - op: list
assertions:
  - type: count
    count: 0
`))
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup step 0 (delete)")
}

func TestRun_PromptRunsOut(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: no_answers
description: "dellast with nothing scripted reports no input"
setup:
  - op: add
    key: age
    value: "30"
flow:
  - op: dellast
    expect:
      outcome: no_input
assertions:
  - type: count
    count: 1
  - type: prompted
    count: 1
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_SQLiteLocation(t *testing.T) {
	location := "sqlite://" + filepath.Join(t.TempDir(), "scenario.db")
	scenario, err := ParseScenario([]byte(`
name: sqlite
description: "scenarios run against SQLite as well"
container: work
flow:
  - op: save
    key: b
    value: "2"
  - op: save
    key: a
    value: "1"
  - op: list
    expect:
      keys: [a, b]
assertions:
  - type: keys
    keys: [a, b]
`))
	require.NoError(t, err)
	scenario.Location = location

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_UniqueKeys(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: unique
description: "unique keys keep entries logged at the same time apart"
key_format: unique
flow:
  - op: log
    value: one
  - op: log
    value: two
assertions:
  - type: count
    count: 2
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.State, 2)
	for i, rec := range result.State {
		// ISO time, a space, then a 36-character UUID.
		assert.Len(t, rec.Key, len("2000-01-01 00:00:00 ")+36, rec.Key)
		assert.True(t, strings.HasPrefix(rec.Key, "2000-01-01 00:00:0"), rec.Key)
		assert.Equal(t, []string{"one", "two"}[i], rec.Value)
	}
}

func TestRun_UnavailableLocation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	scenario, err := ParseScenario([]byte(`
name: unavailable
description: "store cannot be created"
flow:
  - op: list
assertions:
  - type: count
    count: 0
`))
	require.NoError(t, err)
	scenario.Location = filepath.Join(blocker, "sub", "x.db")

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open store")
}
