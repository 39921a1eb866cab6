package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/reclog/internal/timefmt"
)

// Scenario defines a recorder test scenario: some records to start from,
// a flow of operations to perform, and assertions on the outcome.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Location is the store location. Defaults to "mem://<name>".
	Location string `yaml:"location,omitempty"`

	// Container defaults to the store's default container.
	Container string `yaml:"container,omitempty"`

	// KeyFormat selects the log key: "time" (default) or "unique".
	KeyFormat string `yaml:"key_format,omitempty"`

	// Clock drives log keys. Defaults to 2000-01-01 00:00:00 stepping 1s.
	Clock ClockConfig `yaml:"clock,omitempty"`

	// Answers are replied to prompts in order.
	Answers []string `yaml:"answers,omitempty"`

	// Editor is the content the editor returns for add, log and edit
	// steps without a value.
	Editor string `yaml:"editor,omitempty"`

	// Setup steps run before the flow and must succeed. They are not traced.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow steps run in order and are traced.
	Flow []Step `yaml:"flow"`

	// Assertions are checked after the flow.
	Assertions []Assertion `yaml:"assertions"`
}

// ClockConfig configures the scenario's step clock.
type ClockConfig struct {
	Start string        `yaml:"start,omitempty"` // "2006-01-02 15:04:05"
	Step  time.Duration `yaml:"step,omitempty"`
}

// Step is one operation.
type Step struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	Key   string `yaml:"key,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Prefix, Contains and Fold select records for search.
	Prefix   string `yaml:"prefix,omitempty"`
	Contains string `yaml:"contains,omitempty"`
	Fold     bool   `yaml:"fold,omitempty"`

	// Expect is checked against the step's outcome when present.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes a step's outcome.
type Expect struct {
	// Outcome is "ok" (default) or one of the Outcome* error kinds.
	Outcome string `yaml:"outcome,omitempty"`

	// Value is the expected value for get.
	Value *string `yaml:"value,omitempty"`

	// Keys are the expected keys, in order, for list and search.
	Keys []string `yaml:"keys,omitempty"`

	// Found is the expected result of last.
	Found *bool `yaml:"found,omitempty"`

	// Deleted is the expected result of dellast.
	Deleted *bool `yaml:"deleted,omitempty"`
}

// Assertion is a check on the final state or the trace.
type Assertion struct {
	Type string `yaml:"type"`

	// Key and Value are used by record and absent.
	Key   string  `yaml:"key,omitempty"`
	Value *string `yaml:"value,omitempty"`

	// Keys is the expected key order for keys.
	Keys []string `yaml:"keys,omitempty"`

	// Count is used by count, trace_count and prompted.
	Count *int `yaml:"count,omitempty"`

	// Op is the operation counted by trace_count.
	Op string `yaml:"op,omitempty"`

	// Ops is the expected order for trace_order.
	Ops []string `yaml:"ops,omitempty"`
}

// Operations.
const (
	OpAdd     = "add"
	OpSave    = "save"
	OpGet     = "get"
	OpDelete  = "delete"
	OpList    = "list"
	OpSearch  = "search"
	OpLast    = "last"
	OpEdit    = "edit"
	OpLog     = "log"
	OpDelLast = "dellast"
)

var validOps = map[string]bool{
	OpAdd: true, OpSave: true, OpGet: true, OpDelete: true, OpList: true,
	OpSearch: true, OpLast: true, OpEdit: true, OpLog: true, OpDelLast: true,
}

// Outcomes reported in the trace.
const (
	OutcomeOK          = "ok"
	OutcomeKeyNotFound = "key_not_found"
	OutcomeInvalidKey  = "invalid_key"
	OutcomeNoInput     = "no_input"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Assertion types.
const (
	AssertRecord     = "record"
	AssertAbsent     = "absent"
	AssertCount      = "count"
	AssertKeys       = "keys"
	AssertTraceOrder = "trace_order"
	AssertTraceCount = "trace_count"
	AssertPrompted   = "prompted"
)

// DefaultClockStart is where scenario clocks start when none is given.
var DefaultClockStart = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// clockStart returns the configured clock start.
func (s *Scenario) clockStart() (time.Time, error) {
	if s.Clock.Start == "" {
		return DefaultClockStart, nil
	}
	return timefmt.ParseISO(s.Clock.Start)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	switch s.KeyFormat {
	case "", "time", "unique":
	default:
		return fmt.Errorf("key_format must be \"time\" or \"unique\", got %q", s.KeyFormat)
	}

	if _, err := s.clockStart(); err != nil {
		return fmt.Errorf("clock.start: %w", err)
	}
	if s.Clock.Step < 0 {
		return fmt.Errorf("clock.step must not be negative")
	}

	for i, step := range s.Setup {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks that a step names a known op with the fields it needs.
func validateStep(step Step) error {
	if step.Op == "" {
		return fmt.Errorf("op is required")
	}
	if !validOps[step.Op] {
		return fmt.Errorf("unknown op %q", step.Op)
	}

	switch step.Op {
	case OpSave, OpGet, OpDelete, OpEdit:
		if step.Key == "" {
			return fmt.Errorf("%s: key is required", step.Op)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRecord:
		if a.Key == "" || a.Value == nil {
			return fmt.Errorf("assertions[%d]: record requires key and value", index)
		}
	case AssertAbsent:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: absent requires key", index)
		}
	case AssertCount, AssertPrompted:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: %s requires count", index, a.Type)
		}
	case AssertKeys:
		if a.Keys == nil {
			return fmt.Errorf("assertions[%d]: keys requires keys (use [] for none)", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) < 2 {
			return fmt.Errorf("assertions[%d]: trace_order requires at least 2 ops", index)
		}
	case AssertTraceCount:
		if a.Op == "" || a.Count == nil {
			return fmt.Errorf("assertions[%d]: trace_count requires op and count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
