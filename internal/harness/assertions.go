package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/reclog/internal/recorder"
	"github.com/roach88/reclog/internal/store"
)

// AssertionContext provides access to the store for final-state assertions.
type AssertionContext struct {
	Records recorder.RecordStore
	Ctx     context.Context
}

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full trace for context
	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Op, event.Key, event.Outcome)
	}

	return buf.String()
}

// assertRecord checks that key holds the expected value.
func assertRecord(actx *AssertionContext, trace []TraceEvent, a Assertion) error {
	v, err := actx.Records.Get(actx.Ctx, a.Key)
	if err != nil {
		actual := err.Error()
		if errors.Is(err, store.ErrKeyNotFound) {
			actual = "key not found"
		}
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("%q = %q", a.Key, *a.Value),
			Actual:   actual,
			Trace:    trace,
		}
	}
	if string(v) != *a.Value {
		return &AssertionError{
			Type:     AssertRecord,
			Expected: fmt.Sprintf("%q = %q", a.Key, *a.Value),
			Actual:   fmt.Sprintf("%q = %q", a.Key, v),
			Trace:    trace,
		}
	}
	return nil
}

// assertAbsent checks that key is not stored.
func assertAbsent(actx *AssertionContext, trace []TraceEvent, a Assertion) error {
	v, err := actx.Records.Get(actx.Ctx, a.Key)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	actual := fmt.Sprintf("%q = %q", a.Key, v)
	if err != nil {
		actual = err.Error()
	}
	return &AssertionError{
		Type:     AssertAbsent,
		Expected: fmt.Sprintf("%q absent", a.Key),
		Actual:   actual,
		Trace:    trace,
	}
}

// assertCount checks the number of records in the final state.
func assertCount(state []RecordView, trace []TraceEvent, a Assertion) error {
	if len(state) != *a.Count {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d records", *a.Count),
			Actual:   fmt.Sprintf("%d records", len(state)),
			Trace:    trace,
		}
	}
	return nil
}

// assertKeys checks the keys of the final state, in order.
func assertKeys(state []RecordView, trace []TraceEvent, a Assertion) error {
	keys := make([]string, len(state))
	for i, r := range state {
		keys[i] = r.Key
	}
	if !slices.Equal(keys, a.Keys) {
		return &AssertionError{
			Type:     AssertKeys,
			Expected: fmt.Sprintf("%v", a.Keys),
			Actual:   fmt.Sprintf("%v", keys),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks if ops appear in the specified order.
// Ops don't need to be consecutive (intervening ops are allowed).
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	// Step 1: Find first position of each expected op
	positions := make(map[string]int)

	for i, event := range trace {
		for _, op := range a.Ops {
			if event.Op == op && positions[op] == 0 {
				positions[op] = i + 1 // 1-indexed for readability
			}
		}
	}

	// Step 2: Verify all ops found
	for _, op := range a.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", a.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	// Step 3: Verify order
	for i := 1; i < len(a.Ops); i++ {
		prev := a.Ops[i-1]
		curr := a.Ops[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", a.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op == a.Op {
			count++
		}
	}

	if count != *a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%s appears %d times", a.Op, *a.Count),
			Actual:   fmt.Sprintf("%s appears %d times", a.Op, count),
			Trace:    trace,
		}
	}

	return nil
}

// assertPrompted checks how many prompts the flow showed.
func assertPrompted(result *Result, a Assertion) error {
	if result.Prompted != *a.Count {
		return &AssertionError{
			Type:     AssertPrompted,
			Expected: fmt.Sprintf("%d prompts", *a.Count),
			Actual:   fmt.Sprintf("%d prompts", result.Prompted),
			Trace:    result.Trace,
		}
	}
	return nil
}

// EvaluateAssertions checks every assertion against the result and store.
// Returns the failure messages; empty when all hold.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertRecord:
			err = assertRecord(actx, result.Trace, a)
		case AssertAbsent:
			err = assertAbsent(actx, result.Trace, a)
		case AssertCount:
			err = assertCount(result.State, result.Trace, a)
		case AssertKeys:
			err = assertKeys(result.State, result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertPrompted:
			err = assertPrompted(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}

		if err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}

	return errs
}
