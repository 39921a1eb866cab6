package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/roach88/reclog/internal/prompt"
	"github.com/roach88/reclog/internal/recorder"
	"github.com/roach88/reclog/internal/store"
	"github.com/roach88/reclog/internal/testutil"
)

// Harness runs one scenario against a Recorder and Logger, with a scripted
// prompt, a fake editor and a step clock standing in for the user and time.
type Harness struct {
	records *recorder.Recorder
	logger  *recorder.Logger
	prompt  *testutil.ScriptedPrompt
	editor  *testutil.FakeEditor
	clock   *testutil.StepClock
	log     *slog.Logger
}

// stepOutput is what one operation produced.
type stepOutput struct {
	event   TraceEvent
	err     error
	value   *string
	keys    []string
	found   *bool
	deleted *bool
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in its own store, "mem://<name>" unless the scenario
// names a location. The step clock and scripted prompt make the trace
// reproducible.
//
// Execution flow:
// 1. Open the store and container
// 2. Execute setup steps (each must succeed)
// 3. Execute flow steps, tracing each and checking expect clauses
// 4. Snapshot the container and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	location := scenario.Location
	if location == "" {
		location = store.SchemeMemory + scenario.Name
	}

	start, err := scenario.clockStart()
	if err != nil {
		return nil, fmt.Errorf("invalid clock start: %w", err)
	}
	step := scenario.Clock.Step
	if step == 0 {
		step = time.Second
	}

	keyFunc := recorder.TimeKey
	if scenario.KeyFormat == "unique" {
		keyFunc = recorder.UniqueTimeKey
	}

	records := recorder.New(location, scenario.Container)
	defer records.Close()

	p := testutil.NewScriptedPrompt(scenario.Answers...)
	h := &Harness{
		records: records,
		logger:  recorder.NewLogger(records, p, keyFunc),
		prompt:  p,
		editor:  &testutil.FakeEditor{Result: []byte(scenario.Editor)},
		clock:   testutil.NewStepClock(start, step),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()
	if _, err := records.Open(ctx); err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	result := NewResult()
	promptsBefore := p.Prompted()
	h.executeFlow(ctx, scenario.Flow, result)
	result.Prompted = p.Prompted() - promptsBefore

	recs, err := recorder.Collect(records.List(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	result.State = views(recs)

	actx := &AssertionContext{
		Records: records,
		Ctx:     ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSetup runs all setup steps. Any failure aborts the scenario.
func (h *Harness) executeSetup(ctx context.Context, setup []Step) error {
	for i, step := range setup {
		out := h.executeStep(ctx, step)
		if out.err != nil {
			return fmt.Errorf("setup step %d (%s): %w", i, step.Op, out.err)
		}
		h.log.Info("setup step completed", "step", i, "op", step.Op, "key", step.Key)
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses.
// A failing step does not stop the flow; its outcome is traced and
// checked against the step's expect clause.
func (h *Harness) executeFlow(ctx context.Context, flow []Step, result *Result) {
	for i, step := range flow {
		out := h.executeStep(ctx, step)
		result.AddTrace(out.event)

		for _, msg := range checkExpect(step, out) {
			result.AddError(fmt.Sprintf("flow step %d (%s): %s", i, step.Op, msg))
		}

		h.log.Info("flow step completed", "step", i, "op", step.Op, "outcome", out.event.Outcome)
	}
}

// executeStep performs one operation and describes it as a trace event.
func (h *Harness) executeStep(ctx context.Context, step Step) stepOutput {
	labelsBefore := h.prompt.Prompted()
	out := stepOutput{
		event: TraceEvent{Op: step.Op, Key: step.Key, Value: step.Value},
	}

	switch step.Op {
	case OpAdd:
		out.err = h.records.Add(ctx, step.Key, []byte(step.Value))

	case OpSave:
		out.err = h.records.Save(ctx, step.Key, []byte(step.Value))

	case OpGet:
		var v []byte
		if v, out.err = h.records.Get(ctx, step.Key); out.err == nil {
			s := string(v)
			out.value = &s
			out.event.Result = s
		}

	case OpDelete:
		out.err = h.records.Delete(ctx, step.Key)

	case OpList, OpSearch:
		var match recorder.Predicate = recorder.All
		if step.Op == OpSearch {
			match = searchPredicate(step)
		}
		var recs []recorder.Record
		if recs, out.err = recorder.Collect(h.records.Search(ctx, match)); out.err == nil {
			out.keys = keysOf(recs)
			out.event.Result = views(recs)
		}

	case OpLast:
		var (
			rec   recorder.Record
			found bool
		)
		if rec, found, out.err = h.records.Last(ctx); out.err == nil {
			out.found = &found
			if found {
				out.event.Result = RecordView{Key: rec.Key, Value: string(rec.Value)}
			}
		}

	case OpEdit:
		out.err = recorder.EditRecord(ctx, h.records, h.editor, step.Key)

	case OpLog:
		text := step.Value
		if text == "" {
			var content []byte
			if content, out.err = h.editor.Edit(ctx, nil); out.err != nil {
				break
			}
			text = string(content)
		}
		var key string
		if key, out.err = h.logger.Log(ctx, h.clock.Next(), text); out.err == nil {
			out.event.Key = key
			out.event.Result = key
		}

	case OpDelLast:
		var deleted bool
		if deleted, out.err = h.logger.DelLast(ctx); out.err == nil {
			out.deleted = &deleted
			out.event.Result = deleted
		}

	default:
		out.err = fmt.Errorf("unknown op %q", step.Op)
	}

	out.event.Outcome = outcomeOf(out.err)
	if labels := h.prompt.Labels; len(labels) > labelsBefore {
		out.event.Prompts = slices.Clone(labels[labelsBefore:])
	}
	return out
}

// searchPredicate builds the predicate for a search step.
func searchPredicate(step Step) recorder.Predicate {
	var preds []recorder.Predicate
	if step.Prefix != "" {
		preds = append(preds, recorder.KeyPrefix(step.Prefix))
	}
	if step.Contains != "" {
		preds = append(preds, recorder.Contains(step.Contains, step.Fold))
	}
	return recorder.And(preds...)
}

// outcomeOf names the kind of err for the trace.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, store.ErrKeyNotFound):
		return OutcomeKeyNotFound
	case errors.Is(err, store.ErrInvalidKey):
		return OutcomeInvalidKey
	case errors.Is(err, prompt.ErrNoInput):
		return OutcomeNoInput
	case errors.Is(err, store.ErrUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

// checkExpect compares a step's output to its expect clause.
func checkExpect(step Step, out stepOutput) []string {
	want := step.Expect
	if want == nil {
		want = &Expect{}
	}

	var errs []string
	wantOutcome := want.Outcome
	if wantOutcome == "" {
		wantOutcome = OutcomeOK
	}
	if out.event.Outcome != wantOutcome {
		detail := ""
		if out.err != nil {
			detail = fmt.Sprintf(" (%v)", out.err)
		}
		errs = append(errs, fmt.Sprintf("expected outcome %s, got %s%s", wantOutcome, out.event.Outcome, detail))
		return errs
	}

	if want.Value != nil && (out.value == nil || *out.value != *want.Value) {
		errs = append(errs, fmt.Sprintf("expected value %q, got %s", *want.Value, describe(out.value)))
	}
	if want.Keys != nil && !slices.Equal(want.Keys, out.keys) {
		errs = append(errs, fmt.Sprintf("expected keys %v, got %v", want.Keys, out.keys))
	}
	if want.Found != nil && (out.found == nil || *out.found != *want.Found) {
		errs = append(errs, fmt.Sprintf("expected found=%v, got %s", *want.Found, describe(out.found)))
	}
	if want.Deleted != nil && (out.deleted == nil || *out.deleted != *want.Deleted) {
		errs = append(errs, fmt.Sprintf("expected deleted=%v, got %s", *want.Deleted, describe(out.deleted)))
	}
	return errs
}

func describe[T any](p *T) string {
	if p == nil {
		return "nothing"
	}
	return fmt.Sprintf("%v", *p)
}

func views(recs []recorder.Record) []RecordView {
	out := make([]RecordView, len(recs))
	for i, r := range recs {
		out[i] = RecordView{Key: r.Key, Value: string(r.Value)}
	}
	return out
}

func keysOf(recs []recorder.Record) []string {
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = r.Key
	}
	return keys
}
