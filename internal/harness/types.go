package harness

// TraceEvent records one flow step and its outcome.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Op      string `json:"op"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`
	Outcome string `json:"outcome"`

	// Result is the step's output: a value for get, records for list and
	// search, the record for last, the key for log, the decision for dellast.
	Result interface{} `json:"result,omitempty"`

	// Prompts are the labels shown to the user during the step.
	Prompts []string `json:"prompts,omitempty"`
}

// RecordView is a record as it appears in traces and state.
type RecordView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expect clause and assertion holds.
	Pass bool `json:"pass"`

	// Trace contains the flow steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is every record in the container after the flow, in key order.
	State []RecordView `json:"state"`

	// Prompted counts the prompts shown during the flow.
	Prompted int `json:"prompted"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		State:  []RecordView{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends ev with the next sequence number.
func (r *Result) AddTrace(ev TraceEvent) {
	ev.Seq = int64(len(r.Trace) + 1)
	r.Trace = append(r.Trace, ev)
}
