// Package harness runs scripted scenarios against the recorder.
//
// A scenario sets up some records, performs a flow of operations as a
// user would, and asserts on the trace and the final state. The prompt is
// scripted, the editor returns fixed content and log keys come from a
// step clock, so every run of a scenario produces the same trace.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: dellast_confirmed
//	description: "The last record is deleted after a yes"
//	answers: ["y"]
//	clock:
//	  start: "2015-06-15 14:09:00"
//	  step: 1m
//	setup:
//	  - op: add
//	    key: age
//	    value: "30"
//	flow:
//	  - op: dellast
//	    expect:
//	      deleted: true
//	  - op: get
//	    key: age
//	    expect:
//	      outcome: key_not_found
//	assertions:
//	  - type: count
//	    count: 0
//	  - type: prompted
//	    count: 1
//
// Operations are add, save, get, delete, list, search, last, edit, log
// and dellast. Unknown fields are rejected.
//
// # Assertion Types
//
//   - record: key holds value in the final state
//   - absent: key is not in the final state
//   - count: number of records in the final state
//   - keys: the final keys, in order
//   - trace_order: ops appear in the given order
//   - trace_count: an op appears exactly N times
//   - prompted: number of prompts shown during the flow
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/dellast_confirmed.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
