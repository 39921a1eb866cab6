package testutil

import (
	"fmt"
	"sync"

	"github.com/roach88/reclog/internal/prompt"
)

// ScriptedPrompt answers prompts from a fixed script and records every
// label it was shown.
//
// Answers are consumed in order by both Pick and ReadString. For Pick the
// answer must be one of the choices. An empty answer to ReadString returns
// the default, as a user pressing enter would.
type ScriptedPrompt struct {
	mu      sync.Mutex
	answers []string
	Labels  []string
}

var _ prompt.Prompter = (*ScriptedPrompt)(nil)

// NewScriptedPrompt creates a prompt that replies with answers in order.
func NewScriptedPrompt(answers ...string) *ScriptedPrompt {
	return &ScriptedPrompt{answers: answers}
}

func (p *ScriptedPrompt) next(label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Labels = append(p.Labels, label)
	if len(p.answers) == 0 {
		return "", prompt.ErrNoInput
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

// Pick returns the index of the next scripted answer within choices.
func (p *ScriptedPrompt) Pick(choices []string, label string) (int, error) {
	a, err := p.next(label)
	if err != nil {
		return 0, err
	}
	for i, c := range choices {
		if c == a {
			return i, nil
		}
	}
	return 0, fmt.Errorf("scripted answer %q is not one of %v", a, choices)
}

// ReadString returns the next scripted answer, or def if it is empty.
func (p *ScriptedPrompt) ReadString(label, def string) (string, error) {
	a, err := p.next(label)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

// Prompted reports how many prompts were shown.
func (p *ScriptedPrompt) Prompted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Labels)
}

// Remaining reports how many scripted answers are left.
func (p *ScriptedPrompt) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}
