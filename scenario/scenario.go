// Package scenario loads YAML descriptions of toggle sequences and runs them
// against a document.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Op names a step kind.
type Op string

// Supported step kinds.
const (
	OpDisplay Op = "display"
	OpText    Op = "text"
	OpChecked Op = "checked"
	OpClick   Op = "click"
	OpScript  Op = "script"
)

var (
	// ErrUnknownOp is returned for a step with an op not listed above.
	ErrUnknownOp = errors.New("unknown op")
	// ErrMissingSelector is returned for an element step without a selector.
	ErrMissingSelector = errors.New("missing selector")
	// ErrMissingCode is returned for a script step without code.
	ErrMissingCode = errors.New("missing code")
	// ErrNoSteps is returned for a scenario without steps.
	ErrNoSteps = errors.New("no steps")
)

// Scenario is a named sequence of steps.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one toggle call, click or script.
// Flip and Flop are pointers so that an omitted display alternate keeps its
// default while an explicit empty string is passed through.
type Step struct {
	Op       Op      `yaml:"op"`
	Selector string  `yaml:"selector,omitempty"`
	Flip     *string `yaml:"flip,omitempty"`
	Flop     *string `yaml:"flop,omitempty"`
	Code     string  `yaml:"code,omitempty"`
}

// String describes the step for logs and errors.
func (s Step) String() string {
	if s.Op == OpScript {
		return string(s.Op)
	}
	return fmt.Sprintf("%s %s", s.Op, s.Selector)
}

// Validate checks the step's op and its required fields.
func (s Step) Validate() error {
	switch s.Op {
	case OpDisplay, OpText, OpChecked, OpClick:
		if strings.TrimSpace(s.Selector) == "" {
			return fmt.Errorf("%s: %w", s.Op, ErrMissingSelector)
		}
	case OpScript:
		if strings.TrimSpace(s.Code) == "" {
			return fmt.Errorf("%s: %w", s.Op, ErrMissingCode)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
	}
	return nil
}

// Validate checks every step.
func (sc Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrNoSteps
	}
	for i, step := range sc.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Parse decodes and validates a scenario payload.
func Parse(data []byte) (Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Scenario{}, fmt.Errorf("scenario: payload is empty")
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	for i := range sc.Steps {
		sc.Steps[i].Op = Op(strings.ToLower(strings.TrimSpace(string(sc.Steps[i].Op))))
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario: %w", err)
	}
	return sc, nil
}

// Load reads and parses a scenario file. A missing name defaults to the
// file's base name.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}
