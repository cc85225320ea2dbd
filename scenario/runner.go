package scenario

import (
	"context"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/chrisuehlinger/domtoggle/dom"
	"github.com/chrisuehlinger/domtoggle/js"
	"github.com/chrisuehlinger/domtoggle/toggle"
)

// ErrNoMatch is returned for a click step whose selector matches nothing.
var ErrNoMatch = errors.New("no element matches")

// Runner executes scenarios. Toggle steps use the executor's toggle
// instance, so scripts and steps share one document binding.
type Runner struct {
	exec *js.ScriptExecutor
	log  log.L
}

// NewRunner makes a runner on exec. A nil exec gets a fresh runtime, a nil
// logger lgr's default.
func NewRunner(exec *js.ScriptExecutor, l log.L) *Runner {
	if l == nil {
		l = log.Default()
	}
	if exec == nil {
		exec = js.NewScriptExecutor(js.NewRuntime(l))
	}
	return &Runner{exec: exec, log: l}
}

// Run executes the steps of sc against doc in order. It stops at the first
// failing step or when ctx is done.
func (r *Runner) Run(ctx context.Context, doc *dom.Document, sc Scenario) error {
	if r.exec.DOMBinder().Document() != doc {
		r.exec.SetupDocument(doc)
	}

	r.log.Logf("[INFO] running scenario %q, %d step(s)", sc.Name, len(sc.Steps))
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("scenario %q interrupted before step %d: %w", sc.Name, i, err)
		}
		r.log.Logf("[DEBUG] step %d: %s", i, step)
		if err := r.runStep(doc, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step, err)
		}
	}
	return nil
}

func (r *Runner) runStep(doc *dom.Document, step Step) (err error) {
	u := r.exec.Toggle()

	switch step.Op {
	case OpDisplay:
		flipflop := []string{toggle.DefaultFlip, toggle.DefaultFlop}
		if step.Flip != nil {
			flipflop[0] = *step.Flip
		}
		if step.Flop != nil {
			flipflop[1] = *step.Flop
		}
		return guard(func() { u.ToggleDisplay(step.Selector, flipflop...) })
	case OpText:
		return guard(func() { u.ToggleText(step.Selector, deref(step.Flip), deref(step.Flop)) })
	case OpChecked:
		u.ToggleCheckedAll(step.Selector)
		return nil
	case OpClick:
		el, err := doc.QuerySelectorWithError(step.Selector)
		if err != nil {
			return err
		}
		if el == nil {
			return ErrNoMatch
		}
		return r.exec.Click(el)
	case OpScript:
		return r.exec.Runtime().ExecuteScript(step.Code, "scenario")
	}
	return fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
}

// guard turns a panic of fn into an error.
func guard(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("toggle failed: %v", p)
		}
	}()
	fn()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
