// Package js runs page scripts against a dom.Document.
// It uses the goja JavaScript engine (pure Go ES5.1+ implementation) and
// exposes the document, its elements and the shared toggle instance to
// scripts and inline event handlers.
package js

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/dop251/goja"
)

// Runtime wraps a goja JavaScript runtime with the page globals.
// goja runtimes are not goroutine safe; Runtime serializes access.
type Runtime struct {
	vm      *goja.Runtime
	log     log.L
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a new JavaScript runtime. A nil logger uses lgr's default.
func NewRuntime(l log.L) *Runtime {
	if l == nil {
		l = log.Default()
	}
	r := &Runtime{
		vm:  goja.New(),
		log: l,
	}
	r.setupConsole()
	r.vm.Set("window", r.vm.GlobalObject())
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript compiles and runs a script; name is used in error locations.
// Scripts are compiled in non-strict mode, like classic page scripts.
func (r *Runtime) ExecuteScript(code, name string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", name, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(name, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.recordError(err)
	}
	return err
}

// recordError must be called with mu held.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.log.Logf("[WARN] script error: %v", err)
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// setupConsole creates the console object, routed to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]string{
		"log":   "INFO",
		"info":  "INFO",
		"debug": "DEBUG",
		"warn":  "WARN",
		"error": "ERROR",
	}
	for method, level := range levels {
		level := level
		console.Set(method, func(call goja.FunctionCall) goja.Value {
			r.log.Logf("[%s] console: %s", level, formatArgs(call.Arguments))
			return goja.Undefined()
		})
	}
	r.vm.Set("console", console)
}

// formatArgs joins console arguments the way browsers print them.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		switch {
		case goja.IsUndefined(arg):
			parts[i] = "undefined"
		case goja.IsNull(arg):
			parts[i] = "null"
		default:
			parts[i] = arg.String()
		}
	}
	return strings.Join(parts, " ")
}
