package js

import (
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/domtoggle/dom"
	"github.com/chrisuehlinger/domtoggle/toggle"
)

// ScriptExecutor runs the scripts and inline event handlers of a document.
type ScriptExecutor struct {
	runtime   *Runtime
	domBinder *DOMBinder
	toggle    *toggle.Utility
	log       log.L
}

// NewScriptExecutor creates a new script executor on runtime.
func NewScriptExecutor(runtime *Runtime) *ScriptExecutor {
	se := &ScriptExecutor{
		runtime:   runtime,
		domBinder: NewDOMBinder(runtime),
		toggle:    toggle.New(nil, toggle.WithLogger(runtime.log)),
		log:       runtime.log,
	}
	se.domBinder.SetClickHandler(func(el *dom.Element) {
		if err := se.activate(el); err != nil {
			se.runtime.recordError(err)
		}
	})
	return se
}

// Runtime returns the JavaScript runtime.
func (se *ScriptExecutor) Runtime() *Runtime {
	return se.runtime
}

// DOMBinder returns the DOM binder.
func (se *ScriptExecutor) DOMBinder() *DOMBinder {
	return se.domBinder
}

// Toggle returns the toggle instance exposed to scripts.
func (se *ScriptExecutor) Toggle() *toggle.Utility {
	return se.toggle
}

// SetupDocument binds doc as the "document" global and installs the shared
// toggle instance operating on it.
func (se *ScriptExecutor) SetupDocument(doc *dom.Document) {
	se.runtime.mu.Lock()
	defer se.runtime.mu.Unlock()

	se.domBinder.BindDocument(doc)
	se.toggle.SetDocument(doc)
	se.domBinder.BindToggle(se.toggle)
}

// ExecuteScripts runs every inline script element of doc in document order.
// A failing script does not stop the ones after it.
func (se *ScriptExecutor) ExecuteScripts(doc *dom.Document) []error {
	var errs []error
	for i, script := range doc.QuerySelectorAll("script").Elements() {
		if err := se.executeScript(script, i); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// executeScript executes a single script element.
func (se *ScriptExecutor) executeScript(script *dom.Element, index int) error {
	switch strings.ToLower(strings.TrimSpace(script.GetAttribute("type"))) {
	case "", "text/javascript", "application/javascript":
	default:
		return nil
	}
	if script.GetAttribute("src") != "" {
		se.log.Logf("[DEBUG] skipping external script %s", script.GetAttribute("src"))
		return nil
	}

	code := strings.TrimSpace(script.TextContent())
	if code == "" {
		return nil
	}

	name := script.Id()
	if name == "" {
		name = fmt.Sprintf("inline-%d", index)
	}
	return se.runtime.ExecuteScript(code, name)
}

// ExecuteInlineHandler executes inline event handler code (the body of an
// onclick attribute and the like) with this bound to el.
func (se *ScriptExecutor) ExecuteInlineHandler(code string, el *dom.Element) (err error) {
	se.runtime.mu.Lock()
	defer se.runtime.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("inline handler panic: %v", p)
			se.runtime.recordError(err)
		}
	}()

	return se.runHandler(code, el)
}

// Click performs a click on el: its onclick attribute, if any, runs as an
// inline handler. Errors thrown by the handler are returned.
func (se *ScriptExecutor) Click(el *dom.Element) (err error) {
	se.runtime.mu.Lock()
	defer se.runtime.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("click handler panic: %v", p)
			se.runtime.recordError(err)
		}
	}()

	return se.activate(el)
}

// activate runs el's onclick handler. The runtime lock must be held.
func (se *ScriptExecutor) activate(el *dom.Element) error {
	code := el.GetAttribute("onclick")
	if strings.TrimSpace(code) == "" {
		return nil
	}
	return se.runHandler(code, el)
}

// runHandler compiles code as a handler function and calls it.
// The runtime lock must be held.
func (se *ScriptExecutor) runHandler(code string, el *dom.Element) error {
	vm := se.runtime.vm
	fnValue, err := vm.RunString("(function(event) {\n" + code + "\n})")
	if err != nil {
		se.runtime.recordError(err)
		return err
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return fmt.Errorf("inline handler did not compile to a function")
	}

	var this goja.Value = goja.Undefined()
	if el != nil {
		this = se.domBinder.BindElement(el)
	}
	event := vm.NewObject()
	event.Set("type", "click")
	event.Set("target", this)

	if _, err := fn(this, event); err != nil {
		se.runtime.recordError(err)
		return err
	}
	return nil
}
