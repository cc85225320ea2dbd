package js

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/domtoggle/toggle"
)

// ToggleGlobal is the name of the shared toggle instance in scripts.
const ToggleGlobal = "aideas"

// BindToggle installs the Aideas constructor and the shared instance built
// on u as the global ToggleGlobal, so inline handlers can call
// aideas.toggle_display('#panel').
//
// A lookup that finds no element makes the Go toggle dereference nil; here
// that surfaces as the TypeError a script gets when it reads a property of
// null.
func (b *DOMBinder) BindToggle(u *toggle.Utility) *goja.Object {
	vm := b.runtime.vm

	ctor := vm.ToValue(func(call goja.ConstructorCall) *goja.Object {
		return call.This
	}).ToObject(vm)
	proto, _ := ctor.Get("prototype").(*goja.Object)
	if proto == nil {
		proto = vm.NewObject()
		_ = ctor.Set("prototype", proto)
	}

	display := func(call goja.FunctionCall) goja.Value {
		selector := call.Argument(0).String()
		flip := defaultedString(optional(call.Argument(1)), toggle.DefaultFlip)
		flop := defaultedString(optional(call.Argument(2)), toggle.DefaultFlop)
		if goja.IsNull(call.Argument(1)) {
			flop = flip
		}
		b.nullAccess(vm, "style", func() { u.ToggleDisplay(selector, flip, flop) })
		return goja.Undefined()
	}
	text := func(call goja.FunctionCall) goja.Value {
		selector := call.Argument(0).String()
		flip, flop := toDOMString(call.Argument(1)), toDOMString(call.Argument(2))
		if isNullish(call.Argument(1)) {
			flop = flip
		}
		b.nullAccess(vm, "innerText", func() { u.ToggleText(selector, flip, flop) })
		return goja.Undefined()
	}
	checked := func(call goja.FunctionCall) goja.Value {
		u.ToggleCheckedAll(call.Argument(0).String())
		return goja.Undefined()
	}

	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"toggle_display":   display,
		"toggle_text":      text,
		"toggle_checked":   checked,
		"toggleDisplay":    display,
		"toggleText":       text,
		"toggleCheckedAll": checked,
	} {
		proto.Set(name, fn)
	}

	instance := vm.NewObject()
	instance.SetPrototype(proto)

	vm.Set("Aideas", ctor)
	vm.Set(ToggleGlobal, instance)
	return instance
}

// nullAccess runs fn and rethrows a Go nil dereference as a script TypeError
// reading prop of null. Other panics pass through.
func (b *DOMBinder) nullAccess(vm *goja.Runtime, prop string, fn func()) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if isNilDereference(p) {
			panic(vm.NewTypeError(fmt.Sprintf("Cannot read properties of null (reading '%s')", prop)))
		}
		panic(p)
	}()
	fn()
}

func isNilDereference(p interface{}) bool {
	rerr, ok := p.(runtime.Error)
	return ok && strings.Contains(rerr.Error(), "nil pointer dereference")
}

// isNullish reports a null or undefined argument. Such a flip never equals
// the current string value, so the flip is written on every call.
func isNullish(v goja.Value) bool {
	return v == nil || goja.IsNull(v) || goja.IsUndefined(v)
}

// optional maps undefined to nil so defaults apply, as for default parameters.
func optional(v goja.Value) goja.Value {
	if v == nil || goja.IsUndefined(v) {
		return nil
	}
	return v
}

// defaultedString returns def for a missing value and the DOM string form otherwise.
func defaultedString(v goja.Value, def string) string {
	if v == nil {
		return def
	}
	return toDOMString(v)
}
