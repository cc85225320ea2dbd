package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/domtoggle/dom"
)

// styleObject exposes a CSSStyleDeclaration to scripts. Property access
// uses camelCase names (style.backgroundColor) and maps onto the kebab-case
// declarations; unset properties read as the empty string.
type styleObject struct {
	vm *goja.Runtime
	sd *dom.CSSStyleDeclaration
}

var styleMethods = []string{"getPropertyValue", "getPropertyPriority", "setProperty", "removeProperty", "item"}

func (s *styleObject) Get(key string) goja.Value {
	switch key {
	case "cssText":
		return s.vm.ToValue(s.sd.CSSText())
	case "length":
		return s.vm.ToValue(s.sd.Length())
	case "getPropertyValue":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(s.sd.GetPropertyValue(call.Argument(0).String()))
		})
	case "getPropertyPriority":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(s.sd.GetPropertyPriority(call.Argument(0).String()))
		})
	case "setProperty":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			priority := ""
			if p := call.Argument(2); !goja.IsUndefined(p) {
				priority = toDOMString(p)
			}
			s.sd.SetProperty(call.Argument(0).String(), toDOMString(call.Argument(1)), priority)
			return goja.Undefined()
		})
	case "removeProperty":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(s.sd.RemoveProperty(call.Argument(0).String()))
		})
	case "item":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(s.sd.Item(int(call.Argument(0).ToInteger())))
		})
	}
	if !isStylePropertyKey(key) {
		return nil
	}
	return s.vm.ToValue(s.sd.GetPropertyValue(key))
}

func (s *styleObject) Set(key string, val goja.Value) bool {
	switch key {
	case "cssText":
		s.sd.SetCSSText(toDOMString(val))
		return true
	case "length":
		return false
	}
	for _, m := range styleMethods {
		if key == m {
			return false
		}
	}
	if !isStylePropertyKey(key) {
		return false
	}
	s.sd.SetProperty(key, toDOMString(val))
	return true
}

func (s *styleObject) Has(key string) bool {
	return s.Get(key) != nil
}

func (s *styleObject) Delete(key string) bool {
	s.sd.RemoveProperty(key)
	return true
}

func (s *styleObject) Keys() []string {
	names := s.sd.PropertyNames()
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = dom.CamelCasePropertyName(name)
	}
	return keys
}

var objectPrototypeKeys = map[string]bool{
	"constructor": true, "toString": true, "toJSON": true, "valueOf": true, "hasOwnProperty": true,
}

// isStylePropertyKey filters out keys that cannot name a CSS property, such
// as numeric indexes and Object.prototype members.
func isStylePropertyKey(key string) bool {
	if key == "" || objectPrototypeKeys[key] {
		return false
	}
	c := key[0]
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-'
}

// bindStyle returns the (cached) script object for a style declaration.
func (b *DOMBinder) bindStyle(sd *dom.CSSStyleDeclaration) *goja.Object {
	if b.styleMap == nil {
		b.styleMap = make(map[*dom.CSSStyleDeclaration]*goja.Object)
	}
	if obj, ok := b.styleMap[sd]; ok {
		return obj
	}
	obj := b.runtime.vm.NewDynamicObject(&styleObject{vm: b.runtime.vm, sd: sd})
	b.styleMap[sd] = obj
	return obj
}
