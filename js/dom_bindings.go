package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/domtoggle/dom"
)

// DOMBinder provides methods to bind DOM objects to JavaScript.
type DOMBinder struct {
	runtime  *Runtime
	nodeMap  map[*dom.Node]*goja.Object // same JS object for the same DOM node
	styleMap map[*dom.CSSStyleDeclaration]*goja.Object
	document *dom.Document

	// onClick runs the activation of an element for element.click().
	// The runtime lock is already held when it is called.
	onClick func(el *dom.Element)
}

// NewDOMBinder creates a new DOM binder for the given runtime.
func NewDOMBinder(runtime *Runtime) *DOMBinder {
	return &DOMBinder{
		runtime: runtime,
		nodeMap: make(map[*dom.Node]*goja.Object),
	}
}

// SetClickHandler sets the function run by element.click().
func (b *DOMBinder) SetClickHandler(fn func(el *dom.Element)) {
	b.onClick = fn
}

// Document returns the currently bound document.
func (b *DOMBinder) Document() *dom.Document {
	return b.document
}

// BindDocument creates the JavaScript document object and installs it as
// the "document" global.
func (b *DOMBinder) BindDocument(doc *dom.Document) *goja.Object {
	vm := b.runtime.vm
	b.ClearCache()
	b.document = doc

	jsDoc := vm.NewObject()
	jsDoc.Set("nodeType", int(dom.DocumentNode))
	jsDoc.Set("nodeName", doc.NodeName())

	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.DocumentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.DefineAccessorProperty("title", vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(doc.Title())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(doc.GetElementById(call.Argument(0).String()))
	})

	jsDoc.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		el, err := doc.QuerySelectorWithError(call.Argument(0).String())
		if err != nil {
			b.throwDOMError(err)
		}
		return b.elementOrNull(el)
	})

	jsDoc.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		nl, err := doc.QuerySelectorAllWithError(call.Argument(0).String())
		if err != nil {
			b.throwDOMError(err)
		}
		return b.BindNodeList(nl)
	})

	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		return b.BindElement(doc.CreateElement(call.Argument(0).String()))
	})

	b.runtime.vm.Set("document", jsDoc)
	return jsDoc
}

// BindElement creates (or returns the cached) JavaScript object for el.
func (b *DOMBinder) BindElement(el *dom.Element) *goja.Object {
	if el == nil {
		return nil
	}
	node := el.AsNode()
	if jsObj, ok := b.nodeMap[node]; ok {
		return jsObj
	}

	vm := b.runtime.vm
	jsEl := vm.NewObject()
	b.nodeMap[node] = jsEl

	jsEl.Set("_goElement", el)
	jsEl.Set("nodeType", int(dom.ElementNode))

	readOnly := func(name string, get func() goja.Value) {
		jsEl.DefineAccessorProperty(name, vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return get()
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	readWrite := func(name string, get func() goja.Value, set func(v goja.Value)) {
		jsEl.DefineAccessorProperty(name, vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return get()
		}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
			set(call.Argument(0))
			return goja.Undefined()
		}), goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	stringProp := func(name string, get func() string, set func(string)) {
		readWrite(name, func() goja.Value { return vm.ToValue(get()) }, func(v goja.Value) { set(toDOMString(v)) })
	}

	readOnly("tagName", func() goja.Value { return vm.ToValue(el.TagName()) })
	readOnly("nodeName", func() goja.Value { return vm.ToValue(el.TagName()) })
	readOnly("localName", func() goja.Value { return vm.ToValue(el.LocalName()) })
	readOnly("parentElement", func() goja.Value { return b.elementOrNull(el.ParentElement()) })
	readOnly("style", func() goja.Value { return b.bindStyle(el.Style()) })

	stringProp("id", el.Id, el.SetId)
	stringProp("className", el.ClassName, el.SetClassName)
	stringProp("textContent", el.TextContent, el.SetTextContent)
	stringProp("innerText", el.InnerText, el.SetInnerText)
	stringProp("value", el.Value, el.SetValue)
	stringProp("innerHTML", el.InnerHTML, func(s string) {
		if err := el.SetInnerHTML(s); err != nil {
			b.throwDOMError(dom.ErrSyntax(err.Error()))
		}
	})
	readOnly("outerHTML", func() goja.Value { return vm.ToValue(el.OuterHTML()) })

	readWrite("checked",
		func() goja.Value { return vm.ToValue(el.Checked()) },
		func(v goja.Value) { el.SetChecked(v.ToBoolean()) })

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})
	jsEl.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		if err := el.SetAttributeWithError(call.Argument(0).String(), toDOMString(call.Argument(1))); err != nil {
			b.throwDOMError(err)
		}
		return goja.Undefined()
	})
	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})
	jsEl.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	jsEl.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		found, err := el.QuerySelectorWithError(call.Argument(0).String())
		if err != nil {
			b.throwDOMError(err)
		}
		return b.elementOrNull(found)
	})
	jsEl.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value {
		nl, err := el.QuerySelectorAllWithError(call.Argument(0).String())
		if err != nil {
			b.throwDOMError(err)
		}
		return b.BindNodeList(nl)
	})
	jsEl.Set("matches", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Matches(call.Argument(0).String()))
	})
	jsEl.Set("closest", func(call goja.FunctionCall) goja.Value {
		return b.elementOrNull(el.Closest(call.Argument(0).String()))
	})
	jsEl.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := b.getGoElement(call.Argument(0))
		if child == nil {
			panic(vm.NewTypeError("Failed to execute 'appendChild': parameter 1 is not of type 'Node'."))
		}
		if _, err := el.AsNode().AppendChildWithError(child.AsNode()); err != nil {
			b.throwDOMError(err)
		}
		return call.Argument(0)
	})
	jsEl.Set("click", func(call goja.FunctionCall) goja.Value {
		if b.onClick != nil {
			b.onClick(el)
		}
		return goja.Undefined()
	})

	return jsEl
}

// elementOrNull binds el, mapping a nil element to JavaScript null.
func (b *DOMBinder) elementOrNull(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.BindElement(el)
}

// getGoElement returns the Go element behind a bound JavaScript value.
func (b *DOMBinder) getGoElement(v goja.Value) *dom.Element {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj := v.ToObject(b.runtime.vm)
	goEl := obj.Get("_goElement")
	if goEl == nil {
		return nil
	}
	el, _ := goEl.Export().(*dom.Element)
	return el
}

// BindNodeList creates a JavaScript NodeList object.
func (b *DOMBinder) BindNodeList(nodeList *dom.NodeList) *goja.Object {
	vm := b.runtime.vm
	jsList := vm.NewObject()
	elements := nodeList.Elements()

	jsList.Set("length", len(elements))
	for i, el := range elements {
		jsList.Set(vm.ToValue(i).String(), b.BindElement(el))
	}

	jsList.Set("item", func(call goja.FunctionCall) goja.Value {
		index := int(call.Argument(0).ToInteger())
		if index < 0 || index >= len(elements) {
			return goja.Null()
		}
		return b.BindElement(elements[index])
	})

	jsList.Set("forEach", func(call goja.FunctionCall) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("NodeList.forEach: callback is not a function"))
		}
		thisArg := call.Argument(1)
		for i, el := range elements {
			if _, err := callback(thisArg, b.BindElement(el), vm.ToValue(i), jsList); err != nil {
				panic(err)
			}
		}
		return goja.Undefined()
	})

	return jsList
}

// throwDOMError throws err as a DOMException-like JavaScript error.
func (b *DOMBinder) throwDOMError(err error) {
	vm := b.runtime.vm
	name, message := "Error", err.Error()
	if domErr, ok := err.(*dom.DOMError); ok {
		name, message = domErr.Name, domErr.Message
	}
	exc := vm.NewGoError(err)
	exc.Set("name", name)
	exc.Set("message", message)
	panic(exc)
}

// ClearCache clears the node binding cache.
func (b *DOMBinder) ClearCache() {
	b.nodeMap = make(map[*dom.Node]*goja.Object)
	b.styleMap = make(map[*dom.CSSStyleDeclaration]*goja.Object)
}

// toDOMString converts a value the way DOM string setters do, with null
// becoming the empty string.
func toDOMString(v goja.Value) string {
	if v == nil || goja.IsNull(v) {
		return ""
	}
	return v.String()
}
