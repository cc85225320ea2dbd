package dom

import "strings"

// inputType returns the normalized type of an <input>, "text" when absent.
func (e *Element) inputType() string {
	t := strings.ToLower(strings.TrimSpace(e.GetAttribute("type")))
	if t == "" {
		return "text"
	}
	return t
}

func isFormControl(el *Element) bool {
	switch el.LocalName() {
	case "input", "textarea", "select", "button", "option", "fieldset":
		return true
	}
	return false
}

// Value returns the element's value property.
//
// For <input> it is the value attribute until the property is written
// (checkboxes and radios without a value attribute report "on"); for
// <textarea> the text content until written; for <select> the value of the
// selected option; for <option> and <button> the value attribute. Any other
// element keeps a plain property slot that reads as empty until written.
func (e *Element) Value() string {
	data := e.elementData
	switch e.LocalName() {
	case "input":
		if data.value != nil {
			return *data.value
		}
		if !e.HasAttribute("value") {
			switch e.inputType() {
			case "checkbox", "radio":
				return "on"
			}
		}
		return e.GetAttribute("value")
	case "textarea":
		if data.value != nil {
			return *data.value
		}
		return e.TextContent()
	case "select":
		if opt := e.selectedOption(); opt != nil {
			return opt.Value()
		}
		return ""
	case "option":
		if e.HasAttribute("value") {
			return e.GetAttribute("value")
		}
		return collapseWhitespace(e.TextContent())
	case "button":
		return e.GetAttribute("value")
	}
	if data.value != nil {
		return *data.value
	}
	return ""
}

// SetValue writes the element's value property. Writes always succeed,
// whatever the element type.
func (e *Element) SetValue(value string) {
	switch e.LocalName() {
	case "select":
		matched := false
		for _, opt := range e.options() {
			if !matched && opt.Value() == value {
				opt.setAttributeValue("selected", "")
				matched = true
				continue
			}
			opt.RemoveAttribute("selected")
		}
		e.elementData.value = &value
	case "option", "button":
		e.SetAttribute("value", value)
	default:
		e.elementData.value = &value
	}
}

// options returns the <option> descendants of a <select> in tree order.
func (e *Element) options() []*Element {
	var result []*Element
	e.AsNode().walkElements(func(el *Element) bool {
		if el.LocalName() == "option" {
			result = append(result, el)
		}
		return true
	})
	return result
}

// selectedOption returns the first option carrying the selected attribute.
// Before any write the first option is the implicit selection; after a
// write that matched nothing there is no selection.
func (e *Element) selectedOption() *Element {
	opts := e.options()
	for _, opt := range opts {
		if opt.HasAttribute("selected") {
			return opt
		}
	}
	if e.elementData.value == nil && len(opts) > 0 {
		return opts[0]
	}
	return nil
}

// Checked returns the element's checked property.
// For <input> this is the checked attribute until the property is written;
// other elements keep a plain boolean slot that starts false.
func (e *Element) Checked() bool {
	if e.elementData.checked != nil {
		return *e.elementData.checked
	}
	if e.LocalName() == "input" {
		return e.HasAttribute("checked")
	}
	return false
}

// SetChecked writes the element's checked property. Checking a radio button
// unchecks the other radios of the same named group in the same tree.
func (e *Element) SetChecked(checked bool) {
	e.elementData.checked = &checked
	if !checked || e.LocalName() != "input" || e.inputType() != "radio" {
		return
	}
	name := e.GetAttribute("name")
	if name == "" {
		return
	}
	root := e.AsNode()
	for root.parentNode != nil {
		root = root.parentNode
	}
	root.walkElements(func(other *Element) bool {
		if other != e && other.LocalName() == "input" && other.inputType() == "radio" &&
			other.GetAttribute("name") == name {
			unchecked := false
			other.elementData.checked = &unchecked
		}
		return true
	})
}

// ReflectFormState copies the written checked and value properties of
// <input> and <textarea> elements back into markup, so the serialized
// document shows the current form state.
func (d *Document) ReflectFormState() {
	d.AsNode().walkElements(func(el *Element) bool {
		data := el.elementData
		switch el.LocalName() {
		case "input":
			if data.checked != nil {
				if *data.checked {
					el.setAttributeValue("checked", "")
				} else {
					el.removeAttributeRaw("checked")
				}
			}
			if data.value != nil {
				el.setAttributeValue("value", *data.value)
			}
		case "textarea":
			if data.value != nil {
				el.SetTextContent(*data.value)
			}
		}
		return true
	})
}
