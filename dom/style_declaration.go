package dom

import (
	"strings"
)

// CSSStyleDeclaration is an element's inline style, kept in sync with the
// element's style attribute. There is no cascade: values are exactly what
// the attribute or the setters put there.
type CSSStyleDeclaration struct {
	element *Element

	// property name (kebab-case) -> declaration
	declarations map[string]*styleProperty

	// order in which properties were first set, for serialization
	propertyOrder []string
}

type styleProperty struct {
	value    string
	priority string // "important" or ""
}

// NewCSSStyleDeclaration creates a CSSStyleDeclaration for an element and
// loads its current style attribute. A nil element gives a detached block.
func NewCSSStyleDeclaration(element *Element) *CSSStyleDeclaration {
	sd := &CSSStyleDeclaration{
		element:      element,
		declarations: make(map[string]*styleProperty),
	}
	if element != nil && element.HasAttribute("style") {
		sd.parseFromAttribute(element.GetAttribute("style"))
	}
	return sd
}

// Display returns the inline display value, or "" when unset.
func (sd *CSSStyleDeclaration) Display() string {
	return sd.GetPropertyValue("display")
}

// SetDisplay sets the inline display value; "" removes it.
func (sd *CSSStyleDeclaration) SetDisplay(value string) {
	sd.SetProperty("display", value)
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	parts := make([]string, 0, len(sd.propertyOrder))
	for _, prop := range sd.propertyOrder {
		sp, ok := sd.declarations[prop]
		if !ok {
			continue
		}
		part := prop + ": " + sp.value
		if sp.priority == "important" {
			part += " !important"
		}
		parts = append(parts, part+";")
	}
	return strings.Join(parts, " ")
}

// SetCSSText replaces all properties with those parsed from cssText.
func (sd *CSSStyleDeclaration) SetCSSText(cssText string) {
	sd.reset()
	sd.parseFromAttribute(cssText)
	sd.syncToAttribute()
}

// Length returns the number of properties set.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.declarations)
}

// Item returns the property name at the given index.
func (sd *CSSStyleDeclaration) Item(index int) string {
	if index < 0 || index >= len(sd.propertyOrder) {
		return ""
	}
	return sd.propertyOrder[index]
}

// GetPropertyValue returns the value of a CSS property.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	if sp, ok := sd.declarations[normalizeCSSPropertyName(property)]; ok {
		return sp.value
	}
	return ""
}

// GetPropertyPriority returns the priority of a CSS property ("important" or "").
func (sd *CSSStyleDeclaration) GetPropertyPriority(property string) string {
	if sp, ok := sd.declarations[normalizeCSSPropertyName(property)]; ok {
		return sp.priority
	}
	return ""
}

// SetProperty sets a CSS property with an optional priority.
// An empty value removes the property.
func (sd *CSSStyleDeclaration) SetProperty(property, value string, priority ...string) {
	property = normalizeCSSPropertyName(property)
	if property == "" {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		sd.RemoveProperty(property)
		return
	}

	pri := ""
	if len(priority) > 0 && strings.EqualFold(priority[0], "important") {
		pri = "important"
	}
	sd.put(property, value, pri)
	sd.syncToAttribute()
}

// RemoveProperty removes a CSS property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	property = normalizeCSSPropertyName(property)
	sp, ok := sd.declarations[property]
	if !ok {
		return ""
	}
	delete(sd.declarations, property)
	for i, p := range sd.propertyOrder {
		if p == property {
			sd.propertyOrder = append(sd.propertyOrder[:i], sd.propertyOrder[i+1:]...)
			break
		}
	}
	sd.syncToAttribute()
	return sp.value
}

// RefreshFromAttribute reloads declarations from the element's style attribute.
func (sd *CSSStyleDeclaration) RefreshFromAttribute() {
	sd.reset()
	if sd.element != nil && sd.element.HasAttribute("style") {
		sd.parseFromAttribute(sd.element.GetAttribute("style"))
	}
}

func (sd *CSSStyleDeclaration) reset() {
	sd.declarations = make(map[string]*styleProperty)
	sd.propertyOrder = nil
}

func (sd *CSSStyleDeclaration) put(property, value, priority string) {
	if _, exists := sd.declarations[property]; !exists {
		sd.propertyOrder = append(sd.propertyOrder, property)
	}
	sd.declarations[property] = &styleProperty{value: value, priority: priority}
}

// parseFromAttribute parses "prop: value; prop2: value2 !important" text.
// Malformed declarations are skipped.
func (sd *CSSStyleDeclaration) parseFromAttribute(styleAttr string) {
	for _, part := range strings.Split(styleAttr, ";") {
		colonIdx := strings.Index(part, ":")
		if colonIdx == -1 {
			continue
		}
		property := normalizeCSSPropertyName(strings.TrimSpace(part[:colonIdx]))
		value := strings.TrimSpace(part[colonIdx+1:])
		if property == "" || value == "" {
			continue
		}

		priority := ""
		if bang := strings.LastIndex(value, "!"); bang != -1 &&
			strings.EqualFold(strings.TrimSpace(value[bang+1:]), "important") {
			priority = "important"
			value = strings.TrimSpace(value[:bang])
		}
		if value == "" {
			continue
		}
		sd.put(property, value, priority)
	}
}

// syncToAttribute writes the declarations back to the style attribute
// without triggering a re-parse.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	if sd.element == nil {
		return
	}
	cssText := sd.CSSText()
	if cssText == "" {
		sd.element.removeAttributeRaw("style")
		return
	}
	sd.element.setAttributeValue("style", cssText)
}

// PropertyNames returns all property names in declaration order.
func (sd *CSSStyleDeclaration) PropertyNames() []string {
	result := make([]string, len(sd.propertyOrder))
	copy(result, sd.propertyOrder)
	return result
}

// normalizeCSSPropertyName converts camelCase to kebab-case and lowercases.
// Examples: "backgroundColor" -> "background-color", "WebkitTransform" -> "-webkit-transform"
func normalizeCSSPropertyName(name string) string {
	if name == "" || strings.Contains(name, "-") {
		return strings.ToLower(name)
	}
	var result strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			result.WriteByte('-')
			result.WriteRune(r - 'A' + 'a')
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// CamelCasePropertyName converts kebab-case to camelCase, the form scripts
// use for style properties ("background-color" -> "backgroundColor").
// Vendor prefixes keep a capital: "-webkit-transform" -> "WebkitTransform".
func CamelCasePropertyName(name string) string {
	prefixed := strings.HasPrefix(name, "-")
	parts := strings.Split(strings.TrimPrefix(name, "-"), "-")
	var result strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 0 && !prefixed {
			result.WriteString(part)
			continue
		}
		result.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return result.String()
}
