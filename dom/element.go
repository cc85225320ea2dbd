package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element represents an element in the DOM tree.
// Element shares its layout with Node and adds element-specific behaviour.
type Element Node

// Attr is a single name/value attribute of an element.
type Attr struct {
	name  string
	value string
}

// Name returns the attribute name.
func (a *Attr) Name() string { return a.name }

// Value returns the attribute value.
func (a *Attr) Value() string { return a.value }

// elementData holds data specific to Element nodes.
type elementData struct {
	localName        string
	tagName          string
	attributes       []*Attr
	styleDeclaration *CSSStyleDeclaration

	// Form control state. nil until written through the property setters,
	// after which the attribute no longer drives the property.
	value   *string
	checked *bool
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// NodeType returns ElementNode.
func (e *Element) NodeType() NodeType {
	return ElementNode
}

// TagName returns the upper-cased tag name.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// LocalName returns the lower-cased local name.
func (e *Element) LocalName() string {
	return e.elementData.localName
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	return e.GetAttribute("id")
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// ClassName returns the class attribute value.
func (e *Element) ClassName() string {
	return e.GetAttribute("class")
}

// SetClassName sets the class attribute value.
func (e *Element) SetClassName(className string) {
	e.SetAttribute("class", className)
}

// HasClass reports whether className is one of the element's classes.
func (e *Element) HasClass(className string) bool {
	for _, c := range strings.Fields(e.ClassName()) {
		if c == className {
			return true
		}
	}
	return false
}

// Attributes returns the element's attributes in source order.
func (e *Element) Attributes() []*Attr {
	return e.elementData.attributes
}

func (e *Element) findAttribute(name string) *Attr {
	name = strings.ToLower(name)
	for _, a := range e.elementData.attributes {
		if a.name == name {
			return a
		}
	}
	return nil
}

// GetAttribute returns the value of the attribute with the given name.
// Names are matched case-insensitively.
func (e *Element) GetAttribute(name string) string {
	if a := e.findAttribute(name); a != nil {
		return a.value
	}
	return ""
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.findAttribute(name) != nil
}

// SetAttribute sets the value of the attribute with the given name.
// For error handling, use SetAttributeWithError.
func (e *Element) SetAttribute(name, value string) {
	_ = e.SetAttributeWithError(name, value)
}

// SetAttributeWithError sets the value of the attribute with the given name.
// Returns an InvalidCharacterError if the name is not a valid attribute name.
func (e *Element) SetAttributeWithError(name, value string) error {
	if !IsValidAttributeName(name) {
		return ErrInvalidCharacter("The string contains invalid characters.")
	}
	e.setAttributeValue(strings.ToLower(name), value)
	if strings.EqualFold(name, "style") && e.elementData.styleDeclaration != nil {
		e.elementData.styleDeclaration.RefreshFromAttribute()
	}
	return nil
}

// setAttributeValue stores the attribute without side effects on the
// style declaration.
func (e *Element) setAttributeValue(name, value string) {
	if a := e.findAttribute(name); a != nil {
		a.value = value
		return
	}
	e.elementData.attributes = append(e.elementData.attributes, &Attr{name: name, value: value})
}

// IsValidAttributeName reports whether name can be used as an HTML attribute name.
func IsValidAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '"', '\'', '>', '/', '=', 0:
			return false
		}
	}
	return true
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	e.removeAttributeRaw(name)
	if name == "style" && e.elementData.styleDeclaration != nil {
		e.elementData.styleDeclaration.RefreshFromAttribute()
	}
}

func (e *Element) removeAttributeRaw(name string) {
	attrs := e.elementData.attributes
	for i, a := range attrs {
		if a.name == name {
			e.elementData.attributes = append(attrs[:i], attrs[i+1:]...)
			return
		}
	}
}

// ToggleAttribute adds the attribute when absent and removes it when present.
// It returns whether the attribute is present afterwards.
func (e *Element) ToggleAttribute(name string) bool {
	if e.HasAttribute(name) {
		e.RemoveAttribute(name)
		return false
	}
	e.SetAttribute(name, "")
	return true
}

// ParentElement returns the parent element, or nil.
func (e *Element) ParentElement() *Element {
	return e.AsNode().ParentElement()
}

// PreviousElementSibling returns the closest preceding sibling element.
func (e *Element) PreviousElementSibling() *Element {
	for n := e.prevSibling; n != nil; n = n.prevSibling {
		if n.nodeType == ElementNode {
			return (*Element)(n)
		}
	}
	return nil
}

// NextElementSibling returns the closest following sibling element.
func (e *Element) NextElementSibling() *Element {
	for n := e.nextSibling; n != nil; n = n.nextSibling {
		if n.nodeType == ElementNode {
			return (*Element)(n)
		}
	}
	return nil
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var result []*Element
	for n := e.firstChild; n != nil; n = n.nextSibling {
		if n.nodeType == ElementNode {
			result = append(result, (*Element)(n))
		}
	}
	return result
}

// AppendChild appends child to the element's children.
func (e *Element) AppendChild(child *Node) *Node {
	return e.AsNode().AppendChild(child)
}

// QuerySelector returns the first descendant element matching the selector,
// or nil when nothing matches or the selector is invalid.
func (e *Element) QuerySelector(selector string) *Element {
	el, _ := e.QuerySelectorWithError(selector)
	return el
}

// QuerySelectorWithError is QuerySelector with selector syntax errors reported.
func (e *Element) QuerySelectorWithError(selector string) (*Element, error) {
	return querySelector(e.AsNode(), selector)
}

// QuerySelectorAll returns all descendant elements matching the selector.
// An invalid selector yields an empty list.
func (e *Element) QuerySelectorAll(selector string) *NodeList {
	nl, err := e.QuerySelectorAllWithError(selector)
	if err != nil {
		return NewStaticNodeList(nil)
	}
	return nl
}

// QuerySelectorAllWithError is QuerySelectorAll with selector syntax errors reported.
func (e *Element) QuerySelectorAllWithError(selector string) (*NodeList, error) {
	return querySelectorAll(e.AsNode(), selector)
}

// Matches returns true if the element matches the given selector.
func (e *Element) Matches(selector string) bool {
	sel, err := parseSelector(selector)
	if err != nil {
		return false
	}
	return sel.matches(e)
}

// Closest returns the closest ancestor element (or self) matching the selector.
func (e *Element) Closest(selector string) *Element {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	for current := e; current != nil; current = current.ParentElement() {
		if sel.matches(current) {
			return current
		}
	}
	return nil
}

// TextContent returns the text content of the element.
func (e *Element) TextContent() string {
	return e.AsNode().TextContent()
}

// SetTextContent sets the text content of the element.
func (e *Element) SetTextContent(text string) {
	e.AsNode().SetTextContent(text)
}

// Style returns the CSSStyleDeclaration for this element's inline styles.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.elementData.styleDeclaration == nil {
		e.elementData.styleDeclaration = NewCSSStyleDeclaration(e)
	}
	return e.elementData.styleDeclaration
}

// InnerHTML returns the serialized children of the element.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SetInnerHTML replaces the element's children with the parsed fragment.
func (e *Element) SetInnerHTML(htmlContent string) error {
	nodes, err := parseHTMLFragment(htmlContent, e)
	if err != nil {
		return err
	}
	for e.firstChild != nil {
		e.AsNode().RemoveChild(e.firstChild)
	}
	for _, n := range nodes {
		e.AsNode().AppendChild(n)
	}
	return nil
}

// OuterHTML returns the serialized element including its own tags.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	serializeNode(e.AsNode(), &sb)
	return sb.String()
}

// serializeNode serializes a node to HTML.
func serializeNode(n *Node, sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		if p := n.ParentElement(); p != nil && isRawTextElement(p.LocalName()) {
			sb.WriteString(n.nodeValue)
			return
		}
		sb.WriteString(html.EscapeString(n.nodeValue))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.nodeValue)
		sb.WriteString("-->")
	case DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.nodeName)
		sb.WriteString(">")
	case DocumentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
	case ElementNode:
		el := (*Element)(n)
		tagName := el.LocalName()
		sb.WriteString("<")
		sb.WriteString(tagName)
		for _, attr := range el.elementData.attributes {
			sb.WriteString(" ")
			sb.WriteString(attr.name)
			sb.WriteString("=\"")
			sb.WriteString(html.EscapeString(attr.value))
			sb.WriteString("\"")
		}
		sb.WriteString(">")
		if isVoidElement(tagName) {
			return
		}
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	}
}

// isVoidElement returns true if the element is a void element.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func isRawTextElement(tagName string) bool {
	switch tagName {
	case "script", "style":
		return true
	}
	return false
}

// parseHTMLFragment parses an HTML fragment in the context of an element.
func parseHTMLFragment(htmlContent string, context *Element) ([]*Node, error) {
	tagName := context.LocalName()
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}

	doc := context.ownerDoc
	result := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if converted := convertHTMLNode(n, doc); converted != nil {
			result = append(result, converted)
		}
	}
	return result, nil
}
