package dom

import (
	"strings"
)

// InnerText returns the "rendered" text content of an element.
// This is different from TextContent in that it respects inline styling:
//   - descendants hidden with display:none are excluded
//   - block-level elements are separated by line breaks
//   - whitespace collapses unless white-space preserves it
//   - <br> elements produce line breaks
//
// Elements that are not being rendered (detached, or hidden themselves or
// through an ancestor) fall back to TextContent. Form controls and replaced
// elements do not expose their content and return the empty string.
func (e *Element) InnerText() string {
	switch e.LocalName() {
	case "input", "textarea", "select":
		return ""
	case "iframe", "audio", "video", "canvas", "object":
		return ""
	}
	if !e.isBeingRendered() {
		return e.TextContent()
	}
	var b innerTextBuilder
	b.walk(e.AsNode(), e.preservesWhiteSpace(false))
	return b.sb.String()
}

// SetInnerText replaces the element's children with the given text.
// Line feeds become <br> elements; an empty value leaves no children.
func (e *Element) SetInnerText(value string) {
	node := e.AsNode()
	for node.firstChild != nil {
		node.RemoveChild(node.firstChild)
	}
	if value == "" {
		return
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	doc := node.ownerDoc
	for i, line := range strings.Split(value, "\n") {
		if i > 0 {
			node.AppendChild(doc.CreateElement("br").AsNode())
		}
		if line != "" {
			node.AppendChild(doc.CreateTextNode(line))
		}
	}
}

// isBeingRendered reports whether the element is attached to a document and
// neither it nor an ancestor is hidden with an inline display:none.
func (e *Element) isBeingRendered() bool {
	var last *Node
	for n := e.AsNode(); n != nil; n = n.parentNode {
		if n.nodeType == ElementNode && (*Element)(n).Style().Display() == "none" {
			return false
		}
		last = n
	}
	return last != nil && last.nodeType == DocumentNode
}

// preservesWhiteSpace reports whether text directly inside e keeps its
// whitespace, given the mode inherited from the parent.
func (e *Element) preservesWhiteSpace(inherited bool) bool {
	ws := strings.ToLower(e.Style().GetPropertyValue("white-space"))
	switch {
	case strings.HasPrefix(ws, "pre"), ws == "break-spaces":
		return true
	case ws == "normal", ws == "nowrap":
		return false
	}
	if e.LocalName() == "pre" {
		return true
	}
	return inherited
}

type innerTextBuilder struct {
	sb            strings.Builder
	pendingBreaks int
	pendingSpace  bool
}

func (b *innerTextBuilder) walk(n *Node, preserve bool) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			b.writeText(child.nodeValue, preserve)
		case ElementNode:
			b.walkElement((*Element)(child), preserve)
		}
	}
}

func (b *innerTextBuilder) walkElement(el *Element, preserve bool) {
	display := strings.ToLower(el.Style().Display())
	if display == "none" {
		return
	}
	name := el.LocalName()
	switch name {
	case "head", "script", "style", "template", "noscript", "meta", "link", "title":
		return
	case "br":
		b.forcedBreak()
		return
	}

	breaks := 0
	switch {
	case name == "p":
		breaks = 2
	case isBlockLevel(name), display != "" && display != "inline" && display != "contents":
		breaks = 1
	}

	b.requireBreaks(breaks)
	b.walk(el.AsNode(), el.preservesWhiteSpace(preserve))
	b.requireBreaks(breaks)
}

func (b *innerTextBuilder) writeText(s string, preserve bool) {
	if s == "" {
		return
	}
	if preserve {
		b.flush()
		b.sb.WriteString(s)
		return
	}
	leading := isASCIISpace(s[0])
	trailing := isASCIISpace(s[len(s)-1])
	s = collapseWhitespace(s)
	if leading {
		b.pendingSpace = true
	}
	if s == "" {
		return
	}
	b.flush()
	b.sb.WriteString(s)
	b.pendingSpace = trailing
}

// flush emits the separator owed before the next piece of text. Nothing is
// emitted at the very start of the output.
func (b *innerTextBuilder) flush() {
	if b.sb.Len() > 0 {
		if b.pendingBreaks > 0 {
			b.sb.WriteString(strings.Repeat("\n", b.pendingBreaks))
		} else if b.pendingSpace {
			b.sb.WriteByte(' ')
		}
	}
	b.pendingBreaks = 0
	b.pendingSpace = false
}

func (b *innerTextBuilder) forcedBreak() {
	if b.sb.Len() > 0 && b.pendingBreaks > 0 {
		b.sb.WriteString(strings.Repeat("\n", b.pendingBreaks))
	}
	b.sb.WriteByte('\n')
	b.pendingBreaks = 0
	b.pendingSpace = false
}

func (b *innerTextBuilder) requireBreaks(n int) {
	if n > b.pendingBreaks {
		b.pendingBreaks = n
	}
}

func isBlockLevel(name string) bool {
	switch name {
	case "address", "article", "aside", "blockquote", "body", "dd", "details", "dialog",
		"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "html", "li", "main",
		"nav", "ol", "pre", "section", "summary", "table", "tr", "ul":
		return true
	}
	return false
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
