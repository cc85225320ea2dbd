package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document represents the entire HTML document.
type Document Node

// NewDocument creates a new empty HTML Document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// ParseHTML parses an HTML document from a string.
func ParseHTML(htmlContent string) (*Document, error) {
	return ParseHTMLReader(strings.NewReader(htmlContent))
}

// ParseHTMLReader parses an HTML document using golang.org/x/net/html and
// converts the result into our DOM structure.
func ParseHTMLReader(r io.Reader) (*Document, error) {
	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := NewDocument()
	convertHTMLTree(netDoc, doc.AsNode(), doc)
	return doc, nil
}

// convertHTMLTree converts the children of an html.Node into children of parent.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DocumentNode {
			convertHTMLTree(c, parent, doc)
			continue
		}
		if node := convertHTMLNode(c, doc); node != nil {
			parent.AppendChild(node)
		}
	}
}

// convertHTMLNode converts a single html.Node and its subtree.
// Node kinds we do not model return nil.
func convertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node
	switch n.Type {
	case html.TextNode:
		return doc.CreateTextNode(n.Data)
	case html.CommentNode:
		return doc.CreateComment(n.Data)
	case html.DoctypeNode:
		return newNode(DocumentTypeNode, n.Data, doc)
	case html.ElementNode:
		el := doc.CreateElement(n.Data)
		for _, attr := range n.Attr {
			key := attr.Key
			if attr.Namespace != "" {
				key = attr.Namespace + ":" + attr.Key
			}
			el.setAttributeValue(strings.ToLower(key), attr.Val)
		}
		node = el.AsNode()
	default:
		return nil
	}
	convertHTMLTree(n, node, doc)
	return node
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// NodeType returns DocumentNode.
func (d *Document) NodeType() NodeType {
	return DocumentNode
}

// NodeName returns "#document".
func (d *Document) NodeName() string {
	return "#document"
}

// DocumentElement returns the root element of the document.
func (d *Document) DocumentElement() *Element {
	for child := d.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// childOfRoot returns the first child element of the root with the given local name.
func (d *Document) childOfRoot(localName string) *Element {
	docEl := d.DocumentElement()
	if docEl == nil {
		return nil
	}
	for _, el := range docEl.Children() {
		if el.LocalName() == localName {
			return el
		}
	}
	return nil
}

// Head returns the <head> element.
func (d *Document) Head() *Element {
	return d.childOfRoot("head")
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.childOfRoot("body")
}

// Title returns the text of the first <title> in <head>.
func (d *Document) Title() string {
	head := d.Head()
	if head == nil {
		return ""
	}
	for _, el := range head.Children() {
		if el.LocalName() == "title" {
			return strings.TrimSpace(el.TextContent())
		}
	}
	return ""
}

// CreateElement creates a new element with the given tag name.
// The tag name is lower-cased as for HTML documents.
func (d *Document) CreateElement(tagName string) *Element {
	localName := strings.ToLower(tagName)
	node := newNode(ElementNode, strings.ToUpper(localName), d)
	node.elementData = &elementData{
		localName: localName,
		tagName:   strings.ToUpper(localName),
	}
	return (*Element)(node)
}

// CreateTextNode creates a new Text node.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.nodeValue = data
	return node
}

// CreateComment creates a new Comment node.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.nodeValue = data
	return node
}

// GetElementById returns the first element in tree order with the given id.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.AsNode().walkElements(func(el *Element) bool {
		if el.Id() == id {
			found = el
			return false
		}
		return true
	})
	return found
}

// QuerySelector returns the first element in the document matching the
// selector, or nil when nothing matches or the selector is invalid.
func (d *Document) QuerySelector(selector string) *Element {
	el, _ := d.QuerySelectorWithError(selector)
	return el
}

// QuerySelectorWithError is QuerySelector with selector syntax errors reported.
func (d *Document) QuerySelectorWithError(selector string) (*Element, error) {
	return querySelector(d.AsNode(), selector)
}

// QuerySelectorAll returns every element in the document matching the
// selector, in document order. An invalid selector yields an empty list.
func (d *Document) QuerySelectorAll(selector string) *NodeList {
	nl, err := d.QuerySelectorAllWithError(selector)
	if err != nil {
		return NewStaticNodeList(nil)
	}
	return nl
}

// QuerySelectorAllWithError is QuerySelectorAll with selector syntax errors reported.
func (d *Document) QuerySelectorAllWithError(selector string) (*NodeList, error) {
	return querySelectorAll(d.AsNode(), selector)
}

// OuterHTML serializes the whole document.
func (d *Document) OuterHTML() string {
	var sb strings.Builder
	serializeNode(d.AsNode(), &sb)
	return sb.String()
}

func querySelector(root *Node, selector string) (*Element, error) {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}
	var found *Element
	root.walkElements(func(el *Element) bool {
		if sel.matches(el) {
			found = el
			return false
		}
		return true
	})
	return found, nil
}

func querySelectorAll(root *Node, selector string) (*NodeList, error) {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil, err
	}
	var nodes []*Node
	root.walkElements(func(el *Element) bool {
		if sel.matches(el) {
			nodes = append(nodes, el.AsNode())
		}
		return true
	})
	return NewStaticNodeList(nodes), nil
}
