package dom

import (
	"strings"
)

// Node is a node in the document tree. Element and Document are defined over
// Node so the same tree pointers serve every node kind.
type Node struct {
	nodeType   NodeType
	nodeName   string
	nodeValue  string
	ownerDoc   *Document
	parentNode *Node

	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Only set for ElementNode.
	elementData *elementData
}

// newNode creates a detached node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	return &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType {
	return n.nodeType
}

// NodeName returns the name of the node.
// Elements report their upper-cased tag name, text nodes "#text",
// comments "#comment" and documents "#document".
func (n *Node) NodeName() string {
	return n.nodeName
}

// NodeValue returns the character data of text and comment nodes, and the
// empty string for everything else.
func (n *Node) NodeValue() string {
	return n.nodeValue
}

// SetNodeValue replaces the character data of a text or comment node.
func (n *Node) SetNodeValue(value string) {
	switch n.nodeType {
	case TextNode, CommentNode:
		n.nodeValue = value
	}
}

// OwnerDocument returns the Document that owns this node, or nil for a Document.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node.
func (n *Node) ParentNode() *Node {
	return n.parentNode
}

// ParentElement returns the parent Element, or nil if the parent is not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PreviousSibling returns the previous sibling node.
func (n *Node) PreviousSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildNodes returns true if this node has any child nodes.
func (n *Node) HasChildNodes() bool {
	return n.firstChild != nil
}

// ChildNodes returns a static snapshot of the node's children.
func (n *Node) ChildNodes() *NodeList {
	var nodes []*Node
	for c := n.firstChild; c != nil; c = c.nextSibling {
		nodes = append(nodes, c)
	}
	return NewStaticNodeList(nodes)
}

// TextContent returns the concatenated text of all descendant text nodes.
// Documents and doctypes return the empty string.
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return ""
	case TextNode, CommentNode:
		return n.nodeValue
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.nodeValue)
		case ElementNode:
			child.collectTextContent(sb)
		}
	}
}

// SetTextContent sets the text content of the node.
// For elements this replaces all children with a single text node, or with
// nothing when value is empty.
func (n *Node) SetTextContent(value string) {
	switch n.nodeType {
	case DocumentNode, DocumentTypeNode:
		return
	case TextNode, CommentNode:
		n.SetNodeValue(value)
	default:
		n.replaceChildrenWithText(value)
	}
}

func (n *Node) replaceChildrenWithText(value string) {
	for n.firstChild != nil {
		n.RemoveChild(n.firstChild)
	}
	if value != "" {
		n.AppendChild(n.ownerDoc.CreateTextNode(value))
	}
}

// AppendChild adds a node to the end of the list of children of this node.
// For error-returning version, use AppendChildWithError.
func (n *Node) AppendChild(child *Node) *Node {
	result, _ := n.AppendChildWithError(child)
	return result
}

// AppendChildWithError adds a node to the end of the list of children of this node.
// Returns an error if the operation violates hierarchy constraints.
func (n *Node) AppendChildWithError(child *Node) (*Node, error) {
	return n.InsertBeforeWithError(child, nil)
}

// InsertBefore inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	result, _ := n.InsertBeforeWithError(newChild, refChild)
	return result
}

// InsertBeforeWithError inserts a node before a reference child node.
// If refChild is nil, the node is appended to the end.
func (n *Node) InsertBeforeWithError(newChild, refChild *Node) (*Node, error) {
	if newChild == nil {
		return nil, ErrHierarchyRequest("The node to be inserted is null.")
	}
	switch n.nodeType {
	case TextNode, CommentNode, DocumentTypeNode:
		return nil, ErrHierarchyRequest("This node type does not support children.")
	}
	if newChild.nodeType == DocumentNode {
		return nil, ErrHierarchyRequest("Cannot insert a Document as a child.")
	}
	for anc := n; anc != nil; anc = anc.parentNode {
		if anc == newChild {
			return nil, ErrHierarchyRequest("The new child is an ancestor of the parent.")
		}
	}
	if refChild != nil && refChild.parentNode != n {
		return nil, ErrNotFound("The reference node is not a child of this node.")
	}
	if refChild == newChild {
		refChild = newChild.nextSibling
	}

	if newChild.parentNode != nil {
		newChild.parentNode.removeChildInternal(newChild)
	}

	newChild.parentNode = n
	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
	} else {
		newChild.nextSibling = refChild
		newChild.prevSibling = refChild.prevSibling
		if refChild.prevSibling != nil {
			refChild.prevSibling.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		refChild.prevSibling = newChild
	}
	return newChild, nil
}

// RemoveChild removes a child node from this node.
func (n *Node) RemoveChild(child *Node) *Node {
	result, _ := n.RemoveChildWithError(child)
	return result
}

// RemoveChildWithError removes a child node from this node.
// Returns an error if the child is not a child of this node.
func (n *Node) RemoveChildWithError(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("The node to be removed is null.")
	}
	if child.parentNode != n {
		return nil, ErrNotFound("The node to be removed is not a child of this node.")
	}
	n.removeChildInternal(child)
	return child, nil
}

// removeChildInternal unlinks child without checking that it belongs to n.
func (n *Node) removeChildInternal(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// walkElements visits every element below n in document order (pre-order).
// Returning false from fn stops the walk.
func (n *Node) walkElements(fn func(el *Element) bool) bool {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType != ElementNode {
			continue
		}
		if !fn((*Element)(child)) {
			return false
		}
		if !child.walkElements(fn) {
			return false
		}
	}
	return true
}
