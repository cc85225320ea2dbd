package dom

// NodeList is a static, ordered snapshot of nodes, as returned by
// QuerySelectorAll.
type NodeList struct {
	nodes []*Node
}

// NewStaticNodeList creates a new static NodeList from a slice of nodes.
func NewStaticNodeList(nodes []*Node) *NodeList {
	staticCopy := make([]*Node, len(nodes))
	copy(staticCopy, nodes)
	return &NodeList{nodes: staticCopy}
}

// Length returns the number of nodes in the collection.
func (nl *NodeList) Length() int {
	return len(nl.nodes)
}

// Item returns the node at the given index, or nil if the index is out of bounds.
func (nl *NodeList) Item(index int) *Node {
	if index < 0 || index >= len(nl.nodes) {
		return nil
	}
	return nl.nodes[index]
}

// Elements returns the element members of the list in order.
func (nl *NodeList) Elements() []*Element {
	result := make([]*Element, 0, len(nl.nodes))
	for _, n := range nl.nodes {
		if n.nodeType == ElementNode {
			result = append(result, (*Element)(n))
		}
	}
	return result
}
