package node

// Descendants collects the node's embedded subtree, depth-first, parent
// before children. The receiver itself is not included.
func Descendants(n *Node) []*Node {
	if n == nil {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		out = append(out, c)
		out = append(out, Descendants(c)...)
	}
	return out
}

// Find returns the first node in the embedded subtree (including the root)
// with the given id, or nil.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if found := Find(c, id); found != nil {
			return found
		}
	}
	return nil
}
