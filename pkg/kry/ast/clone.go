package ast

// Clone deep-copies a node. Expansion works over clones so the defining
// subtree (component body or loop body) is never mutated and stays reusable
// across instantiations. The copy shares no pointers with the original.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := &Node{
		Kind:        n.Kind,
		Location:    n.Location,
		ElementType: n.ElementType,
		Scope:       n.Scope,
		Name:        n.Name,
		Literal:     n.Literal,
		Op:          n.Op,
		Member:      n.Member,
		VarName:     n.VarName,
		IsRange:     n.IsRange,
		RangeStart:  n.RangeStart,
		RangeEnd:    n.RangeEnd,
		Source:      n.Source,
	}

	c.Value = n.Value.Clone()
	c.Left = n.Left.Clone()
	c.Right = n.Right.Clone()
	c.Operand = n.Operand.Clone()
	c.Object = n.Object.Clone()
	c.Array = n.Array.Clone()
	c.Index = n.Index.Clone()

	c.Properties = cloneSlice(n.Properties)
	c.Children = cloneSlice(n.Children)
	c.Segments = cloneSlice(n.Segments)
	c.Elements = cloneSlice(n.Elements)
	c.Body = cloneSlice(n.Body)

	return c
}

func cloneSlice(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
