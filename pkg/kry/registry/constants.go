package registry

import "kryon-labs/kryonc/pkg/kry/ast"

// Constants holds the document's constant table. Constants are defined in
// declaration order and each value may only reference constants defined
// before it, so the table is acyclic by construction.
//
// Not safe for concurrent use; each compile owns its own instance.
type Constants struct {
	byName map[string]*ast.Node
	order  []string
}

// NewConstants creates an empty constant table.
func NewConstants() *Constants {
	return &Constants{
		byName: make(map[string]*ast.Node),
	}
}

// Define adds a constant. Redefining a name overwrites the previous value
// but keeps its position in declaration order.
func (c *Constants) Define(name string, value *ast.Node) {
	if _, exists := c.byName[name]; !exists {
		c.order = append(c.order, name)
	}
	c.byName[name] = value
}

// Get returns the value bound to a constant name.
func (c *Constants) Get(name string) (*ast.Node, bool) {
	v, ok := c.byName[name]
	return v, ok
}

// Names returns the declared constant names in declaration order.
func (c *Constants) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of declared constants.
func (c *Constants) Len() int {
	return len(c.order)
}
