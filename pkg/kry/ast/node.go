package ast

// NodeKind identifies the variant of a Node. The node type is a closed
// tagged union: exactly the fields documented for a kind are meaningful.
type NodeKind string

const (
	KindElement       NodeKind = "element"
	KindProperty      NodeKind = "property"
	KindLiteral       NodeKind = "literal"
	KindIdentifier    NodeKind = "identifier"
	KindVariable      NodeKind = "variable"
	KindBinaryOp      NodeKind = "binary_op"
	KindUnaryOp       NodeKind = "unary_op"
	KindMemberAccess  NodeKind = "member_access"
	KindArrayAccess   NodeKind = "array_access"
	KindTemplate      NodeKind = "template"
	KindArrayLiteral  NodeKind = "array_literal"
	KindObjectLiteral NodeKind = "object_literal"
	KindConstFor      NodeKind = "const_for"
)

// Operator identifies a binary or unary operator.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpNeg Operator = "neg"
	OpNot Operator = "not"
)

// Node is a single AST node. Which fields are meaningful depends on Kind:
//
//	Element:       ElementType, Properties, Children, Scope
//	Property:      Name, Value (also used for ObjectLiteral fields)
//	Literal:       Literal
//	Identifier:    Name (resolved against the active binding or constants)
//	Variable:      Name (runtime-reactive reference, never folded)
//	BinaryOp:      Op, Left, Right
//	UnaryOp:       Op, Operand
//	MemberAccess:  Object, Member
//	ArrayAccess:   Array, Index
//	Template:      Segments (literal and expression segments, concatenated)
//	ArrayLiteral:  Elements
//	ObjectLiteral: Properties (ordered Property nodes)
//	ConstFor:      VarName, IsRange, RangeStart, RangeEnd, Source, Body
type Node struct {
	Kind     NodeKind
	Location Location

	// Element
	ElementType string
	Properties  []*Node
	Children    []*Node
	Scope       string // component instance scope tag, empty outside instances

	// Property / Identifier / Variable
	Name  string
	Value *Node

	// Literal
	Literal Value

	// BinaryOp / UnaryOp
	Op      Operator
	Left    *Node
	Right   *Node
	Operand *Node

	// MemberAccess
	Object *Node
	Member string

	// ArrayAccess
	Array *Node
	Index *Node

	// Template
	Segments []*Node

	// ArrayLiteral
	Elements []*Node

	// ConstFor
	VarName    string
	IsRange    bool
	RangeStart int
	RangeEnd   int
	Source     string // constant array name for array mode
	Body       []*Node
}

// NewElement returns an element node with the given type name.
func NewElement(elementType string) *Node {
	return &Node{Kind: KindElement, ElementType: elementType}
}

// NewProperty returns a property node binding name to value.
func NewProperty(name string, value *Node) *Node {
	return &Node{Kind: KindProperty, Name: name, Value: value}
}

// NewLiteral returns a literal node carrying the given value.
func NewLiteral(v Value) *Node {
	return &Node{Kind: KindLiteral, Literal: v}
}

// NewIdentifier returns an identifier reference node.
func NewIdentifier(name string) *Node {
	return &Node{Kind: KindIdentifier, Name: name}
}

// NewVariable returns a reactive variable reference node.
func NewVariable(name string) *Node {
	return &Node{Kind: KindVariable, Name: name}
}

// NewBinaryOp returns a binary operation node.
func NewBinaryOp(op Operator, left, right *Node) *Node {
	return &Node{Kind: KindBinaryOp, Op: op, Left: left, Right: right}
}

// NewUnaryOp returns a unary operation node.
func NewUnaryOp(op Operator, operand *Node) *Node {
	return &Node{Kind: KindUnaryOp, Op: op, Operand: operand}
}

// NewMemberAccess returns an object.member access node.
func NewMemberAccess(object *Node, member string) *Node {
	return &Node{Kind: KindMemberAccess, Object: object, Member: member}
}

// NewArrayAccess returns an array[index] access node.
func NewArrayAccess(array, index *Node) *Node {
	return &Node{Kind: KindArrayAccess, Array: array, Index: index}
}

// NewTemplate returns a template node from ordered segments.
func NewTemplate(segments ...*Node) *Node {
	return &Node{Kind: KindTemplate, Segments: segments}
}

// NewArrayLiteral returns an array literal node from ordered elements.
func NewArrayLiteral(elements ...*Node) *Node {
	return &Node{Kind: KindArrayLiteral, Elements: elements}
}

// NewObjectLiteral returns an object literal node from ordered property nodes.
func NewObjectLiteral(properties ...*Node) *Node {
	return &Node{Kind: KindObjectLiteral, Properties: properties}
}

// NewRangeFor returns a const_for node iterating varName over the inclusive
// integer range [start, end].
func NewRangeFor(varName string, start, end int, body ...*Node) *Node {
	return &Node{
		Kind:       KindConstFor,
		VarName:    varName,
		IsRange:    true,
		RangeStart: start,
		RangeEnd:   end,
		Body:       body,
	}
}

// NewSourceFor returns a const_for node iterating varName over the named
// constant array.
func NewSourceFor(varName, source string, body ...*Node) *Node {
	return &Node{Kind: KindConstFor, VarName: varName, Source: source, Body: body}
}

// AddProperty appends a property node to an element or object literal.
func (n *Node) AddProperty(prop *Node) {
	n.Properties = append(n.Properties, prop)
}

// AddChild appends a child node to an element.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Property returns the element's property with the given name, or nil.
func (n *Node) Property(name string) *Node {
	for _, p := range n.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// IsLiteral returns true if the node is a literal of the given kind.
func (n *Node) IsLiteral(kind ValueKind) bool {
	return n != nil && n.Kind == KindLiteral && n.Literal.Kind == kind
}
