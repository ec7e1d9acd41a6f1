package ast

// Document is the root of a parsed Kryon source document. Top-level
// declarations appear in source order; all constants and component
// definitions are fully populated before any element is expanded
// (single forward pass, no forward references).
type Document struct {
	Name        string // document name, usually derived from the file name
	Constants   []*Constant
	Components  []*ComponentDefinition
	Variables   []*VariableDefinition
	Root        *Node // root element tree
	SourceFile  string
	Location    Location
}

// Constant is a top-level @const declaration. Constant values reference
// only literals or previously declared constants, so the table is acyclic
// by construction.
type Constant struct {
	Name     string
	Value    *Node
	Location Location
}

// ComponentDefinition is a reusable component template. The body is owned by
// the definition and never mutated; instantiation clones it.
type ComponentDefinition struct {
	Name       string
	Parameters []Parameter
	State      []*VariableDefinition
	Functions  []*Function
	Body       []*Node
	Location   Location
}

// Parameter declares a component parameter with an optional default value.
type Parameter struct {
	Name    string
	Default *Node // nil when the parameter has no declared default
}

// Parameter returns the declared parameter with the given name, or nil.
func (d *ComponentDefinition) Parameter(name string) *Parameter {
	for i := range d.Parameters {
		if d.Parameters[i].Name == name {
			return &d.Parameters[i]
		}
	}
	return nil
}

// VariableDefinition is a top-level or component-scoped variable. Reactive
// variables may change at runtime and are never folded to literals.
type VariableDefinition struct {
	Name     string
	Reactive bool
	Value    *Node
	Location Location
}

// Function is a script function carried on a component definition. The
// compiler core does not execute functions; they ride along into the
// instance scope for the runtime's script engine.
type Function struct {
	Name     string
	Language string
	Params   []string
	Source   string
	Location Location
}

// Component returns the component definition with the given name, or nil.
func (d *Document) Component(name string) *ComponentDefinition {
	for _, c := range d.Components {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Constant returns the constant declaration with the given name, or nil.
func (d *Document) Constant(name string) *Constant {
	for _, c := range d.Constants {
		if c.Name == name {
			return c
		}
	}
	return nil
}
