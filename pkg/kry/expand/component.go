package expand

import (
	"fmt"

	"kryon-labs/kryonc/pkg/kry/ast"
	"kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/registry"
)

// Instance is one expanded component occurrence: the substituted body tree
// plus the state variables and functions that travel with it, tagged with
// a scope id unique within the compilation.
type Instance struct {
	Root      *ast.Node
	Scope     string
	State     []*ast.VariableDefinition
	Functions []*ast.Function
}

// Instantiator expands component references against a set of component
// definitions. Instance properties bind to declared parameters positionally
// first, then by name; unmatched parameters fall back to their declared
// default, or to null when none was declared.
type Instantiator struct {
	definitions []*ast.ComponentDefinition
	sub         *Substituter
	nextScope   int
}

// NewInstantiator creates an instantiator over the given definitions and
// constant table.
func NewInstantiator(definitions []*ast.ComponentDefinition, constants *registry.Constants) *Instantiator {
	return &Instantiator{
		definitions: definitions,
		sub:         NewSubstituter(NewEvaluator(constants)),
		nextScope:   1,
	}
}

// Definition returns the component definition matching an element type
// name, or nil when the name is not a component.
func (in *Instantiator) Definition(name string) *ast.ComponentDefinition {
	for _, d := range in.definitions {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Instantiate expands a component reference element into an Instance. The
// definition body is cloned per call; repeated instantiation of the same
// component is independent.
func (in *Instantiator) Instantiate(instance *ast.Node) (*Instance, error) {
	def := in.Definition(instance.ElementType)
	if def == nil {
		names := make([]string, len(in.definitions))
		for i, d := range in.definitions {
			names[i] = d.Name
		}
		return nil, &errors.Error{
			Type:       errors.ErrorTypeUnresolved,
			Message:    fmt.Sprintf("unknown component '%s'", instance.ElementType),
			Location:   instance.Location,
			Suggestion: errors.SuggestName(instance.ElementType, names),
		}
	}

	bindings := bindParameters(def, instance)

	root := componentRoot(def)
	var err error
	for i := range bindings {
		root, err = in.sub.Apply(root, &bindings[i])
		if err != nil {
			return nil, err
		}
	}

	scope := fmt.Sprintf("comp_%d", in.nextScope)
	in.nextScope++
	root.Scope = scope

	// State and function references inside the body must carry the same
	// scoped names their variable records are emitted under, or the
	// runtime cannot link a property back to its record.
	scoped := make(map[string]bool, len(def.State)+len(def.Functions))
	for _, s := range def.State {
		scoped[s.Name] = true
	}
	for _, f := range def.Functions {
		scoped[f.Name] = true
	}
	rewriteScopedRefs(root, scope, scoped)

	return &Instance{
		Root:      root,
		Scope:     scope,
		State:     def.State,
		Functions: def.Functions,
	}, nil
}

// bindParameters pairs instance properties against declared parameters.
// Unnamed properties bind positionally in declaration order; named
// properties bind by parameter name. A parameter left unbound takes its
// declared default, and null when it has none, so substitution always
// replaces every parameter reference.
func bindParameters(def *ast.ComponentDefinition, instance *ast.Node) []Binding {
	bound := make(map[string]*ast.Node, len(def.Parameters))

	positional := 0
	for _, prop := range instance.Properties {
		if prop.Name == "" {
			if positional < len(def.Parameters) {
				bound[def.Parameters[positional].Name] = prop.Value
			}
			positional++
			continue
		}
		if def.Parameter(prop.Name) != nil {
			bound[prop.Name] = prop.Value
		}
	}

	bindings := make([]Binding, 0, len(def.Parameters))
	for _, p := range def.Parameters {
		value := bound[p.Name]
		if value == nil {
			value = p.Default
		}
		if value == nil {
			value = ast.NewLiteral(ast.NullValue())
		}
		bindings = append(bindings, Binding{Name: p.Name, Value: value})
	}
	return bindings
}

// rewriteScopedRefs renames identifier and variable leaves matching a
// scoped name to scope.name, in place. The tree is an exclusively owned
// clone by the time this runs.
func rewriteScopedRefs(node *ast.Node, scope string, names map[string]bool) {
	if node == nil {
		return
	}
	if (node.Kind == ast.KindIdentifier || node.Kind == ast.KindVariable) && names[node.Name] {
		node.Name = scope + "." + node.Name
	}

	for _, p := range node.Properties {
		rewriteScopedRefs(p, scope, names)
	}
	for _, c := range node.Children {
		rewriteScopedRefs(c, scope, names)
	}
	for _, seg := range node.Segments {
		rewriteScopedRefs(seg, scope, names)
	}
	for _, el := range node.Elements {
		rewriteScopedRefs(el, scope, names)
	}
	for _, b := range node.Body {
		rewriteScopedRefs(b, scope, names)
	}
	rewriteScopedRefs(node.Value, scope, names)
	rewriteScopedRefs(node.Left, scope, names)
	rewriteScopedRefs(node.Right, scope, names)
	rewriteScopedRefs(node.Operand, scope, names)
	rewriteScopedRefs(node.Object, scope, names)
	rewriteScopedRefs(node.Array, scope, names)
	rewriteScopedRefs(node.Index, scope, names)
}

// componentRoot clones the definition body as a single element: a one
// element body becomes the root directly, a multi element body is wrapped
// in an implicit Container.
func componentRoot(def *ast.ComponentDefinition) *ast.Node {
	if len(def.Body) == 1 {
		return def.Body[0].Clone()
	}
	wrapper := ast.NewElement("Container")
	wrapper.Location = def.Location
	for _, child := range def.Body {
		wrapper.AddChild(child.Clone())
	}
	return wrapper
}
