package expand

import (
	"strings"

	"kryon-labs/kryonc/pkg/kry/ast"
)

// Substituter clones AST subtrees while replacing references to a named
// binding with the bound value. The input subtree is never mutated, so a
// component body or loop body can be substituted any number of times.
type Substituter struct {
	eval *Evaluator
}

// NewSubstituter creates a substituter that folds with the given evaluator
// after replacing references.
func NewSubstituter(eval *Evaluator) *Substituter {
	return &Substituter{eval: eval}
}

// Apply returns a deep copy of node with every identifier or variable
// reference to binding.Name replaced by a copy of the bound value. String
// literals and templates carrying ${...} interpolation are folded to plain
// strings where the binding and constant table allow. Index errors from
// folding are reported; everything else that cannot fold is carried
// through for the runtime.
func (s *Substituter) Apply(node *ast.Node, binding *Binding) (*ast.Node, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case ast.KindIdentifier, ast.KindVariable:
		if binding != nil && node.Name == binding.Name {
			// The bound value may itself contain references; re-substitute
			// without the binding so nested structures copy cleanly.
			return s.Apply(binding.Value, nil)
		}
		return node.Clone(), nil

	case ast.KindLiteral:
		if node.Literal.Kind == ast.ValueString && strings.Contains(node.Literal.Str, "${") {
			if folded, ok, err := s.interpolate(node.Literal.Str, binding); err != nil {
				return nil, err
			} else if ok {
				lit := ast.NewLiteral(ast.StringValue(folded))
				lit.Location = node.Location
				return lit, nil
			}
		}
		return node.Clone(), nil
	}

	clone := node.Clone()
	if err := s.applyInPlace(clone, binding); err != nil {
		return nil, err
	}

	// Property values and template segments got references replaced; fold
	// what now reduces to a literal.
	if clone.Kind == ast.KindProperty && clone.Value != nil {
		reduced, ok, err := s.eval.Evaluate(clone.Value, binding)
		if err != nil {
			return nil, err
		}
		if ok && reduced.Kind == ast.KindLiteral {
			clone.Value = reduced.Clone()
		}
	}
	if clone.Kind == ast.KindTemplate {
		reduced, ok, err := s.eval.Evaluate(clone, binding)
		if err != nil {
			return nil, err
		}
		if ok {
			return reduced.Clone(), nil
		}
	}
	return clone, nil
}

// applyInPlace rewrites every child slot of an already-cloned node.
func (s *Substituter) applyInPlace(clone *ast.Node, binding *Binding) error {
	var err error
	rewrite := func(n *ast.Node) *ast.Node {
		if err != nil || n == nil {
			return n
		}
		var out *ast.Node
		out, err = s.Apply(n, binding)
		return out
	}

	for i, p := range clone.Properties {
		clone.Properties[i] = rewrite(p)
	}
	for i, c := range clone.Children {
		clone.Children[i] = rewrite(c)
	}
	for i, seg := range clone.Segments {
		clone.Segments[i] = rewrite(seg)
	}
	for i, el := range clone.Elements {
		clone.Elements[i] = rewrite(el)
	}
	for i, b := range clone.Body {
		clone.Body[i] = rewrite(b)
	}
	clone.Value = rewrite(clone.Value)
	clone.Left = rewrite(clone.Left)
	clone.Right = rewrite(clone.Right)
	clone.Operand = rewrite(clone.Operand)
	clone.Object = rewrite(clone.Object)
	clone.Array = rewrite(clone.Array)
	clone.Index = rewrite(clone.Index)
	return err
}

// interpolate folds ${...} path expressions inside a string literal. It
// returns the folded string and true only when every marker resolves to a
// literal; a single unresolved marker leaves the string untouched for the
// runtime.
func (s *Substituter) interpolate(src string, binding *Binding) (string, bool, error) {
	var sb strings.Builder
	rest := src

	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			sb.WriteString(rest)
			return sb.String(), true, nil
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return src, false, nil
		}
		end += start

		sb.WriteString(rest[:start])
		expr := ast.ParsePath(rest[start+2 : end])
		if expr == nil {
			return src, false, nil
		}

		reduced, ok, err := s.eval.Evaluate(expr, binding)
		if err != nil {
			return "", false, err
		}
		if !ok || reduced.Kind != ast.KindLiteral {
			return src, false, nil
		}
		sb.WriteString(reduced.Literal.String())
		rest = rest[end+1:]
	}
}

