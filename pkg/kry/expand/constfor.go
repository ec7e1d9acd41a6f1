package expand

import (
	"fmt"

	"kryon-labs/kryonc/pkg/kry/ast"
	"kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/registry"
)

// Expander unrolls const_for loops at compile time. Each iteration binds
// the loop variable and substitutes it into a fresh copy of every body
// element, so the emitted sequence is iteration-major, body-minor.
type Expander struct {
	constants *registry.Constants
	sub       *Substituter
	eval      *Evaluator
}

// NewExpander creates a loop expander over the given constant table.
func NewExpander(constants *registry.Constants) *Expander {
	eval := NewEvaluator(constants)
	return &Expander{
		constants: constants,
		sub:       NewSubstituter(eval),
		eval:      eval,
	}
}

// Count returns the number of elements Expand will emit for the loop:
// iterations times body length. It resolves array-mode sources without
// materializing any element, so an encoder can pre-compute a parent's
// expanded child count.
func (x *Expander) Count(loop *ast.Node) (int, error) {
	iterations, _, err := x.iterations(loop)
	if err != nil {
		return 0, err
	}
	return iterations * len(loop.Body), nil
}

// Expand unrolls the loop into an ordered flat sequence of element nodes.
// Range mode iterates the inclusive integer range; array mode iterates the
// elements of the named constant array in declaration order. A missing or
// non-array source is a hard error.
func (x *Expander) Expand(loop *ast.Node) ([]*ast.Node, error) {
	iterations, values, err := x.iterations(loop)
	if err != nil {
		return nil, err
	}

	out := make([]*ast.Node, 0, iterations*len(loop.Body))
	for i := 0; i < iterations; i++ {
		binding := &Binding{Name: loop.VarName, Value: values(i)}
		for _, body := range loop.Body {
			expanded, err := x.sub.Apply(body, binding)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded)
		}
	}
	return out, nil
}

// iterations resolves the loop source to an iteration count and a bound
// value per iteration index.
func (x *Expander) iterations(loop *ast.Node) (int, func(int) *ast.Node, error) {
	if loop.IsRange {
		n := loop.RangeEnd - loop.RangeStart + 1
		if n < 0 {
			n = 0
		}
		start := loop.RangeStart
		return n, func(i int) *ast.Node {
			return ast.NewLiteral(ast.IntValue(int64(start + i)))
		}, nil
	}

	source, ok := x.constants.Get(loop.Source)
	if !ok {
		return 0, nil, &errors.Error{
			Type:       errors.ErrorTypeUnresolved,
			Message:    fmt.Sprintf("const_for source '%s' is not a declared constant", loop.Source),
			Location:   loop.Location,
			Suggestion: errors.SuggestName(loop.Source, x.constants.Names()),
		}
	}
	resolved, ok, err := x.eval.Evaluate(source, nil)
	if err != nil {
		return 0, nil, err
	}
	if !ok || resolved.Kind != ast.KindArrayLiteral {
		return 0, nil, &errors.Error{
			Type:       errors.ErrorTypeUnresolved,
			Message:    fmt.Sprintf("const_for source '%s' is not an array constant", loop.Source),
			Location:   loop.Location,
			Suggestion: fmt.Sprintf("Declare '%s' as an array, e.g. %s: [\"a\", \"b\"]", loop.Source, loop.Source),
		}
	}

	elements := resolved.Elements
	return len(elements), func(i int) *ast.Node { return elements[i] }, nil
}
