package expand

import (
	"fmt"
	"strings"

	"kryon-labs/kryonc/pkg/kry/ast"
	"kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/registry"
)

// Binding is the single active (name, value) pair an evaluation runs under.
// Loop expansion binds the iteration variable; component instantiation binds
// one parameter at a time.
type Binding struct {
	Name  string
	Value *ast.Node
}

// Evaluator folds expression subtrees to literals where the constant table
// and the active binding allow it. Evaluation is pure: the input tree is
// never mutated, and failure to fold is not an error. The only hard error
// is a constant array index outside the array.
type Evaluator struct {
	constants *registry.Constants
}

// NewEvaluator creates an evaluator over the given constant table.
func NewEvaluator(constants *registry.Constants) *Evaluator {
	return &Evaluator{constants: constants}
}

// Evaluate attempts to reduce node to a literal under binding. It returns
// the reduced literal node and true, or the original node and false when
// the expression is not compile-time resolvable. The returned node is the
// input node itself when no reduction happened; callers that need ownership
// must clone.
func (e *Evaluator) Evaluate(node *ast.Node, binding *Binding) (*ast.Node, bool, error) {
	if node == nil {
		return nil, false, nil
	}

	switch node.Kind {
	case ast.KindLiteral:
		return node, true, nil

	case ast.KindIdentifier, ast.KindVariable:
		// A reference matching the active binding reduces to the bound
		// value. Identifiers additionally fall back to the constant
		// table; variables outside the binding stay reactive.
		if binding != nil && node.Name == binding.Name {
			return e.Evaluate(binding.Value, nil)
		}
		if node.Kind == ast.KindIdentifier {
			if value, ok := e.constants.Get(node.Name); ok {
				return e.Evaluate(value, binding)
			}
		}
		return node, false, nil

	case ast.KindBinaryOp:
		return e.evaluateBinary(node, binding)

	case ast.KindUnaryOp:
		return e.evaluateUnary(node, binding)

	case ast.KindMemberAccess:
		return e.evaluateMember(node, binding)

	case ast.KindArrayAccess:
		return e.evaluateIndex(node, binding)

	case ast.KindTemplate:
		return e.evaluateTemplate(node, binding)

	case ast.KindArrayLiteral, ast.KindObjectLiteral:
		// Composite literals resolve as themselves so member and index
		// access over bound objects and arrays can drill into them.
		return node, true, nil
	}

	return node, false, nil
}

func (e *Evaluator) evaluateBinary(node *ast.Node, binding *Binding) (*ast.Node, bool, error) {
	left, lok, err := e.Evaluate(node.Left, binding)
	if err != nil {
		return nil, false, err
	}
	right, rok, err := e.Evaluate(node.Right, binding)
	if err != nil {
		return nil, false, err
	}
	if !lok || !rok {
		return node, false, nil
	}
	if !left.IsLiteral(ast.ValueInteger) || !right.IsLiteral(ast.ValueInteger) {
		return node, false, nil
	}

	a := left.Literal.Int
	b := right.Literal.Int
	var result int64

	switch node.Op {
	case ast.OpAdd:
		result = a + b
	case ast.OpSub:
		result = a - b
	case ast.OpMul:
		result = a * b
	case ast.OpDiv:
		// Division by zero yields 0, matching the wire format's
		// established behavior. Integer division truncates toward zero.
		if b == 0 {
			result = 0
		} else {
			result = a / b
		}
	case ast.OpMod:
		if b == 0 {
			result = 0
		} else {
			result = a % b
		}
	default:
		return node, false, nil
	}

	lit := ast.NewLiteral(ast.IntValue(result))
	lit.Location = node.Location
	return lit, true, nil
}

func (e *Evaluator) evaluateUnary(node *ast.Node, binding *Binding) (*ast.Node, bool, error) {
	operand, ok, err := e.Evaluate(node.Operand, binding)
	if err != nil {
		return nil, false, err
	}
	if !ok || operand.Kind != ast.KindLiteral {
		return node, false, nil
	}

	switch node.Op {
	case ast.OpNeg:
		switch operand.Literal.Kind {
		case ast.ValueInteger:
			lit := ast.NewLiteral(ast.IntValue(-operand.Literal.Int))
			lit.Location = node.Location
			return lit, true, nil
		case ast.ValueFloat:
			lit := ast.NewLiteral(ast.FloatValue(-operand.Literal.Float))
			lit.Location = node.Location
			return lit, true, nil
		}
	case ast.OpNot:
		if operand.Literal.Kind == ast.ValueBoolean {
			lit := ast.NewLiteral(ast.BoolValue(!operand.Literal.Bool))
			lit.Location = node.Location
			return lit, true, nil
		}
	}

	return node, false, nil
}

func (e *Evaluator) evaluateMember(node *ast.Node, binding *Binding) (*ast.Node, bool, error) {
	object, ok, err := e.Evaluate(node.Object, binding)
	if err != nil {
		return nil, false, err
	}
	if !ok || object.Kind != ast.KindObjectLiteral {
		return node, false, nil
	}

	for _, prop := range object.Properties {
		if prop.Name == node.Member {
			return e.Evaluate(prop.Value, binding)
		}
	}
	return node, false, nil
}

func (e *Evaluator) evaluateIndex(node *ast.Node, binding *Binding) (*ast.Node, bool, error) {
	array, ok, err := e.Evaluate(node.Array, binding)
	if err != nil {
		return nil, false, err
	}
	if !ok || array.Kind != ast.KindArrayLiteral {
		return node, false, nil
	}

	index, ok, err := e.Evaluate(node.Index, binding)
	if err != nil {
		return nil, false, err
	}
	if !ok || !index.IsLiteral(ast.ValueInteger) {
		return node, false, nil
	}

	i := index.Literal.Int
	if i < 0 || i >= int64(len(array.Elements)) {
		name := describeArray(node.Array)
		return nil, false, &errors.Error{
			Type:       errors.ErrorTypeOutOfBounds,
			Message:    fmt.Sprintf("index %d out of bounds for array '%s' (length %d)", i, name, len(array.Elements)),
			Location:   node.Location,
			Suggestion: errors.SuggestIndexRange(name, len(array.Elements)),
		}
	}
	return e.Evaluate(array.Elements[i], binding)
}

func (e *Evaluator) evaluateTemplate(node *ast.Node, binding *Binding) (*ast.Node, bool, error) {
	var sb strings.Builder
	for _, seg := range node.Segments {
		reduced, ok, err := e.Evaluate(seg, binding)
		if err != nil {
			return nil, false, err
		}
		if !ok || reduced.Kind != ast.KindLiteral {
			// One unresolved segment leaves the whole template for the
			// runtime to resolve.
			return node, false, nil
		}
		sb.WriteString(reduced.Literal.String())
	}
	lit := ast.NewLiteral(ast.StringValue(sb.String()))
	lit.Location = node.Location
	return lit, true, nil
}

// describeArray names the array operand of an index expression for error
// messages.
func describeArray(node *ast.Node) string {
	if node == nil {
		return "array"
	}
	switch node.Kind {
	case ast.KindIdentifier, ast.KindVariable:
		return node.Name
	case ast.KindMemberAccess:
		return describeArray(node.Object) + "." + node.Member
	}
	return "array"
}
