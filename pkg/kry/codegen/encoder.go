package codegen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kryon-labs/kryonc/pkg/kry/ast"
	"kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/expand"
	"kryon-labs/kryonc/pkg/kry/registry"
)

// Variable type bytes: low nibble selects the value shape, 0x10 marks
// reactive. The flags byte bit 0 carries reactivity as well; readers may
// rely on either.
const (
	VarStaticString  uint8 = 0x00
	VarStaticInteger uint8 = 0x01
	VarStaticFloat   uint8 = 0x02
	VarStaticBoolean uint8 = 0x03

	VarReactiveBit uint8 = 0x10

	VarFlagReactive uint8 = 0x01
)

// Reactive sentinels. A numeric-hint property bound to a runtime-reactive
// reference cannot carry a real value, so the encoder writes -(2^24-1),
// a magnitude no plausible UI value reaches that is exactly representable
// in float32. String-family hints carry the variable name instead.
const (
	ReactiveSentinelFloat float32 = -16777215.0
	ReactiveSentinelInt   int32   = -16777215
)

// Encoder serializes expanded documents into KRB variable and element
// records. It drives loop expansion and component instantiation itself so
// a parent's expanded child count can be written before its children, and
// interns every emitted string.
//
// Records accumulate in separate variable and element buffers; the File
// assembler writes the string table first, which is only complete once
// both buffers are.
type Encoder struct {
	strings  *StringTable
	elements *registry.Elements
	eval     *expand.Evaluator
	expander *expand.Expander
	inst     *expand.Instantiator

	varBuf    bytes.Buffer
	elemBuf   bytes.Buffer
	varCount  uint32
	elemCount uint32
	nextID    uint32
}

// NewEncoder creates an encoder for one compilation unit.
func NewEncoder(strs *StringTable, els *registry.Elements, constants *registry.Constants, definitions []*ast.ComponentDefinition) *Encoder {
	return &Encoder{
		strings:  strs,
		elements: els,
		eval:     expand.NewEvaluator(constants),
		expander: expand.NewExpander(constants),
		inst:     expand.NewInstantiator(definitions, constants),
		nextID:   1,
	}
}

// EncodeVariable writes one variable record. The value type is inferred by
// attempting compile-time evaluation of the initializer, falling back to
// string when no numeric or boolean literal could be produced. A non-empty
// scope prefixes the variable name, isolating component instance state.
func (e *Encoder) EncodeVariable(v *ast.VariableDefinition, scope string) error {
	name := v.Name
	if scope != "" {
		name = scope + "." + name
	}
	writeU32(&e.varBuf, e.strings.Intern(name))

	value := v.Value
	if value == nil {
		value = ast.NewLiteral(ast.NullValue())
	}
	folded, ok, err := e.eval.Evaluate(value, nil)
	if err != nil {
		return err
	}

	typ := VarStaticString
	lit := ast.Value{Kind: ast.ValueString}
	if ok && folded.Kind == ast.KindLiteral {
		lit = folded.Literal
		switch lit.Kind {
		case ast.ValueInteger:
			typ = VarStaticInteger
		case ast.ValueFloat:
			typ = VarStaticFloat
		case ast.ValueBoolean:
			typ = VarStaticBoolean
		}
	}

	flags := uint8(0)
	if v.Reactive {
		typ |= VarReactiveBit
		flags |= VarFlagReactive
	}
	e.varBuf.WriteByte(typ)
	e.varBuf.WriteByte(flags)

	switch typ &^ VarReactiveBit {
	case VarStaticInteger:
		writeU32(&e.varBuf, uint32(int32(lit.Int)))
	case VarStaticFloat:
		writeU32(&e.varBuf, math.Float32bits(float32(lit.Float)))
	case VarStaticBoolean:
		b := byte(0)
		if lit.Bool {
			b = 1
		}
		e.varBuf.WriteByte(b)
	default:
		s := lit.Str
		if !ok || folded.Kind != ast.KindLiteral {
			s = stringForm(value)
		} else if lit.Kind != ast.ValueString {
			s = lit.String()
		}
		writeString(&e.varBuf, s)
	}

	e.varCount++
	return nil
}

// EncodeElementTree serializes root and its descendants. Const_for children
// are expanded in place; component references are instantiated, their state
// variables emitted under the instance scope, and their substituted body
// encoded in the reference's position.
func (e *Encoder) EncodeElementTree(root *ast.Node) error {
	return e.encodeNode(root, 0)
}

// ElementCount returns the number of element records written so far.
func (e *Encoder) ElementCount() int { return int(e.elemCount) }

// VariableCount returns the number of variable records written so far.
func (e *Encoder) VariableCount() int { return int(e.varCount) }

// StringCount returns the number of interned strings.
func (e *Encoder) StringCount() int { return e.strings.Len() }

func (e *Encoder) encodeNode(node *ast.Node, parentID uint32) error {
	switch node.Kind {
	case ast.KindConstFor:
		expanded, err := e.expander.Expand(node)
		if err != nil {
			return err
		}
		for _, el := range expanded {
			if err := e.encodeNode(el, parentID); err != nil {
				return err
			}
		}
		return nil

	case ast.KindElement:
		if e.inst.Definition(node.ElementType) != nil {
			return e.encodeComponent(node, parentID)
		}
		return e.encodeElement(node, parentID)
	}

	return &errors.Error{
		Type:     errors.ErrorTypeUnsupported,
		Message:  fmt.Sprintf("cannot encode %s node as an element", node.Kind),
		Location: node.Location,
	}
}

func (e *Encoder) encodeComponent(node *ast.Node, parentID uint32) error {
	instance, err := e.inst.Instantiate(node)
	if err != nil {
		return err
	}
	for _, state := range instance.State {
		if err := e.EncodeVariable(state, instance.Scope); err != nil {
			return err
		}
	}
	for _, fn := range instance.Functions {
		if err := e.encodeFunction(fn, instance.Scope); err != nil {
			return err
		}
	}
	return e.encodeNode(instance.Root, parentID)
}

// encodeFunction carries a component script function into the variable
// section as a scoped string record holding its source text. The compiler
// never executes functions; the runtime's script engine resolves them by
// the same scoped-name link the element records reference.
func (e *Encoder) encodeFunction(fn *ast.Function, scope string) error {
	def := &ast.VariableDefinition{
		Name:     fn.Name,
		Value:    ast.NewLiteral(ast.StringValue(fn.Source)),
		Location: fn.Location,
	}
	return e.EncodeVariable(def, scope)
}

func (e *Encoder) encodeElement(node *ast.Node, parentID uint32) error {
	id := e.nextID
	e.nextID++
	e.elemCount++

	styleID, props := e.splitStyle(node.Properties)

	childCount, err := e.expandedChildCount(node)
	if err != nil {
		return err
	}

	writeU32(&e.elemBuf, id)
	writeU32(&e.elemBuf, e.elements.ID(node.ElementType))
	writeU32(&e.elemBuf, parentID)
	writeU32(&e.elemBuf, styleID)
	writeU16(&e.elemBuf, uint16(len(props)))
	writeU16(&e.elemBuf, childCount)
	writeU16(&e.elemBuf, eventCount(props))
	writeU32(&e.elemBuf, 0) // flags

	for _, prop := range props {
		if err := e.encodeProperty(prop); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := e.encodeNode(child, id); err != nil {
			return err
		}
	}
	return nil
}

// splitStyle extracts a string-literal style property into the record's
// style id slot; all other properties encode as property records.
func (e *Encoder) splitStyle(props []*ast.Node) (uint32, []*ast.Node) {
	styleID := uint32(0)
	out := make([]*ast.Node, 0, len(props))
	for _, p := range props {
		if p.Name == "style" && p.Value.IsLiteral(ast.ValueString) {
			styleID = e.strings.Intern(p.Value.Literal.Str)
			continue
		}
		out = append(out, p)
	}
	return styleID, out
}

// expandedChildCount pre-computes the child slot of an element record:
// const_for children contribute iterations times body length, everything
// else contributes one.
func (e *Encoder) expandedChildCount(node *ast.Node) (uint16, error) {
	total := 0
	for _, child := range node.Children {
		if child.Kind == ast.KindConstFor {
			n, err := e.expander.Count(child)
			if err != nil {
				return 0, err
			}
			total += n
			continue
		}
		total++
	}
	return uint16(total), nil
}

func eventCount(props []*ast.Node) uint16 {
	n := uint16(0)
	for _, p := range props {
		if registry.HintForName(p.Name) == registry.HintReference {
			n++
		}
	}
	return n
}

func (e *Encoder) encodeProperty(prop *ast.Node) error {
	id, known := registry.PropertyID(prop.Name)
	var hint registry.TypeHint
	if known {
		writeU16(&e.elemBuf, id)
		hint = registry.PropertyHint(id)
	} else {
		writeU16(&e.elemBuf, registry.CustomPropertyID)
		writeU32(&e.elemBuf, e.strings.Intern(prop.Name))
		hint = registry.HintAny
	}
	return e.encodeValue(prop, hint)
}

func (e *Encoder) encodeValue(prop *ast.Node, hint registry.TypeHint) error {
	value, resolved, err := e.eval.Evaluate(prop.Value, nil)
	if err != nil {
		return err
	}
	reactive := !resolved

	switch {
	case hint == registry.HintColor:
		if reactive {
			writeI32(&e.elemBuf, ReactiveSentinelInt)
			return nil
		}
		argb, err := colorBits(value, prop)
		if err != nil {
			return err
		}
		writeU32(&e.elemBuf, argb)

	case hint.IsFloatFamily():
		if reactive {
			writeU32(&e.elemBuf, math.Float32bits(ReactiveSentinelFloat))
			return nil
		}
		if value.Kind != ast.KindLiteral || !value.Literal.IsNumeric() {
			return unsupportedValue(prop, hint)
		}
		writeU32(&e.elemBuf, math.Float32bits(float32(value.Literal.AsFloat())))

	case hint == registry.HintInteger:
		if reactive {
			writeI32(&e.elemBuf, ReactiveSentinelInt)
			return nil
		}
		if !value.IsLiteral(ast.ValueInteger) {
			return unsupportedValue(prop, hint)
		}
		writeU32(&e.elemBuf, uint32(int32(value.Literal.Int)))

	case hint == registry.HintBoolean:
		b := byte(0)
		if value.IsLiteral(ast.ValueBoolean) && value.Literal.Bool {
			b = 1
		}
		e.elemBuf.WriteByte(b)

	case hint == registry.HintArray:
		if reactive || value.Kind != ast.KindArrayLiteral {
			return unsupportedValue(prop, hint)
		}
		writeU16(&e.elemBuf, uint16(len(value.Elements)))
		for _, el := range value.Elements {
			folded, ok, err := e.eval.Evaluate(el, nil)
			if err != nil {
				return err
			}
			if !ok || !folded.IsLiteral(ast.ValueString) {
				return &errors.Error{
					Type:       errors.ErrorTypeUnsupported,
					Message:    fmt.Sprintf("array property '%s' requires string literal elements", prop.Name),
					Location:   prop.Location,
					Suggestion: "Array properties carry string table references; quote each element",
				}
			}
			writeU32(&e.elemBuf, e.strings.Intern(folded.Literal.Str))
		}

	default:
		// String family. Reactive references write their source form so
		// the runtime can resolve them by name.
		if reactive {
			writeString(&e.elemBuf, stringForm(value))
			return nil
		}
		if value.Kind != ast.KindLiteral {
			return unsupportedValue(prop, hint)
		}
		writeString(&e.elemBuf, value.Literal.String())
	}
	return nil
}

// colorBits packs a folded color property into 0xAARRGGBB.
func colorBits(value *ast.Node, prop *ast.Node) (uint32, error) {
	if value.Kind == ast.KindLiteral {
		switch value.Literal.Kind {
		case ast.ValueColor:
			return value.Literal.Color, nil
		case ast.ValueInteger:
			return uint32(value.Literal.Int), nil
		case ast.ValueString:
			if argb, ok := parseColor(value.Literal.Str); ok {
				return argb, nil
			}
		}
	}
	return 0, unsupportedValue(prop, registry.HintColor)
}

// parseColor reads #RGB, #RRGGBB, and #RRGGBBAA forms into packed
// 0xAARRGGBB. Colors without an alpha component are fully opaque.
func parseColor(s string) (uint32, bool) {
	if !strings.HasPrefix(s, "#") {
		return 0, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[i*2] = hex[i]
			expanded[i*2+1] = hex[i]
		}
		hex = string(expanded[:])
		fallthrough
	case 6:
		rgb, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, false
		}
		return 0xFF000000 | uint32(rgb), true
	case 8:
		rgba, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return 0, false
		}
		// Source text is RRGGBBAA; the wire packs alpha high.
		return uint32(rgba>>8) | uint32(rgba&0xFF)<<24, true
	}
	return 0, false
}

// stringForm renders an unresolved expression for a string slot: reactive
// variables by name, templates in their ${...} source form.
func stringForm(node *ast.Node) string {
	switch node.Kind {
	case ast.KindVariable, ast.KindIdentifier:
		return node.Name
	case ast.KindTemplate:
		var sb strings.Builder
		for _, seg := range node.Segments {
			if seg.IsLiteral(ast.ValueString) {
				sb.WriteString(seg.Literal.Str)
				continue
			}
			sb.WriteString("${")
			sb.WriteString(stringForm(seg))
			sb.WriteString("}")
		}
		return sb.String()
	case ast.KindLiteral:
		return node.Literal.String()
	case ast.KindMemberAccess:
		return stringForm(node.Object) + "." + node.Member
	}
	return ""
}

func unsupportedValue(prop *ast.Node, hint registry.TypeHint) error {
	return &errors.Error{
		Type:     errors.ErrorTypeUnsupported,
		Message:  fmt.Sprintf("property '%s' value cannot be encoded as %s", prop.Name, hint),
		Location: prop.Location,
	}
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// writeI32 reinterprets a signed value as its wire bit pattern. A typed
// negative constant cannot convert to uint32 directly, so conversion goes
// through the parameter.
func writeI32(buf *bytes.Buffer, v int32) {
	writeU32(buf, uint32(v))
}

// writeString caps the payload at the u16 length prefix's maximum so an
// oversized string can never desynchronize the records that follow it.
func writeString(buf *bytes.Buffer, s string) {
	if len(s) > math.MaxUint16 {
		s = s[:math.MaxUint16]
	}
	writeU16(buf, uint16(len(s)))
	buf.WriteString(s)
}
