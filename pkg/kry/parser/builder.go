package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kryon-labs/kryonc/pkg/kry/ast"
	kryErrors "kryon-labs/kryonc/pkg/kry/errors"
)

// builder constructs AST nodes from intermediate YAML structures.
// It handles type conversion, validation, and preserves source locations.
type builder struct {
	sourcePath string
	maxDepth   int
	errors     *kryErrors.ErrorList
}

// newBuilder creates a new AST builder for the given source file.
func newBuilder(sourcePath string, maxDepth int) *builder {
	return &builder{
		sourcePath: sourcePath,
		maxDepth:   maxDepth,
		errors:     kryErrors.NewErrorList(),
	}
}

// buildDocument transforms a yamlDocument into an ast.Document.
func (b *builder) buildDocument(yd *yamlDocument) (*ast.Document, error) {
	doc := &ast.Document{
		Name:       yd.Name,
		SourceFile: b.sourcePath,
		Location:   ast.Location{File: b.sourcePath, Line: 1, Column: 1},
	}
	if doc.Name == "" {
		base := filepath.Base(b.sourcePath)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	b.buildConstants(doc, yd.Constants)
	b.buildVariables(doc, yd.Variables)
	for i := range yd.Components {
		if def := b.buildComponent(&yd.Components[i]); def != nil {
			doc.Components = append(doc.Components, def)
		}
	}

	if yd.Root == nil {
		b.addError(kryErrors.ErrorTypeStructural, "document has no root element", doc.Location,
			"Add a 'root:' section with a single top-level element")
	} else {
		doc.Root = b.buildElement(yd.Root, 0)
	}

	if b.errors.HasErrors() {
		return nil, b.errors.ToError()
	}
	return doc, nil
}

// buildConstants reads the ordered constants mapping. Declaration order is
// preserved so each constant may reference only those declared before it.
func (b *builder) buildConstants(doc *ast.Document, node *yaml.Node) {
	node = resolved(node)
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		b.addError(kryErrors.ErrorTypeStructural, "constants section must be a mapping", b.loc(node), "")
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		doc.Constants = append(doc.Constants, &ast.Constant{
			Name:     key.Value,
			Value:    b.buildValue(node.Content[i+1], 0),
			Location: b.loc(key),
		})
	}
}

// buildVariables reads the variables mapping. An entry is either a scalar
// shorthand for a static value or a mapping with reactive and value keys.
func (b *builder) buildVariables(doc *ast.Document, node *yaml.Node) {
	node = resolved(node)
	if node == nil {
		return
	}
	if node.Kind != yaml.MappingNode {
		b.addError(kryErrors.ErrorTypeStructural, "variables section must be a mapping", b.loc(node), "")
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		doc.Variables = append(doc.Variables, b.buildVariableDef(key.Value, node.Content[i+1], b.loc(key)))
	}
}

func (b *builder) buildVariableDef(name string, node *yaml.Node, loc ast.Location) *ast.VariableDefinition {
	node = resolved(node)
	def := &ast.VariableDefinition{Name: name, Location: loc}

	if node != nil && node.Kind == yaml.MappingNode && mappingHasKey(node, "value") {
		var spec struct {
			Reactive bool       `yaml:"reactive"`
			Value    *yaml.Node `yaml:"value"`
		}
		if err := node.Decode(&spec); err != nil {
			b.addError(kryErrors.ErrorTypeStructural,
				fmt.Sprintf("invalid variable '%s': %v", name, err), loc, "")
			return def
		}
		def.Reactive = spec.Reactive
		def.Value = b.buildValue(spec.Value, 0)
		return def
	}

	def.Value = b.buildValue(node, 0)
	return def
}

func (b *builder) buildComponent(yc *yamlComponent) *ast.ComponentDefinition {
	loc := b.loc(yc.node)
	if yc.Name == "" {
		b.addError(kryErrors.ErrorTypeStructural, "component is missing a name", loc,
			"Add 'name:' to the component definition")
		return nil
	}

	def := &ast.ComponentDefinition{Name: yc.Name, Location: loc}
	for _, p := range yc.Params {
		param := ast.Parameter{Name: p.Name}
		if p.Default != nil {
			param.Default = b.buildValue(p.Default, 0)
		}
		def.Parameters = append(def.Parameters, param)
	}

	if state := resolved(yc.State); state != nil && state.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(state.Content); i += 2 {
			key := state.Content[i]
			def.State = append(def.State, b.buildVariableDef(key.Value, state.Content[i+1], b.loc(key)))
		}
	}

	for _, f := range yc.Functions {
		def.Functions = append(def.Functions, &ast.Function{
			Name:     f.Name,
			Language: f.Language,
			Params:   f.Params,
			Source:   f.Source,
			Location: loc,
		})
	}

	def.Body = b.buildElementList(yc.Body, 0)
	if len(def.Body) == 0 {
		b.addError(kryErrors.ErrorTypeStructural,
			fmt.Sprintf("component '%s' has an empty body", yc.Name), loc, "")
		return nil
	}
	return def
}

// buildElementList reads a YAML sequence of element nodes.
func (b *builder) buildElementList(node *yaml.Node, depth int) []*ast.Node {
	node = resolved(node)
	if node == nil {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		b.addError(kryErrors.ErrorTypeStructural, "expected a list of elements", b.loc(node), "")
		return nil
	}
	out := make([]*ast.Node, 0, len(node.Content))
	for _, child := range node.Content {
		if el := b.buildElement(child, depth); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// buildElement reads one element: a single-key mapping from the element
// type name to its properties, with the reserved keys "children" (nested
// elements) and "for" (a const_for loop).
func (b *builder) buildElement(node *yaml.Node, depth int) *ast.Node {
	node = resolved(node)
	if node == nil {
		return nil
	}
	if depth > b.maxDepth {
		b.addError(kryErrors.ErrorTypeStructural,
			fmt.Sprintf("element nesting exceeds maximum depth %d", b.maxDepth), b.loc(node), "")
		return nil
	}
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		b.addError(kryErrors.ErrorTypeStructural,
			"element must be a single-key mapping of type name to body", b.loc(node),
			"Write elements as 'TypeName: { ... }'")
		return nil
	}

	key := node.Content[0]
	body := resolved(node.Content[1])

	if key.Value == "for" {
		return b.buildConstFor(body, depth)
	}

	el := ast.NewElement(key.Value)
	el.Location = b.loc(key)

	if body == nil || body.Tag == "!!null" {
		return el
	}
	if body.Kind != yaml.MappingNode {
		b.addError(kryErrors.ErrorTypeStructural,
			fmt.Sprintf("element '%s' body must be a mapping", key.Value), b.loc(body), "")
		return el
	}

	seen := map[string]bool{}
	for i := 0; i+1 < len(body.Content); i += 2 {
		name := body.Content[i]
		value := body.Content[i+1]

		if name.Value == "children" {
			el.Children = b.buildElementList(value, depth+1)
			continue
		}
		if seen[name.Value] {
			b.addError(kryErrors.ErrorTypeStructural,
				fmt.Sprintf("element '%s' repeats property '%s'", key.Value, name.Value),
				b.loc(name), "Property names must be unique per element")
			continue
		}
		seen[name.Value] = true

		prop := ast.NewProperty(name.Value, b.buildValue(value, 0))
		prop.Location = b.loc(name)
		el.AddProperty(prop)
	}
	return el
}

// buildConstFor reads a compile-time loop:
//
//	for:
//	  var: i
//	  range: [0, 4]   # or  in: someConstantArray
//	  body:
//	    - Text: { text: "${i}" }
func (b *builder) buildConstFor(node *yaml.Node, depth int) *ast.Node {
	var spec struct {
		Var   string     `yaml:"var"`
		Range []int      `yaml:"range"`
		In    string     `yaml:"in"`
		Body  *yaml.Node `yaml:"body"`
	}
	loc := b.loc(node)
	if node == nil || node.Decode(&spec) != nil || spec.Var == "" {
		b.addError(kryErrors.ErrorTypeStructural, "for loop requires 'var' and a 'range' or 'in' source", loc, "")
		return nil
	}

	body := b.buildElementList(spec.Body, depth+1)
	if len(body) == 0 {
		b.addError(kryErrors.ErrorTypeStructural, "for loop body must not be empty", loc, "")
		return nil
	}

	var loop *ast.Node
	switch {
	case len(spec.Range) == 2:
		loop = ast.NewRangeFor(spec.Var, spec.Range[0], spec.Range[1], body...)
	case spec.In != "":
		loop = ast.NewSourceFor(spec.Var, spec.In, body...)
	default:
		b.addError(kryErrors.ErrorTypeStructural,
			"for loop requires either 'range: [start, end]' or 'in: constantName'", loc, "")
		return nil
	}
	loop.Location = loc
	return loop
}

// buildValue reads a property or constant value. Scalars become literals,
// sequences become array literals, and mappings become either expression
// nodes (op / of+index / of+member forms) or object literals.
func (b *builder) buildValue(node *yaml.Node, depth int) *ast.Node {
	node = resolved(node)
	if node == nil {
		return ast.NewLiteral(ast.NullValue())
	}
	if depth > b.maxDepth {
		b.addError(kryErrors.ErrorTypeStructural,
			fmt.Sprintf("value nesting exceeds maximum depth %d", b.maxDepth), b.loc(node), "")
		return ast.NewLiteral(ast.NullValue())
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return b.buildScalar(node)

	case yaml.SequenceNode:
		arr := ast.NewArrayLiteral()
		arr.Location = b.loc(node)
		for _, el := range node.Content {
			arr.Elements = append(arr.Elements, b.buildValue(el, depth+1))
		}
		return arr

	case yaml.MappingNode:
		if mappingHasKey(node, "op") {
			return b.buildOperation(node, depth)
		}
		if mappingHasKey(node, "of") {
			return b.buildAccess(node, depth)
		}
		obj := ast.NewObjectLiteral()
		obj.Location = b.loc(node)
		for i := 0; i+1 < len(node.Content); i += 2 {
			prop := ast.NewProperty(node.Content[i].Value, b.buildValue(node.Content[i+1], depth+1))
			prop.Location = b.loc(node.Content[i])
			obj.Properties = append(obj.Properties, prop)
		}
		return obj
	}

	b.addError(kryErrors.ErrorTypeStructural, "unsupported value form", b.loc(node), "")
	return ast.NewLiteral(ast.NullValue())
}

func (b *builder) buildScalar(node *yaml.Node) *ast.Node {
	loc := b.loc(node)
	var out *ast.Node

	switch node.Tag {
	case "!!int":
		var v int64
		if err := node.Decode(&v); err == nil {
			out = ast.NewLiteral(ast.IntValue(v))
		}
	case "!!float":
		var v float64
		if err := node.Decode(&v); err == nil {
			out = ast.NewLiteral(ast.FloatValue(v))
		}
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err == nil {
			out = ast.NewLiteral(ast.BoolValue(v))
		}
	case "!!null":
		out = ast.NewLiteral(ast.NullValue())
	}
	if out == nil {
		out = b.buildString(node.Value, loc)
	}
	out.Location = loc
	return out
}

// buildString reads the string reference forms: "$path" is a compile-time
// reference (constant, parameter, loop variable), "@name" is a reactive
// variable reference, and a string containing ${...} markers becomes a
// template whose expression segments use the same path grammar. Anything
// else is a plain string literal.
func (b *builder) buildString(s string, loc ast.Location) *ast.Node {
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		if ref := ast.ParsePath(s[1:]); ref != nil {
			return ref
		}
	}
	if strings.HasPrefix(s, "@") {
		name := s[1:]
		if ast.IdentLen(name) == len(name) && name != "" {
			return ast.NewVariable(name)
		}
	}
	if strings.Contains(s, "${") {
		if tmpl := b.buildTemplate(s, loc); tmpl != nil {
			return tmpl
		}
	}
	return ast.NewLiteral(ast.StringValue(s))
}

// buildTemplate splits a marker-bearing string into template segments.
// Returns nil when a marker does not parse, leaving the plain string for
// later interpolation.
func (b *builder) buildTemplate(s string, loc ast.Location) *ast.Node {
	tmpl := ast.NewTemplate()
	tmpl.Location = loc
	rest := s

	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			if rest != "" {
				tmpl.Segments = append(tmpl.Segments, ast.NewLiteral(ast.StringValue(rest)))
			}
			break
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			return nil
		}
		end += start

		if start > 0 {
			tmpl.Segments = append(tmpl.Segments, ast.NewLiteral(ast.StringValue(rest[:start])))
		}

		inner := rest[start+2 : end]
		var expr *ast.Node
		if strings.HasPrefix(inner, "@") {
			name := inner[1:]
			if ast.IdentLen(name) == len(name) && name != "" {
				expr = ast.NewVariable(name)
			}
		} else {
			expr = ast.ParsePath(inner)
		}
		if expr == nil {
			return nil
		}
		tmpl.Segments = append(tmpl.Segments, expr)
		rest = rest[end+1:]
	}

	if len(tmpl.Segments) == 0 {
		return nil
	}
	return tmpl
}

// buildOperation reads the structured expression form:
//
//	{ op: "%", left: "$i", right: 3 }        binary
//	{ op: neg, operand: "$x" }               unary
func (b *builder) buildOperation(node *yaml.Node, depth int) *ast.Node {
	var spec struct {
		Op      string     `yaml:"op"`
		Left    *yaml.Node `yaml:"left"`
		Right   *yaml.Node `yaml:"right"`
		Operand *yaml.Node `yaml:"operand"`
	}
	loc := b.loc(node)
	if err := node.Decode(&spec); err != nil {
		b.addError(kryErrors.ErrorTypeStructural, fmt.Sprintf("invalid expression: %v", err), loc, "")
		return ast.NewLiteral(ast.NullValue())
	}

	op := ast.Operator(spec.Op)
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if spec.Left == nil || spec.Right == nil {
			b.addError(kryErrors.ErrorTypeStructural,
				fmt.Sprintf("operator '%s' requires 'left' and 'right'", spec.Op), loc, "")
			return ast.NewLiteral(ast.NullValue())
		}
		out := ast.NewBinaryOp(op, b.buildValue(spec.Left, depth+1), b.buildValue(spec.Right, depth+1))
		out.Location = loc
		return out
	case ast.OpNeg, ast.OpNot:
		if spec.Operand == nil {
			b.addError(kryErrors.ErrorTypeStructural,
				fmt.Sprintf("operator '%s' requires 'operand'", spec.Op), loc, "")
			return ast.NewLiteral(ast.NullValue())
		}
		out := ast.NewUnaryOp(op, b.buildValue(spec.Operand, depth+1))
		out.Location = loc
		return out
	}

	b.addError(kryErrors.ErrorTypeStructural,
		fmt.Sprintf("unknown operator '%s'", spec.Op), loc,
		"Supported operators: + - * / % neg not")
	return ast.NewLiteral(ast.NullValue())
}

// buildAccess reads the structured access forms:
//
//	{ of: "$colors", index: "$i" }     array access
//	{ of: "$item", member: title }     member access
func (b *builder) buildAccess(node *yaml.Node, depth int) *ast.Node {
	var spec struct {
		Of     *yaml.Node `yaml:"of"`
		Index  *yaml.Node `yaml:"index"`
		Member string     `yaml:"member"`
	}
	loc := b.loc(node)
	if err := node.Decode(&spec); err != nil || spec.Of == nil {
		b.addError(kryErrors.ErrorTypeStructural, "access expression requires 'of'", loc, "")
		return ast.NewLiteral(ast.NullValue())
	}

	object := b.buildValue(spec.Of, depth+1)
	if spec.Member != "" {
		out := ast.NewMemberAccess(object, spec.Member)
		out.Location = loc
		return out
	}
	if spec.Index != nil {
		out := ast.NewArrayAccess(object, b.buildValue(spec.Index, depth+1))
		out.Location = loc
		return out
	}

	b.addError(kryErrors.ErrorTypeStructural,
		"access expression requires 'index' or 'member'", loc, "")
	return ast.NewLiteral(ast.NullValue())
}

func mappingHasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// resolved follows YAML alias nodes to their anchor target.
func resolved(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func (b *builder) loc(node *yaml.Node) ast.Location {
	if node == nil {
		return ast.Location{File: b.sourcePath}
	}
	return ast.Location{File: b.sourcePath, Line: node.Line, Column: node.Column}
}

func (b *builder) addError(t kryErrors.ErrorType, msg string, loc ast.Location, suggestion string) {
	b.errors.Add(&kryErrors.Error{
		Type:       t,
		Message:    msg,
		Location:   loc,
		Suggestion: suggestion,
	})
}
