package parser

import (
	"strings"
	"testing"

	"kryon-labs/kryonc/pkg/kry/ast"
	kryErrors "kryon-labs/kryonc/pkg/kry/errors"
)

func parseDoc(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := NewParser().ParseBytes([]byte(src), "test.kry.yaml")
	if err != nil {
		t.Fatalf("ParseBytes error: %v", err)
	}
	return doc
}

func TestParseMinimalDocument(t *testing.T) {
	doc := parseDoc(t, `
name: demo
root:
  App:
    windowTitle: Demo
`)

	if doc.Name != "demo" {
		t.Errorf("Name = %q, want demo", doc.Name)
	}
	if doc.Root.ElementType != "App" {
		t.Fatalf("root = %s, want App", doc.Root.ElementType)
	}
	title := doc.Root.Property("windowTitle")
	if title == nil || !title.Value.IsLiteral(ast.ValueString) || title.Value.Literal.Str != "Demo" {
		t.Errorf("windowTitle = %v, want Demo", title)
	}
	if doc.Root.Location.Line == 0 {
		t.Error("root element has no source line")
	}
}

func TestParseNameDefaultsToFile(t *testing.T) {
	doc := parseDoc(t, "root:\n  App:\n    title: x\n")
	if doc.Name != "test.kry" {
		t.Errorf("Name = %q, want test.kry", doc.Name)
	}
}

func TestParseConstantsInOrder(t *testing.T) {
	doc := parseDoc(t, `
constants:
  colors: ["red", "green", "blue"]
  spacing: 8
  scale: 1.5
  darkMode: true
root:
  App: {title: x}
`)

	if len(doc.Constants) != 4 {
		t.Fatalf("parsed %d constants, want 4", len(doc.Constants))
	}
	wantNames := []string{"colors", "spacing", "scale", "darkMode"}
	for i, want := range wantNames {
		if doc.Constants[i].Name != want {
			t.Errorf("constant %d = %q, want %q (declaration order)", i, doc.Constants[i].Name, want)
		}
	}

	colors := doc.Constants[0].Value
	if colors.Kind != ast.KindArrayLiteral || len(colors.Elements) != 3 {
		t.Fatalf("colors = %v, want 3-element array", colors)
	}
	if colors.Elements[2].Literal.Str != "blue" {
		t.Errorf("colors[2] = %v, want blue", colors.Elements[2])
	}
	if got := doc.Constants[1].Value; !got.IsLiteral(ast.ValueInteger) || got.Literal.Int != 8 {
		t.Errorf("spacing = %v, want 8", got)
	}
	if got := doc.Constants[2].Value; !got.IsLiteral(ast.ValueFloat) || got.Literal.Float != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
	if got := doc.Constants[3].Value; !got.IsLiteral(ast.ValueBoolean) || !got.Literal.Bool {
		t.Errorf("darkMode = %v, want true", got)
	}
}

func TestParseVariables(t *testing.T) {
	doc := parseDoc(t, `
variables:
  counter: { reactive: true, value: 0 }
  title: Hello
root:
  App: {title: x}
`)

	if len(doc.Variables) != 2 {
		t.Fatalf("parsed %d variables, want 2", len(doc.Variables))
	}
	counter := doc.Variables[0]
	if counter.Name != "counter" || !counter.Reactive {
		t.Errorf("counter = %+v, want reactive", counter)
	}
	if !counter.Value.IsLiteral(ast.ValueInteger) || counter.Value.Literal.Int != 0 {
		t.Errorf("counter value = %v, want 0", counter.Value)
	}

	title := doc.Variables[1]
	if title.Reactive {
		t.Error("shorthand variable parsed as reactive")
	}
	if !title.Value.IsLiteral(ast.ValueString) || title.Value.Literal.Str != "Hello" {
		t.Errorf("title value = %v, want Hello", title.Value)
	}
}

func TestParseReferences(t *testing.T) {
	doc := parseDoc(t, `
root:
  Text:
    text: $label
    color: $theme.primary
    fontSize: $sizes[2]
    value: "@counter"
`)

	text := doc.Root.Property("text").Value
	if text.Kind != ast.KindIdentifier || text.Name != "label" {
		t.Errorf("text = %v, want identifier label", text)
	}

	color := doc.Root.Property("color").Value
	if color.Kind != ast.KindMemberAccess || color.Member != "primary" {
		t.Errorf("color = %v, want member access", color)
	}

	size := doc.Root.Property("fontSize").Value
	if size.Kind != ast.KindArrayAccess || !size.Index.IsLiteral(ast.ValueInteger) {
		t.Errorf("fontSize = %v, want array access", size)
	}

	value := doc.Root.Property("value").Value
	if value.Kind != ast.KindVariable || value.Name != "counter" {
		t.Errorf("value = %v, want reactive variable counter", value)
	}
}

func TestParseTemplateString(t *testing.T) {
	doc := parseDoc(t, `
root:
  Text:
    text: "Item ${i} of ${total}"
    title: "Count: ${@counter}"
`)

	tmpl := doc.Root.Property("text").Value
	if tmpl.Kind != ast.KindTemplate {
		t.Fatalf("text = %v, want template", tmpl)
	}
	if len(tmpl.Segments) != 4 {
		t.Fatalf("template has %d segments, want 4", len(tmpl.Segments))
	}
	if !tmpl.Segments[0].IsLiteral(ast.ValueString) || tmpl.Segments[0].Literal.Str != "Item " {
		t.Errorf("segment 0 = %v, want 'Item '", tmpl.Segments[0])
	}
	if tmpl.Segments[1].Kind != ast.KindIdentifier || tmpl.Segments[1].Name != "i" {
		t.Errorf("segment 1 = %v, want identifier i", tmpl.Segments[1])
	}

	reactive := doc.Root.Property("title").Value
	if reactive.Kind != ast.KindTemplate {
		t.Fatalf("title = %v, want template", reactive)
	}
	if reactive.Segments[1].Kind != ast.KindVariable || reactive.Segments[1].Name != "counter" {
		t.Errorf("reactive segment = %v, want variable counter", reactive.Segments[1])
	}
}

func TestParseStructuredExpressions(t *testing.T) {
	doc := parseDoc(t, `
root:
  Text:
    zIndex: { op: "%", left: $i, right: 3 }
    posX: { op: neg, operand: $x }
    color: { of: $colors, index: $i }
    text: { of: $item, member: title }
`)

	mod := doc.Root.Property("zIndex").Value
	if mod.Kind != ast.KindBinaryOp || mod.Op != ast.OpMod {
		t.Errorf("zIndex = %v, want binary %%", mod)
	}
	if mod.Left.Kind != ast.KindIdentifier || !mod.Right.IsLiteral(ast.ValueInteger) {
		t.Errorf("operands = %v %% %v", mod.Left, mod.Right)
	}

	neg := doc.Root.Property("posX").Value
	if neg.Kind != ast.KindUnaryOp || neg.Op != ast.OpNeg {
		t.Errorf("posX = %v, want unary neg", neg)
	}

	idx := doc.Root.Property("color").Value
	if idx.Kind != ast.KindArrayAccess || idx.Index.Kind != ast.KindIdentifier {
		t.Errorf("color = %v, want array access by identifier", idx)
	}

	member := doc.Root.Property("text").Value
	if member.Kind != ast.KindMemberAccess || member.Member != "title" {
		t.Errorf("text = %v, want member access .title", member)
	}
}

func TestParseConstFor(t *testing.T) {
	doc := parseDoc(t, `
root:
  Column:
    children:
      - for:
          var: i
          range: [0, 4]
          body:
            - Text: { text: "Item ${i}" }
            - Spacer:
      - for:
          var: n
          in: nums
          body:
            - Text: { text: "$n" }
`)

	if len(doc.Root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(doc.Root.Children))
	}

	rangeLoop := doc.Root.Children[0]
	if rangeLoop.Kind != ast.KindConstFor || !rangeLoop.IsRange {
		t.Fatalf("first child = %v, want range const_for", rangeLoop)
	}
	if rangeLoop.VarName != "i" || rangeLoop.RangeStart != 0 || rangeLoop.RangeEnd != 4 {
		t.Errorf("loop header = %s %d..%d, want i 0..4",
			rangeLoop.VarName, rangeLoop.RangeStart, rangeLoop.RangeEnd)
	}
	if len(rangeLoop.Body) != 2 {
		t.Errorf("range loop body has %d elements, want 2", len(rangeLoop.Body))
	}
	if rangeLoop.Body[1].ElementType != "Spacer" {
		t.Errorf("body[1] = %s, want Spacer", rangeLoop.Body[1].ElementType)
	}

	srcLoop := doc.Root.Children[1]
	if srcLoop.Kind != ast.KindConstFor || srcLoop.IsRange || srcLoop.Source != "nums" {
		t.Errorf("second child = %v, want array-mode const_for over nums", srcLoop)
	}
}

func TestParseComponents(t *testing.T) {
	doc := parseDoc(t, `
components:
  - name: LabeledButton
    params:
      - name: label
      - { name: x, default: 5 }
    state:
      clicked: { reactive: true, value: false }
    functions:
      - name: onPress
        language: lua
        source: "clicked = true"
    body:
      - Button: { text: $label, posX: $x }
root:
  App:
    children:
      - LabeledButton: { label: Go }
`)

	if len(doc.Components) != 1 {
		t.Fatalf("parsed %d components, want 1", len(doc.Components))
	}
	def := doc.Components[0]
	if def.Name != "LabeledButton" {
		t.Errorf("component name = %q", def.Name)
	}
	if len(def.Parameters) != 2 || def.Parameters[0].Name != "label" {
		t.Fatalf("parameters = %v", def.Parameters)
	}
	if def.Parameters[0].Default != nil {
		t.Error("label has an unexpected default")
	}
	if d := def.Parameters[1].Default; d == nil || d.Literal.Int != 5 {
		t.Errorf("x default = %v, want 5", d)
	}
	if len(def.State) != 1 || !def.State[0].Reactive {
		t.Errorf("state = %v, want one reactive variable", def.State)
	}
	if len(def.Functions) != 1 || def.Functions[0].Language != "lua" {
		t.Errorf("functions = %v", def.Functions)
	}
	if len(def.Body) != 1 || def.Body[0].ElementType != "Button" {
		t.Errorf("body = %v", def.Body)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType kryErrors.ErrorType
		substr  string
	}{
		{
			"invalid yaml",
			"root: [unclosed",
			kryErrors.ErrorTypeSyntax,
			"YAML parsing failed",
		},
		{
			"missing root",
			"name: demo\n",
			kryErrors.ErrorTypeStructural,
			"no root element",
		},
		{
			"duplicate property",
			"root:\n  Text:\n    text: a\n    text: b\n",
			kryErrors.ErrorTypeStructural,
			"repeats property",
		},
		{
			"empty loop body",
			"root:\n  Column:\n    children:\n      - for:\n          var: i\n          range: [0, 2]\n          body: []\n",
			kryErrors.ErrorTypeStructural,
			"body must not be empty",
		},
		{
			"loop without source",
			"root:\n  Column:\n    children:\n      - for:\n          var: i\n          body:\n            - Text: {text: x}\n",
			kryErrors.ErrorTypeStructural,
			"range",
		},
		{
			"component without body",
			"components:\n  - name: Card\nroot:\n  App: {title: x}\n",
			kryErrors.ErrorTypeStructural,
			"empty body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseBytes([]byte(tt.src), "bad.kry.yaml")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.substr)
			}
			switch e := err.(type) {
			case *kryErrors.Error:
				if e.Type != tt.errType {
					t.Errorf("type = %s, want %s", e.Type, tt.errType)
				}
			case *kryErrors.ErrorList:
				if !e.HasErrorType(tt.errType) {
					t.Errorf("list lacks type %s: %v", tt.errType, e)
				}
			default:
				t.Errorf("unexpected error type %T", err)
			}
		})
	}
}

func TestParseFileSizeLimit(t *testing.T) {
	p := NewParser().WithMaxFileSize(4)
	big := []byte("root:\n  App: {title: x}\n")
	// ParseBytes does not enforce the size limit; Parse does via Stat. The
	// builder still accepts the document.
	if _, err := p.ParseBytes(big, "mem.kry.yaml"); err != nil {
		t.Errorf("ParseBytes unexpectedly failed: %v", err)
	}
}

func TestParseYAMLAnchors(t *testing.T) {
	doc := parseDoc(t, `
constants:
  base: &base 8
  derived: *base
root:
  App: {title: x}
`)
	if got := doc.Constants[1].Value; !got.IsLiteral(ast.ValueInteger) || got.Literal.Int != 8 {
		t.Errorf("aliased constant = %v, want 8", got)
	}
}
