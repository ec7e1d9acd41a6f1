package expand

import (
	"testing"

	"kryon-labs/kryonc/pkg/kry/ast"
	"kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/registry"
)

func textElement(value *ast.Node) *ast.Node {
	el := ast.NewElement("Text")
	el.AddProperty(ast.NewProperty("text", value))
	return el
}

func TestExpandRangeOrdering(t *testing.T) {
	x := NewExpander(registry.NewConstants())

	// Two body elements over 0..=4: ten elements, iteration-major.
	loop := ast.NewRangeFor("i", 0, 4,
		textElement(ast.NewIdentifier("i")),
		ast.NewElement("Spacer"),
	)

	count, err := x.Count(loop)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 10 {
		t.Errorf("Count = %d, want 10", count)
	}

	out, err := x.Expand(loop)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(out) != 10 {
		t.Fatalf("Expand emitted %d elements, want 10", len(out))
	}

	for i := 0; i < 5; i++ {
		text := out[i*2]
		spacer := out[i*2+1]
		if text.ElementType != "Text" || spacer.ElementType != "Spacer" {
			t.Fatalf("iteration %d order = [%s %s], want [Text Spacer]",
				i, text.ElementType, spacer.ElementType)
		}
		got := text.Property("text").Value
		if !got.IsLiteral(ast.ValueInteger) || got.Literal.Int != int64(i) {
			t.Errorf("iteration %d text = %v, want %d", i, got, i)
		}
	}
}

func TestExpandArraySource(t *testing.T) {
	constants := registry.NewConstants()
	constants.Define("nums", ast.NewArrayLiteral(
		ast.NewLiteral(ast.IntValue(10)),
		ast.NewLiteral(ast.IntValue(20)),
		ast.NewLiteral(ast.IntValue(30)),
	))
	x := NewExpander(constants)

	loop := ast.NewSourceFor("n", "nums", textElement(ast.NewIdentifier("n")))

	out, err := x.Expand(loop)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("Expand emitted %d elements, want 3", len(out))
	}
	for i, want := range []int64{10, 20, 30} {
		got := out[i].Property("text").Value
		if !got.IsLiteral(ast.ValueInteger) || got.Literal.Int != want {
			t.Errorf("element %d text = %v, want %d", i, got, want)
		}
	}
}

func TestExpandObjectArraySource(t *testing.T) {
	constants := registry.NewConstants()
	constants.Define("pages", ast.NewArrayLiteral(
		ast.NewObjectLiteral(ast.NewProperty("title", ast.NewLiteral(ast.StringValue("Home")))),
		ast.NewObjectLiteral(ast.NewProperty("title", ast.NewLiteral(ast.StringValue("About")))),
	))
	x := NewExpander(constants)

	loop := ast.NewSourceFor("page", "pages",
		textElement(ast.NewMemberAccess(ast.NewIdentifier("page"), "title")))

	out, err := x.Expand(loop)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expand emitted %d elements, want 2", len(out))
	}
	for i, want := range []string{"Home", "About"} {
		got := out[i].Property("text").Value
		if !got.IsLiteral(ast.ValueString) || got.Literal.Str != want {
			t.Errorf("element %d text = %v, want %q", i, got, want)
		}
	}
}

func TestExpandUnknownSource(t *testing.T) {
	x := NewExpander(registry.NewConstants())
	loop := ast.NewSourceFor("n", "nums", textElement(ast.NewIdentifier("n")))

	_, err := x.Expand(loop)
	if err == nil {
		t.Fatal("unknown source did not error")
	}
	cerr, ok := err.(*errors.Error)
	if !ok || cerr.Type != errors.ErrorTypeUnresolved {
		t.Errorf("error = %v, want type %s", err, errors.ErrorTypeUnresolved)
	}
}

func TestExpandNonArraySource(t *testing.T) {
	constants := registry.NewConstants()
	constants.Define("nums", ast.NewLiteral(ast.IntValue(3)))
	x := NewExpander(constants)

	loop := ast.NewSourceFor("n", "nums", textElement(ast.NewIdentifier("n")))

	_, err := x.Expand(loop)
	if err == nil {
		t.Fatal("non-array source did not error")
	}
	cerr, ok := err.(*errors.Error)
	if !ok || cerr.Type != errors.ErrorTypeUnresolved {
		t.Errorf("error = %v, want type %s", err, errors.ErrorTypeUnresolved)
	}
}

func TestExpandEmptyRange(t *testing.T) {
	x := NewExpander(registry.NewConstants())
	loop := ast.NewRangeFor("i", 3, 1, textElement(ast.NewIdentifier("i")))

	count, err := x.Count(loop)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0 for inverted range", count)
	}
	out, err := x.Expand(loop)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expand emitted %d elements, want 0", len(out))
	}
}

func TestExpandDoesNotMutateBody(t *testing.T) {
	x := NewExpander(registry.NewConstants())
	body := textElement(ast.NewIdentifier("i"))
	loop := ast.NewRangeFor("i", 0, 2, body)

	if _, err := x.Expand(loop); err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	if got := body.Property("text").Value; got.Kind != ast.KindIdentifier || got.Name != "i" {
		t.Errorf("loop body mutated by expansion: %v", got)
	}
}

func TestExpandTemplateInBody(t *testing.T) {
	x := NewExpander(registry.NewConstants())
	loop := ast.NewRangeFor("i", 1, 2,
		textElement(ast.NewTemplate(
			ast.NewLiteral(ast.StringValue("Item ")),
			ast.NewIdentifier("i"),
		)))

	out, err := x.Expand(loop)
	if err != nil {
		t.Fatalf("Expand error: %v", err)
	}
	for i, want := range []string{"Item 1", "Item 2"} {
		got := out[i].Property("text").Value
		if !got.IsLiteral(ast.ValueString) || got.Literal.Str != want {
			t.Errorf("element %d text = %v, want %q", i, got, want)
		}
	}
}

func TestExpandIndexOutOfBoundsInBody(t *testing.T) {
	constants := registry.NewConstants()
	constants.Define("colors", ast.NewArrayLiteral(
		ast.NewLiteral(ast.StringValue("red")),
	))
	x := NewExpander(constants)

	loop := ast.NewRangeFor("i", 0, 2,
		textElement(ast.NewArrayAccess(ast.NewIdentifier("colors"), ast.NewIdentifier("i"))))

	_, err := x.Expand(loop)
	if err == nil {
		t.Fatal("out-of-bounds body access did not error")
	}
	cerr, ok := err.(*errors.Error)
	if !ok || cerr.Type != errors.ErrorTypeOutOfBounds {
		t.Errorf("error = %v, want type %s", err, errors.ErrorTypeOutOfBounds)
	}
}
