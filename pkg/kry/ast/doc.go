// Package ast provides Abstract Syntax Tree (AST) definitions for Kryon
// source documents.
//
// The AST represents the parsed structure of a Kryon document before
// expansion and encoding. All nodes preserve source location information
// for precise error reporting.
//
// # Core Types
//
// Document: Root of a parsed source document (constants, components,
// variables, root element tree)
//
// Node: Tagged-union AST node (element, property, literal, identifier,
// variable, expression, template, array, object, const_for)
//
// Value: Literal payload (string, integer, float, boolean, null, color, unit)
//
// ComponentDefinition: Reusable component template with parameters, state
// variables, functions, and a body
//
// Constant: Top-level constant declaration
//
// Location: Source location (file, line, column)
//
// # Basic Usage
//
// Parse a document and traverse its element tree:
//
//	doc, err := parser.ParseFile("app.kry.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var walk func(n *ast.Node, depth int)
//	walk = func(n *ast.Node, depth int) {
//	    fmt.Printf("%*s%s\n", depth*2, "", n.ElementType)
//	    for _, c := range n.Children {
//	        walk(c, depth+1)
//	    }
//	}
//	walk(doc.Root, 0)
//
// # Node Kinds
//
// Node is a single struct discriminated by Kind. Only the fields documented
// for a given kind are meaningful; constructors (NewElement, NewBinaryOp,
// NewRangeFor, ...) populate exactly those fields.
//
// # Ownership
//
// Parsed trees are treated as immutable templates. Expansion stages that
// need to rewrite a tree first take a deep copy with Clone; the substitution
// pass then mutates only the clone.
package ast
