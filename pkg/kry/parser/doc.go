// Package parser loads Kryon YAML documents into Abstract Syntax Trees.
//
// The parser is the upstream boundary of the compiler: it ingests a YAML
// document describing constants, variables, components, and the root
// element tree, and produces the ast.Document the expansion and encoding
// stages consume. It preserves YAML line numbers on every node for error
// reporting and accumulates structural errors instead of failing on the
// first.
//
// # Document form
//
//	name: demo
//	constants:
//	  colors: ["red", "green", "blue"]
//	  spacing: 8
//	variables:
//	  counter: { reactive: true, value: 0 }
//	components:
//	  - name: LabeledButton
//	    params:
//	      - name: label
//	      - { name: x, default: 5 }
//	    body:
//	      - Button: { text: "$label", posX: "$x" }
//	root:
//	  App:
//	    windowTitle: Demo
//	    children:
//	      - for:
//	          var: i
//	          range: [0, 4]
//	          body:
//	            - Text: { text: "Item ${i}" }
//	      - LabeledButton: { label: Go }
//
// # Value forms
//
// Scalars map to literals. "$path" references a constant, parameter, or
// loop variable ("$colors[i]", "$item.title"); "@name" references a
// reactive variable; strings containing ${...} markers become templates.
// Structured expressions use mappings: {op: "%", left: "$i", right: 3},
// {op: neg, operand: "$x"}, {of: "$colors", index: "$i"}, and
// {of: "$item", member: title}.
//
// # Basic usage
//
//	doc, err := parser.NewParser().Parse("app.kry.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Root.ElementType)
package parser
