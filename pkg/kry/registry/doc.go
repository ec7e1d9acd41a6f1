// Package registry maps source-level names to stable wire identifiers.
//
// Three registries cover the compiler's naming concerns:
//
// Property table: canonical property names and their aliases map to fixed
// uint16 wire ids grouped by category (layout 0x01xx, visual 0x02xx, and
// so on). Each id carries a static TypeHint that alone decides the value
// wire format. Names outside the table encode as custom properties
// (CustomPropertyID followed by a name reference).
//
// Element table: built-in element names map to fixed uint32 type ids.
// Elements tracks per-compile custom element ids, allocated upward from
// CustomElementStart (0x2000) in first-use order so a given document always
// produces the same ids.
//
// Constants: the document's constant table in declaration order. Values are
// AST nodes; each may only reference constants declared before it.
//
// Per-compile registries (Elements, Constants) are not safe for concurrent
// use; the compiler creates fresh instances per run.
package registry
