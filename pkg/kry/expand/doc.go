// Package expand performs compile-time AST expansion: partial evaluation
// of expressions, parameter and loop-variable substitution, const_for
// unrolling, and component instantiation.
//
// # Pipeline
//
// Evaluator folds an expression subtree to a literal given the constant
// table and at most one active (name, value) binding. Folding is pure and
// non-failing: what cannot reduce is returned unreduced for the runtime.
// The single hard error is a constant array index outside the array.
//
// Substituter deep-clones a subtree while replacing identifier and
// variable references to the active binding with the bound value, then
// re-folds property values, templates, and ${...} string interpolation.
// Source trees are never mutated, so component bodies and loop bodies are
// reusable across any number of expansions.
//
// Expander unrolls const_for loops over inclusive integer ranges or
// constant arrays, emitting elements in iteration-major, body-minor order.
// Count pre-computes the emitted element count (iterations times body
// length) without materializing elements.
//
// Instantiator expands component references: instance properties bind to
// declared parameters positionally then by name, unbound parameters take
// their declared default or null, and the substituted body is tagged with
// a per-instance scope id (comp_1, comp_2, ...) that scopes the
// component's state variables in the output.
//
// # Evaluation semantics
//
// Integer arithmetic uses truncating division; division and modulo by
// zero yield 0 rather than failing, matching the behavior consumers of
// the binary format already depend on. Templates fold only when every
// segment folds; reactive variable references outside the active binding
// never fold.
package expand
