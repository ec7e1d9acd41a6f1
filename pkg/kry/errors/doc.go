// Package errors provides rich error reporting for the Kryon compiler.
//
// Errors carry a category, a source location, surrounding source context,
// and an optional suggestion. An ErrorList accumulates multiple errors so
// a single compile can report every problem in one pass instead of failing
// on the first.
//
// # Error Types
//
// syntax: YAML syntax errors from the document loader
//
// structural: schema violations (missing or invalid fields)
//
// unresolved: undefined constant, component, or parameter references
//
// unsupported: expression forms the compiler cannot evaluate or encode
//
// out_of_bounds: constant array index accesses outside the array
//
// encoding: binary encoding failures
//
// io: file I/O errors
//
// # Basic Usage
//
//	errs := errors.NewErrorList()
//	errs.AddErrorWithSuggestion(errors.ErrorTypeUnresolved,
//	    fmt.Sprintf("undefined constant '%s'", name),
//	    node.Location,
//	    errors.SuggestName(name, declaredConstants))
//
//	if errs.HasErrors() {
//	    return errs.ToError()
//	}
//
// # Source Context
//
// AddContextToError re-reads the source file and attaches the surrounding
// lines with a column marker, producing output of the form:
//
//	[unresolved] undefined constant 'colrs'
//	  --> app.kry.yaml:12:9
//	  |
//	     11 |   Text:
//	  -> 12 |     color: "${colrs[0]}"
//	  |
//	  = suggestion: Did you mean 'colors'?
package errors
