// Kryonc compiles declarative UI documents into the KRB binary format.
//
// It expands components and compile-time loops at build time, folds
// constant expressions, and emits a compact binary with a deduplicated
// string table.
//
// Usage:
//
//	# Compile a single document
//	kryonc compile app.kry.yaml
//
//	# Compile every document in a directory into build/
//	kryonc compile --output build ui/
//
//	# Watch sources and recompile on change
//	kryonc watch ui/
//
//	# Inspect a compiled binary
//	kryonc inspect app.krb
//
//	# Show version information
//	kryonc version
package main

func main() {
	Execute()
}
