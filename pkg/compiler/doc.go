// Package compiler orchestrates the compile pipeline.
//
// # Overview
//
// A Compiler takes declarative UI source through four stages:
//
//  1. Parse the YAML document into an AST
//  2. Register constants and component definitions
//  3. Expand loops and component instances while encoding records
//  4. Assemble the final KRB binary with its string table and checksum
//
// Unchanged sources are served from the content-addressed cache without
// re-running the pipeline.
//
// # Usage
//
//	c := compiler.New(config.NewDefault(),
//	    compiler.WithCache(cache.NewMemoryStore()),
//	    compiler.WithLogger(logger),
//	)
//
//	result, err := c.CompileFile(ctx, "app.kry.yaml")
//	if err != nil {
//	    // err is an *errors.Error or *errors.ErrorList with locations
//	}
//	fmt.Println(result.Elements, "elements,", len(result.Output), "bytes")
package compiler
