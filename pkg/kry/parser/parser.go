package parser

import (
	"fmt"
	"os"

	"kryon-labs/kryonc/pkg/kry/ast"
	kryErrors "kryon-labs/kryonc/pkg/kry/errors"
)

// Parser parses Kryon YAML documents into Abstract Syntax Trees.
// It handles YAML parsing, AST construction, and basic structural validation.
type Parser struct {
	maxFileSize int64 // Maximum file size in bytes (default: 10MB)
	maxDepth    int   // Maximum element nesting depth (default: 64)
	strictMode  bool  // Strict validation mode (warnings become errors)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
		maxDepth:    64,
		strictMode:  false,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum element nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithStrictMode enables strict validation (warnings become errors).
func (p *Parser) WithStrictMode(strict bool) *Parser {
	p.strictMode = strict
	return p
}

// Parse parses a document file at the given path and returns the AST.
// It returns an error if the file cannot be read, has invalid YAML syntax,
// or contains structural errors.
func (p *Parser) Parse(path string) (*ast.Document, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, &kryErrors.Error{
			Type:     kryErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to access file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	if fileInfo.Size() > p.maxFileSize {
		return nil, &kryErrors.Error{
			Type:     kryErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("File size %d exceeds maximum %d bytes", fileInfo.Size(), p.maxFileSize),
			Location: ast.Location{File: path},
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &kryErrors.Error{
			Type:     kryErrors.ErrorTypeIO,
			Message:  fmt.Sprintf("Failed to read file: %v", err),
			Location: ast.Location{File: path},
		}
	}
	return p.ParseBytes(data, path)
}

// ParseBytes parses document YAML from a byte slice.
// This is useful for testing or compiling documents from memory.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ast.Document, error) {
	yamlDoc, err := parseYAMLBytes(data)
	if err != nil {
		return nil, &kryErrors.Error{
			Type:       kryErrors.ErrorTypeSyntax,
			Message:    fmt.Sprintf("YAML parsing failed: %v", err),
			Location:   ast.Location{File: sourcePath, Line: 1},
			Suggestion: "Check YAML syntax (indentation, colons, quotes)",
		}
	}

	builder := newBuilder(sourcePath, p.maxDepth)
	doc, err := builder.buildDocument(yamlDoc)
	if err != nil {
		if errList, ok := err.(*kryErrors.ErrorList); ok {
			for i, e := range errList.Errors {
				errList.Errors[i] = kryErrors.AddContextToError(e)
			}
		}
		return nil, err
	}
	return doc, nil
}
