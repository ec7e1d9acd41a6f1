package errors

import (
	"strings"
	"testing"

	"kryon-labs/kryonc/pkg/kry/ast"
)

func TestErrorFormat(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeUnresolved,
		Message:    "undefined constant 'colrs'",
		Location:   ast.Location{File: "app.kry.yaml", Line: 12, Column: 9},
		Suggestion: "Did you mean 'colors'?",
	}

	got := err.Error()
	for _, want := range []string{
		"[unresolved] undefined constant 'colrs'",
		"--> app.kry.yaml:12:9",
		"suggestion: Did you mean 'colors'?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() missing %q in:\n%s", want, got)
		}
	}
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()

	if el.HasErrors() {
		t.Error("new list reports errors")
	}
	if el.ToError() != nil {
		t.Error("empty list ToError() != nil")
	}

	el.AddError(ErrorTypeSyntax, "bad yaml", ast.Location{})
	el.AddError(ErrorTypeOutOfBounds, "index 5 out of bounds", ast.Location{File: "a.yaml", Line: 3})

	if got := el.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if !el.HasErrorType(ErrorTypeOutOfBounds) {
		t.Error("HasErrorType(out_of_bounds) = false")
	}
	if el.HasErrorType(ErrorTypeEncoding) {
		t.Error("HasErrorType(encoding) = true, want false")
	}
	if got := len(el.ByType(ErrorTypeSyntax)); got != 1 {
		t.Errorf("ByType(syntax) has %d errors, want 1", got)
	}
	if !strings.Contains(el.Error(), "Found 2 error(s)") {
		t.Errorf("list Error() = %q, want count header", el.Error())
	}
}

func TestSuggestName(t *testing.T) {
	tests := []struct {
		name     string
		unknown  string
		declared []string
		want     string
	}{
		{"close match", "colrs", []string{"colors", "sizes"}, "Did you mean 'colors'?"},
		{"no declared", "x", nil, ""},
		{"no close match", "zzzzzzzz", []string{"ab"}, "Declared names: ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestName(tt.unknown, tt.declared); got != tt.want {
				t.Errorf("SuggestName(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}
}

func TestSuggestIndexRange(t *testing.T) {
	if got := SuggestIndexRange("colors", 3); got != "Valid indices for 'colors' are 0..2" {
		t.Errorf("SuggestIndexRange = %q", got)
	}
	if got := SuggestIndexRange("empty", 0); !strings.Contains(got, "is empty") {
		t.Errorf("SuggestIndexRange for empty array = %q", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"colors", "colrs", 1},
	}
	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
