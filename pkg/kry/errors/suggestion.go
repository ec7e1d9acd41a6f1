package errors

import (
	"fmt"
	"strings"
)

// SuggestName suggests a close match when an unknown constant, component,
// or parameter name is referenced. It uses Levenshtein distance to find
// similar declared names.
func SuggestName(unknown string, declared []string) string {
	if len(declared) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, name := range declared {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	if len(declared) > 5 {
		return fmt.Sprintf("Declared names include: %s, ...", strings.Join(declared[:5], ", "))
	}
	return fmt.Sprintf("Declared names: %s", strings.Join(declared, ", "))
}

// SuggestPropertyName suggests a known property id mapping when a property
// name misses the registry and would otherwise be encoded as custom.
func SuggestPropertyName(unknown string, known []string) string {
	s := SuggestName(unknown, known)
	if s == "" {
		return ""
	}
	return s + " Unknown properties are written as custom properties."
}

// SuggestIndexRange suggests a valid index range for an out of bounds
// constant array access.
func SuggestIndexRange(arrayName string, length int) string {
	if length == 0 {
		return fmt.Sprintf("'%s' is empty; remove the index access or populate the array", arrayName)
	}
	return fmt.Sprintf("Valid indices for '%s' are 0..%d", arrayName, length-1)
}

// levenshteinDistance computes the Levenshtein distance between two strings.
// This is used for finding similar names for suggestions.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
