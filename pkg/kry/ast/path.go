package ast

import (
	"strconv"
	"strings"
)

// ParsePath parses the restricted reference grammar shared by "$path"
// references and ${...} template markers: an identifier followed by any
// run of .member and [index] accesses, where an index is an integer
// literal or another identifier. Returns nil when s does not match, so
// callers can fall back to treating the text as a plain string.
func ParsePath(s string) *Node {
	s = strings.TrimSpace(s)
	i := IdentLen(s)
	if i == 0 {
		return nil
	}
	node := NewIdentifier(s[:i])
	rest := s[i:]

	for rest != "" {
		switch rest[0] {
		case '.':
			j := IdentLen(rest[1:])
			if j == 0 {
				return nil
			}
			node = NewMemberAccess(node, rest[1:1+j])
			rest = rest[1+j:]
		case '[':
			close := strings.IndexByte(rest, ']')
			if close < 0 {
				return nil
			}
			inner := strings.TrimSpace(rest[1:close])
			var index *Node
			if v, err := strconv.ParseInt(inner, 10, 64); err == nil {
				index = NewLiteral(IntValue(v))
			} else if IdentLen(inner) == len(inner) && inner != "" {
				index = NewIdentifier(inner)
			} else {
				return nil
			}
			node = NewArrayAccess(node, index)
			rest = rest[close+1:]
		default:
			return nil
		}
	}
	return node
}

// IdentLen returns the length of the leading identifier in s, or 0.
// Identifiers are [A-Za-z_][A-Za-z0-9_]*.
func IdentLen(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		alpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if alpha || (i > 0 && digit) {
			continue
		}
		return i
	}
	return len(s)
}
