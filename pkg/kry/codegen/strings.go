package codegen

// StringTable is the append-only deduplicating string pool written into the
// KRB string table section. Indices are 1-based and stable for the lifetime
// of one compilation; 0 is reserved to mean "absent".
//
// Not safe for concurrent use; each compile owns its own instance.
type StringTable struct {
	byValue map[string]uint32
	values  []string
}

// NewStringTable creates an empty string table.
func NewStringTable() *StringTable {
	return &StringTable{
		byValue: make(map[string]uint32),
	}
}

// Intern returns the stable 1-based index for s, appending it on first use.
func (t *StringTable) Intern(s string) uint32 {
	if idx, ok := t.byValue[s]; ok {
		return idx
	}
	t.values = append(t.values, s)
	idx := uint32(len(t.values))
	t.byValue[s] = idx
	return idx
}

// Lookup resolves an index back to its string. Index 0 and indices past the
// table report false.
func (t *StringTable) Lookup(idx uint32) (string, bool) {
	if idx == 0 || idx > uint32(len(t.values)) {
		return "", false
	}
	return t.values[idx-1], true
}

// Len returns the number of interned strings.
func (t *StringTable) Len() int {
	return len(t.values)
}

// Strings returns the interned strings in index order (index 1 first).
func (t *StringTable) Strings() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}
