package registry

import "sort"

// Element type id ranges. Layout elements sit in 0x0001-0x00FF, content
// elements in 0x0400-0x04FF, application elements in 0x1000-0x1FFF, and
// user-defined components in 0x2000-0x7FFF.
const (
	CustomElementStart uint32 = 0x2000
	CustomElementEnd   uint32 = 0x7FFF
)

type elementEntry struct {
	name    string
	aliases []string
	id      uint32
}

var elementEntries = []elementEntry{
	{"Element", nil, 0x0000},
	{"Container", []string{"Box"}, 0x0001},
	{"Row", nil, 0x0002},
	{"Column", []string{"Col"}, 0x0003},
	{"Center", nil, 0x0004},
	{"Flex", nil, 0x0005},
	{"Spacer", nil, 0x0006},
	{"Text", nil, 0x0400},
	{"Button", []string{"Btn"}, 0x0401},
	{"Image", []string{"Img"}, 0x0402},
	{"Input", []string{"TextInput"}, 0x0403},
	{"Checkbox", nil, 0x0404},
	{"Slider", []string{"Range"}, 0x0405},
	{"Dropdown", []string{"Select"}, 0x0406},
	{"App", nil, 0x1000},
	{"Modal", nil, 0x1001},
	{"Form", nil, 0x1002},
	{"Grid", nil, 0x1003},
	{"List", nil, 0x1004},
	{"Link", nil, 0x100B},
	{"TabBar", nil, 0x100C},
	{"Tab", nil, 0x100D},
	{"TabContent", nil, 0x100E},
	{"TabPanel", nil, 0x100F},
}

var (
	elementByName = map[string]uint32{}
	elementByID   = map[uint32]string{}
)

func init() {
	for _, e := range elementEntries {
		elementByName[e.name] = e.id
		elementByID[e.id] = e.name
		for _, a := range e.aliases {
			elementByName[a] = e.id
		}
	}
}

// BuiltinElementID resolves a built-in element name (canonical or alias) to
// its wire type id.
func BuiltinElementID(name string) (uint32, bool) {
	id, ok := elementByName[name]
	return id, ok
}

// ElementName returns the canonical name for a built-in element type id.
func ElementName(id uint32) (string, bool) {
	name, ok := elementByID[id]
	return name, ok
}

// Elements assigns wire type ids for one compile. Built-in element names
// resolve to their fixed ids; any other name is registered as a custom
// element with an id allocated from CustomElementStart in first-use order,
// so a given document always produces the same ids.
//
// Not safe for concurrent use; each compile owns its own instance.
type Elements struct {
	custom     map[string]uint32
	customSeen []string
	next       uint32
}

// NewElements creates an element id registry for a single compile.
func NewElements() *Elements {
	return &Elements{
		custom: make(map[string]uint32),
		next:   CustomElementStart,
	}
}

// ID resolves an element name to a type id, allocating a custom id for
// names outside the built-in table.
func (e *Elements) ID(name string) uint32 {
	if id, ok := elementByName[name]; ok {
		return id
	}
	if id, ok := e.custom[name]; ok {
		return id
	}
	id := e.next
	e.next++
	e.custom[name] = id
	e.customSeen = append(e.customSeen, name)
	return id
}

// Name resolves a type id back to its element name. Custom ids resolve to
// the name they were allocated for.
func (e *Elements) Name(id uint32) (string, bool) {
	if name, ok := elementByID[id]; ok {
		return name, true
	}
	for name, cid := range e.custom {
		if cid == id {
			return name, true
		}
	}
	return "", false
}

// Custom returns the custom element names registered during this compile,
// in allocation order.
func (e *Elements) Custom() []string {
	out := make([]string, len(e.customSeen))
	copy(out, e.customSeen)
	return out
}

// BuiltinElementNames returns every canonical built-in element name sorted
// by type id, for inspect output and diagnostics.
func BuiltinElementNames() []string {
	names := make([]string, 0, len(elementEntries))
	entries := make([]elementEntry, len(elementEntries))
	copy(entries, elementEntries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	for _, e := range entries {
		names = append(names, e.name)
	}
	return names
}
