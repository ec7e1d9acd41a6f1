package registry

// TypeHint is the static value-shape attached to a registered property id.
// The binary encoder selects a value wire format from the hint alone; it
// never inspects the runtime shape of the value.
type TypeHint uint8

const (
	HintAny TypeHint = iota
	HintString
	HintInteger
	HintFloat
	HintBoolean
	HintColor
	HintDimension
	HintSpacing
	HintUnit
	HintReference
	HintArray
	HintComponent
)

// String returns the hint name used in diagnostics and inspect output.
func (h TypeHint) String() string {
	switch h {
	case HintString:
		return "string"
	case HintInteger:
		return "integer"
	case HintFloat:
		return "float"
	case HintBoolean:
		return "boolean"
	case HintColor:
		return "color"
	case HintDimension:
		return "dimension"
	case HintSpacing:
		return "spacing"
	case HintUnit:
		return "unit"
	case HintReference:
		return "reference"
	case HintArray:
		return "array"
	case HintComponent:
		return "component"
	}
	return "any"
}

// IsFloatFamily reports whether the hint encodes its value as a 4-byte
// float32 on the wire.
func (h TypeHint) IsFloatFamily() bool {
	switch h {
	case HintFloat, HintDimension, HintSpacing, HintUnit:
		return true
	}
	return false
}

// IsStringFamily reports whether the hint encodes its value as a
// length-prefixed string on the wire.
func (h TypeHint) IsStringFamily() bool {
	return h == HintString || h == HintReference || h == HintAny
}

// propertyEntry maps a canonical property name and its aliases to a stable
// wire id and a type hint. Ids are grouped by category: base 0x00xx, layout
// 0x01xx, visual 0x02xx, typography 0x03xx, transform 0x04xx, interactive
// 0x05xx, element-specific 0x06xx, window 0x07xx, checkbox 0x08xx.
type propertyEntry struct {
	name    string
	aliases []string
	id      uint16
	hint    TypeHint
}

var propertyEntries = []propertyEntry{
	// Base
	{"id", nil, 0x0001, HintString},
	{"class", []string{"className"}, 0x0002, HintString},
	{"style", nil, 0x0003, HintString},
	{"theme", nil, 0x0004, HintString},
	{"title", nil, 0x0006, HintString},
	{"version", nil, 0x0007, HintString},
	{"description", nil, 0x0008, HintString},

	// Layout
	{"width", nil, 0x0100, HintDimension},
	{"height", nil, 0x0101, HintDimension},
	{"minWidth", []string{"minW"}, 0x0102, HintDimension},
	{"maxWidth", []string{"maxW"}, 0x0103, HintDimension},
	{"minHeight", []string{"minH"}, 0x0104, HintDimension},
	{"maxHeight", []string{"maxH"}, 0x0105, HintDimension},
	{"padding", []string{"p"}, 0x0106, HintSpacing},
	{"margin", []string{"m"}, 0x0107, HintSpacing},
	{"gap", []string{"spacing"}, 0x0108, HintDimension},
	{"aspectRatio", []string{"aspect"}, 0x0109, HintFloat},
	{"flex", nil, 0x010A, HintFloat},
	{"columns", nil, 0x010C, HintInteger},
	{"posX", []string{"x"}, 0x010D, HintFloat},
	{"posY", []string{"y"}, 0x010E, HintFloat},
	{"zIndex", []string{"z"}, 0x010F, HintInteger},

	// Visual
	{"background", []string{"backgroundColor", "bg"}, 0x0200, HintColor},
	{"color", []string{"textColor"}, 0x0201, HintColor},
	{"border", nil, 0x0202, HintString},
	{"borderRadius", []string{"radius"}, 0x0203, HintDimension},
	{"opacity", nil, 0x0205, HintFloat},
	{"borderColor", nil, 0x0206, HintColor},
	{"borderWidth", nil, 0x0207, HintDimension},
	{"visible", nil, 0x0208, HintBoolean},

	// Typography
	{"fontSize", nil, 0x0300, HintDimension},
	{"fontWeight", nil, 0x0301, HintString},
	{"fontFamily", []string{"font"}, 0x0302, HintString},
	{"lineHeight", nil, 0x0303, HintDimension},
	{"textAlign", nil, 0x0304, HintString},
	{"fontStyle", nil, 0x0305, HintString},

	// Interactive
	{"cursor", nil, 0x0500, HintString},
	{"disabled", nil, 0x0503, HintBoolean},
	{"options", nil, 0x0611, HintArray},
	{"onClick", []string{"onTap"}, 0x0510, HintReference},
	{"onChange", nil, 0x0511, HintReference},
	{"onFocus", nil, 0x0512, HintReference},
	{"onBlur", nil, 0x0513, HintReference},
	{"onMouseEnter", []string{"onHover"}, 0x0514, HintReference},
	{"onMouseLeave", nil, 0x0515, HintReference},

	// Element-specific
	{"src", []string{"source"}, 0x0600, HintString},
	{"value", nil, 0x0601, HintString},
	{"placeholder", nil, 0x0604, HintString},
	{"mainAxis", []string{"mainAxisAlignment"}, 0x0606, HintString},
	{"crossAxis", []string{"crossAxisAlignment"}, 0x0607, HintString},
	{"direction", nil, 0x0608, HintString},
	{"align", []string{"alignItems"}, 0x060A, HintString},
	{"justify", []string{"justifyContent"}, 0x060B, HintString},
	{"contentAlignment", nil, 0x060E, HintString},
	{"text", nil, 0x060F, HintString},
	{"objectFit", nil, 0x0610, HintString},
	{"selectedIndex", nil, 0x0612, HintInteger},
	{"activeIndex", nil, 0x0613, HintInteger},

	// Window
	{"windowWidth", []string{"winWidth"}, 0x0700, HintDimension},
	{"windowHeight", []string{"winHeight"}, 0x0701, HintDimension},
	{"windowTitle", []string{"winTitle"}, 0x0702, HintString},
	{"windowResizable", []string{"resizable"}, 0x0703, HintBoolean},
	{"keepAspectRatio", nil, 0x0704, HintBoolean},

	// Checkbox
	{"label", nil, 0x0800, HintString},
	{"checked", nil, 0x0801, HintBoolean},
	{"checkColor", []string{"checkmarkColor"}, 0x0803, HintColor},
}

var (
	propertyByName = map[string]*propertyEntry{}
	propertyByID   = map[uint16]*propertyEntry{}
	propertyNames  []string
)

func init() {
	for i := range propertyEntries {
		e := &propertyEntries[i]
		propertyByName[e.name] = e
		propertyByID[e.id] = e
		propertyNames = append(propertyNames, e.name)
		for _, a := range e.aliases {
			propertyByName[a] = e
		}
	}
}

// CustomPropertyID marks a property with no registered id. The encoder
// follows it with a string table reference to the property name.
const CustomPropertyID uint16 = 0xFFFF

// PropertyID resolves a property name (canonical or alias) to its wire id.
// Unknown names return (CustomPropertyID, false).
func PropertyID(name string) (uint16, bool) {
	if e, ok := propertyByName[name]; ok {
		return e.id, true
	}
	return CustomPropertyID, false
}

// PropertyHint returns the static type hint for a registered property id.
// Unregistered ids default to HintAny, which encodes in string form.
func PropertyHint(id uint16) TypeHint {
	if e, ok := propertyByID[id]; ok {
		return e.hint
	}
	return HintAny
}

// HintForName resolves a property name straight to its type hint.
func HintForName(name string) TypeHint {
	if e, ok := propertyByName[name]; ok {
		return e.hint
	}
	return HintAny
}

// PropertyName returns the canonical name for a registered property id.
func PropertyName(id uint16) (string, bool) {
	if e, ok := propertyByID[id]; ok {
		return e.name, true
	}
	return "", false
}

// KnownPropertyNames returns the canonical property names in registration
// order, for use in diagnostics.
func KnownPropertyNames() []string {
	out := make([]string, len(propertyNames))
	copy(out, propertyNames)
	return out
}
