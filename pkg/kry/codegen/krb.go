package codegen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"kryon-labs/kryonc/pkg/kry/errors"
	"kryon-labs/kryonc/pkg/kry/registry"
)

// KRB file framing. All multi-byte values are little-endian. The file is
// header, string table, variable section, element section, CRC-32 trailer
// over everything before it.
var magic = [4]byte{'K', 'R', 'Y', 'N'}

const FormatVersion uint16 = 1

// Assemble lays out the final KRB file from an encoder's finished record
// buffers. The string table section is written first but assembled last,
// since encoding is what populates it.
func Assemble(e *Encoder) []byte {
	var out bytes.Buffer

	out.Write(magic[:])
	writeU16(&out, FormatVersion)
	writeU16(&out, 0) // header flags

	strs := e.strings.Strings()
	writeU32(&out, uint32(len(strs)))
	for _, s := range strs {
		writeString(&out, s)
	}

	writeU32(&out, e.varCount)
	out.Write(e.varBuf.Bytes())

	writeU32(&out, e.elemCount)
	out.Write(e.elemBuf.Bytes())

	writeU32(&out, crc32.ChecksumIEEE(out.Bytes()))
	return out.Bytes()
}

// Decoded file model, used by inspect output and round-trip tests.

type File struct {
	Version   uint16
	Strings   []string
	Variables []Variable
	Elements  []Element
}

type Variable struct {
	Name     string
	Type     uint8
	Reactive bool
	Value    string // rendered value, whatever the wire type
}

type Element struct {
	ID         uint32
	TypeID     uint32
	ParentID   uint32
	StyleID    uint32
	ChildCount uint16
	EventCount uint16
	Flags      uint32
	Properties []Property
}

type Property struct {
	ID    uint16
	Name  string // canonical or custom name
	Value string // rendered value
}

// Decode parses a KRB file, verifying the magic and the CRC-32 trailer.
func Decode(data []byte) (*File, error) {
	if len(data) < 12 {
		return nil, decodeErr("file too short")
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, decodeErr("bad magic, not a KRB file")
	}

	body := data[:len(data)-4]
	stored := binary.LittleEndian.Uint32(data[len(data)-4:])
	if crc32.ChecksumIEEE(body) != stored {
		return nil, decodeErr("checksum mismatch, file corrupt")
	}

	r := &reader{data: body, off: 4}
	f := &File{Version: r.u16()}
	r.u16() // header flags

	count := r.u32()
	f.Strings = make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		f.Strings = append(f.Strings, r.str())
	}

	varCount := r.u32()
	for i := uint32(0); i < varCount; i++ {
		f.Variables = append(f.Variables, r.variable(f))
	}

	elemCount := r.u32()
	for i := uint32(0); i < elemCount; i++ {
		f.Elements = append(f.Elements, r.element(f))
	}

	if r.failed {
		return nil, decodeErr("truncated record section")
	}
	return f, nil
}

// StringAt resolves a 1-based string table reference; 0 means absent.
func (f *File) StringAt(ref uint32) string {
	if ref == 0 || ref > uint32(len(f.Strings)) {
		return ""
	}
	return f.Strings[ref-1]
}

type reader struct {
	data   []byte
	off    int
	failed bool
}

func (r *reader) take(n int) []byte {
	if r.failed || r.off+n > len(r.data) {
		r.failed = true
		return make([]byte, n)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8   { return r.take(1)[0] }
func (r *reader) u16() uint16 { return binary.LittleEndian.Uint16(r.take(2)) }
func (r *reader) u32() uint32 { return binary.LittleEndian.Uint32(r.take(4)) }

func (r *reader) str() string {
	n := int(r.u16())
	return string(r.take(n))
}

func (r *reader) variable(f *File) Variable {
	v := Variable{Name: f.StringAt(r.u32())}
	v.Type = r.u8()
	flags := r.u8()
	v.Reactive = flags&VarFlagReactive != 0

	switch v.Type &^ VarReactiveBit {
	case VarStaticInteger:
		v.Value = fmt.Sprintf("%d", int32(r.u32()))
	case VarStaticFloat:
		v.Value = fmt.Sprintf("%g", math.Float32frombits(r.u32()))
	case VarStaticBoolean:
		if r.u8() != 0 {
			v.Value = "true"
		} else {
			v.Value = "false"
		}
	default:
		v.Value = r.str()
	}
	return v
}

func (r *reader) element(f *File) Element {
	el := Element{
		ID:       r.u32(),
		TypeID:   r.u32(),
		ParentID: r.u32(),
		StyleID:  r.u32(),
	}
	propCount := r.u16()
	el.ChildCount = r.u16()
	el.EventCount = r.u16()
	el.Flags = r.u32()

	for i := uint16(0); i < propCount; i++ {
		el.Properties = append(el.Properties, r.property(f))
	}
	return el
}

func (r *reader) property(f *File) Property {
	p := Property{ID: r.u16()}

	var hint registry.TypeHint
	if p.ID == registry.CustomPropertyID {
		p.Name = f.StringAt(r.u32())
		hint = registry.HintAny
	} else {
		p.Name, _ = registry.PropertyName(p.ID)
		hint = registry.PropertyHint(p.ID)
	}

	switch {
	case hint == registry.HintColor:
		p.Value = fmt.Sprintf("#%08X", r.u32())
	case hint.IsFloatFamily():
		p.Value = fmt.Sprintf("%g", math.Float32frombits(r.u32()))
	case hint == registry.HintInteger:
		p.Value = fmt.Sprintf("%d", int32(r.u32()))
	case hint == registry.HintBoolean:
		if r.u8() != 0 {
			p.Value = "true"
		} else {
			p.Value = "false"
		}
	case hint == registry.HintArray:
		n := r.u16()
		var parts []byte
		for i := uint16(0); i < n; i++ {
			if i > 0 {
				parts = append(parts, ", "...)
			}
			parts = append(parts, f.StringAt(r.u32())...)
		}
		p.Value = "[" + string(parts) + "]"
	default:
		p.Value = r.str()
	}
	return p
}

func decodeErr(msg string) error {
	return &errors.Error{
		Type:    errors.ErrorTypeEncoding,
		Message: msg,
	}
}
