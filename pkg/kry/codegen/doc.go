// Package codegen serializes fully expanded Kryon documents into the KRB
// binary format.
//
// # File layout
//
// All multi-byte values are little-endian:
//
//	magic "KRYN", u16 version, u16 flags
//	string table: u32 count, then u16 length + UTF-8 bytes per string
//	variables:    u32 count, then variable records
//	elements:     u32 count, then element records, depth-first
//	u32 CRC-32 (IEEE) over everything above
//
// String table references are 1-based; 0 means absent. Variable records
// carry a name reference, a type byte ({static,reactive} x {string,
// integer, float, boolean}), a flags byte, and a typed value. Element
// records carry instance, type, parent, and style ids, a property count,
// the expanded child count, an event count, and a flags word, followed by
// property records and the child records. Property records carry a u16
// property id (0xFFFF marks a custom property, followed by a name
// reference) and a value whose wire shape is chosen by the registry type
// hint alone.
//
// # Reactive sentinel
//
// A numeric-hint property bound to a reactive variable writes
// ReactiveSentinelFloat (or ReactiveSentinelInt for integer and color
// slots) instead of a value; the runtime treats the sentinel as "resolve
// reactively". String-family hints write the reference's source form into
// the string slot instead. This keeps fixed-width slots fixed-width.
//
// # Usage
//
// The Encoder drives const_for expansion and component instantiation
// itself, so it can write a parent's expanded child count before
// materializing the children. Assemble produces the final file once
// encoding has interned every string; Decode parses it back for inspect
// output and tests.
package codegen
