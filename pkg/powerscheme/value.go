package powerscheme

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"
)

// ValueType is the registry-style type of a raw setting value.
type ValueType uint32

const (
	ValueTypeNone         ValueType = 0
	ValueTypeString       ValueType = 1
	ValueTypeExpandString ValueType = 2
	ValueTypeBinary       ValueType = 3
	ValueTypeUint32       ValueType = 4 // little-endian
	ValueTypeUint32BE     ValueType = 5
	ValueTypeLink         ValueType = 6
	ValueTypeMultiString  ValueType = 7
	ValueTypeUint64       ValueType = 11 // little-endian
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeNone:
		return "none"
	case ValueTypeString:
		return "string"
	case ValueTypeExpandString:
		return "expand-string"
	case ValueTypeBinary:
		return "binary"
	case ValueTypeUint32:
		return "uint32"
	case ValueTypeUint32BE:
		return "uint32-be"
	case ValueTypeLink:
		return "link"
	case ValueTypeMultiString:
		return "multi-string"
	case ValueTypeUint64:
		return "uint64"
	}
	return fmt.Sprintf("type(%d)", uint32(t))
}

// Value is a raw, typed setting value as stored by the OS.
type Value struct {
	Type ValueType
	Raw  []byte
}

// Uint32 decodes the value as a 32-bit integer. ok is false when the
// type or size does not fit.
func (v Value) Uint32() (n uint32, ok bool) {
	if len(v.Raw) < 4 {
		return 0, false
	}
	switch v.Type {
	case ValueTypeUint32:
		return binary.LittleEndian.Uint32(v.Raw), true
	case ValueTypeUint32BE:
		return binary.BigEndian.Uint32(v.Raw), true
	}
	return 0, false
}

// Uint64 decodes the value as a 64-bit integer.
func (v Value) Uint64() (n uint64, ok bool) {
	if v.Type != ValueTypeUint64 || len(v.Raw) < 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(v.Raw), true
}

// Strings decodes a multi-string value into its elements.
func (v Value) Strings() ([]string, bool) {
	if v.Type != ValueTypeMultiString {
		return nil, false
	}
	s := strings.TrimRight(decodeUTF16LE(v.Raw), "\x00")
	if s == "" {
		return nil, true
	}
	return strings.Split(s, "\x00"), true
}

// String renders the value according to its type. Environment
// variables in expand-string values are not expanded.
func (v Value) String() string {
	switch v.Type {
	case ValueTypeNone:
		return ""
	case ValueTypeString, ValueTypeExpandString:
		return strings.TrimRight(decodeUTF16LE(v.Raw), "\x00")
	case ValueTypeMultiString:
		parts, _ := v.Strings()
		return strings.Join(parts, " ")
	case ValueTypeUint32, ValueTypeUint32BE:
		if n, ok := v.Uint32(); ok {
			return fmt.Sprintf("%d", n)
		}
	case ValueTypeUint64:
		if n, ok := v.Uint64(); ok {
			return fmt.Sprintf("%d", n)
		}
	}
	return fmt.Sprintf("%x", v.Raw)
}

func decodeUTF16LE(b []byte) string {
	u16 := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u16 = append(u16, binary.LittleEndian.Uint16(b[i:]))
	}
	return string(utf16.Decode(u16))
}
