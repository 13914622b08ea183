package typedesc

import (
	"strconv"
	"strings"
)

// Type describes the static type of a value in linear memory.
//
// Which fields are meaningful depends on Kind:
//
//	KindBool, KindInteger, KindFloat   Width, Signed
//	KindChar                           Width, Encoding
//	KindPointer                        Elem (pointee)
//	KindEnum                           Underlying, Enumerators
//	KindArray                          Elem, Length, Bounded
//	KindRecord                         Fields, Size, Align, or Shape and Elem
//	KindOpaque                         Size, Align
//
// A record with a Shape other than ShapeNone has no Fields; its element type
// is Elem and, for ShapeFixedArray, its element count is Length.
type Type struct {
	Elem        *Type
	Underlying  *Type
	Name        string
	Fields      []Field
	Enumerators []Enumerator
	Length      uint32
	Size        uint32
	Align       uint32
	Kind        Kind
	Shape       Shape
	Encoding    Encoding
	Width       uint8
	Signed      bool
	Bounded     bool
}

// Field is one member of a record. Offset is supplied by whoever built the
// descriptor and is never recomputed by the printer.
type Field struct {
	Type   *Type
	Name   string
	Offset uint32
}

// Enumerator is one named constant of an enum. Name is the qualified name
// shown to the user, e.g. "NS::Red".
type Enumerator struct {
	Name  string
	Value int64
}

func (t *Type) IsScalar() bool {
	return t != nil && t.Kind.IsScalar()
}

func (t *Type) IsChar() bool {
	return t != nil && t.Kind == KindChar
}

// IsCharPointer reports whether t is a pointer whose pointee is a character type.
func (t *Type) IsCharPointer() bool {
	return t != nil && t.Kind == KindPointer && t.Elem.IsChar()
}

// DisplayName returns the name shown in field listings, e.g. "(int) 5".
func (t *Type) DisplayName() string {
	if t == nil {
		return "void"
	}
	if t.Name != "" {
		return t.Name
	}
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInteger:
		return integerName(t.Width, t.Signed)
	case KindFloat:
		switch t.Width {
		case 4:
			return "float"
		case 8:
			return "double"
		default:
			return "long double"
		}
	case KindChar:
		return charName(t.Width, t.Encoding)
	case KindNullPtr:
		return "std::nullptr_t"
	case KindPointer:
		name := t.Elem.DisplayName()
		if strings.HasSuffix(name, "*") {
			return name + "*"
		}
		return name + " *"
	case KindEnum:
		return "enum"
	case KindArray:
		// Dimensions read outermost first: int[2][3].
		var dims strings.Builder
		base := t
		for base != nil && base.Kind == KindArray && (base == t || base.Name == "") {
			dims.WriteByte('[')
			if base.Bounded {
				dims.WriteString(strconv.FormatUint(uint64(base.Length), 10))
			}
			dims.WriteByte(']')
			base = base.Elem
		}
		return base.DisplayName() + dims.String()
	case KindRecord:
		return recordName(t)
	default:
		return "opaque"
	}
}

func integerName(width uint8, signed bool) string {
	var base string
	switch width {
	case 1:
		if signed {
			return "signed char"
		}
		return "unsigned char"
	case 2:
		base = "short"
	case 4:
		base = "int"
	case 8:
		base = "long long"
	default:
		base = "__int" + strconv.Itoa(int(width)*8)
	}
	if signed {
		return base
	}
	return "unsigned " + base
}

func charName(width uint8, enc Encoding) string {
	switch enc {
	case EncodingWide:
		return "wchar_t"
	case EncodingUTF16:
		return "char16_t"
	case EncodingUTF32:
		return "char32_t"
	}
	switch width {
	case 2:
		return "char16_t"
	case 4:
		return "char32_t"
	default:
		return "char"
	}
}

func recordName(t *Type) string {
	switch t.Shape {
	case ShapeString:
		if t.Elem == nil {
			return "std::string"
		}
		switch charName(t.Elem.Width, t.Elem.Encoding) {
		case "wchar_t":
			return "std::wstring"
		case "char16_t":
			return "std::u16string"
		case "char32_t":
			return "std::u32string"
		default:
			return "std::string"
		}
	case ShapeFixedArray:
		return "std::array<" + t.Elem.DisplayName() + ", " + strconv.FormatUint(uint64(t.Length), 10) + ">"
	case ShapeNone:
		return "struct"
	default:
		return "std::" + t.Shape.String() + "<" + t.Elem.DisplayName() + ">"
	}
}
