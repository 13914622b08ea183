package layout

import (
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// PointerSize is the width of a pointer in wasm32 linear memory.
const PointerSize = 4

// Info is the size and alignment of a type in linear memory.
type Info struct {
	Size  uint32
	Align uint32
}

// Of returns the wasm32 layout of t. Record sizes given by the descriptor
// win over computed ones.
func Of(t *typedesc.Type) Info {
	if t == nil {
		return Info{Size: 0, Align: 1}
	}
	switch t.Kind {
	case typedesc.KindBool, typedesc.KindInteger, typedesc.KindChar:
		w := uint32(t.Width)
		return Info{Size: w, Align: w}
	case typedesc.KindFloat:
		if t.Width > 8 {
			return Info{Size: 16, Align: 16}
		}
		w := uint32(t.Width)
		return Info{Size: w, Align: w}
	case typedesc.KindPointer, typedesc.KindNullPtr:
		return Info{Size: PointerSize, Align: PointerSize}
	case typedesc.KindEnum:
		return Of(t.Underlying)
	case typedesc.KindArray:
		elem := Of(t.Elem)
		if !t.Bounded {
			return Info{Size: 0, Align: elem.Align}
		}
		return Info{Size: elem.Size * t.Length, Align: elem.Align}
	case typedesc.KindRecord:
		return recordInfo(t)
	case typedesc.KindOpaque:
		return Info{Size: t.Size, Align: max(t.Align, 1)}
	default:
		return Info{Size: 0, Align: 1}
	}
}

func recordInfo(t *typedesc.Type) Info {
	switch t.Shape {
	case typedesc.ShapeNone:
	case typedesc.ShapeFixedArray:
		elem := Of(t.Elem)
		return Info{Size: elem.Size * t.Length, Align: elem.Align}
	default:
		return Info{Size: HeaderSize(t.Shape), Align: PointerSize}
	}

	if len(t.Fields) == 0 {
		return Info{Size: t.Size, Align: max(t.Align, 1)}
	}

	maxAlign := uint32(1)
	end := uint32(0)
	for _, f := range t.Fields {
		fl := Of(f.Type)
		if fl.Align > maxAlign {
			maxAlign = fl.Align
		}
		if e := f.Offset + fl.Size; e > end {
			end = e
		}
	}
	if t.Align > maxAlign {
		maxAlign = t.Align
	}
	if t.Size != 0 {
		return Info{Size: t.Size, Align: maxAlign}
	}
	return Info{Size: AlignTo(end, maxAlign), Align: maxAlign}
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Struct builds a record whose fields are placed in declaration order at
// their natural alignment. Offsets already present on fields are ignored.
func Struct(name string, fields ...typedesc.Field) *typedesc.Type {
	out := make([]typedesc.Field, len(fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, f := range fields {
		fl := Of(f.Type)
		offset = AlignTo(offset, fl.Align)
		out[i] = typedesc.Field{Name: f.Name, Type: f.Type, Offset: offset}
		if fl.Align > maxAlign {
			maxAlign = fl.Align
		}
		offset += fl.Size
	}

	return &typedesc.Type{
		Kind:   typedesc.KindRecord,
		Name:   name,
		Fields: out,
		Size:   AlignTo(offset, maxAlign),
		Align:  maxAlign,
	}
}

// F is shorthand for a field whose offset Struct will assign.
func F(name string, t *typedesc.Type) typedesc.Field {
	return typedesc.Field{Name: name, Type: t}
}
