package printer

import (
	"strings"

	"github.com/wippyai/wasm-valueprinter/layout"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// format renders the value of type t at addr. An empty result means the
// value could not be rendered; reason and err say why.
func (p *Printer) format(addr uint32, t *typedesc.Type) (string, Reason, error) {
	if t == nil {
		return "", ReasonUnsupportedKind, nil
	}

	switch t.Kind {
	case typedesc.KindEnum:
		under := enumUnderlying(t)
		v, err := readUnsigned(p.mem, addr, under.Width)
		if err != nil {
			return "", ReasonReadFailed, err
		}
		return formatEnum(t, v), "", nil

	case typedesc.KindPointer:
		ptr, err := p.mem.ReadU32(addr)
		if err != nil {
			return "", ReasonReadFailed, err
		}
		return p.formatPointer(ptr, t), "", nil

	case typedesc.KindArray:
		return p.formatArray(addr, t)

	case typedesc.KindRecord:
		return p.formatRecord(addr, t)

	case typedesc.KindNullPtr:
		return "nullptr_t", "", nil

	case typedesc.KindBool, typedesc.KindInteger, typedesc.KindFloat, typedesc.KindChar:
		v, err := loadScalar(p.mem, addr, t)
		if err != nil {
			return "", ReasonReadFailed, err
		}
		return FormatScalar(t, v), "", nil

	default:
		return "", ReasonUnsupportedKind, nil
	}
}

func enumUnderlying(t *typedesc.Type) *typedesc.Type {
	if t.Underlying != nil {
		return t.Underlying
	}
	return typedesc.Int32()
}

// formatEnum lists every enumerator equal to v, then the numeric value:
// "(NS::A) ? (NS::B) : int 1". The suffix is present even when nothing
// matches.
func formatEnum(t *typedesc.Type, v uint64) string {
	under := enumUnderlying(t)
	mask := widthMask(under.Width)

	var b strings.Builder
	first := true
	for _, e := range t.Enumerators {
		if uint64(e.Value)&mask != v&mask {
			continue
		}
		if !first {
			b.WriteString(" ? ")
		}
		b.WriteByte('(')
		b.WriteString(e.Name)
		b.WriteByte(')')
		first = false
	}

	b.WriteString(" : ")
	b.WriteString(under.DisplayName())
	b.WriteByte(' ')
	b.WriteString(formatInteger(v, under.Width, under.Signed || under.Kind == typedesc.KindChar))
	return b.String()
}

// formatPointer renders a pointer whose value is ptr. Character pointers are
// followed to the terminator. Everything else, including pointers to
// character pointers, is shown as the address it holds.
func (p *Printer) formatPointer(ptr uint32, t *typedesc.Type) string {
	if ptr == 0 {
		return "nullptr"
	}
	if t.IsCharPointer() {
		s, err := p.readString(ptr, t.Elem, 0, false)
		if err == nil {
			return s
		}
		p.degrade(ptr, t, ReasonReadFailed, err)
	}
	return FormatAddress(ptr)
}

func (p *Printer) formatArray(addr uint32, t *typedesc.Type) (string, Reason, error) {
	if !t.Bounded {
		return "", ReasonUnboundedArray, nil
	}
	return p.formatElements(addr, t.Elem, t.Length)
}

// formatElements renders n contiguous elements. Character elements form a
// string of exactly n code units; anything else is a brace list with each
// element printed as a nested value.
func (p *Printer) formatElements(addr uint32, elem *typedesc.Type, n uint32) (string, Reason, error) {
	if elem == nil {
		return "", ReasonUnsupportedKind, nil
	}
	if elem.IsChar() {
		s, err := p.readString(addr, elem, n, true)
		if err != nil {
			return "", ReasonReadFailed, err
		}
		return s, "", nil
	}

	size := layout.Of(elem).Size
	if _, err := span(n, size); err != nil {
		return "", ReasonReadFailed, err
	}

	var b strings.Builder
	b.WriteString("{ ")
	for i := uint32(0); i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.PrintNested(addr+i*size, elem))
	}
	b.WriteString(" }")
	return b.String(), "", nil
}

func (p *Printer) formatRecord(addr uint32, t *typedesc.Type) (string, Reason, error) {
	switch t.Shape {
	case typedesc.ShapeNone:
		return p.formatFields(addr, t)

	case typedesc.ShapeString:
		return p.formatStdString(addr, t)

	case typedesc.ShapeFixedArray:
		return p.formatElements(addr, t.Elem, t.Length)

	default:
		if !t.Shape.IsContainer() {
			return "", ReasonUnsupportedKind, nil
		}
		return p.formatContainer(addr, t)
	}
}

// formatFields renders "{ name: (type) value, ... }" in declaration order.
// A record without fields has nothing to show.
func (p *Printer) formatFields(addr uint32, t *typedesc.Type) (string, Reason, error) {
	if len(t.Fields) == 0 {
		return "", ReasonEmptyRecord, nil
	}

	var b strings.Builder
	b.WriteString("{ ")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": (")
		b.WriteString(f.Type.DisplayName())
		b.WriteString(") ")
		b.WriteString(p.PrintNested(addr+f.Offset, f.Type))
	}
	b.WriteString(" }")
	return b.String(), "", nil
}

func (p *Printer) formatStdString(addr uint32, t *typedesc.Type) (string, Reason, error) {
	char := t.Elem
	if char == nil {
		char = typedesc.Char8()
	}
	if !char.IsChar() {
		return "", ReasonUnsupportedElement, nil
	}

	data, err := p.mem.ReadU32(addr + layout.StringData)
	if err != nil {
		return "", ReasonReadFailed, err
	}
	n, err := p.mem.ReadU32(addr + layout.StringLen)
	if err != nil {
		return "", ReasonReadFailed, err
	}
	if n > p.cfg.maxString {
		n = p.cfg.maxString
	}

	s, err := p.readString(data, char, n, true)
	if err != nil {
		return "", ReasonReadFailed, err
	}
	return s, "", nil
}
