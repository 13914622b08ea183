package witdesc

import (
	"fmt"
	"strconv"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/layout"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// Describer converts WIT types to descriptors. Type definitions are
// converted once and shared, so a Describer should be reused across the
// types of one world. It is not safe for concurrent use.
type Describer struct {
	cache map[*wit.TypeDef]*typedesc.Type
}

func New() *Describer {
	return &Describer{cache: make(map[*wit.TypeDef]*typedesc.Type)}
}

// Describe converts t with a fresh Describer.
func Describe(t wit.Type) (*typedesc.Type, error) {
	return New().Describe(t)
}

// ParseType parses a primitive WIT type name such as "u32" or "string" and
// describes it.
func ParseType(s string) (*typedesc.Type, error) {
	t, err := wit.ParseType(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDescribe, errors.KindInvalidInput, err, "parse WIT type "+strconv.Quote(s))
	}
	return Describe(t)
}

func (d *Describer) Describe(t wit.Type) (*typedesc.Type, error) {
	return d.describe(t, nil)
}

func (d *Describer) describe(t wit.Type, path []string) (*typedesc.Type, error) {
	switch typ := t.(type) {
	case wit.Bool:
		return typedesc.Bool(), nil
	case wit.U8:
		return typedesc.Named("u8", typedesc.Uint8()), nil
	case wit.S8:
		return typedesc.Named("s8", typedesc.Int8()), nil
	case wit.U16:
		return typedesc.Named("u16", typedesc.Uint16()), nil
	case wit.S16:
		return typedesc.Named("s16", typedesc.Int16()), nil
	case wit.U32:
		return typedesc.Named("u32", typedesc.Uint32()), nil
	case wit.S32:
		return typedesc.Named("s32", typedesc.Int32()), nil
	case wit.U64:
		return typedesc.Named("u64", typedesc.Uint64()), nil
	case wit.S64:
		return typedesc.Named("s64", typedesc.Int64()), nil
	case wit.F32:
		return typedesc.Named("f32", typedesc.Float32()), nil
	case wit.F64:
		return typedesc.Named("f64", typedesc.Float64()), nil
	case wit.Char:
		return typedesc.Named("char", typedesc.Char32()), nil
	case wit.String:
		return typedesc.Named("string", typedesc.String(typedesc.Char8())), nil
	case *wit.TypeDef:
		return d.describeTypeDef(typ, path)
	case nil:
		return nil, errors.InvalidInput(errors.PhaseDescribe, path, "nil WIT type")
	default:
		return nil, errors.Unsupported(errors.PhaseDescribe, path, "WIT type "+typeString(t))
	}
}

func (d *Describer) describeTypeDef(td *wit.TypeDef, path []string) (*typedesc.Type, error) {
	if cached, ok := d.cache[td]; ok {
		return cached, nil
	}

	name := ""
	if td.Name != nil {
		name = *td.Name
		path = append(append([]string{}, path...), name)
	}

	var (
		out *typedesc.Type
		err error
	)
	switch kind := td.Kind.(type) {
	case *wit.Record:
		out, err = d.describeRecord(name, kind, path)
	case *wit.Tuple:
		out, err = d.describeTuple(name, kind, path)
	case *wit.Enum:
		out = describeEnum(name, kind)
	case *wit.Flags:
		out = describeFlags(name, kind)
	case *wit.List:
		out, err = d.describeList(name, kind, path)
	case *wit.Option:
		out, err = d.describeVariant(name, "option", path, 2, kind.Type)
	case *wit.Result:
		out, err = d.describeVariant(name, "result", path, 2, kind.OK, kind.Err)
	case *wit.Variant:
		payloads := make([]wit.Type, len(kind.Cases))
		for i, c := range kind.Cases {
			payloads[i] = c.Type
		}
		out, err = d.describeVariant(name, "variant", path, len(kind.Cases), payloads...)
	case *wit.Own:
		out = handle(name, "own", kind.Type)
	case *wit.Borrow:
		out = handle(name, "borrow", kind.Type)
	case wit.Type:
		out, err = d.describe(kind, path)
		if err == nil && name != "" {
			out = typedesc.Named(name, out)
		}
	default:
		err = errors.Unsupported(errors.PhaseDescribe, path, "WIT type definition "+typeString(td))
	}
	if err != nil {
		return nil, err
	}

	d.cache[td] = out
	return out, nil
}

func (d *Describer) describeRecord(name string, r *wit.Record, path []string) (*typedesc.Type, error) {
	fields := make([]typedesc.Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		ft, err := d.describe(f.Type, append(append([]string{}, path...), f.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, layout.F(f.Name, ft))
	}
	if name == "" {
		name = "record"
	}
	return layout.Struct(name, fields...), nil
}

// describeTuple lays a tuple out like a record whose fields are named by
// position.
func (d *Describer) describeTuple(name string, t *wit.Tuple, path []string) (*typedesc.Type, error) {
	fields := make([]typedesc.Field, 0, len(t.Types))
	names := make([]string, 0, len(t.Types))
	for i, et := range t.Types {
		pos := strconv.Itoa(i)
		ft, err := d.describe(et, append(append([]string{}, path...), pos))
		if err != nil {
			return nil, err
		}
		fields = append(fields, layout.F(pos, ft))
		names = append(names, ft.DisplayName())
	}
	if name == "" {
		name = "tuple<" + strings.Join(names, ", ") + ">"
	}
	return layout.Struct(name, fields...), nil
}

func describeEnum(name string, e *wit.Enum) *typedesc.Type {
	enumerators := make([]typedesc.Enumerator, len(e.Cases))
	for i, c := range e.Cases {
		enumerators[i] = typedesc.Enumerator{Name: c.Name, Value: int64(i)}
	}
	if name == "" {
		name = "enum"
	}
	return typedesc.Enum(name, discriminant(len(e.Cases)), enumerators...)
}

// describeFlags represents up to 64 flags as one unsigned integer and more
// than that as an array of u32 words.
func describeFlags(name string, f *wit.Flags) *typedesc.Type {
	if name == "" {
		name = "flags"
	}
	n := len(f.Flags)
	switch {
	case n == 0:
		return typedesc.Opaque(name, 0, 1)
	case n <= 8:
		return typedesc.Named(name, typedesc.Uint8())
	case n <= 16:
		return typedesc.Named(name, typedesc.Uint16())
	case n <= 32:
		return typedesc.Named(name, typedesc.Uint32())
	case n <= 64:
		return typedesc.Named(name, typedesc.Uint64())
	}
	words := uint32((n + 31) / 32)
	return typedesc.Named(name, typedesc.ArrayOf(typedesc.Named("u32", typedesc.Uint32()), words))
}

func (d *Describer) describeList(name string, l *wit.List, path []string) (*typedesc.Type, error) {
	elem, err := d.describe(l.Type, append(append([]string{}, path...), "[]"))
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "list<" + elem.DisplayName() + ">"
	}
	return typedesc.Named(name, typedesc.VectorOf(elem)), nil
}

// describeVariant sizes a discriminated union: a discriminant wide enough
// for cases, then the largest payload at the largest payload alignment.
func (d *Describer) describeVariant(name, kind string, path []string, cases int, payloads ...wit.Type) (*typedesc.Type, error) {
	disc := layout.Of(discriminant(cases))
	align := disc.Align
	size := uint32(0)
	names := make([]string, 0, len(payloads))

	for _, pt := range payloads {
		if pt == nil {
			names = append(names, "_")
			continue
		}
		p, err := d.describe(pt, path)
		if err != nil {
			return nil, err
		}
		info := layout.Of(p)
		align = max(align, info.Align)
		size = max(size, info.Size)
		names = append(names, p.DisplayName())
	}

	if name == "" {
		name = kind
		if kind != "variant" {
			name += "<" + strings.Join(names, ", ") + ">"
		}
	}
	payloadOff := layout.AlignTo(disc.Size, align)
	return typedesc.Opaque(name, layout.AlignTo(payloadOff+size, align), align), nil
}

// handle describes an own or borrow handle, an i32 index into the
// component's resource table.
func handle(name, kind string, resource *wit.TypeDef) *typedesc.Type {
	if name == "" {
		name = kind
		if resource != nil && resource.Name != nil {
			name += "<" + *resource.Name + ">"
		}
	}
	return typedesc.Opaque(name, 4, 4)
}

func discriminant(cases int) *typedesc.Type {
	switch {
	case cases <= 1<<8:
		return typedesc.Named("u8", typedesc.Uint8())
	case cases <= 1<<16:
		return typedesc.Named("u16", typedesc.Uint16())
	default:
		return typedesc.Named("u32", typedesc.Uint32())
	}
}

func typeString(t any) string {
	if td, ok := t.(*wit.TypeDef); ok {
		if td.Name != nil {
			return *td.Name
		}
		t = td.Kind
	}
	return strings.TrimPrefix(strings.TrimPrefix(fmt.Sprintf("%T", t), "*"), "wit.")
}
