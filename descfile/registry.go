package descfile

import (
	"sort"

	"github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/layout"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

type state uint8

const (
	statePending state = iota
	stateResolving
	stateDone
)

// Registry holds resolved named types and looks up type expressions
// against them. It is safe for concurrent lookups once loaded.
type Registry struct {
	specs map[string]TypeSpec
	types map[string]*typedesc.Type
	state map[string]state
}

// NewRegistry returns a registry that knows only the builtin types.
func NewRegistry() *Registry {
	return &Registry{
		specs: map[string]TypeSpec{},
		types: map[string]*typedesc.Type{},
		state: map[string]state{},
	}
}

// Resolve builds every type of f and validates it.
func (f *File) Resolve() (*Registry, error) {
	r := NewRegistry()
	for name, spec := range f.Types {
		if name == "" {
			return nil, errors.InvalidInput(errors.PhaseDescribe, nil, "empty type name")
		}
		if _, ok := builtin(name); ok {
			return nil, errors.InvalidInput(errors.PhaseDescribe, []string{name}, "redefines a builtin type")
		}
		r.specs[name] = spec
		// Allocated up front so references through pointers can be taken
		// before the type itself is complete.
		r.types[name] = &typedesc.Type{}
	}

	names := r.Names()
	for _, name := range names {
		if _, err := r.named(name, true); err != nil {
			return nil, err
		}
	}
	for _, name := range names {
		if err := r.types[name].Validate(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Names returns the defined type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a type expression such as "Point", "char *" or
// "std::vector<Color>".
func (r *Registry) Lookup(expr string) (*typedesc.Type, error) {
	return r.parse(expr, true, []string{expr})
}

// named returns the type defined as name. byValue is false when the
// reference is through a pointer or container, which may close a cycle.
func (r *Registry) named(name string, byValue bool) (*typedesc.Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseDescribe, "type", name)
	}

	switch r.state[name] {
	case stateDone:
		return t, nil
	case stateResolving:
		if byValue {
			return nil, errors.InvalidInput(errors.PhaseDescribe, []string{name}, "type contains itself by value")
		}
		return t, nil
	}

	r.state[name] = stateResolving
	built, err := r.build(name, r.specs[name])
	if err != nil {
		return nil, err
	}
	*t = *built
	r.state[name] = stateDone
	return t, nil
}

func (r *Registry) build(name string, spec TypeSpec) (*typedesc.Type, error) {
	path := []string{name}
	display := name
	if spec.Name != "" {
		display = spec.Name
	}

	switch spec.Kind {
	case KindStruct:
		return r.buildStruct(display, spec, path)
	case KindEnum:
		return r.buildEnum(display, spec, path)
	case KindOpaque:
		return typedesc.Opaque(display, spec.Size, spec.Align), nil
	case KindAlias:
		if spec.Target == "" {
			return nil, errors.FieldMissing(errors.PhaseDescribe, path, "target")
		}
		target, err := r.parse(spec.Target, true, path)
		if err != nil {
			return nil, err
		}
		return typedesc.Named(display, target), nil
	case "":
		return nil, errors.FieldMissing(errors.PhaseDescribe, path, "kind")
	default:
		return nil, errors.New(errors.PhaseDescribe, errors.KindUnsupported).
			Path(path...).
			Detail("unknown kind %q", spec.Kind).
			Value(spec.Kind).
			Build()
	}
}

func (r *Registry) buildStruct(name string, spec TypeSpec, path []string) (*typedesc.Type, error) {
	fields := make([]typedesc.Field, len(spec.Fields))
	explicit := 0
	for i, fs := range spec.Fields {
		fieldPath := append(append([]string{}, path...), fs.Name)
		if fs.Type == "" {
			return nil, errors.FieldMissing(errors.PhaseDescribe, fieldPath, "type")
		}
		ft, err := r.parse(fs.Type, true, fieldPath)
		if err != nil {
			return nil, err
		}
		fields[i] = typedesc.Field{Name: fs.Name, Type: ft}
		if fs.Offset != nil {
			fields[i].Offset = *fs.Offset
			explicit++
		}
	}

	var t *typedesc.Type
	switch explicit {
	case 0:
		t = layout.Struct(name, fields...)
	case len(fields):
		t = typedesc.Record(name, 0, fields...)
		info := layout.Of(t)
		t.Size, t.Align = info.Size, info.Align
	default:
		return nil, errors.InvalidInput(errors.PhaseDescribe, path, "either all fields or none give an offset")
	}

	if spec.Size != 0 {
		t.Size = spec.Size
	}
	if spec.Align != 0 {
		t.Align = spec.Align
	}
	return t, nil
}

func (r *Registry) buildEnum(name string, spec TypeSpec, path []string) (*typedesc.Type, error) {
	underlying := typedesc.Int32()
	if spec.Underlying != "" {
		var err error
		if underlying, err = r.parse(spec.Underlying, true, append(path, "underlying")); err != nil {
			return nil, err
		}
	}

	enumerators := make([]typedesc.Enumerator, len(spec.Enumerators))
	next := int64(0)
	for i, es := range spec.Enumerators {
		if es.Name == "" {
			return nil, errors.FieldMissing(errors.PhaseDescribe, path, "name")
		}
		if es.Value != nil {
			next = *es.Value
		}
		enumerators[i] = typedesc.Enumerator{Name: es.Name, Value: next}
		next++
	}
	return typedesc.Enum(name, underlying, enumerators...), nil
}
