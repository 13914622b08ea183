package typedesc

import (
	"github.com/wippyai/wasm-valueprinter/errors"
)

// Validate checks the structural invariants of t and everything reachable
// from it by value. Pointees are checked too, but each type node only once,
// so self-referential types through pointers are fine.
//
// The printer does not call Validate; descriptor loaders do.
func (t *Type) Validate() error {
	return validate(t, []string{t.DisplayName()}, make(map[*Type]bool))
}

func validate(t *Type, path []string, seen map[*Type]bool) error {
	if t == nil {
		return errors.InvalidInput(errors.PhaseDescribe, path, "nil type")
	}
	if seen[t] {
		return nil
	}
	seen[t] = true

	switch t.Kind {
	case KindVoid, KindNullPtr, KindOpaque:
		return nil
	case KindBool:
		if t.Width != 1 {
			return widthError(t, path)
		}
	case KindInteger:
		switch t.Width {
		case 1, 2, 4, 8:
		default:
			return widthError(t, path)
		}
	case KindFloat:
		switch t.Width {
		case 4, 8, 10, 16:
		default:
			return widthError(t, path)
		}
	case KindChar:
		switch t.Width {
		case 1, 2, 4:
		default:
			return widthError(t, path)
		}
	case KindPointer:
		return validate(t.Elem, append(path, "*"), seen)
	case KindEnum:
		if t.Underlying == nil {
			return errors.FieldMissing(errors.PhaseDescribe, path, "underlying")
		}
		switch t.Underlying.Kind {
		case KindInteger, KindChar, KindBool:
		default:
			return errors.New(errors.PhaseDescribe, errors.KindInvalidInput).
				Path(path...).
				TypeName(t.Underlying.DisplayName()).
				Detail("enum underlying type must be integral").
				Build()
		}
		return validate(t.Underlying, path, seen)
	case KindArray:
		return validate(t.Elem, append(path, "[]"), seen)
	case KindRecord:
		return validateRecord(t, path, seen)
	default:
		return errors.Unsupported(errors.PhaseDescribe, path, "kind "+t.Kind.String())
	}
	return nil
}

func validateRecord(t *Type, path []string, seen map[*Type]bool) error {
	if t.Shape != ShapeNone {
		if len(t.Fields) > 0 {
			return errors.New(errors.PhaseDescribe, errors.KindInvalidInput).
				Path(path...).
				Detail("%s record must not declare fields", t.Shape).
				Build()
		}
		if t.Elem == nil {
			return errors.FieldMissing(errors.PhaseDescribe, path, "element")
		}
		if t.Shape == ShapeString && !t.Elem.IsChar() {
			return errors.New(errors.PhaseDescribe, errors.KindInvalidInput).
				Path(path...).
				TypeName(t.Elem.DisplayName()).
				Detail("string element must be a character type").
				Build()
		}
		return validate(t.Elem, append(path, "<>"), seen)
	}

	for _, f := range t.Fields {
		fieldPath := append(append([]string{}, path...), f.Name)
		if f.Name == "" {
			return errors.FieldMissing(errors.PhaseDescribe, fieldPath, "name")
		}
		if t.Size != 0 && f.Offset >= t.Size {
			return errors.New(errors.PhaseDescribe, errors.KindInvalidInput).
				Path(fieldPath...).
				Detail("field offset %d past record size %d", f.Offset, t.Size).
				Value(f.Offset).
				Build()
		}
		if err := validate(f.Type, fieldPath, seen); err != nil {
			return err
		}
	}
	return nil
}

func widthError(t *Type, path []string) error {
	return errors.New(errors.PhaseDescribe, errors.KindInvalidInput).
		Path(path...).
		TypeName(t.DisplayName()).
		Detail("invalid %s width %d", t.Kind, t.Width).
		Value(t.Width).
		Build()
}
