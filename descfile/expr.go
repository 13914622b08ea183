package descfile

import (
	"strconv"
	"strings"

	"github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// builtins maps normalized builtin type names to constructors. Widths are
// those of wasm32 clang: long and pointers are 4 bytes.
var builtins = map[string]func() *typedesc.Type{
	"void":               typedesc.Void,
	"bool":               typedesc.Bool,
	"char":               typedesc.Char8,
	"char8_t":            typedesc.Char8,
	"char16_t":           typedesc.Char16,
	"char32_t":           typedesc.Char32,
	"wchar_t":            typedesc.WChar,
	"signed char":        typedesc.Int8,
	"unsigned char":      typedesc.Uint8,
	"short":              typedesc.Int16,
	"short int":          typedesc.Int16,
	"unsigned short":     typedesc.Uint16,
	"unsigned short int": typedesc.Uint16,
	"int":                typedesc.Int32,
	"signed":             typedesc.Int32,
	"signed int":         typedesc.Int32,
	"unsigned":           typedesc.Uint32,
	"unsigned int":       typedesc.Uint32,
	"long":               func() *typedesc.Type { return typedesc.Named("long", typedesc.Int32()) },
	"long int":           func() *typedesc.Type { return typedesc.Named("long", typedesc.Int32()) },
	"unsigned long":      func() *typedesc.Type { return typedesc.Named("unsigned long", typedesc.Uint32()) },
	"unsigned long int":  func() *typedesc.Type { return typedesc.Named("unsigned long", typedesc.Uint32()) },
	"long long":          typedesc.Int64,
	"long long int":      typedesc.Int64,
	"unsigned long long": typedesc.Uint64,
	"float":              typedesc.Float32,
	"double":             typedesc.Float64,
	"long double":        typedesc.LongDouble,
	"std::nullptr_t":     typedesc.NullPtr,
	"nullptr_t":          typedesc.NullPtr,
	"int8_t":             alias("int8_t", typedesc.Int8),
	"uint8_t":            alias("uint8_t", typedesc.Uint8),
	"int16_t":            alias("int16_t", typedesc.Int16),
	"uint16_t":           alias("uint16_t", typedesc.Uint16),
	"int32_t":            alias("int32_t", typedesc.Int32),
	"uint32_t":           alias("uint32_t", typedesc.Uint32),
	"int64_t":            alias("int64_t", typedesc.Int64),
	"uint64_t":           alias("uint64_t", typedesc.Uint64),
	"size_t":             alias("size_t", typedesc.Uint32),
	"ssize_t":            alias("ssize_t", typedesc.Int32),
	"ptrdiff_t":          alias("ptrdiff_t", typedesc.Int32),
	"intptr_t":           alias("intptr_t", typedesc.Int32),
	"uintptr_t":          alias("uintptr_t", typedesc.Uint32),
	"std::string":        func() *typedesc.Type { return typedesc.String(typedesc.Char8()) },
	"std::wstring":       func() *typedesc.Type { return typedesc.String(typedesc.WChar()) },
	"std::u16string":     func() *typedesc.Type { return typedesc.String(typedesc.Char16()) },
	"std::u32string":     func() *typedesc.Type { return typedesc.String(typedesc.Char32()) },
}

func alias(name string, fn func() *typedesc.Type) func() *typedesc.Type {
	return func() *typedesc.Type { return typedesc.Named(name, fn()) }
}

func builtin(name string) (*typedesc.Type, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// containers maps std template names to the shape they describe.
var containers = map[string]typedesc.Shape{
	"std::vector":             typedesc.ShapeVector,
	"std::deque":              typedesc.ShapeDeque,
	"std::list":               typedesc.ShapeList,
	"std::set":                typedesc.ShapeSet,
	"std::multiset":           typedesc.ShapeMultiSet,
	"std::unordered_set":      typedesc.ShapeUnorderedSet,
	"std::basic_string":       typedesc.ShapeString,
	"std::__2::vector":        typedesc.ShapeVector,
	"std::__2::basic_string":  typedesc.ShapeString,
	"std::__2::unordered_set": typedesc.ShapeUnorderedSet,
}

// parse resolves a type expression. Declarator suffixes bind from the
// right: "char *[2]" is an array of two char pointers.
func (r *Registry) parse(expr string, byValue bool, path []string) (*typedesc.Type, error) {
	s := normalize(expr)
	if s == "" {
		return nil, errors.InvalidInput(errors.PhaseDescribe, path, "empty type expression")
	}

	var dims []string
	for strings.HasSuffix(s, "]") {
		open := strings.LastIndexByte(s, '[')
		if open < 0 {
			return nil, errors.InvalidInput(errors.PhaseDescribe, path, "unbalanced ] in "+strconv.Quote(expr))
		}
		dims = append(dims, strings.TrimSpace(s[open+1:len(s)-1]))
		s = strings.TrimSpace(s[:open])
	}

	pointers := 0
	for strings.HasSuffix(s, "*") {
		pointers++
		s = strings.TrimSpace(s[:len(s)-1])
	}

	// Only the outermost array needs its element by value; a pointer
	// anywhere in the declarator breaks the by-value chain.
	base, err := r.base(s, byValue && pointers == 0, path)
	if err != nil {
		return nil, err
	}

	t := base
	for range pointers {
		t = typedesc.PointerTo(t)
	}
	for _, d := range dims {
		if d == "" {
			t = typedesc.UnboundedArrayOf(t)
			continue
		}
		n, err := strconv.ParseUint(d, 0, 32)
		if err != nil {
			return nil, errors.InvalidInput(errors.PhaseDescribe, path, "bad array length "+strconv.Quote(d))
		}
		t = typedesc.ArrayOf(t, uint32(n))
	}
	return t, nil
}

func (r *Registry) base(s string, byValue bool, path []string) (*typedesc.Type, error) {
	if s == "" {
		return nil, errors.InvalidInput(errors.PhaseDescribe, path, "missing base type")
	}
	if t, ok := builtin(s); ok {
		return t, nil
	}

	if open := strings.IndexByte(s, '<'); open > 0 {
		if !strings.HasSuffix(s, ">") {
			return nil, errors.InvalidInput(errors.PhaseDescribe, path, "unbalanced < in "+strconv.Quote(s))
		}
		return r.template(strings.TrimSpace(s[:open]), splitArgs(s[open+1:len(s)-1]), byValue, path)
	}

	if _, ok := r.specs[s]; ok {
		return r.named(s, byValue)
	}
	return nil, errors.NotFound(errors.PhaseDescribe, "type", s)
}

func (r *Registry) template(name string, args []string, byValue bool, path []string) (*typedesc.Type, error) {
	if name == "std::array" || name == "std::__2::array" {
		if len(args) != 2 {
			return nil, errors.InvalidInput(errors.PhaseDescribe, path, "std::array takes an element type and a length")
		}
		elem, err := r.parse(args[0], byValue, path)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return nil, errors.InvalidInput(errors.PhaseDescribe, path, "bad std::array length "+strconv.Quote(args[1]))
		}
		return typedesc.FixedArrayOf(elem, uint32(n)), nil
	}

	shape, ok := containers[name]
	if !ok {
		return nil, errors.Unsupported(errors.PhaseDescribe, path, "template "+name)
	}
	if len(args) == 0 {
		return nil, errors.InvalidInput(errors.PhaseDescribe, path, name+" needs an element type")
	}
	// Allocators, comparators and traits do not change the layout.
	elem, err := r.parse(args[0], false, path)
	if err != nil {
		return nil, err
	}
	return typedesc.Container(shape, elem), nil
}

// normalize drops cv-qualifiers and collapses whitespace, keeping one
// space between words and none around punctuation.
func normalize(expr string) string {
	var b strings.Builder
	word := false
	pendingSpace := false
	for _, f := range strings.FieldsFunc(expr, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }) {
		if f == "const" || f == "volatile" {
			continue
		}
		for _, part := range splitPunct(f) {
			isWord := isIdentByte(part[0])
			if isWord && word && pendingSpace {
				b.WriteByte(' ')
			}
			b.WriteString(part)
			word = isWord
			pendingSpace = false
		}
		pendingSpace = true
	}
	return b.String()
}

// splitPunct splits a whitespace-free token into identifier runs and single
// punctuation bytes, dropping embedded cv-qualifiers such as "int*const".
func splitPunct(tok string) []string {
	var parts []string
	start := 0
	flush := func(end int) {
		if end > start {
			if p := tok[start:end]; p != "const" && p != "volatile" {
				parts = append(parts, p)
			}
		}
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if isIdentByte(c) || c == ':' {
			continue
		}
		flush(i)
		parts = append(parts, tok[i:i+1])
		start = i + 1
	}
	flush(len(tok))
	return parts
}

func isIdentByte(c byte) bool {
	return c == '_' || c == ':' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// splitArgs splits template arguments on top-level commas.
func splitArgs(s string) []string {
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		args = append(args, rest)
	}
	return args
}
