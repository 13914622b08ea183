package typedesc

import "testing"

func TestDisplayName(t *testing.T) {
	charPtr := PointerTo(Char8())

	tests := []struct {
		typ  *Type
		want string
	}{
		{Void(), "void"},
		{nil, "void"},
		{Bool(), "bool"},
		{Int8(), "signed char"},
		{Uint8(), "unsigned char"},
		{Int16(), "short"},
		{Uint16(), "unsigned short"},
		{Int32(), "int"},
		{Uint32(), "unsigned int"},
		{Int64(), "long long"},
		{Uint64(), "unsigned long long"},
		{Float32(), "float"},
		{Float64(), "double"},
		{LongDouble(), "long double"},
		{Char8(), "char"},
		{Char16(), "char16_t"},
		{Char32(), "char32_t"},
		{WChar(), "wchar_t"},
		{NullPtr(), "std::nullptr_t"},
		{charPtr, "char *"},
		{PointerTo(charPtr), "char **"},
		{PointerTo(Void()), "void *"},
		{ArrayOf(Int32(), 4), "int[4]"},
		{ArrayOf(ArrayOf(Int32(), 3), 2), "int[2][3]"},
		{UnboundedArrayOf(Char8()), "char[]"},
		{Enum("", Int32()), "enum"},
		{Enum("Color", Int32()), "Color"},
		{Record("", 4), "struct"},
		{Record("Point", 8), "Point"},
		{String(Char8()), "std::string"},
		{String(WChar()), "std::wstring"},
		{String(Char16()), "std::u16string"},
		{String(Char32()), "std::u32string"},
		{VectorOf(Int32()), "std::vector<int>"},
		{UnorderedSetOf(Uint8()), "std::unordered_set<unsigned char>"},
		{FixedArrayOf(Float64(), 3), "std::array<double, 3>"},
		{Opaque("", 4, 4), "opaque"},
		{Named("size_t", Uint32()), "size_t"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNamedCopies(t *testing.T) {
	base := Uint32()
	named := Named("size_t", base)
	if base.Name != "" {
		t.Errorf("Named modified its argument: %q", base.Name)
	}
	if named.Kind != KindInteger || named.Width != 4 || named.Signed {
		t.Errorf("Named lost the type: %+v", named)
	}
}

func TestPredicates(t *testing.T) {
	if !Int32().IsScalar() || !Char8().IsScalar() || !Bool().IsScalar() || !Float64().IsScalar() {
		t.Error("builtin types must be scalar")
	}
	for _, typ := range []*Type{Enum("E", Int32()), PointerTo(Int32()), NullPtr(), Record("R", 4), nil} {
		if typ.IsScalar() {
			t.Errorf("%s must not be scalar", typ.DisplayName())
		}
	}
	if !PointerTo(Char16()).IsCharPointer() {
		t.Error("char16_t * is a char pointer")
	}
	if PointerTo(PointerTo(Char8())).IsCharPointer() {
		t.Error("char ** is not a char pointer")
	}
	if ArrayOf(Char8(), 2).IsCharPointer() {
		t.Error("char[2] is not a char pointer")
	}
}

func TestShapes(t *testing.T) {
	for s := ShapeNone; s <= ShapeFixedArray; s++ {
		got, ok := ParseShape(s.String())
		if !ok || got != s {
			t.Errorf("ParseShape(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseShape("map"); ok {
		t.Error("map is not a recognized shape")
	}
	if ShapeString.IsContainer() || ShapeFixedArray.IsContainer() {
		t.Error("strings and fixed arrays are not element containers")
	}
	if !ShapeMultiSet.IsContainer() {
		t.Error("multiset is an element container")
	}
}
