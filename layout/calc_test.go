package layout

import (
	"testing"

	"github.com/wippyai/wasm-valueprinter/typedesc"
)

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		typ  *typedesc.Type
		want Info
	}{
		{"bool", typedesc.Bool(), Info{1, 1}},
		{"short", typedesc.Int16(), Info{2, 2}},
		{"long long", typedesc.Int64(), Info{8, 8}},
		{"double", typedesc.Float64(), Info{8, 8}},
		{"long double", typedesc.LongDouble(), Info{16, 16}},
		{"x87 long double", typedesc.Float(10), Info{16, 16}},
		{"wchar_t", typedesc.WChar(), Info{4, 4}},
		{"pointer", typedesc.PointerTo(typedesc.Float64()), Info{4, 4}},
		{"nullptr_t", typedesc.NullPtr(), Info{4, 4}},
		{"enum", typedesc.Enum("E", typedesc.Uint8()), Info{1, 1}},
		{"array", typedesc.ArrayOf(typedesc.Int16(), 3), Info{6, 2}},
		{"unbounded array", typedesc.UnboundedArrayOf(typedesc.Int32()), Info{0, 4}},
		{"string", typedesc.String(typedesc.Char8()), Info{StringHeaderSize, 4}},
		{"deque", typedesc.DequeOf(typedesc.Float64()), Info{DequeHeaderSize, 4}},
		{"std::array", typedesc.FixedArrayOf(typedesc.Float64(), 2), Info{16, 8}},
		{"opaque", typedesc.Opaque("lambda", 12, 4), Info{12, 4}},
		{"opaque without align", typedesc.Opaque("tag", 1, 0), Info{1, 1}},
		{"void", typedesc.Void(), Info{0, 1}},
		{"nil", nil, Info{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.typ); got != tt.want {
				t.Errorf("Of() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStruct(t *testing.T) {
	s := Struct("Mixed",
		F("c", typedesc.Char8()),
		F("i", typedesc.Int32()),
		F("d", typedesc.Char8()),
		F("x", typedesc.Float64()),
		F("tail", typedesc.Int16()),
	)

	wantOffsets := map[string]uint32{"c": 0, "i": 4, "d": 8, "x": 16, "tail": 24}
	for _, f := range s.Fields {
		if f.Offset != wantOffsets[f.Name] {
			t.Errorf("field %s offset = %d, want %d", f.Name, f.Offset, wantOffsets[f.Name])
		}
	}
	if s.Size != 32 || s.Align != 8 {
		t.Errorf("size/align = %d/%d, want 32/8", s.Size, s.Align)
	}
	if got := Of(s); got != (Info{32, 8}) {
		t.Errorf("Of() = %+v", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestStructNested(t *testing.T) {
	inner := Struct("Inner", F("a", typedesc.Char8()), F("b", typedesc.Int16()))
	outer := Struct("Outer", F("flag", typedesc.Bool()), F("in", inner), F("arr", typedesc.ArrayOf(typedesc.Char8(), 3)))

	if inner.Size != 4 || inner.Align != 2 {
		t.Fatalf("inner size/align = %d/%d", inner.Size, inner.Align)
	}
	if outer.Fields[1].Offset != 2 || outer.Fields[2].Offset != 6 {
		t.Errorf("offsets = %d, %d", outer.Fields[1].Offset, outer.Fields[2].Offset)
	}
	if outer.Size != 10 {
		t.Errorf("outer size = %d, want 10", outer.Size)
	}
}

func TestRecordInfoFromFields(t *testing.T) {
	r := typedesc.Record("R", 0,
		typedesc.Field{Name: "a", Type: typedesc.Int32(), Offset: 0},
		typedesc.Field{Name: "b", Type: typedesc.Char8(), Offset: 4},
	)
	if got := Of(r); got != (Info{8, 4}) {
		t.Errorf("Of() = %+v, want {8 4}", got)
	}

	r.Size = 12
	if got := Of(r); got != (Info{12, 4}) {
		t.Errorf("explicit size: Of() = %+v, want {12 4}", got)
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct{ off, align, want uint32 }{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{13, 8, 16},
		{13, 1, 13},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := AlignTo(tt.off, tt.align); got != tt.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.off, tt.align, got, tt.want)
		}
	}
}
