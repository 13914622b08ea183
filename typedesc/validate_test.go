package typedesc

import (
	"errors"
	"testing"

	vperrors "github.com/wippyai/wasm-valueprinter/errors"
)

func TestValidate(t *testing.T) {
	node := Record("Node", 8)
	node.Fields = []Field{
		{Name: "value", Type: Int32(), Offset: 0},
		{Name: "next", Type: PointerTo(node), Offset: 4},
	}

	valid := []*Type{
		Int32(),
		LongDouble(),
		Float(10),
		WChar(),
		PointerTo(Void()),
		ArrayOf(Char8(), 3),
		Enum("E", Uint8(), Enumerator{Name: "A", Value: 1}),
		Enum("C", Char8()),
		String(Char16()),
		VectorOf(Record("Opaque", 4)),
		FixedArrayOf(Int16(), 2),
		Opaque("lambda", 1, 1),
		node,
	}
	for _, typ := range valid {
		t.Run("valid "+typ.DisplayName(), func(t *testing.T) {
			if err := typ.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}

	tests := []struct {
		name string
		typ  *Type
		kind vperrors.Kind
	}{
		{"int width", Int(3, true), vperrors.KindInvalidInput},
		{"float width", Float(2), vperrors.KindInvalidInput},
		{"char width", Char(8, EncodingPlain), vperrors.KindInvalidInput},
		{"bool width", &Type{Kind: KindBool, Width: 4}, vperrors.KindInvalidInput},
		{"enum without underlying", Enum("E", nil), vperrors.KindFieldMissing},
		{"enum over double", Enum("E", Float64()), vperrors.KindInvalidInput},
		{"pointer to nil", PointerTo(nil), vperrors.KindInvalidInput},
		{"string of ints", String(Int32()), vperrors.KindInvalidInput},
		{"vector without element", VectorOf(nil), vperrors.KindFieldMissing},
		{"container with fields", &Type{Kind: KindRecord, Shape: ShapeVector, Elem: Int32(), Fields: []Field{{Name: "x", Type: Int32()}}}, vperrors.KindInvalidInput},
		{"unnamed field", Record("R", 4, Field{Type: Int32()}), vperrors.KindFieldMissing},
		{"field past size", Record("R", 4, Field{Name: "x", Type: Int32(), Offset: 4}), vperrors.KindInvalidInput},
		{"bad field type", Record("R", 0, Field{Name: "x", Type: Int(5, false)}), vperrors.KindInvalidInput},
		{"unknown kind", &Type{Kind: Kind(200)}, vperrors.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var verr *vperrors.Error
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *errors.Error", err)
			}
			if verr.Phase != vperrors.PhaseDescribe || verr.Kind != tt.kind {
				t.Errorf("got %s/%s, want describe/%s: %v", verr.Phase, verr.Kind, tt.kind, err)
			}
		})
	}
}

func TestValidateReportsPath(t *testing.T) {
	inner := Record("Inner", 4, Field{Name: "bad", Type: Int(3, true)})
	outer := Record("Outer", 8, Field{Name: "in", Type: inner, Offset: 0})

	var verr *vperrors.Error
	if !errors.As(outer.Validate(), &verr) {
		t.Fatal("expected a structured error")
	}
	want := []string{"Outer", "in", "bad"}
	if len(verr.Path) != len(want) {
		t.Fatalf("path = %v, want %v", verr.Path, want)
	}
	for i := range want {
		if verr.Path[i] != want[i] {
			t.Fatalf("path = %v, want %v", verr.Path, want)
		}
	}
}
