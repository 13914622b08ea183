package descfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	vperrors "github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/layout"
	"github.com/wippyai/wasm-valueprinter/memory"
	"github.com/wippyai/wasm-valueprinter/printer"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

const shapes = `
types:
  Point:
    kind: struct
    fields:
      - {name: x, type: int}
      - {name: y, type: int}
  Color:
    kind: enum
    underlying: unsigned char
    enumerators:
      - {name: "Color::Red"}
      - {name: "Color::Green"}
      - {name: "Color::Blue", value: 4}
      - {name: "Color::Azure"}
  Node:
    kind: struct
    fields:
      - {name: value, type: Point}
      - {name: next, type: "Node *"}
      - {name: children, type: "std::vector<Node>"}
  Packed:
    kind: struct
    size: 16
    fields:
      - {name: b, type: int, offset: 8}
      - {name: a, type: char, offset: 0}
  Callback:
    kind: opaque
    size: 4
    align: 4
  coord_t:
    kind: alias
    target: long long
  Tagged:
    kind: struct
    name: "ns::Tagged"
    fields:
      - {name: color, type: Color}
      - {name: cb, type: Callback}
      - {name: label, type: "const char *"}
`

func TestParse(t *testing.T) {
	reg, err := Parse([]byte(shapes))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"Callback", "Color", "Node", "Packed", "Point", "Tagged", "coord_t"}
	if got := reg.Names(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	t.Run("natural layout matches layout.Struct", func(t *testing.T) {
		point, err := reg.Lookup("Point")
		if err != nil {
			t.Fatal(err)
		}
		ref := layout.Struct("Point", layout.F("x", typedesc.Int32()), layout.F("y", typedesc.Int32()))
		if point.Size != ref.Size || point.Align != ref.Align || len(point.Fields) != len(ref.Fields) {
			t.Fatalf("Point = %+v, want %+v", point, ref)
		}
		for i := range ref.Fields {
			if point.Fields[i].Name != ref.Fields[i].Name || point.Fields[i].Offset != ref.Fields[i].Offset {
				t.Errorf("field %d = %+v, want %+v", i, point.Fields[i], ref.Fields[i])
			}
		}
	})

	t.Run("enumerator values continue", func(t *testing.T) {
		color, _ := reg.Lookup("Color")
		values := []int64{0, 1, 4, 5}
		for i, e := range color.Enumerators {
			if e.Value != values[i] {
				t.Errorf("%s = %d, want %d", e.Name, e.Value, values[i])
			}
		}
		if color.Underlying.Width != 1 || color.Underlying.Signed {
			t.Errorf("underlying = %+v", color.Underlying)
		}
	})

	t.Run("self reference through pointer", func(t *testing.T) {
		node, _ := reg.Lookup("Node")
		if node.Fields[1].Type.Elem != node {
			t.Error("next does not point back to Node")
		}
		if node.Fields[2].Type.Elem != node {
			t.Error("children element is not Node")
		}
		if node.Size != 20 {
			t.Errorf("Node size = %d, want 20", node.Size)
		}
	})

	t.Run("explicit offsets", func(t *testing.T) {
		packed, _ := reg.Lookup("Packed")
		if packed.Fields[0].Offset != 8 || packed.Size != 16 || packed.Align != 4 {
			t.Errorf("Packed = %+v", packed)
		}
	})

	t.Run("alias keeps its name", func(t *testing.T) {
		c, _ := reg.Lookup("coord_t*")
		if c.DisplayName() != "coord_t *" || c.Elem.Width != 8 {
			t.Errorf("coord_t* = %q", c.DisplayName())
		}
	})

	t.Run("display name override", func(t *testing.T) {
		tagged, _ := reg.Lookup("Tagged")
		if tagged.DisplayName() != "ns::Tagged" {
			t.Errorf("name = %q", tagged.DisplayName())
		}
	})
}

func TestParsedTypesPrint(t *testing.T) {
	reg, err := Parse([]byte(shapes))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mem := memory.NewPages(1)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	// Tagged at 0x100: color u8, cb at 4, label at 8.
	must(mem.WriteU8(0x100, 4))
	must(mem.WriteU32(0x104, 0x5000))
	must(mem.WriteU32(0x108, 0x200))
	must(mem.Write(0x200, []byte("tag\x00")))

	tagged, _ := reg.Lookup("Tagged")
	got := printer.New(mem).PrintNested(0x100, tagged)
	want := `{ color: (Color) (Color::Blue) : unsigned char 4, cb: (Callback) @0x104, label: (char *) "tag" }`
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind vperrors.Kind
	}{
		{"unknown key", "types:\n  A: {kind: struct, colour: red}\n", vperrors.KindInvalidData},
		{"bad yaml", "types: [", vperrors.KindInvalidData},
		{"missing kind", "types:\n  A: {size: 4}\n", vperrors.KindFieldMissing},
		{"unknown kind", "types:\n  A: {kind: union}\n", vperrors.KindUnsupported},
		{"by value cycle", "types:\n  A: {kind: struct, fields: [{name: b, type: B}]}\n  B: {kind: struct, fields: [{name: a, type: A}]}\n", vperrors.KindInvalidInput},
		{"array cycle", "types:\n  A: {kind: struct, fields: [{name: a, type: \"A[2]\"}]}\n", vperrors.KindInvalidInput},
		{"undefined type", "types:\n  A: {kind: struct, fields: [{name: b, type: Missing}]}\n", vperrors.KindNotFound},
		{"mixed offsets", "types:\n  A: {kind: struct, fields: [{name: a, type: int, offset: 0}, {name: b, type: int}]}\n", vperrors.KindInvalidInput},
		{"field without type", "types:\n  A: {kind: struct, fields: [{name: a}]}\n", vperrors.KindFieldMissing},
		{"alias without target", "types:\n  A: {kind: alias}\n", vperrors.KindFieldMissing},
		{"enum over double", "types:\n  E: {kind: enum, underlying: double}\n", vperrors.KindInvalidInput},
		{"redefined builtin", "types:\n  int: {kind: opaque, size: 4}\n", vperrors.KindInvalidInput},
		{"offset past size", "types:\n  A: {kind: struct, size: 4, fields: [{name: a, type: int, offset: 4}]}\n", vperrors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var verr *vperrors.Error
			if !errors.As(err, &verr) {
				t.Fatalf("error = %v, want structured error", err)
			}
			if verr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", verr.Kind, tt.kind, err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	reg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(reg.Names()) != 0 {
		t.Errorf("Names() = %v", reg.Names())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	if err := os.WriteFile(path, []byte(shapes), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := reg.Lookup("std::list<Point *>"); err != nil {
		t.Errorf("Lookup: %v", err)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var verr *vperrors.Error
	if !errors.As(err, &verr) || verr.Phase != vperrors.PhaseLoad || verr.Kind != vperrors.KindNotFound {
		t.Errorf("missing file error = %v", err)
	}
}
