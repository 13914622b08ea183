package descfile

import (
	"errors"
	"testing"

	vperrors "github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/layout"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"int", "int"},
		{"  unsigned   long  long ", "unsigned long long"},
		{"const char *", "char*"},
		{"char*const*", "char**"},
		{"volatile int [ 4 ]", "int[4]"},
		{"std::vector< std::string >", "std::vector<std::string>"},
		{"std::array<int, 3>", "std::array<int,3>"},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupBuiltins(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		expr  string
		name  string
		size  uint32
		align uint32
	}{
		{"int", "int", 4, 4},
		{"unsigned", "unsigned int", 4, 4},
		{"long", "long", 4, 4},
		{"unsigned long long", "unsigned long long", 8, 8},
		{"size_t", "size_t", 4, 4},
		{"long double", "long double", 16, 16},
		{"const char *", "char *", 4, 4},
		{"char **", "char **", 4, 4},
		{"char[5]", "char[5]", 5, 1},
		{"char *[3]", "char *[3]", 12, 4},
		{"int[2][3]", "int[2][3]", 24, 4},
		{"int[]", "int[]", 0, 4},
		{"int[0x10]", "int[16]", 64, 4},
		{"std::string", "std::string", 8, 4},
		{"std::wstring", "std::wstring", 8, 4},
		{"std::vector<double>", "std::vector<double>", 8, 4},
		{"std::set<int, std::less<int>>", "std::set<int>", 8, 4},
		{"std::unordered_set<char16_t>", "std::unordered_set<char16_t>", 16, 4},
		{"std::array<short, 3>", "std::array<short, 3>", 6, 2},
		{"std::basic_string<char32_t>", "std::u32string", 8, 4},
		{"std::nullptr_t", "std::nullptr_t", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ, err := r.Lookup(tt.expr)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if got := typ.DisplayName(); got != tt.name {
				t.Errorf("name = %q, want %q", got, tt.name)
			}
			info := layout.Of(typ)
			if info.Size != tt.size || info.Align != tt.align {
				t.Errorf("layout = %d/%d, want %d/%d", info.Size, info.Align, tt.size, tt.align)
			}
		})
	}
}

func TestLookupErrors(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		expr string
		kind vperrors.Kind
	}{
		{"", vperrors.KindInvalidInput},
		{"Widget", vperrors.KindNotFound},
		{"int]", vperrors.KindInvalidInput},
		{"int[x]", vperrors.KindInvalidInput},
		{"*", vperrors.KindInvalidInput},
		{"std::map<int, int>", vperrors.KindUnsupported},
		{"std::vector<>", vperrors.KindInvalidInput},
		{"std::array<int>", vperrors.KindInvalidInput},
		{"std::vector<int", vperrors.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := r.Lookup(tt.expr)
			var verr *vperrors.Error
			if !errors.As(err, &verr) {
				t.Fatalf("Lookup(%q) error = %v, want structured error", tt.expr, err)
			}
			if verr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", verr.Kind, tt.kind, err)
			}
		})
	}
}

func TestLookupReturnsFreshBuiltins(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Lookup("int")
	b, _ := r.Lookup("int")
	if a == b {
		t.Error("builtin descriptors must not be shared")
	}
	if a.Kind != typedesc.KindInteger || !a.Signed {
		t.Errorf("int = %+v", a)
	}
}
