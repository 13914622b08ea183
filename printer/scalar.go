package printer

import (
	"encoding/binary"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	wasmvp "github.com/wippyai/wasm-valueprinter"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// Scalar is one builtin value, already read from memory or from an accessor.
//
// Bits holds booleans, integers and character code units zero-extended, and
// float and double values as their IEEE bit pattern. Floats wider than 8
// bytes are carried in Extended instead; a nil Extended on such a type is NaN.
type Scalar struct {
	Extended *big.Float
	Bits     uint64
}

// FormatScalar renders v as a value of builtin type t. It returns "" for
// kinds that are not builtin scalars.
func FormatScalar(t *typedesc.Type, v Scalar) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case typedesc.KindBool:
		if v.Bits&0xff != 0 {
			return "true"
		}
		return "false"
	case typedesc.KindInteger:
		return formatInteger(v.Bits, t.Width, t.Signed)
	case typedesc.KindFloat:
		return formatFloat(t.Width, v)
	case typedesc.KindChar:
		return formatChar(v.Bits, t.Width)
	case typedesc.KindNullPtr:
		return "nullptr_t"
	default:
		return ""
	}
}

func widthMask(width uint8) uint64 {
	if width >= 8 || width == 0 {
		return math.MaxUint64
	}
	return 1<<(uint(width)*8) - 1
}

func signExtend(bits uint64, width uint8) int64 {
	if width >= 8 || width == 0 {
		return int64(bits)
	}
	shift := 64 - uint(width)*8
	return int64(bits<<shift) >> shift
}

func formatInteger(bits uint64, width uint8, signed bool) string {
	if signed {
		return strconv.FormatInt(signExtend(bits, width), 10)
	}
	return strconv.FormatUint(bits&widthMask(width), 10)
}

func formatFloat(width uint8, v Scalar) string {
	switch width {
	case 4:
		f := float64(math.Float32frombits(uint32(v.Bits)))
		if s, ok := nonFinite(f); ok {
			return s
		}
		return strconv.FormatFloat(f, 'g', -1, 32)
	case 8:
		f := math.Float64frombits(v.Bits)
		if s, ok := nonFinite(f); ok {
			return s
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		if v.Extended == nil {
			return "nan"
		}
		if v.Extended.IsInf() {
			if v.Extended.Sign() < 0 {
				return "-inf"
			}
			return "inf"
		}
		return v.Extended.Text('g', -1)
	}
}

func nonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "nan", true
	case math.IsInf(f, 1):
		return "inf", true
	case math.IsInf(f, -1):
		return "-inf", true
	}
	return "", false
}

// codeUnitRune maps one code unit to the rune emitted for it. Values that
// cannot stand alone in UTF-8 (high plain bytes, lone surrogates, values
// past U+10FFFF) become U+FFFD so the output stays valid UTF-8.
func codeUnitRune(bits uint64, width uint8) rune {
	u := bits & widthMask(width)
	switch width {
	case 1:
		if u >= utf8.RuneSelf {
			return utf8.RuneError
		}
		return rune(u)
	default:
		if u > utf8.MaxRune {
			return utf8.RuneError
		}
		r := rune(u)
		if !utf8.ValidRune(r) {
			return utf8.RuneError
		}
		return r
	}
}

func formatChar(bits uint64, width uint8) string {
	var b strings.Builder
	b.WriteByte('\'')
	writeEscapedRune(&b, codeUnitRune(bits, width))
	b.WriteByte('\'')
	return b.String()
}

// writeEscapedRune escapes the five whitespace controls with their C
// mnemonics and writes everything else as is.
func writeEscapedRune(b *strings.Builder, r rune) {
	switch r {
	case '\t':
		b.WriteString(`\t`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\f':
		b.WriteString(`\f`)
	case '\v':
		b.WriteString(`\v`)
	default:
		b.WriteRune(r)
	}
}

// loadScalar reads a builtin value of type t at addr.
func loadScalar(mem wasmvp.Memory, addr uint32, t *typedesc.Type) (Scalar, error) {
	if t.Kind == typedesc.KindFloat && t.Width > 8 {
		n := uint32(16)
		if t.Width < 16 {
			n = 10
		}
		data, err := mem.Read(addr, n)
		if err != nil {
			return Scalar{}, err
		}
		return Scalar{Extended: decodeExtended(data)}, nil
	}

	bits, err := readUnsigned(mem, addr, t.Width)
	return Scalar{Bits: bits}, err
}

func readUnsigned(mem wasmvp.Memory, addr uint32, width uint8) (uint64, error) {
	switch width {
	case 1:
		v, err := mem.ReadU8(addr)
		return uint64(v), err
	case 2:
		v, err := mem.ReadU16(addr)
		return uint64(v), err
	case 4:
		v, err := mem.ReadU32(addr)
		return uint64(v), err
	default:
		return mem.ReadU64(addr)
	}
}

// decodeExtended decodes a little-endian long double: 16 bytes are IEEE
// binary128, 10 bytes are x87 extended precision. NaN decodes to nil.
func decodeExtended(data []byte) *big.Float {
	if len(data) == 16 {
		return decodeBinary128(data)
	}
	return decodeX87(data)
}

func decodeBinary128(data []byte) *big.Float {
	lo := binary.LittleEndian.Uint64(data[0:8])
	hi := binary.LittleEndian.Uint64(data[8:16])

	neg := hi>>63 != 0
	exp := int((hi >> 48) & 0x7fff)
	fracHi := hi & (1<<48 - 1)

	if exp == 0x7fff {
		if fracHi != 0 || lo != 0 {
			return nil
		}
		return new(big.Float).SetInf(neg)
	}

	mant := new(big.Int).SetUint64(fracHi)
	mant.Lsh(mant, 64)
	mant.Or(mant, new(big.Int).SetUint64(lo))

	e := 1 - 16383
	if exp != 0 {
		mant.SetBit(mant, 112, 1)
		e = exp - 16383
	}

	f := new(big.Float).SetPrec(113).SetInt(mant)
	f.SetMantExp(f, e-112)
	if neg {
		f.Neg(f)
	}
	return f
}

func decodeX87(data []byte) *big.Float {
	m := binary.LittleEndian.Uint64(data[0:8])
	se := binary.LittleEndian.Uint16(data[8:10])

	neg := se>>15 != 0
	exp := int(se & 0x7fff)

	if exp == 0x7fff {
		if m<<1 != 0 {
			return nil
		}
		return new(big.Float).SetInf(neg)
	}

	e := exp - 16383
	if exp == 0 {
		e = 1 - 16383
	}

	f := new(big.Float).SetPrec(64).SetUint64(m)
	f.SetMantExp(f, e-63)
	if neg {
		f.Neg(f)
	}
	return f
}
