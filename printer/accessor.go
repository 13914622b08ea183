package printer

import (
	"math"
	"math/big"

	"github.com/tetratelabs/wazero/api"

	wasmvp "github.com/wippyai/wasm-valueprinter"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// Accessor gives typed read access to a top-level result that may not live
// in linear memory, such as a core function's return value.
//
// Addr is where the result was materialized, for results that have to be
// read from memory (arrays and records). It is 0 when there is none.
type Accessor interface {
	Bool() bool
	Int64() int64
	Uint64() uint64
	Float32() float32
	Float64() float64
	Addr() uint32
}

// ExtendedAccessor is implemented by accessors that can hold floats wider
// than a double. Extended returns nil for NaN.
type ExtendedAccessor interface {
	Accessor
	Extended() *big.Float
}

// CheckedAccessor is implemented by accessors whose reads can fail. Err is
// non-nil when the value cannot be read, and the result then falls back to
// its address instead of rendering a zero.
type CheckedAccessor interface {
	Accessor
	Err() error
}

// accessorScalar converts a top-level scalar through acc.
func accessorScalar(acc Accessor, t *typedesc.Type) Scalar {
	switch t.Kind {
	case typedesc.KindBool:
		if acc.Bool() {
			return Scalar{Bits: 1}
		}
		return Scalar{}
	case typedesc.KindFloat:
		switch {
		case t.Width == 4:
			return Scalar{Bits: uint64(math.Float32bits(acc.Float32()))}
		case t.Width == 8:
			return Scalar{Bits: math.Float64bits(acc.Float64())}
		}
		if ext, ok := acc.(ExtendedAccessor); ok {
			return Scalar{Extended: ext.Extended()}
		}
		f := acc.Float64()
		if math.IsNaN(f) {
			return Scalar{}
		}
		return Scalar{Extended: big.NewFloat(f)}
	default:
		return Scalar{Bits: accessorBits(acc, t)}
	}
}

// accessorBits reads an integral value through acc, zero-extended from t's width.
func accessorBits(acc Accessor, t *typedesc.Type) uint64 {
	if t.Signed {
		return uint64(acc.Int64()) & widthMask(t.Width)
	}
	return acc.Uint64() & widthMask(t.Width)
}

// FlatAccessor reads a result from a core function's flat return values, as
// returned by wazero's api.Function.Call.
type FlatAccessor struct {
	types  []api.ValueType
	values []uint64
}

// NewFlatAccessor wraps the results of a core call. types are the
// function's result types; only the first result is read.
func NewFlatAccessor(types []api.ValueType, values []uint64) *FlatAccessor {
	return &FlatAccessor{types: types, values: values}
}

func (a *FlatAccessor) first() (api.ValueType, uint64, bool) {
	if len(a.values) == 0 {
		return 0, 0, false
	}
	vt := api.ValueTypeI64
	if len(a.types) > 0 {
		vt = a.types[0]
	}
	return vt, a.values[0], true
}

func (a *FlatAccessor) Bool() bool {
	return a.Uint64() != 0
}

func (a *FlatAccessor) Int64() int64 {
	vt, v, ok := a.first()
	if !ok {
		return 0
	}
	switch vt {
	case api.ValueTypeI32:
		return int64(api.DecodeI32(v))
	case api.ValueTypeF32:
		return int64(api.DecodeF32(v))
	case api.ValueTypeF64:
		return int64(api.DecodeF64(v))
	default:
		return int64(v)
	}
}

func (a *FlatAccessor) Uint64() uint64 {
	vt, v, ok := a.first()
	if !ok {
		return 0
	}
	switch vt {
	case api.ValueTypeI32:
		return uint64(api.DecodeU32(v))
	case api.ValueTypeF32:
		return uint64(api.DecodeF32(v))
	case api.ValueTypeF64:
		return uint64(api.DecodeF64(v))
	default:
		return v
	}
}

func (a *FlatAccessor) Float32() float32 {
	vt, v, ok := a.first()
	if !ok {
		return 0
	}
	switch vt {
	case api.ValueTypeF32:
		return api.DecodeF32(v)
	case api.ValueTypeF64:
		return float32(api.DecodeF64(v))
	default:
		return float32(a.Int64())
	}
}

func (a *FlatAccessor) Float64() float64 {
	vt, v, ok := a.first()
	if !ok {
		return 0
	}
	switch vt {
	case api.ValueTypeF32:
		return float64(api.DecodeF32(v))
	case api.ValueTypeF64:
		return api.DecodeF64(v)
	default:
		return float64(a.Int64())
	}
}

// Addr returns the first result as an address when it is an i32, which is
// how wasm32 functions hand back pointers to materialized aggregates.
func (a *FlatAccessor) Addr() uint32 {
	vt, v, ok := a.first()
	if !ok || vt != api.ValueTypeI32 {
		return 0
	}
	return api.DecodeU32(v)
}

// MemoryAccessor reads a top-level result that was materialized in linear
// memory. Reads that fail yield zero values.
type MemoryAccessor struct {
	mem   wasmvp.Memory
	addr  uint32
	width uint8
}

// NewMemoryAccessor creates an accessor for a value of the given byte width at addr.
func NewMemoryAccessor(mem wasmvp.Memory, addr uint32, width uint8) *MemoryAccessor {
	return &MemoryAccessor{mem: mem, addr: addr, width: width}
}

func (a *MemoryAccessor) Addr() uint32 { return a.addr }

func (a *MemoryAccessor) Bool() bool { return a.Uint64() != 0 }

func (a *MemoryAccessor) Uint64() uint64 {
	w := a.width
	if w > 8 {
		w = 8
	}
	v, err := readUnsigned(a.mem, a.addr, w)
	if err != nil {
		return 0
	}
	return v
}

func (a *MemoryAccessor) Int64() int64 {
	return signExtend(a.Uint64(), a.width)
}

func (a *MemoryAccessor) Float32() float32 {
	if a.width == 8 {
		return float32(a.Float64())
	}
	v, err := a.mem.ReadU32(a.addr)
	if err != nil {
		return 0
	}
	return math.Float32frombits(v)
}

func (a *MemoryAccessor) Float64() float64 {
	switch {
	case a.width == 4:
		return float64(a.Float32())
	case a.width > 8:
		f := a.Extended()
		if f == nil {
			return math.NaN()
		}
		v, _ := f.Float64()
		return v
	}
	v, err := a.mem.ReadU64(a.addr)
	if err != nil {
		return 0
	}
	return math.Float64frombits(v)
}

func (a *MemoryAccessor) Extended() *big.Float {
	if a.width <= 8 {
		f := a.Float64()
		if math.IsNaN(f) {
			return nil
		}
		return big.NewFloat(f)
	}
	v, err := loadScalar(a.mem, a.addr, typedesc.Float(a.width))
	if err != nil {
		return nil
	}
	return v.Extended
}

// Err reports a failure to read the value's bytes.
func (a *MemoryAccessor) Err() error {
	_, err := a.mem.Read(a.addr, uint32(max(a.width, 1)))
	return err
}

var _ ExtendedAccessor = (*MemoryAccessor)(nil)
var _ CheckedAccessor = (*MemoryAccessor)(nil)
var _ Accessor = (*FlatAccessor)(nil)
