package printer

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	wasmvp "github.com/wippyai/wasm-valueprinter"
	"github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// Printer renders values in one guest's linear memory. It holds no mutable
// state and is safe for concurrent use.
type Printer struct {
	mem wasmvp.Memory
	cfg config
}

// New creates a Printer reading through mem.
func New(mem wasmvp.Memory, opts ...Option) *Printer {
	cfg := config{
		maxString:   DefaultMaxStringLength,
		maxElements: DefaultMaxElements,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	return &Printer{mem: mem, cfg: cfg}
}

// PrintNested renders the value of type t stored at addr. It is used for
// everything reached through an address: struct fields, array elements and
// results the caller materialized in memory.
//
// Values that cannot be rendered fall back to "@0x<addr>", and a zero addr
// always renders as "nullptr".
func (p *Printer) PrintNested(addr uint32, t *typedesc.Type) string {
	if addr == 0 {
		return "nullptr"
	}
	s, reason, err := p.format(addr, t)
	if s != "" {
		return s
	}
	p.degrade(addr, t, reason, err)
	return FormatAddress(addr)
}

// PrintTopLevel renders the result of evaluating one expression. Builtin
// scalars, enums and pointers are read through acc, because such results
// may only exist as core return values. Arrays and records are read from
// memory at acc.Addr().
func (p *Printer) PrintTopLevel(acc Accessor, t *typedesc.Type) string {
	if t == nil {
		return p.PrintNested(acc.Addr(), t)
	}
	if t.IsScalar() || t.Kind == typedesc.KindEnum || t.Kind == typedesc.KindPointer {
		if c, ok := acc.(CheckedAccessor); ok {
			if err := c.Err(); err != nil {
				p.degrade(acc.Addr(), t, ReasonReadFailed, err)
				return FormatAddress(acc.Addr())
			}
		}
	}
	switch {
	case t.Kind == typedesc.KindNullPtr:
		return "nullptr_t"
	case t.Kind == typedesc.KindEnum:
		return formatEnum(t, accessorBits(acc, enumUnderlying(t)))
	case t.Kind == typedesc.KindPointer:
		return p.formatPointer(uint32(acc.Uint64()), t)
	case t.IsScalar():
		if s := FormatScalar(t, accessorScalar(acc, t)); s != "" {
			return s
		}
	}
	return p.PrintNested(acc.Addr(), t)
}

// PrintArray renders n elements of type elem starting at addr. It is the
// way to print arrays whose length is not part of their type.
func (p *Printer) PrintArray(addr uint32, elem *typedesc.Type, n uint32) string {
	return p.PrintNested(addr, typedesc.ArrayOf(elem, n))
}

// FormatAddress renders an address the way the printer falls back to it.
func FormatAddress(addr uint32) string {
	if addr == 0 {
		return "nullptr"
	}
	return "@0x" + strconv.FormatUint(uint64(addr), 16)
}

func (p *Printer) degrade(addr uint32, t *typedesc.Type, reason Reason, err error) {
	if reason == "" {
		reason = ReasonUnsupportedKind
	}
	name := t.DisplayName()

	p.cfg.logger.Debug("value rendered as address",
		zap.String("reason", string(reason)),
		zap.String("type", name),
		zap.Uint32("addr", addr),
		zap.Error(err),
	)

	if p.cfg.onDegrade != nil {
		p.cfg.onDegrade(Degraded{
			Err:      err,
			Reason:   reason,
			TypeName: name,
			Addr:     addr,
		})
	}
}

// span returns the byte length of n items of size each, failing instead of
// wrapping around the 32-bit address space.
func span(n, size uint32) (uint32, error) {
	total := uint64(n) * uint64(size)
	if total > math.MaxUint32 {
		return 0, errors.New(errors.PhaseRead, errors.KindOutOfBounds).
			Detail("%d items of %d bytes exceed the address space", n, size).
			Build()
	}
	return uint32(total), nil
}
