package printer

import (
	"math"
	"testing"

	"github.com/wippyai/wasm-valueprinter/memory"
)

// image is a one page linear memory fixture.
type image struct {
	t   *testing.T
	mem *memory.Bytes
}

func newImage(t *testing.T) *image {
	t.Helper()
	return &image{t: t, mem: memory.NewPages(1)}
}

func (im *image) check(err error) {
	im.t.Helper()
	if err != nil {
		im.t.Fatalf("write fixture: %v", err)
	}
}

func (im *image) u8(addr uint32, v uint8)   { im.t.Helper(); im.check(im.mem.WriteU8(addr, v)) }
func (im *image) u16(addr uint32, v uint16) { im.t.Helper(); im.check(im.mem.WriteU16(addr, v)) }
func (im *image) u32(addr uint32, v uint32) { im.t.Helper(); im.check(im.mem.WriteU32(addr, v)) }
func (im *image) u64(addr uint32, v uint64) { im.t.Helper(); im.check(im.mem.WriteU64(addr, v)) }
func (im *image) i32(addr uint32, v int32)  { im.t.Helper(); im.u32(addr, uint32(v)) }
func (im *image) f64(addr uint32, v float64) {
	im.t.Helper()
	im.u64(addr, math.Float64bits(v))
}

func (im *image) bytes(addr uint32, b []byte) { im.t.Helper(); im.check(im.mem.Write(addr, b)) }

// cstr writes s followed by a zero byte.
func (im *image) cstr(addr uint32, s string) {
	im.t.Helper()
	im.bytes(addr, append([]byte(s), 0))
}

func (im *image) ints(addr uint32, vs ...int32) {
	im.t.Helper()
	for i, v := range vs {
		im.i32(addr+uint32(i)*4, v)
	}
}

func (im *image) printer(opts ...Option) *Printer {
	return New(im.mem, opts...)
}

// degradeLog collects fallbacks reported through WithDegradeHook.
type degradeLog struct {
	events []Degraded
}

func (d *degradeLog) hook() Option {
	return WithDegradeHook(func(e Degraded) { d.events = append(d.events, e) })
}

func (d *degradeLog) reasons() []Reason {
	out := make([]Reason, len(d.events))
	for i, e := range d.events {
		out[i] = e.Reason
	}
	return out
}
