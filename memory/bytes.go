package memory

import (
	"encoding/binary"

	wasmvp "github.com/wippyai/wasm-valueprinter"
	"github.com/wippyai/wasm-valueprinter/errors"
)

// Bytes is linear memory backed by a Go byte slice. It is used for memory
// snapshots and for building fixtures.
type Bytes struct {
	data []byte
}

// NewBytes wraps data without copying it.
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// NewPages allocates n zeroed 64 KiB pages.
func NewPages(n uint32) *Bytes {
	return &Bytes{data: make([]byte, n*PageSize)}
}

// PageSize is the WebAssembly page size.
const PageSize = 65536

func (m *Bytes) Size() uint32 {
	return uint32(len(m.data))
}

func (m *Bytes) bounds(offset, length uint32) error {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m.data)) {
		return errors.OutOfBounds(offset, length, m.Size())
	}
	return nil
}

func (m *Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	if err := m.bounds(offset, length); err != nil {
		return nil, err
	}
	return m.data[offset : offset+length], nil
}

func (m *Bytes) ReadU8(offset uint32) (uint8, error) {
	if err := m.bounds(offset, 1); err != nil {
		return 0, err
	}
	return m.data[offset], nil
}

func (m *Bytes) ReadU16(offset uint32) (uint16, error) {
	if err := m.bounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(m.data[offset:]), nil
}

func (m *Bytes) ReadU32(offset uint32) (uint32, error) {
	if err := m.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[offset:]), nil
}

func (m *Bytes) ReadU64(offset uint32) (uint64, error) {
	if err := m.bounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(m.data[offset:]), nil
}

func (m *Bytes) Write(offset uint32, data []byte) error {
	if err := m.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *Bytes) WriteU8(offset uint32, value uint8) error {
	return m.Write(offset, []byte{value})
}

func (m *Bytes) WriteU16(offset uint32, value uint16) error {
	return m.Write(offset, binary.LittleEndian.AppendUint16(nil, value))
}

func (m *Bytes) WriteU32(offset uint32, value uint32) error {
	return m.Write(offset, binary.LittleEndian.AppendUint32(nil, value))
}

func (m *Bytes) WriteU64(offset uint32, value uint64) error {
	return m.Write(offset, binary.LittleEndian.AppendUint64(nil, value))
}

var _ wasmvp.Memory = (*Bytes)(nil)
var _ wasmvp.MemorySizer = (*Bytes)(nil)
