package memory

import (
	"github.com/tetratelabs/wazero/api"

	wasmvp "github.com/wippyai/wasm-valueprinter"
	"github.com/wippyai/wasm-valueprinter/errors"
)

// Wazero wraps a wazero instance's memory as a read-only wasmvp.Memory.
type Wazero struct {
	mem api.Memory
}

func NewWazero(mem api.Memory) *Wazero {
	return &Wazero{mem: mem}
}

func (m *Wazero) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

func (m *Wazero) Read(offset uint32, length uint32) ([]byte, error) {
	if m.mem == nil {
		return nil, errors.OutOfBounds(offset, length, 0)
	}
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(offset, length, m.Size())
	}
	return data, nil
}

func (m *Wazero) ReadU8(offset uint32) (uint8, error) {
	if m.mem == nil {
		return 0, errors.OutOfBounds(offset, 1, 0)
	}
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 1, m.Size())
	}
	return v, nil
}

func (m *Wazero) ReadU16(offset uint32) (uint16, error) {
	if m.mem == nil {
		return 0, errors.OutOfBounds(offset, 2, 0)
	}
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 2, m.Size())
	}
	return v, nil
}

func (m *Wazero) ReadU32(offset uint32) (uint32, error) {
	if m.mem == nil {
		return 0, errors.OutOfBounds(offset, 4, 0)
	}
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 4, m.Size())
	}
	return v, nil
}

func (m *Wazero) ReadU64(offset uint32) (uint64, error) {
	if m.mem == nil {
		return 0, errors.OutOfBounds(offset, 8, 0)
	}
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 8, m.Size())
	}
	return v, nil
}

var _ wasmvp.Memory = (*Wazero)(nil)
var _ wasmvp.MemorySizer = (*Wazero)(nil)
