package wasmvp

// Memory is a read-only view of a guest's linear memory.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}
