// Package memory provides wasmvp.Memory implementations.
//
//	Bytes   - a Go byte slice; snapshots and test fixtures (also writable)
//	Wazero  - a live wazero module instance's linear memory (read-only)
//
// Reads past the end of memory return an errors.KindOutOfBounds error in
// the read phase. Slices returned by Read alias the underlying memory and
// are only valid until it is next written or grown.
package memory
