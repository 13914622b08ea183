package memory

import (
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

// answerModule exports one page of memory with "hello" at offset 16 and a
// function "answer" returning 42.
var answerModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f,
	0x03, 0x02, 0x01, 0x00,
	0x05, 0x03, 0x01, 0x00, 0x01,
	0x07, 0x13, 0x02,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x06, 'a', 'n', 's', 'w', 'e', 'r', 0x00, 0x00,
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x41, 0x2a, 0x0b,
	0x0b, 0x0b, 0x01, 0x00, 0x41, 0x10, 0x0b, 0x05, 'h', 'e', 'l', 'l', 'o',
}

func TestWazero(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	mod, err := r.Instantiate(ctx, answerModule)
	if err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	m := NewWazero(mod.Memory())

	if m.Size() != PageSize {
		t.Errorf("Size() = %d, want %d", m.Size(), PageSize)
	}

	data, err := m.Read(16, 5)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Read = %q", data)
	}

	if v, err := m.ReadU8(16); err != nil || v != 'h' {
		t.Errorf("ReadU8 = %q, %v", v, err)
	}
	if v, err := m.ReadU16(16); err != nil || v != uint16('e')<<8|'h' {
		t.Errorf("ReadU16 = %#x, %v", v, err)
	}
	if v, err := m.ReadU32(17); err != nil || v != 0x6f6c6c65 {
		t.Errorf("ReadU32 = %#x, %v", v, err)
	}
	if _, err := m.ReadU64(PageSize - 4); err == nil {
		t.Error("ReadU64 past end should fail")
	}
	if _, err := m.Read(PageSize, 1); err == nil {
		t.Error("Read past end should fail")
	}
}

func TestWazero_NilMemory(t *testing.T) {
	m := NewWazero(nil)
	if m.Size() != 0 {
		t.Errorf("Size() = %d", m.Size())
	}
	if _, err := m.ReadU32(0); err == nil {
		t.Error("expected error")
	}
}
