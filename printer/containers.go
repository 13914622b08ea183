package printer

import (
	"strings"

	"github.com/wippyai/wasm-valueprinter/errors"
	"github.com/wippyai/wasm-valueprinter/layout"
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// formatContainer renders a vector, deque, list or set of builtin scalars as
// "{ e0, e1, ... }" in the container's iteration order. Containers of any
// other element type are not rendered at all.
func (p *Printer) formatContainer(addr uint32, t *typedesc.Type) (string, Reason, error) {
	elem := t.Elem
	if !elem.IsScalar() {
		return "", ReasonUnsupportedElement, nil
	}

	addrs, truncated, err := p.elementAddrs(addr, t.Shape, elem)
	if err != nil {
		return "", ReasonReadFailed, err
	}

	// Read every element before writing anything so a failure part way
	// through degrades the whole container.
	values := make([]string, len(addrs))
	for i, a := range addrs {
		v, err := loadScalar(p.mem, a, elem)
		if err != nil {
			return "", ReasonReadFailed, err
		}
		values[i] = FormatScalar(elem, v)
	}

	var b strings.Builder
	b.WriteString("{ ")
	b.WriteString(strings.Join(values, ", "))
	if truncated {
		b.WriteString(", ...")
	}
	b.WriteString(" }")
	return b.String(), "", nil
}

// elementAddrs walks a container header at addr and returns the address of
// each element in iteration order, at most maxElements of them.
func (p *Printer) elementAddrs(addr uint32, shape typedesc.Shape, elem *typedesc.Type) ([]uint32, bool, error) {
	switch shape {
	case typedesc.ShapeVector:
		return p.vectorAddrs(addr, elem)
	case typedesc.ShapeDeque:
		return p.dequeAddrs(addr, elem)
	case typedesc.ShapeList:
		return p.listAddrs(addr, elem)
	case typedesc.ShapeSet, typedesc.ShapeMultiSet:
		return p.treeAddrs(addr, shape, elem)
	case typedesc.ShapeUnorderedSet:
		return p.hashAddrs(addr, elem)
	default:
		return nil, false, errors.Unsupported(errors.PhaseRead, nil, "container shape "+shape.String())
	}
}

func (p *Printer) limit(n uint32) (uint32, bool) {
	if n > p.cfg.maxElements {
		return p.cfg.maxElements, true
	}
	return n, false
}

func (p *Printer) readWords(addr uint32, offsets ...uint32) ([]uint32, error) {
	out := make([]uint32, len(offsets))
	for i, off := range offsets {
		v, err := p.mem.ReadU32(addr + off)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (p *Printer) vectorAddrs(addr uint32, elem *typedesc.Type) ([]uint32, bool, error) {
	w, err := p.readWords(addr, layout.VectorData, layout.VectorLen)
	if err != nil {
		return nil, false, err
	}
	data, length := w[0], w[1]
	size := layout.Of(elem).Size
	if _, err := span(length, size); err != nil {
		return nil, false, err
	}

	n, truncated := p.limit(length)
	addrs := make([]uint32, n)
	for i := range n {
		addrs[i] = data + i*size
	}
	return addrs, truncated, nil
}

func (p *Printer) dequeAddrs(addr uint32, elem *typedesc.Type) ([]uint32, bool, error) {
	w, err := p.readWords(addr, layout.DequeBuf, layout.DequeCap, layout.DequeHead, layout.DequeLen)
	if err != nil {
		return nil, false, err
	}
	buf, capacity, head, length := w[0], w[1], w[2], w[3]
	if length > capacity {
		return nil, false, corrupt("deque", "length %d exceeds capacity %d", length, capacity)
	}
	size := layout.Of(elem).Size
	if _, err := span(capacity, size); err != nil {
		return nil, false, err
	}

	n, truncated := p.limit(length)
	addrs := make([]uint32, n)
	for i := range n {
		slot := (uint64(head) + uint64(i)) % uint64(capacity)
		addrs[i] = buf + uint32(slot)*size
	}
	return addrs, truncated, nil
}

// listAddrs follows next links from the sentinel embedded in the header
// until they return to it. A chain that runs longer than the recorded size
// or visits a node twice is corrupt.
func (p *Printer) listAddrs(addr uint32, elem *typedesc.Type) ([]uint32, bool, error) {
	w, err := p.readWords(addr, layout.ListNext, layout.ListSize)
	if err != nil {
		return nil, false, err
	}
	node, size := w[0], w[1]
	valueOff := layout.NodeValueOffset(typedesc.ShapeList, elem)

	n, truncated := p.limit(size)
	addrs := make([]uint32, 0, n)
	seen := make(map[uint32]struct{}, n)
	for node != addr {
		if node == 0 {
			return nil, false, corrupt("list", "null link after %d nodes", len(addrs))
		}
		if _, ok := seen[node]; ok {
			return nil, false, corrupt("list", "node 0x%x linked twice", node)
		}
		seen[node] = struct{}{}
		if uint32(len(addrs)) == n {
			if truncated {
				break
			}
			return nil, false, corrupt("list", "more nodes than recorded size %d", size)
		}
		addrs = append(addrs, node+valueOff)
		if node, err = p.mem.ReadU32(node + layout.ListNext); err != nil {
			return nil, false, err
		}
	}
	return addrs, truncated, nil
}

// treeAddrs walks a binary search tree in order using an explicit stack.
// A node reached twice means the links form a cycle.
func (p *Printer) treeAddrs(addr uint32, shape typedesc.Shape, elem *typedesc.Type) ([]uint32, bool, error) {
	w, err := p.readWords(addr, layout.TreeRoot, layout.TreeSize)
	if err != nil {
		return nil, false, err
	}
	cur, size := w[0], w[1]
	valueOff := layout.NodeValueOffset(shape, elem)

	n, truncated := p.limit(size)
	addrs := make([]uint32, 0, n)
	seen := make(map[uint32]struct{}, n)
	var stack []uint32
	for (cur != 0 || len(stack) > 0) && uint32(len(addrs)) < n {
		for cur != 0 {
			if uint32(len(stack)) > size {
				return nil, false, corrupt("set", "tree deeper than its size %d", size)
			}
			if _, ok := seen[cur]; ok {
				return nil, false, corrupt("set", "node 0x%x linked twice", cur)
			}
			seen[cur] = struct{}{}
			stack = append(stack, cur)
			if cur, err = p.mem.ReadU32(cur + layout.NodeLeft); err != nil {
				return nil, false, err
			}
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		addrs = append(addrs, cur+valueOff)
		if cur, err = p.mem.ReadU32(cur + layout.NodeRight); err != nil {
			return nil, false, err
		}
	}
	if !truncated && uint32(len(addrs)) < size {
		return nil, false, corrupt("set", "found %d nodes, recorded size %d", len(addrs), size)
	}
	return addrs, truncated, nil
}

// hashAddrs follows the node chain every element of an unordered set is on,
// which is also its iteration order.
func (p *Printer) hashAddrs(addr uint32, elem *typedesc.Type) ([]uint32, bool, error) {
	w, err := p.readWords(addr, layout.HashFirst, layout.HashSize)
	if err != nil {
		return nil, false, err
	}
	node, size := w[0], w[1]
	valueOff := layout.NodeValueOffset(typedesc.ShapeUnorderedSet, elem)

	n, truncated := p.limit(size)
	addrs := make([]uint32, 0, n)
	seen := make(map[uint32]struct{}, n)
	for node != 0 && uint32(len(addrs)) < n {
		if _, ok := seen[node]; ok {
			return nil, false, corrupt("unordered_set", "node 0x%x linked twice", node)
		}
		seen[node] = struct{}{}
		addrs = append(addrs, node+valueOff)
		if node, err = p.mem.ReadU32(node + layout.HashNext); err != nil {
			return nil, false, err
		}
	}
	if uint32(len(addrs)) < n {
		return nil, false, corrupt("unordered_set", "found %d nodes, recorded size %d", len(addrs), size)
	}
	return addrs, truncated, nil
}

func corrupt(container, format string, args ...any) error {
	return errors.New(errors.PhaseRead, errors.KindInvalidData).
		Path(container).
		Detail(format, args...).
		Build()
}
