package layout

import (
	"github.com/wippyai/wasm-valueprinter/typedesc"
)

// Guest container ABI. Every word is a little-endian u32.
//
//	String         {data, len}                      len in code units
//	Vector         {data, len}                      contiguous elements
//	Deque          {buf, cap, head, len}            ring buffer
//	List           {prev, next, size}               sentinel node + size
//	Set, MultiSet  {root, size}                     binary search tree
//	UnorderedSet   {buckets, bucketCount, first, size}
//
// Node layouts:
//
//	list node      {prev, next, value}              value at 8
//	tree node      {left, right, parent, color u8}  value at 13, aligned
//	hash node      {next, hash, value}              value at 8, aligned
const (
	StringHeaderSize       = 8
	VectorHeaderSize       = 8
	DequeHeaderSize        = 16
	ListHeaderSize         = 12
	TreeHeaderSize         = 8
	UnorderedSetHeaderSize = 16

	listNodeHeader = 8
	treeNodeHeader = 13
	hashNodeHeader = 8
)

// Header word offsets.
const (
	StringData = 0
	StringLen  = 4

	VectorData = 0
	VectorLen  = 4

	DequeBuf  = 0
	DequeCap  = 4
	DequeHead = 8
	DequeLen  = 12

	ListNext = 4
	ListSize = 8

	TreeRoot = 0
	TreeSize = 4

	NodeLeft  = 0
	NodeRight = 4

	HashFirst = 8
	HashSize  = 12
	HashNext  = 0
)

// HeaderSize returns the in-memory size of a container shape's header.
func HeaderSize(s typedesc.Shape) uint32 {
	switch s {
	case typedesc.ShapeString:
		return StringHeaderSize
	case typedesc.ShapeVector:
		return VectorHeaderSize
	case typedesc.ShapeDeque:
		return DequeHeaderSize
	case typedesc.ShapeList:
		return ListHeaderSize
	case typedesc.ShapeSet, typedesc.ShapeMultiSet:
		return TreeHeaderSize
	case typedesc.ShapeUnorderedSet:
		return UnorderedSetHeaderSize
	default:
		return 0
	}
}

// NodeValueOffset returns where the element sits inside a node of the given
// linked container shape.
func NodeValueOffset(s typedesc.Shape, elem *typedesc.Type) uint32 {
	align := Of(elem).Align
	switch s {
	case typedesc.ShapeList:
		return AlignTo(listNodeHeader, align)
	case typedesc.ShapeSet, typedesc.ShapeMultiSet:
		return AlignTo(treeNodeHeader, align)
	case typedesc.ShapeUnorderedSet:
		return AlignTo(hashNodeHeader, align)
	default:
		return 0
	}
}
