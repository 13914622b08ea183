// Package printer renders typed values in WebAssembly linear memory as text.
//
// # Entry Points
//
//	PrintTopLevel(acc, t)  - the result of evaluating one expression
//	PrintNested(addr, t)   - any value reached through an address
//	PrintArray(addr, t, n) - arrays whose length is not part of their type
//
// The two entry points share one recursive formatter. The top-level one reads
// scalars, enums and pointers through an Accessor, because such results may
// only exist as core return values with no address. Arrays and records are
// always read from memory.
//
// # Output
//
//	bool            true / false
//	integers        base 10, signedness preserved
//	floats          shortest decimal, "nan", "inf"
//	characters      'a', '\n' (only \t \n \r \f \v are escaped)
//	char pointers   "text" read up to the terminator
//	char arrays     "text" of exactly the declared length
//	other arrays    { e0, e1, e2 }
//	enums           (NS::A) ? (NS::B) : int 1
//	records         { x: (int) 3, y: (int) 4 }
//	containers      { 1, 2, 3 } for builtin scalar elements only
//	other pointers  @0x1f40
//	null            nullptr
//
// Wide, UTF-16 and UTF-32 text is transcoded to UTF-8.
//
// # Fallback
//
// Rendering never fails. A value that cannot be rendered (an opaque or void
// type, a record with no fields, a container of non-scalar elements, memory
// that cannot be read) is shown as its address. WithDegradeHook reports
// each such fallback; the same events are logged at debug level.
//
// # Container Layouts
//
// Recognized containers are read using the guest ABI defined in the layout
// package: vectors and strings are {data, len} pairs, deques are ring
// buffers, lists are circular with a sentinel node, sets are binary search
// trees walked in order, and unordered sets keep all nodes on one chain.
package printer
