// Package wasmvp renders values that live in WebAssembly linear memory as
// human readable text, driven by a description of their static type.
//
// It is the display half of an interactive evaluation loop: the execution
// side runs a snippet inside a guest module and yields the result as either
// an address in linear memory or a set of core return values, plus a type
// descriptor. The printer turns that pair into the text shown to the user.
//
// # Architecture Overview
//
//	wasmvp/          Root package with the Memory interface
//	├── typedesc/    Closed type descriptor model (kinds, fields, shapes)
//	├── layout/      wasm32 size, alignment and container header layouts
//	├── printer/     Scalar and structured formatters, entry points
//	├── memory/      Memory implementations (byte slice, wazero)
//	├── witdesc/     WIT type to descriptor adapter
//	├── descfile/    YAML type descriptions
//	├── errors/      Structured error types
//	└── cmd/vprint/  Call an export and print its result
//
// # Quick Start
//
//	mem := memory.NewWazero(instance.Memory())
//	p := printer.New(mem)
//
//	point := layout.Struct("Point",
//	    layout.F("x", typedesc.Int32()),
//	    layout.F("y", typedesc.Int32()),
//	)
//	fmt.Println(p.PrintNested(addr, point)) // { x: (int) 3, y: (int) 4 }
//
// # Fallback
//
// The printer never fails. Anything it cannot render (an unsupported kind,
// a record with no fields, a container of non-scalar elements, a read past
// the end of memory) falls back to the address of the value, "@0x1f40", or
// "nullptr" for address zero.
//
// # Thread Safety
//
// A Printer is immutable after construction and safe for concurrent use,
// provided the memory it reads is not mutated during a call.
package wasmvp
