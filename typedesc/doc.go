// Package typedesc defines the closed type descriptor model that drives the
// value printer.
//
// A Type is a tagged variant: exactly one Kind is active and only the fields
// that kind uses are meaningful. Descriptors are plain data. They are built
// by whoever owns the type information (a compiler front end, a WIT
// resolver, a YAML description) and handed to the printer, which never
// consults any other type system.
//
// # Key Types
//
//   - Type: the descriptor itself (scalars, pointers, enums, arrays, records)
//   - Field: a record member with its byte offset
//   - Enumerator: a named enum constant
//   - Shape: the recognized standard container layouts a record may carry
package typedesc
